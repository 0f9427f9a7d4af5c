// Package priority classifies leads by matching their industry against an
// ordered list of keywords.
package priority

import (
	"strings"

	"github.com/amishk599/leadbrief/internal/config"
	"github.com/amishk599/leadbrief/internal/model"
)

// Default is returned when no keyword matches.
const Default = model.PriorityMedium

// Classifier maps an industry string to a priority. Rules are checked in
// order and the first keyword found in the industry wins. Matching is
// case-sensitive.
type Classifier struct {
	rules []config.IndustryPriority
}

// NewClassifier returns a classifier over rules, in the given order.
func NewClassifier(rules []config.IndustryPriority) *Classifier {
	return &Classifier{rules: rules}
}

// Classify returns the priority of the first rule whose keyword appears in industry.
func (c *Classifier) Classify(industry string) model.Priority {
	for _, r := range c.rules {
		if strings.Contains(industry, r.Keyword) {
			return r.Priority
		}
	}
	return Default
}
