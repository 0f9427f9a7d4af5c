// Package board renders the opportunity sheet as a read-only kanban in the
// terminal, one column per status.
package board

import (
	"sort"
	"time"

	"github.com/amishk599/leadbrief/internal/briefing"
	"github.com/amishk599/leadbrief/internal/model"
)

// statusOrder is the usual pipeline progression. Statuses outside it follow
// in first-encounter order.
var statusOrder = []string{
	model.StatusNewLead,
	"To Research",
	"Researching",
	model.StatusApplied,
	"Interviewing",
	"Offer",
	"Rejected",
}

// Column is every row sharing one status.
type Column struct {
	Status string
	Rows   []model.OpportunityRow
}

// Title is the column heading; blank statuses get a placeholder.
func (c Column) Title() string {
	if c.Status == "" {
		return "(no status)"
	}
	return c.Status
}

// Group splits rows into non-empty columns. Within a column rows are ordered
// High, Medium, Low, then anything else, keeping sheet order for ties.
func Group(rows []model.OpportunityRow) []Column {
	byStatus := make(map[string][]model.OpportunityRow)
	var extra []string
	known := make(map[string]bool, len(statusOrder))
	for _, s := range statusOrder {
		known[s] = true
	}
	for _, r := range rows {
		if _, ok := byStatus[r.Status]; !ok && !known[r.Status] {
			extra = append(extra, r.Status)
		}
		byStatus[r.Status] = append(byStatus[r.Status], r)
	}

	var cols []Column
	for _, s := range append(append([]string(nil), statusOrder...), extra...) {
		rs := byStatus[s]
		if len(rs) == 0 {
			continue
		}
		sort.SliceStable(rs, func(i, j int) bool {
			return priorityRank(rs[i].Priority) < priorityRank(rs[j].Priority)
		})
		cols = append(cols, Column{Status: s, Rows: rs})
	}
	return cols
}

func priorityRank(p model.Priority) int {
	switch p {
	case model.PriorityHigh:
		return 0
	case model.PriorityMedium:
		return 1
	case model.PriorityLow:
		return 2
	}
	return 3
}

// Tally counts a column's rows by priority and flags.
type Tally struct {
	High, Medium, Low, Other int
	FollowUps                int // stale applications
	Hot                      int // High priority rows still being researched
}

// Tally summarizes the column as of now in loc.
func (c Column) Tally(now time.Time, loc *time.Location) Tally {
	var t Tally
	for _, r := range c.Rows {
		switch r.Priority {
		case model.PriorityHigh:
			t.High++
		case model.PriorityMedium:
			t.Medium++
		case model.PriorityLow:
			t.Low++
		default:
			t.Other++
		}
		if needsFollowUp(r, now, loc) {
			t.FollowUps++
		}
	}
	t.Hot = len(briefing.HotLeads(c.Rows, len(c.Rows)))
	return t
}

func needsFollowUp(r model.OpportunityRow, now time.Time, loc *time.Location) bool {
	if r.Status != model.StatusApplied || r.LastAction == "" {
		return false
	}
	days, ok := briefing.DaysSince(r.LastAction, now, loc)
	return ok && days >= briefing.FollowUpAfterDays
}
