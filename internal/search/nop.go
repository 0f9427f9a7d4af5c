package search

import (
	"context"

	"github.com/amishk599/leadbrief/internal/model"
)

var _ model.SearchProvider = (*NopProvider)(nil)

// NopProvider is the default provider. It returns no candidates for any
// query, so runs only produce a briefing over the existing sheet.
type NopProvider struct{}

func NewNopProvider() *NopProvider { return &NopProvider{} }

func (p *NopProvider) Search(_ context.Context, _ string) ([]model.Candidate, error) {
	return nil, nil
}
