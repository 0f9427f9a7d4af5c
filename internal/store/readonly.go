package store

import (
	"context"
	"log/slog"

	"github.com/amishk599/leadbrief/internal/model"
)

var _ model.Sheet = (*ReadOnlySheet)(nil)

// ReadOnlySheet is used in check mode. Appends are kept in memory and
// overlaid on reads, so a dry run briefs exactly what a real run would
// while the underlying sheet is never written.
type ReadOnlySheet struct {
	inner   model.Sheet
	pending []model.OpportunityRow
	logger  *slog.Logger
}

func NewReadOnlySheet(inner model.Sheet, logger *slog.Logger) *ReadOnlySheet {
	return &ReadOnlySheet{inner: inner, logger: logger}
}

func (s *ReadOnlySheet) Rows(ctx context.Context) ([]model.OpportunityRow, error) {
	rows, err := s.inner.Rows(ctx)
	if err != nil {
		return nil, err
	}
	return append(rows, s.pending...), nil
}

func (s *ReadOnlySheet) AppendRows(_ context.Context, rows []model.OpportunityRow) error {
	for _, r := range rows {
		s.logger.Info("dry run: would append row", "company", r.Company, "priority", r.Priority)
	}
	s.pending = append(s.pending, rows...)
	return nil
}
