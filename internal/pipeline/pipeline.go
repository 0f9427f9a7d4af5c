// Package pipeline runs the daily workflow: read the sheet, search for new
// leads, append the admitted ones, then brief the user.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amishk599/leadbrief/internal/briefing"
	"github.com/amishk599/leadbrief/internal/config"
	"github.com/amishk599/leadbrief/internal/filter"
	"github.com/amishk599/leadbrief/internal/model"
	"github.com/amishk599/leadbrief/internal/priority"
)

// ErrDuplicateCompany is returned by AddLead when the company is already tracked.
var ErrDuplicateCompany = errors.New("company already tracked")

// Result describes a completed run.
type Result struct {
	RunID     string
	Added     []model.OpportunityRow
	Briefing  *briefing.Briefing
	NotifyErr error // non-nil if delivery failed; the run itself still succeeded
}

// Pipeline owns one daily run: read → search → filter → classify → append →
// brief → notify.
type Pipeline struct {
	sheet      model.Sheet
	provider   model.SearchProvider
	notifier   model.Notifier
	classifier *priority.Classifier

	queries   []string
	maxNew    int
	recipient string
	loc       *time.Location
	now       func() time.Time

	logger *slog.Logger
}

// New creates a pipeline wired with its dependencies. Only the query list,
// cap, recipient, timezone and industry rules are taken from cfg.
func New(
	cfg *config.Config,
	sheet model.Sheet,
	provider model.SearchProvider,
	notifier model.Notifier,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		sheet:      sheet,
		provider:   provider,
		notifier:   notifier,
		classifier: priority.NewClassifier(cfg.IndustryPriorities),
		queries:    cfg.Queries,
		maxNew:     cfg.MaxNewPerDay,
		recipient:  cfg.Recipient,
		loc:        cfg.Location,
		now:        time.Now,
		logger:     logger,
	}
}

// Run executes one workflow. Store failures abort the run before anything is
// written. A failing query is logged and skipped. A failed notification is
// logged and reported in Result.NotifyErr; rows already appended stay.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	logger := p.logger.With("run_id", runID)
	now := p.now()
	today := now.In(p.loc).Format(model.DateLayout)

	logger.Info("run started", "queries", len(p.queries), "max_new", p.maxNew)

	rows, err := p.sheet.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}

	lf := filter.NewLeadFilter(filter.ExistingCompanies(rows), p.maxNew)

	var added []model.OpportunityRow
	for _, q := range p.queries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candidates, err := p.provider.Search(ctx, q)
		if err != nil {
			logger.Warn("search failed, skipping query", "query", q, "error", err)
			continue
		}

		admitted := 0
		for _, c := range candidates {
			if strings.TrimSpace(c.Company) == "" {
				logger.Debug("candidate without company skipped", "query", q)
				continue
			}
			if !lf.Admit(c) {
				continue
			}
			pr := p.classifier.Classify(c.Industry)
			added = append(added, model.NewLeadRow(c, pr, today))
			admitted++
			logger.Info("lead admitted", "query", q, "company", c.Company, "industry", c.Industry, "priority", pr)
		}

		logger.Debug("query searched", "query", q, "candidates", len(candidates), "admitted", admitted)
	}

	if len(added) > 0 {
		if err := p.sheet.AppendRows(ctx, added); err != nil {
			return nil, fmt.Errorf("append rows: %w", err)
		}
	}

	rows, err = p.sheet.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("re-read sheet: %w", err)
	}

	b := briefing.Generate(rows, added, now, p.loc)
	for _, company := range b.Undated {
		logger.Warn("last action date not recognized, follow-up check skipped", "company", company)
	}
	msg, err := b.Message(p.recipient)
	if err != nil {
		return nil, err
	}

	res := &Result{RunID: runID, Added: added, Briefing: b}
	if err := p.notifier.Notify(ctx, msg); err != nil {
		logger.Error("notification failed", "error", err)
		res.NotifyErr = err
	}

	logger.Info("run complete",
		"added", len(added),
		"follow_ups", len(b.FollowUps),
		"rows", len(rows),
	)
	return res, nil
}

// AddLead appends a manually entered lead after the same exact-name check
// the daily run applies. The per-run cap does not apply.
func AddLead(ctx context.Context, sheet model.Sheet, classifier *priority.Classifier, c model.Candidate, today string) (model.OpportunityRow, error) {
	if strings.TrimSpace(c.Company) == "" {
		return model.OpportunityRow{}, errors.New("company is required")
	}

	rows, err := sheet.Rows(ctx)
	if err != nil {
		return model.OpportunityRow{}, fmt.Errorf("read sheet: %w", err)
	}
	if _, ok := filter.ExistingCompanies(rows)[c.Company]; ok {
		return model.OpportunityRow{}, fmt.Errorf("%q: %w", c.Company, ErrDuplicateCompany)
	}

	row := model.NewLeadRow(c, classifier.Classify(c.Industry), today)
	if err := sheet.AppendRows(ctx, []model.OpportunityRow{row}); err != nil {
		return model.OpportunityRow{}, fmt.Errorf("append row: %w", err)
	}
	return row, nil
}
