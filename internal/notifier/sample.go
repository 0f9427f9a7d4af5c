package notifier

import (
	"context"
	"time"

	"github.com/amishk599/leadbrief/internal/briefing"
	"github.com/amishk599/leadbrief/internal/model"
)

// SendTestMessage sends a sample briefing to verify the integration works.
// Nothing is read from or written to the store.
func SendTestMessage(ctx context.Context, n model.Notifier, recipient string, now time.Time, loc *time.Location) error {
	today := now.In(loc)
	applied := today.AddDate(0, 0, -(briefing.FollowUpAfterDays + 1)).Format(model.DateLayout)

	added := []model.OpportunityRow{{
		Priority:  model.PriorityHigh,
		Company:   "Example FinTech",
		Industry:  "FinTech",
		Status:    model.StatusNewLead,
		DateAdded: today.Format(model.DateLayout),
	}}
	rows := append([]model.OpportunityRow{{
		Priority:   model.PriorityMedium,
		Company:    "Example Health",
		Industry:   "HealthTech",
		Status:     model.StatusApplied,
		DateAdded:  applied,
		LastAction: applied,
	}}, added...)

	msg, err := briefing.Generate(rows, added, now, loc).Message(recipient)
	if err != nil {
		return err
	}
	msg.Subject = "[test] " + msg.Subject
	return n.Notify(ctx, msg)
}
