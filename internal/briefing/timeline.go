package briefing

import (
	"sort"
	"time"

	"github.com/amishk599/leadbrief/internal/model"
)

// EventKind labels a timeline entry.
type EventKind string

const (
	EventAdded    EventKind = "Added"
	EventAction   EventKind = "Action"
	EventFollowUp EventKind = "Follow-up"
)

// Event is one dated entry of the sheet timeline.
type Event struct {
	Date    time.Time
	Kind    EventKind
	Company string
}

// Timeline lists when each company was added, when it was last acted on and,
// for applications, the day a follow-up becomes due. Newest first; events on
// the same day keep sheet order. Unreadable dates produce no event.
func Timeline(rows []model.OpportunityRow, loc *time.Location) []Event {
	var out []Event
	for _, r := range rows {
		if d, ok := ParseDate(r.DateAdded, loc); ok {
			out = append(out, Event{Date: d, Kind: EventAdded, Company: r.Company})
		}
		last, ok := ParseDate(r.LastAction, loc)
		if !ok {
			continue
		}
		out = append(out, Event{Date: last, Kind: EventAction, Company: r.Company})
		if r.Status == model.StatusApplied {
			out = append(out, Event{Date: last.AddDate(0, 0, FollowUpAfterDays), Kind: EventFollowUp, Company: r.Company})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// HotLeadStatuses are the statuses of leads still waiting to be researched.
var HotLeadStatuses = []string{"To Research", "Researching"}

// HotLeads returns up to limit High priority rows that are still being
// researched, in sheet order.
func HotLeads(rows []model.OpportunityRow, limit int) []model.OpportunityRow {
	var out []model.OpportunityRow
	for _, r := range rows {
		if len(out) >= limit {
			break
		}
		if r.Priority != model.PriorityHigh {
			continue
		}
		for _, s := range HotLeadStatuses {
			if r.Status == s {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
