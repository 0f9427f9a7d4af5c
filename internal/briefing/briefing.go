// Package briefing builds the daily summary of the opportunity sheet: status
// counts, stale applications that need a follow-up, the companies added by
// the current run and a short list of suggested actions.
package briefing

import (
	"fmt"
	"strings"
	"time"

	"github.com/amishk599/leadbrief/internal/model"
)

// FollowUpAfterDays is how many calendar days an "Applied" row may sit
// without action before it is flagged.
const FollowUpAfterDays = 5

// StatusCount is one bucket of the status histogram.
type StatusCount struct {
	Status string
	Count  int
}

// Label is the display form of the status; blank cells get a placeholder.
func (s StatusCount) Label() string {
	if s.Status == "" {
		return "(no status)"
	}
	return s.Status
}

// FollowUp is a stale application.
type FollowUp struct {
	Company string
	Days    int
}

func (f FollowUp) String() string {
	return fmt.Sprintf("%s (applied %d days ago)", f.Company, f.Days)
}

// Briefing is the generated daily summary.
type Briefing struct {
	Date         string // YYYY-MM-DD in the configured timezone
	Total        int
	Statuses     []StatusCount // first-encounter order
	FollowUps    []FollowUp    // sheet order
	NewCompanies []model.OpportunityRow
	Undated      []string // Applied rows whose LastAction could not be read
}

// Generate summarizes rows (the full sheet after this run's writes). added
// holds the rows appended by this run.
func Generate(rows, added []model.OpportunityRow, now time.Time, loc *time.Location) *Briefing {
	b := &Briefing{
		Date:         now.In(loc).Format(model.DateLayout),
		Total:        len(rows),
		NewCompanies: added,
	}

	index := make(map[string]int)
	for _, r := range rows {
		i, ok := index[r.Status]
		if !ok {
			i = len(b.Statuses)
			index[r.Status] = i
			b.Statuses = append(b.Statuses, StatusCount{Status: r.Status})
		}
		b.Statuses[i].Count++

		if r.Status != model.StatusApplied || r.LastAction == "" {
			continue
		}
		days, ok := DaysSince(r.LastAction, now, loc)
		if !ok {
			b.Undated = append(b.Undated, r.Company)
			continue
		}
		if days >= FollowUpAfterDays {
			b.FollowUps = append(b.FollowUps, FollowUp{Company: r.Company, Days: days})
		}
	}

	return b
}

// dateLayouts are the cell formats accepted for DateAdded and LastAction.
// Spreadsheets tend to rewrite ISO dates into one of the others on save.
// Slashed dates are read month first.
var dateLayouts = []string{
	model.DateLayout,
	"2006-1-2",
	"2006/1/2",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// ParseDate reads a date cell in loc. A trailing time of day, separated by a
// space or "T", is ignored.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	candidates := []string{s}
	if i := strings.IndexAny(s, " T"); i > 0 {
		candidates = append(candidates, s[:i])
	}
	for _, c := range candidates {
		for _, layout := range dateLayouts {
			if t, err := time.ParseInLocation(layout, c, loc); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// DaysSince returns the number of calendar days between date and now, both
// taken in loc. It reports false if date cannot be parsed.
func DaysSince(date string, now time.Time, loc *time.Location) (int, bool) {
	then, ok := ParseDate(date, loc)
	if !ok {
		return 0, false
	}
	return civilDay(now.In(loc)) - civilDay(then), true
}

// civilDay numbers calendar days so that DST shifts never change a difference.
func civilDay(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// Actions is the closing checklist: follow-ups, research for new companies,
// then two fixed daily goals.
func (b *Briefing) Actions() []string {
	var out []string
	for _, f := range b.FollowUps {
		out = append(out, "Follow up with "+f.Company)
	}
	for _, r := range b.NewCompanies {
		out = append(out, "Research "+r.Company)
	}
	return append(out, "Send 2-3 outreach messages", "Apply to 2 new positions")
}

// Subject summarizes the counts for the message subject line.
func (b *Briefing) Subject() string {
	return fmt.Sprintf("Daily Job Search Briefing: %d new leads, %d follow-ups",
		len(b.NewCompanies), len(b.FollowUps))
}

// Message renders the briefing for delivery to recipient.
func (b *Briefing) Message(recipient string) (model.Message, error) {
	html, err := b.HTML()
	if err != nil {
		return model.Message{}, err
	}
	text, err := htmlToText(html)
	if err != nil {
		return model.Message{}, err
	}
	return model.Message{
		To:      recipient,
		Subject: b.Subject(),
		HTML:    html,
		Text:    text,
	}, nil
}
