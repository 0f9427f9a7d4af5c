package model

import (
	"context"
	"time"
)

// Sheet is the flat tabular store of opportunity rows. The header row is
// validated on every read and never modified.
type Sheet interface {
	// Rows returns every data row in insertion order.
	Rows(ctx context.Context) ([]OpportunityRow, error)
	// AppendRows writes rows after the current last row, preserving order.
	AppendRows(ctx context.Context, rows []OpportunityRow) error
}

// SearchProvider finds candidate postings for a query. An empty result is normal.
type SearchProvider interface {
	Search(ctx context.Context, query string) ([]Candidate, error)
}

// Message is a rendered briefing ready for delivery.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Notifier delivers a briefing to its recipient.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// Trigger is a registered daily invocation of a named entry point.
type Trigger struct {
	ID        string
	Handler   string
	Hour      int
	Timezone  string
	CreatedAt time.Time
}

// TriggerRegistry stores the daily triggers for this system.
type TriggerRegistry interface {
	ListTriggers(ctx context.Context) ([]Trigger, error)
	CreateTrigger(ctx context.Context, t Trigger) error
	DeleteTrigger(ctx context.Context, id string) error
}
