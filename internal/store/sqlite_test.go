package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/amishk599/leadbrief/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func row(company, status string) model.OpportunityRow {
	return model.OpportunityRow{
		Priority:  model.PriorityMedium,
		Company:   company,
		Industry:  "SaaS",
		Status:    status,
		DateAdded: "2026-01-02",
	}
}

func TestSQLite_HeaderOnlyHasNoRows(t *testing.T) {
	s := newTestStore(t)

	rows, err := s.Rows(context.Background())
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("Rows = %v, want none", rows)
	}
}

func TestSQLite_AppendPreservesOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.AppendRows(ctx, []model.OpportunityRow{row("A", "Applied"), row("B", "New Lead")}); err != nil {
		t.Fatalf("AppendRows: %v", err)
	}
	if err := s.AppendRows(ctx, []model.OpportunityRow{row("C", "New Lead")}); err != nil {
		t.Fatalf("AppendRows: %v", err)
	}

	rows, err := s.Rows(ctx)
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	want := []string{"A", "B", "C"}
	if len(rows) != len(want) {
		t.Fatalf("len(rows) = %d, want %d", len(rows), len(want))
	}
	for i, name := range want {
		if rows[i].Company != name {
			t.Errorf("rows[%d].Company = %q, want %q", i, rows[i].Company, name)
		}
	}
	if rows[0] != row("A", "Applied") {
		t.Errorf("rows[0] = %+v, fields not round-tripped", rows[0])
	}
}

func TestSQLite_AppendEmptyIsNoop(t *testing.T) {
	s := newTestStore(t)
	if err := s.AppendRows(context.Background(), nil); err != nil {
		t.Fatalf("AppendRows(nil): %v", err)
	}
}

func TestSQLite_ReopenKeepsRows(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reopen.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if err := s.AppendRows(context.Background(), []model.OpportunityRow{row("A", "Applied")}); err != nil {
		t.Fatalf("AppendRows: %v", err)
	}
	s.Close()

	s2, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	rows, err := s2.Rows(context.Background())
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if len(rows) != 1 || rows[0].Company != "A" {
		t.Errorf("rows after reopen = %+v", rows)
	}
}

func TestSQLite_MalformedHeader(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.db.Exec("UPDATE sheet_header SET name = 'Company' WHERE position = 1"); err != nil {
		t.Fatalf("renaming header: %v", err)
	}

	_, err := s.Rows(context.Background())
	if !errors.Is(err, model.ErrMalformedHeader) {
		t.Fatalf("Rows = %v, want ErrMalformedHeader", err)
	}
}

func TestSQLite_Triggers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	trig := model.Trigger{ID: "t-1", Handler: "daily-briefing", Hour: 8, Timezone: "UTC", CreatedAt: created}
	if err := s.CreateTrigger(ctx, trig); err != nil {
		t.Fatalf("CreateTrigger: %v", err)
	}

	got, err := s.ListTriggers(ctx)
	if err != nil {
		t.Fatalf("ListTriggers: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ListTriggers = %v, want 1", got)
	}
	if got[0].ID != "t-1" || got[0].Handler != "daily-briefing" || got[0].Hour != 8 || !got[0].CreatedAt.Equal(created) {
		t.Errorf("trigger = %+v", got[0])
	}

	if err := s.DeleteTrigger(ctx, "t-1"); err != nil {
		t.Fatalf("DeleteTrigger: %v", err)
	}
	if err := s.DeleteTrigger(ctx, "missing"); err != nil {
		t.Fatalf("DeleteTrigger(unknown): %v", err)
	}
	got, err = s.ListTriggers(ctx)
	if err != nil {
		t.Fatalf("ListTriggers: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ListTriggers after delete = %v", got)
	}
}
