package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amishk599/leadbrief/internal/model"
)

func TestCSV_CreatesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.csv")
	s, err := NewCSVSheet(path)
	if err != nil {
		t.Fatalf("NewCSVSheet: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join(model.Columns, ",") + "\n"
	if string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}

	rows, err := s.Rows(context.Background())
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("Rows = %v, want none", rows)
	}
}

func TestCSV_AppendAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.csv")
	s, err := NewCSVSheet(path)
	if err != nil {
		t.Fatalf("NewCSVSheet: %v", err)
	}
	ctx := context.Background()

	withComma := row("Acme, Inc.", "Applied")
	withComma.Notes = "said \"call back\""
	if err := s.AppendRows(ctx, []model.OpportunityRow{withComma, row("Beta", "New Lead")}); err != nil {
		t.Fatalf("AppendRows: %v", err)
	}

	// Reopening an existing file keeps its contents.
	s2, err := NewCSVSheet(path)
	if err != nil {
		t.Fatalf("NewCSVSheet(existing): %v", err)
	}
	rows, err := s2.Rows(ctx)
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0] != withComma {
		t.Errorf("rows[0] = %+v, want %+v", rows[0], withComma)
	}
	if rows[1].Company != "Beta" {
		t.Errorf("rows[1].Company = %q", rows[1].Company)
	}
}

func TestCSV_AppendAfterMissingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.csv")
	content := strings.Join(model.Columns, ",") + "\nHigh,Acme,FinTech,,,,,,Applied,2026-01-01,,"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := NewCSVSheet(path)
	if err != nil {
		t.Fatalf("NewCSVSheet: %v", err)
	}
	if err := s.AppendRows(context.Background(), []model.OpportunityRow{row("Beta", "New Lead")}); err != nil {
		t.Fatalf("AppendRows: %v", err)
	}

	rows, err := s.Rows(context.Background())
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if len(rows) != 2 || rows[0].Company != "Acme" || rows[1].Company != "Beta" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestCSV_ShortRecordsArePadded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.csv")
	content := strings.Join(model.Columns, ",") + "\nLow,Gamma\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	s := &CSVSheet{path: path}

	rows, err := s.Rows(context.Background())
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if len(rows) != 1 || rows[0].Company != "Gamma" || rows[0].Status != "" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestCSV_ByteOrderMarkIsIgnored(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"plain header", strings.Join(model.Columns, ",")},
		{"quoted header", `"` + strings.Join(model.Columns, `","`) + `"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "leads.csv")
			content := "\uFEFF" + tt.header + "\r\nHigh,Acme,HealthTech\r\n"
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatal(err)
			}
			s := &CSVSheet{path: path}

			rows, err := s.Rows(context.Background())
			if err != nil {
				t.Fatalf("Rows: %v", err)
			}
			if len(rows) != 1 || rows[0].Company != "Acme" || rows[0].Priority != "High" {
				t.Errorf("rows = %+v", rows)
			}

			if err := s.AppendRows(context.Background(), []model.OpportunityRow{{Priority: "Low", Company: "Beta"}}); err != nil {
				t.Fatalf("AppendRows: %v", err)
			}
			rows, err = s.Rows(context.Background())
			if err != nil {
				t.Fatalf("Rows after append: %v", err)
			}
			if len(rows) != 2 || rows[1].Company != "Beta" {
				t.Errorf("rows after append = %+v", rows)
			}
		})
	}
}

func TestCSV_MalformedHeader(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"renamed column", "Priority,Company\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "leads.csv")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			s := &CSVSheet{path: path}
			if _, err := s.Rows(context.Background()); !errors.Is(err, model.ErrMalformedHeader) {
				t.Errorf("Rows = %v, want ErrMalformedHeader", err)
			}
		})
	}
}

func TestCSV_MissingFile(t *testing.T) {
	s := &CSVSheet{path: filepath.Join(t.TempDir(), "gone.csv")}
	if _, err := s.Rows(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
}
