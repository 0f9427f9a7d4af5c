package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/amishk599/leadbrief/internal/model"
)

var (
	_ model.Sheet           = (*SQLiteStore)(nil)
	_ model.TriggerRegistry = (*SQLiteStore)(nil)
)

// SQLiteStore keeps the opportunity sheet and the trigger registry in one
// SQLite database. The sheet header lives in its own table so that a
// hand-edited database with renamed columns is detected on read.
type SQLiteStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS sheet_header (
	position INTEGER PRIMARY KEY,
	name     TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS opportunities (
	row_num     INTEGER PRIMARY KEY AUTOINCREMENT,
	priority    TEXT NOT NULL DEFAULT '',
	company     TEXT NOT NULL DEFAULT '',
	industry    TEXT NOT NULL DEFAULT '',
	type        TEXT NOT NULL DEFAULT '',
	location    TEXT NOT NULL DEFAULT '',
	job_link    TEXT NOT NULL DEFAULT '',
	website     TEXT NOT NULL DEFAULT '',
	contact     TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL DEFAULT '',
	date_added  TEXT NOT NULL DEFAULT '',
	last_action TEXT NOT NULL DEFAULT '',
	notes       TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS triggers (
	id         TEXT PRIMARY KEY,
	handler    TEXT NOT NULL,
	hour       INTEGER NOT NULL,
	timezone   TEXT NOT NULL,
	created_at TEXT NOT NULL
);`

// NewSQLiteStore opens (or creates) a SQLite database at dbPath, ensures the
// tables exist and seeds the header row on first use.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.seedHeader(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) seedHeader() error {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM sheet_header").Scan(&count); err != nil {
		return fmt.Errorf("checking sheet header: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("seeding sheet header: %w", err)
	}
	defer tx.Rollback()
	for i, name := range model.Columns {
		if _, err := tx.Exec("INSERT INTO sheet_header (position, name) VALUES (?, ?)", i, name); err != nil {
			return fmt.Errorf("seeding sheet header: %w", err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) header(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM sheet_header ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("reading sheet header: %w", err)
	}
	defer rows.Close()

	var header []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("reading sheet header: %w", err)
		}
		header = append(header, name)
	}
	return header, rows.Err()
}

// Rows returns every opportunity row in insertion order after checking the header.
func (s *SQLiteStore) Rows(ctx context.Context) ([]model.OpportunityRow, error) {
	header, err := s.header(ctx)
	if err != nil {
		return nil, err
	}
	if err := model.CheckHeader(header); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT priority, company, industry, type, location, job_link,
		website, contact, status, date_added, last_action, notes
		FROM opportunities ORDER BY row_num`)
	if err != nil {
		return nil, fmt.Errorf("reading opportunities: %w", err)
	}
	defer rows.Close()

	var out []model.OpportunityRow
	for rows.Next() {
		rec := make([]string, len(model.Columns))
		dest := make([]any, len(rec))
		for i := range rec {
			dest[i] = &rec[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("reading opportunities: %w", err)
		}
		out = append(out, model.RowFromRecord(rec))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading opportunities: %w", err)
	}
	return out, nil
}

// AppendRows inserts rows after the current last row in a single transaction.
func (s *SQLiteStore) AppendRows(ctx context.Context, rows []model.OpportunityRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("appending rows: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO opportunities (priority, company, industry, type,
		location, job_link, website, contact, status, date_added, last_action, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("appending rows: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		rec := r.ToRecord()
		args := make([]any, len(rec))
		for i, v := range rec {
			args[i] = v
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("appending row for %s: %w", r.Company, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("appending rows: %w", err)
	}
	return nil
}

// ListTriggers returns all registered triggers, oldest first.
func (s *SQLiteStore) ListTriggers(ctx context.Context) ([]model.Trigger, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, handler, hour, timezone, created_at FROM triggers ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("listing triggers: %w", err)
	}
	defer rows.Close()

	var out []model.Trigger
	for rows.Next() {
		var t model.Trigger
		var created string
		if err := rows.Scan(&t.ID, &t.Handler, &t.Hour, &t.Timezone, &created); err != nil {
			return nil, fmt.Errorf("listing triggers: %w", err)
		}
		t.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at for trigger %s: %w", t.ID, err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// CreateTrigger stores t.
func (s *SQLiteStore) CreateTrigger(ctx context.Context, t model.Trigger) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO triggers (id, handler, hour, timezone, created_at) VALUES (?, ?, ?, ?, ?)",
		t.ID, t.Handler, t.Hour, t.Timezone, t.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("creating trigger %s: %w", t.ID, err)
	}
	return nil
}

// DeleteTrigger removes the trigger with the given id. Unknown ids are a no-op.
func (s *SQLiteStore) DeleteTrigger(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM triggers WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting trigger %s: %w", id, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
