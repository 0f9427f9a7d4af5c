package store

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/amishk599/leadbrief/internal/model"
)

var _ model.Sheet = (*CSVSheet)(nil)

// CSVSheet stores the opportunity sheet as a CSV file whose first record is
// the header. The file can be opened and edited in any spreadsheet program;
// a UTF-8 byte order mark written by Excel or Sheets is ignored.
type CSVSheet struct {
	path string
}

// NewCSVSheet returns a sheet backed by path, creating the file with the
// header row if it does not exist.
func NewCSVSheet(path string) (*CSVSheet, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, os.ErrExist) {
		return &CSVSheet{path: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("creating csv sheet: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(model.Columns); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	return &CSVSheet{path: path}, nil
}

// Rows returns every data record after checking the header record.
func (s *CSVSheet) Rows(ctx context.Context) ([]model.OpportunityRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening csv sheet: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	if err := skipBOM(br); err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	r := csv.NewReader(br)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, &model.HeaderError{}
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	if err := model.CheckHeader(header); err != nil {
		return nil, err
	}

	var out []model.OpportunityRow
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv sheet: %w", err)
		}
		out = append(out, model.RowFromRecord(rec))
	}
	return out, nil
}

// AppendRows writes rows to the end of the file in one flush.
func (s *CSVSheet) AppendRows(ctx context.Context, rows []model.OpportunityRow) error {
	if len(rows) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_APPEND, 0)
	if err != nil {
		return fmt.Errorf("opening csv sheet: %w", err)
	}
	defer f.Close()

	// A file saved by an editor may lack the final newline.
	if err := ensureTrailingNewline(f); err != nil {
		return fmt.Errorf("appending rows: %w", err)
	}

	w := csv.NewWriter(f)
	for _, r := range rows {
		if err := w.Write(r.ToRecord()); err != nil {
			return fmt.Errorf("appending row for %s: %w", r.Company, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("appending rows: %w", err)
	}
	return nil
}

func ensureTrailingNewline(f *os.File) error {
	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return err
	}
	if last[0] == '\n' {
		return nil
	}
	_, err = f.Write([]byte("\n"))
	return err
}

const utf8BOM = "\uFEFF"

// skipBOM consumes a leading UTF-8 byte order mark, if any.
func skipBOM(br *bufio.Reader) error {
	b, err := br.Peek(len(utf8BOM))
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if string(b) == utf8BOM {
		_, err = br.Discard(len(utf8BOM))
		return err
	}
	return nil
}
