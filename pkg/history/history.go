package history

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/storage"
)

// Column headers and sheet layout of the ledger file.
const (
	SheetName    = "Sheet1"
	ColumnName   = "NAME"
	ColumnEmail  = "GMAIL"
	ColumnSentAt = "DATETIME"

	// TimeLayout formats SentAt in local time.
	TimeLayout = "2006-01-02 15:04:05"
)

var (
	ErrCorrupt  = errors.New("history: ledger file cannot be parsed")
	ErrNotFound = errors.New("history: no history file found")
	ErrWrite    = errors.New("history: cannot write ledger")
)

// Entry is one successful send.
type Entry struct {
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	SentAt time.Time `json:"sent_at"`
}

// Ledger is the history file at a fixed path. Its methods are safe for
// concurrent use within a process; see the package doc.
type Ledger struct {
	path string
	mu   sync.Mutex
}

// NewLedger returns a Ledger stored at path.
func NewLedger(path string) *Ledger {
	return &Ledger{path: path}
}

// Path returns the ledger file path.
func (l *Ledger) Path() string {
	return l.path
}

// Exists reports whether the ledger file is present.
func (l *Ledger) Exists() bool {
	_, err := os.Stat(l.path)
	return err == nil
}

// LoadAll returns every entry in file order.
// A missing or unreadable file yields an empty slice.
func (l *Ledger) LoadAll(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.read()
	if err != nil {
		return []Entry{}, nil
	}
	return entries, nil
}

// MergeAndFlush appends pending to the existing entries and rewrites the file.
// The file is written even when pending is empty. If the existing file cannot
// be parsed it is left untouched and ErrCorrupt is returned.
func (l *Ledger) MergeAndFlush(ctx context.Context, pending []Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	existing, err := l.read()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	all := make([]Entry, 0, len(existing)+len(pending))
	all = append(all, existing...)
	all = append(all, pending...)
	return l.write(all)
}

// DeleteAll removes the ledger file.
func (l *Ledger) DeleteAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	err := os.Remove(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("history: delete: %w", err)
	}
	return nil
}

// read returns fs.ErrNotExist (wrapped) when there is no file and ErrCorrupt
// when the file cannot be parsed.
func (l *Ledger) read() ([]Entry, error) {
	f, err := excelize.OpenFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrCorrupt)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return parseRows(rows)
}

func parseRows(rows [][]string) ([]Entry, error) {
	if len(rows) == 0 {
		return []Entry{}, nil
	}

	idx := map[string]int{}
	for i, h := range rows[0] {
		idx[h] = i
	}
	for _, col := range []string{ColumnName, ColumnEmail, ColumnSentAt} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: missing column %s", ErrCorrupt, col)
		}
	}

	cell := func(row []string, col string) string {
		if i := idx[col]; i < len(row) {
			return row[i]
		}
		return ""
	}

	entries := make([]Entry, 0, len(rows)-1)
	for n, row := range rows[1:] {
		raw := cell(row, ColumnSentAt)
		var sentAt time.Time
		if raw != "" {
			t, err := time.ParseInLocation(TimeLayout, raw, time.Local)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: %v", ErrCorrupt, n+2, err)
			}
			sentAt = t
		}
		entries = append(entries, Entry{
			Name:   cell(row, ColumnName),
			Email:  cell(row, ColumnEmail),
			SentAt: sentAt,
		})
	}
	return entries, nil
}

func (l *Ledger) write(entries []Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow(SheetName, "A1", &[]any{ColumnName, ColumnEmail, ColumnSentAt}); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	for i, e := range entries {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
		row := []any{e.Name, e.Email, formatTime(e.SentAt)}
		if err := f.SetSheetRow(SheetName, cellRef, &row); err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := storage.WriteFileAtomic(l.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(time.Local).Format(TimeLayout)
}
