package recipient

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Column names required in a recipient file.
const (
	ColumnName  = "NAME"
	ColumnEmail = "GMAIL"
)

// Recipient is one unvalidated (name, email) candidate.
type Recipient struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Source describes where recipients come from.
// File takes precedence over the manual fields when set.
type Source struct {
	File     io.Reader
	Filename string // used to pick the parser by extension

	ManualName  string
	ManualEmail string
}

// HasFile reports whether a file was supplied.
func (s Source) HasFile() bool {
	return s.File != nil && s.Filename != ""
}

// Resolve produces the ordered recipient candidates for src.
func Resolve(src Source) ([]Recipient, error) {
	if src.HasFile() {
		return parseFile(src.File, src.Filename)
	}

	name := strings.TrimSpace(src.ManualName)
	email := strings.TrimSpace(src.ManualEmail)
	if name != "" && email != "" {
		return []Recipient{{Name: name, Email: email}}, nil
	}

	return nil, ErrNoRecipients
}

var upper = cases.Upper(language.Und)

// Normalize uppercases the name with full Unicode case mapping and trims the email.
func Normalize(r Recipient) Recipient {
	return Recipient{
		Name:  upper.String(r.Name),
		Email: strings.TrimSpace(r.Email),
	}
}

func parseFile(r io.Reader, filename string) ([]Recipient, error) {
	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(r)
	case ".csv":
		rows, err = readCSV(r)
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q", ErrUnreadable, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	return fromRows(rows)
}

// fromRows treats the first row as the header.
func fromRows(rows [][]string) ([]Recipient, error) {
	if len(rows) == 0 {
		return nil, ErrMissingColumns
	}

	nameIdx, emailIdx := -1, -1
	for i, col := range rows[0] {
		switch col {
		case ColumnName:
			if nameIdx < 0 {
				nameIdx = i
			}
		case ColumnEmail:
			if emailIdx < 0 {
				emailIdx = i
			}
		}
	}
	if nameIdx < 0 || emailIdx < 0 {
		return nil, ErrMissingColumns
	}

	out := make([]Recipient, 0, len(rows)-1)
	for _, row := range rows[1:] {
		name, email := cell(row, nameIdx), cell(row, emailIdx)
		if name == "" || email == "" {
			continue
		}
		out = append(out, Recipient{Name: name, Email: email})
	}
	return out, nil
}

// cell returns "" for cells past the end of a short row.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}
