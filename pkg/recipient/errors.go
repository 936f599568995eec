package recipient

import "errors"

var (
	// ErrNoRecipients indicates neither a file nor a complete manual entry was supplied.
	ErrNoRecipients = errors.New("recipient: no recipients specified")

	// ErrMissingColumns indicates the spreadsheet header lacks NAME or GMAIL.
	ErrMissingColumns = errors.New("recipient: file must contain 'NAME' and 'GMAIL' columns")

	// ErrUnreadable indicates the file could not be parsed.
	ErrUnreadable = errors.New("recipient: failed to read file")
)
