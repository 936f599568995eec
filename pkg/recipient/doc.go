// Package recipient turns a recipient source into an ordered list of
// (name, email) candidates.
//
// A source is either an uploaded spreadsheet or a single manual entry. The
// spreadsheet must have a header row with columns named exactly NAME and GMAIL;
// any other columns are ignored and rows missing either value are dropped.
//
//	recipients, err := recipient.Resolve(recipient.Source{
//		File:     f,
//		Filename: "students.xlsx",
//	})
//	switch {
//	case errors.Is(err, recipient.ErrMissingColumns):
//		// header lacks NAME or GMAIL
//	case errors.Is(err, recipient.ErrUnreadable):
//		// corrupt or unsupported file
//	}
//
// Resolve does not validate email addresses. Candidates are normalized with
// Normalize before use: the name is uppercased and the email trimmed.
package recipient
