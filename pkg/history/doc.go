// Package history keeps the ledger of successfully sent certificates in an
// xlsx workbook with the columns NAME, GMAIL and DATETIME.
//
// A batch collects its entries in memory and hands them to MergeAndFlush once,
// which appends them to whatever the file already holds and replaces the file
// atomically:
//
//	ledger := history.NewLedger("sent_history.xlsx")
//	if err := ledger.MergeAndFlush(ctx, pending); err != nil {
//		return err
//	}
//
// Re-running a batch appends duplicate rows; the ledger records sends, not
// recipients.
//
// A Ledger holds a mutex around each read and each read-merge-write, so batches
// in one process sharing a Ledger never interleave a flush. Nothing coordinates
// separate processes or separate Ledger values pointing at the same file; the
// last rename wins.
package history
