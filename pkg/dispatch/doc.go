// Package dispatch runs a certificate batch: it resolves recipients, renders
// and stores a certificate for each valid address, emails it, and records
// every successful send in the history ledger.
//
// Recipients are processed one at a time. Per-recipient problems (a malformed
// address, a failed send) become Warnings and the batch continues. Problems
// that would affect every recipient abort the batch:
//
//   - ErrConfiguration: missing credentials or template, no recipients,
//     unreadable recipient file, missing NAME or GMAIL column
//   - ErrRendering: the template image or font cannot be loaded
//   - ErrArtifact: a rendered certificate cannot be written
//
// In ModePreview the batch stops after the first valid recipient's
// certificate is stored. No email is sent and the ledger is not touched.
// In ModeSend the ledger is flushed exactly once at the end of the batch.
//
//	p, err := dispatch.New(dispatch.Config{
//		TemplatesDir: "static/certificate_templates",
//		FontsDir:     "fonts",
//		Store:        store,
//		Ledger:       history.NewLedger("sent_history.xlsx"),
//		NewSender: func(c dispatch.Credentials) mailer.Sender {
//			return smtp.New(smtpCfg, c.Address, c.Secret)
//		},
//	})
//	res, err := p.Run(ctx, dispatch.Batch{...})
package dispatch
