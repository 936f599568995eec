// Package mailer renders markdown email templates and sends them through a
// pluggable Sender.
//
// Templates are markdown files with optional YAML frontmatter. The body is a
// text/template executed with the caller's data, converted to HTML with
// goldmark and placed into an html/template layout as {{.Content}}:
//
//	---
//	Subject: Your Certificate
//	---
//	Dear {{.Name | md}},
//
//	Please find your certificate attached.
//
// The md function backslash-escapes markdown punctuation so recipient data
// such as "*JANE*" or "[x](http://y)" reaches the HTML part as literal text.
// The plain-text part receives the value unchanged.
//
// The built-in certificate template and base layout are available through
// DefaultTemplates.
//
// # Usage
//
//	sender := smtp.New(smtp.Config{Host: "smtp.gmail.com", Port: 587}, from, appPassword)
//	m := mailer.New(sender, mailer.NewRenderer(mailer.DefaultTemplates()), mailer.Config{
//		DefaultLayout:   "base.html",
//		FallbackSubject: "Your Certificate",
//	})
//
//	att, err := mailer.AttachmentFromFile("generated_certificates/JANE_DOE.pdf")
//	if err != nil {
//		return err
//	}
//	err = m.Send(ctx, mailer.SendParams{
//		To:          "jane@example.com",
//		Template:    mailer.CertificateTemplate,
//		Data:        map[string]string{"Name": "JANE DOE"},
//		Attachments: []mailer.Attachment{att},
//	})
//
// # Providers
//
//   - smtp: go-mail over SMTP with STARTTLS or implicit TLS
//   - resend: the Resend HTTP API
package mailer
