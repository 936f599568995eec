package mailer

import (
	"embed"
	"io/fs"
)

// CertificateTemplate is the built-in template used for certificate emails.
const CertificateTemplate = "certificate.md"

//go:embed templates
var embedded embed.FS

// DefaultTemplates returns the built-in templates and layouts.
func DefaultTemplates() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}
