package dispatch

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/recipient"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/validator"
)

// Mode selects between sending certificates and previewing one.
type Mode string

const (
	ModeSend    Mode = "send"
	ModePreview Mode = "preview"
)

// Credentials authenticate the sender account for one batch. They are never stored.
type Credentials struct {
	Address string
	Secret  string
}

// Batch is one invocation of the pipeline.
type Batch struct {
	Credentials Credentials
	Template    string // file name inside the templates directory
	Font        string // file name inside the fonts directory; Config.DefaultFont when empty
	Source      recipient.Source
	Mode        Mode
}

func (b Batch) validate() error {
	var errs validator.ValidationErrors
	if strings.TrimSpace(b.Credentials.Address) == "" || strings.TrimSpace(b.Credentials.Secret) == "" {
		errs.Add("credentials", "sender email and app password are required")
	}
	errs.Required("template", b.Template)
	if !isPlainName(b.Template) {
		errs.Add("template", "must be a file name")
	}
	if !isPlainName(b.Font) {
		errs.Add("font", "must be a file name")
	}
	switch b.Mode {
	case ModeSend, ModePreview:
	default:
		errs.Add("mode", fmt.Sprintf("unknown mode %q", b.Mode))
	}
	return errs.Err()
}

// isPlainName reports whether name has no directory part. Empty names pass.
func isPlainName(name string) bool {
	return name == "" || (filepath.Base(name) == name && name != "." && name != "..")
}

// WarningKind classifies a per-recipient problem.
type WarningKind string

const (
	WarningInvalidEmail WarningKind = "invalid_email"
	WarningSendFailed   WarningKind = "send_failed"
)

// Warning is a per-recipient problem that did not stop the batch.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	Message string      `json:"message"`
}

func invalidEmail(r recipient.Recipient) Warning {
	return Warning{
		Kind:    WarningInvalidEmail,
		Name:    r.Name,
		Email:   r.Email,
		Message: "Invalid email format: " + r.Email,
	}
}

func sendFailed(r recipient.Recipient, err error) Warning {
	return Warning{
		Kind:    WarningSendFailed,
		Name:    r.Name,
		Email:   r.Email,
		Message: fmt.Sprintf("Failed to send to %s: %v", r.Email, err),
	}
}

// Result summarizes a finished batch.
type Result struct {
	BatchID     string    `json:"batch_id"`
	Mode        Mode      `json:"mode"`
	PreviewPath string    `json:"preview_path,omitempty"`
	Sent        int       `json:"sent"`
	Warnings    []Warning `json:"warnings"`
}

// Summary returns the message shown after a send batch.
func (r *Result) Summary() string {
	if r.Mode == ModePreview {
		if r.PreviewPath == "" {
			return "No preview generated."
		}
		return "Preview generated: " + r.PreviewPath
	}
	return fmt.Sprintf("Successfully sent %d certificate(s).", r.Sent)
}
