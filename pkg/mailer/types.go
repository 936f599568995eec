package mailer

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
)

// Tags are provider metadata attached to a message, such as the batch ID.
// Providers without tag support ignore them.
type Tags map[string]string

// Address formats a name and email as "Name <email>", or just email when name is empty.
func Address(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Email is a message ready for a Sender.
type Email struct {
	Tags        Tags
	Subject     string
	HTML        string
	Text        string
	From        string
	ReplyTo     string
	To          []string
	Attachments []Attachment
}

// Attachment is a file sent along with an Email.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// AttachmentFromFile reads path into an Attachment named after its base name.
// The content type is derived from the extension.
func AttachmentFromFile(path string) (Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Attachment{}, fmt.Errorf("%w: %s: %v", ErrAttachment, path, err)
	}

	ct := mime.TypeByExtension(filepath.Ext(path))
	if ct == "" {
		ct = "application/octet-stream"
	}

	return Attachment{
		Filename:    filepath.Base(path),
		ContentType: ct,
		Content:     data,
	}, nil
}
