// Package sanitizer filters HTML built from untrusted input before it is sent.
//
// Recipient names come from uploaded spreadsheets and end up inside the
// rendered email body. EmailHTML keeps the elements markdown renders to and
// removes everything else:
//
//	body := sanitizer.EmailHTML(rendered)
package sanitizer
