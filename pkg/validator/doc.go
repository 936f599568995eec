// Package validator holds the input checks shared by the dispatch pipeline
// and its callers.
//
// IsEmail is deliberately permissive. It accepts anything shaped like
// "local@domain.tld" at the start of the string and performs no TLD-length or
// domain-label checks:
//
//	validator.IsEmail("jane@example.com") // true
//	validator.IsEmail("a@b.c trailing")   // true
//	validator.IsEmail("bad-email")        // false
//
// ValidationErrors collects field-level problems so a caller can report all
// of them at once:
//
//	var errs validator.ValidationErrors
//	errs.Required("sender_email", in.SenderEmail)
//	errs.Required("selected_template", in.Template)
//	if err := errs.Err(); err != nil {
//		return err
//	}
package validator
