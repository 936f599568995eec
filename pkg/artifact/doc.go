// Package artifact persists rendered certificates.
//
// Every certificate is written as a single-page PDF named after the recipient.
// In preview mode a PNG of the same image is written next to it:
//
//	local, _ := storage.NewLocal("generated_certificates")
//	store := artifact.NewStore(local, artifact.WithLogger(log))
//
//	paths, err := store.Save(ctx, img, "JANE DOE", false)
//	// paths.Document == "generated_certificates/JANE_DOE.pdf"
//
// File names come from SanitizeName, so two names that differ only in
// punctuation share a file and the later write wins.
//
// A mirror storage, usually S3, receives a copy of each file under the same
// key. Mirror failures are logged and never fail the save.
package artifact
