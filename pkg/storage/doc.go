// Package storage provides file storage on the local filesystem or on
// S3-compatible object storage behind one interface.
//
// Keys are always chosen by the caller, so writing the same key twice
// replaces the earlier file.
//
// # Local Storage
//
//	store, err := storage.NewLocal("generated_certificates")
//	if err != nil {
//		return err
//	}
//
//	info, err := store.Put(ctx, bytes.NewReader(pdf), int64(len(pdf)),
//		storage.WithKey("JANE_DOE.pdf"),
//	)
//	path, _ := store.Path(info.Key) // generated_certificates/JANE_DOE.pdf
//
// # S3 Storage
//
//	s3store, err := storage.NewS3(storage.Config{
//		Bucket:    "certificates",
//		AccessKey: os.Getenv("STORAGE_S3_ACCESS_KEY"),
//		SecretKey: os.Getenv("STORAGE_S3_SECRET_KEY"),
//		Endpoint:  "http://localhost:9000", // MinIO
//		PathStyle: true,
//	})
//
// # Validation
//
// Use WithValidation to reject files before they are written. The MIME type
// is sniffed from magic bytes unless WithContentType is given:
//
//	_, err := store.Put(ctx, r, size,
//		storage.WithKey("award.png"),
//		storage.WithValidation(
//			storage.NotEmpty(),
//			storage.MaxSize(10<<20),
//			storage.AllowedTypes("image/png", "image/jpeg"),
//		),
//	)
//	var verr *storage.FileValidationError
//	if errors.As(err, &verr) {
//		// verr.Code is one of the ErrCode* constants
//	}
package storage
