package storage

// Option configures Put operations.
type Option func(*putOptions)

type putOptions struct {
	key             string
	contentType     string
	validationRules []ValidationRule
}

func newPutOptions(opts []Option) *putOptions {
	o := &putOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithKey sets the storage key. Writing to an existing key overwrites it.
func WithKey(key string) Option {
	return func(o *putOptions) {
		o.key = key
	}
}

// WithContentType overrides the content type detected from magic bytes.
func WithContentType(ct string) Option {
	return func(o *putOptions) {
		o.contentType = ct
	}
}

// WithValidation adds validation rules applied before the write.
// If any rule fails, nothing is written and a *FileValidationError is returned.
func WithValidation(rules ...ValidationRule) Option {
	return func(o *putOptions) {
		o.validationRules = append(o.validationRules, rules...)
	}
}
