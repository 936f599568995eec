package certificate

import "errors"

var (
	// ErrRender is the parent of every rendering failure.
	ErrRender = errors.New("certificate: render failed")

	// ErrTemplate indicates the template image could not be opened or decoded.
	ErrTemplate = errors.New("certificate: template cannot be loaded")

	// ErrFont indicates the font file could not be opened or parsed.
	ErrFont = errors.New("certificate: font cannot be loaded")

	// ErrEncode indicates the rendered image could not be encoded.
	ErrEncode = errors.New("certificate: encode failed")
)
