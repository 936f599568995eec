package dispatch

import "errors"

var (
	ErrConfiguration = errors.New("dispatch: invalid batch configuration")
	ErrRendering     = errors.New("dispatch: certificate rendering failed")
	ErrArtifact      = errors.New("dispatch: cannot store certificate")
	ErrHistory       = errors.New("dispatch: cannot update send history")
)
