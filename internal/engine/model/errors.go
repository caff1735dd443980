package model

import (
	"errors"
	"fmt"
)

// ErrMalformedAsset is wrapped by load errors caused by unreadable or
// structurally invalid asset files.
var ErrMalformedAsset = errors.New("malformed asset")

// LoadError reports a failed model import.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load model %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedAsset, fmt.Sprintf(format, args...))
}
