package apperrors

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrAmbiguousSelector = errors.New("selector matches more than one mentee")
	ErrMirrorUnavailable = errors.New("record store unavailable and no cached snapshot")
)
