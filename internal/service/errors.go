package service

import "errors"

var (
	// ErrDecode means the uploaded bytes are not valid UTF-8 text.
	ErrDecode = errors.New("content is not valid UTF-8")
	// ErrInvalidJSON means the upload did not parse as JSON. Nothing is stored.
	ErrInvalidJSON = errors.New("invalid JSON")
	// ErrDuplicate means the user already holds a file of that name.
	ErrDuplicate = errors.New("duplicate filename")
)
