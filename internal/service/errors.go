package service

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrInvalidToken     = errors.New("invalid token")
	ErrUsernameTaken    = errors.New("a user with that username already exists")
	ErrPostNotFound     = errors.New("post not found")
	ErrPageNotFound     = errors.New("invalid page")
	ErrUnsupportedImage = errors.New("unsupported image format")
)

// ValidationError reports a user-supplied field that was rejected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
