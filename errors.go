package sitedesk

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record id does not exist in its collection.
	ErrNotFound = errors.New("record not found")
	// ErrNotConfirmed is returned when a deletion arrives without confirmation.
	ErrNotConfirmed = errors.New("deletion was not confirmed")
	// ErrNoFiles is returned when an upload carries no files at all.
	ErrNoFiles = errors.New("no files selected")
	// ErrNoImages is returned when every file in an upload is not an image.
	ErrNoImages = errors.New("please select image files only")
	// ErrNoPhotos is returned when a photo form is committed with an empty preview.
	ErrNoPhotos = errors.New("please upload at least one photo")
)

// ValidationError reports a rejected form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// IsUserError reports whether err is caused by operator input rather than the
// system, so it should be shown as a notice instead of a server error.
func IsUserError(err error) bool {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return true
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNotConfirmed),
		errors.Is(err, ErrNoFiles), errors.Is(err, ErrNoImages), errors.Is(err, ErrNoPhotos):
		return true
	}
	return false
}
