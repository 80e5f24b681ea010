package entity

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound  = errors.New("composer session not found")
	ErrSubmitInProgress = errors.New("submission in progress")
	ErrOperationPending = errors.New("an AI operation is still running")
	ErrDirectoryLoading = errors.New("brand templates are still loading")
	ErrSessionClosed    = errors.New("composer session closed")
	ErrPostNotFound     = errors.New("post not found")
	ErrForbidden        = errors.New("forbidden")
)

type ValidationKind string

const (
	NoPlatformSelected ValidationKind = "NoPlatformSelected"
	EmptyContent       ValidationKind = "EmptyContent"
	NoBrandSelected    ValidationKind = "NoBrandSelected"
	InvalidURL         ValidationKind = "InvalidUrl"
)

var validationMessages = map[ValidationKind]string{
	NoPlatformSelected: "You have to select at least one platform.",
	EmptyContent:       "Post content cannot be empty.",
	NoBrandSelected:    "Please select a brand template.",
	InvalidURL:         "Please enter a valid URL.",
}

// ValidationError blocks a transition and names the offending draft field.
type ValidationError struct {
	Kind  ValidationKind `json:"kind"`
	Field string         `json:"field"`
}

func NewValidationError(kind ValidationKind, field string) *ValidationError {
	return &ValidationError{Kind: kind, Field: field}
}

func (e *ValidationError) Error() string {
	if msg, ok := validationMessages[e.Kind]; ok {
		return msg
	}
	return string(e.Kind)
}

type RemoteKind string

const (
	TextImprovementFailed RemoteKind = "TextImprovementFailed"
	ImageGenerationFailed RemoteKind = "ImageGenerationFailed"
	PersistenceFailed     RemoteKind = "PersistenceFailed"
)

type RemoteServiceError struct {
	Kind RemoteKind
	Err  error
}

func (e *RemoteServiceError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *RemoteServiceError) Unwrap() error {
	return e.Err
}

func IsValidation(err error, kind ValidationKind) bool {
	var ve *ValidationError
	return errors.As(err, &ve) && ve.Kind == kind
}

func IsRemote(err error, kind RemoteKind) bool {
	var re *RemoteServiceError
	return errors.As(err, &re) && re.Kind == kind
}
