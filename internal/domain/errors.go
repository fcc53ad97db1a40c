package domain

import "fmt"

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

var (
	ErrNotFound          = constError("not found")
	ErrNotAssigned       = constError("resource not assigned to consumer")
	ErrNonPositiveAmount = constError("usage amount must be positive")
	ErrInsufficient      = constError("requested amount exceeds available resource")

	// ErrShape matches every *ShapeError via errors.Is.
	ErrShape = constError("unexpected sustainability context shape")
)

// ShapeError reports a payload that does not match the SustainabilityContext schema.
type ShapeError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ShapeError) Error() string {
	msg := "invalid sustainability context"
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Reason != "" {
		msg += " " + e.Reason
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ShapeError) Unwrap() error { return e.Err }

func (e *ShapeError) Is(target error) bool { return target == ErrShape }
