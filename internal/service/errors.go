package service

import (
	"errors"
	"fmt"
)

// Domain errors crossing the service boundary. Handlers translate them into
// HTTP statuses and response codes; they are never surfaced as bare errors.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNameTaken          = errors.New("a user with this name already exists")
	// ErrUnavailableTeacher means the booking target was not an active teacher
	// at call time. The caller should re-fetch the availability index and
	// retry once.
	ErrUnavailableTeacher = errors.New("teacher is not currently bookable")
	// ErrInvalidTransition means a decision was attempted on a non-pending
	// appointment. The state is final; the call must not be retried.
	ErrInvalidTransition = errors.New("appointment is not pending")
	ErrDuplicateRequest  = errors.New("an identical pending request already exists")
)

// ConflictError blocks a directory delete while appointments still reference
// the user. References carries the count for the error message.
type ConflictError struct {
	References int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("user is referenced by %d appointment(s)", e.References)
}
