package wizard

import "fmt"

// NotFoundError means the draft does not exist or its session expired.
type NotFoundError struct {
	DraftID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("booking draft %s not found or expired", e.DraftID)
}

// NewNotFoundError builds a draft-not-found error.
func NewNotFoundError(draftID string) error {
	return &NotFoundError{DraftID: draftID}
}

// GuardError is a validation failure blocking forward navigation. It is
// local and field-scoped; it never reaches the backend.
type GuardError struct {
	Step    int
	Message string
}

func (e *GuardError) Error() string {
	return fmt.Sprintf("step %d incomplete: %s", e.Step, e.Message)
}

// NewGuardError builds a guard failure for the given step.
func NewGuardError(step int, msg string) error {
	return &GuardError{Step: step, Message: msg}
}

// LockedError means checkout has started and the draft no longer accepts
// configuration changes.
type LockedError struct {
	DraftID string
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("booking draft %s is locked for checkout", e.DraftID)
}

// NewLockedError builds a draft-locked error.
func NewLockedError(draftID string) error {
	return &LockedError{DraftID: draftID}
}
