package checkout

import "fmt"

// StateError is an illegal checkout-state transition (e.g. mutating a
// finalized draft or confirming before an intent exists).
type StateError struct {
	From    string
	Message string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("checkout state %s: %s", e.From, e.Message)
}

// NewStateError builds a state-machine violation error.
func NewStateError(from, msg string) error {
	return &StateError{From: from, Message: msg}
}

// PaymentError carries the gateway's own message verbatim. Retryable by
// re-attempting confirmation with the same intent; never retried
// automatically, since card errors need user input.
type PaymentError struct {
	IntentID string
	Message  string
}

func (e *PaymentError) Error() string {
	return e.Message
}

// NewPaymentError wraps a gateway failure for an intent.
func NewPaymentError(intentID, msg string) error {
	return &PaymentError{IntentID: intentID, Message: msg}
}

// CommitError is a backend failure after successful payment. The commit must
// be retried with the same confirmed intent; a second intent is never
// minted.
type CommitError struct {
	IntentID string
	Message  string
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("booking commit failed for %s: %s (retry with the same payment reference)", e.IntentID, e.Message)
}

// NewCommitError wraps a booking-commit failure.
func NewCommitError(intentID, msg string) error {
	return &CommitError{IntentID: intentID, Message: msg}
}
