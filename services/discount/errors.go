package discount

import "fmt"

// Rejection reasons surfaced inline next to the code field. They never block
// unrelated navigation.
const (
	ReasonInvalidCode       = "invalid_code"
	ReasonInactive          = "inactive"
	ReasonIneligibleService = "ineligible_service"
	ReasonMinSpend          = "min_spend"
	ReasonAlreadyUsed       = "already_used"
)

// RejectionError carries a categorized discount rejection.
type RejectionError struct {
	Reason  string
	Message string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

// NewRejection builds a categorized rejection.
func NewRejection(reason, msg string) error {
	return &RejectionError{Reason: reason, Message: msg}
}
