package account

import "fmt"

// Auth failure categories, each with distinct user-facing remediation.
const (
	ReasonInvalidCredentials = "invalid_credentials"
	ReasonUnverifiedEmail    = "unverified_email"
	ReasonWrongAccountType   = "wrong_account_type"
	ReasonRateLimited        = "rate_limited"
)

// AuthError is a categorized sign-in failure.
type AuthError struct {
	Reason  string
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

// NewAuthError builds a categorized sign-in failure.
func NewAuthError(reason, msg string) error {
	return &AuthError{Reason: reason, Message: msg}
}
