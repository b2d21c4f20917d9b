package pricing

import "fmt"

// QuoteRefreshError signals a recomputation that failed or was superseded.
// The previous valid quote stays in place; checkout must not proceed on it.
type QuoteRefreshError struct {
	Code    string
	Message string
}

func (e *QuoteRefreshError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewQuoteRefreshError builds a recoverable quote-staleness error.
func NewQuoteRefreshError(msg string) error {
	return &QuoteRefreshError{
		Code:    "quoteRefreshError",
		Message: msg,
	}
}
