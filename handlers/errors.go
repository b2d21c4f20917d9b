package handlers

import (
	"errors"
	"net/http"

	"swiftmove/services/account"
	"swiftmove/services/checkout"
	"swiftmove/services/discount"
	"swiftmove/services/pricing"
	"swiftmove/services/wizard"

	"github.com/gin-gonic/gin"
)

// respondError converts typed service errors into JSON responses. Raw
// transport errors never reach the client.
func respondError(c *gin.Context, err error) {
	var notFound *wizard.NotFoundError
	var guard *wizard.GuardError
	var locked *wizard.LockedError
	var rejection *discount.RejectionError
	var authErr *account.AuthError
	var stale *pricing.QuoteRefreshError
	var stateErr *checkout.StateError
	var payErr *checkout.PaymentError
	var commitErr *checkout.CommitError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "booking draft not found or expired"})
	case errors.As(err, &guard):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": guard.Message, "step": guard.Step})
	case errors.As(err, &locked):
		c.JSON(http.StatusConflict, gin.H{"error": "checkout in progress; cancel it before editing the booking"})
	case errors.As(err, &rejection):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": rejection.Message, "reason": rejection.Reason})
	case errors.As(err, &authErr):
		c.JSON(authStatus(authErr.Reason), gin.H{"error": authErr.Message, "reason": authErr.Reason})
	case errors.As(err, &stale):
		c.JSON(http.StatusConflict, gin.H{"error": "price could not be refreshed; please retry", "retryable": true})
	case errors.As(err, &stateErr):
		c.JSON(http.StatusConflict, gin.H{"error": stateErr.Message, "state": stateErr.From})
	case errors.As(err, &payErr):
		// Gateway message passes through verbatim.
		c.JSON(http.StatusPaymentRequired, gin.H{"error": payErr.Message, "payment_intent_id": payErr.IntentID})
	case errors.As(err, &commitErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": commitErr.Message, "payment_intent_id": commitErr.IntentID, "retryable": true})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong, please try again"})
	}
}

func authStatus(reason string) int {
	switch reason {
	case account.ReasonRateLimited:
		return http.StatusTooManyRequests
	case account.ReasonUnverifiedEmail, account.ReasonWrongAccountType:
		return http.StatusForbidden
	default:
		return http.StatusUnauthorized
	}
}
