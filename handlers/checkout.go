package handlers

import (
	"net/http"

	"swiftmove/models"
	"swiftmove/utils"

	"github.com/gin-gonic/gin"
)

// intentResponse is the wire shape of a created payment intent.
func intentResponse(draft *models.BookingDraft) gin.H {
	return gin.H{
		"payment_intent_id": draft.Checkout.PaymentIntentID,
		"client_secret":     draft.Checkout.ClientSecret,
		"amount_dollars":    draft.Checkout.AmountDollars,
		"checkout_state":    draft.Checkout.State,
	}
}

// CreatePaymentIntentHandler is phase 1 for guest drafts.
func (hb *HandlerBundle) CreatePaymentIntentHandler(c *gin.Context) {
	var input struct {
		DraftID string `json:"draft_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	draft, err := hb.Checkout.CreateIntent(c.Request.Context(), input.DraftID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, intentResponse(draft))
}

// CreateCustomerPaymentIntentHandler is phase 1 for authenticated drafts;
// the draft must belong to the signed-in customer.
func (hb *HandlerBundle) CreateCustomerPaymentIntentHandler(c *gin.Context) {
	var input struct {
		DraftID string `json:"draft_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if !hb.draftOwnedByCaller(c, input.DraftID) {
		return
	}
	draft, err := hb.Checkout.CreateIntent(c.Request.Context(), input.DraftID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, intentResponse(draft))
}

// bookingCreateInput is shared by the guest and customer booking-creation
// endpoints: the intent the client confirmed plus the draft it belongs to.
type bookingCreateInput struct {
	DraftID         string `json:"draft_id" binding:"required"`
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
}

func (hb *HandlerBundle) commitBooking(c *gin.Context, input bookingCreateInput) {
	ctx := c.Request.Context()
	draft, err := hb.Wizard.GetDraft(ctx, input.DraftID)
	if err != nil {
		respondError(c, err)
		return
	}
	if draft.Checkout.PaymentIntentID != input.PaymentIntentID {
		c.JSON(http.StatusConflict, gin.H{"error": "payment intent does not match this draft"})
		return
	}

	// Free orders skip confirmation entirely and route straight to commit.
	if !models.IsFreeOrderIntent(input.PaymentIntentID) {
		if _, err := hb.Checkout.VerifyPayment(ctx, input.DraftID); err != nil {
			respondError(c, err)
			return
		}
	}

	booking, err := hb.Checkout.Commit(ctx, input.DraftID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"booking_number": booking.BookingNumber,
		"status":         booking.Status,
		"amount_dollars": booking.AmountDollars,
	})
}

// GuestBookingHandler is phase 2+3 for guests: verify the confirmed intent,
// then commit the booking idempotently.
func (hb *HandlerBundle) GuestBookingHandler(c *gin.Context) {
	var input bookingCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	hb.commitBooking(c, input)
}

// CustomerBookingCreateHandler is phase 2+3 for authenticated customers.
// The used addresses are saved on the account as a side effect.
func (hb *HandlerBundle) CustomerBookingCreateHandler(c *gin.Context) {
	var input bookingCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if !hb.draftOwnedByCaller(c, input.DraftID) {
		return
	}
	hb.commitBooking(c, input)
}

// CancelCheckoutHandler abandons an unconfirmed checkout, unlocking the
// draft for further edits.
func (hb *HandlerBundle) CancelCheckoutHandler(c *gin.Context) {
	draft, err := hb.Checkout.Cancel(c.Request.Context(), c.Param("draftID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draftResponse(draft))
}

// GetBookingHandler looks a committed booking up by its public number, the
// reference guests get on the confirmation screen.
func (hb *HandlerBundle) GetBookingHandler(c *gin.Context) {
	booking, err := hb.Bookings.GetByNumber(c.Request.Context(), c.Param("bookingNumber"))
	if err != nil {
		respondError(c, err)
		return
	}
	if booking == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"booking_number": booking.BookingNumber,
		"status":         booking.Status,
		"service_type":   booking.Service.Type,
		"pickup_date":    booking.Schedule.PickupDate,
		"amount_dollars": booking.AmountDollars,
		"created_at":     booking.CreatedAt,
	})
}

// draftOwnedByCaller checks the draft belongs to the authenticated customer
// on the request; it writes the response itself when the check fails.
func (hb *HandlerBundle) draftOwnedByCaller(c *gin.Context, draftID string) bool {
	customerID, ok := c.Get("customerID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return false
	}
	draft, err := hb.Wizard.GetDraft(c.Request.Context(), draftID)
	if err != nil {
		respondError(c, err)
		return false
	}
	if draft.Identity != models.IdentityAuthenticated || draft.CustomerID != customerID.(string) {
		c.JSON(http.StatusForbidden, gin.H{"error": "draft does not belong to this customer"})
		return false
	}
	return true
}
