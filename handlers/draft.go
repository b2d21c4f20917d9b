package handlers

import (
	"net/http"

	"swiftmove/models"
	"swiftmove/services/wizard"
	"swiftmove/utils"

	"github.com/gin-gonic/gin"
)

// draftResponse wraps a draft with the display-facing step numbering, which
// renumbers around the skipped guest-only step for authenticated drafts.
func draftResponse(draft *models.BookingDraft) gin.H {
	return gin.H{
		"draft":        draft,
		"display_step": wizard.DisplayStep(draft, draft.CurrentStep),
		"total_steps":  len(wizard.VisibleSteps(draft)),
		"can_advance":  wizard.CanAdvance(draft, draft.CurrentStep),
	}
}

// StartDraftHandler mounts a new wizard. An authenticated caller (valid
// bearer token) starts past the identity step.
func (hb *HandlerBundle) StartDraftHandler(c *gin.Context) {
	session := wizard.SessionContext{}
	if customerID, ok := c.Get("customerID"); ok {
		session.Authenticated = true
		session.CustomerID = customerID.(string)
		if email, ok := c.Get("customerEmail"); ok {
			session.Email = email.(string)
		}
	}
	draft, err := hb.Wizard.StartDraft(c.Request.Context(), session)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draftResponse(draft))
}

// GetDraftHandler returns the current draft state.
func (hb *HandlerBundle) GetDraftHandler(c *gin.Context) {
	draft, err := hb.Wizard.GetDraft(c.Request.Context(), c.Param("draftID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draftResponse(draft))
}

// AdvanceHandler moves forward one step if the current step's guard passes.
func (hb *HandlerBundle) AdvanceHandler(c *gin.Context) {
	draft, err := hb.Wizard.Advance(c.Request.Context(), c.Param("draftID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draftResponse(draft))
}

// BackHandler moves one step backward; always allowed, never clears data.
func (hb *HandlerBundle) BackHandler(c *gin.Context) {
	draft, err := hb.Wizard.Back(c.Request.Context(), c.Param("draftID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draftResponse(draft))
}

// StartOverHandler discards the draft and hands back a fresh one.
func (hb *HandlerBundle) StartOverHandler(c *gin.Context) {
	draft, err := hb.Wizard.StartOver(c.Request.Context(), c.Param("draftID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draftResponse(draft))
}

// DraftLoginHandler authenticates the customer at the identity step and
// flips the draft to authenticated mode. Failures leave the draft alone and
// carry a categorized reason.
func (hb *HandlerBundle) DraftLoginHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	draft, token, err := hb.Wizard.Authenticate(c.Request.Context(), c.Param("draftID"), input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := draftResponse(draft)
	resp["token"] = token
	c.JSON(http.StatusOK, resp)
}

// UpdateServiceHandler sets or switches the service variant.
func (hb *HandlerBundle) UpdateServiceHandler(c *gin.Context) {
	var input struct {
		Service models.ServiceSelection `json:"service" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	draft, err := hb.Wizard.UpdateService(c.Request.Context(), c.Param("draftID"), input.Service)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draftResponse(draft))
}

// UpdateScheduleHandler sets pickup date, time window, and COI flag.
func (hb *HandlerBundle) UpdateScheduleHandler(c *gin.Context) {
	var input struct {
		Schedule models.Schedule `json:"schedule" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	draft, err := hb.Wizard.UpdateSchedule(c.Request.Context(), c.Param("draftID"), input.Schedule)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draftResponse(draft))
}

// UpdateAddressesHandler sets pickup and delivery addresses.
func (hb *HandlerBundle) UpdateAddressesHandler(c *gin.Context) {
	var input struct {
		Pickup   models.Address `json:"pickup"`
		Delivery models.Address `json:"delivery"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	draft, err := hb.Wizard.UpdateAddresses(c.Request.Context(), c.Param("draftID"), input.Pickup, input.Delivery)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draftResponse(draft))
}

// UpdateCustomerInfoHandler sets guest contact fields.
func (hb *HandlerBundle) UpdateCustomerInfoHandler(c *gin.Context) {
	var input struct {
		CustomerInfo models.CustomerInfo `json:"customerInfo" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	draft, err := hb.Wizard.UpdateCustomerInfo(c.Request.Context(), c.Param("draftID"), input.CustomerInfo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draftResponse(draft))
}

// AcceptTermsHandler records terms acceptance for Review&Pay.
func (hb *HandlerBundle) AcceptTermsHandler(c *gin.Context) {
	var input struct {
		Accepted bool `json:"accepted"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	draft, err := hb.Wizard.AcceptTerms(c.Request.Context(), c.Param("draftID"), input.Accepted)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draftResponse(draft))
}

// ApplyDiscountHandler validates and attaches a discount code.
func (hb *HandlerBundle) ApplyDiscountHandler(c *gin.Context) {
	var input struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	draft, err := hb.Wizard.ApplyDiscount(c.Request.Context(), c.Param("draftID"), input.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draftResponse(draft))
}

// RemoveDiscountHandler clears the discount code.
func (hb *HandlerBundle) RemoveDiscountHandler(c *gin.Context) {
	draft, err := hb.Wizard.RemoveDiscount(c.Request.Context(), c.Param("draftID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draftResponse(draft))
}
