package handlers

import (
	"net/http"

	"swiftmove/services/account"
	"swiftmove/utils"

	"github.com/gin-gonic/gin"
)

// CustomerLoginHandler signs a customer in outside of any draft and returns
// a bearer token.
func (hb *HandlerBundle) CustomerLoginHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	acct, token, err := hb.Accounts.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"customer": gin.H{
			"id":         acct.ID,
			"email":      acct.Email,
			"first_name": acct.FirstName,
			"last_name":  acct.LastName,
		},
	})
}

// CustomerLogoutHandler revokes the caller's bearer token. The revocation
// lives in the auth cache until the token would have expired anyway.
func (hb *HandlerBundle) CustomerLogoutHandler(c *gin.Context) {
	token := c.GetString("authToken")
	if token == "" {
		utils.JSONError(c, http.StatusBadRequest, "no bearer token to revoke", "")
		return
	}
	if err := utils.RevokeToken(c.Request.Context(), token, account.TokenTTL); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to revoke token", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}
