package middleware

import (
	"net/http"
	"strings"

	"swiftmove/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthCustomerMiddleware requires a valid customer bearer token and puts
// the customer ID and email on the context. With optional set, requests
// without a token pass through unauthenticated.
func JWTAuthCustomerMiddleware(optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			if optional {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		customerID, email, err := utils.ExtractIDsFromToken(tokenString)
		if err != nil || customerID == "" || utils.IsTokenRevoked(c.Request.Context(), tokenString) {
			if optional {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		c.Set("customerID", customerID)
		c.Set("authToken", tokenString)
		c.Set("customerEmail", email)
		c.Next()
	}
}
