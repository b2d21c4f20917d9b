package routes

import (
	"net/http"
	"time"

	"swiftmove/handlers"
	"swiftmove/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes registers the unauthenticated catalog, pricing, and
// guest checkout endpoints.
func RegisterPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/public")
	{
		api.GET("/services/", hb.GetServicesHandler)
		api.GET("/availability/", hb.GetAvailabilityHandler)
		api.POST("/pricing-preview/", hb.PricingPreviewHandler)
		api.POST("/create-payment-intent/", hb.CreatePaymentIntentHandler)
		api.POST("/guest-booking/", hb.GuestBookingHandler)
		api.GET("/bookings/:bookingNumber", hb.GetBookingHandler)
	}
}

// RegisterDraftRoutes registers the booking wizard endpoints. Drafts can be
// started with or without a token; a valid token starts past the identity
// step.
func RegisterDraftRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/public/drafts")
	{
		api.POST("/", middleware.JWTAuthCustomerMiddleware(true), hb.StartDraftHandler)
		api.GET("/:draftID", hb.GetDraftHandler)
		api.POST("/:draftID/advance", hb.AdvanceHandler)
		api.POST("/:draftID/back", hb.BackHandler)
		api.POST("/:draftID/start-over", hb.StartOverHandler)
		api.POST("/:draftID/login", hb.DraftLoginHandler)
		api.PUT("/:draftID/service", hb.UpdateServiceHandler)
		api.PUT("/:draftID/schedule", hb.UpdateScheduleHandler)
		api.PUT("/:draftID/addresses", hb.UpdateAddressesHandler)
		api.PUT("/:draftID/customer-info", hb.UpdateCustomerInfoHandler)
		api.PUT("/:draftID/terms", hb.AcceptTermsHandler)
		api.POST("/:draftID/discount", hb.ApplyDiscountHandler)
		api.DELETE("/:draftID/discount", hb.RemoveDiscountHandler)
		api.DELETE("/:draftID/checkout", hb.CancelCheckoutHandler)
	}
}

// RegisterCustomerRoutes registers the authenticated customer endpoints.
func RegisterCustomerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/customer")
	{
		api.POST("/login", hb.CustomerLoginHandler)
		api.POST("/logout", middleware.JWTAuthCustomerMiddleware(false), hb.CustomerLogoutHandler)

		protected := api.Group("/bookings")
		protected.Use(middleware.JWTAuthCustomerMiddleware(false))
		protected.POST("/create-payment-intent/", hb.CreateCustomerPaymentIntentHandler)
		protected.POST("/create/", hb.CustomerBookingCreateHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Swiftmove"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterPublicRoutes(r, hb)
	RegisterDraftRoutes(r, hb)
	RegisterCustomerRoutes(r, hb)
	RegisterHealthRoute(r)
}
