package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"swiftmove/config"
	"swiftmove/cron"
	"swiftmove/database"
	accountRepo "swiftmove/database/repository/account"
	bookingRepo "swiftmove/database/repository/booking"
	"swiftmove/handlers"
	"swiftmove/middleware"
	"swiftmove/routes"
	"swiftmove/services/account"
	"swiftmove/services/checkout"
	"swiftmove/services/discount"
	"swiftmove/services/pricing"
	"swiftmove/services/wizard"
	"swiftmove/tasks"
	"swiftmove/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	bookings := bookingRepo.NewMongoBookingRepo()
	accounts := accountRepo.NewMongoAccountRepo()

	// services.
	accountService := &account.DefaultAccountService{
		Repo:   accounts,
		Logger: logger,
	}

	engine := pricing.NewEngine()
	synchronizer := pricing.NewSynchronizer(engine, logger,
		time.Duration(config.AppConfig.PricingTimeoutSec)*time.Second)

	discountValidator := discount.NewValidator(discount.DefaultCodes(), bookings, logger)

	draftStore := wizard.NewRedisDraftStore(utils.GetDraftCacheClient(),
		time.Duration(config.AppConfig.DraftTTLMinutes)*time.Minute)

	wizardService := &wizard.DefaultWizardService{
		Store:     draftStore,
		Sync:      synchronizer,
		Discounts: discountValidator,
		Accounts:  accountService,
		Logger:    logger,
	}

	gateway := checkout.NewStripeGateway()
	checkoutService := &checkout.Orchestrator{
		Store:    draftStore,
		Sync:     synchronizer,
		Gateway:  gateway,
		Bookings: bookings,
		Accounts: accountService,
		Tasks:    tasks.NewClient(),
		Logger:   logger,
	}

	cron.InitReconcileWorker(bookings, gateway)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Wizard:    wizardService,
		Checkout:  checkoutService,
		Pricing:   engine,
		Discounts: discountValidator,
		Accounts:  accountService,
		Bookings:  bookings,
		Logger:    logger,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
