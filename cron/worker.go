package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"swiftmove/config"
	"swiftmove/models"
	"swiftmove/services/checkout"
	"swiftmove/tasks"
	"swiftmove/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitReconcileWorker runs the async worker in background. It processes the
// deferred checks that catch a payment confirmed at the gateway with no
// booking committed behind it.
func InitReconcileWorker(bookings checkout.BookingRepository, gateway checkout.PaymentGateway) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeCheckoutReconcile, handleReconcileTask(bookings, gateway))

	go func() {
		log.Println("[ReconcileWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReconcileWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReconcileWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReconcileTask(bookings checkout.BookingRepository, gateway checkout.PaymentGateway) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p tasks.ReconcilePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("reconcile: invalid payload", zap.Error(err))
			return err
		}

		booked, err := bookings.GetByIntentID(ctx, p.PaymentIntentID)
		if err != nil {
			return err
		}
		if booked != nil {
			return nil
		}

		if models.IsFreeOrderIntent(p.PaymentIntentID) {
			logger.Error("free order confirmed but no booking committed; contact support with this reference",
				zap.String("draftId", p.DraftID),
				zap.String("reference", p.PaymentIntentID))
			return nil
		}

		intent, err := gateway.GetIntent(ctx, p.PaymentIntentID)
		if err != nil {
			return err
		}
		if intent.Status != checkout.StatusSucceeded {
			// Customer abandoned before paying; nothing to reconcile.
			return nil
		}

		// Payment cleared but the booking never committed. This is the one
		// fatal state in the flow; it must be escalated, never dropped.
		logger.Error("payment confirmed but booking commit permanently failed; contact support with this reference",
			zap.String("draftId", p.DraftID),
			zap.String("reference", p.PaymentIntentID))
		return nil
	}
}
