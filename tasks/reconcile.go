package tasks

import (
	"encoding/json"
	"time"

	"swiftmove/config"

	"github.com/hibiken/asynq"
)

// TypeCheckoutReconcile verifies that a confirmed payment ended up with a
// booking behind it.
const TypeCheckoutReconcile = "checkout:reconcile"

// ReconcilePayload identifies the checkout being checked.
type ReconcilePayload struct {
	DraftID         string `json:"draftId"`
	PaymentIntentID string `json:"paymentIntentId"`
}

// NewReconcileTask builds the reconcile task scheduled at fireAt.
func NewReconcileTask(payload ReconcilePayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeCheckoutReconcile, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}
	return task, opts, nil
}

// Client wraps the asynq client for enqueueing checkout tasks.
type Client struct {
	inner *asynq.Client
}

// NewClient builds a task client over the configured Redis queue DB.
func NewClient() *Client {
	return &Client{inner: asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})}
}

// EnqueueReconcile schedules a reconcile check after the given delay.
func (c *Client) EnqueueReconcile(draftID, intentID string, delay time.Duration) error {
	task, opts, err := NewReconcileTask(ReconcilePayload{
		DraftID:         draftID,
		PaymentIntentID: intentID,
	}, time.Now().Add(delay))
	if err != nil {
		return err
	}
	_, err = c.inner.Enqueue(task, opts...)
	return err
}
