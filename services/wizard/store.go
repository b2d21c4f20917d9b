package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"swiftmove/models"

	"github.com/go-redis/redis/v8"
)

// DraftStore persists booking drafts for the lifetime of a wizard session.
type DraftStore interface {
	Save(ctx context.Context, draft *models.BookingDraft) error
	Get(ctx context.Context, draftID string) (*models.BookingDraft, error)
	Delete(ctx context.Context, draftID string) error
}

// RedisDraftStore keeps drafts in Redis with a sliding TTL.
type RedisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDraftStore wires a draft store over the given Redis client.
func NewRedisDraftStore(client *redis.Client, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{client: client, ttl: ttl}
}

func draftKey(id string) string {
	return "draft:" + id
}

// Save marshals the draft and refreshes its TTL.
func (s *RedisDraftStore) Save(ctx context.Context, draft *models.BookingDraft) error {
	draft.UpdatedAt = time.Now()
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal booking draft: %w", err)
	}
	if err := s.client.Set(ctx, draftKey(draft.DraftID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store booking draft: %w", err)
	}
	return nil
}

// Get loads a draft; a missing or expired draft returns NotFoundError.
func (s *RedisDraftStore) Get(ctx context.Context, draftID string) (*models.BookingDraft, error) {
	data, err := s.client.Get(ctx, draftKey(draftID)).Result()
	if err == redis.Nil {
		return nil, NewNotFoundError(draftID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking draft: %w", err)
	}
	var draft models.BookingDraft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return nil, fmt.Errorf("failed to parse booking draft: %w", err)
	}
	return &draft, nil
}

// Delete removes the draft.
func (s *RedisDraftStore) Delete(ctx context.Context, draftID string) error {
	return s.client.Del(ctx, draftKey(draftID)).Err()
}
