package service

import (
	"context"
	"encoding/json"

	"github.com/Vaishnavcibu/schedule-manager/internal/config"
	"github.com/Vaishnavcibu/schedule-manager/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ViewNotifier announces that a role's view of the data went stale.
// A userID of 0 targets every subscribed view of the role.
type ViewNotifier interface {
	ViewInvalidated(ctx context.Context, role model.Role, userID int)
}

// BroadcastUserID targets all subscribed views of a role.
const BroadcastUserID = 0

// InvalidationEvent is the queue payload consumed by the invalidation worker.
type InvalidationEvent struct {
	Role   model.Role `json:"role"`
	UserID int        `json:"user_id"`
}

// NopViewNotifier discards invalidations. Used by CLI tools that mutate the
// directory while no server is subscribed to anything.
type NopViewNotifier struct{}

func (NopViewNotifier) ViewInvalidated(context.Context, model.Role, int) {}

// RedisViewNotifier pushes invalidation events onto the Redis queue drained
// by worker.InvalidationWorker. Publishing is best effort: a failed push is
// logged, never propagated — the mutation it follows has already committed.
type RedisViewNotifier struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewRedisViewNotifier creates a RedisViewNotifier.
func NewRedisViewNotifier(rdb *redis.Client, log zerolog.Logger) *RedisViewNotifier {
	return &RedisViewNotifier{
		rdb: rdb,
		log: log.With().Str("component", "view_notifier").Logger(),
	}
}

// ViewInvalidated enqueues an invalidation event.
func (n *RedisViewNotifier) ViewInvalidated(ctx context.Context, role model.Role, userID int) {
	payload, err := json.Marshal(InvalidationEvent{Role: role, UserID: userID})
	if err != nil {
		n.log.Error().Err(err).Msg("Marshal invalidation event")
		return
	}
	if err := n.rdb.RPush(ctx, config.WorkerKey.ViewInvalidationQueue, payload).Err(); err != nil {
		n.log.Error().Err(err).
			Str("role", string(role)).
			Int("user_id", userID).
			Msg("Enqueue invalidation event")
	}
}
