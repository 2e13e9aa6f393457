package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Vaishnavcibu/schedule-manager/internal/config"
	"github.com/Vaishnavcibu/schedule-manager/internal/refresh"
	"github.com/Vaishnavcibu/schedule-manager/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// InvalidationWorker drains the view invalidation queue and feeds the
// refresh coordinator. Mutating services enqueue events instead of touching
// views directly, so mutations never wait on projection work.
type InvalidationWorker struct {
	rdb         *redis.Client
	coordinator *refresh.Coordinator
	log         zerolog.Logger
}

// NewInvalidationWorker creates a new InvalidationWorker.
func NewInvalidationWorker(rdb *redis.Client, coordinator *refresh.Coordinator, log zerolog.Logger) *InvalidationWorker {
	return &InvalidationWorker{
		rdb:         rdb,
		coordinator: coordinator,
		log:         log.With().Str("component", "invalidation_worker").Logger(),
	}
}

// Start begins the worker loop. Call in a goroutine.
func (w *InvalidationWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			// Dispatch whatever is still queued before exit.
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *InvalidationWorker) processNext(ctx context.Context) {
	// BLPop blocks until an event is available or timeout (1 second).
	result, err := w.rdb.BLPop(ctx, time.Second, config.WorkerKey.ViewInvalidationQueue).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
		}
		return
	}

	if len(result) < 2 {
		return
	}
	w.dispatch([]byte(result[1]))
}

func (w *InvalidationWorker) dispatch(payload []byte) {
	var event service.InvalidationEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		w.log.Error().Err(err).Msg("Unmarshal invalidation event")
		return
	}

	if event.UserID == service.BroadcastUserID {
		w.coordinator.InvalidateRole(event.Role)
		return
	}
	w.coordinator.Invalidate(refresh.Key{Role: event.Role, UserID: event.UserID})
}

// drain dispatches all remaining queued events before shutdown.
func (w *InvalidationWorker) drain(ctx context.Context) {
	drained := 0
	for {
		result, err := w.rdb.LPop(ctx, config.WorkerKey.ViewInvalidationQueue).Result()
		if err != nil {
			break
		}
		w.dispatch([]byte(result))
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining events")
	}
}
