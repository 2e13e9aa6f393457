// Package refresh keeps role views current without blocking interaction.
// Every mutation enqueues an invalidation; the coordinator re-loads and
// re-projects the affected view on a bounded worker pool and pushes the
// fresh view model to subscribers.
package refresh

import (
	"context"
	"sync"

	"github.com/Vaishnavcibu/schedule-manager/internal/model"
	"github.com/rs/zerolog"
)

// Key identifies one subscribable view: a role plus the identity it is
// scoped to.
type Key struct {
	Role   model.Role
	UserID int
}

// Loader fetches and projects the current view for a key. The context is
// cancelled when a newer invalidation supersedes the refresh.
type Loader func(ctx context.Context, key Key) (*model.ViewModel, error)

// Callback receives a freshly projected view model. Callbacks run on
// coordinator goroutines and must not block.
type Callback func(*model.ViewModel)

type subscription struct {
	id int
	cb Callback
}

// Coordinator schedules cancellable background view refreshes with a
// last-request-wins discipline: if a newer invalidation for the same key
// arrives before a prior refresh completes, the prior refresh is cancelled
// and its result discarded, never applied out of order. Status changes can
// legally race with periodic refreshes; the sequence check makes that race
// harmless.
type Coordinator struct {
	loader Loader
	log    zerolog.Logger

	baseCtx    context.Context
	baseCancel context.CancelFunc
	sem        chan struct{}
	wg         sync.WaitGroup

	mu      sync.Mutex
	seq     map[Key]uint64
	cancels map[Key]context.CancelFunc
	subs    map[Key][]subscription
	nextSub int
	closed  bool
}

// NewCoordinator creates a Coordinator running at most workers concurrent
// refreshes against the store.
func NewCoordinator(loader Loader, workers int, log zerolog.Logger) *Coordinator {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		loader:     loader,
		log:        log.With().Str("component", "refresh_coordinator").Logger(),
		baseCtx:    ctx,
		baseCancel: cancel,
		sem:        make(chan struct{}, workers),
		seq:        make(map[Key]uint64),
		cancels:    make(map[Key]context.CancelFunc),
		subs:       make(map[Key][]subscription),
	}
}

// Subscribe registers a callback for fresh view models of a key and returns
// the unsubscribe func. This is the onViewInvalidated hook of the core.
func (c *Coordinator) Subscribe(key Key, cb Callback) func() {
	c.mu.Lock()
	c.nextSub++
	id := c.nextSub
	c.subs[key] = append(c.subs[key], subscription{id: id, cb: cb})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		remaining := c.subs[key][:0]
		for _, s := range c.subs[key] {
			if s.id != id {
				remaining = append(remaining, s)
			}
		}
		if len(remaining) == 0 {
			delete(c.subs, key)
		} else {
			c.subs[key] = remaining
		}
	}
}

// Invalidate schedules a background refresh for a key, superseding any
// refresh still in flight for it. Views nobody subscribes to are skipped;
// one-shot reads go straight through the view service instead.
func (c *Coordinator) Invalidate(key Key) {
	c.mu.Lock()
	if c.closed || len(c.subs[key]) == 0 {
		c.mu.Unlock()
		return
	}

	c.seq[key]++
	seq := c.seq[key]
	if cancel, ok := c.cancels[key]; ok {
		cancel()
	}
	ctx, cancel := context.WithCancel(c.baseCtx)
	c.cancels[key] = cancel
	c.mu.Unlock()

	c.wg.Add(1)
	go c.refresh(ctx, key, seq)
}

// InvalidateRole schedules a refresh for every subscribed view of a role.
// Used for mutations whose effect is role-wide, such as a directory edit
// staling every admin view.
func (c *Coordinator) InvalidateRole(role model.Role) {
	c.mu.Lock()
	keys := make([]Key, 0, len(c.subs))
	for key := range c.subs {
		if key.Role == role {
			keys = append(keys, key)
		}
	}
	c.mu.Unlock()

	for _, key := range keys {
		c.Invalidate(key)
	}
}

func (c *Coordinator) refresh(ctx context.Context, key Key, seq uint64) {
	defer c.wg.Done()

	// Bounded pool: wait for a slot unless superseded first.
	select {
	case c.sem <- struct{}{}:
		defer func() { <-c.sem }()
	case <-ctx.Done():
		return
	}

	vm, err := c.loader(ctx, key)

	c.mu.Lock()
	if seq != c.seq[key] {
		// A newer invalidation won; this result is stale. Drop it.
		c.mu.Unlock()
		return
	}
	delete(c.cancels, key)
	targets := append([]subscription(nil), c.subs[key]...)
	c.mu.Unlock()

	if err != nil {
		if ctx.Err() == nil {
			c.log.Error().Err(err).
				Str("role", string(key.Role)).
				Int("user_id", key.UserID).
				Msg("View refresh failed")
		}
		return
	}

	for _, s := range targets {
		s.cb(vm)
	}
}

// Close cancels in-flight refreshes and waits for them to finish.
func (c *Coordinator) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.baseCancel()
	c.wg.Wait()
}
