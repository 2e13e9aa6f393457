package refresh

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Vaishnavcibu/schedule-manager/internal/model"
	"github.com/rs/zerolog"
)

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestInvalidateDeliversFreshView(t *testing.T) {
	loader := func(ctx context.Context, key Key) (*model.ViewModel, error) {
		return &model.ViewModel{Role: key.Role, Identity: key.UserID}, nil
	}
	c := NewCoordinator(loader, 2, zerolog.Nop())
	defer c.Close()

	key := Key{Role: model.RoleTeacher, UserID: 7}
	var got atomic.Pointer[model.ViewModel]
	unsub := c.Subscribe(key, func(vm *model.ViewModel) { got.Store(vm) })
	defer unsub()

	c.Invalidate(key)

	waitFor(t, func() bool { return got.Load() != nil }, "no view delivered")
	vm := got.Load()
	if vm.Role != model.RoleTeacher || vm.Identity != 7 {
		t.Errorf("delivered %s/%d, want Teacher/7", vm.Role, vm.Identity)
	}
}

func TestInvalidateWithoutSubscribersSkipsLoad(t *testing.T) {
	var loads atomic.Int64
	loader := func(ctx context.Context, key Key) (*model.ViewModel, error) {
		loads.Add(1)
		return &model.ViewModel{}, nil
	}
	c := NewCoordinator(loader, 2, zerolog.Nop())
	defer c.Close()

	c.Invalidate(Key{Role: model.RoleAdmin, UserID: 1})
	time.Sleep(50 * time.Millisecond)
	if loads.Load() != 0 {
		t.Errorf("loader ran %d times for an unsubscribed key", loads.Load())
	}
}

func TestLastRequestWins(t *testing.T) {
	// The first load blocks until released; by then a second invalidation
	// has superseded it, so only the second result may reach the subscriber.
	release := make(chan struct{})
	var calls atomic.Int64
	loader := func(ctx context.Context, key Key) (*model.ViewModel, error) {
		n := calls.Add(1)
		if n == 1 {
			select {
			case <-release:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		return &model.ViewModel{Identity: int(n)}, nil
	}
	c := NewCoordinator(loader, 4, zerolog.Nop())
	defer c.Close()

	key := Key{Role: model.RoleStudent, UserID: 3}
	var mu sync.Mutex
	var delivered []int
	unsub := c.Subscribe(key, func(vm *model.ViewModel) {
		mu.Lock()
		delivered = append(delivered, vm.Identity)
		mu.Unlock()
	})
	defer unsub()

	c.Invalidate(key)
	waitFor(t, func() bool { return calls.Load() >= 1 }, "first load never started")
	c.Invalidate(key)
	waitFor(t, func() bool { return calls.Load() >= 2 }, "second load never started")

	// Let the stale load finish after the fresh one.
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(delivered) >= 1
	}, "fresh view never delivered")
	close(release)
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(delivered) != 1 || delivered[0] != 2 {
		t.Errorf("delivered %v, want only the superseding result [2]", delivered)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	loader := func(ctx context.Context, key Key) (*model.ViewModel, error) {
		return &model.ViewModel{}, nil
	}
	c := NewCoordinator(loader, 2, zerolog.Nop())
	defer c.Close()

	key := Key{Role: model.RoleTeacher, UserID: 1}
	var count atomic.Int64
	unsub := c.Subscribe(key, func(*model.ViewModel) { count.Add(1) })

	c.Invalidate(key)
	waitFor(t, func() bool { return count.Load() == 1 }, "first delivery missing")

	unsub()
	c.Invalidate(key)
	time.Sleep(50 * time.Millisecond)
	if count.Load() != 1 {
		t.Errorf("deliveries = %d after unsubscribe, want 1", count.Load())
	}
}

func TestInvalidateRoleTargetsOnlyThatRole(t *testing.T) {
	loader := func(ctx context.Context, key Key) (*model.ViewModel, error) {
		return &model.ViewModel{Role: key.Role, Identity: key.UserID}, nil
	}
	c := NewCoordinator(loader, 4, zerolog.Nop())
	defer c.Close()

	var studentA, studentB, teacher atomic.Int64
	unsubA := c.Subscribe(Key{Role: model.RoleStudent, UserID: 1}, func(*model.ViewModel) { studentA.Add(1) })
	defer unsubA()
	unsubB := c.Subscribe(Key{Role: model.RoleStudent, UserID: 2}, func(*model.ViewModel) { studentB.Add(1) })
	defer unsubB()
	unsubT := c.Subscribe(Key{Role: model.RoleTeacher, UserID: 3}, func(*model.ViewModel) { teacher.Add(1) })
	defer unsubT()

	c.InvalidateRole(model.RoleStudent)

	waitFor(t, func() bool { return studentA.Load() == 1 && studentB.Load() == 1 }, "student views not refreshed")
	time.Sleep(50 * time.Millisecond)
	if teacher.Load() != 0 {
		t.Errorf("teacher view refreshed %d times by a student-wide invalidation", teacher.Load())
	}
}

func TestLoaderErrorDeliversNothing(t *testing.T) {
	loader := func(ctx context.Context, key Key) (*model.ViewModel, error) {
		return nil, errors.New("store down")
	}
	c := NewCoordinator(loader, 2, zerolog.Nop())
	defer c.Close()

	key := Key{Role: model.RoleAdmin, UserID: 1}
	var count atomic.Int64
	unsub := c.Subscribe(key, func(*model.ViewModel) { count.Add(1) })
	defer unsub()

	c.Invalidate(key)
	time.Sleep(50 * time.Millisecond)
	if count.Load() != 0 {
		t.Errorf("failed refresh delivered %d views", count.Load())
	}
}

func TestCloseCancelsInFlight(t *testing.T) {
	started := make(chan struct{})
	loader := func(ctx context.Context, key Key) (*model.ViewModel, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}
	c := NewCoordinator(loader, 1, zerolog.Nop())

	key := Key{Role: model.RoleAdmin, UserID: 1}
	unsub := c.Subscribe(key, func(*model.ViewModel) {})
	defer unsub()
	c.Invalidate(key)
	<-started

	done := make(chan struct{})
	go func() {
		c.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not cancel the in-flight refresh")
	}
}
