// Package signal cancels work that has stopped making progress.
package signal

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/xtls/xrelay/common/errors"
	"github.com/xtls/xrelay/common/task"
)

var errFired = errors.New("activity timer fired")

// ActivityUpdater is notified each time data moves.
type ActivityUpdater interface {
	Update()
}

// ActivityTimer calls its timeout func once a whole interval passes without
// an Update. It fires at most once.
type ActivityTimer struct {
	mu        sync.Mutex
	updated   chan struct{}
	check     *task.Periodic
	onTimeout func()
	fired     atomic.Bool
	once      sync.Once
}

// Update marks the current interval as active.
func (t *ActivityTimer) Update() {
	select {
	case t.updated <- struct{}{}:
	default:
	}
}

func (t *ActivityTimer) tick() error {
	if t.fired.Load() {
		// stops a check that was started after the timer fired
		return errFired
	}
	select {
	case <-t.updated:
	default:
		t.fire()
	}
	return nil
}

func (t *ActivityTimer) fire() {
	t.once.Do(func() {
		t.fired.Store(true)
		t.mu.Lock()
		t.stopCheck()
		t.mu.Unlock()
		t.onTimeout()
	})
}

// stopCheck must be called with mu held.
func (t *ActivityTimer) stopCheck() {
	if t.check != nil {
		t.check.Close()
		t.check = nil
	}
}

// SetTimeout replaces the inactivity interval. A non-positive timeout fires
// the timer immediately.
func (t *ActivityTimer) SetTimeout(timeout time.Duration) {
	if t.fired.Load() {
		return
	}
	if timeout <= 0 {
		t.fire()
		return
	}

	t.mu.Lock()
	if t.fired.Load() {
		t.mu.Unlock()
		return
	}
	t.stopCheck()
	check := &task.Periodic{
		Interval: timeout,
		Execute:  t.tick,
	}
	t.check = check
	t.mu.Unlock()

	// the first tick runs synchronously and must see the interval as active
	t.Update()
	check.Start()
}

// CancelAfterInactivity returns a timer that calls cancel once no Update
// arrives for timeout.
func CancelAfterInactivity(ctx context.Context, cancel context.CancelFunc, timeout time.Duration) *ActivityTimer {
	timer := &ActivityTimer{
		updated:   make(chan struct{}, 1),
		onTimeout: cancel,
	}
	timer.SetTimeout(timeout)
	return timer
}
