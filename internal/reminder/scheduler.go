// Package reminder runs the periodic 20-20-20 reminder.
//
// A Scheduler fires a callback at a fixed rate, measured from the moment the
// schedule was (re)started. Pausing discards the progress toward the next
// firing: a later Resume counts a full interval again.
package reminder

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// ErrInvalidInterval means the interval is zero or negative.
	ErrInvalidInterval = errors.New("reminder interval must be positive")

	// ErrCancelled means the scheduler was cancelled and cannot be restarted.
	ErrCancelled = errors.New("scheduler cancelled")

	// ErrNotStarted means Resume was called before any Start.
	ErrNotStarted = errors.New("scheduler never started")
)

// State is the scheduler lifecycle state.
type State int

const (
	StateStopped State = iota
	StateRunning
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Config is the reminder configuration owned by the scheduler.
type Config struct {
	// Interval between firings.
	Interval time.Duration

	// Silent is true while the scheduler is paused.
	Silent bool
}

// run is one active schedule: a ticker goroutine and its stop signal.
type run struct {
	stop chan struct{}
	done chan struct{}
}

// Scheduler fires a callback periodically. All transitions (Start, Pause,
// Resume, Cancel) are serialized; each returns only after the previous
// schedule's goroutine has exited, so no firing happens after a Pause or
// Cancel returns.
//
// The callback runs on the scheduler goroutine. It must return quickly and
// must not call back into the Scheduler.
type Scheduler struct {
	mu        sync.Mutex
	state     State
	cancelled bool
	cfg       Config
	onFire    func()
	active    *run
	fired     atomic.Uint64
}

// New creates a stopped scheduler.
func New() *Scheduler {
	return &Scheduler{state: StateStopped}
}

// Start begins firing onFire every interval, first after one interval.
// Calling Start on a running or paused scheduler replaces the schedule and
// restarts the countdown from now.
func (s *Scheduler) Start(interval time.Duration, onFire func()) error {
	if interval <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, interval)
	}
	if onFire == nil {
		return errors.New("reminder callback is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancelled {
		return ErrCancelled
	}

	s.stopActiveLocked()
	s.cfg = Config{Interval: interval}
	s.onFire = onFire
	s.startLocked()
	return nil
}

// Pause stops future firings and enters silent mode. Elapsed progress toward
// the next firing is discarded. Pausing a stopped or paused scheduler is a
// no-op.
func (s *Scheduler) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning {
		return
	}
	s.stopActiveLocked()
	s.cfg.Silent = true
	s.state = StatePaused
}

// Resume restarts the schedule with the last interval and callback, counting
// a full interval from now. Like Start, it also restarts a running schedule.
func (s *Scheduler) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancelled {
		return ErrCancelled
	}
	if s.onFire == nil {
		return ErrNotStarted
	}

	s.stopActiveLocked()
	s.cfg.Silent = false
	s.startLocked()
	return nil
}

// Cancel stops all future firings and releases the timer. The scheduler
// cannot be started again. Safe to call multiple times.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopActiveLocked()
	s.cancelled = true
	s.state = StateStopped
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Config returns a copy of the current reminder configuration.
func (s *Scheduler) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Cancelled reports whether Cancel has been called.
func (s *Scheduler) Cancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}

// Fired returns how many times the callback has been invoked.
func (s *Scheduler) Fired() uint64 {
	return s.fired.Load()
}

// startLocked launches a new ticker goroutine. Caller holds s.mu and has
// stopped any previous run.
func (s *Scheduler) startLocked() {
	r := &run{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	ticker := time.NewTicker(s.cfg.Interval)
	go s.loop(r, ticker, s.onFire)

	s.active = r
	s.state = StateRunning
}

// stopActiveLocked signals the current run to exit and waits for it.
func (s *Scheduler) stopActiveLocked() {
	if s.active == nil {
		return
	}
	close(s.active.stop)
	<-s.active.done
	s.active = nil
}

func (s *Scheduler) loop(r *run, ticker *time.Ticker, onFire func()) {
	defer close(r.done)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			// Stop wins over a tick that became ready at the same time.
			select {
			case <-r.stop:
				return
			default:
			}
			s.fired.Add(1)
			onFire()
		}
	}
}
