// Package app is the application context: it owns the single-instance lock
// and the reminder scheduler, receives user intents from the tray and hands
// reminders to the tray without blocking the scheduler.
package app

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/twenty20twenty/twenty20twenty/internal/config"
	"github.com/twenty20twenty/twenty20twenty/internal/constants"
	"github.com/twenty20twenty/twenty20twenty/internal/events"
	"github.com/twenty20twenty/twenty20twenty/internal/instance"
	"github.com/twenty20twenty/twenty20twenty/internal/logging"
	"github.com/twenty20twenty/twenty20twenty/internal/reminder"
	"github.com/twenty20twenty/twenty20twenty/internal/version"
)

// ErrLockNotHeld is returned by Start when Acquire has not succeeded.
var ErrLockNotHeld = errors.New("instance lock not held")

// Presenter is the UI side. Every method is called from the dispatcher
// goroutine and must return quickly, posting real UI work to the UI thread.
type Presenter interface {
	// DisplayNotification shows a reminder.
	DisplayNotification(title, body string)

	// ShowAboutDialog opens the About dialog.
	ShowAboutDialog(title, body string)

	// SetSilentMode reflects the silent mode in the menu and tooltip.
	SetSilentMode(enabled bool)

	// Quit tears the UI down; the UI main loop returns afterwards.
	Quit()
}

// Intents are the user actions the tray forwards to the core.
type Intents interface {
	ToggleSilentMode(enabled bool)
	RequestAbout()
	RequestExit()
}

// App owns the lock handle and the scheduler for the lifetime of the process.
type App struct {
	cfg       *config.Config
	logger    *logging.Logger
	bus       *events.EventBus
	scheduler *reminder.Scheduler

	mu           sync.Mutex
	lock         *instance.Lock
	schedulerErr error
	started      bool

	fired        atomic.Uint64
	shutdownOnce sync.Once
	done         chan struct{}
	dispatchDone chan struct{}
}

var _ Intents = (*App)(nil)

// New creates the application context. Nothing is acquired or started yet.
func New(cfg *config.Config, logger *logging.Logger) *App {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &App{
		cfg:          cfg,
		logger:       logger.Component("app"),
		bus:          events.NewEventBus(constants.EventBusDefaultBuffer),
		scheduler:    reminder.New(),
		done:         make(chan struct{}),
		dispatchDone: make(chan struct{}),
	}
}

// Acquire takes the single-instance lock. It returns instance.ErrAlreadyRunning
// when another process holds it and an instance.ErrLockUnavailable error when
// the lock file cannot be used.
func (a *App) Acquire() error {
	lock, err := instance.TryAcquire(a.cfg.LockPath)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.lock = lock
	a.mu.Unlock()

	a.logger.Info().Str("lock", lock.Path()).Msg("Instance lock acquired")
	return nil
}

// Start wires the presenter and starts the reminder scheduler.
//
// A scheduler failure does not fail Start: the tray stays usable for manual
// exit and the error is available from SchedulerErr.
func (a *App) Start(p Presenter) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.lock == nil || !a.lock.Held() {
		return ErrLockNotHeld
	}
	if a.started {
		return errors.New("app already started")
	}
	a.started = true

	go a.dispatch(a.bus.SubscribeAll(), p)

	if err := a.scheduler.Start(a.cfg.ReminderInterval, a.onFire); err != nil {
		a.schedulerErr = fmt.Errorf("start reminder scheduler: %w", err)
		a.logger.Error().Err(err).Msg("Reminders disabled; tray remains available for exit")
		return nil
	}

	a.logger.Info().
		Dur("interval", a.cfg.ReminderInterval).
		Str("version", version.Version).
		Msg("Reminder scheduler started")
	return nil
}

// onFire runs on the scheduler goroutine: post and forget.
func (a *App) onFire() {
	seq := a.fired.Add(1)
	a.bus.PublishReminder(constants.NotificationTitle, constants.NotificationBody, seq)
}

// ToggleSilentMode pauses (enabled) or resumes (disabled) the reminders.
// Resuming restarts the full interval countdown.
func (a *App) ToggleSilentMode(enabled bool) {
	if a.isShutdown() {
		return
	}

	if enabled {
		a.scheduler.Pause()
		a.logger.Info().Msg("Silent mode on")
	} else {
		a.resume()
	}

	a.bus.PublishSilentMode(enabled, a.scheduler.State().String())
}

func (a *App) resume() {
	err := a.scheduler.Resume()
	if errors.Is(err, reminder.ErrNotStarted) {
		// Startup failed to schedule; retry with the configured interval.
		err = a.scheduler.Start(a.cfg.ReminderInterval, a.onFire)
	}

	a.mu.Lock()
	if err != nil {
		a.schedulerErr = fmt.Errorf("resume reminder scheduler: %w", err)
	} else {
		a.schedulerErr = nil
	}
	a.mu.Unlock()

	if err != nil {
		a.logger.Error().Err(err).Msg("Failed to resume reminders")
		return
	}
	a.logger.Info().Msg("Silent mode off")
}

// RequestAbout asks the UI to show the About dialog.
func (a *App) RequestAbout() {
	if a.isShutdown() {
		return
	}
	a.bus.PublishAbout(constants.AboutTitle, AboutText())
}

// RequestExit releases the lock, cancels the scheduler and tells the UI to quit.
func (a *App) RequestExit() {
	a.Shutdown("user exit")
}

// Shutdown tears the core down in order: release the lock, cancel the
// scheduler, then quit the UI. Only the first call has any effect.
func (a *App) Shutdown(reason string) {
	a.shutdownOnce.Do(func() {
		a.mu.Lock()
		lock := a.lock
		started := a.started
		a.mu.Unlock()

		if err := lock.Release(); err != nil {
			a.logger.Warn().Err(err).Msg("Failed to release instance lock cleanly")
		}
		a.scheduler.Cancel()

		a.bus.PublishShutdown(reason)
		a.bus.Close()
		close(a.done)

		if started {
			<-a.dispatchDone
		}

		a.logger.Info().
			Str("reason", reason).
			Uint64("reminders", a.fired.Load()).
			Int64("dropped_events", a.bus.DroppedEventCount()).
			Msg("Shut down")
	})
}

// Done is closed once Shutdown has run.
func (a *App) Done() <-chan struct{} {
	return a.done
}

// SchedulerErr returns the last scheduling failure, or nil while reminders run.
func (a *App) SchedulerErr() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.schedulerErr
}

// SchedulerState returns the reminder scheduler state.
func (a *App) SchedulerState() reminder.State {
	return a.scheduler.State()
}

// Reminders returns how many reminders fired since launch.
func (a *App) Reminders() uint64 {
	return a.fired.Load()
}

func (a *App) isShutdown() bool {
	select {
	case <-a.done:
		return true
	default:
		return false
	}
}

// AboutText returns the About dialog body.
func AboutText() string {
	return constants.AboutText + "\n\nVersion " + version.String()
}
