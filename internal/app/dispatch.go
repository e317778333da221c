package app

import (
	"sync"

	"github.com/twenty20twenty/twenty20twenty/internal/events"
)

// dispatch forwards bus events to the presenter until the bus closes.
// Quit is delivered exactly once, even if the shutdown event was dropped.
func (a *App) dispatch(ch <-chan events.Event, p Presenter) {
	defer close(a.dispatchDone)

	var quitOnce sync.Once
	quit := func() { quitOnce.Do(p.Quit) }

	for ev := range ch {
		switch e := ev.(type) {
		case *events.ReminderEvent:
			a.logger.Debug().Uint64("sequence", e.Sequence).Msg("Reminder fired")
			p.DisplayNotification(e.Title, e.Body)
		case *events.AboutEvent:
			p.ShowAboutDialog(e.Title, e.Body)
		case *events.SilentModeEvent:
			p.SetSilentMode(e.Enabled)
		case *events.ShutdownEvent:
			quit()
		}
	}
	quit()
}
