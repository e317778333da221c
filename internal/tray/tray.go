// Package tray is the system tray presenter: the eye icon, the popup menu
// (Silent Mode, About, Exit), the About window and reminder popups.
//
// Menu callbacks run on the fyne UI thread and are forwarded to the core as
// intents. Calls from the core arrive on the dispatcher goroutine and are
// posted back to the UI thread with fyne.Do.
package tray

import (
	"errors"
	"fmt"
	"sync/atomic"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/twenty20twenty/twenty20twenty/internal/app"
	"github.com/twenty20twenty/twenty20twenty/internal/constants"
	"github.com/twenty20twenty/twenty20twenty/internal/logging"
)

// ErrTrayUnsupported means the desktop has no system tray.
var ErrTrayUnsupported = errors.New("system tray is not supported on this desktop")

// trayHost is the part of desktop.App the presenter needs.
type trayHost interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Notifier displays reminder popups.
type Notifier interface {
	Reminder(title, body string)
}

// Tray implements app.Presenter on top of a fyne application.
type Tray struct {
	fyneApp  fyne.App
	host     trayHost
	intents  app.Intents
	notifier Notifier
	logger   *logging.Logger
	stopped  atomic.Bool

	// Owned by the UI thread.
	menu       *fyne.Menu
	silentItem *fyne.MenuItem
	aboutWin   fyne.Window
}

var _ app.Presenter = (*Tray)(nil)

// NewApp creates the fyne application that hosts the tray.
func NewApp() fyne.App {
	return fyneapp.NewWithID(constants.AppID)
}

// CheckHost returns ErrTrayUnsupported when the desktop session has nothing
// to show a tray icon in.
func CheckHost() error {
	return checkHost(hostPresent)
}

func checkHost(present func() (bool, error)) error {
	ok, err := present()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTrayUnsupported, err)
	}
	if !ok {
		return ErrTrayUnsupported
	}
	return nil
}

// New installs the tray icon and menu on fyneApp. It returns
// ErrTrayUnsupported when the fyne driver has no system tray.
func New(fyneApp fyne.App, intents app.Intents, notifier Notifier, logger *logging.Logger) (*Tray, error) {
	host, ok := fyneApp.(trayHost)
	if !ok {
		return nil, ErrTrayUnsupported
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	t := &Tray{
		fyneApp:  fyneApp,
		host:     host,
		intents:  intents,
		notifier: notifier,
		logger:   logger.Component("tray"),
	}

	t.menu = t.buildMenu()
	host.SetSystemTrayMenu(t.menu)
	host.SetSystemTrayIcon(theme.VisibilityIcon())
	return t, nil
}

func (t *Tray) buildMenu() *fyne.Menu {
	t.silentItem = fyne.NewMenuItem(constants.MenuSilentMode, t.onSilentClicked)

	about := fyne.NewMenuItem(constants.MenuAbout, t.intents.RequestAbout)

	exit := fyne.NewMenuItem(constants.MenuExit, func() {
		// Shutdown waits for the dispatcher; keep the UI thread free.
		go t.intents.RequestExit()
	})
	exit.IsQuit = true

	return fyne.NewMenu(constants.TrayTooltip,
		t.silentItem,
		fyne.NewMenuItemSeparator(),
		about,
		fyne.NewMenuItemSeparator(),
		exit,
	)
}

func (t *Tray) onSilentClicked() {
	enabled := !t.silentItem.Checked
	t.setSilent(enabled)
	t.intents.ToggleSilentMode(enabled)
}

// setSilent updates the check mark and tray title. UI thread only.
func (t *Tray) setSilent(enabled bool) {
	if t.silentItem.Checked == enabled {
		return
	}
	t.silentItem.Checked = enabled
	if enabled {
		t.menu.Label = constants.TrayTooltipSilent
	} else {
		t.menu.Label = constants.TrayTooltip
	}
	t.host.SetSystemTrayMenu(t.menu)
}

// Run blocks in the fyne main loop until Quit.
func (t *Tray) Run() {
	t.fyneApp.Run()
	t.stopped.Store(true)
}

// DisplayNotification shows the reminder popup.
func (t *Tray) DisplayNotification(title, body string) {
	t.notifier.Reminder(title, body)
}

// ShowAboutDialog opens (or raises) the About window.
func (t *Tray) ShowAboutDialog(title, body string) {
	fyne.Do(func() {
		t.showAbout(title, body)
	})
}

func (t *Tray) showAbout(title, body string) {
	if t.aboutWin == nil {
		w := t.fyneApp.NewWindow(title)
		w.SetContent(container.NewVBox(
			widget.NewLabel(body),
			container.NewCenter(widget.NewButton("OK", w.Hide)),
		))
		w.SetFixedSize(true)
		// Closing the window must not end the app.
		w.SetCloseIntercept(w.Hide)
		t.aboutWin = w
	}
	t.aboutWin.SetTitle(title)
	t.aboutWin.CenterOnScreen()
	t.aboutWin.Show()
	t.aboutWin.RequestFocus()
}

// SetSilentMode syncs the menu with the core's silent mode.
func (t *Tray) SetSilentMode(enabled bool) {
	fyne.Do(func() {
		t.setSilent(enabled)
	})
}

// Quit stops the fyne main loop, removing the tray icon.
func (t *Tray) Quit() {
	if t.stopped.Load() {
		return
	}
	t.logger.Debug().Msg("Quitting UI")
	fyne.Do(t.fyneApp.Quit)
}
