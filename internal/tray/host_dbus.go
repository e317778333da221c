//go:build linux || freebsd || openbsd || netbsd

package tray

import (
	"github.com/godbus/dbus/v5"
)

const (
	dbusDest              = "org.freedesktop.DBus"
	dbusNameHasOwner      = dbusDest + ".NameHasOwner"
	statusNotifierWatcher = "org.kde.StatusNotifierWatcher"
)

// hostPresent reports whether a StatusNotifier watcher owns its name on the
// session bus. Without one the tray icon is never shown.
func hostPresent() (bool, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return false, err
	}

	var owned bool
	err = conn.BusObject().Call(dbusNameHasOwner, 0, statusNotifierWatcher).Store(&owned)
	if err != nil {
		return false, err
	}
	return owned, nil
}
