// Package notify provides cross-platform desktop notifications for the reminder.
// It uses github.com/gen2brain/beeep for cross-platform notification support.
package notify

import (
	"unicode/utf8"

	"github.com/gen2brain/beeep"

	"github.com/twenty20twenty/twenty20twenty/internal/logging"
)

const (
	maxTitleLen = 64
	maxBodyLen  = 256
)

// Notifier sends desktop notifications.
type Notifier struct {
	logger *logging.Logger

	// Overridable in tests.
	notify func(title, message string) error
	alert  func(title, message string) error
}

// NewNotifier creates a notifier backed by the platform notification service.
func NewNotifier(logger *logging.Logger) *Notifier {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Notifier{
		logger: logger,
		notify: send,
		alert:  sendAlert,
	}
}

// Reminder displays the reminder notification. Failures are logged and
// otherwise ignored: a missed popup must not disturb the schedule.
func (n *Notifier) Reminder(title, body string) {
	if err := n.notify(truncate(title, maxTitleLen), truncate(body, maxBodyLen)); err != nil {
		n.logger.Warn().Err(err).Str("title", title).Msg("Failed to send reminder notification")
	}
}

// Alert sends an alert notification (error level).
// This is for problems the user must see, such as a desktop without a tray.
func (n *Notifier) Alert(title, message string) {
	title = truncate(title, maxTitleLen)
	message = truncate(message, maxBodyLen)

	if err := n.alert(title, message); err != nil {
		// Fall back to regular notify
		if err := n.notify(title, message); err != nil {
			n.logger.Error().Err(err).Str("message", message).Msg("Failed to send alert notification")
		}
	}
}

// send is the default notification path.
func send(title, message string) error {
	// beeep.Notify is cross-platform:
	// - Windows: Uses toast notifications
	// - macOS: Uses NSUserNotificationCenter
	// - Linux: Uses D-Bus notifications
	return beeep.Notify(title, message, "")
}

// sendAlert shows a more prominent notification on some platforms.
func sendAlert(title, message string) error {
	return beeep.Alert(title, message, "")
}

// truncate shortens a string to at most maxLen bytes, adding "..." if
// truncated. The cut never splits a UTF-8 sequence.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - 3
	if cut < 0 {
		cut = 0
	}
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
