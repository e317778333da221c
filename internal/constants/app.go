package constants

import (
	"time"
)

// Application identity
const (
	// AppName is the display name used for the tray title and notifications.
	AppName = "20-20-20"

	// AppID is the unique application identifier passed to fyne.
	AppID = "org.twenty20twenty.tray"

	// BinaryName is the executable / cobra command name.
	BinaryName = "twenty20twenty"

	// LockFileName is created in os.TempDir() and held with an exclusive
	// advisory lock while the application runs.
	LockFileName = "Twenty2020.tmp"

	// LogFileName is the rotating log file written to config.LogDirectory().
	LogFileName = "twenty20twenty.log"
)

// Reminder timing
const (
	// DefaultReminderInterval - every 20 minutes look at something 20 feet away
	DefaultReminderInterval = 20 * time.Minute

	// MinReminderInterval - guards against a zero or negative ticker period
	MinReminderInterval = time.Millisecond
)

// Notification and dialog text
const (
	NotificationTitle = "20-20-20"
	NotificationBody  = "It's 20-20-20 time"

	TrayTooltip       = "20-20-20 rule for the eye"
	TrayTooltipSilent = "20-20-20 rule for the eye (silent)"

	AboutTitle = "About 20-20-20"
	AboutText  = "20-20-20 rule for the eye\n" +
		"\n" +
		"Follow this rule to reduce eye strain when working in front of a computer.\n" +
		"Every 20 minutes look at something 20 feet away for 20 seconds.\n" +
		"\n" +
		"https://github.com/twenty20twenty/twenty20twenty"

	TrayUnsupportedTitle = "20-20-20 cannot start"
	TrayUnsupportedBody  = "This desktop has no system tray, so reminders cannot be shown."
)

// Menu labels
const (
	MenuSilentMode = "Silent Mode"
	MenuAbout      = "About"
	MenuExit       = "Exit"
)

// Event bus sizing
const (
	// EventBusDefaultBuffer - per-subscriber channel buffer.
	// Reminders arrive at most every few minutes; a small buffer is plenty.
	EventBusDefaultBuffer = 16

	// EventBusMaxBuffer - cap for caller-provided buffer sizes
	EventBusMaxBuffer = 1024
)

// Log rotation
const (
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 30
)
