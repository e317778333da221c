package notify

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/twenty20twenty/twenty20twenty/internal/logging"
)

type sent struct {
	title   string
	message string
}

// fakeNotifier returns a Notifier whose platform calls are recorded.
func fakeNotifier(logger *logging.Logger, notifyErr, alertErr error) (*Notifier, *[]sent, *[]sent) {
	var notified, alerted []sent
	n := NewNotifier(logger)
	n.notify = func(title, message string) error {
		notified = append(notified, sent{title, message})
		return notifyErr
	}
	n.alert = func(title, message string) error {
		alerted = append(alerted, sent{title, message})
		return alertErr
	}
	return n, &notified, &alerted
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly10c", 10, "exactly10c"},
		{"this is a long string", 10, "this is..."},
		{"", 10, ""},
		{"abc", 3, "abc"},
		{"abcd", 3, "..."},
		// "€" is three bytes; the cut backs off to the rune start.
		{"ab€cdef", 6, "ab..."},
		{"ab€cdef", 7, "ab..."},
		{"ab€cdef", 8, "ab€..."},
		{"👁👁👁", 8, "👁..."},
	}

	for _, tt := range tests {
		result := truncate(tt.input, tt.maxLen)
		if result != tt.expected {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, result, tt.expected)
		}
		if !utf8.ValidString(result) {
			t.Errorf("truncate(%q, %d) produced invalid UTF-8 %q", tt.input, tt.maxLen, result)
		}
		if len(result) > tt.maxLen && len(tt.input) > tt.maxLen {
			t.Errorf("truncate(%q, %d) = %q exceeds %d bytes", tt.input, tt.maxLen, result, tt.maxLen)
		}
	}
}

func TestNewNotifier_NilLogger(t *testing.T) {
	n := NewNotifier(nil)
	if n == nil {
		t.Fatal("NewNotifier returned nil")
	}
	if n.logger == nil {
		t.Error("Expected a no-op logger when nil is passed")
	}
}

func TestReminder(t *testing.T) {
	n, notified, alerted := fakeNotifier(nil, nil, nil)

	n.Reminder("20-20-20", "It's 20-20-20 time")

	if len(*notified) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(*notified))
	}
	if got := (*notified)[0]; got.title != "20-20-20" || got.message != "It's 20-20-20 time" {
		t.Errorf("Unexpected notification: %+v", got)
	}
	if len(*alerted) != 0 {
		t.Errorf("Expected no alerts, got %d", len(*alerted))
	}
}

func TestReminder_FailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLogger(logging.Options{Console: &buf})
	n, _, _ := fakeNotifier(logger, errors.New("dbus unavailable"), nil)

	n.Reminder("20-20-20", "It's 20-20-20 time")

	if !strings.Contains(buf.String(), "dbus unavailable") {
		t.Errorf("Expected failure to be logged, got %q", buf.String())
	}
}

func TestAlert_FallsBackToNotify(t *testing.T) {
	n, notified, alerted := fakeNotifier(nil, nil, errors.New("alert unsupported"))

	n.Alert("20-20-20 cannot start", "no tray")

	if len(*alerted) != 1 {
		t.Errorf("Expected 1 alert attempt, got %d", len(*alerted))
	}
	if len(*notified) != 1 {
		t.Errorf("Expected fallback notification, got %d", len(*notified))
	}
}

func TestAlert_TruncatesLongMessages(t *testing.T) {
	n, _, alerted := fakeNotifier(nil, nil, nil)

	n.Alert(strings.Repeat("t", 200), strings.Repeat("m", 1000))

	got := (*alerted)[0]
	if len(got.title) != maxTitleLen {
		t.Errorf("Expected title truncated to %d, got %d", maxTitleLen, len(got.title))
	}
	if len(got.message) != maxBodyLen {
		t.Errorf("Expected message truncated to %d, got %d", maxBodyLen, len(got.message))
	}
}
