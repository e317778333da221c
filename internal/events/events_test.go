package events

import (
	"testing"
	"time"
)

func TestEventBus_PublishSubscribe(t *testing.T) {
	bus := NewEventBus(10)
	defer bus.Close()

	ch := bus.SubscribeAll()

	bus.Publish(&ReminderEvent{
		BaseEvent: BaseEvent{
			EventType: EventReminder,
			Time:      time.Now(),
		},
		Title:    "20-20-20",
		Body:     "It's 20-20-20 time",
		Sequence: 1,
	})

	select {
	case received := <-ch:
		reminder, ok := received.(*ReminderEvent)
		if !ok {
			t.Fatal("Expected ReminderEvent")
		}
		if reminder.Title != "20-20-20" {
			t.Errorf("Expected title '20-20-20', got '%s'", reminder.Title)
		}
		if reminder.Sequence != 1 {
			t.Errorf("Expected sequence 1, got %d", reminder.Sequence)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timeout waiting for event")
	}
}

func TestEventBus_MultipleSubscribers(t *testing.T) {
	bus := NewEventBus(10)
	defer bus.Close()

	ch1 := bus.SubscribeAll()
	ch2 := bus.SubscribeAll()

	bus.PublishAbout("About 20-20-20", "text")

	received1 := false
	received2 := false

	select {
	case <-ch1:
		received1 = true
	case <-time.After(100 * time.Millisecond):
	}

	select {
	case <-ch2:
		received2 = true
	case <-time.After(100 * time.Millisecond):
	}

	if !received1 || !received2 {
		t.Error("Not all subscribers received the event")
	}
}

func TestEventBus_PreservesOrder(t *testing.T) {
	bus := NewEventBus(10)
	defer bus.Close()

	allCh := bus.SubscribeAll()

	bus.PublishReminder("t", "b", 1)
	bus.PublishSilentMode(true, "paused")
	bus.PublishShutdown("user exit")

	want := []EventType{EventReminder, EventSilentMode, EventShutdown}
	for i, wantType := range want {
		select {
		case ev := <-allCh:
			if ev.Type() != wantType {
				t.Errorf("Event %d: expected type %s, got %s", i, wantType, ev.Type())
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("Timeout waiting for event %d", i)
		}
	}
}

func TestEventBus_NonBlocking(t *testing.T) {
	bus := NewEventBus(2) // Small buffer
	defer bus.Close()

	ch := bus.SubscribeAll()

	// Nobody drains while publishing: excess events must be dropped, not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			bus.PublishReminder("t", "b", uint64(i+1))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full subscriber")
	}

	count := 0
	for {
		select {
		case <-ch:
			count++
		case <-time.After(10 * time.Millisecond):
			goto drained
		}
	}
drained:

	if count != 2 {
		t.Errorf("Expected buffer-sized delivery of 2 events, got %d", count)
	}
	if dropped := bus.DroppedEventCount(); dropped != 8 {
		t.Errorf("Expected 8 dropped events, got %d", dropped)
	}
}

func TestEventBus_Close(t *testing.T) {
	bus := NewEventBus(10)

	all := bus.SubscribeAll()

	bus.Close()
	bus.Close() // idempotent

	if _, ok := <-all; ok {
		t.Error("Channel should be closed after bus.Close()")
	}

	// Publishing after close should not panic
	bus.PublishShutdown("exit")

	// Subscribing after close returns a closed channel
	if _, ok := <-bus.SubscribeAll(); ok {
		t.Error("SubscribeAll after Close should return a closed channel")
	}
}

func TestConvenienceMethods(t *testing.T) {
	bus := NewEventBus(10)
	defer bus.Close()

	ch := bus.SubscribeAll()

	bus.PublishSilentMode(true, "paused")

	select {
	case event := <-ch:
		silent, ok := event.(*SilentModeEvent)
		if !ok {
			t.Fatal("Expected SilentModeEvent")
		}
		if !silent.Enabled || silent.State != "paused" {
			t.Errorf("Expected enabled/paused, got %v/%s", silent.Enabled, silent.State)
		}
		if silent.Timestamp().IsZero() {
			t.Error("Expected timestamp to be set")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Timeout waiting for silent mode event")
	}

	bus.PublishShutdown("user exit")

	select {
	case event := <-ch:
		shutdown, ok := event.(*ShutdownEvent)
		if !ok {
			t.Fatal("Expected ShutdownEvent")
		}
		if shutdown.Reason != "user exit" {
			t.Errorf("Expected reason 'user exit', got '%s'", shutdown.Reason)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Timeout waiting for shutdown event")
	}
}

func TestNewEventBus_BufferBounds(t *testing.T) {
	if got := NewEventBus(0).bufferSize; got <= 0 {
		t.Errorf("Expected default buffer for 0, got %d", got)
	}
	if got := NewEventBus(1 << 20).bufferSize; got > 1024 {
		t.Errorf("Expected buffer to be capped, got %d", got)
	}
}
