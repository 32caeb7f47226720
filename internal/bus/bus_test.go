package bus

import (
	"testing"
	"time"
)

func TestPublishSubscribe(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("state.", 10)
	defer unsub()

	b.Publish(Event{Kind: StateChanged, Timestamp: time.Now(), Payload: "feed"})

	select {
	case evt := <-ch:
		if evt.Kind != StateChanged {
			t.Errorf("got kind %q, want %q", evt.Kind, StateChanged)
		}
		if evt.Payload != "feed" {
			t.Errorf("payload = %v, want feed", evt.Payload)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestPrefixFiltering(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("socket.", 10)
	defer unsub()

	b.Publish(Event{Kind: StateChanged})
	b.Publish(Event{Kind: SocketMessage})

	select {
	case evt := <-ch:
		if evt.Kind != SocketMessage {
			t.Errorf("got kind %q, want %q", evt.Kind, SocketMessage)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}

	// The state event must not have been delivered.
	select {
	case evt := <-ch:
		t.Errorf("unexpected event: %v", evt)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("session.", 10)
	unsub()

	b.Publish(Event{Kind: SessionExpired})

	select {
	case evt := <-ch:
		t.Errorf("received event after unsubscribe: %v", evt)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDropOnFullBuffer(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("socket.", 1)
	defer unsub()

	b.Publish(Event{Kind: SocketOnline})
	// Buffer is full; this one is dropped rather than blocking.
	b.Publish(Event{Kind: SocketOffline})

	evt := <-ch
	if evt.Kind != SocketOnline {
		t.Errorf("got %q, want %q", evt.Kind, SocketOnline)
	}
}
