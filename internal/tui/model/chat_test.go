package model

import (
	"testing"
	"time"
)

func TestTranscriptAppendsInDeliveryOrder(t *testing.T) {
	m := NewChatModel("u2")
	m.AppendIncoming("Amy", "hi")
	m.AppendIncoming("Bob", "hello")
	m.AppendIncoming("Amy", "hi") // redelivery renders as a new entry

	msgs := m.Messages()
	if len(msgs) != 3 {
		t.Fatalf("transcript len = %d, want 3", len(msgs))
	}
	if msgs[0].Text != "hi" || msgs[1].SenderName != "Bob" {
		t.Errorf("transcript = %+v", msgs)
	}
}

func TestTypingSelfClearsAfterQuietPeriod(t *testing.T) {
	m := NewChatModel("u2")
	m.typingQuiet = 40 * time.Millisecond

	m.TypingSeen()
	if !m.Typing() {
		t.Fatal("typing flag not set")
	}

	// Each event re-arms the timer.
	time.Sleep(25 * time.Millisecond)
	m.TypingSeen()
	time.Sleep(25 * time.Millisecond)
	if !m.Typing() {
		t.Fatal("typing flag cleared despite recent event")
	}

	deadline := time.Now().Add(2 * time.Second)
	for m.Typing() {
		if time.Now().After(deadline) {
			t.Fatal("typing flag never self-cleared")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestTeardownDiscardsEverything(t *testing.T) {
	m := NewChatModel("u2")
	m.typingQuiet = time.Hour // pending timer must be cancelled
	m.AppendIncoming("Amy", "hi")
	m.TypingSeen()

	m.Teardown()

	if len(m.Messages()) != 0 {
		t.Error("transcript survived teardown")
	}
	if m.Typing() {
		t.Error("typing flag survived teardown")
	}
}
