package socket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/codecircle/cctui/internal/bus"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

func TestWireURL(t *testing.T) {
	cases := map[string]string{
		"https://api.example.com": "wss://api.example.com",
		"http://localhost:7777":   "ws://localhost:7777",
		"ws://already":            "ws://already",
	}
	for in, want := range cases {
		if got := WireURL(in); got != want {
			t.Errorf("WireURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEnvelopeRoundTrip(t *testing.T) {
	frame, err := json.Marshal(struct {
		Event   string `json:"event"`
		Payload any    `json:"payload,omitempty"`
	}{Event: EventSendMessage, Payload: SendMessage{FirstName: "Amy", UserID: "u1", TargetUserID: "u2", Text: "hi"}})
	if err != nil {
		t.Fatal(err)
	}

	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		t.Fatal(err)
	}
	if env.Event != EventSendMessage {
		t.Errorf("event = %q", env.Event)
	}
	msg, err := Decode[SendMessage](env.Payload)
	if err != nil {
		t.Fatal(err)
	}
	if msg.Text != "hi" || msg.TargetUserID != "u2" {
		t.Errorf("payload = %+v", msg)
	}
}

func TestDecodeEmptyPayload(t *testing.T) {
	// userTyping arrives with no payload at all.
	p, err := Decode[Presence](nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.UserID != "" {
		t.Errorf("payload = %+v", p)
	}
}

// echoServer upgrades, forwards one canned messageReceived frame, then
// echoes every frame it reads back to the client.
func echoServer(t *testing.T) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer func() { _ = ws.Close() }()
		for {
			var env Envelope
			if err := ws.ReadJSON(&env); err != nil {
				return
			}
			if env.Event == EventSendMessage {
				msg, _ := Decode[SendMessage](env.Payload)
				payload, _ := json.Marshal(MessageReceived{FirstName: msg.FirstName, Text: msg.Text, UserID: msg.UserID})
				if err := ws.WriteJSON(Envelope{Event: EventMessageReceived, Payload: payload}); err != nil {
					return
				}
			}
		}
	}))
}

func TestSendEchoedBackThroughBus(t *testing.T) {
	srv := echoServer(t)
	defer srv.Close()

	b := bus.New()
	ch, unsub := b.Subscribe("socket.", 16)
	defer unsub()

	conn, err := Dial(context.Background(), srv.URL, "chat", b, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	if err := conn.Emit(EventSendMessage, SendMessage{FirstName: "Amy", UserID: "u1", TargetUserID: "u2", Text: "hello"}); err != nil {
		t.Fatal(err)
	}

	select {
	case evt := <-ch:
		if evt.Kind != bus.SocketMessage {
			t.Fatalf("kind = %q, want %q", evt.Kind, bus.SocketMessage)
		}
		in := evt.Payload.(Inbound)
		if in.Origin != "chat" {
			t.Errorf("origin = %q", in.Origin)
		}
		msg, err := Decode[MessageReceived](in.Raw)
		if err != nil {
			t.Fatal(err)
		}
		if msg.Text != "hello" || msg.FirstName != "Amy" {
			t.Errorf("payload = %+v", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for echoed message")
	}
}

func TestCloseStopsPump(t *testing.T) {
	srv := echoServer(t)
	defer srv.Close()

	b := bus.New()
	ch, unsub := b.Subscribe("socket.", 16)
	defer unsub()

	conn, err := Dial(context.Background(), srv.URL, "shell", b, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	conn.Close()
	conn.Close() // idempotent

	select {
	case evt := <-ch:
		if evt.Kind != bus.SocketClosed {
			t.Errorf("kind = %q, want %q", evt.Kind, bus.SocketClosed)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for close event")
	}
}
