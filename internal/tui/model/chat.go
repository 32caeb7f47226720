package model

import (
	"sync"
	"time"
)

// TypingQuiet is how long after the last typing event the indicator stays up.
const TypingQuiet = 3 * time.Second

// ChatMessage is one transcript entry. Transcripts live only in the
// mounted chat screen; navigating away discards them.
type ChatMessage struct {
	SenderName string
	Text       string
	Timestamp  time.Time
}

// ChatModel holds the transient transcript and typing indicator for one
// counterpart. The transcript grows only on incoming messageReceived
// events, in delivery order, without deduplication — a send appears once
// the server echoes it back.
type ChatModel struct {
	mu sync.Mutex

	counterpartID string
	messages      []ChatMessage
	typing        bool
	typingTimer   *time.Timer
	typingQuiet   time.Duration
	onChange      func()
}

// NewChatModel creates a chat model for one counterpart id.
func NewChatModel(counterpartID string) *ChatModel {
	return &ChatModel{
		counterpartID: counterpartID,
		typingQuiet:   TypingQuiet,
	}
}

// CounterpartID returns the counterpart this model is bound to.
func (m *ChatModel) CounterpartID() string {
	return m.counterpartID
}

// SetOnChange registers a repaint callback, invoked from timer goroutines.
func (m *ChatModel) SetOnChange(fn func()) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

func (m *ChatModel) notify() {
	m.mu.Lock()
	fn := m.onChange
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// AppendIncoming records one received message.
func (m *ChatModel) AppendIncoming(senderName, text string) {
	m.mu.Lock()
	m.messages = append(m.messages, ChatMessage{
		SenderName: senderName,
		Text:       text,
		Timestamp:  time.Now(),
	})
	m.mu.Unlock()
}

// Messages returns a copy of the transcript.
func (m *ChatModel) Messages() []ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ChatMessage, len(m.messages))
	copy(out, m.messages)
	return out
}

// TypingSeen raises the typing indicator and (re)arms the quiet timer:
// each event pushes the self-clear out by the full quiet period.
func (m *ChatModel) TypingSeen() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.typing = true
	if m.typingTimer != nil {
		m.typingTimer.Reset(m.typingQuiet)
		return
	}
	m.typingTimer = time.AfterFunc(m.typingQuiet, func() {
		m.mu.Lock()
		m.typing = false
		m.mu.Unlock()
		m.notify()
	})
}

// Typing reports whether the counterpart is typing.
func (m *ChatModel) Typing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.typing
}

// Teardown cancels the pending quiet timer. Called on unmount; no
// transcript state survives it.
func (m *ChatModel) Teardown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.typingTimer != nil {
		m.typingTimer.Stop()
		m.typingTimer = nil
	}
	m.typing = false
	m.messages = nil
}
