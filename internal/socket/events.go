package socket

import "encoding/json"

// Wire event names. Emitted and consumed names are fixed by the relay
// server's contract.
const (
	EventJoinChat        = "joinChat"
	EventSendMessage     = "sendMessage"
	EventAnnounceOnline  = "announceOnline"
	EventMessageReceived = "messageReceived"
	EventUserTyping      = "userTyping"
	EventUserOnline      = "userOnline"
	EventUserOffline     = "userOffline"
)

// Envelope is the JSON frame exchanged with the relay server.
type Envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// JoinChat asks the server to put this connection in the room for the
// (userId, targetUserId) pair. The server owns the canonical room key;
// the pair is sent unordered.
type JoinChat struct {
	UserID       string `json:"userId"`
	TargetUserID string `json:"targetUserId"`
}

// SendMessage carries one outgoing chat message.
type SendMessage struct {
	FirstName    string `json:"firstName"`
	UserID       string `json:"userId"`
	TargetUserID string `json:"targetUserId"`
	Text         string `json:"text"`
}

// AnnounceOnline declares this user's presence.
type AnnounceOnline struct {
	UserID string `json:"userId"`
}

// MessageReceived is an incoming chat message. UserID identifies the
// sender when the server includes it; transcript rendering only needs
// the name and text.
type MessageReceived struct {
	FirstName string `json:"firstName"`
	Text      string `json:"text"`
	UserID    string `json:"userId,omitempty"`
}

// Presence is the payload of userOnline / userOffline.
type Presence struct {
	UserID string `json:"userId"`
}

// Decode unmarshals an event payload into its typed form.
func Decode[T any](raw json.RawMessage) (T, error) {
	var v T
	if len(raw) == 0 {
		return v, nil
	}
	err := json.Unmarshal(raw, &v)
	return v, err
}
