package bus

import "time"

// Event is a domain event published on the bus. Kind uses dotted
// namespaces so subscribers can filter by prefix.
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}

// Event kinds published across the client.
const (
	// StateChanged fires after every store slice mutation. Payload is the
	// slice name ("feed", "chat", "toasts", "user", "connections", "requests").
	StateChanged = "state.changed"

	// Socket events mirror the backend's wire event names.
	SocketMessage = "socket.messageReceived"
	SocketTyping  = "socket.userTyping"
	SocketOnline  = "socket.userOnline"
	SocketOffline = "socket.userOffline"
	SocketClosed  = "socket.closed"

	SessionLoggedIn  = "session.loggedIn"
	SessionExpired   = "session.expired"
	SessionLoggedOut = "session.loggedOut"
)
