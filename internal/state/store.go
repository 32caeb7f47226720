// Package state is the client's store: one mutable container partitioned
// into independent slices. Views hold no authoritative copies; they read
// snapshots and mutate solely through Store operations. Every mutation is
// serialized by the store's lock and announced on the bus, which keeps
// slice operations atomic with respect to each other even though socket
// pumps and timers run on their own goroutines.
package state

import (
	"sync"
	"time"

	"github.com/codecircle/cctui/internal/bus"
	"github.com/google/uuid"
)

// Slice names carried in state.changed events.
const (
	SliceUser        = "user"
	SliceFeed        = "feed"
	SliceConnections = "connections"
	SliceRequests    = "requests"
	SliceChat        = "chat"
	SliceToasts      = "toasts"
)

// DefaultToastTimeout is the toast lifetime when callers pass zero.
const DefaultToastTimeout = 3000 // milliseconds

// Store owns all slice state.
type Store struct {
	mu  sync.Mutex
	bus *bus.Bus

	user        UserSlice
	feed        FeedSlice
	connections ConnectionsSlice
	requests    RequestsSlice
	chat        ChatSlice
	toasts      ToastsSlice
}

// New creates an empty store. The bus may be nil in tests; mutations then
// go unannounced.
func New(b *bus.Bus) *Store {
	return &Store{bus: b}
}

func (s *Store) publish(slice string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(bus.Event{Kind: bus.StateChanged, Timestamp: time.Now(), Payload: slice})
}

// --- user slice ---

func (s *Store) SetUser(u User) {
	s.mu.Lock()
	s.user.Set(u)
	s.mu.Unlock()
	s.publish(SliceUser)
}

func (s *Store) ClearUser() {
	s.mu.Lock()
	s.user.Clear()
	s.mu.Unlock()
	s.publish(SliceUser)
}

func (s *Store) CurrentUser() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user.Current()
}

// --- feed slice ---

func (s *Store) SetFeed(payload []byte) {
	s.mu.Lock()
	s.feed.Set(payload)
	s.mu.Unlock()
	s.publish(SliceFeed)
}

func (s *Store) AddUserToFeed(u User) {
	s.mu.Lock()
	s.feed.AddUser(u)
	s.mu.Unlock()
	s.publish(SliceFeed)
}

func (s *Store) RemoveFromFeed(id string) {
	s.mu.Lock()
	s.feed.Remove(id)
	s.mu.Unlock()
	s.publish(SliceFeed)
}

func (s *Store) UpdateUserRequestInfo(id string, info *RequestInfo) {
	s.mu.Lock()
	s.feed.UpdateRequestInfo(id, info)
	s.mu.Unlock()
	s.publish(SliceFeed)
}

func (s *Store) FeedUsers() []User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feed.Users()
}

func (s *Store) FeedUser(id string) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feed.Get(id)
}

func (s *Store) FeedLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feed.Len()
}

// --- connections slice ---

func (s *Store) SetConnections(users []User) {
	s.mu.Lock()
	s.connections.Set(users)
	s.mu.Unlock()
	s.publish(SliceConnections)
}

func (s *Store) SetConnectionOnline(id string, online bool) {
	s.mu.Lock()
	s.connections.SetOnline(id, online)
	s.mu.Unlock()
	s.publish(SliceConnections)
}

func (s *Store) Connections() []User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connections.List()
}

func (s *Store) ConnectionsSortedBy(key string) []User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connections.SortedBy(key)
}

func (s *Store) ConnectionOnline(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connections.Online(id)
}

// --- requests slice ---

func (s *Store) SetRequests(requests []Request) {
	s.mu.Lock()
	s.requests.Set(requests)
	s.mu.Unlock()
	s.publish(SliceRequests)
}

func (s *Store) RemoveRequest(id string) {
	s.mu.Lock()
	s.requests.Remove(id)
	s.mu.Unlock()
	s.publish(SliceRequests)
}

func (s *Store) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests.List()
}

// --- chat metadata slice ---

func (s *Store) SetLastOpenedChatID(id string) {
	s.mu.Lock()
	s.chat.SetLastOpenedChatID(id)
	s.mu.Unlock()
	s.publish(SliceChat)
}

func (s *Store) LastOpenedChatID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chat.LastOpenedChatID()
}

func (s *Store) UpsertLastMessage(chatID, lastMessage string, timestamp int64, incrementUnread bool) {
	s.mu.Lock()
	s.chat.UpsertLastMessage(chatID, lastMessage, timestamp, incrementUnread)
	s.mu.Unlock()
	s.publish(SliceChat)
}

func (s *Store) MarkAsRead(chatID string) {
	s.mu.Lock()
	s.chat.MarkAsRead(chatID)
	s.mu.Unlock()
	s.publish(SliceChat)
}

func (s *Store) ChatMeta(chatID string) (ChatMeta, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chat.Meta(chatID)
}

func (s *Store) ChatMetaSnapshot() map[string]ChatMeta {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chat.AllMeta()
}

func (s *Store) TotalUnread() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chat.TotalUnread()
}

// LoadChatMeta restores cached metadata entries at startup. It does not
// announce a change; nothing subscribes before the shell is up.
func (s *Store) LoadChatMeta(meta map[string]ChatMeta) {
	s.mu.Lock()
	s.chat.load(meta)
	s.mu.Unlock()
}

// --- toasts slice ---

// AddToast appends a toast with a fresh id and schedules its expiry.
// timeoutMs <= 0 falls back to DefaultToastTimeout. Returns the toast id.
func (s *Store) AddToast(message, variant string, timeoutMs int) string {
	if timeoutMs <= 0 {
		timeoutMs = DefaultToastTimeout
	}
	toast := Toast{
		ID:      uuid.NewString(),
		Message: message,
		Variant: variant,
		Timeout: timeoutMs,
	}
	s.mu.Lock()
	s.toasts.add(toast)
	s.mu.Unlock()
	s.publish(SliceToasts)

	time.AfterFunc(time.Duration(timeoutMs)*time.Millisecond, func() {
		s.RemoveToast(toast.ID)
	})
	return toast.ID
}

// RemoveToast dismisses a toast. No-op after expiry.
func (s *Store) RemoveToast(id string) {
	s.mu.Lock()
	s.toasts.remove(id)
	s.mu.Unlock()
	s.publish(SliceToasts)
}

func (s *Store) Toasts() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.toasts.List()
}
