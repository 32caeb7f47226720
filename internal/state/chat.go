package state

// ChatSlice tracks which chat screen is focused and the denormalized
// per-counterpart metadata (last message, unread counter). Transcripts are
// not held here; they live only in the mounted chat screen.
//
// Per entry the unread counter moves between "unseen" (count > 0) and
// "seen" (count = 0): toward unseen only on an incoming message while the
// chat is unfocused, to seen only on explicit focus (MarkAsRead).
type ChatSlice struct {
	lastOpenedChatID string
	meta             map[string]ChatMeta
}

// SetLastOpenedChatID records the focused chat. There is at most one
// focused chat process-wide; empty means none.
func (c *ChatSlice) SetLastOpenedChatID(id string) {
	c.lastOpenedChatID = id
}

// LastOpenedChatID returns the focused chat id, or empty.
func (c *ChatSlice) LastOpenedChatID() string {
	return c.lastOpenedChatID
}

// UpsertLastMessage creates or updates the metadata entry for chatID.
// The unread counter increases by one only when incrementUnread is set.
func (c *ChatSlice) UpsertLastMessage(chatID, lastMessage string, timestamp int64, incrementUnread bool) {
	if c.meta == nil {
		c.meta = make(map[string]ChatMeta)
	}
	entry := c.meta[chatID]
	entry.LastMessage = lastMessage
	entry.Timestamp = timestamp
	if incrementUnread {
		entry.UnreadCount++
	}
	c.meta[chatID] = entry
}

// MarkAsRead resets the unread counter for chatID. No-op when the entry
// does not exist.
func (c *ChatSlice) MarkAsRead(chatID string) {
	entry, ok := c.meta[chatID]
	if !ok {
		return
	}
	entry.UnreadCount = 0
	c.meta[chatID] = entry
}

// Meta returns the metadata entry for chatID, if present.
func (c *ChatSlice) Meta(chatID string) (ChatMeta, bool) {
	m, ok := c.meta[chatID]
	return m, ok
}

// AllMeta returns a copy of every metadata entry keyed by counterpart id.
func (c *ChatSlice) AllMeta() map[string]ChatMeta {
	out := make(map[string]ChatMeta, len(c.meta))
	for k, v := range c.meta {
		out[k] = v
	}
	return out
}

// TotalUnread sums the unread counters across all entries.
func (c *ChatSlice) TotalUnread() int {
	total := 0
	for _, m := range c.meta {
		total += m.UnreadCount
	}
	return total
}

// load replaces all metadata entries. Used when restoring the cache.
func (c *ChatSlice) load(meta map[string]ChatMeta) {
	c.meta = make(map[string]ChatMeta, len(meta))
	for k, v := range meta {
		c.meta[k] = v
	}
}
