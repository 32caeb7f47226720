package state

import "testing"

func TestUpsertThenMarkAsRead(t *testing.T) {
	var c ChatSlice
	c.UpsertLastMessage("u1", "hi", 1000, true)
	c.UpsertLastMessage("u1", "hi", 2000, true)

	m, ok := c.Meta("u1")
	if !ok {
		t.Fatal("no meta entry for u1")
	}
	if m.UnreadCount != 2 {
		t.Errorf("unread = %d, want 2", m.UnreadCount)
	}

	c.MarkAsRead("u1")
	m, _ = c.Meta("u1")
	if m.UnreadCount != 0 {
		t.Errorf("unread after mark = %d, want 0", m.UnreadCount)
	}
	if m.LastMessage != "hi" {
		t.Errorf("lastMessage = %q, want hi", m.LastMessage)
	}
}

func TestUpsertWithoutIncrementKeepsCounter(t *testing.T) {
	var c ChatSlice
	c.UpsertLastMessage("u1", "first", 1, true)
	c.UpsertLastMessage("u1", "second", 2, false)

	m, _ := c.Meta("u1")
	if m.UnreadCount != 1 {
		t.Errorf("unread = %d, want 1", m.UnreadCount)
	}
	if m.LastMessage != "second" || m.Timestamp != 2 {
		t.Errorf("entry not updated: %+v", m)
	}
}

func TestMarkAsReadMissingEntry(t *testing.T) {
	var c ChatSlice
	c.MarkAsRead("nobody") // no-op, no entry created
	if _, ok := c.Meta("nobody"); ok {
		t.Error("MarkAsRead created an entry")
	}
}

func TestTotalUnread(t *testing.T) {
	var c ChatSlice
	c.UpsertLastMessage("u1", "a", 1, true)
	c.UpsertLastMessage("u2", "b", 2, true)
	c.UpsertLastMessage("u2", "c", 3, true)

	if got := c.TotalUnread(); got != 3 {
		t.Errorf("total unread = %d, want 3", got)
	}
	c.MarkAsRead("u2")
	if got := c.TotalUnread(); got != 1 {
		t.Errorf("total unread after read = %d, want 1", got)
	}
}

func TestLastOpenedChatID(t *testing.T) {
	var c ChatSlice
	if c.LastOpenedChatID() != "" {
		t.Error("expected empty initial focus")
	}
	c.SetLastOpenedChatID("u9")
	if c.LastOpenedChatID() != "u9" {
		t.Error("focus not recorded")
	}
}
