package cache

import (
	"time"

	"github.com/codecircle/cctui/internal/state"
)

// UpsertChatMeta writes one metadata entry, keyed by counterpart id.
func (db *DB) UpsertChatMeta(chatID string, meta state.ChatMeta) error {
	now := time.Now().UnixMilli()
	_, err := db.Exec(`
		INSERT INTO chat_meta (chat_id, last_message, ts, unread_count, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET
			last_message = excluded.last_message,
			ts = excluded.ts,
			unread_count = excluded.unread_count,
			updated_at = excluded.updated_at`,
		chatID, meta.LastMessage, meta.Timestamp, meta.UnreadCount, now)
	return err
}

// LoadChatMeta returns every cached metadata entry.
func (db *DB) LoadChatMeta() (map[string]state.ChatMeta, error) {
	rows, err := db.Query(`SELECT chat_id, last_message, ts, unread_count FROM chat_meta`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string]state.ChatMeta)
	for rows.Next() {
		var id string
		var m state.ChatMeta
		if err := rows.Scan(&id, &m.LastMessage, &m.Timestamp, &m.UnreadCount); err != nil {
			return nil, err
		}
		out[id] = m
	}
	return out, rows.Err()
}
