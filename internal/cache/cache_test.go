package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/codecircle/cctui/internal/bus"
	"github.com/codecircle/cctui/internal/state"
	"go.uber.org/zap"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrateIdempotent(t *testing.T) {
	db := testDB(t)
	result, err := db.Migrate()
	if err != nil {
		t.Fatal(err)
	}
	if result.Changed {
		t.Error("second Migrate() should report Changed=false")
	}
	if result.Version != 1 {
		t.Errorf("version = %d, want 1", result.Version)
	}
}

func TestChatMetaUpsertAndLoad(t *testing.T) {
	db := testDB(t)

	if err := db.UpsertChatMeta("u1", state.ChatMeta{LastMessage: "hi", Timestamp: 1000, UnreadCount: 2}); err != nil {
		t.Fatal(err)
	}
	// Overwrite, not duplicate.
	if err := db.UpsertChatMeta("u1", state.ChatMeta{LastMessage: "later", Timestamp: 2000, UnreadCount: 0}); err != nil {
		t.Fatal(err)
	}
	if err := db.UpsertChatMeta("u2", state.ChatMeta{LastMessage: "yo", Timestamp: 500, UnreadCount: 1}); err != nil {
		t.Fatal(err)
	}

	meta, err := db.LoadChatMeta()
	if err != nil {
		t.Fatal(err)
	}
	if len(meta) != 2 {
		t.Fatalf("entries = %d, want 2", len(meta))
	}
	if m := meta["u1"]; m.LastMessage != "later" || m.UnreadCount != 0 {
		t.Errorf("u1 = %+v", m)
	}
}

func TestSyncerFollowsChatSlice(t *testing.T) {
	db := testDB(t)
	b := bus.New()
	store := state.New(b)

	syncer := NewSyncer(db, store, b, zap.NewNop())
	if err := syncer.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer syncer.Stop()

	store.UpsertLastMessage("u7", "ping", 123, true)

	deadline := time.Now().Add(2 * time.Second)
	for {
		meta, err := db.LoadChatMeta()
		if err != nil {
			t.Fatal(err)
		}
		if m, ok := meta["u7"]; ok && m.UnreadCount == 1 && m.LastMessage == "ping" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("chat metadata never persisted")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestSyncerRestoresAtStart(t *testing.T) {
	db := testDB(t)
	if err := db.UpsertChatMeta("u1", state.ChatMeta{LastMessage: "old", Timestamp: 9, UnreadCount: 3}); err != nil {
		t.Fatal(err)
	}

	b := bus.New()
	store := state.New(b)
	syncer := NewSyncer(db, store, b, zap.NewNop())
	if err := syncer.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer syncer.Stop()

	m, ok := store.ChatMeta("u1")
	if !ok || m.UnreadCount != 3 || m.LastMessage != "old" {
		t.Errorf("restored meta = %+v, ok=%v", m, ok)
	}
}
