package cache

import (
	"context"

	"github.com/codecircle/cctui/internal/bus"
	"github.com/codecircle/cctui/internal/state"
	"go.uber.org/zap"
)

// Syncer writes chat metadata through to the cache. It subscribes to
// state.changed events and persists a snapshot whenever the chat slice
// moves, so views never touch the cache directly.
type Syncer struct {
	db     *DB
	store  *state.Store
	bus    *bus.Bus
	logger *zap.Logger
	cancel context.CancelFunc
}

// NewSyncer creates a syncer. Call Start to begin consuming.
func NewSyncer(db *DB, store *state.Store, b *bus.Bus, logger *zap.Logger) *Syncer {
	return &Syncer{db: db, store: store, bus: b, logger: logger}
}

// Start restores cached entries into the store, then follows chat-slice
// changes until Stop or ctx cancellation.
func (s *Syncer) Start(ctx context.Context) error {
	meta, err := s.db.LoadChatMeta()
	if err != nil {
		return err
	}
	if len(meta) > 0 {
		s.store.LoadChatMeta(meta)
		s.logger.Info("chat metadata restored", zap.Int("entries", len(meta)))
	}

	ctx, s.cancel = context.WithCancel(ctx)
	ch, unsub := s.bus.Subscribe("state.", 256)

	go func() {
		defer unsub()
		for {
			select {
			case evt := <-ch:
				if evt.Payload != state.SliceChat {
					continue
				}
				s.persist()
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

// Stop stops the syncer.
func (s *Syncer) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Syncer) persist() {
	for chatID, meta := range s.store.ChatMetaSnapshot() {
		if err := s.db.UpsertChatMeta(chatID, meta); err != nil {
			s.logger.Error("failed to persist chat metadata",
				zap.Error(err), zap.String("chat_id", chatID))
		}
	}
}
