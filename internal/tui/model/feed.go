package model

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/codecircle/cctui/internal/api"
	"github.com/codecircle/cctui/internal/state"
	"go.uber.org/zap"
)

// AutoAdvanceInterval is the stack-mode auto-advance period.
const AutoAdvanceInterval = 4 * time.Second

// Browsing modes for the discovery feed.
const (
	ModeStack = "stack"
	ModeGrid  = "grid"
)

// Sort keys for the discovery feed. The server returns newest first, so
// "newest" keeps its order and "oldest" reverses it.
const (
	SortNewest = "newest"
	SortOldest = "oldest"
	SortName   = "name"
	SortAge    = "age"
)

// FeedAPI is the slice of the REST client the feed screen needs.
type FeedAPI interface {
	Feed(ctx context.Context) ([]byte, error)
	SendRequest(ctx context.Context, status, userID string) error
}

// Filters are the client-side feed filters. Location is kept for parity
// with the form even though no user-summary field matches it.
type Filters struct {
	AgeMin   int
	AgeMax   int
	Skill    string
	Location string
}

// FeedModel drives the discovery feed screen: fetch-once population,
// filtering, sorting, stack/grid browsing, auto-advance, and optimistic
// decisions with rollback.
type FeedModel struct {
	mu sync.Mutex

	store  *state.Store
	api    FeedAPI
	logger *zap.Logger

	filters Filters
	sortKey string
	mode    string
	index   int

	// decided remembers decisions per card instance so a card cannot be
	// acted on twice; rollback clears the entry.
	decided map[string]string

	autoTicker *time.Ticker
	autoDone   chan struct{}
	onChange   func()
}

// NewFeedModel creates a feed model.
func NewFeedModel(store *state.Store, client FeedAPI, logger *zap.Logger) *FeedModel {
	return &FeedModel{
		store:   store,
		api:     client,
		logger:  logger,
		sortKey: SortNewest,
		mode:    ModeStack,
		decided: make(map[string]string),
	}
}

// SetOnChange registers a repaint callback, invoked from timer goroutines.
func (m *FeedModel) SetOnChange(fn func()) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

func (m *FeedModel) notify() {
	m.mu.Lock()
	fn := m.onChange
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Load fetches the feed once. Skipped when the slice is already populated
// (navigating back to the feed does not refetch).
func (m *FeedModel) Load(ctx context.Context) error {
	if m.store.FeedLen() > 0 {
		return nil
	}
	payload, err := m.api.Feed(ctx)
	if err != nil {
		return err
	}
	m.store.SetFeed(payload)
	return nil
}

// SetFilters replaces the filters and resets the stack position.
func (m *FeedModel) SetFilters(f Filters) {
	m.mu.Lock()
	m.filters = f
	m.index = 0
	m.mu.Unlock()
}

// Filters returns the current filters.
func (m *FeedModel) Filters() Filters {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filters
}

// SetSort replaces the sort key and resets the stack position.
func (m *FeedModel) SetSort(key string) {
	m.mu.Lock()
	m.sortKey = key
	m.index = 0
	m.mu.Unlock()
}

// SetMode switches between stack and grid browsing.
func (m *FeedModel) SetMode(mode string) {
	m.mu.Lock()
	m.mode = mode
	m.mu.Unlock()
}

// Mode returns the current browsing mode.
func (m *FeedModel) Mode() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// Visible returns the filtered, sorted feed.
func (m *FeedModel) Visible() []state.User {
	m.mu.Lock()
	f := m.filters
	key := m.sortKey
	m.mu.Unlock()

	users := m.store.FeedUsers()
	filtered := users[:0:0]
	for _, u := range users {
		if f.AgeMin > 0 && u.Age < f.AgeMin {
			continue
		}
		if f.AgeMax > 0 && u.Age > f.AgeMax {
			continue
		}
		if f.Skill != "" && !strings.Contains(strings.ToLower(u.Skills), strings.ToLower(f.Skill)) {
			continue
		}
		// Location has no matching user-summary field; the filter is
		// accepted and matches everything.
		filtered = append(filtered, u)
	}

	switch key {
	case SortOldest:
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	case SortName:
		sort.SliceStable(filtered, func(i, j int) bool {
			return strings.ToLower(filtered[i].FirstName) < strings.ToLower(filtered[j].FirstName)
		})
	case SortAge:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Age < filtered[j].Age
		})
	}
	return filtered
}

// Current returns the card at the stack position, if any.
func (m *FeedModel) Current() (state.User, bool) {
	visible := m.Visible()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(visible) == 0 {
		return state.User{}, false
	}
	if m.index >= len(visible) {
		m.index = 0
	}
	return visible[m.index], true
}

// Index returns the stack position.
func (m *FeedModel) Index() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index
}

// Advance moves the stack forward, wrapping to zero past the end.
func (m *FeedModel) Advance() {
	n := len(m.Visible())
	m.mu.Lock()
	defer m.mu.Unlock()
	if n == 0 {
		m.index = 0
		return
	}
	m.index = (m.index + 1) % n
}

// Retreat moves the stack backward, wrapping to the end.
func (m *FeedModel) Retreat() {
	n := len(m.Visible())
	m.mu.Lock()
	defer m.mu.Unlock()
	if n == 0 {
		m.index = 0
		return
	}
	m.index = (m.index - 1 + n) % n
}

// StartAutoAdvance begins the repeating stack advance. No-op when already
// running.
func (m *FeedModel) StartAutoAdvance(interval time.Duration) {
	m.mu.Lock()
	if m.autoTicker != nil {
		m.mu.Unlock()
		return
	}
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	m.autoTicker = ticker
	m.autoDone = done
	m.mu.Unlock()

	go func() {
		for {
			select {
			case <-ticker.C:
				m.Advance()
				m.notify()
			case <-done:
				return
			}
		}
	}()
}

// StopAutoAdvance cancels the repeating advance. No-op when not running.
func (m *FeedModel) StopAutoAdvance() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.autoTicker == nil {
		return
	}
	m.autoTicker.Stop()
	close(m.autoDone)
	m.autoTicker = nil
	m.autoDone = nil
}

// AutoAdvancing reports whether the ticker is running.
func (m *FeedModel) AutoAdvancing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.autoTicker != nil
}

// Decided returns the locally recorded decision for a card instance.
func (m *FeedModel) Decided(userID string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	label, ok := m.decided[userID]
	return label, ok
}

// Decide applies an ignore/interested decision optimistically: the user
// leaves the feed and the card is locked before the request goes out. On
// transport failure the user is re-inserted, the lock cleared, and an
// error toast raised. Success changes nothing further.
func (m *FeedModel) Decide(ctx context.Context, userID, status string) error {
	m.mu.Lock()
	if _, done := m.decided[userID]; done {
		m.mu.Unlock()
		return nil
	}
	m.decided[userID] = status
	m.mu.Unlock()

	saved, ok := m.store.FeedUser(userID)
	if !ok {
		return nil
	}
	m.store.RemoveFromFeed(userID)

	if err := m.api.SendRequest(ctx, status, userID); err != nil {
		m.store.AddUserToFeed(saved)
		m.mu.Lock()
		delete(m.decided, userID)
		m.mu.Unlock()
		m.store.AddToast(api.UserMessage(err), state.ToastError, 0)
		m.logger.Warn("decision rolled back",
			zap.String("user_id", userID),
			zap.String("status", status),
			zap.Error(err))
		return err
	}
	return nil
}
