package model

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/codecircle/cctui/internal/state"
	"go.uber.org/zap"
)

type fakeAPI struct {
	payload []byte
	fail    error
	calls   int
	feeds   int
}

func (f *fakeAPI) Feed(ctx context.Context) ([]byte, error) {
	f.feeds++
	return f.payload, nil
}

func (f *fakeAPI) SendRequest(ctx context.Context, status, userID string) error {
	f.calls++
	return f.fail
}

func seededModel(t *testing.T, n int) (*FeedModel, *state.Store, *fakeAPI) {
	t.Helper()
	store := state.New(nil)
	users := make([]state.User, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, state.User{ID: string(rune('a' + i)), FirstName: string(rune('A' + i)), Age: 20 + i})
	}
	for i := len(users) - 1; i >= 0; i-- {
		store.AddUserToFeed(users[i]) // prepend keeps a,b,c,... order
	}
	client := &fakeAPI{}
	return NewFeedModel(store, client, zap.NewNop()), store, client
}

func TestLoadSkippedWhenPopulated(t *testing.T) {
	m, _, client := seededModel(t, 2)
	if err := m.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if client.feeds != 0 {
		t.Errorf("feed fetched %d times despite populated slice", client.feeds)
	}
}

func TestLoadFetchesOnce(t *testing.T) {
	store := state.New(nil)
	client := &fakeAPI{payload: []byte(`[{"_id":"u1"}]`)}
	m := NewFeedModel(store, client, zap.NewNop())

	if err := m.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := m.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if client.feeds != 1 {
		t.Errorf("feed fetched %d times, want 1", client.feeds)
	}
	if store.FeedLen() != 1 {
		t.Errorf("feed len = %d", store.FeedLen())
	}
}

func TestAdvanceWraps(t *testing.T) {
	m, _, _ := seededModel(t, 3)

	var got []int
	for i := 0; i < 3; i++ {
		m.Advance()
		got = append(got, m.Index())
	}
	want := []int{1, 2, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index sequence = %v, want %v", got, want)
		}
	}
}

func TestAutoAdvanceTicks(t *testing.T) {
	m, _, _ := seededModel(t, 3)
	m.StartAutoAdvance(20 * time.Millisecond)
	defer m.StopAutoAdvance()

	deadline := time.Now().Add(2 * time.Second)
	seen := map[int]bool{}
	for len(seen) < 3 {
		seen[m.Index()] = true
		if time.Now().After(deadline) {
			t.Fatalf("auto-advance never cycled all indexes, saw %v", seen)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStopAutoAdvanceIdempotent(t *testing.T) {
	m, _, _ := seededModel(t, 3)
	m.StartAutoAdvance(10 * time.Millisecond)
	m.StopAutoAdvance()
	m.StopAutoAdvance()
	if m.AutoAdvancing() {
		t.Error("still auto-advancing after stop")
	}
}

func TestFiltersAndSort(t *testing.T) {
	store := state.New(nil)
	store.SetFeed([]byte(`[
		{"_id":"u1","firstName":"Cara","age":35,"skills":"Go, SQL"},
		{"_id":"u2","firstName":"Amy","age":22,"skills":"Rust"},
		{"_id":"u3","firstName":"Bob","age":28,"skills":"go, tooling"}
	]`))
	m := NewFeedModel(store, &fakeAPI{}, zap.NewNop())

	m.SetFilters(Filters{Skill: "go"})
	visible := m.Visible()
	if len(visible) != 2 {
		t.Fatalf("skill filter: %d users, want 2", len(visible))
	}

	m.SetFilters(Filters{AgeMin: 25, AgeMax: 30})
	visible = m.Visible()
	if len(visible) != 1 || visible[0].ID != "u3" {
		t.Fatalf("age filter: %+v", visible)
	}

	// Location matches nothing in the summary shape, so it filters nothing.
	m.SetFilters(Filters{Location: "Berlin"})
	if got := len(m.Visible()); got != 3 {
		t.Errorf("location filter removed users: %d", got)
	}

	m.SetFilters(Filters{})
	m.SetSort(SortName)
	visible = m.Visible()
	if visible[0].FirstName != "Amy" || visible[2].FirstName != "Cara" {
		t.Errorf("sort by name: %v", visible)
	}

	m.SetSort(SortAge)
	visible = m.Visible()
	if visible[0].Age != 22 || visible[2].Age != 35 {
		t.Errorf("sort by age: %v", visible)
	}

	m.SetSort(SortOldest)
	visible = m.Visible()
	if visible[0].ID != "u3" {
		t.Errorf("sort oldest: head = %s", visible[0].ID)
	}
}

func TestDecideOptimisticSuccess(t *testing.T) {
	m, store, client := seededModel(t, 5)
	target := store.FeedUsers()[2].ID

	if err := m.Decide(context.Background(), target, state.StatusInterested); err != nil {
		t.Fatal(err)
	}
	if client.calls != 1 {
		t.Errorf("requests sent = %d, want 1", client.calls)
	}
	users := store.FeedUsers()
	if len(users) != 4 {
		t.Fatalf("feed len = %d, want 4", len(users))
	}
	for _, u := range users {
		if u.ID == target {
			t.Error("decided user still in feed")
		}
	}
	if label, ok := m.Decided(target); !ok || label != state.StatusInterested {
		t.Errorf("decision label = %q, ok=%v", label, ok)
	}
}

func TestDecideRollbackOnFailure(t *testing.T) {
	m, store, client := seededModel(t, 5)
	client.fail = errors.New("boom")
	target := store.FeedUsers()[2].ID

	if err := m.Decide(context.Background(), target, state.StatusIgnored); err == nil {
		t.Fatal("expected error")
	}

	users := store.FeedUsers()
	if len(users) != 5 {
		t.Fatalf("feed len after rollback = %d, want 5", len(users))
	}
	found := false
	for _, u := range users {
		if u.ID == target {
			found = true
		}
	}
	if !found {
		t.Error("rolled-back user missing from feed")
	}
	if _, ok := m.Decided(target); ok {
		t.Error("decision lock survived rollback")
	}

	toasts := store.Toasts()
	if len(toasts) != 1 || toasts[0].Variant != state.ToastError {
		t.Errorf("toasts = %+v, want one error toast", toasts)
	}
}

func TestDecideIdempotentPerCard(t *testing.T) {
	m, store, client := seededModel(t, 3)
	target := store.FeedUsers()[0].ID

	_ = m.Decide(context.Background(), target, state.StatusInterested)
	_ = m.Decide(context.Background(), target, state.StatusInterested)
	_ = m.Decide(context.Background(), target, state.StatusIgnored)

	if client.calls != 1 {
		t.Errorf("requests sent = %d, want 1 (no double submit)", client.calls)
	}
}
