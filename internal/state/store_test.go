package state

import (
	"testing"
	"time"

	"github.com/codecircle/cctui/internal/bus"
)

func TestToastSelfExpires(t *testing.T) {
	s := New(nil)
	s.AddToast("saved", ToastSuccess, 30)

	if got := len(s.Toasts()); got != 1 {
		t.Fatalf("toasts = %d, want 1 before expiry", got)
	}

	deadline := time.Now().Add(time.Second)
	for len(s.Toasts()) != 0 {
		if time.Now().After(deadline) {
			t.Fatal("toast did not expire")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRemoveToastAfterExpiryIsNoop(t *testing.T) {
	s := New(nil)
	id := s.AddToast("gone", ToastInfo, 10)
	time.Sleep(50 * time.Millisecond)
	s.RemoveToast(id) // already expired; must not panic or disturb others
	if got := len(s.Toasts()); got != 0 {
		t.Errorf("toasts = %d, want 0", got)
	}
}

func TestToastsKeepInsertionOrder(t *testing.T) {
	s := New(nil)
	s.AddToast("one", ToastInfo, 60000)
	s.AddToast("two", ToastError, 60000)
	s.AddToast("three", ToastSuccess, 60000)

	toasts := s.Toasts()
	if len(toasts) != 3 {
		t.Fatalf("toasts = %d, want 3", len(toasts))
	}
	for i, want := range []string{"one", "two", "three"} {
		if toasts[i].Message != want {
			t.Errorf("toast[%d] = %q, want %q", i, toasts[i].Message, want)
		}
	}
	if toasts[0].ID == toasts[1].ID {
		t.Error("toast ids are not unique")
	}
}

func TestDefaultToastTimeout(t *testing.T) {
	s := New(nil)
	s.AddToast("default", ToastError, 0)
	if got := s.Toasts()[0].Timeout; got != DefaultToastTimeout {
		t.Errorf("timeout = %d, want %d", got, DefaultToastTimeout)
	}
}

func TestMutationsAnnouncedOnBus(t *testing.T) {
	b := bus.New()
	s := New(b)
	ch, unsub := b.Subscribe("state.", 16)
	defer unsub()

	s.SetFeed([]byte(`[{"_id":"u1"}]`))
	s.UpsertLastMessage("u1", "hey", 1, true)

	want := map[string]bool{SliceFeed: false, SliceChat: false}
	timeout := time.After(time.Second)
	for i := 0; i < 2; i++ {
		select {
		case evt := <-ch:
			if evt.Kind != bus.StateChanged {
				t.Fatalf("kind = %q", evt.Kind)
			}
			want[evt.Payload.(string)] = true
		case <-timeout:
			t.Fatal("timeout waiting for state events")
		}
	}
	for slice, seen := range want {
		if !seen {
			t.Errorf("no event for slice %q", slice)
		}
	}
}

func TestConnectionsSorting(t *testing.T) {
	var c ConnectionsSlice
	c.Set([]User{
		{ID: "1", FirstName: "Bob", Age: 40},
		{ID: "2", FirstName: "Amy", Age: 20},
	})

	byName := c.SortedBy("name")
	if byName[0].FirstName != "Amy" || byName[1].FirstName != "Bob" {
		t.Errorf("by name: got %s, %s", byName[0].FirstName, byName[1].FirstName)
	}

	byAge := c.SortedBy("age")
	if byAge[0].Age != 20 || byAge[1].Age != 40 {
		t.Errorf("by age: got %d, %d", byAge[0].Age, byAge[1].Age)
	}

	// Unknown key keeps server order.
	asIs := c.SortedBy("")
	if asIs[0].ID != "1" {
		t.Errorf("unknown key reordered the list")
	}
}

func TestRequestsSlice(t *testing.T) {
	var r RequestsSlice
	r.Set([]Request{
		{ID: "r1", FromUser: &User{ID: "u1"}},
		{ID: "r2"}, // no sender, dropped
		{ID: "r3", FromUser: &User{ID: "u3"}},
	})
	if got := len(r.List()); got != 2 {
		t.Fatalf("requests = %d, want 2", got)
	}
	r.Remove("r1")
	r.Remove("r1") // no-op
	if got := len(r.List()); got != 1 {
		t.Errorf("requests = %d, want 1", got)
	}
}
