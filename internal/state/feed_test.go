package state

import "testing"

func TestSetFeedNormalizesPayloadShapes(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    int
	}{
		{"bare array", `[{"_id":"u1","firstName":"Amy"},{"_id":"u2","firstName":"Bob"}]`, 2},
		{"Data wrapper", `{"Data":[{"_id":"u1","firstName":"Amy"}]}`, 1},
		{"data wrapper", `{"data":[{"_id":"u1","firstName":"Amy"}]}`, 1},
		{"null", `null`, 0},
		{"empty", ``, 0},
		{"malformed object", `{"weird":true}`, 0},
		{"not json", `<html>`, 0},
		{"duplicate ids collapsed", `[{"_id":"u1"},{"_id":"u1"},{"_id":"u2"}]`, 2},
		{"entries without id dropped", `[{"firstName":"Ghost"},{"_id":"u1"}]`, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var f FeedSlice
			f.Set([]byte(tc.payload))
			if got := f.Len(); got != tc.want {
				t.Errorf("feed len = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestAddRemoveNetEffect(t *testing.T) {
	var f FeedSlice
	f.AddUser(User{ID: "u1"})
	f.AddUser(User{ID: "u2"})
	f.AddUser(User{ID: "u3"})
	f.Remove("u2")
	f.AddUser(User{ID: "u4"})
	f.Remove("missing") // no-op

	users := f.Users()
	if len(users) != 3 {
		t.Fatalf("feed len = %d, want 3", len(users))
	}
	counts := map[string]int{}
	for _, u := range users {
		counts[u.ID]++
	}
	for _, id := range []string{"u1", "u3", "u4"} {
		if counts[id] != 1 {
			t.Errorf("id %s count = %d, want 1", id, counts[id])
		}
	}
	if counts["u2"] != 0 {
		t.Errorf("removed id u2 still present")
	}
}

func TestAddUserIdempotentPrepend(t *testing.T) {
	var f FeedSlice
	f.AddUser(User{ID: "u1", FirstName: "Amy"})
	f.AddUser(User{ID: "u2", FirstName: "Bob"})
	f.AddUser(User{ID: "u1", FirstName: "Duplicate"})
	f.AddUser(User{}) // no id, ignored

	users := f.Users()
	if len(users) != 2 {
		t.Fatalf("feed len = %d, want 2", len(users))
	}
	// Last genuine add is first.
	if users[0].ID != "u2" {
		t.Errorf("head = %s, want u2", users[0].ID)
	}
	if users[1].FirstName != "Amy" {
		t.Errorf("duplicate add overwrote existing user: %q", users[1].FirstName)
	}
}

func TestUpdateRequestInfo(t *testing.T) {
	var f FeedSlice
	f.AddUser(User{ID: "u1"})

	info := &RequestInfo{Exists: true, Status: StatusInterested, Direction: DirectionOutgoing, RequestID: "r1"}
	f.UpdateRequestInfo("u1", info)

	u, ok := f.Get("u1")
	if !ok || u.RequestInfo == nil || u.RequestInfo.RequestID != "r1" {
		t.Fatalf("request info not applied: %+v", u)
	}

	f.UpdateRequestInfo("u1", nil)
	u, _ = f.Get("u1")
	if u.RequestInfo != nil {
		t.Error("nil info should clear request info")
	}

	// Absent user: total, no panic.
	f.UpdateRequestInfo("missing", info)
}
