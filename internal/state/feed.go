package state

import "encoding/json"

// FeedSlice holds the ordered discovery feed: user summaries the current
// user has not acted on yet. A user id appears at most once; every
// operation is a total function over the current state.
type FeedSlice struct {
	users []User
}

// Set replaces the feed from a raw server payload. The backend has shipped
// several shapes over time (bare array, {"Data":[...]}, {"data":[...]});
// anything unrecognized yields an empty feed rather than an error.
func (f *FeedSlice) Set(payload []byte) {
	f.users = normalizeFeed(payload)
}

func normalizeFeed(payload []byte) []User {
	if len(payload) == 0 {
		return nil
	}

	var bare []User
	if err := json.Unmarshal(payload, &bare); err == nil {
		return dedupe(bare)
	}

	var wrapped struct {
		Upper []User `json:"Data"`
		Lower []User `json:"data"`
	}
	if err := json.Unmarshal(payload, &wrapped); err != nil {
		return nil
	}
	if wrapped.Upper != nil {
		return dedupe(wrapped.Upper)
	}
	return dedupe(wrapped.Lower)
}

// dedupe keeps the first occurrence of each id and drops entries with no id.
func dedupe(users []User) []User {
	seen := make(map[string]struct{}, len(users))
	var out []User
	for _, u := range users {
		if u.ID == "" {
			continue
		}
		if _, ok := seen[u.ID]; ok {
			continue
		}
		seen[u.ID] = struct{}{}
		out = append(out, u)
	}
	return out
}

// AddUser prepends a user. No-op when the id is empty or already present,
// so optimistic rollbacks cannot introduce duplicates.
func (f *FeedSlice) AddUser(u User) {
	if u.ID == "" {
		return
	}
	for _, existing := range f.users {
		if existing.ID == u.ID {
			return
		}
	}
	f.users = append([]User{u}, f.users...)
}

// Remove deletes the user with the given id. No-op when absent.
func (f *FeedSlice) Remove(id string) {
	for i, u := range f.users {
		if u.ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return
		}
	}
}

// UpdateRequestInfo replaces the denormalized request info on one user.
// A nil info clears it. No-op when the user is absent.
func (f *FeedSlice) UpdateRequestInfo(id string, info *RequestInfo) {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].RequestInfo = info
			return
		}
	}
}

// Get returns the user with the given id, if present.
func (f *FeedSlice) Get(id string) (User, bool) {
	for _, u := range f.users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// Users returns a copy of the current feed.
func (f *FeedSlice) Users() []User {
	out := make([]User, len(f.users))
	copy(out, f.users)
	return out
}

// Len returns the number of users in the feed.
func (f *FeedSlice) Len() int {
	return len(f.users)
}
