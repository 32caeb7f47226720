package state

import (
	"sort"
	"strings"
)

// ConnectionsSlice holds accepted connections and their live presence.
type ConnectionsSlice struct {
	users  []User
	online map[string]bool
}

// Set replaces the connection list, dropping entries with no id.
func (c *ConnectionsSlice) Set(users []User) {
	c.users = c.users[:0]
	for _, u := range users {
		if u.ID != "" {
			c.users = append(c.users, u)
		}
	}
}

// SetOnline records presence for one user id.
func (c *ConnectionsSlice) SetOnline(id string, online bool) {
	if c.online == nil {
		c.online = make(map[string]bool)
	}
	c.online[id] = online
}

// Online reports whether the user is known to be online.
func (c *ConnectionsSlice) Online(id string) bool {
	return c.online[id]
}

// List returns a copy of the connections in server order.
func (c *ConnectionsSlice) List() []User {
	out := make([]User, len(c.users))
	copy(out, c.users)
	return out
}

// SortedBy returns a copy sorted by the given key: "name" (first name,
// case-insensitive) or "age" (ascending). Any other key keeps server order.
func (c *ConnectionsSlice) SortedBy(key string) []User {
	out := c.List()
	switch key {
	case "name":
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].FirstName) < strings.ToLower(out[j].FirstName)
		})
	case "age":
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Age < out[j].Age
		})
	}
	return out
}
