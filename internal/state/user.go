package state

// UserSlice holds the authenticated user's own profile, or nothing when
// logged out.
type UserSlice struct {
	current *User
}

// Set replaces the current user.
func (u *UserSlice) Set(user User) {
	copied := user
	u.current = &copied
}

// Clear removes the current user. Called on logout and session expiry.
func (u *UserSlice) Clear() {
	u.current = nil
}

// Current returns a copy of the current user, if any.
func (u *UserSlice) Current() (User, bool) {
	if u.current == nil {
		return User{}, false
	}
	return *u.current, true
}
