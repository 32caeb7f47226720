package state

// ToastsSlice holds visible toast notifications in insertion order.
// Expiry timers are scheduled by the owning Store, not here.
type ToastsSlice struct {
	toasts []Toast
}

func (t *ToastsSlice) add(toast Toast) {
	t.toasts = append(t.toasts, toast)
}

// remove deletes the toast with the given id. Safe to call after expiry.
func (t *ToastsSlice) remove(id string) {
	for i, toast := range t.toasts {
		if toast.ID == id {
			t.toasts = append(t.toasts[:i], t.toasts[i+1:]...)
			return
		}
	}
}

// List returns a copy of the visible toasts in insertion order.
func (t *ToastsSlice) List() []Toast {
	out := make([]Toast, len(t.toasts))
	copy(out, t.toasts)
	return out
}
