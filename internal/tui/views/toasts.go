package views

import (
	"fmt"
	"strings"

	"github.com/codecircle/cctui/internal/state"
	"github.com/rivo/tview"
)

// ToastStrip renders the active toasts as a single line under the menu bar.
// It collapses to zero height when no toast is up.
type ToastStrip struct {
	*tview.TextView
	count int
}

func NewToastStrip() *ToastStrip {
	return &ToastStrip{
		TextView: tview.NewTextView().SetDynamicColors(true),
	}
}

// Update repaints the strip in insertion order.
func (t *ToastStrip) Update(toasts []state.Toast) {
	t.count = len(toasts)
	var parts []string
	for _, toast := range toasts {
		color := "blue"
		switch toast.Variant {
		case state.ToastSuccess:
			color = "green"
		case state.ToastError:
			color = "red"
		}
		parts = append(parts, fmt.Sprintf("[%s]%s[-]", color, tview.Escape(toast.Message)))
	}
	t.SetText(" " + strings.Join(parts, "  |  "))
}

// Height is how many rows the strip should take in the layout.
func (t *ToastStrip) Height() int {
	if t.count == 0 {
		return 0
	}
	return 1
}
