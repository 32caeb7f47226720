package views

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"
)

// MenuBar is the one-line chrome shown above authenticated screens:
// signed-in user, current route, total unread and key hints.
type MenuBar struct {
	*tview.TextView
}

func NewMenuBar() *MenuBar {
	m := &MenuBar{
		TextView: tview.NewTextView().SetDynamicColors(true),
	}
	return m
}

// Update repaints the bar.
func (m *MenuBar) Update(userName, route string, unread int, hints []string) {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(" [::b]CodeCircle[-:-:-]  [yellow]%s[-]", tview.Escape(route)))
	if userName != "" {
		b.WriteString(fmt.Sprintf("  %s", tview.Escape(userName)))
	}
	if unread > 0 {
		b.WriteString(fmt.Sprintf("  [red]✉ %d[-]", unread))
	}
	if len(hints) > 0 {
		b.WriteString("  [gray]" + tview.Escape(strings.Join(hints, "  ")) + "[-]")
	}
	m.SetText(b.String())
}
