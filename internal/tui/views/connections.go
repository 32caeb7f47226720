package views

import (
	"fmt"
	"strconv"

	"github.com/codecircle/cctui/internal/state"
	"github.com/codecircle/cctui/internal/tui/ui"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// ConnectionsView lists accepted connections with presence and unread
// counters. Enter on a row fires onMessage with that user.
type ConnectionsView struct {
	*tview.Flex
	table *tview.Table
	hints *tview.TextView

	users []state.User

	onMessage func(u state.User)
}

func NewConnectionsView() *ConnectionsView {
	v := &ConnectionsView{
		table: tview.NewTable().SetSelectable(true, false),
		hints: tview.NewTextView().SetDynamicColors(true),
	}
	v.table.SetBorder(true).SetTitle(" Connections ")
	v.table.SetSelectedFunc(func(row, _ int) {
		idx := row - 1
		if idx >= 0 && idx < len(v.users) && v.onMessage != nil {
			v.onMessage(v.users[idx])
		}
	})
	v.hints.SetText(" enter:message  s:cycle sort")

	v.Flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(v.table, 0, 1, true).
		AddItem(v.hints, 1, 0, false)
	return v
}

func (v *ConnectionsView) SetOnMessage(fn func(u state.User)) {
	v.onMessage = fn
}

// Table exposes the list for key handling.
func (v *ConnectionsView) Table() *tview.Table {
	return v.table
}

// Update repaints the list. online and unread are keyed by user id, sortKey
// labels the title.
func (v *ConnectionsView) Update(users []state.User, online func(id string) bool, unread func(id string) int, sortKey string) {
	v.users = users
	v.table.Clear()
	title := " Connections "
	if sortKey != "" {
		title = fmt.Sprintf(" Connections (by %s) ", sortKey)
	}
	v.table.SetTitle(title)

	for col, h := range []string{" ", " Name", " Age", " Skills", " Unread"} {
		v.table.SetCell(0, col, tview.NewTableCell(h).SetSelectable(false))
	}
	for i, u := range users {
		row := i + 1
		dot := tview.NewTableCell(" ○").SetTextColor(tcell.ColorGray)
		if online(u.ID) {
			dot = tview.NewTableCell(" ●").SetTextColor(ui.DefaultTheme().OnlineColor)
		}
		age := ""
		if u.Age > 0 {
			age = strconv.Itoa(u.Age)
		}
		badge := ""
		if n := unread(u.ID); n > 0 {
			badge = fmt.Sprintf("[red]%d[-]", n)
		}
		v.table.SetCell(row, 0, dot)
		v.table.SetCell(row, 1, tview.NewTableCell(" "+u.DisplayName()).SetExpansion(1))
		v.table.SetCell(row, 2, tview.NewTableCell(" "+age))
		v.table.SetCell(row, 3, tview.NewTableCell(" "+u.Skills).SetExpansion(2))
		v.table.SetCell(row, 4, tview.NewTableCell(" "+badge))
	}
	if len(users) > 0 && v.table.GetRowCount() > 1 {
		row, _ := v.table.GetSelection()
		if row < 1 || row > len(users) {
			v.table.Select(1, 0)
		}
	}
}
