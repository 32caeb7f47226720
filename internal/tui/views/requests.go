package views

import (
	"github.com/codecircle/cctui/internal/state"
	"github.com/rivo/tview"
)

// RequestsView lists connection requests: the received tab with
// accept/reject keys, and the sent tab with withdraw.
type RequestsView struct {
	*tview.Flex
	table *tview.Table
	hints *tview.TextView

	requests []state.Request
	sent     bool
}

func NewRequestsView() *RequestsView {
	v := &RequestsView{
		table: tview.NewTable().SetSelectable(true, false),
		hints: tview.NewTextView().SetDynamicColors(true),
	}
	v.table.SetBorder(true).SetTitle(" Requests ")

	v.Flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(v.table, 0, 1, true).
		AddItem(v.hints, 1, 0, false)
	return v
}

// Table exposes the list for key handling.
func (v *RequestsView) Table() *tview.Table {
	return v.table
}

// Selected returns the request under the cursor.
func (v *RequestsView) Selected() (state.Request, bool) {
	row, _ := v.table.GetSelection()
	idx := row - 1
	if idx >= 0 && idx < len(v.requests) {
		return v.requests[idx], true
	}
	return state.Request{}, false
}

// Update repaints the received-request list.
func (v *RequestsView) Update(requests []state.Request) {
	v.sent = false
	v.table.SetTitle(" Requests received ")
	v.hints.SetText(" a:accept  x:reject  t:sent")
	v.render(requests, func(r state.Request) *state.User { return r.FromUser })
}

// UpdateSent repaints the sent-request list.
func (v *RequestsView) UpdateSent(requests []state.Request) {
	v.sent = true
	v.table.SetTitle(" Requests sent ")
	v.hints.SetText(" w:withdraw  t:received")
	v.render(requests, func(r state.Request) *state.User { return r.ToUser })
}

func (v *RequestsView) render(requests []state.Request, counterpart func(state.Request) *state.User) {
	v.requests = requests
	v.table.Clear()
	for col, h := range []string{" Who", " About", " Status"} {
		v.table.SetCell(0, col, tview.NewTableCell(h).SetSelectable(false))
	}
	for i, r := range requests {
		row := i + 1
		name := ""
		about := ""
		if u := counterpart(r); u != nil {
			name = u.DisplayName()
			about = u.About
		}
		v.table.SetCell(row, 0, tview.NewTableCell(" "+name).SetExpansion(1))
		v.table.SetCell(row, 1, tview.NewTableCell(" "+about).SetExpansion(2))
		v.table.SetCell(row, 2, tview.NewTableCell(" "+r.Status))
	}
	if len(requests) > 0 {
		row, _ := v.table.GetSelection()
		if row < 1 || row > len(requests) {
			v.table.Select(1, 0)
		}
	}
}
