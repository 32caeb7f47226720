package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/codecircle/cctui/internal/state"
	"github.com/codecircle/cctui/internal/tui/model"
	"github.com/codecircle/cctui/internal/tui/ui"
	"github.com/rivo/tview"
)

// FeedView renders the discovery feed: a filter strip on top, then either
// a one-card stack or an all-at-once grid.
type FeedView struct {
	*tview.Flex
	filters *tview.Form
	card    *tview.TextView
	grid    *tview.Table
	hints   *tview.TextView
	body    *tview.Flex

	onFilter func(f model.Filters, sortKey string)
}

// NewFeedView creates the feed screen.
func NewFeedView() *FeedView {
	v := &FeedView{
		filters: tview.NewForm().SetHorizontal(true),
		card:    tview.NewTextView().SetDynamicColors(true).SetWordWrap(true),
		grid:    tview.NewTable().SetSelectable(true, false).SetBorders(false),
		hints:   tview.NewTextView().SetDynamicColors(true),
	}

	apply := func(string) { v.applyFilters() }
	v.filters.
		AddInputField("Age min", "", 4, tview.InputFieldInteger, apply).
		AddInputField("Age max", "", 4, tview.InputFieldInteger, apply).
		AddInputField("Skill", "", 12, nil, apply).
		AddInputField("Location", "", 12, nil, apply).
		AddDropDown("Sort", []string{model.SortNewest, model.SortOldest, model.SortName, model.SortAge}, 0,
			func(string, int) { v.applyFilters() })
	v.filters.SetBorder(true).SetTitle(" Filters ")
	v.filters.SetTitleColor(ui.DefaultTheme().TitleColor)

	v.card.SetBorder(true).SetTitle(" Discover ")
	v.grid.SetBorder(true).SetTitle(" Discover ")

	v.body = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(v.card, 0, 1, true)

	v.Flex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(v.filters, 5, 0, false).
		AddItem(v.body, 0, 1, true).
		AddItem(v.hints, 1, 0, false)

	v.hints.SetText(" n:next  p:prev  i:interested  x:ignore  a:auto  g:grid/stack  f:filters")
	return v
}

// SetOnFilter sets the callback fired when any filter input changes.
func (v *FeedView) SetOnFilter(fn func(f model.Filters, sortKey string)) {
	v.onFilter = fn
}

func (v *FeedView) applyFilters() {
	if v.onFilter == nil {
		return
	}
	f := model.Filters{
		AgeMin:   v.intField("Age min"),
		AgeMax:   v.intField("Age max"),
		Skill:    v.textField("Skill"),
		Location: v.textField("Location"),
	}
	_, sortKey := v.sortDropdown().GetCurrentOption()
	v.onFilter(f, sortKey)
}

func (v *FeedView) intField(label string) int {
	n, _ := strconv.Atoi(v.textField(label))
	return n
}

func (v *FeedView) textField(label string) string {
	if field, ok := v.filters.GetFormItemByLabel(label).(*tview.InputField); ok {
		return strings.TrimSpace(field.GetText())
	}
	return ""
}

func (v *FeedView) sortDropdown() *tview.DropDown {
	dd, _ := v.filters.GetFormItemByLabel("Sort").(*tview.DropDown)
	return dd
}

// FiltersForm exposes the filter form for focus handoff.
func (v *FeedView) FiltersForm() *tview.Form {
	return v.filters
}

// Update repaints for the given browsing state.
func (v *FeedView) Update(users []state.User, index int, mode string, auto bool, decided func(id string) (string, bool)) {
	v.body.Clear()
	if mode == model.ModeGrid {
		v.renderGrid(users, decided)
		v.body.AddItem(v.grid, 0, 1, true)
		return
	}
	v.renderCard(users, index, auto, decided)
	v.body.AddItem(v.card, 0, 1, true)
}

func (v *FeedView) renderCard(users []state.User, index int, auto bool, decided func(id string) (string, bool)) {
	v.card.Clear()
	if len(users) == 0 {
		_, _ = fmt.Fprint(v.card, "\n  No more people to discover.\n")
		v.card.SetTitle(" Discover ")
		return
	}
	if index >= len(users) {
		index = 0
	}
	u := users[index]
	title := fmt.Sprintf(" Discover %d/%d ", index+1, len(users))
	if auto {
		title += "(auto) "
	}
	v.card.SetTitle(title)

	_, _ = fmt.Fprintf(v.card, "\n  [::b]%s[-:-:-]\n", tview.Escape(u.DisplayName()))
	if u.Age > 0 {
		_, _ = fmt.Fprintf(v.card, "  Age: %d\n", u.Age)
	}
	if len(u.SkillList()) > 0 {
		_, _ = fmt.Fprintf(v.card, "  Skills: %s\n", tview.Escape(strings.Join(u.SkillList(), ", ")))
	}
	if u.About != "" {
		_, _ = fmt.Fprintf(v.card, "\n  %s\n", tview.Escape(u.About))
	}
	if label, ok := decided(u.ID); ok {
		_, _ = fmt.Fprintf(v.card, "\n  [yellow]Decision recorded: %s[-]\n", label)
	} else if u.RequestInfo != nil && u.RequestInfo.Exists {
		_, _ = fmt.Fprintf(v.card, "\n  [yellow]Request pending (%s, %s)[-]\n",
			u.RequestInfo.Status, u.RequestInfo.Direction)
	}
}

func (v *FeedView) renderGrid(users []state.User, decided func(id string) (string, bool)) {
	v.grid.Clear()
	headers := []string{" Name", " Age", " Skills", " Status"}
	for col, h := range headers {
		v.grid.SetCell(0, col, tview.NewTableCell(h).SetSelectable(false))
	}
	for i, u := range users {
		row := i + 1
		status := ""
		if label, ok := decided(u.ID); ok {
			status = label
		} else if u.RequestInfo != nil && u.RequestInfo.Exists {
			status = "pending"
		}
		age := ""
		if u.Age > 0 {
			age = strconv.Itoa(u.Age)
		}
		v.grid.SetCell(row, 0, tview.NewTableCell(" "+u.DisplayName()).SetExpansion(1))
		v.grid.SetCell(row, 1, tview.NewTableCell(" "+age))
		v.grid.SetCell(row, 2, tview.NewTableCell(" "+u.Skills).SetExpansion(2))
		v.grid.SetCell(row, 3, tview.NewTableCell(" "+status))
	}
}

// SelectedGridUser returns the user id on the selected grid row.
func (v *FeedView) SelectedGridUser(users []state.User) string {
	row, _ := v.grid.GetSelection()
	idx := row - 1
	if idx >= 0 && idx < len(users) {
		return users[idx].ID
	}
	return ""
}
