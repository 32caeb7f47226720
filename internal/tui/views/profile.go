package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/codecircle/cctui/internal/api"
	"github.com/codecircle/cctui/internal/state"
	"github.com/rivo/tview"
)

// ProfileView shows the signed-in user's profile next to an edit form.
// Saving hands the collected fields to the onSave callback; the view does
// not talk to the network itself.
type ProfileView struct {
	*tview.Flex
	summary *tview.TextView
	form    *tview.Form
	status  *tview.TextView

	onSave func(in api.ProfileInput)
}

func NewProfileView() *ProfileView {
	v := &ProfileView{
		summary: tview.NewTextView().SetDynamicColors(true).SetWordWrap(true),
		form:    tview.NewForm(),
		status:  tview.NewTextView().SetDynamicColors(true),
	}
	v.summary.SetBorder(true).SetTitle(" Profile ")
	v.form.SetBorder(true).SetTitle(" Edit ")

	v.form.
		AddInputField("First name", "", 24, nil, nil).
		AddInputField("Last name", "", 24, nil, nil).
		AddInputField("Photo URL", "", 40, nil, nil).
		AddInputField("Age", "", 4, tview.InputFieldInteger, nil).
		AddInputField("Skills", "", 40, nil, nil).
		AddTextArea("About", "", 40, 4, 0, nil).
		AddButton("Save", func() {
			if v.onSave != nil {
				v.onSave(v.collect())
			}
		})

	v.Flex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(tview.NewFlex().
			AddItem(v.summary, 0, 1, false).
			AddItem(v.form, 0, 1, true), 0, 1, true).
		AddItem(v.status, 1, 0, false)
	return v
}

func (v *ProfileView) SetOnSave(fn func(in api.ProfileInput)) {
	v.onSave = fn
}

func (v *ProfileView) collect() api.ProfileInput {
	age, _ := strconv.Atoi(v.fieldText("Age"))
	about := ""
	if ta, ok := v.form.GetFormItemByLabel("About").(*tview.TextArea); ok {
		about = strings.TrimSpace(ta.GetText())
	}
	return api.ProfileInput{
		FirstName: v.fieldText("First name"),
		LastName:  v.fieldText("Last name"),
		PhotoURL:  v.fieldText("Photo URL"),
		Age:       age,
		Skills:    v.fieldText("Skills"),
		About:     about,
	}
}

func (v *ProfileView) fieldText(label string) string {
	if f, ok := v.form.GetFormItemByLabel(label).(*tview.InputField); ok {
		return strings.TrimSpace(f.GetText())
	}
	return ""
}

// Update repaints the summary pane and seeds the form from the user.
func (v *ProfileView) Update(u state.User) {
	v.summary.Clear()
	_, _ = fmt.Fprintf(v.summary, "\n  [::b]%s[-:-:-]\n", tview.Escape(u.DisplayName()))
	if u.Age > 0 {
		_, _ = fmt.Fprintf(v.summary, "  Age: %d\n", u.Age)
	}
	if u.Gender != "" {
		_, _ = fmt.Fprintf(v.summary, "  Gender: %s\n", tview.Escape(u.Gender))
	}
	if len(u.SkillList()) > 0 {
		_, _ = fmt.Fprintf(v.summary, "  Skills: %s\n", tview.Escape(strings.Join(u.SkillList(), ", ")))
	}
	if u.PhotoURL != "" {
		_, _ = fmt.Fprintf(v.summary, "  Photo: %s\n", tview.Escape(u.PhotoURL))
	}
	if u.About != "" {
		_, _ = fmt.Fprintf(v.summary, "\n  %s\n", tview.Escape(u.About))
	}

	v.setField("First name", u.FirstName)
	v.setField("Last name", u.LastName)
	v.setField("Photo URL", u.PhotoURL)
	if u.Age > 0 {
		v.setField("Age", strconv.Itoa(u.Age))
	} else {
		v.setField("Age", "")
	}
	v.setField("Skills", u.Skills)
	if ta, ok := v.form.GetFormItemByLabel("About").(*tview.TextArea); ok {
		ta.SetText(u.About, false)
	}
}

func (v *ProfileView) setField(label, text string) {
	if f, ok := v.form.GetFormItemByLabel(label).(*tview.InputField); ok {
		f.SetText(text)
	}
}

// ShowStatus paints a one-line status under the form.
func (v *ProfileView) ShowStatus(msg string, isError bool) {
	color := "green"
	if isError {
		color = "red"
	}
	v.status.SetText(fmt.Sprintf(" [%s]%s[-]", color, tview.Escape(msg)))
}
