package views

import (
	"github.com/rivo/tview"
)

// LoginView is the sign-in form.
type LoginView struct {
	*tview.Flex
	form   *tview.Form
	status *tview.TextView

	onSubmit func(email, password string)
	onSignup func()
}

// NewLoginView creates the login form.
func NewLoginView() *LoginView {
	v := &LoginView{
		form:   tview.NewForm(),
		status: tview.NewTextView().SetDynamicColors(true),
	}

	v.form.
		AddInputField("Email", "", 40, nil, nil).
		AddPasswordField("Password", "", 40, '*', nil).
		AddButton("Sign In", func() {
			if v.onSubmit != nil {
				v.onSubmit(v.fieldText("Email"), v.fieldText("Password"))
			}
		}).
		AddButton("Create Account", func() {
			if v.onSignup != nil {
				v.onSignup()
			}
		})
	v.form.SetBorder(true).SetTitle(" Welcome Back ")

	v.Flex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(v.form, 0, 1, true).
		AddItem(v.status, 1, 0, false)
	return v
}

func (v *LoginView) fieldText(label string) string {
	item := v.form.GetFormItemByLabel(label)
	if field, ok := item.(*tview.InputField); ok {
		return field.GetText()
	}
	return ""
}

// SetOnSubmit sets the sign-in callback.
func (v *LoginView) SetOnSubmit(fn func(email, password string)) {
	v.onSubmit = fn
}

// SetOnSignup sets the switch-to-signup callback.
func (v *LoginView) SetOnSignup(fn func()) {
	v.onSignup = fn
}

// ShowError renders an inline form error.
func (v *LoginView) ShowError(msg string) {
	v.status.SetText("[red]" + tview.Escape(msg) + "[-]")
}

// Clear empties the form and any error.
func (v *LoginView) Clear() {
	v.status.SetText("")
	if field, ok := v.form.GetFormItemByLabel("Password").(*tview.InputField); ok {
		field.SetText("")
	}
}
