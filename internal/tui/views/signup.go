package views

import "github.com/rivo/tview"

// SignupInput carries the registration form values.
type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// SignupView is the account-creation form.
type SignupView struct {
	*tview.Flex
	form   *tview.Form
	status *tview.TextView

	onSubmit func(in SignupInput)
	onLogin  func()
}

// NewSignupView creates the signup form.
func NewSignupView() *SignupView {
	v := &SignupView{
		form:   tview.NewForm(),
		status: tview.NewTextView().SetDynamicColors(true),
	}

	v.form.
		AddInputField("First Name", "", 40, nil, nil).
		AddInputField("Last Name", "", 40, nil, nil).
		AddInputField("Email", "", 40, nil, nil).
		AddPasswordField("Password", "", 40, '*', nil).
		AddButton("Sign Up", func() {
			if v.onSubmit != nil {
				v.onSubmit(SignupInput{
					FirstName: v.fieldText("First Name"),
					LastName:  v.fieldText("Last Name"),
					Email:     v.fieldText("Email"),
					Password:  v.fieldText("Password"),
				})
			}
		}).
		AddButton("Back to Sign In", func() {
			if v.onLogin != nil {
				v.onLogin()
			}
		})
	v.form.SetBorder(true).SetTitle(" Create Account ")

	v.Flex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(v.form, 0, 1, true).
		AddItem(v.status, 1, 0, false)
	return v
}

func (v *SignupView) fieldText(label string) string {
	if field, ok := v.form.GetFormItemByLabel(label).(*tview.InputField); ok {
		return field.GetText()
	}
	return ""
}

// SetOnSubmit sets the registration callback.
func (v *SignupView) SetOnSubmit(fn func(in SignupInput)) {
	v.onSubmit = fn
}

// SetOnLogin sets the switch-to-login callback.
func (v *SignupView) SetOnLogin(fn func()) {
	v.onLogin = fn
}

// ShowError renders an inline form error.
func (v *SignupView) ShowError(msg string) {
	v.status.SetText("[red]" + tview.Escape(msg) + "[-]")
}
