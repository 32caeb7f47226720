package views

import "github.com/rivo/tview"

// HomeView is the signed-out landing screen.
type HomeView struct {
	*tview.TextView
}

func NewHomeView() *HomeView {
	v := &HomeView{
		TextView: tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignCenter),
	}
	v.SetBorder(true).SetTitle(" CodeCircle ")
	v.SetText("\n\n[::b]Where developers connect[-:-:-]\n\n" +
		"l: sign in    u: create account    q: quit")
	return v
}
