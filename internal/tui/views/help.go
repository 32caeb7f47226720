package views

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Greeting is the canned first line of the assistant transcript.
const Greeting = "Hi! I'm your CodeCircle assistant. How can I help you today?"

// HelpView is the assistant screen: a transcript and a question box.
type HelpView struct {
	*tview.Flex
	transcript *tview.TextView
	input      *tview.InputField

	onAsk func(question string)
}

func NewHelpView() *HelpView {
	v := &HelpView{
		transcript: tview.NewTextView().SetDynamicColors(true).SetWordWrap(true),
		input:      tview.NewInputField().SetLabel(" Ask: "),
	}
	v.transcript.SetBorder(true).SetTitle(" Assistant ")
	v.transcript.SetChangedFunc(func() {
		v.transcript.ScrollToEnd()
	})
	v.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		q := strings.TrimSpace(v.input.GetText())
		if q == "" {
			return
		}
		v.input.SetText("")
		v.AppendUser(q)
		if v.onAsk != nil {
			v.onAsk(q)
		}
	})

	v.Flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(v.transcript, 0, 1, false).
		AddItem(v.input, 1, 0, true)
	v.Reset()
	return v
}

func (v *HelpView) SetOnAsk(fn func(question string)) {
	v.onAsk = fn
}

// Reset clears the transcript back to the greeting.
func (v *HelpView) Reset() {
	v.transcript.Clear()
	v.AppendBot(Greeting)
}

func (v *HelpView) AppendUser(text string) {
	_, _ = fmt.Fprintf(v.transcript, "[yellow]you:[-] %s\n", tview.Escape(text))
}

func (v *HelpView) AppendBot(text string) {
	_, _ = fmt.Fprintf(v.transcript, "[green]bot:[-] %s\n", tview.Escape(text))
}
