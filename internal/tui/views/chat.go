package views

import (
	"fmt"
	"strings"

	"github.com/codecircle/cctui/internal/tui/model"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// ChatView is the live conversation screen: transcript, typing indicator
// and a composer. Sending and typing signals go out through callbacks.
type ChatView struct {
	*tview.Flex
	transcript *tview.TextView
	typing     *tview.TextView
	composer   *tview.InputField

	onSend   func(text string)
	onTyping func()
}

func NewChatView() *ChatView {
	v := &ChatView{
		transcript: tview.NewTextView().SetDynamicColors(true).SetWordWrap(true),
		typing:     tview.NewTextView().SetDynamicColors(true),
		composer:   tview.NewInputField().SetLabel(" > "),
	}
	v.transcript.SetBorder(true).SetTitle(" Chat ")
	v.transcript.SetChangedFunc(func() {
		v.transcript.ScrollToEnd()
	})
	v.composer.SetChangedFunc(func(string) {
		if v.onTyping != nil {
			v.onTyping()
		}
	})
	v.composer.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		text := strings.TrimSpace(v.composer.GetText())
		if text == "" {
			return
		}
		v.composer.SetText("")
		if v.onSend != nil {
			v.onSend(text)
		}
	})

	v.Flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(v.transcript, 0, 1, false).
		AddItem(v.typing, 1, 0, false).
		AddItem(v.composer, 1, 0, true)
	return v
}

func (v *ChatView) SetOnSend(fn func(text string)) {
	v.onSend = fn
}

func (v *ChatView) SetOnTyping(fn func()) {
	v.onTyping = fn
}

// SetHeader titles the transcript with the counterpart and presence.
func (v *ChatView) SetHeader(name string, online bool) {
	presence := "[gray]offline[-]"
	if online {
		presence = "[green]online[-]"
	}
	v.transcript.SetTitle(fmt.Sprintf(" %s (%s) ", tview.Escape(name), presence))
}

// Update repaints the transcript and typing line.
func (v *ChatView) Update(messages []model.ChatMessage, counterpartTyping bool, counterpartName string) {
	v.transcript.Clear()
	for _, m := range messages {
		ts := m.Timestamp.Format("15:04")
		_, _ = fmt.Fprintf(v.transcript, "[gray]%s[-] [yellow]%s:[-] %s\n",
			ts, tview.Escape(m.SenderName), tview.Escape(m.Text))
	}
	if counterpartTyping {
		v.typing.SetText(fmt.Sprintf(" [gray]%s is typing...[-]", tview.Escape(counterpartName)))
	} else {
		v.typing.SetText("")
	}
}
