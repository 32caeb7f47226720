// Package tui is the terminal application shell: route stack, key
// dispatch, and the single bus pump that funnels every store and socket
// event into tview's draw loop.
package tui

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/codecircle/cctui/internal/api"
	"github.com/codecircle/cctui/internal/bus"
	"github.com/codecircle/cctui/internal/config"
	"github.com/codecircle/cctui/internal/socket"
	"github.com/codecircle/cctui/internal/state"
	"github.com/codecircle/cctui/internal/tui/keys"
	"github.com/codecircle/cctui/internal/tui/model"
	"github.com/codecircle/cctui/internal/tui/ui"
	"github.com/codecircle/cctui/internal/tui/views"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

// Route names. They mirror the web client's paths.
const (
	RouteHome        = "home"
	RouteLogin       = "login"
	RouteSignup      = "signup"
	RouteFeed        = "feed"
	RouteProfile     = "profile"
	RouteConnections = "connections"
	RouteRequests    = "requests"
	RouteHelp        = "help"
	RouteChat        = "chat"
)

// typingThrottle caps how often a composer keystroke turns into a
// userTyping frame.
const typingThrottle = time.Second

// App is the main TUI application shell.
type App struct {
	app      *tview.Application
	pages    *ui.Pages
	registry *keys.Registry

	cfg    *config.Config
	bus    *bus.Bus
	store  *state.Store
	client *api.Client
	logger *zap.Logger

	menuBar *views.MenuBar
	toasts  *views.ToastStrip
	homeV   *views.HomeView
	loginV  *views.LoginView
	signupV *views.SignupView
	feedV   *views.FeedView
	profV   *views.ProfileView
	connV   *views.ConnectionsView
	reqV    *views.RequestsView
	helpV   *views.HelpView
	chatV   *views.ChatView

	feed *model.FeedModel
	root *tview.Flex

	// Live session state, shared between the UI goroutine and the bus
	// pump. Guarded by mu.
	mu           sync.Mutex
	chat         *model.ChatModel
	chatConn     *socket.Conn
	chatPartner  state.User
	shellConn    *socket.Conn
	typingSentAt time.Time

	connSort int

	// Sent-requests tab state. Touched only on the UI goroutine.
	sentMode     bool
	sentRequests []state.Request

	// pageCtx spans one screen's lifetime; navigating away cancels it
	// and abandons that screen's in-flight requests.
	pageCtx    context.Context
	pageCancel context.CancelFunc

	ctx    context.Context
	cancel context.CancelFunc
}

// connSortKeys is the cycle order for the connections list.
var connSortKeys = []string{"", "name", "age"}

// NewApp creates the TUI application shell.
func NewApp(cfg *config.Config, b *bus.Bus, store *state.Store, client *api.Client, logger *zap.Logger) *App {
	ctx, cancel := context.WithCancel(context.Background())

	a := &App{
		app:      tview.NewApplication(),
		pages:    ui.NewPages(),
		registry: keys.NewRegistry(),
		cfg:      cfg,
		bus:      b,
		store:    store,
		client:   client,
		logger:   logger.Named("tui"),
		menuBar:  views.NewMenuBar(),
		toasts:   views.NewToastStrip(),
		homeV:    views.NewHomeView(),
		loginV:   views.NewLoginView(),
		signupV:  views.NewSignupView(),
		feedV:    views.NewFeedView(),
		profV:    views.NewProfileView(),
		connV:    views.NewConnectionsView(),
		reqV:     views.NewRequestsView(),
		helpV:    views.NewHelpView(),
		chatV:    views.NewChatView(),
		ctx:      ctx,
		cancel:   cancel,
	}
	a.pageCtx, a.pageCancel = context.WithCancel(ctx)

	a.feed = model.NewFeedModel(store, client, logger)
	a.feed.SetOnChange(func() {
		a.app.QueueUpdateDraw(a.refresh)
	})

	a.setupBindings()
	a.setupCallbacks()
	a.setupLayout()
	return a
}

func (a *App) setupBindings() {
	a.registry.AddGlobal("quit", &keys.Action{
		Rune: 'q', Key: tcell.KeyRune,
		Description: "q:quit", Visible: true,
		Handler: func() { a.Stop() },
	})
	a.registry.AddGlobal("feed", &keys.Action{
		Rune: 'f', Key: tcell.KeyRune,
		Description: "f:feed",
		Handler: func() {
			if a.authenticated() {
				a.goTo(RouteFeed)
			}
		},
	})
	a.registry.AddGlobal("connections", &keys.Action{
		Rune: 'c', Key: tcell.KeyRune,
		Description: "c:connections",
		Handler: func() {
			if a.authenticated() {
				a.goTo(RouteConnections)
			}
		},
	})
	a.registry.AddGlobal("requests", &keys.Action{
		Rune: 'r', Key: tcell.KeyRune,
		Description: "r:requests",
		Handler: func() {
			if a.authenticated() {
				a.goTo(RouteRequests)
			}
		},
	})
	a.registry.AddGlobal("profile", &keys.Action{
		Rune: 'p', Key: tcell.KeyRune,
		Description: "p:profile",
		Handler: func() {
			if a.authenticated() {
				a.goTo(RouteProfile)
			}
		},
	})
	a.registry.AddGlobal("help", &keys.Action{
		Rune: '?', Key: tcell.KeyRune,
		Description: "?:assistant",
		Handler: func() {
			if a.authenticated() {
				a.goTo(RouteHelp)
			}
		},
	})

	a.registry.AddRoute(RouteHome, "login", &keys.Action{
		Rune: 'l', Key: tcell.KeyRune,
		Description: "l:sign in", Visible: true,
		Handler: func() { a.goTo(RouteLogin) },
	})
	a.registry.AddRoute(RouteHome, "signup", &keys.Action{
		Rune: 'u', Key: tcell.KeyRune,
		Description: "u:create account", Visible: true,
		Handler: func() { a.goTo(RouteSignup) },
	})

	a.registry.AddRoute(RouteFeed, "next", &keys.Action{
		Rune: 'n', Key: tcell.KeyRune,
		Description: "n:next", Visible: true,
		Handler: func() { a.feed.Advance(); a.refresh() },
	})
	a.registry.AddRoute(RouteFeed, "prev", &keys.Action{
		Rune: 'p', Key: tcell.KeyRune,
		Description: "p:prev", Visible: true,
		Handler: func() { a.feed.Retreat(); a.refresh() },
	})
	a.registry.AddRoute(RouteFeed, "interested", &keys.Action{
		Rune: 'i', Key: tcell.KeyRune,
		Description: "i:interested", Visible: true,
		Handler: func() { a.decideCurrent(state.StatusInterested) },
	})
	a.registry.AddRoute(RouteFeed, "ignore", &keys.Action{
		Rune: 'x', Key: tcell.KeyRune,
		Description: "x:ignore", Visible: true,
		Handler: func() { a.decideCurrent(state.StatusIgnored) },
	})
	a.registry.AddRoute(RouteFeed, "auto", &keys.Action{
		Rune: 'a', Key: tcell.KeyRune,
		Description: "a:auto", Visible: true,
		Handler: func() {
			if a.feed.AutoAdvancing() {
				a.feed.StopAutoAdvance()
			} else {
				a.feed.StartAutoAdvance(model.AutoAdvanceInterval)
			}
			a.refresh()
		},
	})
	a.registry.AddRoute(RouteFeed, "mode", &keys.Action{
		Rune: 'g', Key: tcell.KeyRune,
		Description: "g:grid", Visible: true,
		Handler: func() {
			if a.feed.Mode() == model.ModeStack {
				a.feed.SetMode(model.ModeGrid)
			} else {
				a.feed.SetMode(model.ModeStack)
			}
			a.refresh()
		},
	})
	a.registry.AddRoute(RouteFeed, "filters", &keys.Action{
		Rune: 'f', Key: tcell.KeyRune,
		Description: "f:filters", Visible: true,
		Handler: func() { a.app.SetFocus(a.feedV.FiltersForm()) },
	})

	a.registry.AddRoute(RouteConnections, "sort", &keys.Action{
		Rune: 's', Key: tcell.KeyRune,
		Description: "s:sort", Visible: true,
		Handler: func() {
			a.connSort = (a.connSort + 1) % len(connSortKeys)
			a.refresh()
		},
	})

	a.registry.AddRoute(RouteRequests, "accept", &keys.Action{
		Rune: 'a', Key: tcell.KeyRune,
		Description: "a:accept", Visible: true,
		Handler: func() { a.reviewSelected(state.StatusAccepted) },
	})
	a.registry.AddRoute(RouteRequests, "reject", &keys.Action{
		Rune: 'x', Key: tcell.KeyRune,
		Description: "x:reject", Visible: true,
		Handler: func() { a.reviewSelected(state.StatusRejected) },
	})
	a.registry.AddRoute(RouteRequests, "tab", &keys.Action{
		Rune: 't', Key: tcell.KeyRune,
		Description: "t:sent/received", Visible: true,
		Handler: func() { a.toggleRequestsTab() },
	})
	a.registry.AddRoute(RouteRequests, "withdraw", &keys.Action{
		Rune: 'w', Key: tcell.KeyRune,
		Description: "w:withdraw", Visible: true,
		Handler: func() { a.withdrawSelected() },
	})

	a.registry.AddRoute(RouteProfile, "signout", &keys.Action{
		Rune: 'o', Key: tcell.KeyRune,
		Description: "o:sign out", Visible: true,
		Handler: func() { a.logout() },
	})
}

func (a *App) setupCallbacks() {
	a.loginV.SetOnSubmit(func(email, password string) {
		ctx := a.pageCtx
		go func() {
			user, err := a.client.Login(ctx, api.LoginInput{Email: email, Password: password})
			a.app.QueueUpdateDraw(func() {
				if err != nil {
					a.loginV.ShowError(api.UserMessage(err))
					return
				}
				a.store.SetUser(user)
				a.loginV.Clear()
				a.startShell()
				a.goTo(RouteFeed)
			})
		}()
	})
	a.loginV.SetOnSignup(func() { a.goTo(RouteSignup) })

	a.signupV.SetOnSubmit(func(in views.SignupInput) {
		ctx := a.pageCtx
		go func() {
			err := a.client.Signup(ctx, api.SignupInput{
				FirstName: in.FirstName,
				LastName:  in.LastName,
				Email:     in.Email,
				Password:  in.Password,
			})
			a.app.QueueUpdateDraw(func() {
				if err != nil {
					a.signupV.ShowError(api.UserMessage(err))
					return
				}
				a.store.AddToast("Account created, sign in to continue", state.ToastSuccess, 0)
				a.goTo(RouteLogin)
			})
		}()
	})
	a.signupV.SetOnLogin(func() { a.goTo(RouteLogin) })

	a.feedV.SetOnFilter(func(f model.Filters, sortKey string) {
		a.feed.SetFilters(f)
		a.feed.SetSort(sortKey)
		a.refresh()
	})

	a.profV.SetOnSave(func(in api.ProfileInput) {
		ctx := a.pageCtx
		go func() {
			user, err := a.client.ProfileUpdate(ctx, in)
			if err != nil && a.sessionExpired(err) {
				return
			}
			a.app.QueueUpdateDraw(func() {
				if err != nil {
					a.profV.ShowStatus(api.UserMessage(err), true)
					return
				}
				a.store.SetUser(user)
				a.profV.ShowStatus("Profile saved", false)
				a.store.AddToast("Profile updated", state.ToastSuccess, 0)
			})
		}()
	})

	a.connV.SetOnMessage(func(u state.User) { a.openChat(u) })

	a.helpV.SetOnAsk(func(question string) {
		ctx := a.pageCtx
		go func() {
			answer, err := a.client.ChatbotMessage(ctx, question)
			a.app.QueueUpdateDraw(func() {
				if err != nil {
					a.helpV.AppendBot("Error connecting to chatbot.")
					return
				}
				a.helpV.AppendBot(answer)
			})
		}()
	})

	a.chatV.SetOnSend(func(text string) { a.sendChat(text) })
	a.chatV.SetOnTyping(func() { a.emitTyping() })
}

func (a *App) setupLayout() {
	a.pages.AddPage(RouteHome, a.homeV, true, false)
	a.pages.AddPage(RouteLogin, a.loginV, true, false)
	a.pages.AddPage(RouteSignup, a.signupV, true, false)
	a.pages.AddPage(RouteFeed, a.feedV, true, false)
	a.pages.AddPage(RouteProfile, a.profV, true, false)
	a.pages.AddPage(RouteConnections, a.connV, true, false)
	a.pages.AddPage(RouteRequests, a.reqV, true, false)
	a.pages.AddPage(RouteHelp, a.helpV, true, false)
	a.pages.AddPage(RouteChat, a.chatV, true, false)

	a.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.menuBar, 1, 0, false).
		AddItem(a.toasts, 0, 0, false).
		AddItem(a.pages, 0, 1, true)

	a.app.SetRoot(a.root, true)

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		route := a.pages.Current()

		if event.Key() == tcell.KeyEscape {
			switch route {
			case RouteChat:
				a.leaveChat()
				return nil
			case RouteSignup:
				a.goTo(RouteLogin)
				return nil
			}
		}

		// Text widgets keep all their keys.
		switch a.app.GetFocus().(type) {
		case *tview.InputField, *tview.TextArea, *tview.Button, *tview.DropDown:
			return event
		}

		if a.registry.HandleEvent(route, event) {
			return nil
		}
		return event
	})
}

func (a *App) authenticated() bool {
	_, ok := a.store.CurrentUser()
	return ok
}

// goTo resets the route stack to the given top-level route, cancelling
// the previous screen's context and kicking off the new screen's loads.
func (a *App) goTo(route string) {
	a.leaveCurrent()
	a.pages.Reset(route)
	a.enter(route)
}

// leaveCurrent runs teardown for the screen being navigated away from.
func (a *App) leaveCurrent() {
	switch a.pages.Current() {
	case RouteFeed:
		a.feed.StopAutoAdvance()
	case RouteChat:
		a.teardownChat()
	}
	a.pageCancel()
	a.pageCtx, a.pageCancel = context.WithCancel(a.ctx)
}

func (a *App) enter(route string) {
	ctx := a.pageCtx
	switch route {
	case RouteLogin:
		a.app.SetFocus(a.loginV)
	case RouteSignup:
		a.app.SetFocus(a.signupV)
	case RouteFeed:
		a.app.SetFocus(a.feedV)
		go func() {
			if err := a.feed.Load(ctx); err != nil {
				a.sessionExpired(err)
			}
			a.app.QueueUpdateDraw(a.refresh)
		}()
	case RouteProfile:
		a.app.SetFocus(a.profV)
		go func() {
			user, err := a.client.ProfileView(ctx)
			if err != nil {
				a.sessionExpired(err)
				return
			}
			a.store.SetUser(user)
		}()
	case RouteConnections:
		a.app.SetFocus(a.connV.Table())
		go func() {
			users, err := a.client.Connections(ctx)
			if err != nil {
				if !a.sessionExpired(err) {
					a.store.AddToast(api.UserMessage(err), state.ToastError, 0)
				}
				return
			}
			a.store.SetConnections(users)
		}()
	case RouteRequests:
		a.sentMode = false
		a.sentRequests = nil
		a.app.SetFocus(a.reqV.Table())
		go func() {
			requests, err := a.client.RequestsReceived(ctx)
			if err != nil {
				if !a.sessionExpired(err) {
					a.store.AddToast(api.UserMessage(err), state.ToastError, 0)
				}
				return
			}
			a.store.SetRequests(requests)
		}()
	case RouteHelp:
		a.helpV.Reset()
		a.app.SetFocus(a.helpV)
	}
	a.refresh()
}

func (a *App) decideCurrent(status string) {
	user, ok := a.feed.Current()
	if !ok {
		return
	}
	ctx := a.pageCtx
	go func() {
		_ = a.feed.Decide(ctx, user.ID, status)
		a.app.QueueUpdateDraw(a.refresh)
	}()
}

func (a *App) toggleRequestsTab() {
	a.sentMode = !a.sentMode
	if !a.sentMode {
		a.refresh()
		return
	}
	ctx := a.pageCtx
	go func() {
		requests, err := a.client.RequestsSent(ctx)
		if err != nil {
			if !a.sessionExpired(err) {
				a.store.AddToast(api.UserMessage(err), state.ToastError, 0)
			}
			return
		}
		a.app.QueueUpdateDraw(func() {
			a.sentRequests = requests
			a.refresh()
		})
	}()
	a.refresh()
}

func (a *App) withdrawSelected() {
	if !a.sentMode {
		return
	}
	req, ok := a.reqV.Selected()
	if !ok || req.ToUser == nil {
		return
	}
	target := req.ToUser.ID
	ctx := a.pageCtx
	go func() {
		if err := a.client.WithdrawRequest(ctx, target); err != nil {
			if !a.sessionExpired(err) {
				a.store.AddToast(api.UserMessage(err), state.ToastError, 0)
			}
			return
		}
		a.app.QueueUpdateDraw(func() {
			kept := a.sentRequests[:0]
			for _, r := range a.sentRequests {
				if r.ID != req.ID {
					kept = append(kept, r)
				}
			}
			a.sentRequests = kept
			a.store.AddToast("Request withdrawn", state.ToastSuccess, 0)
			a.refresh()
		})
	}()
}

func (a *App) reviewSelected(status string) {
	if a.sentMode {
		return
	}
	req, ok := a.reqV.Selected()
	if !ok {
		return
	}
	ctx := a.pageCtx
	go func() {
		err := a.client.ReviewRequest(ctx, status, req.ID)
		if err != nil {
			if !a.sessionExpired(err) {
				a.store.AddToast(api.UserMessage(err), state.ToastError, 0)
			}
			return
		}
		a.store.RemoveRequest(req.ID)
		if status == state.StatusAccepted {
			a.store.AddToast("Connection added", state.ToastSuccess, 0)
		}
	}()
}

func (a *App) logout() {
	ctx := a.pageCtx
	go func() {
		if err := a.client.Logout(ctx); err != nil {
			a.logger.Warn("logout failed", zap.Error(err))
		}
		a.endSession()
	}()
}

// endSession drops all per-session state and returns to the login screen.
func (a *App) endSession() {
	a.mu.Lock()
	if a.shellConn != nil {
		a.shellConn.Close()
		a.shellConn = nil
	}
	a.mu.Unlock()
	a.store.ClearUser()
	a.app.QueueUpdateDraw(func() {
		a.goTo(RouteLogin)
	})
}

// sessionExpired handles an expired-session error by ending the session.
// Returns true when the error was an auth failure.
func (a *App) sessionExpired(err error) bool {
	if err == nil || !errors.Is(err, api.ErrAuthExpired) {
		return false
	}
	a.store.AddToast("Session expired, sign in again", state.ToastError, 0)
	a.endSession()
	return true
}

// startShell opens the long-lived presence socket that keeps unread
// counters moving while no chat screen is mounted.
func (a *App) startShell() {
	user, ok := a.store.CurrentUser()
	if !ok {
		return
	}
	go func() {
		conn, err := socket.Dial(a.ctx, a.cfg.SocketURL, "shell", a.bus, a.logger)
		if err != nil {
			a.logger.Warn("shell socket dial failed", zap.Error(err))
			return
		}
		if err := conn.Emit(socket.EventAnnounceOnline, socket.AnnounceOnline{UserID: user.ID}); err != nil {
			a.logger.Warn("announce online failed", zap.Error(err))
		}
		a.mu.Lock()
		if a.shellConn != nil {
			a.shellConn.Close()
		}
		a.shellConn = conn
		a.mu.Unlock()
	}()
}

// openChat dials a chat-scoped socket, joins the room for the pair and
// pushes the chat screen.
func (a *App) openChat(partner state.User) {
	user, ok := a.store.CurrentUser()
	if !ok {
		return
	}
	ctx := a.pageCtx
	go func() {
		conn, err := socket.Dial(ctx, a.cfg.SocketURL, "chat", a.bus, a.logger)
		if err != nil {
			a.store.AddToast("Could not open chat", state.ToastError, 0)
			return
		}
		_ = conn.Emit(socket.EventAnnounceOnline, socket.AnnounceOnline{UserID: user.ID})
		_ = conn.Emit(socket.EventJoinChat, socket.JoinChat{UserID: user.ID, TargetUserID: partner.ID})

		chat := model.NewChatModel(partner.ID)
		chat.SetOnChange(func() {
			a.app.QueueUpdateDraw(a.refresh)
		})

		a.mu.Lock()
		a.chat = chat
		a.chatConn = conn
		a.chatPartner = partner
		a.mu.Unlock()

		a.store.SetLastOpenedChatID(partner.ID)
		a.store.MarkAsRead(partner.ID)

		a.app.QueueUpdateDraw(func() {
			a.chatV.SetHeader(partner.DisplayName(), a.store.ConnectionOnline(partner.ID))
			a.pages.Push(RouteChat)
			a.app.SetFocus(a.chatV)
			a.refresh()
		})
	}()
}

// leaveChat pops the chat screen back to where it was opened from.
func (a *App) leaveChat() {
	a.teardownChat()
	a.pageCancel()
	a.pageCtx, a.pageCancel = context.WithCancel(a.ctx)
	a.pages.Pop()
	if a.pages.Current() == RouteConnections {
		a.app.SetFocus(a.connV.Table())
	}
	a.refresh()
}

// teardownChat closes the chat socket and discards the transcript.
func (a *App) teardownChat() {
	a.mu.Lock()
	chat, conn := a.chat, a.chatConn
	a.chat = nil
	a.chatConn = nil
	a.chatPartner = state.User{}
	a.mu.Unlock()
	if chat != nil {
		chat.Teardown()
	}
	if conn != nil {
		conn.Close()
	}
}

func (a *App) sendChat(text string) {
	user, ok := a.store.CurrentUser()
	if !ok {
		return
	}
	a.mu.Lock()
	conn, partner := a.chatConn, a.chatPartner
	a.mu.Unlock()
	if conn == nil {
		return
	}
	// The transcript picks the message up when the server echoes it back.
	err := conn.Emit(socket.EventSendMessage, socket.SendMessage{
		FirstName:    user.FirstName,
		UserID:       user.ID,
		TargetUserID: partner.ID,
		Text:         text,
	})
	if err != nil {
		a.logger.Warn("send failed", zap.Error(err))
	}
}

func (a *App) emitTyping() {
	user, ok := a.store.CurrentUser()
	if !ok {
		return
	}
	a.mu.Lock()
	conn, partner := a.chatConn, a.chatPartner
	throttled := time.Since(a.typingSentAt) < typingThrottle
	if !throttled {
		a.typingSentAt = time.Now()
	}
	a.mu.Unlock()
	if conn == nil || throttled {
		return
	}
	_ = conn.Emit(socket.EventUserTyping, socket.JoinChat{
		UserID:       user.ID,
		TargetUserID: partner.ID,
	})
}

// pump is the single goroutine that turns bus events into UI updates.
func (a *App) pump() {
	events, unsub := a.bus.Subscribe("", 64)
	defer unsub()
	for {
		select {
		case evt, ok := <-events:
			if !ok {
				return
			}
			a.handleEvent(evt)
		case <-a.ctx.Done():
			return
		}
	}
}

func (a *App) handleEvent(evt bus.Event) {
	switch evt.Kind {
	case bus.StateChanged:
		a.app.QueueUpdateDraw(a.refresh)
		return
	}

	in, ok := evt.Payload.(socket.Inbound)
	if !ok {
		return
	}

	switch evt.Kind {
	case bus.SocketMessage:
		a.handleMessage(in)
	case bus.SocketTyping:
		if in.Origin != "chat" {
			return
		}
		a.mu.Lock()
		chat := a.chat
		a.mu.Unlock()
		if chat != nil {
			chat.TypingSeen()
		}
	case bus.SocketOnline, bus.SocketOffline:
		p, err := socket.Decode[socket.Presence](in.Raw)
		if err != nil || p.UserID == "" {
			return
		}
		a.store.SetConnectionOnline(p.UserID, evt.Kind == bus.SocketOnline)
	case bus.SocketClosed:
		a.logger.Info("socket closed", zap.String("origin", in.Origin))
	}
}

// handleMessage routes one messageReceived frame. Chat-origin frames feed
// the open transcript; shell-origin frames only move chat metadata.
func (a *App) handleMessage(in socket.Inbound) {
	msg, err := socket.Decode[socket.MessageReceived](in.Raw)
	if err != nil {
		a.logger.Warn("bad message payload", zap.Error(err))
		return
	}

	a.mu.Lock()
	chat := a.chat
	a.mu.Unlock()

	switch in.Origin {
	case "chat":
		if chat == nil {
			return
		}
		chat.AppendIncoming(msg.FirstName, msg.Text)
		a.store.UpsertLastMessage(chat.CounterpartID(), msg.Text, time.Now().Unix(), false)
	case "shell":
		if msg.UserID == "" {
			return
		}
		// The open chat's own socket already accounted for this message.
		focused := chat != nil && chat.CounterpartID() == msg.UserID
		if focused {
			return
		}
		a.store.UpsertLastMessage(msg.UserID, msg.Text, time.Now().Unix(), true)
	}
}

// refresh repaints the chrome and the current screen from the store.
// Must run on the UI goroutine.
func (a *App) refresh() {
	route := a.pages.Current()

	userName := ""
	if user, ok := a.store.CurrentUser(); ok {
		userName = user.DisplayName()
	}
	a.menuBar.Update(userName, route, a.store.TotalUnread(), a.registry.Hints(route))

	a.toasts.Update(a.store.Toasts())
	a.root.ResizeItem(a.toasts, a.toasts.Height(), 0)

	switch route {
	case RouteFeed:
		a.feedV.Update(a.feed.Visible(), a.feed.Index(), a.feed.Mode(), a.feed.AutoAdvancing(), a.feed.Decided)
	case RouteProfile:
		if user, ok := a.store.CurrentUser(); ok {
			a.profV.Update(user)
		}
	case RouteConnections:
		sortKey := connSortKeys[a.connSort]
		users := a.store.Connections()
		if sortKey != "" {
			users = a.store.ConnectionsSortedBy(sortKey)
		}
		a.connV.Update(users, a.store.ConnectionOnline, func(id string) int {
			if m, ok := a.store.ChatMeta(id); ok {
				return m.UnreadCount
			}
			return 0
		}, sortKey)
	case RouteRequests:
		if a.sentMode {
			a.reqV.UpdateSent(a.sentRequests)
		} else {
			a.reqV.Update(a.store.Requests())
		}
	case RouteChat:
		a.mu.Lock()
		chat, partner := a.chat, a.chatPartner
		a.mu.Unlock()
		if chat != nil {
			a.chatV.SetHeader(partner.DisplayName(), a.store.ConnectionOnline(partner.ID))
			a.chatV.Update(chat.Messages(), chat.Typing(), partner.DisplayName())
		}
	}
}

// Run starts the bus pump, probes the saved session and enters the tview
// event loop.
func (a *App) Run() error {
	go a.pump()

	go func() {
		user, err := a.client.ProfileView(a.ctx)
		a.app.QueueUpdateDraw(func() {
			switch {
			case err == nil:
				a.store.SetUser(user)
				a.startShell()
				a.goTo(RouteFeed)
			case errors.Is(err, api.ErrAuthExpired):
				a.goTo(RouteLogin)
			default:
				// Backend unreachable or failing. Stay on the landing
				// screen rather than bouncing to login.
				a.store.AddToast(api.UserMessage(err), state.ToastError, 0)
				a.goTo(RouteHome)
			}
		})
	}()

	return a.app.Run()
}

// Stop gracefully shuts the TUI down.
func (a *App) Stop() {
	a.teardownChat()
	a.mu.Lock()
	if a.shellConn != nil {
		a.shellConn.Close()
		a.shellConn = nil
	}
	a.mu.Unlock()
	a.cancel()
	a.app.Stop()
}
