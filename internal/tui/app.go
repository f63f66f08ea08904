package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/tripdesk/internal/browser"
	"github.com/naveenspark/tripdesk/internal/session"
	"github.com/naveenspark/tripdesk/pkg/client"
)

type view int

const (
	viewHome view = iota
	viewCatalog
	viewDetail
	viewBookings
	viewSignIn
	viewSignUp
)

const expiredNotice = "your session has expired, please sign in again"

// navigateMsg asks the root model to switch views.
type navigateMsg struct {
	to       view
	vertical string
	id       int64
	email    string
	notice   string
}

func navigate(n navigateMsg) tea.Cmd {
	return func() tea.Msg { return n }
}

type copyResultMsg struct {
	err error
}

type openResultMsg struct {
	err error
}

type logoutResultMsg struct {
	err error
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{err: clipboard.WriteAll(text)}
	}
}

func copyStatus(err error) string {
	if err != nil {
		return fmt.Sprintf("copy failed: %v", err)
	}
	return "copied!"
}

func openCmd(rawURL string) tea.Cmd {
	if rawURL == "" {
		return nil
	}
	return func() tea.Msg {
		return openResultMsg{err: browser.Open(rawURL)}
	}
}

func openStatus(err error) string {
	if err != nil {
		return fmt.Sprintf("open failed: %v", err)
	}
	return "opened in browser"
}

func cancelCmd(c *client.Client, row bookingRow) tea.Cmd {
	return func() tea.Msg {
		return bookingCanceledMsg{id: row.ID, err: row.cancel(context.Background(), c)}
	}
}

// App is the root Bubbletea model.
type App struct {
	client      *client.Client
	session     Session
	events      <-chan session.Event
	unsubscribe func()
	view        view
	back        view // where sign-in returns to
	home        homeModel
	catalog     catalogModel
	detail      detailModel
	bookings    bookingsModel
	signin      signInModel
	signup      signUpModel
	notice      string
	helpOpen    bool
	width       int
	height      int
	frame       int // logo shimmer animation frame
	now         func() time.Time
}

// NewApp creates the TUI over an API client and the session that feeds its
// tokens. Session expiry moves the user to the sign-in view.
func NewApp(c *client.Client, s Session) App {
	a := App{
		client:   c,
		session:  s,
		home:     newHomeModel(c),
		catalog:  newCatalogModel(c),
		detail:   newDetailModel(c, s),
		bookings: newBookingsModel(c, s),
		signin:   newSignInModel(s, ""),
		signup:   newSignUpModel(c),
		now:      time.Now,
	}
	a.home.loading = true
	if s != nil {
		a.events, a.unsubscribe = subscribeSession(s)
	}
	return a
}

// Start selects the view the app opens on.
type Start int

const (
	StartHome Start = iota
	StartSignIn
	StartSignUp
)

// StartAt returns the app opening on s. Leaving sign-in or sign-up returns
// to home.
func (a App) StartAt(s Start) App {
	switch s {
	case StartSignIn:
		a.view = viewSignIn
	case StartSignUp:
		a.view = viewSignUp
	}
	return a
}

// Close releases the session subscription.
func (a App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.home.Init(), shimmerTickCmd(), waitSessionEvent(a.events))
}

func (a App) authenticated() bool {
	return a.session != nil && a.session.Authenticated()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + notice(1) + help(1) = 5 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 5}
		a.home, _ = a.home.Update(bodyMsg)
		a.catalog, _ = a.catalog.Update(bodyMsg)
		a.detail, _ = a.detail.Update(bodyMsg)
		a.bookings, _ = a.bookings.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case sessionEventMsg:
		next := waitSessionEvent(a.events)
		if msg.event == session.EventExpired && a.view != viewSignIn {
			var cmd tea.Cmd
			a, cmd = a.navigate(navigateMsg{to: viewSignIn, notice: expiredNotice})
			return a, tea.Batch(cmd, next)
		}
		return a, next

	case navigateMsg:
		return a.navigate(msg)

	case loginResultMsg:
		a.signin, _ = a.signin.Update(msg)
		switch {
		case msg.err == nil:
			return a.returnFromSignIn("welcome back")
		case errors.Is(msg.err, session.ErrNoUserID):
			// Signed in, but bookings need the user id.
			a.signin.err = nil
			return a.returnFromSignIn("signed in, but your profile could not be loaded")
		}
		return a, nil

	case logoutResultMsg:
		if msg.err != nil {
			a.notice = fmt.Sprintf("sign out failed: %v", msg.err)
			return a, nil
		}
		return a.navigate(navigateMsg{to: viewHome, notice: "signed out"})

	case homeLoadedMsg:
		a.home, _ = a.home.Update(msg)
		return a, nil

	case catalogLoadedMsg:
		a.catalog, _ = a.catalog.Update(msg)
		return a, nil

	case detailLoadedMsg, bookingSubmittedMsg:
		var cmd tea.Cmd
		a.detail, cmd = a.detail.Update(msg)
		return a, cmd

	case bookingsLoadedMsg:
		a.bookings, _ = a.bookings.Update(msg)
		return a, nil

	case signUpResultMsg:
		var cmd tea.Cmd
		a.signup, cmd = a.signup.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if a.helpOpen {
			switch msg.String() {
			case "h", "esc":
				a.helpOpen = false
			case "q", "ctrl+c":
				return a, tea.Quit
			}
			return a, nil
		}

		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.isEditing() {
			a.notice = ""
			switch msg.String() {
			case "h":
				a.helpOpen = true
				return a, nil
			case "q":
				return a, tea.Quit
			case "1":
				return a.navigate(navigateMsg{to: viewHome})
			case "2":
				return a.navigate(navigateMsg{to: viewBookings})
			case "s":
				if !a.authenticated() {
					return a.navigate(navigateMsg{to: viewSignIn})
				}
				return a, nil
			case "u":
				if !a.authenticated() {
					return a.navigate(navigateMsg{to: viewSignUp})
				}
				return a, nil
			case "L":
				if a.authenticated() && a.session != nil {
					s := a.session
					return a, func() tea.Msg { return logoutResultMsg{err: s.Logout()} }
				}
				return a, nil
			case "esc":
				if a.view == viewDetail && a.detail.confirm {
					break
				}
				if a.view == viewBookings && a.bookings.confirm {
					break
				}
				switch a.view {
				case viewDetail:
					a.view = viewCatalog
				case viewCatalog, viewBookings:
					a.view = viewHome
				}
				return a, nil
			}
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewHome:
		a.home, cmd = a.home.Update(msg)
	case viewCatalog:
		a.catalog, cmd = a.catalog.Update(msg)
	case viewDetail:
		a.detail, cmd = a.detail.Update(msg)
	case viewBookings:
		a.bookings, cmd = a.bookings.Update(msg)
	case viewSignIn:
		a.signin, cmd = a.signin.Update(msg)
	case viewSignUp:
		a.signup, cmd = a.signup.Update(msg)
	}
	return a, cmd
}

func (a App) navigate(n navigateMsg) (App, tea.Cmd) {
	a.notice = n.notice
	a.helpOpen = false
	var cmd tea.Cmd
	switch n.to {
	case viewHome:
		a.view = viewHome
		a.home.loading = true
		cmd = a.home.Init()
	case viewCatalog:
		a.view = viewCatalog
		a.catalog, cmd = a.catalog.open(n.vertical)
	case viewDetail:
		a.view = viewDetail
		a.detail, cmd = a.detail.open(n.vertical, n.id)
	case viewBookings:
		if !a.authenticated() {
			return a.navigate(navigateMsg{to: viewSignIn, notice: "sign in to see your bookings"})
		}
		a.view = viewBookings
		a.bookings.loading = true
		a.bookings.err = nil
		cmd = a.bookings.Init()
	case viewSignIn:
		if a.view != viewSignIn && a.view != viewSignUp {
			a.back = a.view
		}
		a.view = viewSignIn
		a.signin = newSignInModel(a.session, n.email)
	case viewSignUp:
		if a.view != viewSignIn && a.view != viewSignUp {
			a.back = a.view
		}
		a.view = viewSignUp
		a.signup = newSignUpModel(a.client)
	}
	return a, cmd
}

// returnFromSignIn goes back to the page that sent the user to sign-in and
// reloads it with the new session.
func (a App) returnFromSignIn(notice string) (App, tea.Cmd) {
	n := navigateMsg{to: a.back, notice: notice}
	switch a.back {
	case viewCatalog:
		n.vertical = a.catalog.vertical
	case viewDetail:
		n.vertical, n.id = a.detail.vertical, a.detail.id
	}
	return a.navigate(n)
}

func (a App) isEditing() bool {
	switch a.view {
	case viewDetail:
		return a.detail.editing()
	case viewSignIn, viewSignUp:
		return true
	}
	return false
}

func (a App) statusLine() string {
	if !a.authenticated() {
		return metaStyle.Render("guest") + "  " + helpEntry("s", "sign in") + "  " + helpEntry("u", "sign up")
	}
	parts := []string{confirmedStyle.Render("signed in")}
	if uid := a.session.UserID(); uid != "" {
		parts = append(parts, "user "+uid)
	}
	if exp, ok := a.session.TokenExpiry(); ok {
		parts = append(parts, "token expires "+formatUntil(exp, a.now()))
	}
	return metaStyle.Render(strings.Join(parts, " · "))
}

func centered(s string, width int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}

func (a App) View() string {
	header := centered(renderShimmerLogo(a.frame), a.width) + "\n" + centered(a.statusLine(), a.width)

	type tabEntry struct {
		key  string
		name string
		v    view
	}
	tabs := []tabEntry{
		{"1", "Home", viewHome},
		{"2", "My bookings", viewBookings},
	}
	var tabBar strings.Builder
	for _, t := range tabs {
		active := t.v == a.view ||
			(t.v == viewHome && (a.view == viewCatalog || a.view == viewDetail))
		if active {
			tabBar.WriteString("  " + accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name))
		} else {
			tabBar.WriteString("  " + metaStyle.Render(t.key) + " " + dimStyle.Render(t.name))
		}
	}
	switch a.view {
	case viewCatalog, viewDetail:
		if d, ok := lookupDesk(a.catalog.vertical); ok {
			tabBar.WriteString("  " + metaStyle.Render("›") + " " + VerticalStyle(d.Vertical.ID).Render(d.Vertical.Name))
		}
	}

	var body, help string
	switch a.view {
	case viewHome:
		body = a.home.View()
		help = helpBar("1-2", "tabs", "j/k", "nav", "enter", "open", "r", "refresh", "h", "help", "q", "quit")
	case viewCatalog:
		body = a.catalog.View()
		help = helpBar("j/k", "nav", "enter", "open", "o", "image", "r", "refresh", "esc", "back")
	case viewDetail:
		body = a.detail.View()
		help = a.detail.helpKeys()
	case viewBookings:
		body = a.bookings.View()
		help = a.bookings.helpKeys()
	case viewSignIn:
		body = a.signin.View()
		help = helpBar("tab", "next", "enter", "sign in", "esc", "cancel")
	case viewSignUp:
		body = a.signup.View()
		help = helpBar("tab", "next", "enter", "create", "esc", "cancel")
	}

	if a.helpOpen {
		baseURL := ""
		if a.client != nil {
			baseURL = a.client.BaseURL()
		}
		body = helpView(baseURL)
		help = helpBar("esc", "close")
	}

	notice := ""
	if a.notice != "" {
		notice = " " + alertInfoStyle.Render(a.notice)
	}

	chrome := 5
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s\n%s", header, tabBar.String(), notice, body, help)
}
