package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/tripdesk/internal/session"
)

// Session is what the TUI needs from the session manager.
type Session interface {
	Authenticated() bool
	UserID() string
	TokenExpiry() (time.Time, bool)
	Login(ctx context.Context, email, password string) error
	Logout() error
	Subscribe(fn func(session.Event)) (unsubscribe func())
}

// sessionEventMsg delivers a session transition to the root model.
type sessionEventMsg struct {
	event session.Event
}

// subscribeSession forwards session events into a channel the program can
// wait on. Events beyond the buffer are dropped; the app re-reads the session
// state on every event, so only the latest matters.
func subscribeSession(s Session) (<-chan session.Event, func()) {
	ch := make(chan session.Event, 16)
	unsubscribe := s.Subscribe(func(e session.Event) {
		select {
		case ch <- e:
		default:
		}
	})
	return ch, unsubscribe
}

func waitSessionEvent(ch <-chan session.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return nil
		}
		return sessionEventMsg{event: e}
	}
}
