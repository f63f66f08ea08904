package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/tripdesk/pkg/client"
	"github.com/naveenspark/tripdesk/pkg/domain"
)

type bookingsLoadedMsg struct {
	rows []bookingRow
	err  error
}

type bookingCanceledMsg struct {
	id  int64
	err error
}

// bookingsModel lists the signed-in user's bookings across every vertical.
type bookingsModel struct {
	client  *client.Client
	session Session
	rows    []bookingRow
	cursor  int
	loading bool
	confirm bool
	err     error
	info    string
	width   int
	height  int
}

func newBookingsModel(c *client.Client, s Session) bookingsModel {
	return bookingsModel{client: c, session: s}
}

func (m bookingsModel) Init() tea.Cmd {
	return m.load()
}

func (m bookingsModel) load() tea.Cmd {
	if m.session == nil || m.session.UserID() == "" {
		return nil
	}
	c, uid := m.client, m.session.UserID()
	return func() tea.Msg {
		ctx := context.Background()
		var rows []bookingRow
		for _, v := range domain.Verticals {
			d, ok := lookupDesk(v.ID)
			if !ok {
				continue
			}
			got, err := d.MyBookings(ctx, c, uid)
			if err != nil {
				return bookingsLoadedMsg{rows: rows, err: err}
			}
			rows = append(rows, got...)
		}
		return bookingsLoadedMsg{rows: rows}
	}
}

func (m bookingsModel) Update(msg tea.Msg) (bookingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case bookingsLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.rows = msg.rows
		}
		if m.cursor >= len(m.rows) {
			m.cursor = 0
		}
		return m, nil

	case bookingCanceledMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.info = fmt.Sprintf("booking #%d canceled", msg.id)
		m.loading = true
		return m, m.load()

	case copyResultMsg:
		m.info = copyStatus(msg.err)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		m.info = ""
		if m.confirm {
			m.confirm = false
			if msg.String() == "y" && m.cursor < len(m.rows) {
				return m, cancelCmd(m.client, m.rows[m.cursor])
			}
			return m, nil
		}
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "x":
			if m.cursor < len(m.rows) {
				m.confirm = true
			}
		case "c":
			if m.cursor < len(m.rows) {
				return m, copyCmd(strconv.FormatInt(m.rows[m.cursor].ID, 10))
			}
		case "r":
			m.loading = true
			m.err = nil
			return m, m.load()
		}
	}
	return m, nil
}

func (m bookingsModel) helpKeys() string {
	if m.confirm {
		return helpBar("y", "confirm cancel", "any", "keep")
	}
	return helpBar("j/k", "nav", "x", "cancel", "c", "copy id", "r", "refresh", "esc", "back")
}

func (m bookingsModel) View() string {
	var sb strings.Builder
	if a := alertView(m.err, m.info); a != "" {
		sb.WriteString(" " + a + "\n\n")
	}
	if m.session == nil || m.session.UserID() == "" {
		sb.WriteString("  " + dimStyle.Render("sign in to see your bookings") + "  " + helpEntry("s", "sign in") + "\n")
		return sb.String()
	}
	if m.loading && len(m.rows) == 0 {
		sb.WriteString("  " + dimStyle.Render("loading bookings...") + "\n")
		return sb.String()
	}
	if len(m.rows) == 0 {
		sb.WriteString("  " + dimStyle.Render("no bookings yet") + "\n")
		return sb.String()
	}

	current := ""
	for i, b := range m.rows {
		if b.Vertical != current {
			if current != "" {
				sb.WriteString("\n")
			}
			current = b.Vertical
			name := b.Vertical
			if v, ok := domain.LookupVertical(b.Vertical); ok {
				name = v.Name
			}
			sb.WriteString("  " + VerticalStyle(b.Vertical).Render(name) + "\n")
		}
		sb.WriteString("  " + bookingLine(b, i == m.cursor) + "\n")
	}
	if m.confirm && m.cursor < len(m.rows) {
		sb.WriteString("\n  " + pendingStyle.Render(fmt.Sprintf("cancel booking #%d? press y to confirm", m.rows[m.cursor].ID)) + "\n")
	}
	return sb.String()
}
