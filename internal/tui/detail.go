package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/tripdesk/pkg/client"
)

type detailLoadedMsg struct {
	vertical string
	id       int64
	data     detailData
	err      error
}

type bookingSubmittedMsg struct {
	info string
	err  error
}

// formState is an open booking form.
type formState struct {
	def        bookingForm
	values     []string
	focus      int
	choice     int
	submitting bool
}

func newFormState(def bookingForm) *formState {
	return &formState{def: def, values: make([]string, len(def.Fields))}
}

type detailModel struct {
	client   *client.Client
	session  Session
	vertical string
	id       int64
	data     detailData
	loaded   bool
	loading  bool
	err      error
	info     string
	cursor   int // selected booking
	confirm  bool
	form     *formState
	formIdx  int
	now      func() time.Time
	width    int
	height   int
}

func newDetailModel(c *client.Client, s Session) detailModel {
	return detailModel{client: c, session: s, now: time.Now}
}

func (m detailModel) editing() bool {
	return m.form != nil
}

func (m detailModel) open(vertical string, id int64) (detailModel, tea.Cmd) {
	if vertical != m.vertical || id != m.id {
		m.vertical = vertical
		m.id = id
		m.data = detailData{}
		m.loaded = false
		m.cursor = 0
		m.form = nil
		m.formIdx = 0
	}
	m.err = nil
	m.confirm = false
	m.loading = true
	return m, m.load()
}

func (m detailModel) load() tea.Cmd {
	d, ok := lookupDesk(m.vertical)
	if !ok {
		return nil
	}
	c, vertical, id := m.client, m.vertical, m.id
	uid := ""
	if m.session != nil {
		uid = m.session.UserID()
	}
	return func() tea.Msg {
		data, err := d.Detail(context.Background(), c, id, uid)
		return detailLoadedMsg{vertical: vertical, id: id, data: data, err: err}
	}
}

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case detailLoadedMsg:
		if msg.vertical != m.vertical || msg.id != m.id {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.data = msg.data
			m.loaded = true
		}
		if m.cursor >= len(m.data.Bookings) {
			m.cursor = 0
		}
		return m, nil

	case bookingSubmittedMsg:
		if m.form != nil {
			m.form.submitting = false
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.form = nil
		m.err = nil
		m.info = msg.info
		m.loading = true
		return m, m.load()

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

	case openResultMsg:
		m.info = openStatus(msg.err)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		m.info = ""
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m detailModel) updateBrowse(msg tea.KeyMsg) (detailModel, tea.Cmd) {
	if m.confirm {
		m.confirm = false
		if msg.String() == "y" && m.cursor < len(m.data.Bookings) {
			return m, cancelCmd(m.client, m.data.Bookings[m.cursor])
		}
		return m, nil
	}

	d, _ := lookupDesk(m.vertical)
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.data.Bookings)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "b":
		if !m.loaded || len(d.Forms) == 0 {
			return m, nil
		}
		if m.session == nil || !m.session.Authenticated() {
			return m, navigate(navigateMsg{to: viewSignIn, notice: "sign in to book"})
		}
		m.form = newFormState(d.Forms[m.formIdx])
	case "f":
		if len(d.Forms) > 1 {
			m.formIdx = (m.formIdx + 1) % len(d.Forms)
			m.info = "form: " + d.Forms[m.formIdx].Name
		}
	case "x":
		if m.cursor < len(m.data.Bookings) {
			m.confirm = true
		}
	case "c":
		if m.cursor < len(m.data.Bookings) {
			return m, copyCmd(strconv.FormatInt(m.data.Bookings[m.cursor].ID, 10))
		}
	case "o":
		return m, openCmd(m.data.Listing.Image)
	case "r":
		m.loading = true
		m.err = nil
		return m, m.load()
	}
	return m, nil
}

func (m detailModel) updateForm(msg tea.KeyMsg) (detailModel, tea.Cmd) {
	f := m.form
	if f.submitting {
		return m, nil
	}
	field := f.def.Fields[f.focus]
	last := len(f.def.Fields) - 1

	switch msg.String() {
	case "esc":
		m.form = nil
		m.err = nil
	case "tab", "down":
		f.focus = (f.focus + 1) % len(f.def.Fields)
	case "shift+tab", "up":
		f.focus = (f.focus + len(f.def.Fields) - 1) % len(f.def.Fields)
	case "enter":
		if f.focus < last {
			f.focus++
			return m, nil
		}
		return m.submit()
	case "ctrl+s":
		return m.submit()
	case "left", "h", "right", "l":
		if field.Choice {
			n := len(m.data.Choices)
			if n == 0 {
				return m, nil
			}
			if k := msg.String(); k == "left" || k == "h" {
				f.choice = (f.choice + n - 1) % n
			} else {
				f.choice = (f.choice + 1) % n
			}
			return m, nil
		}
		f.values[f.focus] = editRune(f.values[f.focus], msg.String())
	default:
		if !field.Choice {
			f.values[f.focus] = editRune(f.values[f.focus], msg.String())
		}
	}
	return m, nil
}

func (m detailModel) submit() (detailModel, tea.Cmd) {
	f := m.form
	f.submitting = true
	m.err = nil

	in := formInput{
		Values: append([]string(nil), f.values...),
		Now:    m.now(),
	}
	for _, fld := range f.def.Fields {
		if fld.Choice && f.choice < len(m.data.Choices) {
			ch := m.data.Choices[f.choice]
			in.Choice = &ch
		}
	}
	uid := ""
	if m.session != nil {
		uid = m.session.UserID()
	}
	c, data, submit := m.client, m.data, f.def.Submit
	return m, func() tea.Msg {
		info, err := submit(context.Background(), c, uid, data, in)
		return bookingSubmittedMsg{info: info, err: err}
	}
}

func (m detailModel) helpKeys() string {
	switch {
	case m.form != nil:
		return helpBar("tab", "next", "h/l", "choose", "ctrl+s", "submit", "esc", "close")
	case m.confirm:
		return helpBar("y", "confirm cancel", "any", "keep")
	}
	return helpBar("b", "book", "f", "form", "j/k", "bookings", "x", "cancel", "c", "copy id", "o", "image", "esc", "back")
}

func (m detailModel) View() string {
	var sb strings.Builder
	if a := alertView(m.err, m.info); a != "" {
		sb.WriteString(" " + a + "\n\n")
	}
	if !m.loaded {
		if m.loading {
			sb.WriteString("  " + dimStyle.Render("loading...") + "\n")
		}
		return sb.String()
	}

	l := m.data.Listing
	sb.WriteString("  " + VerticalStyle(m.vertical).Render(l.Title))
	if l.Subtitle != "" {
		sb.WriteString("  " + dimStyle.Render(l.Subtitle))
	}
	sb.WriteString("\n")
	if s := cleanText(l.Summary, 240); s != "" {
		sb.WriteString("  " + normalStyle.Render(s) + "\n")
	}
	sb.WriteString("\n")

	for _, fact := range m.data.Facts {
		if fact[1] == "" {
			continue
		}
		sb.WriteString(fmt.Sprintf("  %s %s\n", metaStyle.Render(fmt.Sprintf("%-14s", fact[0])), fact[1]))
	}
	sb.WriteString("\n")

	for _, s := range m.data.Sections {
		sb.WriteString(section(s.Title, s.Lines))
		sb.WriteString("\n")
	}

	if m.session != nil && m.session.Authenticated() {
		var rows []string
		for i, b := range m.data.Bookings {
			rows = append(rows, bookingLine(b, i == m.cursor))
		}
		sb.WriteString(section("Your bookings", rows))
		if m.confirm && m.cursor < len(m.data.Bookings) {
			sb.WriteString("  " + pendingStyle.Render(fmt.Sprintf("cancel booking #%d? press y to confirm", m.data.Bookings[m.cursor].ID)) + "\n")
		}
		sb.WriteString("\n")
	}

	if m.form != nil {
		sb.WriteString(m.formView())
	}
	return sb.String()
}

func (m detailModel) formView() string {
	f := m.form
	var sb strings.Builder
	sb.WriteString("  " + sectionHeaderStyle.Render(f.def.Name) + "\n")
	for i, fld := range f.def.Fields {
		value := f.values[i]
		if fld.Choice {
			cursor, style := " ", metaStyle
			if i == f.focus {
				cursor, style = ">", selectedStyle
			}
			value = inputPlaceholderStyle.Render("nothing to choose")
			if f.choice < len(m.data.Choices) {
				ch := m.data.Choices[f.choice]
				value = fmt.Sprintf("‹ %s › %s", ch.Label, money(ch.Price))
			}
			sb.WriteString(fmt.Sprintf("  %s %s %s\n", cursor, style.Render(fmt.Sprintf("%-14s", fld.Label)), value))
			continue
		}
		sb.WriteString("  " + renderField(fld.Label, value, fld.Placeholder, i == f.focus, false) + "\n")
	}
	if f.submitting {
		sb.WriteString("  " + dimStyle.Render("submitting...") + "\n")
	}
	return sb.String()
}

// bookingLine renders one booking row.
func bookingLine(b bookingRow, selected bool) string {
	status := "pending"
	if b.Confirmed {
		status = "confirmed"
	}
	line := fmt.Sprintf("%s  %s  %s",
		metaStyle.Render(fmt.Sprintf("#%d", b.ID)),
		b.Line,
		statusStyle(b.Confirmed).Render(status))
	if selected {
		return selectedRowBg.Render(accentStyle.Render("› ") + line)
	}
	return "  " + line
}
