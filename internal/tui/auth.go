package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/tripdesk/internal/booking"
	"github.com/naveenspark/tripdesk/internal/session"
	"github.com/naveenspark/tripdesk/pkg/client"
)

type loginResultMsg struct {
	err error
}

type signUpResultMsg struct {
	email string
	err   error
}

const (
	signInEmail = iota
	signInPassword
)

type signInModel struct {
	session    Session
	email      string
	password   string
	focus      int
	submitting bool
	err        error
}

func newSignInModel(s Session, email string) signInModel {
	m := signInModel{session: s, email: email}
	if email != "" {
		m.focus = signInPassword
	}
	return m
}

func (m signInModel) Update(msg tea.Msg) (signInModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.submitting = false
		m.err = msg.err
		if msg.err != nil {
			m.password = ""
		}
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, navigate(navigateMsg{to: viewHome})
		case "tab", "down", "shift+tab", "up":
			m.focus = 1 - m.focus
		case "enter":
			if m.focus == signInEmail {
				m.focus = signInPassword
				return m, nil
			}
			return m.submit()
		default:
			if m.focus == signInEmail {
				m.email = editRune(m.email, msg.String())
			} else {
				m.password = editRune(m.password, msg.String())
			}
		}
	}
	return m, nil
}

func (m signInModel) submit() (signInModel, tea.Cmd) {
	email := strings.TrimSpace(m.email)
	if err := session.ValidateCredentials(email, m.password); err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	m.submitting = true
	s, password := m.session, m.password
	return m, func() tea.Msg {
		return loginResultMsg{err: s.Login(context.Background(), email, password)}
	}
}

func (m signInModel) View() string {
	var sb strings.Builder
	if m.err != nil {
		sb.WriteString(" " + alertErrorStyle.Render(errorText(m.err)) + "\n\n")
	}
	sb.WriteString("  " + sectionHeaderStyle.Render("Sign in") + "\n\n")
	sb.WriteString("  " + renderField("email", m.email, "you@example.com", m.focus == signInEmail, false) + "\n")
	sb.WriteString("  " + renderField("password", m.password, "at least 6 characters", m.focus == signInPassword, true) + "\n")
	if m.submitting {
		sb.WriteString("\n  " + dimStyle.Render("signing in...") + "\n")
	}
	return sb.String()
}

const (
	signUpName = iota
	signUpEmail
	signUpPassword
	signUpFields
)

type signUpModel struct {
	client     *client.Client
	values     [signUpFields]string
	focus      int
	submitting bool
	err        error
}

func newSignUpModel(c *client.Client) signUpModel {
	return signUpModel{client: c}
}

func (m signUpModel) Update(msg tea.Msg) (signUpModel, tea.Cmd) {
	switch msg := msg.(type) {
	case signUpResultMsg:
		m.submitting = false
		m.err = msg.err
		if msg.err == nil {
			return m, navigate(navigateMsg{to: viewSignIn, email: msg.email, notice: "account created, please sign in"})
		}
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, navigate(navigateMsg{to: viewHome})
		case "tab", "down":
			m.focus = (m.focus + 1) % signUpFields
		case "shift+tab", "up":
			m.focus = (m.focus + signUpFields - 1) % signUpFields
		case "enter":
			if m.focus < signUpPassword {
				m.focus++
				return m, nil
			}
			return m.submit()
		default:
			m.values[m.focus] = editRune(m.values[m.focus], msg.String())
		}
	}
	return m, nil
}

func (m signUpModel) submit() (signUpModel, tea.Cmd) {
	req, err := booking.SignUp(m.values[signUpName], m.values[signUpEmail], m.values[signUpPassword])
	if err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	m.submitting = true
	c := m.client
	return m, func() tea.Msg {
		if _, err := c.CreateUser(context.Background(), req); err != nil {
			return signUpResultMsg{err: err}
		}
		return signUpResultMsg{email: req.Email}
	}
}

func (m signUpModel) View() string {
	var sb strings.Builder
	if m.err != nil {
		sb.WriteString(" " + alertErrorStyle.Render(errorText(m.err)) + "\n\n")
	}
	sb.WriteString("  " + sectionHeaderStyle.Render("Create an account") + "\n\n")
	sb.WriteString("  " + renderField("name", m.values[signUpName], "your name", m.focus == signUpName, false) + "\n")
	sb.WriteString("  " + renderField("email", m.values[signUpEmail], "you@example.com", m.focus == signUpEmail, false) + "\n")
	sb.WriteString("  " + renderField("password", m.values[signUpPassword], "at least 6 characters", m.focus == signUpPassword, true) + "\n")
	if m.submitting {
		sb.WriteString("\n  " + dimStyle.Render("creating account...") + "\n")
	}
	return sb.String()
}
