package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/tripdesk/internal/booking"
	"github.com/naveenspark/tripdesk/internal/session"
	"github.com/naveenspark/tripdesk/pkg/client"
)

func typeSignIn(m signInModel, text string) signInModel {
	for _, r := range text {
		m, _ = m.Update(keyMsg(string(r)))
	}
	return m
}

func typeSignUp(m signUpModel, text string) signUpModel {
	for _, r := range text {
		m, _ = m.Update(keyMsg(string(r)))
	}
	return m
}

func TestSignInPrefilledEmailFocusesPassword(t *testing.T) {
	if m := newSignInModel(nil, ""); m.focus != signInEmail {
		t.Errorf("empty form focus = %d, want email", m.focus)
	}
	if m := newSignInModel(nil, "ada@example.com"); m.focus != signInPassword {
		t.Errorf("prefilled form focus = %d, want password", m.focus)
	}
}

func TestSignInValidatesLocally(t *testing.T) {
	s := &fakeSession{}
	m := newSignInModel(s, "")
	m = typeSignIn(m, "ada@example.com")
	m, _ = m.Update(keyMsg("enter"))
	m = typeSignIn(m, "abc")
	m, cmd := m.Update(keyMsg("enter"))
	if cmd != nil {
		t.Fatal("short password reached the backend")
	}
	if !errors.Is(m.err, session.ErrShortPassword) {
		t.Errorf("err = %v, want ErrShortPassword", m.err)
	}

	m = newSignInModel(s, "")
	m = typeSignIn(m, "not-an-email")
	m, _ = m.Update(keyMsg("tab"))
	m = typeSignIn(m, "secret1")
	_, cmd = m.Update(keyMsg("enter"))
	if cmd != nil {
		t.Error("invalid email reached the backend")
	}
	if s.logins != 0 {
		t.Errorf("logins = %d, want 0", s.logins)
	}
}

func TestSignInSubmits(t *testing.T) {
	s := &fakeSession{}
	m := newSignInModel(s, "ada@example.com")
	m = typeSignIn(m, "secret1")
	m, cmd := m.Update(keyMsg("enter"))
	if cmd == nil || !m.submitting {
		t.Fatal("valid credentials were not submitted")
	}
	msg := cmd()
	if s.logins != 1 {
		t.Errorf("logins = %d, want 1", s.logins)
	}
	m, _ = m.Update(msg)
	if m.submitting || m.err != nil {
		t.Errorf("submitting = %v err = %v", m.submitting, m.err)
	}
}

func TestSignInFailureClearsPassword(t *testing.T) {
	s := &fakeSession{loginErr: &client.Error{Kind: client.KindBackend, Message: "No active account found with the given credentials"}}
	m := newSignInModel(s, "ada@example.com")
	m = typeSignIn(m, "secret1")
	m, cmd := m.Update(keyMsg("enter"))
	m, _ = m.Update(cmd())
	if m.password != "" {
		t.Errorf("password = %q, want cleared", m.password)
	}
	if m.email != "ada@example.com" {
		t.Errorf("email = %q, want kept", m.email)
	}
	if got := errorText(m.err); got != "No active account found with the given credentials" {
		t.Errorf("error text = %q", got)
	}
}

func TestSignInEscGoesHome(t *testing.T) {
	_, cmd := newSignInModel(nil, "").Update(keyMsg("esc"))
	if cmd == nil {
		t.Fatal("esc returned no command")
	}
	if nav, ok := cmd().(navigateMsg); !ok || nav.to != viewHome {
		t.Errorf("esc navigated to %+v", nav)
	}
}

func fillSignUp(m signUpModel, name, email, password string) (signUpModel, tea.Cmd) {
	m = typeSignUp(m, name)
	m, _ = m.Update(keyMsg("enter"))
	m = typeSignUp(m, email)
	m, _ = m.Update(keyMsg("enter"))
	m = typeSignUp(m, password)
	return m.Update(keyMsg("enter"))
}

func TestSignUpCreatesAccount(t *testing.T) {
	srv, c, _ := newDeskBackend(t)
	m := newSignUpModel(c)
	m, cmd := fillSignUp(m, "Grace", "grace@example.com", "secret1")
	if cmd == nil || !m.submitting {
		t.Fatalf("sign-up not submitted, err = %v", m.err)
	}
	msg := cmd()
	if res, ok := msg.(signUpResultMsg); !ok || res.err != nil || res.email != "grace@example.com" {
		t.Fatalf("result = %+v", msg)
	}
	m, cmd = m.Update(msg)
	if cmd == nil {
		t.Fatal("expected navigation to sign-in")
	}
	nav, ok := cmd().(navigateMsg)
	if !ok || nav.to != viewSignIn || nav.email != "grace@example.com" {
		t.Errorf("navigate = %+v", nav)
	}
	if n := srv.CountRequests("POST", "/customUser/create/"); n != 1 {
		t.Errorf("create requests = %d, want 1", n)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	_, c, _ := newDeskBackend(t)
	m := newSignUpModel(c)
	m, cmd := fillSignUp(m, "Ada", "ada@example.com", "secret1")
	m, cmd = m.Update(cmd())
	if cmd != nil {
		t.Error("duplicate sign-up navigated away")
	}
	if m.err == nil || m.submitting {
		t.Errorf("err = %v submitting = %v", m.err, m.submitting)
	}
}

func TestSignUpValidatesLocally(t *testing.T) {
	m := newSignUpModel(nil)
	m, _ = m.Update(keyMsg("tab"))
	m = typeSignUp(m, "ada@example.com")
	m, _ = m.Update(keyMsg("tab"))
	m = typeSignUp(m, "secret1")
	m, cmd := m.Update(keyMsg("enter"))
	if cmd != nil {
		t.Fatal("sign-up without a name was submitted")
	}
	if !errors.Is(m.err, booking.ErrNameRequired) {
		t.Errorf("err = %v, want ErrNameRequired", m.err)
	}
}
