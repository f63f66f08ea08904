package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/naveenspark/tripdesk/pkg/client"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2026-05-01", "Fri 1 May 2026"},
		{"2026-05-01T10:30:00Z", "Fri 1 May 2026"},
		{"2026-05-01T10:30:00", "Fri 1 May 2026"},
		{"next tuesday", "next tuesday"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := formatDate(tt.in); got != tt.want {
			t.Errorf("formatDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatUntil(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		d    time.Duration
		want string
	}{
		{-time.Minute, "expired"},
		{0, "expired"},
		{25 * time.Minute, "in 25m"},
		{3 * time.Hour, "in 3h"},
		{72 * time.Hour, "in 3d"},
	}
	for _, tt := range tests {
		if got := formatUntil(now.Add(tt.d), now); got != tt.want {
			t.Errorf("formatUntil(+%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestCleanTextStripsMarkup(t *testing.T) {
	got := cleanText("<p>Sea&nbsp;view<br>rooms</p>", 50)
	if strings.ContainsAny(got, "<>") {
		t.Errorf("cleanText left markup: %q", got)
	}
	if !strings.Contains(got, "rooms") {
		t.Errorf("cleanText dropped text: %q", got)
	}
}

func TestErrorTextPrefersClientMessage(t *testing.T) {
	wrapped := fmt.Errorf("load: %w", &client.Error{Kind: client.KindBackend, Message: "room taken"})
	if got := errorText(wrapped); got != "room taken" {
		t.Errorf("errorText(client error) = %q, want %q", got, "room taken")
	}
	if got := errorText(errors.New("plain")); got != "plain" {
		t.Errorf("errorText(plain) = %q", got)
	}
}

func TestAlertView(t *testing.T) {
	if got := alertView(nil, ""); got != "" {
		t.Errorf("alertView(nil, \"\") = %q, want empty", got)
	}
	if got := alertView(errors.New("boom"), "ignored"); !strings.Contains(got, "boom") || !strings.Contains(got, "retry") {
		t.Errorf("alertView(err) = %q", got)
	}
	if got := alertView(nil, "saved"); !strings.Contains(got, "saved") {
		t.Errorf("alertView(info) = %q", got)
	}
}

func TestSectionEmpty(t *testing.T) {
	got := section("Reviews", nil)
	if !strings.Contains(got, "Reviews") || !strings.Contains(got, "nothing here yet") {
		t.Errorf("section(empty) = %q", got)
	}
}
