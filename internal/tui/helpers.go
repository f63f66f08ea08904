package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/naveenspark/tripdesk/internal/textutil"
	"github.com/naveenspark/tripdesk/pkg/client"
)

// formatDate renders a backend date or timestamp as "Mon 2 Jan 2006".
// Unparseable values are shown as sent.
func formatDate(s string) string {
	for _, layout := range []string{"2006-01-02", time.RFC3339, time.RFC3339Nano, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Mon 2 Jan 2006")
		}
	}
	return s
}

// formatUntil renders how long until t, e.g. "in 3h" or "expired".
func formatUntil(t, now time.Time) string {
	d := t.Sub(now)
	switch {
	case d <= 0:
		return "expired"
	case d < time.Hour:
		return fmt.Sprintf("in %dm", int(d.Minutes()))
	case d < 48*time.Hour:
		return fmt.Sprintf("in %dh", int(d.Hours()))
	default:
		return fmt.Sprintf("in %dd", int(d.Hours()/24))
	}
}

// cleanText strips markup from backend text and shortens it to maxLen runes.
func cleanText(raw string, maxLen int) string {
	return textutil.Truncate(textutil.Plain(raw), maxLen)
}

// errorText is what the alert banner shows for err.
func errorText(err error) string {
	var ce *client.Error
	if errors.As(err, &ce) {
		return ce.Message
	}
	return err.Error()
}

// alertView renders the alert banner, or "" when there is nothing to say.
func alertView(err error, info string) string {
	switch {
	case err != nil:
		return alertErrorStyle.Render(errorText(err)) + " " + helpEntry("r", "retry")
	case info != "":
		return alertInfoStyle.Render(info)
	}
	return ""
}

// section renders a titled block of lines.
func section(title string, lines []string) string {
	var b strings.Builder
	b.WriteString("  " + sectionHeaderStyle.Render(title) + "\n")
	if len(lines) == 0 {
		b.WriteString("    " + dimStyle.Render("nothing here yet") + "\n")
	}
	for _, l := range lines {
		b.WriteString("    " + l + "\n")
	}
	return b.String()
}
