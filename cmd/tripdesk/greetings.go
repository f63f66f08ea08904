package main

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/lipgloss"
)

var guestGreetings = [...]string{
	"The rooms are made up. Nobody has checked in yet.",
	"Your itinerary is blank. That can be fixed.",
	"A tour leaves at nine. Your seat is still unsold.",
	"The concert hall has tickets left. Not many.",
	"Somewhere a table for two is waiting for a name.",
	"The shuttle driver has asked after you twice.",
	"Every trip starts with signing in. This one too.",
	"The city map is unfolded. You are not on it yet.",
	"Check-in is at two. Signing in takes less.",
	"The concierge is at the desk. You are at the door.",
}

func printHelp(out io.Writer) {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#5ad1e6")).
		Bold(true).
		Render("T R I P D E S K")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"tripdesk", "Open the travel desk (interactive TUI)"},
		{"tripdesk login", "Sign in with email and password"},
		{"tripdesk signup", "Create an account"},
		{"tripdesk logout", "Clear your session"},
		{"tripdesk status", "Show who is signed in"},
		{"tripdesk --version", "Show version"},
		{"tripdesk help", "You are here"},
	}

	fmt.Fprintf(out, "\n  %s\n\n  Commands:\n", title)
	for _, c := range commands {
		fmt.Fprintf(out, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", c.cmd)), descStyle.Render(c.desc))
	}
	env := descStyle.Render("Settings: TRIPDESK_API_URL, TRIPDESK_STATE_DIR, TRIPDESK_LOG_LEVEL, TRIPDESK_LOG_FILE, TRIPDESK_RATE_LIMIT, TRIPDESK_METRICS_FILE")
	fmt.Fprintf(out, "\n  %s\n\n", env)
}

func printGuestGreeting(out io.Writer) {
	msg := guestGreetings[rand.IntN(len(guestGreetings))]

	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#5ad1e6")).
		Bold(true).
		Render("TRIPDESK")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(msg)

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Render("Not signed in. To sign in: tripdesk login")

	fmt.Fprintf(out, "\n%s\n\n%s\n\n%s\n\n", title, quote, hint)
}
