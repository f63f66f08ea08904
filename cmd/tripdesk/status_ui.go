package main

import (
	"fmt"
	"io"
	"time"
)

// ANSI color constants for status output (no lipgloss, runs outside TUI).
const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiHarbor = "\033[38;2;18;50;74m"    // #12324a
	ansiLagoon = "\033[38;2;90;209;230m"  // #5ad1e6
	ansiGreen  = "\033[38;2;74;222;128m"  // #4ade80
	ansiAmber  = "\033[38;2;245;158;11m"  // #f59e0b
	ansiSlate  = "\033[38;2;136;144;160m" // #8890a0
)

type statusInfo struct {
	APIURL    string
	UserID    string
	Expiry    time.Time
	HasExpiry bool
	Now       time.Time
}

// printStatusLogo prints the spaced TRIPDESK wordmark in alternating blues.
func printStatusLogo(out io.Writer) {
	letters := "TRIPDESK"
	colors := [2]string{ansiLagoon, ansiHarbor}
	fmt.Fprint(out, "\n  ")
	for i, ch := range letters {
		fmt.Fprintf(out, "%s%s%c%s", colors[i%2], ansiBold, ch, ansiReset)
		if i < len(letters)-1 {
			fmt.Fprint(out, "  ")
		}
	}
	fmt.Fprintln(out)
}

func printStatus(out io.Writer, s statusInfo) {
	if s.Now.IsZero() {
		s.Now = time.Now()
	}
	printStatusLogo(out)
	fmt.Fprintf(out, "\n  %s%ssigned in%s  %s%s%s\n", ansiGreen, ansiBold, ansiReset, ansiSlate, s.APIURL, ansiReset)

	user := s.UserID
	if user == "" {
		user = ansiAmber + "unknown (profile unavailable)" + ansiReset
	}
	fmt.Fprintf(out, "  %suser%s     %s\n", ansiSlate, ansiReset, user)

	if s.HasExpiry {
		left := s.Expiry.Sub(s.Now).Round(time.Minute)
		color := ansiGreen
		if left < time.Hour {
			color = ansiAmber
		}
		fmt.Fprintf(out, "  %sexpires%s  %s%s%s (%s)\n\n", ansiSlate, ansiReset, color, s.Expiry.Local().Format(time.RFC1123), ansiReset, left)
		return
	}
	fmt.Fprintf(out, "  %sexpires%s  %sunknown%s\n\n", ansiSlate, ansiReset, ansiSlate, ansiReset)
}
