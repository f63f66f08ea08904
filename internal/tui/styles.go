package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/tripdesk/pkg/domain"
)

// Shimmer animation for the TRIPDESK logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "T R I P D E S K" as a slow wave of sea light.
// Deep harbor blue (#12324a) -> bright lagoon (#5ad1e6).
func renderShimmerLogo(frame int) string {
	const text = "TRIPDESK"
	n := len(text)

	var out string
	t := float64(frame)

	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)

		phase := t*0.1 - x*3.0
		phase += math.Sin(t*0.023) * 2.0

		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)

		tide := math.Sin(t*0.035) * 0.12
		b = b*0.75 + tide + 0.18

		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		// Deep:   (18, 50, 74)   #12324a
		// Bright: (90, 209, 230) #5ad1e6
		r := clampByte(18 + b*(90-18))
		g := clampByte(50 + b*(209-50))
		bl := clampByte(74 + b*(230-74))

		color := fmt.Sprintf("#%02X%02X%02X", r, g, bl)
		out += lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).Render(string(text[i]))

		if i < n-1 {
			out += "  "
		}
	}
	return out
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3fb8d0"))

	priceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4a844"))

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#606878")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))

	// Alert banner
	alertErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f0f0f0")).
			Background(lipgloss.Color("#8a2c2c")).
			Padding(0, 1)

	alertInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0c1c24")).
			Background(lipgloss.Color("#5ad1e6")).
			Padding(0, 1)

	confirmedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f59e0b"))

	// Selected row background
	selectedRowBg = lipgloss.NewStyle().Background(lipgloss.Color("#1e1e2a"))
)

// VerticalStyle returns a bold style in the vertical's color.
func VerticalStyle(id string) lipgloss.Style {
	if v, ok := domain.LookupVertical(id); ok {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(v.HexColor)).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#8890a0")).Bold(true)
}

// statusStyle colors a booking status.
func statusStyle(confirmed bool) lipgloss.Style {
	if confirmed {
		return confirmedStyle
	}
	return pendingStyle
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpBar joins key/label pairs into a help line.
func helpBar(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, helpEntry(pairs[i], pairs[i+1]))
	}
	return " " + strings.Join(parts, "  ")
}

// helpView renders the help overlay.
func helpView(baseURL string) string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#5ad1e6")).
		Bold(true).
		Render("T R I P D E S K")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)

	commands := []struct{ cmd, desc string }{
		{"tripdesk", "Open the travel desk (interactive TUI)"},
		{"tripdesk login", "Sign in with email and password"},
		{"tripdesk signup", "Create an account"},
		{"tripdesk logout", "Clear your session"},
		{"tripdesk status", "Show who is signed in"},
		{"tripdesk --version", "Show version"},
	}
	keys := []struct{ key, desc string }{
		{"1 / 2", "Home / My bookings"},
		{"enter", "Open"},
		{"esc", "Back"},
		{"b", "Book from a detail page"},
		{"f", "Switch booking form"},
		{"x", "Cancel the selected booking"},
		{"c", "Copy the selected booking id"},
		{"o", "Open the record's image"},
		{"r", "Retry the last load"},
		{"s / u / L", "Sign in / Sign up / Sign out"},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n  %s\n\n", title, descStyle.Render(baseURL))

	fmt.Fprintf(&b, "  %s\n", sectionStyle.Render("Commands"))
	for _, c := range commands {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", c.cmd)), descStyle.Render(c.desc))
	}
	fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Keys"))
	for _, k := range keys {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", k.key)), descStyle.Render(k.desc))
	}
	return b.String()
}
