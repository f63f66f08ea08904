package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/tripdesk/pkg/client"
)

type catalogLoadedMsg struct {
	vertical string
	items    []listing
	err      error
}

type catalogModel struct {
	client   *client.Client
	vertical string
	items    []listing
	cursor   int
	loading  bool
	err      error
	status   string
	width    int
	height   int
}

func newCatalogModel(c *client.Client) catalogModel {
	return catalogModel{client: c}
}

// open switches the catalog to vertical and loads it. Reopening the same
// vertical keeps the cursor.
func (m catalogModel) open(vertical string) (catalogModel, tea.Cmd) {
	if vertical != m.vertical {
		m.vertical = vertical
		m.items = nil
		m.cursor = 0
	}
	m.err = nil
	m.status = ""
	m.loading = true
	return m, m.load()
}

func (m catalogModel) load() tea.Cmd {
	d, ok := lookupDesk(m.vertical)
	if !ok {
		return nil
	}
	c, vertical := m.client, m.vertical
	return func() tea.Msg {
		items, err := d.List(context.Background(), c)
		return catalogLoadedMsg{vertical: vertical, items: items, err: err}
	}
}

func (m catalogModel) Update(msg tea.Msg) (catalogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		if msg.vertical != m.vertical {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.items = msg.items
		}
		if m.cursor >= len(m.items) {
			m.cursor = 0
		}
		return m, nil

	case openResultMsg:
		m.status = openStatus(msg.err)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		m.status = ""
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter":
			if m.cursor < len(m.items) {
				return m, navigate(navigateMsg{to: viewDetail, vertical: m.vertical, id: m.items[m.cursor].ID})
			}
		case "o":
			if m.cursor < len(m.items) {
				return m, openCmd(m.items[m.cursor].Image)
			}
		case "r":
			m.loading = true
			m.err = nil
			return m, m.load()
		}
	}
	return m, nil
}

func (m catalogModel) View() string {
	var sb strings.Builder
	if a := alertView(m.err, m.status); a != "" {
		sb.WriteString(" " + a + "\n\n")
	}

	title := m.vertical
	if d, ok := lookupDesk(m.vertical); ok {
		title = d.Vertical.Name
	}
	sb.WriteString("  " + VerticalStyle(m.vertical).Render(title))
	if len(m.items) > 0 {
		sb.WriteString("  " + metaStyle.Render(fmt.Sprintf("%d", len(m.items))))
	}
	sb.WriteString("\n\n")

	if m.loading && len(m.items) == 0 {
		sb.WriteString("  " + dimStyle.Render("loading...") + "\n")
		return sb.String()
	}
	if len(m.items) == 0 {
		sb.WriteString("  " + dimStyle.Render("nothing listed yet") + "\n")
		return sb.String()
	}

	// Two lines per row; keep the cursor in view.
	visible := (m.height - 4) / 2
	if visible < 3 {
		visible = 3
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := start + visible
	if end > len(m.items) {
		end = len(m.items)
	}
	for i := start; i < end; i++ {
		it := m.items[i]
		if i == m.cursor {
			sb.WriteString(selectedRowBg.Render("  "+accentStyle.Render("›")+" "+selectedStyle.Render(it.Title)) + "\n")
			line := dimStyle.Render(it.Subtitle)
			if s := cleanText(it.Summary, 70); s != "" {
				line += "  " + normalStyle.Render(s)
			}
			sb.WriteString("    " + line + "\n")
		} else {
			sb.WriteString("    " + normalStyle.Render(it.Title) + "\n")
			sb.WriteString("    " + dimStyle.Render(it.Subtitle) + "\n")
		}
	}
	return sb.String()
}
