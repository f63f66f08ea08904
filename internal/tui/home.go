package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/tripdesk/pkg/client"
	"github.com/naveenspark/tripdesk/pkg/domain"
)

type homeLoadedMsg struct {
	posts   []domain.BlogPost
	notices []domain.EventNotification
	err     error
}

type homeModel struct {
	client  *client.Client
	cursor  int
	posts   []domain.BlogPost
	notices []domain.EventNotification
	loading bool
	err     error
	width   int
	height  int
}

func newHomeModel(c *client.Client) homeModel {
	return homeModel{client: c}
}

func (m homeModel) Init() tea.Cmd {
	return m.load()
}

func (m homeModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx := context.Background()
		posts, err := c.ListBlog(ctx)
		if err != nil {
			return homeLoadedMsg{err: err}
		}
		notices, err := c.ListTourismNotifications(ctx)
		if err != nil {
			return homeLoadedMsg{err: err}
		}
		return homeLoadedMsg{posts: posts, notices: notices}
	}
}

func (m homeModel) Update(msg tea.Msg) (homeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case homeLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.posts = msg.posts
			m.notices = msg.notices
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(domain.Verticals)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter":
			v := domain.Verticals[m.cursor]
			return m, navigate(navigateMsg{to: viewCatalog, vertical: v.ID})
		case "r":
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m homeModel) View() string {
	var sb strings.Builder
	if a := alertView(m.err, ""); a != "" {
		sb.WriteString(" " + a + "\n\n")
	}

	sb.WriteString("  " + sectionHeaderStyle.Render("Where to?") + "\n")
	for i, v := range domain.Verticals {
		name := VerticalStyle(v.ID).Render(v.Name)
		noun := dimStyle.Render("book a " + v.Noun)
		if i == m.cursor {
			sb.WriteString(selectedRowBg.Render(fmt.Sprintf("  %s %-24s %s", accentStyle.Render("›"), name, noun)) + "\n")
		} else {
			sb.WriteString(fmt.Sprintf("    %-24s %s\n", name, noun))
		}
	}
	sb.WriteString("\n")

	if m.loading && len(m.posts) == 0 {
		sb.WriteString("  " + dimStyle.Render("loading news...") + "\n")
		return sb.String()
	}

	var notices []string
	for _, n := range m.notices {
		line := cleanText(n.Title, 40)
		if n.Message != "" {
			line += "  " + dimStyle.Render(cleanText(n.Message, 60))
		}
		notices = append(notices, line)
	}
	sb.WriteString(section("Notices", notices))
	sb.WriteString("\n")

	var posts []string
	for _, p := range m.posts {
		line := normalStyle.Render(cleanText(p.Title, 50))
		if p.CreatedAt != "" {
			line += "  " + metaStyle.Render(formatDate(p.CreatedAt))
		}
		posts = append(posts, line)
		if body := cleanText(p.Content, 80); body != "" {
			posts = append(posts, "  "+dimStyle.Render(body))
		}
	}
	sb.WriteString(section("From the blog", posts))
	return sb.String()
}
