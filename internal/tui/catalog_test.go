package tui

import (
	"strings"
	"testing"

	"github.com/naveenspark/tripdesk/pkg/domain"
)

func seedDestinations(t *testing.T) catalogModel {
	t.Helper()
	srv, c, _ := newDeskBackend(t)
	srv.Seed("/information-center/destinations/",
		map[string]any{"id": 1, "name": "Old Town", "category": "heritage", "location": "North", "description": "<p>Cobbled lanes</p>"},
		map[string]any{"id": 2, "name": "West Lake", "category": "nature", "location": "West", "description": "Boats at dusk"},
	)
	m := newCatalogModel(c)
	m.height = 30
	m, cmd := m.open(domain.VerticalTourism)
	if !m.loading || cmd == nil {
		t.Fatal("open did not start loading")
	}
	m, _ = m.Update(cmd())
	if m.err != nil {
		t.Fatalf("load error: %v", m.err)
	}
	return m
}

func TestCatalogLoadsVertical(t *testing.T) {
	m := seedDestinations(t)
	if len(m.items) != 2 {
		t.Fatalf("items = %+v", m.items)
	}
	view := m.View()
	for _, want := range []string{"Old Town", "heritage · North", "Cobbled lanes", "West Lake"} {
		if !strings.Contains(view, want) {
			t.Errorf("catalog view missing %q:\n%s", want, view)
		}
	}
}

func TestCatalogEnterOpensDetail(t *testing.T) {
	m := seedDestinations(t)
	m, _ = m.Update(keyMsg("j"))
	_, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("enter returned no command")
	}
	nav, ok := cmd().(navigateMsg)
	if !ok || nav.to != viewDetail || nav.vertical != domain.VerticalTourism || nav.id != 2 {
		t.Errorf("navigate = %+v", nav)
	}
}

func TestCatalogReopenKeepsCursor(t *testing.T) {
	m := seedDestinations(t)
	m, _ = m.Update(keyMsg("j"))
	m, _ = m.open(domain.VerticalTourism)
	if m.cursor != 1 || len(m.items) != 2 {
		t.Errorf("cursor = %d items = %d after reopen", m.cursor, len(m.items))
	}
	m, _ = m.open(domain.VerticalEvents)
	if m.cursor != 0 || m.items != nil {
		t.Errorf("switching vertical kept cursor %d items %d", m.cursor, len(m.items))
	}
}

func TestCatalogIgnoresOtherVertical(t *testing.T) {
	m := newCatalogModel(nil)
	m.vertical = domain.VerticalRestaurants
	m.loading = true
	m, _ = m.Update(catalogLoadedMsg{vertical: domain.VerticalEvents, items: []listing{{ID: 9}}})
	if len(m.items) != 0 || !m.loading {
		t.Errorf("applied a result for another vertical: %+v", m.items)
	}
}

func TestCatalogEmpty(t *testing.T) {
	m := newCatalogModel(nil)
	m.vertical = domain.VerticalTransport
	m, _ = m.Update(catalogLoadedMsg{vertical: domain.VerticalTransport})
	if !strings.Contains(m.View(), "nothing listed yet") {
		t.Errorf("empty view = %q", m.View())
	}
}
