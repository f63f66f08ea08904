// Package textutil prepares backend-supplied text for the terminal.
// Descriptions and reviews may carry HTML from the portal's admin editor.
package textutil

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// Plainer strips markup from backend text. It is safe for concurrent use.
type Plainer struct {
	policy *bluemonday.Policy
}

// NewPlainer returns a Plainer that keeps no tags at all.
func NewPlainer() *Plainer {
	return &Plainer{policy: bluemonday.StrictPolicy()}
}

var defaultPlainer = NewPlainer()

// Plain removes markup, decodes entities and collapses whitespace.
func Plain(s string) string {
	return defaultPlainer.Plain(s)
}

// Plain removes markup, decodes entities and collapses whitespace.
func (p *Plainer) Plain(s string) string {
	if s == "" {
		return ""
	}
	// Block tags become spaces so adjacent paragraphs don't run together.
	s = strings.NewReplacer("<br", " <br", "</p>", "</p> ", "</li>", "</li> ").Replace(s)
	out := html.UnescapeString(p.policy.Sanitize(s))
	return strings.Join(strings.Fields(out), " ")
}

// Truncate shortens s to at most max runes, ending with an ellipsis when cut.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:max-1]), " ") + "…"
}
