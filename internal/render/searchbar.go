// Package render holds the presentation layer: components that turn
// app.State into a terminal frame and translate tea.KeyMsg into
// app.Message. Components own only ephemeral presentation state —
// cursor position, scroll offset, viewport dimensions — never
// anything app.State already tracks, per the renderer contract in
// SPEC_FULL.md §8.
package render

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/marcus/ccsearch/internal/app"
	"github.com/marcus/ccsearch/internal/styles"
)

// SearchBar is the query input line. It wraps bubbles/textinput for
// readline-style editing (left/right/home/end/word movement/kill-to-
// end) rather than hand-rolling cursor math, matching how the teacher
// wraps textinput.Model for every other single-line field in the
// dashboard.
type SearchBar struct {
	input textinput.Model
	width int
}

// NewSearchBar builds a focused, empty search bar.
func NewSearchBar() *SearchBar {
	ti := textinput.New()
	ti.Placeholder = "search query (AND / OR / NOT, \"quotes\", /regex/i)"
	ti.Prompt = "> "
	ti.Focus()
	return &SearchBar{input: ti}
}

// SetWidth updates the rendered width of the input line.
func (b *SearchBar) SetWidth(w int) {
	b.width = w
	b.input.Width = w - len([]rune(b.input.Prompt)) - 1
	if b.input.Width < 1 {
		b.input.Width = 1
	}
}

// SetValue replaces the bar's text without emitting a message, used
// when restoring a navigation snapshot.
func (b *SearchBar) SetValue(v string) {
	b.input.SetValue(v)
}

// HandleKey feeds a key event to the underlying textinput and reports
// a QueryChanged message when the value actually changed.
func (b *SearchBar) HandleKey(msg tea.KeyMsg) (app.Message, bool) {
	before := b.input.Value()
	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	_ = cmd // textinput's blink command carries no state we need here
	after := b.input.Value()
	if after == before {
		return nil, false
	}
	return app.QueryChanged{Text: after}, true
}

// Render draws the search bar as a single styled line.
func (b *SearchBar) Render() string {
	return styles.PanelActive.Width(b.width).Render(b.input.View())
}
