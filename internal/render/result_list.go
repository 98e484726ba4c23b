package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/marcus/ccsearch/internal/app"
	"github.com/marcus/ccsearch/internal/search"
	"github.com/marcus/ccsearch/internal/styles"
)

// ResultList virtualizes the rendering of search results: it only
// ever formats the rows that fit in the viewport, scrolling to keep
// the selection visible, grounded on the scroll/viewport bookkeeping
// in the teacher's content search results section (see
// contentSearchResultsSection in internal/plugins/conversations).
type ResultList struct {
	height int
	width  int
}

// NewResultList builds a result list with the given viewport size.
func NewResultList(width, height int) *ResultList {
	return &ResultList{width: width, height: height}
}

// SetSize updates the viewport dimensions.
func (l *ResultList) SetSize(width, height int) {
	l.width = width
	l.height = height
}

var resultListKeys = struct {
	up, down, pageUp, pageDown, home, end key.Binding
	enter                                 key.Binding
}{
	up:       key.NewBinding(key.WithKeys("up", "k", "ctrl+p")),
	down:     key.NewBinding(key.WithKeys("down", "j", "ctrl+n")),
	pageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u")),
	pageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d")),
	home:     key.NewBinding(key.WithKeys("home")),
	end:      key.NewBinding(key.WithKeys("end")),
	enter:    key.NewBinding(key.WithKeys("enter")),
}

// HandleKey interprets navigation keys against the current search
// state, returning a SelectResult or EnterMessageDetail message. It
// never mutates state directly — Update owns that — it only computes
// the new selected index and a scroll offset that keeps it visible,
// since it is the one place that knows the viewport height.
func (l *ResultList) HandleKey(msg tea.KeyMsg, s app.SearchState) (app.Message, bool) {
	n := len(s.Results)
	if n == 0 {
		return nil, false
	}

	switch {
	case key.Matches(msg, resultListKeys.enter):
		return app.EnterMessageDetail{}, true

	case key.Matches(msg, resultListKeys.up):
		return l.move(s, s.Selected-1), true

	case key.Matches(msg, resultListKeys.down):
		return l.move(s, s.Selected+1), true

	case key.Matches(msg, resultListKeys.pageUp):
		return l.move(s, s.Selected-l.pageSize()), true

	case key.Matches(msg, resultListKeys.pageDown):
		return l.move(s, s.Selected+l.pageSize()), true

	case key.Matches(msg, resultListKeys.home):
		return l.move(s, 0), true

	case key.Matches(msg, resultListKeys.end):
		return l.move(s, n-1), true
	}

	return nil, false
}

func (l *ResultList) pageSize() int {
	if l.height < 1 {
		return 1
	}
	return l.height
}

func (l *ResultList) move(s app.SearchState, target int) app.Message {
	n := len(s.Results)
	if target < 0 {
		target = 0
	}
	if target >= n {
		target = n - 1
	}

	offset := s.ScrollOffset
	if target < offset {
		offset = target
	}
	if l.height > 0 && target >= offset+l.height {
		offset = target - l.height + 1
	}
	if offset < 0 {
		offset = 0
	}

	return app.SelectResult{Index: target, ScrollOffset: offset}
}

// Render draws the visible window of results.
func (l *ResultList) Render(s app.SearchState) string {
	if len(s.Results) == 0 {
		if s.IsSearching {
			return styles.Muted.Render("Searching...")
		}
		if s.Query == "" {
			return styles.Muted.Render("Type a query to search your conversation history.")
		}
		return styles.Muted.Render("No matches found")
	}

	start := s.ScrollOffset
	if start < 0 {
		start = 0
	}
	if start > len(s.Results) {
		start = len(s.Results)
	}
	end := start + l.height
	if end > len(s.Results) {
		end = len(s.Results)
	}

	var sb strings.Builder
	for i := start; i < end; i++ {
		if i > start {
			sb.WriteString("\n")
		}
		sb.WriteString(l.renderRow(s.Results[i], i == s.Selected, s.Query))
	}
	return sb.String()
}

func (l *ResultList) renderRow(r search.Result, selected bool, query string) string {
	ts := formatRowTime(r.Timestamp)
	role := fmt.Sprintf("[%-9s]", r.Role)
	text := strings.ReplaceAll(strings.TrimSpace(r.Text), "\n", " ")

	fixed := runewidth.StringWidth(ts) + 1 + runewidth.StringWidth(role) + 1
	textWidth := l.width - fixed
	if textWidth < 10 {
		textWidth = 10
	}
	text = runewidth.Truncate(text, textWidth, "...")

	line := fmt.Sprintf("%s %s %s", ts, role, text)
	if selected {
		padded := line
		if w := runewidth.StringWidth(padded); w < l.width {
			padded += strings.Repeat(" ", l.width-w)
		}
		return styles.ListItemSelected.Render(padded)
	}

	var sb strings.Builder
	sb.WriteString(styles.Muted.Render(ts))
	sb.WriteString(" ")
	sb.WriteString(roleStyle(r.Role).Render(role))
	sb.WriteString(" ")
	sb.WriteString(highlightQuery(text, query))
	return sb.String()
}

func roleStyle(role string) interface{ Render(...string) string } {
	switch role {
	case "user":
		return styles.Body
	case "assistant":
		return styles.Subtitle
	default:
		return styles.Muted
	}
}

func highlightQuery(text, query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return styles.Body.Render(text)
	}
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)
	idx := strings.Index(lowerText, lowerQuery)
	if idx < 0 {
		return styles.Body.Render(text)
	}
	before := text[:idx]
	match := text[idx : idx+len(query)]
	after := text[idx+len(query):]
	return styles.Body.Render(before) + styles.SearchMatch.Render(match) + styles.Body.Render(after)
}

func formatRowTime(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return "--/-- --:--"
	}
	return t.Local().Format("01/02 15:04")
}
