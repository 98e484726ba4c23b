package render

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/marcus/ccsearch/internal/app"
	"github.com/marcus/ccsearch/internal/corpus"
	"github.com/marcus/ccsearch/internal/styles"
)

// SessionViewer is the hybrid list+search view over one session's raw
// lines: "/" toggles a search-input mode (grounded on the teacher's
// own modal-search convention of entering a text-entry sub-mode rather
// than always-on filtering, see handleContentSearchKey), Tab cycles
// the role filter, Ctrl+O toggles sort order, Ctrl+T flips the UI's
// PreviewEnabled flag (the viewer draws no preview pane).
type SessionViewer struct {
	width, height int
	searching     bool
	filterInput   textinput.Model
}

// NewSessionViewer builds a session viewer with the given viewport size.
func NewSessionViewer(width, height int) *SessionViewer {
	ti := textinput.New()
	ti.Prompt = "/"
	return &SessionViewer{width: width, height: height, filterInput: ti}
}

// SetSize updates the viewport dimensions.
func (v *SessionViewer) SetSize(width, height int) {
	v.width = width
	v.height = height
}

var sessionKeys = struct {
	up, down, pageUp, pageDown key.Binding
	search, tab, order, preview, back key.Binding
	toDetail                          key.Binding
}{
	up:       key.NewBinding(key.WithKeys("up", "k")),
	down:     key.NewBinding(key.WithKeys("down", "j")),
	pageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u")),
	pageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d")),
	search:   key.NewBinding(key.WithKeys("/")),
	tab:      key.NewBinding(key.WithKeys("tab")),
	order:    key.NewBinding(key.WithKeys("ctrl+o")),
	preview:  key.NewBinding(key.WithKeys("ctrl+t")),
	back:     key.NewBinding(key.WithKeys("esc")),
	toDetail: key.NewBinding(key.WithKeys("enter")),
}

// HandleKey processes a key event. When in search-entry mode, printable
// keys and editing keys go to the filter input and emit
// SessionQueryChanged; otherwise keys drive list navigation and mode
// toggles.
func (v *SessionViewer) HandleKey(msg tea.KeyMsg, s app.SessionState, rawLines []string) (app.Message, bool) {
	if v.searching {
		if key.Matches(msg, key.NewBinding(key.WithKeys("esc", "enter"))) {
			v.searching = false
			return nil, true
		}
		before := v.filterInput.Value()
		var cmd tea.Cmd
		v.filterInput, cmd = v.filterInput.Update(msg)
		_ = cmd
		after := v.filterInput.Value()
		if after != before {
			return app.SessionQueryChanged{Text: after}, true
		}
		return nil, true
	}

	switch {
	case key.Matches(msg, sessionKeys.search):
		v.searching = true
		v.filterInput.Focus()
		v.filterInput.SetValue(s.Query)
		return nil, true

	case key.Matches(msg, sessionKeys.back):
		return app.ExitToSearch{}, true

	case key.Matches(msg, sessionKeys.tab):
		return app.ToggleSessionRoleFilter{}, true

	case key.Matches(msg, sessionKeys.order):
		return app.ToggleSessionOrder{}, true

	case key.Matches(msg, sessionKeys.preview):
		return app.TogglePreview{}, true

	case key.Matches(msg, sessionKeys.toDetail):
		return v.enterDetail(s, rawLines), true

	case key.Matches(msg, sessionKeys.up):
		return v.move(s, s.Selected-1), true
	case key.Matches(msg, sessionKeys.down):
		return v.move(s, s.Selected+1), true
	case key.Matches(msg, sessionKeys.pageUp):
		return v.move(s, s.Selected-v.listHeight()), true
	case key.Matches(msg, sessionKeys.pageDown):
		return v.move(s, s.Selected+v.listHeight()), true
	}
	return nil, false
}

func (v *SessionViewer) listHeight() int {
	h := v.height
	if h < 1 {
		h = 1
	}
	return h
}

func (v *SessionViewer) move(s app.SessionState, target int) app.Message {
	n := len(s.FilteredIndices)
	if target < 0 {
		target = 0
	}
	if target >= n {
		target = n - 1
	}
	if target < 0 {
		target = 0
	}

	offset := s.ScrollOffset
	if target < offset {
		offset = target
	}
	if v.listHeight() > 0 && target >= offset+v.listHeight() {
		offset = target - v.listHeight() + 1
	}
	if offset < 0 {
		offset = 0
	}
	return app.SessionNavigated{Selected: target, Offset: offset}
}

func (v *SessionViewer) enterDetail(s app.SessionState, rawLines []string) app.Message {
	if s.Selected < 0 || s.Selected >= len(s.FilteredIndices) {
		return nil
	}
	idx := s.FilteredIndices[s.Selected]
	if idx < 0 || idx >= len(rawLines) {
		return nil
	}
	return app.EnterMessageDetailFromSession{
		RawJSON:   []byte(rawLines[idx]),
		File:      s.FilePath,
		SessionID: s.SessionID,
	}
}

// Render draws the filter bar (if active), then the visible window of
// filtered session lines.
func (v *SessionViewer) Render(s app.SessionState, rawLines []string) string {
	var sb strings.Builder
	if v.searching {
		sb.WriteString(styles.PanelActive.Width(v.width).Render(v.filterInput.View()))
		sb.WriteString("\n")
	}

	if len(s.FilteredIndices) == 0 {
		sb.WriteString(styles.Muted.Render("No matching lines"))
		return sb.String()
	}

	start := s.ScrollOffset
	if start > len(s.FilteredIndices) {
		start = len(s.FilteredIndices)
	}
	end := start + v.listHeight()
	if end > len(s.FilteredIndices) {
		end = len(s.FilteredIndices)
	}

	parsed := parseRawLines(rawLines)
	for i := start; i < end; i++ {
		if i > start {
			sb.WriteString("\n")
		}
		lineIdx := s.FilteredIndices[i]
		sb.WriteString(v.renderLine(parsed, lineIdx, i == s.Selected))
	}
	return sb.String()
}

type rawSessionRow struct {
	row string
}

func parseRawLines(rawLines []string) []rawSessionRow {
	out := make([]rawSessionRow, len(rawLines))
	for i, l := range rawLines {
		rec, ok := corpus.ParseLine("", []byte(l))
		row := ""
		if ok {
			row = app.FormatSessionRow(rec.Timestamp, rec.Role, rec.Text)
		}
		out[i] = rawSessionRow{row: row}
	}
	return out
}

func (v *SessionViewer) renderLine(parsed []rawSessionRow, idx int, selected bool) string {
	if idx < 0 || idx >= len(parsed) {
		return ""
	}
	row := runewidth.Truncate(parsed[idx].row, v.width, "...")
	if selected {
		if w := runewidth.StringWidth(row); w < v.width {
			row += strings.Repeat(" ", v.width-w)
		}
		return styles.ListItemSelected.Render(row)
	}
	return styles.Body.Render(row)
}
