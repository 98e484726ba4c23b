package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/marcus/ccsearch/internal/app"
	"github.com/marcus/ccsearch/internal/search"
	"github.com/marcus/ccsearch/internal/styles"
)

// MessageDetail renders a single message's full, wrapped body along
// with a small header of metadata, and owns the scroll offset into
// that wrapped body. Assistant and system message bodies are rendered
// as markdown via glamour, since that is where Claude's own replies
// carry headings, code fences, and lists; user turns are almost always
// plain text and are wrapped directly.
type MessageDetail struct {
	width, height int

	mdRenderer      *glamour.TermRenderer
	mdRendererWidth int
}

// NewMessageDetail builds a detail view with the given viewport size.
func NewMessageDetail(width, height int) *MessageDetail {
	d := &MessageDetail{width: width, height: height}
	d.ensureRenderer()
	return d
}

// SetSize updates the viewport dimensions.
func (d *MessageDetail) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// ensureRenderer (re)builds the glamour renderer when the width it was
// last built for no longer matches, mirroring the teacher's
// conversations plugin building one GlamourRenderer and reusing it
// across renders rather than constructing one per frame.
func (d *MessageDetail) ensureRenderer() {
	if d.mdRenderer != nil && d.mdRendererWidth == d.width {
		return
	}
	width := d.width
	if width < 1 {
		width = 1
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		d.mdRenderer = nil
		return
	}
	d.mdRenderer = r
	d.mdRendererWidth = width
}

// renderBody returns the lines to display for r's text: markdown-
// rendered for assistant/system roles when the renderer is available,
// plain grapheme-wrapped text otherwise.
func (d *MessageDetail) renderBody(r search.Result) []string {
	if r.Role == "assistant" || r.Role == "system" {
		d.ensureRenderer()
		if d.mdRenderer != nil {
			if out, err := d.mdRenderer.Render(r.Text); err == nil {
				return strings.Split(strings.TrimRight(out, "\n"), "\n")
			}
		}
	}
	return WrapText(r.Text, d.width)
}

var detailKeys = struct {
	up, down, pageUp, pageDown                             key.Binding
	back, enterSession                                     key.Binding
	copyBody, copyJSON, copySession, copyFile, copyProject key.Binding
}{
	up:           key.NewBinding(key.WithKeys("up", "k")),
	down:         key.NewBinding(key.WithKeys("down", "j")),
	pageUp:       key.NewBinding(key.WithKeys("pgup", "ctrl+u")),
	pageDown:     key.NewBinding(key.WithKeys("pgdown", "ctrl+d")),
	back:         key.NewBinding(key.WithKeys("esc", "q")),
	enterSession: key.NewBinding(key.WithKeys("ctrl+s")),
	copyBody:     key.NewBinding(key.WithKeys("c")),
	copyJSON:     key.NewBinding(key.WithKeys("C")),
	copySession:  key.NewBinding(key.WithKeys("i")),
	copyFile:     key.NewBinding(key.WithKeys("f")),
	copyProject:  key.NewBinding(key.WithKeys("p")),
}

// HandleKey handles scroll navigation, session-viewer entry, and the
// copy shortcuts from the keybinding table: c/C/i/f/p copy the
// message body / raw JSON / session id / file path / project path.
// It does not own DetailScroll itself — Update clamps and stores it —
// but it does compute the target scroll value since it is what knows
// the viewport height and the wrapped-line count for the current
// result.
func (d *MessageDetail) HandleKey(msg tea.KeyMsg, s app.UIState) (app.Message, bool) {
	if s.SelectedResult == nil {
		return nil, false
	}
	r := *s.SelectedResult

	switch {
	case key.Matches(msg, detailKeys.back):
		return app.ExitToSearch{}, true
	case key.Matches(msg, detailKeys.enterSession):
		return app.EnterSessionViewer{}, true
	case key.Matches(msg, detailKeys.copyBody):
		return app.CopyToClipboard{Content: r.Text}, true
	case key.Matches(msg, detailKeys.copyJSON):
		return app.CopyToClipboard{Content: rawOrFallback(r)}, true
	case key.Matches(msg, detailKeys.copySession):
		return app.CopyToClipboard{Content: r.SessionID}, true
	case key.Matches(msg, detailKeys.copyFile):
		return app.CopyToClipboard{Content: r.File}, true
	case key.Matches(msg, detailKeys.copyProject):
		return app.CopyToClipboard{Content: r.CWD}, true
	case key.Matches(msg, detailKeys.up):
		return d.scrollTo(r, s.DetailScroll-1), true
	case key.Matches(msg, detailKeys.down):
		return d.scrollTo(r, s.DetailScroll+1), true
	case key.Matches(msg, detailKeys.pageUp):
		return d.scrollTo(r, s.DetailScroll-d.height), true
	case key.Matches(msg, detailKeys.pageDown):
		return d.scrollTo(r, s.DetailScroll+d.height), true
	}
	return nil, false
}

// rawOrFallback returns r's raw JSON line, or — when a synthesized
// result has none — a small formatted summary so the C binding always
// has something to copy. Mirrors original_source's ResultDetail
// falling back to a generated "File: ...\nUUID: ...\nSession ID: ..."
// block when raw_json is absent.
func rawOrFallback(r search.Result) string {
	if len(r.Raw) > 0 {
		return string(r.Raw)
	}
	return fmt.Sprintf("File: %s\nUUID: %s\nSession ID: %s\nRole: %s\nTimestamp: %s",
		r.File, r.UUID, r.SessionID, r.Role, r.Timestamp)
}

func (d *MessageDetail) scrollTo(r search.Result, offset int) app.Message {
	if offset < 0 {
		offset = 0
	}
	maxOffset := d.LineCount(r) - d.height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	return app.SetDetailScroll{Offset: offset}
}

// Render draws the header and wrapped, scrolled body.
func (d *MessageDetail) Render(s app.UIState) string {
	if s.SelectedResult == nil {
		return styles.Muted.Render("No message selected")
	}
	r := *s.SelectedResult

	header := fmt.Sprintf("%s  %s  session %s", r.Role, r.Timestamp, r.SessionID)
	if r.HasTools {
		header += "  [tools]"
	}
	if r.HasThinking {
		header += "  [thinking]"
	}

	lines := d.renderBody(r)
	start := s.DetailScroll
	if start < 0 {
		start = 0
	}
	maxStart := len(lines) - d.height
	if maxStart < 0 {
		maxStart = 0
	}
	if start > maxStart {
		start = maxStart
	}
	end := start + d.height
	if end > len(lines) {
		end = len(lines)
	}

	var sb strings.Builder
	sb.WriteString(styles.PanelHeader.Render(header))
	sb.WriteString("\n")
	sb.WriteString(strings.Join(lines[start:end], "\n"))
	return sb.String()
}

// LineCount returns the number of wrapped lines for r's text at the
// detail view's current width, used by scrollTo to clamp the offset it
// emits in SetDetailScroll.
func (d *MessageDetail) LineCount(r search.Result) int {
	return len(d.renderBody(r))
}

// WrapText wraps s to fit within width display columns, breaking at
// grapheme-cluster boundaries via rivo/uniseg so combining marks and
// wide runes never split across lines, and falling back to
// mattn/go-runewidth for column math. Grounded on the teacher's
// lack of a wrapping helper of its own for arbitrary message bodies —
// the teacher only ever wraps short, ASCII-heavy UI chrome — so this
// is adopted from the wider pack's approach to displaying full
// message content (see original_source/src/interactive_ratatui's text
// wrapping for the equivalent concern).
func WrapText(s string, width int) []string {
	if width < 1 {
		width = 1
	}
	var lines []string
	for _, paragraph := range strings.Split(s, "\n") {
		if paragraph == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, wrapParagraph(paragraph, width)...)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

func wrapParagraph(p string, width int) []string {
	var lines []string
	var current strings.Builder
	currentWidth := 0

	gr := uniseg.NewGraphemes(p)
	for gr.Next() {
		cluster := gr.Str()
		w := runewidth.StringWidth(cluster)
		if currentWidth+w > width && currentWidth > 0 {
			lines = append(lines, current.String())
			current.Reset()
			currentWidth = 0
		}
		current.WriteString(cluster)
		currentWidth += w
	}
	lines = append(lines, current.String())
	return lines
}
