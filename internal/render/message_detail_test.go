package render

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/ccsearch/internal/app"
	"github.com/marcus/ccsearch/internal/search"
)

func TestWrapTextBreaksOnWidth(t *testing.T) {
	lines := WrapText("abcdefghij", 4)
	if len(lines) != 3 {
		t.Fatalf("expected 3 wrapped lines, got %d (%v)", len(lines), lines)
	}
	if lines[0] != "abcd" || lines[2] != "ij" {
		t.Fatalf("unexpected wrap result: %v", lines)
	}
}

func TestWrapTextPreservesParagraphBreaks(t *testing.T) {
	lines := WrapText("one\n\ntwo", 10)
	if len(lines) != 3 || lines[1] != "" {
		t.Fatalf("expected a blank middle line for the blank paragraph, got %v", lines)
	}
}

func TestMessageDetailScrollToClampsToLineCount(t *testing.T) {
	d := NewMessageDetail(80, 2)
	r := search.Result{Role: "user", Text: "one\ntwo\nthree\nfour"}

	msg := d.scrollTo(r, 100)
	set, ok := msg.(app.SetDetailScroll)
	if !ok {
		t.Fatalf("expected SetDetailScroll, got %+v", msg)
	}
	maxOffset := d.LineCount(r) - d.height
	if set.Offset != maxOffset {
		t.Fatalf("expected offset clamped to %d, got %d", maxOffset, set.Offset)
	}

	msg = d.scrollTo(r, -5)
	set = msg.(app.SetDetailScroll)
	if set.Offset != 0 {
		t.Fatalf("expected offset clamped to 0, got %d", set.Offset)
	}
}

func TestMessageDetailRenderShowsHeaderAndBody(t *testing.T) {
	d := NewMessageDetail(80, 10)
	r := search.Result{Role: "user", Timestamp: "2024-01-01T00:00:00Z", SessionID: "s1", Text: "hello there"}
	s := app.UIState{SelectedResult: &r}

	out := d.Render(s)
	if !strings.Contains(out, "session s1") {
		t.Fatalf("expected header with session id, got %q", out)
	}
	if !strings.Contains(out, "hello there") {
		t.Fatalf("expected body text, got %q", out)
	}
}

func TestMessageDetailRenderHandlesNoSelection(t *testing.T) {
	d := NewMessageDetail(80, 10)
	out := d.Render(app.UIState{})
	if !strings.Contains(out, "No message selected") {
		t.Fatalf("expected placeholder text, got %q", out)
	}
}

func TestMessageDetailUserBodyUsesPlainWrap(t *testing.T) {
	d := NewMessageDetail(80, 10)
	r := search.Result{Role: "user", Text: "plain body"}
	lines := d.renderBody(r)
	if strings.Join(lines, "\n") != "plain body" {
		t.Fatalf("expected user text wrapped verbatim, got %v", lines)
	}
}

func TestMessageDetailAssistantBodyRendersNonEmpty(t *testing.T) {
	d := NewMessageDetail(80, 10)
	r := search.Result{Role: "assistant", Text: "# heading\n\nsome body text"}
	lines := d.renderBody(r)
	if len(lines) == 0 || strings.Join(lines, "") == "" {
		t.Fatalf("expected non-empty rendered markdown body, got %v", lines)
	}
}

func TestMessageDetailHandleKeyCopyShortcuts(t *testing.T) {
	d := NewMessageDetail(80, 10)
	r := search.Result{Text: "body text", SessionID: "sess-1", File: "/tmp/a.jsonl", CWD: "/proj"}
	s := app.UIState{SelectedResult: &r}

	cases := []struct {
		key  string
		want string
	}{
		{"c", "body text"},
		{"i", "sess-1"},
		{"f", "/tmp/a.jsonl"},
		{"p", "/proj"},
	}
	for _, c := range cases {
		msg, ok := d.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(c.key)}, s)
		if !ok {
			t.Fatalf("expected key %q to be handled", c.key)
		}
		cp, ok := msg.(app.CopyToClipboard)
		if !ok || cp.Content != c.want {
			t.Fatalf("key %q: expected CopyToClipboard{%q}, got %+v", c.key, c.want, msg)
		}
	}
}

func TestMessageDetailHandleKeyCopyJSONFallsBackWhenRawEmpty(t *testing.T) {
	d := NewMessageDetail(80, 10)
	r := search.Result{UUID: "u1", File: "/tmp/a.jsonl"}
	s := app.UIState{SelectedResult: &r}

	msg, ok := d.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("C")}, s)
	if !ok {
		t.Fatalf("expected C to be handled")
	}
	cp := msg.(app.CopyToClipboard)
	if !strings.Contains(cp.Content, "UUID: u1") {
		t.Fatalf("expected fallback formatted summary, got %q", cp.Content)
	}
}

func TestMessageDetailHandleKeyEnterSession(t *testing.T) {
	d := NewMessageDetail(80, 10)
	r := search.Result{SessionID: "sess-1"}
	s := app.UIState{SelectedResult: &r}

	msg, ok := d.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlS}, s)
	if !ok {
		t.Fatalf("expected ctrl+s to be handled")
	}
	if _, ok := msg.(app.EnterSessionViewer); !ok {
		t.Fatalf("expected EnterSessionViewer, got %+v", msg)
	}
}
