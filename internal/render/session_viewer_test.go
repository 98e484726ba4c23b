package render

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/ccsearch/internal/app"
)

func TestSessionViewerSearchKeyEntersSearchMode(t *testing.T) {
	v := NewSessionViewer(40, 5)
	_, ok := v.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")}, app.SessionState{}, nil)
	if !ok {
		t.Fatalf("expected / to be handled")
	}
	if !v.searching {
		t.Fatalf("expected searching mode to be entered")
	}
}

func TestSessionViewerEscLeavesSearchModeWithoutMessage(t *testing.T) {
	v := NewSessionViewer(40, 5)
	v.searching = true
	v.filterInput.Focus()
	msg, ok := v.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, app.SessionState{}, nil)
	if !ok {
		t.Fatalf("expected esc to be handled")
	}
	if msg != nil {
		t.Fatalf("expected no app.Message on exiting search mode, got %+v", msg)
	}
	if v.searching {
		t.Fatalf("expected searching mode to be cleared")
	}
}

func TestSessionViewerMoveTracksScrollOffset(t *testing.T) {
	v := NewSessionViewer(40, 3)
	s := app.SessionState{FilteredIndices: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}}

	msg := v.move(s, 5)
	nav, ok := msg.(app.SessionNavigated)
	if !ok {
		t.Fatalf("expected SessionNavigated, got %+v", msg)
	}
	if nav.Selected != 5 || nav.Offset != 3 {
		t.Fatalf("expected selected=5 offset=3, got %+v", nav)
	}
}

func TestSessionViewerEnterDetailBuildsSyntheticEntry(t *testing.T) {
	v := NewSessionViewer(40, 5)
	s := app.SessionState{FilteredIndices: []int{2}, Selected: 0, FilePath: "f.jsonl", SessionID: "s1"}
	raw := []string{"a", "b", `{"type":"user"}`}

	msg := v.enterDetail(s, raw)
	entry, ok := msg.(app.EnterMessageDetailFromSession)
	if !ok {
		t.Fatalf("expected EnterMessageDetailFromSession, got %+v", msg)
	}
	if string(entry.RawJSON) != raw[2] {
		t.Fatalf("expected raw line at filtered index 2, got %q", entry.RawJSON)
	}
}

func TestSessionViewerRenderShowsNoMatchingLines(t *testing.T) {
	v := NewSessionViewer(40, 5)
	out := v.Render(app.SessionState{}, nil)
	if !strings.Contains(out, "No matching lines") {
		t.Fatalf("expected empty-state message, got %q", out)
	}
}
