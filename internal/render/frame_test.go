package render

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/ccsearch/internal/app"
)

func TestFrameHandleKeyGlobalNavigation(t *testing.T) {
	f := NewFrame(80, 24)
	msg, ok := f.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlLeft}, app.State{})
	if !ok {
		t.Fatalf("expected ctrl+left to be handled")
	}
	if _, ok := msg.(app.NavigateBack); !ok {
		t.Fatalf("expected NavigateBack, got %+v", msg)
	}
}

func TestFrameHandleKeyQuestionMarkOpensHelpInSearchMode(t *testing.T) {
	f := NewFrame(80, 24)
	s := app.State{NavigationState: app.NavigationState{Mode: app.ModeSearch}}
	msg, ok := f.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")}, s)
	if !ok {
		t.Fatalf("expected ? to be handled in search mode")
	}
	if _, ok := msg.(app.ShowHelp); !ok {
		t.Fatalf("expected ShowHelp, got %+v", msg)
	}
}

func TestFrameHandleKeyHelpModeClosesOnAnyKey(t *testing.T) {
	f := NewFrame(80, 24)
	s := app.State{NavigationState: app.NavigationState{Mode: app.ModeHelp}}
	msg, ok := f.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, s)
	if !ok {
		t.Fatalf("expected help mode to consume the key")
	}
	if _, ok := msg.(app.CloseHelp); !ok {
		t.Fatalf("expected CloseHelp, got %+v", msg)
	}
}

func TestFrameSetSizeReservesHeaderAndFooter(t *testing.T) {
	f := NewFrame(80, 24)
	f.SetSize(80, 24)
	if f.height != 24 {
		t.Fatalf("expected height stored, got %d", f.height)
	}
	if want := 24 - headerHeight - footerHeight; f.MessageDetail.height != want {
		t.Fatalf("expected body height %d after reserving header and footer, got %d", want, f.MessageDetail.height)
	}
}

func TestFrameRenderIncludesHeaderAndFooter(t *testing.T) {
	f := NewFrame(80, 24)
	out := f.Render(app.State{})
	if out == "" {
		t.Fatalf("expected non-empty render")
	}
	if !strings.Contains(out, "ccsearch") {
		t.Fatalf("expected header title in render, got %q", out)
	}
	if !strings.Contains(out, "? for help") {
		t.Fatalf("expected footer hint in render, got %q", out)
	}
}
