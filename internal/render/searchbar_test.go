package render

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/ccsearch/internal/app"
)

func TestSearchBarHandleKeyEmitsQueryChanged(t *testing.T) {
	b := NewSearchBar()
	b.SetWidth(40)

	msg, ok := b.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if !ok {
		t.Fatalf("expected a rune key to be handled")
	}
	qc, ok := msg.(app.QueryChanged)
	if !ok || qc.Text != "a" {
		t.Fatalf("expected QueryChanged{Text: \"a\"}, got %+v", msg)
	}
}

func TestSearchBarHandleKeyNoChangeReturnsFalse(t *testing.T) {
	b := NewSearchBar()
	b.SetWidth(40)

	_, ok := b.HandleKey(tea.KeyMsg{Type: tea.KeyLeft})
	if ok {
		t.Fatalf("expected a no-op cursor move to report no message")
	}
}

func TestSearchBarSetValueDoesNotEmitMessage(t *testing.T) {
	b := NewSearchBar()
	b.SetWidth(40)
	b.SetValue("restored")
	if b.input.Value() != "restored" {
		t.Fatalf("expected value restored, got %q", b.input.Value())
	}
}
