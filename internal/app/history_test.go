package app

import "testing"

func snap(mode Mode) NavigationState { return NavigationState{Mode: mode} }

func TestNavigationHistoryPushAndBack(t *testing.T) {
	h := NewNavigationHistory(3)
	h.Push(snap(ModeSearch))
	h.Push(snap(ModeMessageDetail))
	if h.Len() != 2 || h.Cursor() != 1 {
		t.Fatalf("unexpected state: len=%d cursor=%d", h.Len(), h.Cursor())
	}
	back, ok := h.GoBack()
	if !ok || back.Mode != ModeSearch {
		t.Fatalf("expected to go back to search, got %+v ok=%v", back, ok)
	}
}

func TestNavigationHistoryForwardAfterBack(t *testing.T) {
	h := NewNavigationHistory(3)
	h.Push(snap(ModeSearch))
	h.Push(snap(ModeMessageDetail))
	h.GoBack()
	fwd, ok := h.GoForward()
	if !ok || fwd.Mode != ModeMessageDetail {
		t.Fatalf("expected forward to message detail, got %+v ok=%v", fwd, ok)
	}
}

func TestNavigationHistoryPushTruncatesForwardTail(t *testing.T) {
	h := NewNavigationHistory(10)
	h.Push(snap(ModeSearch))
	h.Push(snap(ModeMessageDetail))
	h.Push(snap(ModeSessionViewer))
	h.GoBack() // cursor at MessageDetail
	h.GoBack() // cursor at Search
	h.Push(snap(ModeHelp))
	if h.Len() != 2 {
		t.Fatalf("expected forward tail truncated, len=%d", h.Len())
	}
	if _, ok := h.GoForward(); ok {
		t.Fatalf("expected no forward entry after truncation")
	}
}

func TestNavigationHistoryCapacityEviction(t *testing.T) {
	h := NewNavigationHistory(2)
	h.Push(snap(ModeSearch))
	h.Push(snap(ModeMessageDetail))
	h.Push(snap(ModeSessionViewer))
	if h.Len() != 2 {
		t.Fatalf("expected capacity-bounded length 2, got %d", h.Len())
	}
	cur, _ := h.Current()
	if cur.Mode != ModeSessionViewer {
		t.Fatalf("expected cursor at newest entry, got %v", cur.Mode)
	}
	back, ok := h.GoBack()
	if !ok || back.Mode != ModeMessageDetail {
		t.Fatalf("expected oldest entry evicted, back=%+v ok=%v", back, ok)
	}
}

func TestNavigationHistoryUpdateCurrent(t *testing.T) {
	h := NewNavigationHistory(5)
	h.Push(snap(ModeSearch))
	h.UpdateCurrent(NavigationState{Mode: ModeSearch, Search: SearchState{Query: "updated"}})
	cur, ok := h.Current()
	if !ok || cur.Search.Query != "updated" {
		t.Fatalf("expected updated current entry, got %+v", cur)
	}
	if h.Len() != 1 {
		t.Fatalf("UpdateCurrent should not change length, got %d", h.Len())
	}
}

func TestNavigationHistoryBackForwardOnEmpty(t *testing.T) {
	h := NewNavigationHistory(5)
	if _, ok := h.GoBack(); ok {
		t.Fatalf("expected GoBack to fail on empty history")
	}
	if _, ok := h.GoForward(); ok {
		t.Fatalf("expected GoForward to fail on empty history")
	}
}
