package app

// MaxHistory bounds the navigation history ring. Spec leaves the exact
// capacity to the implementation; 50 comfortably covers realistic
// back/forward sessions without letting a pathological sequence of mode
// switches grow memory without bound (see design note on history memory
// cost being O(result-count x history-depth)).
const MaxHistory = 50

// NavigationHistory is a bounded deque of NavigationState with a cursor.
// It never holds more than capacity entries; pushing past capacity
// evicts the oldest entry and keeps the cursor pointing at the new last
// element.
type NavigationHistory struct {
	entries  []NavigationState
	cursor   int
	capacity int
}

// NewNavigationHistory constructs an empty history bounded to capacity.
func NewNavigationHistory(capacity int) NavigationHistory {
	return NavigationHistory{capacity: capacity}
}

// Len reports the number of entries currently held.
func (h *NavigationHistory) Len() int { return len(h.entries) }

// Cursor reports the current cursor position. Meaningless when Len() == 0.
func (h *NavigationHistory) Cursor() int { return h.cursor }

// Current returns the entry at the cursor, and whether one exists.
func (h *NavigationHistory) Current() (NavigationState, bool) {
	if len(h.entries) == 0 {
		return NavigationState{}, false
	}
	return h.entries[h.cursor], true
}

// Push truncates any forward (redo) tail past the cursor, appends s, and
// evicts the oldest entry if that would exceed capacity. The cursor
// always ends up pointing at the newly pushed entry.
func (h *NavigationHistory) Push(s NavigationState) {
	if len(h.entries) > 0 {
		h.entries = h.entries[:h.cursor+1]
	}
	h.entries = append(h.entries, s.Clone())
	if len(h.entries) > h.capacity {
		h.entries = h.entries[1:]
	}
	h.cursor = len(h.entries) - 1
}

// UpdateCurrent replaces the entry at the cursor without moving it. A
// no-op on an empty history.
func (h *NavigationHistory) UpdateCurrent(s NavigationState) {
	if len(h.entries) == 0 {
		return
	}
	h.entries[h.cursor] = s.Clone()
}

// GoBack decrements the cursor and returns the entry there, or false if
// already at the oldest entry (or history is empty).
func (h *NavigationHistory) GoBack() (NavigationState, bool) {
	if h.cursor <= 0 || len(h.entries) == 0 {
		return NavigationState{}, false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// GoForward increments the cursor and returns the entry there, or false
// if already at the newest entry.
func (h *NavigationHistory) GoForward() (NavigationState, bool) {
	if h.cursor+1 >= len(h.entries) {
		return NavigationState{}, false
	}
	h.cursor++
	return h.entries[h.cursor], true
}
