package app

import (
	"time"

	"github.com/marcus/ccsearch/internal/search"
)

// defaultStatusDuration is how long a transient status message stays
// visible before ClearStatus is scheduled, absent a more specific value.
const defaultStatusDuration = 2 * time.Second

// SearchState holds everything the Search mode needs.
type SearchState struct {
	Query           string
	Results         []search.Result
	Selected        int
	ScrollOffset    int
	RoleFilter      RoleFilter
	IsSearching     bool
	CurrentSearchID uint64
	Order           search.Order
	DebounceVersion uint64
}

// Clone returns an independent deep-ish copy suitable for storing in a
// navigation-history snapshot (results are re-sliced, not re-allocated
// per element, since Result is treated as immutable once produced).
func (s SearchState) Clone() SearchState {
	out := s
	out.Results = append([]search.Result(nil), s.Results...)
	return out
}

// SessionState holds everything the SessionViewer mode needs.
type SessionState struct {
	Lines           []string
	Query           string
	FilteredIndices []int
	Selected        int
	ScrollOffset    int
	Order           SessionOrder
	FilePath        string
	SessionID       string
	RoleFilter      RoleFilter
}

func (s SessionState) Clone() SessionState {
	out := s
	out.Lines = append([]string(nil), s.Lines...)
	out.FilteredIndices = append([]int(nil), s.FilteredIndices...)
	return out
}

// UIState holds cross-mode presentation state that is not owned by
// Search or Session.
type UIState struct {
	Status         string
	StatusToken    uint64
	DetailScroll   int
	SelectedResult *search.Result
	Truncate       bool
	PreviewEnabled bool
}

func (u UIState) Clone() UIState {
	out := u
	if u.SelectedResult != nil {
		r := *u.SelectedResult
		out.SelectedResult = &r
	}
	return out
}

// NavigationState is a complete, restorable image of the UI.
type NavigationState struct {
	Mode    Mode
	Search  SearchState
	Session SessionState
	UI      UIState
}

func (n NavigationState) Clone() NavigationState {
	return NavigationState{
		Mode:    n.Mode,
		Search:  n.Search.Clone(),
		Session: n.Session.Clone(),
		UI:      n.UI.Clone(),
	}
}

// State is the full process-lifetime UI state: the live NavigationState
// plus its history and a couple of fields (quit priming, search-id
// counter) that are process-global rather than per-snapshot.
type State struct {
	NavigationState
	History         NavigationHistory
	QuitPrimed      bool
	NextSearchID    uint64
	NextStatusToken uint64
}

// New returns the initial state: Search mode, nothing loaded, truncation
// on by default (matches the renderer's documented default row behavior).
func New() State {
	return State{
		NavigationState: NavigationState{
			Mode: ModeSearch,
			UI:   UIState{Truncate: true},
		},
		History: NewNavigationHistory(MaxHistory),
	}
}
