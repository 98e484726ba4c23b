package app

import (
	"time"

	"github.com/marcus/ccsearch/internal/search"
)

// SearchDebounce is the delay between the last QueryChanged and the
// shell issuing ExecuteSearch.
const SearchDebounce = 300 * time.Millisecond

// Deps carries the values Update needs but that are not part of State:
// the scan pattern and the CLI-supplied filter values (spec §6: the
// "interactive" subcommand accepts the same filter flags as "search",
// applied as initial values) every search request is built with.
// Keeping this out of State avoids mixing static configuration into
// navigation snapshots.
type Deps struct {
	Pattern     string
	SessionID   string
	ProjectPath string
	Before      string
	After       string
}

// Update is the pure state machine: it never performs I/O, only
// describes the I/O the shell should perform via the returned Command.
func Update(s State, msg Message, deps Deps) (State, Command) {
	if _, ok := msg.(PrimeQuit); !ok && s.QuitPrimed {
		s.QuitPrimed = false
	}

	switch m := msg.(type) {
	case QueryChanged:
		return updateQueryChanged(s, m)
	case SearchRequested:
		return updateSearchRequested(s, m, deps)
	case SearchCompleted:
		return updateSearchCompleted(s, m)
	case SelectResult:
		return updateSelectResult(s, m)
	case ToggleSearchOrder:
		return updateToggleSearchOrder(s, deps)
	case ToggleRoleFilter:
		return updateToggleRoleFilter(s, deps)

	case EnterMessageDetail:
		return updateEnterMessageDetail(s)
	case EnterSessionViewer:
		return updateEnterSessionViewer(s)
	case EnterMessageDetailFromSession:
		return updateEnterMessageDetailFromSession(s, m)
	case ExitToSearch:
		return updateExitLike(s)
	case ShowHelp:
		return updateShowHelp(s)
	case CloseHelp:
		return updateExitLike(s)

	case NavigateBack:
		return updateNavigate(s, s.History.GoBack)
	case NavigateForward:
		return updateNavigate(s, s.History.GoForward)

	case SessionLoaded:
		return updateSessionLoaded(s, m)
	case SessionQueryChanged:
		s.Session.Query = m.Text
		rebuildSessionFilter(&s.Session)
		return s, nil
	case SessionNavigated:
		return updateSessionNavigated(s, m)
	case ToggleSessionOrder:
		s.Session.Order = s.Session.Order.Toggle()
		rebuildSessionFilter(&s.Session)
		return s, nil
	case ToggleSessionRoleFilter:
		s.Session.RoleFilter = s.Session.RoleFilter.Next()
		rebuildSessionFilter(&s.Session)
		return s, nil

	case SetDetailScroll:
		s.UI.DetailScroll = clampNonNegative(m.Offset)
		return s, nil
	case ToggleTruncation:
		s.UI.Truncate = !s.UI.Truncate
		return s, nil
	case TogglePreview:
		s.UI.PreviewEnabled = !s.UI.PreviewEnabled
		return s, nil
	case SetStatus:
		return updateSetStatus(s, m.Text)
	case ClearStatus:
		if m.Token == s.UI.StatusToken {
			s.UI.Status = ""
		}
		return s, nil
	case CopyToClipboard:
		return s, Command{CopyToClipboardOp{Content: m.Content}}
	case PrimeQuit:
		s.QuitPrimed = true
		ns, _ := updateSetStatus(s, "Press Ctrl+C again to exit")
		// The status clear closes the one-second quit window: it arrives
		// as a message and, like any other, un-primes quit.
		return ns, Command{ScheduleStatusClearOp{Delay: time.Second, Token: ns.UI.StatusToken}}
	case Quit:
		return s, Command{QuitOp{}}
	case Refresh:
		cmd := Command{RefreshOp{}}
		if s.NavigationState.Mode == ModeSearch {
			// The corpus grew (new session file/append) while the user was
			// looking at search results: re-issue the current query so the
			// new content is reflected, not just a terminal redraw.
			ns, searchCmd := updateSearchRequested(s, SearchRequested{}, deps)
			s = ns
			cmd = append(cmd, searchCmd...)
		}
		return s, cmd
	}
	return s, nil
}

// PrimeQuit marks the first of a double Ctrl+C. Any other message clears
// it (see Update's prelude), including the status clear PrimeQuit
// schedules one second later, which bounds the window to one second.
type PrimeQuit struct{ marker }

func updateQueryChanged(s State, m QueryChanged) (State, Command) {
	s.Search.Query = m.Text
	s.Search.DebounceVersion++
	version := s.Search.DebounceVersion
	ns, cmd := updateSetStatus(s, "typing…")
	cmd = append(cmd, ScheduleSearchOp{Delay: SearchDebounce, Version: version})
	return ns, cmd
}

func updateSearchRequested(s State, m SearchRequested, deps Deps) (State, Command) {
	s.NextSearchID++
	s.Search.CurrentSearchID = s.NextSearchID
	s.Search.IsSearching = true
	req := search.Request{
		ID:          s.Search.CurrentSearchID,
		QueryText:   s.Search.Query,
		RoleFilter:  string(s.Search.RoleFilter),
		Pattern:     deps.Pattern,
		Order:       s.Search.Order,
		SessionID:   deps.SessionID,
		ProjectPath: deps.ProjectPath,
		Before:      deps.Before,
		After:       deps.After,
	}
	return s, Command{ExecuteSearchOp{Request: req}}
}

func updateSearchCompleted(s State, m SearchCompleted) (State, Command) {
	if m.ID != s.Search.CurrentSearchID {
		return s, nil // stale response, ignored (invariant 4)
	}
	s.Search.IsSearching = false
	if m.Err != nil {
		ns, cmd := updateSetStatus(s, m.Err.Error())
		return ns, cmd
	}
	s.Search.Results = m.Results
	if len(s.Search.Results) == 0 {
		s.Search.Selected = 0
	} else if s.Search.Selected >= len(s.Search.Results) {
		s.Search.Selected = len(s.Search.Results) - 1
	}
	s.UI.Status = ""
	return s, nil
}

func updateSelectResult(s State, m SelectResult) (State, Command) {
	s.Search.Selected = clampIndex(m.Index, len(s.Search.Results))
	s.Search.ScrollOffset = clampNonNegative(m.ScrollOffset)
	return s, nil
}

func updateToggleSearchOrder(s State, deps Deps) (State, Command) {
	s.Search.Order = s.Search.Order.Toggle()
	s.History.UpdateCurrent(s.NavigationState)
	return updateSearchRequested(s, SearchRequested{}, deps)
}

func updateToggleRoleFilter(s State, deps Deps) (State, Command) {
	s.Search.RoleFilter = s.Search.RoleFilter.Next()
	s.History.UpdateCurrent(s.NavigationState)
	return updateSearchRequested(s, SearchRequested{}, deps)
}

func updateSetStatus(s State, text string) (State, Command) {
	s.NextStatusToken++
	token := s.NextStatusToken
	s.UI.Status = text
	s.UI.StatusToken = token
	return s, Command{ScheduleStatusClearOp{Delay: defaultStatusDuration, Token: token}}
}

// enterMode performs the four-step transition described in contract 4:
// snapshot the pre-transition state into history, mutate the live
// NavigationState, then push the post-transition snapshot.
func enterMode(s State, mutate func(*NavigationState)) State {
	if s.History.Len() == 0 {
		s.History.Push(s.NavigationState)
	} else {
		s.History.UpdateCurrent(s.NavigationState)
	}
	mutate(&s.NavigationState)
	s.History.Push(s.NavigationState)
	return s
}

func updateEnterMessageDetail(s State) (State, Command) {
	if len(s.Search.Results) == 0 {
		return s, nil
	}
	result := s.Search.Results[clampIndex(s.Search.Selected, len(s.Search.Results))]
	s = enterMode(s, func(ns *NavigationState) {
		ns.Mode = ModeMessageDetail
		ns.UI.SelectedResult = &result
		ns.UI.DetailScroll = 0
	})
	return s, nil
}

func updateEnterSessionViewer(s State) (State, Command) {
	var file, sessionID string
	if s.UI.SelectedResult != nil {
		file, sessionID = s.UI.SelectedResult.File, s.UI.SelectedResult.SessionID
	} else if len(s.Search.Results) > 0 {
		r := s.Search.Results[clampIndex(s.Search.Selected, len(s.Search.Results))]
		file, sessionID = r.File, r.SessionID
	} else {
		return s, nil
	}
	s = enterMode(s, func(ns *NavigationState) {
		ns.Mode = ModeSessionViewer
		ns.Session.FilePath = file
		ns.Session.SessionID = sessionID
	})
	return s, Command{LoadSessionOp{Path: file, SessionID: sessionID}}
}

func updateEnterMessageDetailFromSession(s State, m EnterMessageDetailFromSession) (State, Command) {
	result := buildSyntheticResult(m.RawJSON, m.File, m.SessionID)
	s = enterMode(s, func(ns *NavigationState) {
		ns.Mode = ModeMessageDetail
		ns.UI.SelectedResult = &result
		ns.UI.DetailScroll = 0
	})
	return s, nil
}

func updateShowHelp(s State) (State, Command) {
	s = enterMode(s, func(ns *NavigationState) { ns.Mode = ModeHelp })
	return s, nil
}

// updateExitLike implements ExitToSearch and CloseHelp: NavigateBack
// when history is non-empty, otherwise fall back to Mode::Search.
func updateExitLike(s State) (State, Command) {
	if back, ok := s.History.GoBack(); ok {
		return applyRestoredState(s, back)
	}
	s.NavigationState.Mode = ModeSearch
	return s, nil
}

func updateNavigate(s State, step func() (NavigationState, bool)) (State, Command) {
	ns, ok := step()
	if !ok {
		return s, nil
	}
	return applyRestoredState(s, ns)
}

// applyRestoredState installs a history-restored snapshot and runs the
// per-mode initializer described in §4.D.1.
func applyRestoredState(s State, ns NavigationState) (State, Command) {
	s.NavigationState = ns
	switch ns.Mode {
	case ModeSessionViewer:
		return s, Command{LoadSessionOp{Path: ns.Session.FilePath, SessionID: ns.Session.SessionID}}
	case ModeMessageDetail:
		s.UI.DetailScroll = 0
		return s, nil
	default:
		return s, nil
	}
}

func updateSessionLoaded(s State, m SessionLoaded) (State, Command) {
	if m.Err != nil {
		ns, cmd := updateSetStatus(s, m.Err.Error())
		return ns, cmd
	}
	s.Session.Lines = m.Lines
	s.Session.FilePath = m.Path
	s.Session.SessionID = m.SessionID
	s.Session.Selected = 0
	s.Session.ScrollOffset = 0
	rebuildSessionFilter(&s.Session)
	return s, nil
}

func updateSessionNavigated(s State, m SessionNavigated) (State, Command) {
	s.Session.Selected = clampIndex(m.Selected, len(s.Session.FilteredIndices))
	s.Session.ScrollOffset = clampNonNegative(m.Offset)
	return s, nil
}

func clampIndex(i, length int) int {
	if length == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= length {
		return length - 1
	}
	return i
}

func clampNonNegative(i int) int {
	if i < 0 {
		return 0
	}
	return i
}
