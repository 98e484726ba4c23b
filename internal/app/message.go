package app

import "github.com/marcus/ccsearch/internal/search"

// Message is the tagged union of events the shell delivers into Update.
// Each concrete type below implements the marker method.
type Message interface{ isMessage() }

type marker struct{}

func (marker) isMessage() {}

// -- search messages --

type QueryChanged struct {
	marker
	Text string
}

type SearchRequested struct{ marker }

type SearchCompleted struct {
	marker
	ID      uint64
	Results []search.Result
	Err     error
}

type SelectResult struct {
	marker
	Index        int
	ScrollOffset int
}

type ToggleSearchOrder struct{ marker }
type ToggleRoleFilter struct{ marker }

// -- mode messages --

type EnterMessageDetail struct{ marker }
type EnterSessionViewer struct{ marker }

type EnterMessageDetailFromSession struct {
	marker
	RawJSON   []byte
	File      string
	SessionID string
}

type ExitToSearch struct{ marker }
type ShowHelp struct{ marker }
type CloseHelp struct{ marker }

// -- navigation messages --

type NavigateBack struct{ marker }
type NavigateForward struct{ marker }

// -- session messages --

// SessionLoaded is the shell's reply to the LoadSession command.
type SessionLoaded struct {
	marker
	Path      string
	SessionID string
	Lines     []string
	Err       error
}

type SessionQueryChanged struct {
	marker
	Text string
}

type SessionNavigated struct {
	marker
	Selected int
	Offset   int
}

type ToggleSessionOrder struct{ marker }
type ToggleSessionRoleFilter struct{ marker }

// -- UI messages --

type ToggleTruncation struct{ marker }
type TogglePreview struct{ marker }

// SetDetailScroll sets the scroll offset into the current message
// detail view's wrapped body. The detail component computes the
// target offset since it alone knows the viewport height and the
// current wrapped-line count; Update only clamps it to be
// non-negative (full clamping against line count happens in the
// component's own Render, same pattern as ResultList/SelectResult).
type SetDetailScroll struct {
	marker
	Offset int
}

type SetStatus struct {
	marker
	Text string
}

type ClearStatus struct {
	marker
	Token uint64
}

type CopyToClipboard struct {
	marker
	Content string
}

type Quit struct{ marker }
type Refresh struct{ marker }
