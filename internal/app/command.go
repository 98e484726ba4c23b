package app

import (
	"time"

	"github.com/marcus/ccsearch/internal/search"
)

// Op is one side effect the shell must carry out. Update returns a
// Command, which is simply a slice of Ops (possibly empty); the shell is
// free to batch them however its runtime prefers.
type Op interface{ isOp() }

type opMarker struct{}

func (opMarker) isOp() {}

// Command is the set of side effects produced by one Update call.
type Command []Op

// ScheduleSearchOp arms a debounce timer; if the shell observes another
// ScheduleSearchOp (i.e. another QueryChanged) before Delay elapses, it
// rearms from scratch rather than stacking timers. Version lets the
// shell recognize (and discard) an expiry event superseded by a later
// ScheduleSearchOp.
type ScheduleSearchOp struct {
	opMarker
	Delay   time.Duration
	Version uint64
}

// ExecuteSearchOp dispatches req to the search worker.
type ExecuteSearchOp struct {
	opMarker
	Request search.Request
}

// LoadSessionOp asks the shell to read a session file's raw lines.
type LoadSessionOp struct {
	opMarker
	Path      string
	SessionID string
}

// CopyToClipboardOp asks the shell to copy Content to the system clipboard.
type CopyToClipboardOp struct {
	opMarker
	Content string
}

// ScheduleStatusClearOp arms a timer that delivers ClearStatus{Token}
// after Delay; the state machine ignores a ClearStatus whose token does
// not match the current one (a newer SetStatus superseded it).
type ScheduleStatusClearOp struct {
	opMarker
	Delay time.Duration
	Token uint64
}

// QuitOp tells the shell to tear down the terminal and exit the loop.
type QuitOp struct{ opMarker }

// RefreshOp forces a full redraw (e.g. after SIGCONT).
type RefreshOp struct{ opMarker }
