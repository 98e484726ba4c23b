// Package shell is the bubbletea tea.Model that wires app.State/
// app.Message/app.Command to tea.Msg/tea.Cmd: it is the only place in
// this module that performs I/O or talks to bubbletea directly.
// Grounded on the teacher's cmd/sidecar main model wiring (tea.Program
// construction, alt-screen, log-to-file) and the debounce/async-result
// pattern in internal/plugins/conversations' scheduleContentSearch.
package shell

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/ccsearch/internal/app"
	"github.com/marcus/ccsearch/internal/clipboard"
	"github.com/marcus/ccsearch/internal/corpus"
	"github.com/marcus/ccsearch/internal/render"
	"github.com/marcus/ccsearch/internal/search"
)

// Model is the tea.Model driving the interactive TUI.
type Model struct {
	state   app.State
	deps    app.Deps
	frame   *render.Frame
	service *search.Service
	logger  *slog.Logger

	width, height int
	sigCh         chan os.Signal

	watchCh     <-chan struct{}
	watchCloser io.Closer
}

// InitialFilters carries the spec §6 filter flags "interactive" shares
// with "search", applied as initial state rather than a live query.
type InitialFilters struct {
	Role        string
	SessionID   string
	ProjectPath string
	Before      string
	After       string
}

// New builds a Model rooted at the given search service and scan
// pattern, seeded with any initial filter values from the CLI. Call
// tea.NewProgram(m, tea.WithAltScreen()).Run() to drive it.
func New(service *search.Service, pattern string, logger *slog.Logger, filters InitialFilters) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	state := app.New()
	if filters.Role != "" {
		state.Search.RoleFilter = app.RoleFilter(filters.Role)
	}
	return &Model{
		state: state,
		deps: app.Deps{
			Pattern:     pattern,
			SessionID:   filters.SessionID,
			ProjectPath: filters.ProjectPath,
			Before:      filters.Before,
			After:       filters.After,
		},
		frame:   render.NewFrame(80, 24),
		service: service,
		logger:  logger,
	}
}

// Init starts the SIGCONT listener used to redraw after a suspend, and
// a corpus filesystem watch so a session file that grows mid-session
// (a turn streaming in, a brand new conversation) triggers a refresh
// rather than sitting stale until the user re-types their query.
func (m *Model) Init() tea.Cmd {
	m.sigCh = make(chan os.Signal, 1)
	signal.Notify(m.sigCh, syscall.SIGCONT)
	cmds := []tea.Cmd{waitForSigCont(m.sigCh)}

	if ch, closer, err := corpus.Watch(m.service.Dir); err == nil {
		m.watchCh, m.watchCloser = ch, closer
		cmds = append(cmds, waitForCorpusChange(ch))
	} else {
		m.logger.Debug("corpus watch unavailable, refresh will not be automatic", "err", err)
	}
	return tea.Batch(cmds...)
}

// Close releases the corpus watcher, if one was started. The shell's
// caller invokes this after the tea.Program loop exits.
func (m *Model) Close() {
	if m.watchCloser != nil {
		m.watchCloser.Close()
	}
}

// -- internal tea.Msg wrapper types for async results --

type searchCompletedMsg struct{ resp search.Response }
type sessionLoadedMsg struct {
	path, sessionID string
	lines           []string
	err             error
}
type searchTimerFiredMsg struct{ version uint64 }
type statusTimerFiredMsg struct{ token uint64 }
type clipboardDoneMsg struct{ status string }
type sigContMsg struct{}
type corpusChangedMsg struct{}

func waitForSigCont(ch chan os.Signal) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return sigContMsg{}
	}
}

// waitForCorpusChange blocks on the next debounced notification from
// corpus.Watch and re-arms itself so the shell keeps listening for the
// rest of the session.
func waitForCorpusChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		_, ok := <-ch
		if !ok {
			return nil
		}
		return corpusChangedMsg{}
	}
}

// Update handles every tea.Msg: key events are translated via Frame
// into an app.Message; everything else is either a window resize or
// the async reply to a Command this Model issued earlier.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch tm := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = tm.Width, tm.Height
		m.frame.SetSize(tm.Width, tm.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(tm)

	case searchCompletedMsg:
		return m.dispatch(app.SearchCompleted{
			ID:      tm.resp.ID,
			Results: tm.resp.Results,
			Err:     tm.resp.Error,
		})

	case sessionLoadedMsg:
		return m.dispatch(app.SessionLoaded{
			Path: tm.path, SessionID: tm.sessionID, Lines: tm.lines, Err: tm.err,
		})

	case searchTimerFiredMsg:
		if tm.version != m.state.Search.DebounceVersion {
			return m, nil // superseded by a later keystroke, per ScheduleSearchOp contract
		}
		return m.dispatch(app.SearchRequested{})

	case statusTimerFiredMsg:
		return m.dispatch(app.ClearStatus{Token: tm.token})

	case clipboardDoneMsg:
		return m.dispatch(app.SetStatus{Text: tm.status})

	case sigContMsg:
		m.frame.SetSize(m.width, m.height)
		return m.dispatch(app.Refresh{})

	case tea.ResumeMsg:
		return m.dispatch(app.Refresh{})

	case corpusChangedMsg:
		model, cmd := m.dispatch(app.Refresh{})
		return model, tea.Batch(cmd, waitForCorpusChange(m.watchCh))
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		if m.state.QuitPrimed {
			return m.dispatch(app.Quit{})
		}
		return m.dispatch(app.PrimeQuit{})
	case "ctrl+z":
		return m, tea.Suspend
	}

	appMsg, ok := m.frame.HandleKey(msg, m.state)
	if !ok {
		return m, nil
	}
	return m.dispatch(appMsg)
}

// dispatch runs Update and translates the resulting Command into a
// single batched tea.Cmd.
func (m *Model) dispatch(msg app.Message) (tea.Model, tea.Cmd) {
	ns, cmd := app.Update(m.state, msg, m.deps)
	m.state = ns
	return m, m.runCommand(cmd)
}

func (m *Model) runCommand(cmd app.Command) tea.Cmd {
	if len(cmd) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(cmd))
	for _, op := range cmd {
		if c := m.runOp(op); c != nil {
			cmds = append(cmds, c)
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) runOp(op app.Op) tea.Cmd {
	switch o := op.(type) {
	case app.ScheduleSearchOp:
		return tea.Tick(o.Delay, func(time.Time) tea.Msg {
			return searchTimerFiredMsg{version: o.Version}
		})

	case app.ExecuteSearchOp:
		req := o.Request
		return func() tea.Msg {
			resp := m.service.Search(context.Background(), req)
			return searchCompletedMsg{resp: resp}
		}

	case app.LoadSessionOp:
		path, sessionID := o.Path, o.SessionID
		return func() tea.Msg {
			lines, err := corpus.LoadSessionLines(path)
			return sessionLoadedMsg{path: path, sessionID: sessionID, lines: lines, err: err}
		}

	case app.CopyToClipboardOp:
		content := o.Content
		logger := m.logger
		return func() tea.Msg {
			if err := clipboard.Write(content); err != nil {
				logger.Debug("clipboard write failed", "err", err)
				return clipboardDoneMsg{status: "copy failed: " + err.Error()}
			}
			return clipboardDoneMsg{status: "copied to clipboard"}
		}

	case app.ScheduleStatusClearOp:
		return tea.Tick(o.Delay, func(time.Time) tea.Msg {
			return statusTimerFiredMsg{token: o.Token}
		})

	case app.QuitOp:
		return tea.Quit

	case app.RefreshOp:
		return func() tea.Msg { return tea.WindowSizeMsg{Width: m.width, Height: m.height} }
	}
	return nil
}

// View renders the current state.
func (m *Model) View() string {
	return m.frame.Render(m.state)
}
