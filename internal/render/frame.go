package render

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/ccsearch/internal/app"
	"github.com/marcus/ccsearch/internal/styles"
)

// headerHeight and footerHeight are the fixed chrome rows Frame
// reserves around whichever mode's body it renders.
const (
	headerHeight = 1
	footerHeight = 1
)

// Frame owns every render component and is the one thing the shell
// talks to: it dispatches key events to the component for the active
// mode and renders the full terminal frame for the current state.
type Frame struct {
	width, height int

	SearchBar     *SearchBar
	ResultList    *ResultList
	MessageDetail *MessageDetail
	SessionViewer *SessionViewer
	Help          *HelpDialog
}

// NewFrame builds a Frame sized to width x height.
func NewFrame(width, height int) *Frame {
	f := &Frame{}
	f.SearchBar = NewSearchBar()
	f.ResultList = NewResultList(width, 1)
	f.MessageDetail = NewMessageDetail(width, 1)
	f.SessionViewer = NewSessionViewer(width, 1)
	f.Help = NewHelpDialog(width, 1)
	f.SetSize(width, height)
	return f
}

// SetSize updates every component's viewport to match a new terminal
// size, reserving header/footer rows from the body height.
func (f *Frame) SetSize(width, height int) {
	f.width, f.height = width, height
	bodyHeight := height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	f.SearchBar.SetWidth(width)
	f.ResultList.SetSize(width, bodyHeight-1) // one row for the search bar
	f.MessageDetail.SetSize(width, bodyHeight)
	f.SessionViewer.SetSize(width, bodyHeight)
	f.Help.SetSize(width-4, bodyHeight)
}

// HandleKey routes a key event to the component owning the active
// mode. The "?" key opens help from every mode except help itself
// (where any key closes it) and the session viewer's filter entry; in
// search mode it opens help rather than being typed into the query.
// Ctrl+Left/Right drive navigation history from any mode.
func (f *Frame) HandleKey(msg tea.KeyMsg, s app.State) (app.Message, bool) {
	switch msg.String() {
	case "ctrl+left":
		return app.NavigateBack{}, true
	case "ctrl+right":
		return app.NavigateForward{}, true
	}

	switch s.Mode {
	case app.ModeHelp:
		return f.Help.HandleKey(msg)

	case app.ModeMessageDetail:
		if msg.String() == "?" {
			return app.ShowHelp{}, true
		}
		if m, ok := f.MessageDetail.HandleKey(msg, s.UI); ok {
			return m, true
		}
		return nil, false

	case app.ModeSessionViewer:
		if msg.String() == "?" && !f.SessionViewer.searching {
			return app.ShowHelp{}, true
		}
		if m, ok := f.SessionViewer.HandleKey(msg, s.Session, s.Session.Lines); ok {
			return m, true
		}
		return nil, false

	default: // ModeSearch
		if msg.String() == "?" {
			return app.ShowHelp{}, true
		}
		if msg.String() == "tab" {
			return app.ToggleRoleFilter{}, true
		}
		if msg.String() == "ctrl+o" {
			return app.ToggleSearchOrder{}, true
		}
		if len(s.Search.Results) > 0 {
			if m, ok := f.ResultList.HandleKey(msg, s.Search); ok {
				return m, true
			}
		}
		if m, ok := f.SearchBar.HandleKey(msg); ok {
			return m, true
		}
		return nil, false
	}
}

// Render draws the full frame: header, the active mode's body, and the
// footer status line. In help mode the body is the search view and the
// help dialog is appended below the footer (see overlay).
func (f *Frame) Render(s app.State) string {
	var body string
	switch s.Mode {
	case app.ModeMessageDetail:
		body = f.MessageDetail.Render(s.UI)
	case app.ModeSessionViewer:
		body = f.SessionViewer.Render(s.Session, s.Session.Lines)
	default:
		body = f.SearchBar.Render() + "\n" + f.ResultList.Render(s.Search)
	}

	header := styles.Header.Width(f.width).Render(styles.BarTitle.Render(" ccsearch ") + styles.BarText.Render(modeLabel(s.Mode)))
	footer := styles.Footer.Width(f.width).Render(footerText(s))

	frame := header + "\n" + body + "\n" + footer

	if s.Mode == app.ModeHelp {
		return overlay(frame, f.Help.Render())
	}
	return frame
}

func modeLabel(m app.Mode) string {
	return fmt.Sprintf("  %s", m.String())
}

func footerText(s app.State) string {
	if s.UI.Status != "" {
		return " " + s.UI.Status
	}
	hint := " ? for help"
	if s.Search.RoleFilter != app.RoleNone {
		hint = fmt.Sprintf(" role:%s  %s", s.Search.RoleFilter, hint)
	}
	return hint
}

// overlay stacks the modal content below the background frame, the
// simplest presentation that avoids needing true terminal-cell
// compositing — matching how the teacher's simpler modals render when
// a full-screen backdrop blur isn't needed.
func overlay(background, modal string) string {
	return background + "\n" + strings.TrimRight(modal, "\n")
}
