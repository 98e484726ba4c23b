package render

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/ccsearch/internal/app"
	"github.com/marcus/ccsearch/internal/styles"
)

// HelpDialog is a modal overlay listing key bindings. It closes on any
// key it doesn't otherwise care about, matching the teacher's modal
// convention of dismissing on any unconsumed key.
type HelpDialog struct {
	width, height int
}

// NewHelpDialog builds a help dialog sized to the given frame.
func NewHelpDialog(width, height int) *HelpDialog {
	return &HelpDialog{width: width, height: height}
}

// SetSize updates the dialog's frame dimensions.
func (h *HelpDialog) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// HandleKey closes the dialog on any key press.
func (h *HelpDialog) HandleKey(msg tea.KeyMsg) (app.Message, bool) {
	return app.CloseHelp{}, true
}

var helpSections = []struct {
	title    string
	bindings [][2]string
}{
	{
		title: "Search",
		bindings: [][2]string{
			{"type", "edit query"},
			{"up/down, k/j, ctrl+p/ctrl+n", "move selection"},
			{"pgup/pgdown, ctrl+u/ctrl+d", "page selection"},
			{"home/end", "jump to first/last result"},
			{"enter", "open message detail"},
			{"tab", "cycle role filter"},
			{"ctrl+o", "toggle sort order"},
		},
	},
	{
		title: "Message detail",
		bindings: [][2]string{
			{"up/down, k/j", "scroll"},
			{"pgup/pgdown, ctrl+u/ctrl+d", "page scroll"},
			{"ctrl+s", "open session viewer for this result"},
			{"c", "copy message body"},
			{"C", "copy raw JSON"},
			{"i", "copy session id"},
			{"f", "copy file path"},
			{"p", "copy project path"},
			{"esc, q", "back to search"},
		},
	},
	{
		title: "Session viewer",
		bindings: [][2]string{
			{"/", "filter session lines"},
			{"tab", "cycle role filter"},
			{"ctrl+o", "toggle sort order"},
			{"ctrl+t", "toggle preview flag (no preview pane is drawn)"},
			{"enter", "open message detail"},
			{"esc", "back to search"},
		},
	},
	{
		title: "Global",
		bindings: [][2]string{
			{"?", "toggle this help"},
			{"ctrl+left, ctrl+right", "navigate history back/forward"},
			{"ctrl+z", "suspend"},
			{"ctrl+c ctrl+c", "quit"},
		},
	},
}

// Render draws the help modal box at the dialog's width; Frame places
// it below the rest of the frame rather than over it.
func (h *HelpDialog) Render() string {
	var sb strings.Builder
	sb.WriteString(styles.ModalTitle.Render("Keyboard shortcuts"))
	sb.WriteString("\n")
	for _, sec := range helpSections {
		sb.WriteString(styles.Subtitle.Render(sec.title))
		sb.WriteString("\n")
		for _, b := range sec.bindings {
			sb.WriteString("  ")
			sb.WriteString(styles.KeyHint.Render(b[0]))
			sb.WriteString("  ")
			sb.WriteString(styles.Body.Render(b[1]))
			sb.WriteString("\n")
		}
	}
	return styles.ModalBox.Width(h.width).Render(strings.TrimRight(sb.String(), "\n"))
}
