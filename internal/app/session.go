package app

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marcus/ccsearch/internal/corpus"
	"github.com/marcus/ccsearch/internal/search"
)

// FormatSessionRow renders the "[time] role text" row the SessionViewer
// displays for one message. Filtering (SessionQueryChanged) matches
// against this same rendered text, not a separately-assembled
// concatenation of raw fields, so the two must stay in lockstep.
func FormatSessionRow(ts, role, text string) string {
	return "[" + formatSessionTime(ts) + "] " + role + " " + text
}

func formatSessionTime(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return "--/-- --:--"
	}
	return t.Local().Format("01/02 15:04")
}

type sessionLine struct {
	index     int
	role      string
	text      string
	timestamp string
	row       string
}

func parseSessionLines(lines []string) []sessionLine {
	out := make([]sessionLine, len(lines))
	for i, l := range lines {
		rec, ok := corpus.ParseLine("", []byte(l))
		role, text, ts := "", "", ""
		if ok {
			role, text, ts = rec.Role, rec.Text, rec.Timestamp
		}
		out[i] = sessionLine{
			index:     i,
			role:      role,
			text:      text,
			timestamp: ts,
			row:       FormatSessionRow(ts, role, text),
		}
	}
	return out
}

// rebuildSessionFilter recomputes FilteredIndices from Lines, Query,
// RoleFilter and Order, per contract 5: case-insensitive containment
// over the rendered row text; empty query matches everything; results
// are then sorted by timestamp according to Order, with empty
// timestamps sorting first regardless of order.
func rebuildSessionFilter(s *SessionState) {
	parsed := parseSessionLines(s.Lines)
	query := strings.ToLower(s.Query)

	indices := make([]int, 0, len(parsed))
	for _, pl := range parsed {
		if s.RoleFilter != RoleNone && !strings.EqualFold(string(s.RoleFilter), pl.role) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(pl.row), query) {
			continue
		}
		indices = append(indices, pl.index)
	}

	sort.SliceStable(indices, func(i, j int) bool {
		a, b := parsed[indices[i]], parsed[indices[j]]
		aEmpty, bEmpty := a.timestamp == "", b.timestamp == ""
		if aEmpty != bEmpty {
			return aEmpty // empty timestamps sort first in both orders
		}
		if aEmpty && bEmpty {
			return false
		}
		ta, errA := time.Parse(time.RFC3339, a.timestamp)
		tb, errB := time.Parse(time.RFC3339, b.timestamp)
		if errA != nil || errB != nil {
			if s.Order == SessionAscending {
				return a.timestamp < b.timestamp
			}
			return a.timestamp > b.timestamp
		}
		if s.Order == SessionAscending {
			return ta.Before(tb)
		}
		return ta.After(tb)
	})

	s.FilteredIndices = indices
	if s.Selected >= len(indices) {
		s.Selected = 0
		s.ScrollOffset = 0
	}
}

// -- synthetic SearchResult construction (contract 6) --

type rawSessionLine struct {
	Type        string          `json:"type"`
	UUID        string          `json:"uuid"`
	Timestamp   string          `json:"timestamp"`
	SessionID   string          `json:"sessionId"`
	CWD         string          `json:"cwd"`
	ToolResults json.RawMessage `json:"toolResults"`
	Message     *struct {
		Role    string          `json:"role"`
		Content json.RawMessage `json:"content"`
	} `json:"message"`
}

// buildSyntheticResult does best-effort extraction of a SearchResult
// from one raw JSONL line, for EnterMessageDetailFromSession: role from
// message.role (falling back to type), content from message.content
// (string or text-block array),
// timestamp/uuid/session id straight from the record, has_tools from
// the mere presence of a top-level toolResults field.
func buildSyntheticResult(raw []byte, file, sessionID string) search.Result {
	var rl rawSessionLine
	_ = json.Unmarshal(raw, &rl)

	role := rl.Type
	text := ""
	if rl.Message != nil {
		if rl.Message.Role != "" {
			role = rl.Message.Role
		}
		text = extractSyntheticText(rl.Message.Content)
	}
	sid := rl.SessionID
	if sid == "" {
		sid = sessionID
	}
	id := rl.UUID
	if id == "" {
		// Malformed or hand-edited lines can lack a uuid; synthesize one
		// rather than leaving SearchResult.UUID empty.
		id = uuid.NewString()
	}

	return search.Result{
		File:        file,
		UUID:        id,
		Timestamp:   rl.Timestamp,
		SessionID:   sid,
		Role:        role,
		Text:        text,
		HasTools:    len(rl.ToolResults) > 0,
		MessageType: rl.Type,
		CWD:         rl.CWD,
		Raw:         json.RawMessage(append([]byte(nil), raw...)),
	}
}

func extractSyntheticText(content json.RawMessage) string {
	if len(content) == 0 {
		return ""
	}
	var asString string
	if err := json.Unmarshal(content, &asString); err == nil {
		return asString
	}
	var blocks []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(content, &blocks); err != nil {
		return ""
	}
	var parts []string
	for _, b := range blocks {
		if b.Type == "text" && b.Text != "" {
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, "\n")
}
