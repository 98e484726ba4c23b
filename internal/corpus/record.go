// Package corpus scans the on-disk tree of newline-delimited JSON session
// logs and turns each line into a Record. It is the "external collaborator"
// the search service consumes: a glob pattern in, a stream of parsed
// records out, with malformed lines skipped and counted rather than
// aborting the scan.
//
// The parsing approach (bufio.Scanner with an enlarged buffer, best-effort
// extraction of display text from either a string or a content-block
// array) follows the Claude Code adapter this tool's teacher ships, cut
// down to the single corpus format this spec targets.
package corpus

import "encoding/json"

// Role is the value of a record's "type" field.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleSummary   Role = "summary"
)

// Record is one parsed line of a .jsonl session file.
type Record struct {
	File        string          // absolute path of the source file
	UUID        string          // record uuid
	Timestamp   string          // RFC 3339 timestamp, "" if absent
	SessionID   string          // sessionId field
	Role        string          // message.role when present, else the type field (not restricted to the known Role set)
	Text        string          // extracted display text
	HasTools    bool            // any tool_use/tool_result content block present
	HasThinking bool            // any thinking content block present
	MessageType string          // original "type" tag, duplicated for clarity at call sites
	CWD         string          // top-level cwd field, if present
	Raw         json.RawMessage // the raw line, retained for detail views and synthetic-result construction
}

// rawLine mirrors the on-disk JSON shape enough to extract the fields
// corpus cares about; everything else is left in Raw for later use.
type rawLine struct {
	Type      string          `json:"type"`
	UUID      string          `json:"uuid"`
	Timestamp string          `json:"timestamp"`
	SessionID string          `json:"sessionId"`
	CWD       string          `json:"cwd"`
	Message   *rawMessage     `json:"message"`
}

type rawMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

type rawContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ParseLine parses a single JSONL line into a Record. ok is false when the
// line is not a well-formed record of a kind the scanner understands
// (malformed JSON, or a type outside user|assistant|system|summary);
// the caller is expected to count such lines and continue.
func ParseLine(file string, line []byte) (rec Record, ok bool) {
	var raw rawLine
	if err := json.Unmarshal(line, &raw); err != nil {
		return Record{}, false
	}
	switch raw.Type {
	case "user", "assistant", "system", "summary":
	default:
		return Record{}, false
	}

	rec = Record{
		File:        file,
		UUID:        raw.UUID,
		Timestamp:   raw.Timestamp,
		SessionID:   raw.SessionID,
		Role:        raw.Type,
		MessageType: raw.Type,
		CWD:         raw.CWD,
		Raw:         json.RawMessage(append([]byte(nil), line...)),
	}

	if raw.Message != nil {
		if raw.Message.Role != "" {
			rec.Role = raw.Message.Role
		}
		rec.Text, rec.HasTools, rec.HasThinking = extractContent(raw.Message.Content)
	}
	return rec, true
}

// extractContent parses a message.content field that is either a bare
// string or an array of typed content blocks, returning the joined
// display text and whether tool or thinking blocks were present.
func extractContent(content json.RawMessage) (text string, hasTools, hasThinking bool) {
	if len(content) == 0 {
		return "", false, false
	}

	var asString string
	if err := json.Unmarshal(content, &asString); err == nil {
		return asString, false, false
	}

	var blocks []json.RawMessage
	if err := json.Unmarshal(content, &blocks); err != nil {
		return "", false, false
	}

	var parts []string
	for _, b := range blocks {
		var block rawContentBlock
		if err := json.Unmarshal(b, &block); err != nil {
			continue
		}
		switch block.Type {
		case "text":
			if block.Text != "" {
				parts = append(parts, block.Text)
			}
		case "thinking":
			hasThinking = true
		case "tool_use", "tool_result":
			hasTools = true
		}
	}
	return joinLines(parts), hasTools, hasThinking
}

func joinLines(parts []string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}
	total := 0
	for _, p := range parts {
		total += len(p) + 1
	}
	out := make([]byte, 0, total)
	for i, p := range parts {
		if i > 0 {
			out = append(out, '\n')
		}
		out = append(out, p...)
	}
	return string(out)
}
