// Package search owns the record scanner and executes search requests:
// parse, scan, match, sort, cap. It has no notion of UI state; the app
// state machine consumes Request/Response and Result values only.
package search

import (
	"encoding/json"

	"github.com/marcus/ccsearch/internal/corpus"
)

// Result is a single matched record, enriched with the query that
// produced it. Immutable once produced; callers that need to mutate
// (e.g. a synthetic result built from a raw session line) construct a
// new value rather than editing one in place.
type Result struct {
	File        string
	UUID        string
	Timestamp   string
	SessionID   string
	Role        string
	Text        string
	HasTools    bool
	HasThinking bool
	MessageType string
	Query       string
	CWD         string
	Raw         json.RawMessage
}

// FromRecord builds a Result from a scanned corpus.Record and the query
// text that matched it.
func FromRecord(rec corpus.Record, query string) Result {
	return Result{
		File:        rec.File,
		UUID:        rec.UUID,
		Timestamp:   rec.Timestamp,
		SessionID:   rec.SessionID,
		Role:        rec.Role,
		Text:        rec.Text,
		HasTools:    rec.HasTools,
		HasThinking: rec.HasThinking,
		MessageType: rec.MessageType,
		Query:       query,
		CWD:         rec.CWD,
		Raw:         rec.Raw,
	}
}
