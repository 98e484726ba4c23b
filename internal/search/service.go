package search

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/marcus/ccsearch/internal/corpus"
	"github.com/marcus/ccsearch/internal/query"
)

// MaxResults is the hard cap on results returned by a single search,
// applied before the role filter (see Service.Search).
const MaxResults = 1000

// Request describes one search to execute.
type Request struct {
	ID         uint64
	QueryText  string
	RoleFilter string // "" means no filter
	Pattern    string
	Order      Order

	// Additional CLI-surfaced filters (spec §6), applied alongside the
	// parsed query condition rather than folded into it: a record must
	// satisfy the query AND every non-zero filter below to match.
	SessionID   string // exact sessionId match, "" means no filter
	ProjectPath string // exact cwd match, "" means no filter
	Before      string // RFC3339; record timestamp must be <= this
	After       string // RFC3339; record timestamp must be >= this
}

// Response is what a Request produces. Error is non-nil for a query
// parse failure or a failure resolving the scan pattern; a request that
// matches nothing is not an error.
type Response struct {
	ID      uint64
	Results []Result
	Error   error
	Skipped int64
}

// Service owns the corpus directory the scanner reads from.
type Service struct {
	Dir    string
	Logger *slog.Logger
}

// NewService constructs a Service rooted at dir. A nil logger is replaced
// with slog.Default().
func NewService(dir string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{Dir: dir, Logger: logger}
}

// Search executes req and returns its Response. It never panics on
// malformed input: a query parse failure or malformed record is reported
// through Response.Error / a skipped-count log line rather than a panic.
func (s *Service) Search(ctx context.Context, req Request) Response {
	if req.QueryText == "" {
		return Response{ID: req.ID}
	}

	cond, err := query.Parse(req.QueryText)
	if err != nil {
		return Response{ID: req.ID, Error: err}
	}

	records, stats, err := corpus.Scan(ctx, s.Dir, req.Pattern)
	if err != nil {
		return Response{ID: req.ID, Error: err}
	}

	var before, after time.Time
	var haveBefore, haveAfter bool
	if req.Before != "" {
		before, haveBefore = parseTimestamp(req.Before)
	}
	if req.After != "" {
		after, haveAfter = parseTimestamp(req.After)
	}

	var results []Result
	for rec := range records {
		if req.SessionID != "" && rec.SessionID != req.SessionID {
			continue
		}
		if req.ProjectPath != "" && rec.CWD != req.ProjectPath {
			continue
		}
		if haveBefore || haveAfter {
			t, ok := parseTimestamp(rec.Timestamp)
			if !ok {
				continue
			}
			if haveBefore && t.After(before) {
				continue
			}
			if haveAfter && t.Before(after) {
				continue
			}
		}

		text := rec.Text
		if rec.Role != "" {
			text = rec.Role + " " + text
		}
		if cond.Match(text) {
			results = append(results, FromRecord(rec, req.QueryText))
		}
	}

	sortResults(results, req.Order)

	if len(results) > MaxResults {
		results = results[:MaxResults]
	}

	results = filterRole(results, req.RoleFilter)

	if stats.Skipped > 0 {
		s.Logger.Debug("corpus scan skipped malformed records",
			"skipped", stats.Skipped, "files", stats.FilesScanned, "lines", stats.LinesRead)
	}

	return Response{ID: req.ID, Results: results, Skipped: stats.Skipped}
}

func sortResults(results []Result, order Order) {
	sort.SliceStable(results, func(i, j int) bool {
		ti, oki := parseTimestamp(results[i].Timestamp)
		tj, okj := parseTimestamp(results[j].Timestamp)
		if oki && okj && !ti.Equal(tj) {
			if order == Ascending {
				return ti.Before(tj)
			}
			return ti.After(tj)
		}
		if results[i].Timestamp != results[j].Timestamp {
			if order == Ascending {
				return results[i].Timestamp < results[j].Timestamp
			}
			return results[i].Timestamp > results[j].Timestamp
		}
		if results[i].File != results[j].File {
			return results[i].File < results[j].File
		}
		return results[i].UUID < results[j].UUID
	})
}

func parseTimestamp(ts string) (time.Time, bool) {
	if ts == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// filterRole retains results whose role equals role under ASCII
// case-insensitive comparison. An empty role passes everything through.
func filterRole(results []Result, role string) []Result {
	if role == "" {
		return results
	}
	out := results[:0:0]
	for _, r := range results {
		if query.MatchesRole(role, r.Role) {
			out = append(out, r)
		}
	}
	return out
}
