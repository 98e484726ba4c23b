package app

import (
	"errors"
	"testing"

	"github.com/marcus/ccsearch/internal/search"
)

func TestQueryChangedSchedulesSearch(t *testing.T) {
	s := New()
	s, cmd := Update(s, QueryChanged{Text: "hel"}, Deps{})
	if s.Search.Query != "hel" {
		t.Fatalf("expected query stored, got %q", s.Search.Query)
	}
	found := false
	for _, op := range cmd {
		if sc, ok := op.(ScheduleSearchOp); ok {
			found = true
			if sc.Delay != SearchDebounce {
				t.Errorf("expected debounce delay %v, got %v", SearchDebounce, sc.Delay)
			}
		}
	}
	if !found {
		t.Fatalf("expected a ScheduleSearchOp in %+v", cmd)
	}
}

func TestSearchRequestedIncrementsID(t *testing.T) {
	s := New()
	s, _ = Update(s, QueryChanged{Text: "hel"}, Deps{})
	s, cmd := Update(s, SearchRequested{}, Deps{Pattern: "*.jsonl"})
	if s.Search.CurrentSearchID != 1 {
		t.Fatalf("expected search id 1, got %d", s.Search.CurrentSearchID)
	}
	op, ok := cmd[0].(ExecuteSearchOp)
	if !ok {
		t.Fatalf("expected ExecuteSearchOp, got %+v", cmd)
	}
	if op.Request.QueryText != "hel" || op.Request.ID != 1 {
		t.Fatalf("unexpected request: %+v", op.Request)
	}
}

func TestStaleSearchCompletedIgnored(t *testing.T) {
	s := New()
	s.Search.CurrentSearchID = 5
	s.Search.Results = []search.Result{{UUID: "keep"}}
	before := s.Search.IsSearching

	s, _ = Update(s, SearchCompleted{ID: 4, Results: []search.Result{{UUID: "A"}, {UUID: "B"}}}, Deps{})

	if len(s.Search.Results) != 1 || s.Search.Results[0].UUID != "keep" {
		t.Fatalf("expected results unchanged, got %+v", s.Search.Results)
	}
	if s.Search.IsSearching != before {
		t.Fatalf("expected IsSearching unchanged")
	}
}

func TestSearchCompletedAdoptsMatchingID(t *testing.T) {
	s := New()
	s.Search.CurrentSearchID = 1
	s.Search.IsSearching = true

	s, _ = Update(s, SearchCompleted{ID: 1, Results: []search.Result{{UUID: "A"}}}, Deps{})

	if s.Search.IsSearching {
		t.Fatalf("expected IsSearching cleared")
	}
	if len(s.Search.Results) != 1 || s.Search.Results[0].UUID != "A" {
		t.Fatalf("unexpected results: %+v", s.Search.Results)
	}
}

func TestSearchCompletedErrorSurfacedAsStatus(t *testing.T) {
	s := New()
	s.Search.CurrentSearchID = 1
	s, _ = Update(s, SearchCompleted{ID: 1, Err: errors.New("boom")}, Deps{})
	if s.UI.Status != "boom" {
		t.Fatalf("expected status set to error text, got %q", s.UI.Status)
	}
}

func TestRoleFilterCycleAndOrderTogglePersistAcrossHistory(t *testing.T) {
	s := New()
	s.Search.Results = []search.Result{{UUID: "a"}}

	s, _ = Update(s, EnterMessageDetail{}, Deps{})
	s, _ = Update(s, ExitToSearch{}, Deps{})

	s, _ = Update(s, ToggleRoleFilter{}, Deps{})
	s, _ = Update(s, ToggleRoleFilter{}, Deps{})
	s, _ = Update(s, ToggleRoleFilter{}, Deps{})
	s, _ = Update(s, ToggleSearchOrder{}, Deps{})

	s, _ = Update(s, EnterMessageDetail{}, Deps{})
	s, _ = Update(s, ExitToSearch{}, Deps{})

	if s.Search.RoleFilter != RoleSystem {
		t.Fatalf("expected role filter system, got %v", s.Search.RoleFilter)
	}
	if s.Search.Order != search.Ascending {
		t.Fatalf("expected order ascending, got %v", s.Search.Order)
	}
}

func TestSessionFilterSortsEmptyTimestampsFirst(t *testing.T) {
	lines := []string{
		`{"type":"user","uuid":"u0","sessionId":"s1","message":{"role":"user","content":"no time"}}`,
		`{"type":"user","uuid":"u1","timestamp":"2024-01-02T00:00:00Z","sessionId":"s1","message":{"role":"user","content":"later"}}`,
		`{"type":"user","uuid":"u2","timestamp":"2024-01-01T00:00:00Z","sessionId":"s1","message":{"role":"user","content":"earlier"}}`,
	}

	s := New()
	s, _ = Update(s, SessionLoaded{Lines: lines, Path: "f", SessionID: "s1"}, Deps{})

	if got := s.Session.FilteredIndices; !equalInts(got, []int{0, 2, 1}) {
		t.Fatalf("ascending: expected [0 2 1], got %v", got)
	}

	s, _ = Update(s, ToggleSessionOrder{}, Deps{})
	if got := s.Session.FilteredIndices; !equalInts(got, []int{0, 1, 2}) {
		t.Fatalf("descending: expected [0 1 2], got %v", got)
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNavigateBackAcrossHelp(t *testing.T) {
	s := New()
	s, _ = Update(s, ShowHelp{}, Deps{})
	s, _ = Update(s, CloseHelp{}, Deps{})
	if s.Mode != ModeSearch {
		t.Fatalf("expected search mode after closing help, got %v", s.Mode)
	}
	s, _ = Update(s, NavigateForward{}, Deps{})
	if s.Mode != ModeHelp {
		t.Fatalf("expected forward navigation to re-enter help, got %v", s.Mode)
	}
}

func TestQuitPrimingClearedByOtherMessage(t *testing.T) {
	s := New()
	s, _ = Update(s, PrimeQuit{}, Deps{})
	if !s.QuitPrimed {
		t.Fatalf("expected quit primed")
	}
	s, cmd := Update(s, QueryChanged{Text: "x"}, Deps{})
	if s.QuitPrimed {
		t.Fatalf("expected quit priming cleared by unrelated message")
	}
	_ = cmd
}

func TestSelectedIndexInvariantAfterEmptyResults(t *testing.T) {
	s := New()
	s.Search.CurrentSearchID = 1
	s.Search.Selected = 3
	s, _ = Update(s, SearchCompleted{ID: 1, Results: nil}, Deps{})
	if s.Search.Selected != 0 {
		t.Fatalf("expected selected index reset to 0 on empty results, got %d", s.Search.Selected)
	}
}
