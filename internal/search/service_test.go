package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
}

func TestSearchEmptyQueryReturnsEmptyNoError(t *testing.T) {
	svc := NewService(t.TempDir(), nil)
	resp := svc.Search(context.Background(), Request{ID: 1, QueryText: ""})
	if resp.Error != nil || len(resp.Results) != 0 {
		t.Fatalf("expected empty response, got %+v", resp)
	}
}

func TestSearchParseErrorSurfacedAsError(t *testing.T) {
	svc := NewService(t.TempDir(), nil)
	resp := svc.Search(context.Background(), Request{ID: 1, QueryText: "AND foo"})
	if resp.Error == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSearchMatchesAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "s.jsonl", `{"type":"user","uuid":"u1","timestamp":"2024-01-01T00:00:00Z","sessionId":"s1","message":{"role":"user","content":"alpha needle"}}
{"type":"assistant","uuid":"a1","timestamp":"2024-01-02T00:00:00Z","sessionId":"s1","message":{"role":"assistant","content":"beta needle"}}
{"type":"user","uuid":"u2","timestamp":"2024-01-01T12:00:00Z","sessionId":"s1","message":{"role":"user","content":"no match"}}
`)
	svc := NewService(dir, nil)
	resp := svc.Search(context.Background(), Request{ID: 1, QueryText: "needle", Pattern: "*.jsonl", Order: Descending})
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d: %+v", len(resp.Results), resp.Results)
	}
	if resp.Results[0].UUID != "a1" || resp.Results[1].UUID != "u1" {
		t.Errorf("expected descending order, got %v, %v", resp.Results[0].UUID, resp.Results[1].UUID)
	}
}

func TestSearchRoleFilterAppliesAfterCap(t *testing.T) {
	dir := t.TempDir()
	var lines string
	for i := 0; i < 5; i++ {
		lines += `{"type":"assistant","uuid":"a` + string(rune('0'+i)) + `","timestamp":"2024-01-01T00:00:0` + string(rune('0'+i)) + `Z","sessionId":"s1","message":{"role":"assistant","content":"needle"}}` + "\n"
	}
	lines += `{"type":"user","uuid":"u0","timestamp":"2024-01-01T00:01:00Z","sessionId":"s1","message":{"role":"user","content":"needle"}}`
	writeFixture(t, dir, "s.jsonl", lines)

	svc := NewService(dir, nil)
	resp := svc.Search(context.Background(), Request{ID: 1, QueryText: "needle", Pattern: "*.jsonl", RoleFilter: "user"})
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}
	for _, r := range resp.Results {
		if r.Role != "user" {
			t.Errorf("expected only user role, got %q", r.Role)
		}
	}
}

func TestSearchCapsAtMaxResults(t *testing.T) {
	dir := t.TempDir()
	var lines string
	for i := 0; i < 1100; i++ {
		lines += `{"type":"user","uuid":"u` + itoa(i) + `","timestamp":"2024-01-01T00:00:00Z","sessionId":"s1","message":{"role":"user","content":"needle"}}` + "\n"
	}
	writeFixture(t, dir, "s.jsonl", lines)

	svc := NewService(dir, nil)
	resp := svc.Search(context.Background(), Request{ID: 1, QueryText: "needle", Pattern: "*.jsonl"})
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}
	if len(resp.Results) != MaxResults {
		t.Fatalf("expected cap of %d, got %d", MaxResults, len(resp.Results))
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [12]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
