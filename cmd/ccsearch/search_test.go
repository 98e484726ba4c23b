package main

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/marcus/ccsearch/internal/query"
)

func TestFormatPreviewCentersWindowOnMatch(t *testing.T) {
	cond, err := query.Parse("needle")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	text := strings.Repeat("padding ", 40) + "needle" + strings.Repeat(" more", 40)

	out := formatPreview(text, cond, previewContextLength)
	if !strings.Contains(out, "needle") {
		t.Fatalf("expected preview to contain the match, got %q", out)
	}
	if !strings.HasPrefix(out, "...") {
		t.Fatalf("expected leading ellipsis for a match past the start, got %q", out)
	}
	if !strings.HasSuffix(out, "...") {
		t.Fatalf("expected trailing ellipsis for a match before the end, got %q", out)
	}
}

func TestFormatPreviewNoMatchShowsStartOfText(t *testing.T) {
	cond, err := query.Parse("absent")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	text := strings.Repeat("x", 300)

	out := formatPreview(text, cond, previewContextLength)
	if strings.HasPrefix(out, "...") {
		t.Fatalf("expected no leading ellipsis when there is no match, got %q", out)
	}
	if !strings.HasSuffix(out, "...") {
		t.Fatalf("expected trailing ellipsis for truncated text, got %q", out)
	}
}

func TestFormatPreviewShortTextUntouched(t *testing.T) {
	cond, err := query.Parse("hi")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out := formatPreview("hi there", cond, previewContextLength)
	if out != "hi there" {
		t.Fatalf("expected short text returned verbatim, got %q", out)
	}
}

func TestFormatPreviewUTF8BoundarySafe(t *testing.T) {
	cond, err := query.Parse("é")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	text := strings.Repeat("a", 60) + "café" + strings.Repeat("b", 200)

	out := formatPreview(text, cond, previewContextLength)
	if !utf8.ValidString(out) {
		t.Fatalf("expected a valid UTF-8 preview, got %q", out)
	}
}
