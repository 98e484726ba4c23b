package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/marcus/ccsearch/internal/query"
	"github.com/marcus/ccsearch/internal/search"
)

// previewContextLength mirrors original_source/src/search/engine.rs's
// format_preview context_length argument; previewContextBefore is the
// portion of it reserved for text preceding the match.
const (
	previewContextLength = 150
	previewContextBefore = 50
)

var flagJSON bool
var flagFullText bool

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Run a one-shot search and print matching messages",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&flagJSON, "json", false, "print results as JSON")
	searchCmd.Flags().BoolVar(&flagFullText, "full-text", false, "print full message text instead of a truncated preview")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := resolveConfig()
	logger, closeLog := newLogger(cfg.Debug)
	defer closeLog()

	cond, err := query.Parse(args[0])
	if err != nil {
		return &queryParseError{err: err}
	}

	svc := search.NewService(cfg.CorpusDir, logger)
	req := search.Request{
		ID:          1,
		QueryText:   args[0],
		RoleFilter:  flagRole,
		Pattern:     cfg.Pattern,
		Order:       search.Descending,
		SessionID:   flagSessionID,
		ProjectPath: flagProjectPath,
		Before:      flagBefore,
		After:       flagAfter,
	}

	resp := svc.Search(context.Background(), req)
	if resp.Error != nil {
		return resp.Error
	}

	results := resp.Results
	if flagMax > 0 && len(results) > flagMax {
		results = results[:flagMax]
	}

	if flagJSON {
		return printJSON(cmd, results)
	}
	printText(cmd, results, cond, cfg.NoColor)
	return nil
}

func printJSON(cmd *cobra.Command, results []search.Result) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func printText(cmd *cobra.Command, results []search.Result, cond query.Condition, noColor bool) {
	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "No matches found.")
		return
	}

	roleStyle := lipgloss.NewStyle().Bold(true)
	tsStyle := lipgloss.NewStyle().Faint(true)
	if noColor {
		roleStyle = lipgloss.NewStyle()
		tsStyle = lipgloss.NewStyle()
	}

	for _, r := range results {
		var text string
		if flagFullText {
			text = strings.Join(strings.Fields(r.Text), " ")
		} else {
			text = formatPreview(r.Text, cond, previewContextLength)
		}
		fmt.Fprintf(out, "%s %s %s\n  %s\n\n",
			tsStyle.Render(r.Timestamp),
			roleStyle.Render("["+r.Role+"]"),
			tsStyle.Render(r.SessionID),
			text,
		)
	}
	fmt.Fprintf(out, "%d result(s)\n", len(results))
}

// formatPreview builds a one-line preview of text centered on cond's
// first match, with ellipses marking truncated ends — a port of
// original_source/src/search/engine.rs's format_preview, byte-offset
// UTF-8 boundary handling included since Go strings are UTF-8 byte
// sequences just like the Rust &str it was ported from.
func formatPreview(text string, cond query.Condition, contextLength int) string {
	var (
		start, length int
		hasMatch      bool
	)
	if cond != nil {
		start, length, hasMatch = cond.FindIndex(text)
	}

	var preview string
	var hasPrefix, hasSuffix bool

	if hasMatch {
		contextAfter := contextLength - previewContextBefore
		if contextAfter < 0 {
			contextAfter = 0
		}
		previewStart := start - previewContextBefore
		if previewStart < 0 {
			previewStart = 0
		}
		previewEnd := start + length + contextAfter
		if previewEnd > len(text) {
			previewEnd = len(text)
		}

		actualStart := previewStart
		for actualStart > 0 && !utf8.RuneStart(text[actualStart]) {
			actualStart--
		}
		actualEnd := previewEnd
		for actualEnd < len(text) && !utf8.RuneStart(text[actualEnd]) {
			actualEnd++
		}

		preview = text[actualStart:actualEnd]
		hasPrefix = actualStart > 0
		hasSuffix = actualEnd < len(text)
	} else {
		end := contextLength
		if end > len(text) {
			end = len(text)
		}
		actualEnd := end
		for actualEnd < len(text) && !utf8.RuneStart(text[actualEnd]) {
			actualEnd++
		}
		preview = text[:actualEnd]
		hasSuffix = actualEnd < len(text)
	}

	cleaned := strings.Join(strings.Fields(strings.ReplaceAll(preview, "\n", " ")), " ")
	if hasPrefix {
		cleaned = "..." + cleaned
	}
	if hasSuffix {
		cleaned = cleaned + "..."
	}
	return cleaned
}
