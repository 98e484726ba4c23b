// Package statsfmt computes and formats the corpus statistics summary
// the "stats" CLI subcommand prints: the §6 "statistics formatter"
// external collaborator. Grounded on the per-model token/cost rate table
// the teacher's Claude Code adapter computes session cost estimates
// with, and on the original Rust implementation's stats report shape.
package statsfmt

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/marcus/ccsearch/internal/corpus"
	"gopkg.in/yaml.v3"
)

// Summary is the aggregate view of a corpus.
type Summary struct {
	TotalRecords   int            `json:"total_records" yaml:"total_records"`
	TotalSessions  int            `json:"total_sessions" yaml:"total_sessions"`
	RoleCounts     map[string]int `json:"role_counts" yaml:"role_counts"`
	FirstTimestamp string         `json:"first_timestamp,omitempty" yaml:"first_timestamp,omitempty"`
	LastTimestamp  string         `json:"last_timestamp,omitempty" yaml:"last_timestamp,omitempty"`
	SkippedRecords int64          `json:"skipped_records" yaml:"skipped_records"`
	EstimatedCost  float64        `json:"estimated_cost_usd" yaml:"estimated_cost_usd"`
}

// rate is the per-million-token USD price for a model family's input and
// output tokens. Cache-read input is billed at 10% of the input rate, a
// flat discount matching every current Claude pricing tier.
type rate struct{ in, out float64 }

var modelRates = map[string]rate{
	"opus":    {in: 15, out: 75},
	"sonnet":  {in: 3, out: 15},
	"haiku":   {in: 0.25, out: 1.25},
	"default": {in: 3, out: 15},
}

func rateFor(model string) rate {
	m := strings.ToLower(model)
	for key, r := range modelRates {
		if key != "default" && strings.Contains(m, key) {
			return r
		}
	}
	return modelRates["default"]
}

// tokenUsage mirrors the minimal fields a record's raw JSON usage block
// carries, when present.
type tokenUsage struct {
	InputTokens         int `json:"input_tokens"`
	OutputTokens        int `json:"output_tokens"`
	CacheReadInputToken int `json:"cache_read_input_tokens"`
}

type rawUsageLine struct {
	Message *struct {
		Model string      `json:"model"`
		Usage *tokenUsage `json:"usage"`
	} `json:"message"`
}

// Compute scans dir for records matching pattern and aggregates them.
func Compute(ctx context.Context, dir, pattern string) (Summary, error) {
	records, stats, err := corpus.Scan(ctx, dir, pattern)
	if err != nil {
		return Summary{}, fmt.Errorf("statsfmt: %w", err)
	}

	sum := Summary{RoleCounts: map[string]int{}}
	sessions := map[string]struct{}{}
	var first, last time.Time
	haveRange := false

	for rec := range records {
		sum.TotalRecords++
		sum.RoleCounts[rec.Role]++
		sessions[rec.SessionID] = struct{}{}

		if t, err := time.Parse(time.RFC3339, rec.Timestamp); err == nil {
			if !haveRange {
				first, last = t, t
				haveRange = true
			} else {
				if t.Before(first) {
					first = t
				}
				if t.After(last) {
					last = t
				}
			}
		}

		var raw rawUsageLine
		if err := json.Unmarshal(rec.Raw, &raw); err == nil && raw.Message != nil && raw.Message.Usage != nil {
			r := rateFor(raw.Message.Model)
			u := raw.Message.Usage
			sum.EstimatedCost += float64(u.InputTokens) / 1_000_000 * r.in
			sum.EstimatedCost += float64(u.CacheReadInputToken) / 1_000_000 * r.in * 0.1
			sum.EstimatedCost += float64(u.OutputTokens) / 1_000_000 * r.out
		}
	}

	sum.TotalSessions = len(sessions)
	sum.SkippedRecords = stats.Skipped
	if haveRange {
		sum.FirstTimestamp = first.Format(time.RFC3339)
		sum.LastTimestamp = last.Format(time.RFC3339)
	}
	return sum, nil
}

// Format renders sum in the requested style: "text" (default), "json",
// or "yaml".
func Format(sum Summary, format string) (string, error) {
	switch format {
	case "", "text":
		return formatText(sum), nil
	case "json":
		b, err := json.MarshalIndent(sum, "", "  ")
		if err != nil {
			return "", err
		}
		return string(b), nil
	case "yaml":
		b, err := yaml.Marshal(sum)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("statsfmt: unknown format %q", format)
	}
}

func formatText(sum Summary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Sessions:        %d\n", sum.TotalSessions)
	fmt.Fprintf(&sb, "Records:         %d\n", sum.TotalRecords)
	fmt.Fprintf(&sb, "Skipped:         %d\n", sum.SkippedRecords)
	if sum.FirstTimestamp != "" {
		fmt.Fprintf(&sb, "Range:           %s .. %s\n", sum.FirstTimestamp, sum.LastTimestamp)
	}
	fmt.Fprintf(&sb, "Estimated cost:  $%.4f\n", sum.EstimatedCost)
	sb.WriteString("By role:\n")
	roles := make([]string, 0, len(sum.RoleCounts))
	for r := range sum.RoleCounts {
		roles = append(roles, r)
	}
	sort.Strings(roles)
	for _, r := range roles {
		fmt.Fprintf(&sb, "  %-10s %d\n", r, sum.RoleCounts[r])
	}
	return sb.String()
}
