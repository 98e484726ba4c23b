package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marcus/ccsearch/internal/statsfmt"
)

var flagStatsFormat string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print a summary of the conversation corpus",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVar(&flagStatsFormat, "format", "text", "output format: text, json, or yaml")
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg := resolveConfig()

	sum, err := statsfmt.Compute(context.Background(), cfg.CorpusDir, cfg.Pattern)
	if err != nil {
		return err
	}

	out, err := statsfmt.Format(sum, flagStatsFormat)
	if err != nil {
		return err
	}
	if strings.HasSuffix(out, "\n") {
		fmt.Fprint(cmd.OutOrStdout(), out)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), out)
	}
	return nil
}
