package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/marcus/ccsearch/internal/config"
	"github.com/marcus/ccsearch/internal/corpus"
)

var (
	flagPattern     string
	flagCorpusDir   string
	flagNoColor     bool
	flagDebug       bool
	flagRole        string
	flagMax         int
	flagBefore      string
	flagAfter       string
	flagSessionID   string
	flagProjectPath string
)

var rootCmd = &cobra.Command{
	Use:   "ccsearch",
	Short: "Search your local Claude Code conversation history",
	Long: `ccsearch searches the JSONL session logs Claude Code writes to disk,
either as a one-shot command-line query or in an interactive terminal UI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagPattern, "pattern", "", "glob pattern for session files (env CLAUDE_CHAT_PATTERN)")
	rootCmd.PersistentFlags().StringVar(&flagCorpusDir, "corpus-dir", "", "override the corpus directory (default: Claude Code's project log directory)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging to the log file")

	rootCmd.AddCommand(searchCmd, interactiveCmd, statsCmd)
	addFilterFlags(searchCmd)
	addFilterFlags(interactiveCmd)
}

// addFilterFlags registers the filter flags spec §6 shares between
// "search" and "interactive" (as an initial value, for the latter).
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagMax, "max", 0, "maximum results to print (0 = service default cap)")
	cmd.Flags().StringVar(&flagBefore, "before", "", "only records at or before this RFC3339 timestamp")
	cmd.Flags().StringVar(&flagAfter, "after", "", "only records at or after this RFC3339 timestamp")
	cmd.Flags().StringVar(&flagSessionID, "session-id", "", "only records from this session id")
	cmd.Flags().StringVar(&flagRole, "role", "", "only records with this role (user/assistant/system)")
	cmd.Flags().StringVar(&flagProjectPath, "project-path", "", "only records whose cwd matches this path")
}

// resolveConfig layers flags over CLAUDE_CHAT_PATTERN over the
// built-in default, and expands a leading ~ in the corpus directory.
func resolveConfig() config.Config {
	dir := flagCorpusDir
	if dir == "" {
		dir = corpus.DefaultDir()
	} else {
		dir = config.ExpandHome(dir)
	}
	return config.Resolve(flagPattern, dir, flagNoColor, flagDebug)
}

// newLogger opens the append-only debug log file ccsearch-debug.log in
// the OS temp directory, matching the teacher's "always log to file, never
// to stderr" convention so the TUI's alt-screen never gets corrupted
// by interleaved log lines.
func newLogger(debug bool) (*slog.Logger, func()) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	logPath := filepath.Join(os.TempDir(), "ccsearch-debug.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	var w io.Writer = io.Discard
	closeFn := func() {}
	if err == nil {
		w = f
		closeFn = func() { _ = f.Close() }
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, closeFn
}
