// Command ccsearch searches local Claude Code conversation logs:
// one-shot from the command line, or interactively in a terminal UI.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps an error to the exit codes spec §6 documents:
// 0 normal, 2 query parse error, 1 other failure.
func exitCodeFor(err error) int {
	if _, ok := err.(*queryParseError); ok {
		return 2
	}
	return 1
}

// queryParseError wraps a query.Parse failure so exitCodeFor can
// distinguish it from every other kind of failure without cobra's
// generic error path needing to know about query syntax at all.
type queryParseError struct{ err error }

func (e *queryParseError) Error() string { return e.err.Error() }
func (e *queryParseError) Unwrap() error { return e.err }
