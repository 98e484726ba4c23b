package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marcus/ccsearch/internal/search"
	"github.com/marcus/ccsearch/internal/shell"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch the interactive terminal UI",
	Args:  cobra.NoArgs,
	RunE:  runInteractive,
}

func runInteractive(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("ccsearch interactive requires an interactive terminal")
	}

	cfg := resolveConfig()
	logger, closeLog := newLogger(cfg.Debug)
	defer closeLog()

	svc := search.NewService(cfg.CorpusDir, logger)
	filters := shell.InitialFilters{
		Role:        flagRole,
		SessionID:   flagSessionID,
		ProjectPath: flagProjectPath,
		Before:      flagBefore,
		After:       flagAfter,
	}
	model := shell.New(svc, cfg.Pattern, logger, filters)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
