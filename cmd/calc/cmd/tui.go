package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the terminal calculator",
	Long: `Start the interactive terminal calculator.

Keys:
  0-9 . ,        - digits and decimal point
  + - * x /      - operators
  = Enter        - equals
  Esc            - clear (AC)
  Delete         - clear entry (CE)
  Backspace      - remove last digit
  n _            - toggle sign
  arrows hjkl    - move over the keypad, Space presses
  ?              - toggle help
  q Ctrl+C       - quit

Logs go to the file configured under [log] so the screen stays clean.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if err := observability.InitFileLogger(cfg.Log.File, cfg.Log.Level); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer observability.SyncLogger()

	p := tea.NewProgram(
		tui.New(tui.Config{
			ShowHelp: cfg.TUI.ShowHelp,
			Logger:   observability.Logger.Named("tui"),
		}),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	return nil
}
