package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"go-chi-calculator/internal/keypad"
	"go-chi-calculator/internal/model"
)

var evalCmd = &cobra.Command{
	Use:   "eval <keys>...",
	Short: "Replay key strings on a fresh calculator",
	Long: `Replay key strings on a fresh calculator and print the expression
line followed by the display line.

Each argument is a compact key string, one character per key:

  calc eval '15+25*2='
  calc eval 12 + 3 =

The command fails when the calculator ends in an error state.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	keys, err := keypad.Tokens(strings.Join(args, ""))
	if err != nil {
		return err
	}

	c := model.New()
	keypad.PressAll(c, keys)

	out := cmd.OutOrStdout()
	if expr := c.ExpressionDisplay(); expr != "" {
		fmt.Fprintln(out, expr)
	}
	fmt.Fprintln(out, c.CurrentDisplay())

	if c.HasError() {
		return errors.Join(errors.New("calculator error"), c.Err())
	}
	return nil
}
