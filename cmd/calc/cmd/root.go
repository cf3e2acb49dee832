package cmd

import (
	"github.com/spf13/cobra"

	"go-chi-calculator/internal/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "calc",
	Short: "Four-function decimal calculator",
	Long: `calc is a four-function calculator with immediate-apply semantics:
each operator evaluates the pending operation before it is recorded.

Commands:
  tui   - interactive terminal calculator
  eval  - replay key strings and print the result
  keys  - list the key vocabulary`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = c
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (TOML)")
}
