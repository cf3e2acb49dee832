package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"go-chi-calculator/internal/keypad"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the key vocabulary",
	Long: `List every calculator key with the tokens accepted for it by
eval, the terminal UI and the HTTP API.`,
	Args: cobra.NoArgs,
	RunE: runKeys,
}

func init() {
	rootCmd.AddCommand(keysCmd)
}

func runKeys(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tTOKENS")
	for _, k := range keypad.Keys() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", k.Label(), k.Name(), strings.Join(k.Aliases(), " "))
	}
	return w.Flush()
}
