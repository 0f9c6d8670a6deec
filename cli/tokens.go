package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var TokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "List the tokens the faucet dispenses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalogue, err := cfg.Catalogue()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if catalogue.Len() == 0 {
			fmt.Fprintln(out, "No tokens configured. Add a tokens list to the config file.")
			return nil
		}

		header := lipgloss.NewStyle().Bold(true)
		fmt.Fprintln(out, header.Render(fmt.Sprintf("%-8s %-42s %s", "SYMBOL", "CONTRACT", "DECIMALS")))
		for _, t := range catalogue.Tokens() {
			fmt.Fprintf(out, "%-8s %-42s %d\n", t.Symbol, t.Address, t.Decimals)
		}
		return nil
	},
}
