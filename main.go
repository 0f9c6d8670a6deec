package main

import (
	"fmt"
	"os"

	"github.com/galihrivanto/tokenfaucet/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:               "tokenfaucet",
	Short:             "Claim testnet tokens from a faucet",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: cli.Setup,
}

func main() {
	cli.RegisterFlags(rootCmd)
	rootCmd.AddCommand(cli.ClaimCmd)
	rootCmd.AddCommand(cli.ConnectCmd)
	rootCmd.AddCommand(cli.TokensCmd)
	rootCmd.AddCommand(cli.WalletCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
