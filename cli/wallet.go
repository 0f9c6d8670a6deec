package cli

import (
	"fmt"

	"github.com/galihrivanto/tokenfaucet/render"
	"github.com/galihrivanto/tokenfaucet/wallet"
	"github.com/spf13/cobra"
)

var WalletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage local wallets",
}

var generateOut string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new wallet",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := wallet.GenerateWallet()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Address:", w.Address)
		if generateOut == "" {
			fmt.Fprintln(out, "Private key:", w.PrivateKey)
			return nil
		}

		if err := w.Save(generateOut); err != nil {
			return err
		}
		fmt.Fprintln(out, "Wallet saved to", generateOut)
		return nil
	},
}

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Show the address of the configured key file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.KeyFile == "" {
			return fmt.Errorf("--key is required")
		}
		w, err := wallet.LoadWallet(cfg.KeyFile)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", w.Address, render.ShortAddress(w.Address))
		return nil
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Check the native balance of an address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		balance, err := wallet.Balance(cmd.Context(), cfg.RPCURL, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s ETH\n", balance.Text('f', 6))
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "write the private key to this file")

	WalletCmd.AddCommand(generateCmd)
	WalletCmd.AddCommand(addressCmd)
	WalletCmd.AddCommand(balanceCmd)
}
