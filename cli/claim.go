package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/galihrivanto/tokenfaucet/faucet"
	"github.com/galihrivanto/tokenfaucet/render"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	claimToken string
	claimWait  bool
	claimPlain bool
)

var ClaimCmd = &cobra.Command{
	Use:   "claim",
	Short: "Claim testnet tokens for the connected wallet",
	Args:  cobra.NoArgs,
	RunE:  runClaim,
}

func init() {
	ClaimCmd.Flags().StringVarP(&claimToken, "token", "t", "", "token symbol to claim")
	ClaimCmd.Flags().BoolVar(&claimWait, "wait", false, "wait for the claim transaction to be mined")
	ClaimCmd.Flags().BoolVar(&claimPlain, "plain", false, "print the result without the interactive spinner")
}

func runClaim(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	catalogue, err := cfg.Catalogue()
	if err != nil {
		return err
	}
	if claimToken != "" && catalogue.Len() > 0 {
		if _, err := catalogue.Lookup(claimToken); err != nil {
			return fmt.Errorf("%w (available: %v)", err, catalogue.Symbols())
		}
	}

	provider, closeProvider, err := openProvider(ctx)
	if err != nil {
		return err
	}
	defer closeProvider()

	client := newClient(provider)
	if connected := connectClient(ctx, client); !connected.OK() {
		fmt.Fprintln(out, render.Alert(connected))
		return resultError(connected)
	}

	submit := func() faucet.ClaimResult {
		return client.SubmitClaim(ctx, claimToken)
	}

	var result faucet.ClaimResult
	if claimPlain || !isatty.IsTerminal(os.Stdout.Fd()) {
		result = submit()
		fmt.Fprintln(out, render.Alert(result))
	} else {
		var done bool
		result, done, err = render.RunClaim(claimToken, submit, tea.WithOutput(out))
		if err != nil {
			return err
		}
		if !done {
			return fmt.Errorf("claim interrupted")
		}
	}

	if err := resultError(result); err != nil {
		return err
	}

	if claimWait && result.ExplorerAvailable {
		return waitReceipt(ctx, cmd, result.TxHash)
	}
	return nil
}

func waitReceipt(ctx context.Context, cmd *cobra.Command, txHash string) error {
	watcher, err := faucet.DialReceiptWatcher(cfg.RPCURL, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Minute)
	defer cancel()

	fmt.Fprintln(cmd.OutOrStdout(), "Waiting for transaction to be mined...")
	receipt, err := watcher.Wait(ctx, txHash)
	if err != nil {
		return err
	}

	logger.Info("claim mined", zap.Uint64("block", receipt.BlockNumber), zap.Bool("succeeded", receipt.Succeeded))
	if !receipt.Succeeded {
		return fmt.Errorf("transaction %s reverted in block %d", txHash, receipt.BlockNumber)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Mined in block %d (gas used %d)\n", receipt.BlockNumber, receipt.GasUsed)
	return nil
}
