package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/galihrivanto/tokenfaucet/faucet"
	"github.com/galihrivanto/tokenfaucet/render"
	"github.com/galihrivanto/tokenfaucet/wallet"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var connectWatch bool

var ConnectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Connect the wallet and show its address",
	Args:  cobra.NoArgs,
	RunE:  runConnect,
}

func init() {
	ConnectCmd.Flags().BoolVar(&connectWatch, "watch", false, "keep running and report account and network changes")
}

func runConnect(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()

	provider, closeProvider, err := openProvider(ctx)
	if err != nil {
		return err
	}
	defer closeProvider()

	client := newClient(provider, faucet.WithSessionObserver(func(ev faucet.SessionEvent) {
		if connectWatch {
			if notice := render.Notice(ev); notice != "" {
				fmt.Fprintln(out, notice)
			}
		}
	}))

	result := connectClient(ctx, client)
	fmt.Fprintln(out, render.Alert(result))
	if err := resultError(result); err != nil || !connectWatch {
		return err
	}

	return watchSession(ctx, provider)
}

// watchSession blocks until ctx is done or the bridge goes away. A local key
// has no wallet pushing chain switches, so the RPC endpoint is polled.
func watchSession(ctx context.Context, provider faucet.WalletProvider) error {
	switch p := provider.(type) {
	case *wallet.BridgeProvider:
		select {
		case <-ctx.Done():
		case <-p.Done():
			return wallet.ErrBridgeClosed
		}
	case *wallet.KeyProvider:
		watcher, err := wallet.DialChainWatcher(cfg.RPCURL, 15*time.Second, logger)
		if err != nil {
			return err
		}
		watcher.Watch(ctx, p.SetChain)
	default:
		<-ctx.Done()
	}

	logger.Debug("stopped watching session", zap.Error(ctx.Err()))
	return nil
}
