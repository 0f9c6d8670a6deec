package cli

import (
	"context"
	"fmt"

	"github.com/galihrivanto/tokenfaucet/config"
	"github.com/galihrivanto/tokenfaucet/faucet"
	"github.com/galihrivanto/tokenfaucet/wallet"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfgFile string
	cfg     config.Config
	logger  = zap.NewNop()
)

var globalFlags = []string{
	config.KeyEndpoint,
	config.KeyExplorer,
	config.KeyRPCURL,
	config.KeyTimeout,
	config.KeyKeyFile,
	config.KeyBridgeURI,
	config.KeyDebug,
}

// RegisterFlags adds the flags shared by every command to root.
func RegisterFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	flags.String(config.KeyEndpoint, "", "faucet claim endpoint")
	flags.String(config.KeyExplorer, "", "block explorer base URL")
	flags.String(config.KeyRPCURL, "", "JSON-RPC endpoint for receipts and chain id")
	flags.Duration(config.KeyTimeout, 0, "claim request timeout (e.g. 30s)")
	flags.String(config.KeyKeyFile, "", "private key file of the receiving wallet")
	flags.String(config.KeyBridgeURI, "", "WalletConnect URI of a remote wallet")
	flags.Bool(config.KeyDebug, false, "verbose logging")
}

// Setup loads configuration and the logger. It runs before every command.
func Setup(cmd *cobra.Command, args []string) error {
	v, err := config.New(cfgFile)
	if err != nil {
		return err
	}

	for _, name := range globalFlags {
		if err := v.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			return err
		}
	}

	cfg, err = config.Load(v)
	if err != nil {
		return err
	}

	logger, err = newLogger(cfg.Debug)
	return err
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	return zc.Build()
}

// openProvider returns the configured wallet provider, or nil when neither
// a key file nor a bridge is set.
func openProvider(ctx context.Context) (faucet.WalletProvider, func(), error) {
	switch {
	case cfg.BridgeURI != "":
		p, err := wallet.DialBridge(ctx, cfg.BridgeURI, logger)
		if err != nil {
			return nil, nil, err
		}
		return p, func() { p.Close() }, nil

	case cfg.KeyFile != "":
		w, err := wallet.LoadWallet(cfg.KeyFile)
		if err != nil {
			return nil, nil, err
		}
		return wallet.NewKeyProvider(w), func() {}, nil

	default:
		return nil, func() {}, nil
	}
}

func newClient(provider faucet.WalletProvider, opts ...faucet.Option) *faucet.Client {
	opts = append([]faucet.Option{
		faucet.WithLogger(logger),
		faucet.WithExplorerBaseURL(cfg.ExplorerURL),
		faucet.WithTimeout(cfg.Timeout),
	}, opts...)
	return faucet.NewClient(cfg.Endpoint, provider, opts...)
}

// connectClient discovers an authorized account or asks the wallet for one.
func connectClient(ctx context.Context, client *faucet.Client) faucet.ClaimResult {
	client.Init(ctx)
	if address, ok := client.Address(); ok {
		return faucet.ClaimResult{Kind: faucet.KindSuccess, Message: "Wallet already connected.", Wallet: address}
	}
	return client.Connect(ctx)
}

func resultError(result faucet.ClaimResult) error {
	if result.OK() {
		return nil
	}
	return fmt.Errorf("%s: %s", result.Kind, result.Message)
}
