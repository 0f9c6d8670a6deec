package wallet

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

// ChainIDSource reports the chain an RPC endpoint serves. *ethclient.Client
// satisfies it.
type ChainIDSource interface {
	ChainID(ctx context.Context) (*big.Int, error)
}

// ChainWatcher polls an RPC endpoint and reports chain switches.
type ChainWatcher struct {
	source   ChainIDSource
	interval time.Duration
	logger   *zap.Logger
	current  *big.Int
}

// DialChainWatcher connects to rpcURL.
func DialChainWatcher(rpcURL string, interval time.Duration, logger *zap.Logger) (*ChainWatcher, error) {
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial rpc: %v", err)
	}
	return NewChainWatcher(client, interval, logger), nil
}

func NewChainWatcher(source ChainIDSource, interval time.Duration, logger *zap.Logger) *ChainWatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChainWatcher{source: source, interval: interval, logger: logger}
}

// Current returns the last observed chain id in 0x form, or "" before the
// first successful poll.
func (w *ChainWatcher) Current() string {
	if w.current == nil {
		return ""
	}
	return hexutil.EncodeBig(w.current)
}

// Poll reads the chain id once and calls onChange if it differs from the
// previous reading. The first reading only sets the baseline.
func (w *ChainWatcher) Poll(ctx context.Context, onChange func(chainID string)) error {
	id, err := w.source.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get chain id: %w", err)
	}

	if w.current == nil {
		w.current = id
		return nil
	}
	if w.current.Cmp(id) == 0 {
		return nil
	}

	w.current = id
	w.logger.Info("chain changed", zap.String("chain_id", w.Current()))
	onChange(w.Current())
	return nil
}

// Watch polls until ctx is done. Poll errors are logged and retried.
func (w *ChainWatcher) Watch(ctx context.Context, onChange func(chainID string)) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if err := w.Poll(ctx, onChange); err != nil {
			w.logger.Warn("chain poll failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
