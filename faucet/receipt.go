package faucet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

// ReceiptSource fetches transaction receipts. *ethclient.Client satisfies it.
type ReceiptSource interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Receipt summarizes a mined claim transaction.
type Receipt struct {
	TxHash      string
	BlockNumber uint64
	Succeeded   bool
	GasUsed     uint64
}

// ReceiptWatcher waits for a claim transaction to be mined.
type ReceiptWatcher struct {
	source   ReceiptSource
	interval time.Duration
	logger   *zap.Logger
}

// DialReceiptWatcher connects to an RPC endpoint.
func DialReceiptWatcher(rpcURL string, logger *zap.Logger) (*ReceiptWatcher, error) {
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial rpc: %w", err)
	}
	return NewReceiptWatcher(client, 2*time.Second, logger), nil
}

func NewReceiptWatcher(source ReceiptSource, interval time.Duration, logger *zap.Logger) *ReceiptWatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReceiptWatcher{source: source, interval: interval, logger: logger}
}

// Wait polls until the receipt is available or ctx is done.
func (w *ReceiptWatcher) Wait(ctx context.Context, txHash string) (*Receipt, error) {
	if !ValidTxHash(txHash) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTxHash, txHash)
	}
	hash := common.HexToHash(txHash)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		receipt, err := w.source.TransactionReceipt(ctx, hash)
		switch {
		case err == nil:
			return &Receipt{
				TxHash:      txHash,
				BlockNumber: receipt.BlockNumber.Uint64(),
				Succeeded:   receipt.Status == types.ReceiptStatusSuccessful,
				GasUsed:     receipt.GasUsed,
			}, nil
		case errors.Is(err, ethereum.NotFound):
			w.logger.Debug("receipt not found yet", zap.String("tx_hash", txHash))
		default:
			return nil, fmt.Errorf("failed to fetch receipt: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrReceiptTimeout, ctx.Err())
		case <-ticker.C:
		}
	}
}
