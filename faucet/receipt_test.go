package faucet

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReceipts struct {
	pending int
	err     error
	calls   int
}

func (f *fakeReceipts) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.calls <= f.pending {
		return nil, ethereum.NotFound
	}
	return &types.Receipt{
		TxHash:      hash,
		Status:      types.ReceiptStatusSuccessful,
		BlockNumber: big.NewInt(4242),
		GasUsed:     52000,
	}, nil
}

func TestReceiptWatcher_Wait(t *testing.T) {
	source := &fakeReceipts{pending: 2}
	watcher := NewReceiptWatcher(source, time.Millisecond, nil)

	receipt, err := watcher.Wait(context.Background(), validHash)
	require.NoError(t, err)
	assert.Equal(t, uint64(4242), receipt.BlockNumber)
	assert.True(t, receipt.Succeeded)
	assert.Equal(t, 3, source.calls)
}

func TestReceiptWatcher_InvalidHash(t *testing.T) {
	watcher := NewReceiptWatcher(&fakeReceipts{}, time.Millisecond, nil)

	_, err := watcher.Wait(context.Background(), "0x1234")
	assert.ErrorIs(t, err, ErrInvalidTxHash)
}

func TestReceiptWatcher_Timeout(t *testing.T) {
	watcher := NewReceiptWatcher(&fakeReceipts{pending: 1 << 30}, time.Millisecond, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := watcher.Wait(ctx, validHash)
	assert.ErrorIs(t, err, ErrReceiptTimeout)
}

func TestReceiptWatcher_RPCError(t *testing.T) {
	watcher := NewReceiptWatcher(&fakeReceipts{err: errors.New("rpc down")}, time.Millisecond, nil)

	_, err := watcher.Wait(context.Background(), validHash)
	assert.ErrorContains(t, err, "rpc down")
}
