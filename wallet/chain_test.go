package wallet

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChain struct {
	ids []int64
	err error
	i   int
}

func (f *fakeChain) ChainID(ctx context.Context) (*big.Int, error) {
	if f.err != nil {
		return nil, f.err
	}
	id := f.ids[f.i]
	if f.i < len(f.ids)-1 {
		f.i++
	}
	return big.NewInt(id), nil
}

func TestChainWatcher_Poll(t *testing.T) {
	watcher := NewChainWatcher(&fakeChain{ids: []int64{11155111, 11155111, 10143}}, time.Millisecond, nil)

	var changes []string
	onChange := func(id string) { changes = append(changes, id) }

	for i := 0; i < 3; i++ {
		require.NoError(t, watcher.Poll(context.Background(), onChange))
	}

	assert.Equal(t, []string{"0x279f"}, changes)
	assert.Equal(t, "0x279f", watcher.Current())
}

func TestChainWatcher_PollError(t *testing.T) {
	watcher := NewChainWatcher(&fakeChain{err: errors.New("rpc down")}, time.Millisecond, nil)

	err := watcher.Poll(context.Background(), func(string) {})
	assert.ErrorContains(t, err, "rpc down")
	assert.Empty(t, watcher.Current())
}

func TestChainWatcher_Watch(t *testing.T) {
	watcher := NewChainWatcher(&fakeChain{ids: []int64{1, 5}}, time.Millisecond, nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	changed := make(chan string, 1)
	go watcher.Watch(ctx, func(id string) {
		select {
		case changed <- id:
		default:
		}
	})

	select {
	case id := <-changed:
		assert.Equal(t, "0x5", id)
	case <-ctx.Done():
		t.Fatal("timeout waiting for chain change")
	}
}
