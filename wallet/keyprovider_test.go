package wallet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyProvider(t *testing.T) {
	first, err := GenerateWallet()
	require.NoError(t, err)
	second, err := GenerateWallet()
	require.NoError(t, err)

	provider := NewKeyProvider(first)

	var changes [][]string
	var chains []string
	provider.OnAccountsChanged(func(accounts []string) { changes = append(changes, accounts) })
	provider.OnChainChanged(func(chainID string) { chains = append(chains, chainID) })

	accounts, err := provider.RequestAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{first.Address}, accounts)

	provider.Switch(second)
	accounts, err = provider.Accounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{second.Address}, accounts)

	provider.Disconnect()
	accounts, err = provider.Accounts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, accounts)

	_, err = provider.RequestAccounts(context.Background())
	assert.ErrorIs(t, err, ErrNoWallet)

	provider.SetChain("0xaa36a7")

	assert.Equal(t, [][]string{{second.Address}, {}}, changes)
	assert.Equal(t, []string{"0xaa36a7"}, chains)
}
