package faucet

import "context"

// WalletProvider is the wallet capability consumed by Client.
type WalletProvider interface {
	// RequestAccounts asks the wallet to connect and returns its accounts.
	RequestAccounts(ctx context.Context) ([]string, error)
	// Accounts returns already-authorized accounts without prompting.
	Accounts(ctx context.Context) ([]string, error)
	OnAccountsChanged(fn func(accounts []string))
	OnChainChanged(fn func(chainID string))
}
