package wallet

import (
	"context"
	"sync"
)

// KeyProvider exposes a local key file as a wallet provider. A loaded key
// counts as already authorized.
type KeyProvider struct {
	mu     sync.Mutex
	wallet *Wallet
	subs   subscribers
}

func NewKeyProvider(w *Wallet) *KeyProvider {
	return &KeyProvider{wallet: w}
}

// RequestAccounts returns the wallet address.
func (p *KeyProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.wallet == nil {
		return nil, ErrNoWallet
	}
	return []string{p.wallet.Address}, nil
}

// Accounts returns the wallet address, or nothing after Disconnect.
func (p *KeyProvider) Accounts(ctx context.Context) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.wallet == nil {
		return nil, nil
	}
	return []string{p.wallet.Address}, nil
}

func (p *KeyProvider) OnAccountsChanged(fn func([]string)) { p.subs.addAccounts(fn) }
func (p *KeyProvider) OnChainChanged(fn func(string))      { p.subs.addChain(fn) }

// Switch replaces the active wallet and announces the new account.
func (p *KeyProvider) Switch(w *Wallet) {
	p.mu.Lock()
	p.wallet = w
	p.mu.Unlock()

	p.subs.accountsChanged([]string{w.Address})
}

// Disconnect drops the wallet and announces an empty account list.
func (p *KeyProvider) Disconnect() {
	p.mu.Lock()
	p.wallet = nil
	p.mu.Unlock()

	p.subs.accountsChanged([]string{})
}

// SetChain announces a chain switch, e.g. from a ChainWatcher.
func (p *KeyProvider) SetChain(chainID string) {
	p.subs.chainChanged(chainID)
}

// subscribers fans provider events out to registered callbacks.
type subscribers struct {
	mu       sync.Mutex
	accounts []func([]string)
	chain    []func(string)
}

func (s *subscribers) addAccounts(fn func([]string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = append(s.accounts, fn)
}

func (s *subscribers) addChain(fn func(string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chain = append(s.chain, fn)
}

func (s *subscribers) accountsChanged(accounts []string) {
	s.mu.Lock()
	fns := append([]func([]string){}, s.accounts...)
	s.mu.Unlock()

	for _, fn := range fns {
		fn(accounts)
	}
}

func (s *subscribers) chainChanged(chainID string) {
	s.mu.Lock()
	fns := append([]func(string){}, s.chain...)
	s.mu.Unlock()

	for _, fn := range fns {
		fn(chainID)
	}
}
