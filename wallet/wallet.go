package wallet

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

var (
	ErrNoWallet       = errors.New("no wallet loaded")
	ErrBridgeClosed   = errors.New("bridge connection closed")
	ErrInvalidURI     = errors.New("invalid URI format")
	ErrRequestPending = errors.New("a wallet request is already pending")
)

// Wallet is a locally held account.
type Wallet struct {
	Address    string
	PrivateKey string
}

// Generate a new wallet
func GenerateWallet() (*Wallet, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, err
	}

	return &Wallet{
		Address:    crypto.PubkeyToAddress(privateKey.PublicKey).Hex(),
		PrivateKey: fmt.Sprintf("%x", crypto.FromECDSA(privateKey)),
	}, nil
}

// FromPrivateKey derives the wallet for a hex encoded key, with or without 0x.
func FromPrivateKey(hexKey string) (*Wallet, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")

	privateKey, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %v", err)
	}

	return &Wallet{
		Address:    crypto.PubkeyToAddress(privateKey.PublicKey).Hex(),
		PrivateKey: hexKey,
	}, nil
}

// Load a wallet from a private key file
func LoadWallet(path string) (*Wallet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %v", err)
	}
	return FromPrivateKey(string(raw))
}

// Save writes the private key to path, readable by the owner only.
func (w *Wallet) Save(path string) error {
	return os.WriteFile(path, []byte(w.PrivateKey), 0600)
}

// Balance returns the native balance of address in ether.
func Balance(ctx context.Context, rpcURL string, address string) (*big.Float, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("invalid address %q", address)
	}

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	balance, err := client.BalanceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return nil, err
	}

	return new(big.Float).Quo(new(big.Float).SetInt(balance), big.NewFloat(1e18)), nil
}
