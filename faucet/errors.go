package faucet

import "errors"

var (
	ErrNoProvider     = errors.New("no wallet provider available")
	ErrNoAccounts     = errors.New("wallet returned no accounts")
	ErrInvalidTxHash  = errors.New("invalid transaction hash")
	ErrUnknownToken   = errors.New("unknown token")
	ErrInvalidToken   = errors.New("invalid token")
	ErrReceiptTimeout = errors.New("timed out waiting for receipt")
)
