package faucet

import (
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ResultKind tags the outcome of a connect or claim attempt
type ResultKind int

const (
	KindSuccess ResultKind = iota
	KindValidationError
	KindProviderError
	KindRateLimited
	KindServerError
	KindNetworkFailure
)

func (k ResultKind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindValidationError:
		return "validation_error"
	case KindProviderError:
		return "provider_error"
	case KindRateLimited:
		return "rate_limited"
	case KindServerError:
		return "server_error"
	case KindNetworkFailure:
		return "network_failure"
	default:
		return "unknown"
	}
}

// Severity is the display category of a result.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// ClaimRequest is the body posted to the faucet endpoint.
type ClaimRequest struct {
	Wallet string `json:"wallet"`
	Token  string `json:"token"`
}

// ClaimResult is the outcome of Connect or SubmitClaim. Only the fields
// relevant to Kind are set.
type ClaimResult struct {
	Kind    ResultKind
	Message string

	// set on a successful claim
	Token             string
	Wallet            string
	TxHash            string
	ExplorerURL       string
	ExplorerAvailable bool
}

// Severity maps the result to exactly one display category.
func (r ClaimResult) Severity() Severity {
	switch r.Kind {
	case KindSuccess:
		return SeveritySuccess
	case KindValidationError, KindRateLimited:
		return SeverityWarning
	default:
		return SeverityError
	}
}

// OK reports whether the result is a success.
func (r ClaimResult) OK() bool {
	return r.Kind == KindSuccess
}

// Malformed reports a successful claim whose tx hash failed validation.
func (r ClaimResult) Malformed() bool {
	return r.Kind == KindSuccess && r.Token != "" && !r.ExplorerAvailable
}

func validationError(msg string) ClaimResult {
	return ClaimResult{Kind: KindValidationError, Message: msg}
}

func providerError(msg string) ClaimResult {
	return ClaimResult{Kind: KindProviderError, Message: msg}
}

// ValidTxHash reports whether hash is a 0x-prefixed 32-byte hex string.
func ValidTxHash(hash string) bool {
	if len(hash) != 66 || !strings.HasPrefix(hash, "0x") {
		return false
	}
	b, err := hexutil.Decode(hash)
	return err == nil && len(b) == 32
}

// ExplorerTxURL builds the transaction page URL under base.
func ExplorerTxURL(base, hash string) string {
	return strings.TrimRight(base, "/") + "/tx/" + hash
}
