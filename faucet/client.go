package faucet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultExplorerBaseURL = "https://sepolia.etherscan.io"
	DefaultTimeout         = 30 * time.Second

	fallbackServerMessage    = "Failed to claim tokens"
	fallbackRateLimitMessage = "Rate limit reached. Try again in 24h."
	msgSelectToken           = "Please select a token first."
	msgConnectWallet         = "Please connect your wallet first."
)

// SessionEventKind describes a session transition.
type SessionEventKind string

const (
	SessionConnected    SessionEventKind = "connected"
	SessionSwitched     SessionEventKind = "switched"
	SessionDisconnected SessionEventKind = "disconnected"
	SessionReset        SessionEventKind = "reset"
)

// SessionEvent is delivered to a session observer once per transition.
type SessionEvent struct {
	Kind    SessionEventKind
	Address string
	ChainID string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger sets the logger. Defaults to zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithExplorerBaseURL sets the block explorer used for tx links.
func WithExplorerBaseURL(base string) Option {
	return func(c *Client) {
		c.explorerBase = base
	}
}

// WithTimeout bounds a single claim request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithSessionObserver registers fn for session transitions.
func WithSessionObserver(fn func(SessionEvent)) Option {
	return func(c *Client) {
		c.observer = fn
	}
}

// Client talks to a faucet endpoint on behalf of one wallet session.
type Client struct {
	endpoint     string
	provider     WalletProvider
	session      *Session
	http         *http.Client
	logger       *zap.Logger
	explorerBase string
	timeout      time.Duration
	observer     func(SessionEvent)
}

type claimResponse struct {
	TxHash       string `json:"tx_hash"`
	EtherscanURL string `json:"etherscan_url"`
	Error        string `json:"error"`
}

// NewClient creates a client posting claims to endpoint. provider may be
// nil, in which case Connect reports a provider error.
func NewClient(endpoint string, provider WalletProvider, opts ...Option) *Client {
	c := &Client{
		endpoint:     endpoint,
		provider:     provider,
		session:      &Session{},
		logger:       zap.NewNop(),
		explorerBase: DefaultExplorerBaseURL,
		timeout:      DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}

	if provider != nil {
		provider.OnAccountsChanged(c.OnAccountsChanged)
		provider.OnChainChanged(c.OnChainChanged)
	}

	return c
}

// Address returns the connected wallet address, if any.
func (c *Client) Address() (string, bool) {
	return c.session.Address()
}

// Init picks up an account the wallet has already authorized.
func (c *Client) Init(ctx context.Context) {
	if c.provider == nil {
		return
	}

	accounts, err := c.provider.Accounts(ctx)
	if err != nil {
		c.logger.Warn("account discovery failed", zap.Error(err))
		return
	}
	if len(accounts) == 0 {
		return
	}

	if c.session.Set(accounts[0]) {
		c.logger.Info("wallet already connected", zap.String("wallet", accounts[0]))
		c.notify(SessionEvent{Kind: SessionConnected, Address: accounts[0]})
	}
}

// Connect requests accounts from the wallet provider and stores the first.
func (c *Client) Connect(ctx context.Context) ClaimResult {
	if c.provider == nil {
		return providerError(ErrNoProvider.Error())
	}

	accounts, err := c.provider.RequestAccounts(ctx)
	if err != nil {
		c.logger.Warn("wallet connection failed", zap.Error(err))
		return providerError(fmt.Sprintf("Connection failed: %v", err))
	}
	if len(accounts) == 0 {
		return providerError(ErrNoAccounts.Error())
	}

	address := accounts[0]
	if c.session.Set(address) {
		c.notify(SessionEvent{Kind: SessionConnected, Address: address})
	}
	c.logger.Info("wallet connected", zap.String("wallet", address))

	return ClaimResult{
		Kind:    KindSuccess,
		Message: "Wallet connected successfully! Select a token and claim.",
		Wallet:  address,
	}
}

// SubmitClaim posts a claim for token to the faucet. It never returns an
// error: every failure is reported through the result.
func (c *Client) SubmitClaim(ctx context.Context, token string) ClaimResult {
	token = strings.TrimSpace(token)
	if token == "" {
		return validationError(msgSelectToken)
	}
	wallet, ok := c.session.Address()
	if !ok {
		return validationError(msgConnectWallet)
	}

	req := ClaimRequest{Wallet: wallet, Token: token}
	logger := c.logger.With(zap.String("wallet", wallet), zap.String("token", token))

	status, body, err := c.post(ctx, req)
	if err != nil {
		logger.Error("claim request failed", zap.Error(err))
		return ClaimResult{Kind: KindNetworkFailure, Message: err.Error()}
	}

	var resp claimResponse
	decodeErr := json.Unmarshal(body, &resp)

	switch {
	case status >= 200 && status < 300:
		if decodeErr != nil {
			logger.Error("undecodable claim response", zap.Error(decodeErr))
			return ClaimResult{Kind: KindNetworkFailure, Message: decodeErr.Error()}
		}
		return c.success(logger, req, resp)

	case status == http.StatusTooManyRequests:
		msg := serverMessage(resp, decodeErr, fallbackRateLimitMessage)
		logger.Info("claim rate limited", zap.String("message", msg))
		return ClaimResult{Kind: KindRateLimited, Message: msg}

	default:
		msg := serverMessage(resp, decodeErr, fallbackServerMessage)
		logger.Warn("claim rejected", zap.Int("status", status), zap.String("message", msg))
		return ClaimResult{Kind: KindServerError, Message: msg}
	}
}

func (c *Client) success(logger *zap.Logger, req ClaimRequest, resp claimResponse) ClaimResult {
	result := ClaimResult{
		Kind:    KindSuccess,
		Message: fmt.Sprintf("Your %s tokens have been sent.", req.Token),
		Token:   req.Token,
		Wallet:  req.Wallet,
		TxHash:  resp.TxHash,
	}

	if !ValidTxHash(resp.TxHash) {
		logger.Warn("invalid transaction hash format", zap.String("tx_hash", resp.TxHash))
		return result
	}

	result.ExplorerAvailable = true
	result.ExplorerURL = resp.EtherscanURL
	if result.ExplorerURL == "" {
		result.ExplorerURL = ExplorerTxURL(c.explorerBase, resp.TxHash)
	}
	logger.Info("tokens claimed", zap.String("tx_hash", resp.TxHash))
	return result
}

func (c *Client) post(ctx context.Context, claim ClaimRequest) (int, []byte, error) {
	payload, err := json.Marshal(claim)
	if err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("content-type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}

	return resp.StatusCode, body, nil
}

func serverMessage(resp claimResponse, decodeErr error, fallback string) string {
	if decodeErr != nil || strings.TrimSpace(resp.Error) == "" {
		return fallback
	}
	return resp.Error
}

// OnAccountsChanged handles the wallet's account list changing.
func (c *Client) OnAccountsChanged(accounts []string) {
	if len(accounts) == 0 {
		if c.session.Clear() {
			c.logger.Info("wallet disconnected")
			c.notify(SessionEvent{Kind: SessionDisconnected})
		}
		return
	}

	if c.session.Set(accounts[0]) {
		c.logger.Info("account switched", zap.String("wallet", accounts[0]))
		c.notify(SessionEvent{Kind: SessionSwitched, Address: accounts[0]})
	}
}

// OnChainChanged drops all session state and re-initializes, since token
// addresses are chain specific.
func (c *Client) OnChainChanged(chainID string) {
	c.logger.Info("chain changed, resetting session", zap.String("chain_id", chainID))
	c.session.Clear()
	c.notify(SessionEvent{Kind: SessionReset, ChainID: chainID})

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	c.Init(ctx)
}

func (c *Client) notify(ev SessionEvent) {
	if c.observer != nil {
		c.observer(ev)
	}
}
