package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const defaultBridge = "wss://bridge.walletconnect.org"

// bridge payload methods
const (
	methodRequestAccounts = "eth_requestAccounts"
	methodAccounts        = "eth_accounts"
	methodAccountsReply   = "accounts"
	methodAccountsChanged = "accountsChanged"
	methodChainChanged    = "chainChanged"
	methodError           = "error"
)

// BridgeMessage is the envelope exchanged with the bridge
type BridgeMessage struct {
	Topic   string          `json:"topic"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// BridgePayload is the wallet-level content of a pub message.
type BridgePayload struct {
	Method   string   `json:"method"`
	Accounts []string `json:"accounts,omitempty"`
	ChainID  string   `json:"chainId,omitempty"`
	Message  string   `json:"message,omitempty"`
}

type bridgeReply struct {
	accounts []string
	err      error
}

// BridgeProvider is a wallet provider reached through a WalletConnect-style
// websocket bridge. The remote wallet answers account requests and pushes
// account and chain changes on the session topic.
type BridgeProvider struct {
	topic  string
	conn   *websocket.Conn
	logger *zap.Logger

	writeMu sync.Mutex
	reqMu   sync.Mutex
	replies chan bridgeReply
	events  chan func()
	done    chan struct{}
	subs    subscribers
}

// ParseURI parses a WalletConnect URI into bridge URL, topic and version.
func ParseURI(uri string) (bridge string, topic string, version string, err error) {
	uri = strings.TrimPrefix(uri, "wc:")

	parts := strings.SplitN(uri, "?", 2)
	if len(parts) != 2 {
		return "", "", "", fmt.Errorf("%w: missing query parameters", ErrInvalidURI)
	}

	// topic@version
	baseParts := strings.Split(parts[0], "@")
	if len(baseParts) != 2 || baseParts[0] == "" {
		return "", "", "", fmt.Errorf("%w: missing topic or version", ErrInvalidURI)
	}
	topic = baseParts[0]
	version = baseParts[1]

	query := make(map[string]string)
	for _, param := range strings.Split(parts[1], "&") {
		if param == "" {
			continue
		}
		kv := strings.SplitN(param, "=", 2)
		if len(kv) == 2 {
			query[kv[0]] = kv[1]
		} else {
			query[kv[0]] = ""
		}
	}

	bridge = query["bridge"]
	if bridge == "" {
		bridge = defaultBridge
	}

	return bridge, topic, version, nil
}

// DialBridge connects to the bridge named by uri and subscribes to its topic.
func DialBridge(ctx context.Context, uri string, logger *zap.Logger) (*BridgeProvider, error) {
	bridge, topic, _, err := ParseURI(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URI: %w", err)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, bridge, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to bridge: %w", err)
	}

	p := newBridgeProvider(conn, topic, logger)
	if err := p.write(BridgeMessage{Topic: topic, Type: "sub"}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	p.start()
	return p, nil
}

func newBridgeProvider(conn *websocket.Conn, topic string, logger *zap.Logger) *BridgeProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BridgeProvider{
		topic:   topic,
		conn:    conn,
		logger:  logger,
		replies: make(chan bridgeReply, 1),
		events:  make(chan func(), 16),
		done:    make(chan struct{}),
	}
}

// RequestAccounts asks the remote wallet to approve the connection.
func (p *BridgeProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	return p.request(ctx, methodRequestAccounts)
}

// Accounts asks for accounts the remote wallet has already approved.
func (p *BridgeProvider) Accounts(ctx context.Context) ([]string, error) {
	return p.request(ctx, methodAccounts)
}

func (p *BridgeProvider) OnAccountsChanged(fn func([]string)) { p.subs.addAccounts(fn) }
func (p *BridgeProvider) OnChainChanged(fn func(string))      { p.subs.addChain(fn) }

// Done is closed when the bridge connection ends.
func (p *BridgeProvider) Done() <-chan struct{} {
	return p.done
}

// Close closes the bridge connection
func (p *BridgeProvider) Close() error {
	return p.conn.Close()
}

func (p *BridgeProvider) request(ctx context.Context, method string) ([]string, error) {
	if !p.reqMu.TryLock() {
		return nil, ErrRequestPending
	}
	defer p.reqMu.Unlock()

	// drop a reply left over from a request that was abandoned
	select {
	case <-p.replies:
	default:
	}

	payload, err := json.Marshal(BridgePayload{Method: method})
	if err != nil {
		return nil, err
	}
	if err := p.write(BridgeMessage{Topic: p.topic, Type: "pub", Payload: payload}); err != nil {
		return nil, fmt.Errorf("failed to send %s: %w", method, err)
	}

	select {
	case reply := <-p.replies:
		return reply.accounts, reply.err
	case <-p.done:
		return nil, ErrBridgeClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *BridgeProvider) write(msg BridgeMessage) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return p.conn.WriteJSON(msg)
}

func (p *BridgeProvider) start() {
	go p.readLoop()
	go p.eventLoop()
}

// eventLoop runs subscriber callbacks off the read loop, so a callback may
// itself issue a request and wait for the reply.
func (p *BridgeProvider) eventLoop() {
	for fn := range p.events {
		fn()
	}
}

func (p *BridgeProvider) readLoop() {
	defer close(p.done)
	defer close(p.events)

	for {
		var msg BridgeMessage
		if err := p.conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) && !errors.Is(err, websocket.ErrCloseSent) {
				p.logger.Debug("bridge read ended", zap.Error(err))
			}
			return
		}

		if msg.Type != "pub" || len(msg.Payload) == 0 {
			continue
		}

		var payload BridgePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			p.logger.Warn("failed to parse bridge payload", zap.Error(err))
			continue
		}
		p.dispatch(payload)
	}
}

func (p *BridgeProvider) dispatch(payload BridgePayload) {
	switch payload.Method {
	case methodAccountsReply:
		p.reply(bridgeReply{accounts: payload.Accounts})
	case methodError:
		p.reply(bridgeReply{err: errors.New(payload.Message)})
	case methodAccountsChanged:
		accounts := payload.Accounts
		if accounts == nil {
			accounts = []string{}
		}
		p.events <- func() { p.subs.accountsChanged(accounts) }
	case methodChainChanged:
		chainID := payload.ChainID
		p.events <- func() { p.subs.chainChanged(chainID) }
	default:
		p.logger.Debug("ignoring bridge message", zap.String("method", payload.Method))
	}
}

func (p *BridgeProvider) reply(r bridgeReply) {
	select {
	case p.replies <- r:
	default:
		p.logger.Warn("dropping unsolicited bridge reply")
	}
}
