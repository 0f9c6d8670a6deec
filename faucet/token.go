package faucet

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ClaimAmount is the number of whole tokens dispensed per claim.
const ClaimAmount = 10

// Token is an ERC20 token the faucet dispenses.
type Token struct {
	Symbol   string `mapstructure:"symbol" json:"symbol"`
	Address  string `mapstructure:"address" json:"address"`
	Decimals int    `mapstructure:"decimals" json:"decimals"`
}

// Validate checks the symbol and contract address.
func (t Token) Validate() error {
	if strings.TrimSpace(t.Symbol) == "" {
		return fmt.Errorf("%w: symbol is required", ErrInvalidToken)
	}
	if !common.IsHexAddress(t.Address) {
		return fmt.Errorf("%w: %s has invalid address %q", ErrInvalidToken, t.Symbol, t.Address)
	}
	if t.Decimals < 0 || t.Decimals > 36 {
		return fmt.Errorf("%w: %s has invalid decimals %d", ErrInvalidToken, t.Symbol, t.Decimals)
	}
	return nil
}

// Catalogue is the set of tokens a faucet offers, keyed by symbol.
type Catalogue struct {
	tokens map[string]Token
}

// NewCatalogue validates tokens and indexes them by upper-cased symbol.
func NewCatalogue(tokens []Token) (*Catalogue, error) {
	c := &Catalogue{tokens: make(map[string]Token, len(tokens))}
	for _, t := range tokens {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		key := strings.ToUpper(t.Symbol)
		if _, dup := c.tokens[key]; dup {
			return nil, fmt.Errorf("%w: duplicate symbol %s", ErrInvalidToken, t.Symbol)
		}
		t.Address = common.HexToAddress(t.Address).Hex()
		c.tokens[key] = t
	}
	return c, nil
}

// Lookup finds a token by symbol, ignoring case.
func (c *Catalogue) Lookup(symbol string) (Token, error) {
	t, ok := c.tokens[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return Token{}, fmt.Errorf("%w: %s", ErrUnknownToken, symbol)
	}
	return t, nil
}

// Symbols returns the configured symbols in sorted order
func (c *Catalogue) Symbols() []string {
	symbols := make([]string, 0, len(c.tokens))
	for _, t := range c.tokens {
		symbols = append(symbols, t.Symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// Tokens returns all tokens sorted by symbol.
func (c *Catalogue) Tokens() []Token {
	tokens := make([]Token, 0, len(c.tokens))
	for _, s := range c.Symbols() {
		tokens = append(tokens, c.tokens[strings.ToUpper(s)])
	}
	return tokens
}

// Len returns the number of tokens.
func (c *Catalogue) Len() int {
	return len(c.tokens)
}
