package faucet

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalogue(t *testing.T) {
	catalogue, err := NewCatalogue([]Token{
		{Symbol: "USDC", Address: "0x94a9d9ac8a22534e3faca9f4e7f2e2cf85d5e4c8", Decimals: 6},
		{Symbol: "DAI", Address: "0xff34b3d4aee8ddcd6f9afffb6fe49bd371b8a357", Decimals: 18},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, catalogue.Len())
	assert.Equal(t, []string{"DAI", "USDC"}, catalogue.Symbols())

	token, err := catalogue.Lookup("usdc")
	require.NoError(t, err)
	assert.Equal(t, "USDC", token.Symbol)
	assert.Equal(t, common.HexToAddress("0x94a9d9ac8a22534e3faca9f4e7f2e2cf85d5e4c8").Hex(), token.Address)

	_, err = catalogue.Lookup("WETH")
	assert.ErrorIs(t, err, ErrUnknownToken)
}

func TestNewCatalogue_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		tokens []Token
	}{
		{name: "missing symbol", tokens: []Token{{Address: "0xff34b3d4aee8ddcd6f9afffb6fe49bd371b8a357"}}},
		{name: "bad address", tokens: []Token{{Symbol: "DAI", Address: "0x123"}}},
		{name: "bad decimals", tokens: []Token{{Symbol: "DAI", Address: "0xff34b3d4aee8ddcd6f9afffb6fe49bd371b8a357", Decimals: -1}}},
		{name: "duplicate", tokens: []Token{
			{Symbol: "DAI", Address: "0xff34b3d4aee8ddcd6f9afffb6fe49bd371b8a357"},
			{Symbol: "dai", Address: "0xff34b3d4aee8ddcd6f9afffb6fe49bd371b8a357"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalogue(tt.tokens)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestValidTxHash(t *testing.T) {
	assert.True(t, ValidTxHash(validHash))
	assert.True(t, ValidTxHash("0x"+"AB"+validHash[4:]))
	assert.False(t, ValidTxHash(""))
	assert.False(t, ValidTxHash(validHash[:65]))
	assert.False(t, ValidTxHash(validHash+"0"))
	assert.False(t, ValidTxHash("0X"+validHash[2:]))
}
