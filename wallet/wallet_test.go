package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletSaveAndLoad(t *testing.T) {
	w, err := GenerateWallet()
	require.NoError(t, err)
	assert.Len(t, w.Address, 42)

	path := filepath.Join(t.TempDir(), "key.hex")
	require.NoError(t, w.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadWallet(path)
	require.NoError(t, err)
	assert.Equal(t, w.Address, loaded.Address)
}

func TestFromPrivateKey(t *testing.T) {
	// well-known hardhat account #0
	w, err := FromPrivateKey("0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80\n")
	require.NoError(t, err)
	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", w.Address)

	_, err = FromPrivateKey("not-a-key")
	assert.Error(t, err)
}

func TestLoadWallet_MissingFile(t *testing.T) {
	_, err := LoadWallet(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestBalance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, "eth_getBalance", req.Method)

		w.Header().Set("content-type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":"0x1bc16d674ec80000"}`, req.ID)
	}))
	defer server.Close()

	balance, err := Balance(context.Background(), server.URL, testAddress)
	require.NoError(t, err)
	assert.Equal(t, "2.000000", balance.Text('f', 6))

	_, err = Balance(context.Background(), server.URL, "0x123")
	assert.Error(t, err)
}
