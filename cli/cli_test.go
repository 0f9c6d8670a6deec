package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/galihrivanto/tokenfaucet/faucet"
	"github.com/galihrivanto/tokenfaucet/wallet"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const txHash = "0x5c504ed432cb51138bcf09aa5e8a410dd4a1e204ef84bfed1be16dfba1b22060"

func newTestRoot() *cobra.Command {
	root := &cobra.Command{
		Use:               "tokenfaucet",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: Setup,
	}
	RegisterFlags(root)
	root.AddCommand(ClaimCmd, ConnectCmd, TokensCmd, WalletCmd)
	return root
}

// resetFlags restores flag defaults, since the commands are package level
// and keep parsed values between runs.
func resetFlags(cmds ...*cobra.Command) {
	for _, c := range cmds {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			f.Value.Set(f.DefValue)
			f.Changed = false
		})
		resetFlags(c.Commands()...)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	resetFlags(ClaimCmd, ConnectCmd, TokensCmd, WalletCmd)

	var out bytes.Buffer
	root := newTestRoot()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func keyFile(t *testing.T) (string, *wallet.Wallet) {
	w, err := wallet.GenerateWallet()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "key.hex")
	require.NoError(t, w.Save(path))
	return path, w
}

func configFile(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "faucet.yaml")
	body := `tokens:
  - symbol: USDC
    address: "0x94a9d9ac8a22534e3faca9f4e7f2e2cf85d5e4c8"
    decimals: 6
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestClaimCommand_Success(t *testing.T) {
	key, w := keyFile(t)

	var got faucet.ClaimRequest
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		rw.Write([]byte(`{"tx_hash":"` + txHash + `"}`))
	}))
	defer server.Close()

	out, err := execute(t, "claim", "--plain", "--token", "USDC", "--key", key, "--endpoint", server.URL)
	require.NoError(t, err)

	assert.Equal(t, faucet.ClaimRequest{Wallet: w.Address, Token: "USDC"}, got)
	assert.Contains(t, out, "Tokens Successfully Claimed!")
	assert.Contains(t, out, "https://sepolia.etherscan.io/tx/"+txHash)
}

func TestClaimCommand_RateLimited(t *testing.T) {
	key, _ := keyFile(t)
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusTooManyRequests)
		rw.Write([]byte(`{"error":"Already claimed"}`))
	}))
	defer server.Close()

	out, err := execute(t, "claim", "--plain", "--token", "USDC", "--key", key, "--endpoint", server.URL)
	assert.ErrorContains(t, err, "rate_limited")
	assert.Contains(t, out, "Already claimed")
}

func TestClaimCommand_NoWallet(t *testing.T) {
	out, err := execute(t, "claim", "--plain", "--token", "USDC", "--endpoint", "http://127.0.0.1:1")
	assert.ErrorContains(t, err, "provider_error")
	assert.Contains(t, out, faucet.ErrNoProvider.Error())
}

func TestClaimCommand_MissingToken(t *testing.T) {
	key, _ := keyFile(t)
	out, err := execute(t, "claim", "--plain", "--key", key, "--endpoint", "http://127.0.0.1:1")
	assert.ErrorContains(t, err, "validation_error")
	assert.Contains(t, out, "Please select a token first.")
}

func TestClaimCommand_UnknownToken(t *testing.T) {
	key, _ := keyFile(t)
	_, err := execute(t, "claim", "--plain", "--token", "WETH", "--key", key, "--config", configFile(t))
	assert.ErrorIs(t, err, faucet.ErrUnknownToken)
}

func TestConnectCommand(t *testing.T) {
	key, w := keyFile(t)
	out, err := execute(t, "connect", "--key", key)
	require.NoError(t, err)
	assert.Contains(t, out, w.Address)
}

func TestTokensCommand(t *testing.T) {
	out, err := execute(t, "tokens", "--config", configFile(t))
	require.NoError(t, err)
	assert.Contains(t, out, "USDC")
	assert.Contains(t, out, "6")
}

func TestWalletGenerate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.hex")
	out, err := execute(t, "wallet", "generate", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wallet saved to")

	loaded, err := wallet.LoadWallet(path)
	require.NoError(t, err)
	assert.Contains(t, out, loaded.Address)
}
