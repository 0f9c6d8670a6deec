package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/galihrivanto/tokenfaucet/faucet"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "FAUCET"

	KeyEndpoint  = "endpoint"
	KeyExplorer  = "explorer-url"
	KeyRPCURL    = "rpc-url"
	KeyTimeout   = "timeout"
	KeyKeyFile   = "key"
	KeyBridgeURI = "bridge"
	KeyDebug     = "debug"
	KeyTokens    = "tokens"

	defaultEndpoint = "http://localhost:5000/api/faucet"
	defaultRPCURL   = "https://ethereum-sepolia-rpc.publicnode.com"
)

// Config aggregates runtime settings for the faucet client.
type Config struct {
	Endpoint    string
	ExplorerURL string
	RPCURL      string
	Timeout     time.Duration
	KeyFile     string
	BridgeURI   string
	Debug       bool
	Tokens      []faucet.Token
}

// Validate fills defaults and checks the remaining values.
func (cfg *Config) Validate() error {
	cfg.Endpoint = defaultIfEmpty(cfg.Endpoint, defaultEndpoint)
	cfg.ExplorerURL = defaultIfEmpty(cfg.ExplorerURL, faucet.DefaultExplorerBaseURL)
	cfg.RPCURL = defaultIfEmpty(cfg.RPCURL, defaultRPCURL)
	if cfg.Timeout <= 0 {
		cfg.Timeout = faucet.DefaultTimeout
	}

	if err := validURL(cfg.Endpoint); err != nil {
		return fmt.Errorf("%s: %w", KeyEndpoint, err)
	}
	if err := validURL(cfg.ExplorerURL); err != nil {
		return fmt.Errorf("%s: %w", KeyExplorer, err)
	}
	if cfg.KeyFile != "" && cfg.BridgeURI != "" {
		return errors.New("key and bridge are mutually exclusive")
	}
	return nil
}

// Catalogue builds the token catalogue from the configured tokens.
func (cfg *Config) Catalogue() (*faucet.Catalogue, error) {
	return faucet.NewCatalogue(cfg.Tokens)
}

// New returns a viper instance reading FAUCET_* variables and, when path
// is set, a config file.
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path == "" {
		return v, nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return v, nil
}

// Load reads a Config out of v and validates it.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Endpoint:    strings.TrimSpace(v.GetString(KeyEndpoint)),
		ExplorerURL: strings.TrimSpace(v.GetString(KeyExplorer)),
		RPCURL:      strings.TrimSpace(v.GetString(KeyRPCURL)),
		Timeout:     v.GetDuration(KeyTimeout),
		KeyFile:     strings.TrimSpace(v.GetString(KeyKeyFile)),
		BridgeURI:   strings.TrimSpace(v.GetString(KeyBridgeURI)),
		Debug:       v.GetBool(KeyDebug),
	}

	if err := v.UnmarshalKey(KeyTokens, &cfg.Tokens); err != nil {
		return Config{}, fmt.Errorf("failed to decode tokens: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func defaultIfEmpty(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func validURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}
