// Package config defines the runtime configuration for the SDK: default
// network, fallback RPC endpoint, derivation defaults, debug mode and
// operation timeouts. It also provides validation, defaulting and a
// file/environment loader.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/ugdesmond/Wallet-SDK/pkg/model"
	"github.com/ugdesmond/Wallet-SDK/pkg/wallet"
)

// EnvPrefix is the prefix of environment variables read by Load (WALLET_RPC_ADDR, ...).
const EnvPrefix = "WALLET"

// Config holds the SDK settings shared by every chain variant.
// Use Validate to fill implicit defaults and to check field values.
type Config struct {
	// Network is the default network for requests that omit one. Default: ETHEREUM.
	Network string `json:"network" yaml:"network" mapstructure:"network"`
	// RPCAddr is the JSON-RPC endpoint used when a request carries no rpcUrl.
	RPCAddr string `json:"rpc_addr" yaml:"rpc_addr" mapstructure:"rpc_addr"`
	// Debug enables verbose logging.
	Debug bool `json:"debug" yaml:"debug" mapstructure:"debug"`
	// DerivationPath is used by wallet creation when the request has none.
	// Default: m/44'/60'/0'/0/0
	DerivationPath string `json:"derivation_path" yaml:"derivation_path" mapstructure:"derivation_path"`
	// MnemonicWords is the phrase length for generated mnemonics. Default: 12.
	MnemonicWords int `json:"mnemonic_words" yaml:"mnemonic_words" mapstructure:"mnemonic_words"`
	// Timeouts configures per-operation timeouts. See Timeouts.WithDefaults for defaults.
	Timeouts Timeouts `json:"timeouts" yaml:"timeouts" mapstructure:"timeouts"`
}

// Timeouts controls SDK operation deadlines. They are applied as child
// deadlines of the caller's context.
// Zero values will be replaced by sane defaults in WithDefaults.
type Timeouts struct {
	Dial        time.Duration `json:"dial" yaml:"dial" mapstructure:"dial"`                         // Web3 dial/connect
	ChainRead   time.Duration `json:"chain_read" yaml:"chain_read" mapstructure:"chain_read"`       // eth_call, balance etc
	ChainSubmit time.Duration `json:"chain_submit" yaml:"chain_submit" mapstructure:"chain_submit"` // resolve signer + send tx
	ReceiptWait time.Duration `json:"receipt_wait" yaml:"receipt_wait" mapstructure:"receipt_wait"` // background confirmation
}

// Validate normalizes the configuration by applying implicit defaults for
// Network, DerivationPath and MnemonicWords, and rejects unsupported
// mnemonic lengths. RPCAddr is optional because requests may carry their own
// endpoint.
func (c *Config) Validate() error {
	if c.Network == "" {
		c.Network = model.NetworkEthereum
	}

	if c.DerivationPath == "" {
		c.DerivationPath = model.DefaultDerivationPath
	}
	if !strings.HasPrefix(c.DerivationPath, "m/") {
		return fmt.Errorf("derivation path must start with m/: %q", c.DerivationPath)
	}

	if c.MnemonicWords == 0 {
		c.MnemonicWords = wallet.DefaultWordCount
	}
	if !wallet.ValidWordCount(c.MnemonicWords) {
		return fmt.Errorf("%w: %d", wallet.ErrInvalidWordCount, c.MnemonicWords)
	}

	if c.Timeouts.Dial < 0 || c.Timeouts.ChainRead < 0 || c.Timeouts.ChainSubmit < 0 || c.Timeouts.ReceiptWait < 0 {
		return errors.New("timeouts must not be negative")
	}
	return nil
}

// Endpoint returns rpcURL, or RPCAddr when rpcURL is empty.
func (c *Config) Endpoint(rpcURL string) (string, error) {
	if rpcURL != "" {
		return rpcURL, nil
	}
	if c.RPCAddr != "" {
		return c.RPCAddr, nil
	}
	return "", errors.New("RPC address is required")
}

// WithDefaults returns a copy of t with zero values replaced by defaults:
//
//	Dial:        5s
//	ChainRead:   12s
//	ChainSubmit: 25s
//	ReceiptWait: 90s
func (t Timeouts) WithDefaults() Timeouts {
	tt := t
	if tt.Dial == 0 {
		tt.Dial = 5 * time.Second
	}
	if tt.ChainRead == 0 {
		tt.ChainRead = 12 * time.Second
	}
	if tt.ChainSubmit == 0 {
		tt.ChainSubmit = 25 * time.Second
	}
	if tt.ReceiptWait == 0 {
		tt.ReceiptWait = 90 * time.Second
	}
	return tt
}

// Load reads configuration from path (YAML, JSON or TOML by extension; empty
// path skips the file) and from WALLET_* environment variables, which take
// precedence. The result is validated.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	d := Timeouts{}.WithDefaults()
	v.SetDefault("network", model.NetworkEthereum)
	v.SetDefault("rpc_addr", "")
	v.SetDefault("debug", false)
	v.SetDefault("derivation_path", model.DefaultDerivationPath)
	v.SetDefault("mnemonic_words", wallet.DefaultWordCount)
	v.SetDefault("timeouts.dial", d.Dial)
	v.SetDefault("timeouts.chain_read", d.ChainRead)
	v.SetDefault("timeouts.chain_submit", d.ChainSubmit)
	v.SetDefault("timeouts.receipt_wait", d.ReceiptWait)
}
