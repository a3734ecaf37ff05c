// Package evm implements the SDK chain variant for Ethereum and other
// EVM-compatible networks. Every chain operation opens its own connection to
// the request's RPC endpoint and closes it when done; nothing is shared
// between requests.
package evm

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ugdesmond/Wallet-SDK/pkg/blockchain"
	"github.com/ugdesmond/Wallet-SDK/pkg/config"
	"github.com/ugdesmond/Wallet-SDK/pkg/model"
	"go.uber.org/zap"
)

// Dialer opens a chain context for an endpoint.
type Dialer func(ctx context.Context, endpoint string) (*blockchain.EVMClient, error)

// Chain is the EVM chain variant. It is safe for concurrent use.
type Chain struct {
	cfg      config.Config
	timeouts config.Timeouts
	network  string
	dial     Dialer
}

type Option func(*Chain)

// WithDialer replaces the JSON-RPC dialer, e.g. with an in-process backend.
func WithDialer(d Dialer) Option {
	return func(c *Chain) { c.dial = d }
}

// WithNetwork sets the network name reported in results (default ETHEREUM).
func WithNetwork(name string) Option {
	return func(c *Chain) { c.network = name }
}

// New returns an EVM chain variant. cfg may be nil; it is copied and validated.
func New(cfg *config.Config, opts ...Option) (*Chain, error) {
	var conf config.Config
	if cfg != nil {
		conf = *cfg
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	c := &Chain{
		cfg:      conf,
		timeouts: conf.Timeouts.WithDefaults(),
		network:  model.NetworkEthereum,
		dial:     blockchain.Dial,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Chain) Network() string {
	return c.network
}

// open dials the request endpoint (or the configured fallback) bounded by the dial timeout.
func (c *Chain) open(ctx context.Context, rpcURL string) (*blockchain.EVMClient, error) {
	endpoint, err := c.cfg.Endpoint(rpcURL)
	if err != nil {
		return nil, err
	}
	dctx, cancel := blockchain.WithTimeout(ctx, c.timeouts.Dial)
	defer cancel()

	evm, err := c.dial(dctx, endpoint)
	if err != nil {
		zap.L().Error("failed to open chain context", zap.String("network", c.network), zap.Error(err))
		return nil, err
	}
	return evm, nil
}

func parseAddress(field, s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %s %q", model.ErrInvalidAddress, field, s)
	}
	return common.HexToAddress(s), nil
}

// gasPriceOverride parses a gwei override; empty means no override.
func gasPriceOverride(gwei string) (*big.Int, error) {
	if gwei == "" {
		return nil, nil
	}
	return blockchain.ParseGwei(gwei)
}

func gasLimitOr(override *uint64) uint64 {
	if override == nil {
		return 0
	}
	return *override
}
