package sdk

import (
	"context"
	"time"

	"github.com/ugdesmond/Wallet-SDK/pkg/config"
	"github.com/ugdesmond/Wallet-SDK/pkg/evm"
	"github.com/ugdesmond/Wallet-SDK/pkg/metrics"
	"github.com/ugdesmond/Wallet-SDK/pkg/model"
	"github.com/ugdesmond/Wallet-SDK/pkg/wallet"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// WalletSDK is the public surface of the SDK. Every operation dispatches on
// the request's network and wraps successful results in model.Response.
type WalletSDK interface {
	// GenerateMnemonic returns a fresh BIP-39 phrase of words words (0 means the
	// configured MnemonicWords).
	GenerateMnemonic(words int) (string, error)

	CreateWallet(req *model.CreateWalletRequest) (model.Response[*model.Wallet], error)
	WalletFromMnemonic(req *model.WalletFromMnemonicRequest) (model.Response[*model.Wallet], error)
	WalletFromMnemonicAndIndex(req *model.MnemonicIndexRequest) (model.Response[*model.Wallet], error)
	AddressFromPrivateKey(req *model.AddressFromPrivateKeyRequest) (model.Response[*model.Address], error)

	Balance(ctx context.Context, req *model.BalanceRequest) (model.Response[*model.Balance], error)
	Transfer(ctx context.Context, req *model.TransferRequest) (model.Response[*model.Transfer], error)
	Transaction(ctx context.Context, req *model.TransactionRequest) (model.Response[*model.Transaction], error)
	TokenInfo(ctx context.Context, req *model.TokenInfoRequest) (model.Response[*model.TokenInfo], error)
	Call(ctx context.Context, req *model.ContractCallRequest) (model.Response[*model.CallResult], error)
	Health(ctx context.Context, req *model.HealthRequest) (model.Response[*model.NodeStatus], error)
}

// logLevel is shared by the global logger so Debug can raise it after init.
var logLevel = zap.NewAtomicLevelAt(zap.InfoLevel)

// init configures a default global zap logger for the SDK. Applications may
// replace it with zap.ReplaceGlobals(...) if they need custom logging.
func init() {
	encoder := zap.NewDevelopmentEncoderConfig()
	encoder.EncodeLevel = zapcore.CapitalLevelEncoder
	c := zap.Config{
		Level:            logLevel,
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    encoder,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := c.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}

// Core is the concrete SDK implementation.
type Core struct {
	cfg      config.Config
	registry *Registry
	metrics  *metrics.Recorder
}

type options struct {
	chains     map[string]Chain
	evmOptions []evm.Option
	recorder   *metrics.Recorder
}

type Option func(*options)

// WithChain registers an additional (or replacement) chain variant.
func WithChain(network string, chain Chain) Option {
	return func(o *options) {
		if o.chains == nil {
			o.chains = map[string]Chain{}
		}
		o.chains[network] = chain
	}
}

// WithEVMOptions passes options to the built-in Ethereum variant.
func WithEVMOptions(opts ...evm.Option) Option {
	return func(o *options) { o.evmOptions = append(o.evmOptions, opts...) }
}

// WithRecorder uses r instead of a fresh metrics.Recorder.
func WithRecorder(r *metrics.Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// NewSDK initializes the SDK Core with a validated copy of cfg (nil means all
// defaults) and registers the Ethereum variant.
func NewSDK(cfg *config.Config, opts ...Option) (*Core, error) {
	var conf config.Config
	if cfg != nil {
		conf = *cfg
	}
	if err := conf.Validate(); err != nil {
		zap.L().Error("Invalid config", zap.Error(err))
		return nil, err
	}
	conf.Timeouts = conf.Timeouts.WithDefaults()

	if conf.Debug {
		logLevel.SetLevel(zap.DebugLevel)
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	eth, err := evm.New(&conf, o.evmOptions...)
	if err != nil {
		return nil, err
	}
	registry := NewRegistry()
	registry.Register(model.NetworkEthereum, eth)
	for name, chain := range o.chains {
		registry.Register(name, chain)
	}

	recorder := o.recorder
	if recorder == nil {
		recorder = metrics.New()
	}

	zap.L().Debug("sdk initialized",
		zap.String("network", conf.Network),
		zap.Strings("networks", registry.Networks()))

	return &Core{cfg: conf, registry: registry, metrics: recorder}, nil
}

// Registry returns the network registry used for dispatch.
func (c *Core) Registry() *Registry {
	return c.registry
}

// Metrics returns the operation recorder. It is not registered anywhere;
// callers export it with Metrics().Register(reg).
func (c *Core) Metrics() *metrics.Recorder {
	return c.metrics
}

// GenerateMnemonic uses the configured MnemonicWords when words is 0.
func (c *Core) GenerateMnemonic(words int) (string, error) {
	if words == 0 {
		words = c.cfg.MnemonicWords
	}
	return wallet.GenerateMnemonic(words)
}

func (c *Core) CreateWallet(req *model.CreateWalletRequest) (model.Response[*model.Wallet], error) {
	return dispatch(c, req.Network, "create_wallet", func(ch Chain) (*model.Wallet, error) {
		return ch.CreateWallet(req)
	})
}

func (c *Core) WalletFromMnemonic(req *model.WalletFromMnemonicRequest) (model.Response[*model.Wallet], error) {
	return dispatch(c, req.Network, "wallet_from_mnemonic", func(ch Chain) (*model.Wallet, error) {
		return ch.WalletFromMnemonic(req)
	})
}

func (c *Core) WalletFromMnemonicAndIndex(req *model.MnemonicIndexRequest) (model.Response[*model.Wallet], error) {
	return dispatch(c, req.Network, "wallet_from_mnemonic_index", func(ch Chain) (*model.Wallet, error) {
		return ch.WalletFromMnemonicAndIndex(req)
	})
}

func (c *Core) AddressFromPrivateKey(req *model.AddressFromPrivateKeyRequest) (model.Response[*model.Address], error) {
	return dispatch(c, req.Network, "address_from_private_key", func(ch Chain) (*model.Address, error) {
		return ch.AddressFromPrivateKey(req)
	})
}

func (c *Core) Balance(ctx context.Context, req *model.BalanceRequest) (model.Response[*model.Balance], error) {
	return dispatch(c, req.Network, "balance", func(ch Chain) (*model.Balance, error) {
		return ch.Balance(ctx, req)
	})
}

// Transfer sends a token transfer when TokenAddress is set and a native
// transfer otherwise.
func (c *Core) Transfer(ctx context.Context, req *model.TransferRequest) (model.Response[*model.Transfer], error) {
	return dispatch(c, req.Network, "transfer", func(ch Chain) (*model.Transfer, error) {
		return ch.Transfer(ctx, req)
	})
}

func (c *Core) Transaction(ctx context.Context, req *model.TransactionRequest) (model.Response[*model.Transaction], error) {
	return dispatch(c, req.Network, "transaction", func(ch Chain) (*model.Transaction, error) {
		return ch.Transaction(ctx, req)
	})
}

func (c *Core) TokenInfo(ctx context.Context, req *model.TokenInfoRequest) (model.Response[*model.TokenInfo], error) {
	return dispatch(c, req.Network, "token_info", func(ch Chain) (*model.TokenInfo, error) {
		return ch.TokenInfo(ctx, req)
	})
}

func (c *Core) Call(ctx context.Context, req *model.ContractCallRequest) (model.Response[*model.CallResult], error) {
	return dispatch(c, req.Network, "contract_call", func(ch Chain) (*model.CallResult, error) {
		return ch.Call(ctx, req)
	})
}

// Health probes the request endpoint (or the configured one).
func (c *Core) Health(ctx context.Context, req *model.HealthRequest) (model.Response[*model.NodeStatus], error) {
	return dispatch(c, req.Network, "health", func(ch Chain) (*model.NodeStatus, error) {
		return ch.Health(ctx, req)
	})
}

// dispatch resolves network (the configured default when empty), runs fn on
// its chain variant and records the outcome.
func dispatch[T any](c *Core, network, operation string, fn func(Chain) (T, error)) (model.Response[T], error) {
	start := time.Now()
	if network == "" {
		network = c.cfg.Network
	}

	chain, err := c.registry.Lookup(network)
	if err != nil {
		zap.L().Warn("network not supported", zap.String("network", network), zap.String("operation", operation))
		c.metrics.Observe(network, operation, start, err)
		return model.Response[T]{}, err
	}

	out, err := fn(chain)
	c.metrics.Observe(network, operation, start, err)
	if err != nil {
		zap.L().Debug("operation failed",
			zap.String("network", network), zap.String("operation", operation), zap.Error(err))
		return model.Response[T]{}, err
	}
	return model.Success(out), nil
}

var _ WalletSDK = (*Core)(nil)
