package blockchain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ugdesmond/Wallet-SDK/pkg/model"
	"go.uber.org/zap"
)

// BaseGas is the fixed gas cost of a plain value transfer.
const BaseGas uint64 = 21000

// SignerBundle is a one-shot snapshot of everything needed to sign a
// transaction. GasPrice and Nonce are read at ResolvedAt and are not
// re-validated before submission; a concurrent sender using the same key can
// make Nonce stale.
type SignerBundle struct {
	Key        *ecdsa.PrivateKey
	From       common.Address
	Opts       *bind.TransactOpts
	ChainID    *big.Int
	GasPrice   *big.Int
	Nonce      uint64
	BaseGas    uint64
	ResolvedAt time.Time
}

// GasPriceOr returns override when set, otherwise the resolved gas price.
func (b *SignerBundle) GasPriceOr(override *big.Int) *big.Int {
	if override != nil {
		return override
	}
	return b.GasPrice
}

// NonceOr returns *override when set (zero included), otherwise the resolved nonce.
func (b *SignerBundle) NonceOr(override *uint64) uint64 {
	if override != nil {
		return *override
	}
	return b.Nonce
}

// GetTransactOpts creates a transactor bound to the given chainID and ECDSA key.
func GetTransactOpts(chainID *big.Int, pk *ecdsa.PrivateKey) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(pk, chainID)
	if err != nil {
		zap.L().Error("failed to create transactor", zap.Error(err))
		return nil, err
	}
	return opts, nil
}

// ResolveSigner parses privateKey and reads chain ID, gas price and pending
// nonce concurrently. Any failure is returned as *model.SignerResolutionError.
func (evm *EVMClient) ResolveSigner(ctx context.Context, privateKey string) (*SignerBundle, error) {
	from, key, err := ParsePrivateKeyECDSA(privateKey)
	if err != nil {
		return nil, &model.SignerResolutionError{Err: err}
	}

	var (
		mu       sync.Mutex
		chainID  *big.Int
		gasPrice *big.Int
		nonce    uint64
		wg       sync.WaitGroup
		errs     = make(chan error, 3)
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		id, err := evm.ChainID(ctx)
		if err != nil {
			errs <- fmt.Errorf("chain id: %w", err)
			return
		}
		mu.Lock()
		chainID = id
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		price, err := evm.GasPrice(ctx)
		if err != nil {
			errs <- fmt.Errorf("gas price: %w", err)
			return
		}
		mu.Lock()
		gasPrice = price
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		n, err := evm.Nonce(ctx, from)
		if err != nil {
			errs <- fmt.Errorf("nonce: %w", err)
			return
		}
		mu.Lock()
		nonce = n
		mu.Unlock()
	}()

	wg.Wait()
	close(errs)
	for e := range errs {
		if e != nil {
			zap.L().Error("failed to resolve signer", zap.String("address", from.Hex()), zap.Error(e))
			return nil, &model.SignerResolutionError{Err: e}
		}
	}

	opts, err := GetTransactOpts(chainID, key)
	if err != nil {
		return nil, &model.SignerResolutionError{Err: err}
	}
	opts.Context = ctx

	return &SignerBundle{
		Key:        key,
		From:       from,
		Opts:       opts,
		ChainID:    chainID,
		GasPrice:   gasPrice,
		Nonce:      nonce,
		BaseGas:    BaseGas,
		ResolvedAt: time.Now(),
	}, nil
}

// TxParams describes a legacy transaction to sign with a SignerBundle. Nil
// GasPrice and Nonce fall back to the bundle; a zero GasLimit is estimated.
type TxParams struct {
	To       *common.Address
	Value    *big.Int
	Data     []byte
	GasPrice *big.Int
	Nonce    *uint64
	GasLimit uint64
	MinGas   uint64
}

// SignAndSend builds a legacy transaction from p, signs it with the bundle's
// transactor and submits it. Node errors are returned unchanged.
func (evm *EVMClient) SignAndSend(ctx context.Context, b *SignerBundle, p TxParams) (*types.Transaction, error) {
	value := p.Value
	if value == nil {
		value = new(big.Int)
	}
	gasPrice := b.GasPriceOr(p.GasPrice)

	gasLimit := p.GasLimit
	if gasLimit == 0 {
		estimated, err := evm.EstimateGas(ctx, ethereum.CallMsg{
			From:     b.From,
			To:       p.To,
			GasPrice: gasPrice,
			Value:    value,
			Data:     p.Data,
		})
		if err != nil {
			zap.L().Error("failed to estimate gas", zap.String("address", b.From.Hex()), zap.Error(err))
			return nil, err
		}
		gasLimit = max(estimated, p.MinGas)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    b.NonceOr(p.Nonce),
		To:       p.To,
		Value:    value,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     p.Data,
	})
	signed, err := b.Opts.Signer(b.From, tx)
	if err != nil {
		zap.L().Error("failed to sign transaction", zap.Error(err))
		return nil, err
	}
	if err := evm.SendTransaction(ctx, signed); err != nil {
		return nil, err
	}
	zap.L().Debug("transaction submitted",
		zap.String("address", b.From.Hex()),
		zap.String("txHash", signed.Hash().Hex()),
		zap.Uint64("nonce", signed.Nonce()))
	return signed, nil
}
