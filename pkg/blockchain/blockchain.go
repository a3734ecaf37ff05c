package blockchain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

// Backend is the set of node capabilities the SDK relies on. It is satisfied
// by *ethclient.Client and by the in-memory node used in tests.
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error)
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionByHash(ctx context.Context, hash common.Hash) (tx *types.Transaction, isPending bool, err error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// EVMClient is a per-request chain context. Every method is one round trip to
// the node; nothing is cached between calls.
type EVMClient struct {
	Client Backend
}

// NewEVMClient wraps an existing backend.
func NewEVMClient(backend Backend) *EVMClient {
	return &EVMClient{Client: backend}
}

// Dial connects to an HTTP(S) or WS(S) JSON-RPC endpoint.
func Dial(ctx context.Context, endpoint string) (*EVMClient, error) {
	client, err := ethclient.DialContext(ctx, endpoint)
	if err != nil {
		zap.L().Error("Failed to ethdial", zap.String("endpoint", endpoint), zap.Error(err))
		return nil, err
	}
	return NewEVMClient(client), nil
}

// Close releases the underlying connection if the backend holds one.
func (evm *EVMClient) Close() {
	if evm == nil || evm.Client == nil {
		return
	}
	if c, ok := evm.Client.(interface{ Close() }); ok {
		c.Close()
	}
}

// GasPrice returns the node's suggested legacy gas price in wei.
func (evm *EVMClient) GasPrice(ctx context.Context) (*big.Int, error) {
	return evm.Client.SuggestGasPrice(ctx)
}

// Nonce returns the pending nonce of addr.
func (evm *EVMClient) Nonce(ctx context.Context, addr common.Address) (uint64, error) {
	return evm.Client.PendingNonceAt(ctx, addr)
}

// Balance returns the latest native balance of addr in wei.
func (evm *EVMClient) Balance(ctx context.Context, addr common.Address) (*big.Int, error) {
	return evm.Client.BalanceAt(ctx, addr, nil)
}

func (evm *EVMClient) ChainID(ctx context.Context) (*big.Int, error) {
	return evm.Client.ChainID(ctx)
}

func (evm *EVMClient) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	return evm.Client.EstimateGas(ctx, msg)
}

// CallContract executes msg against the latest block without a transaction.
func (evm *EVMClient) CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
	return evm.Client.CallContract(ctx, msg, nil)
}

func (evm *EVMClient) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	err := evm.Client.SendTransaction(ctx, tx)
	if err != nil {
		zap.L().Error("failed to send transaction", zap.String("txHash", tx.Hash().Hex()), zap.Error(err))
	}
	return err
}

// TransactionByHash returns the node's view of a transaction. Not-found
// lookups return ethereum.NotFound unchanged.
func (evm *EVMClient) TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error) {
	return evm.Client.TransactionByHash(ctx, hash)
}

func (evm *EVMClient) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	return evm.Client.TransactionReceipt(ctx, hash)
}

// GetCurrentBlockNumberCtx returns the latest block number using the provided context.
func (evm *EVMClient) GetCurrentBlockNumberCtx(ctx context.Context) (*big.Int, error) {
	n, err := evm.Client.BlockNumber(ctx)
	if err != nil {
		zap.L().Error("failed to get last block number", zap.Error(err))
		return nil, err
	}
	return new(big.Int).SetUint64(n), nil
}
