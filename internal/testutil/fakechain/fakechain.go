// Package fakechain provides an in-memory JSON-RPC node stand-in for tests.
// It answers the node capabilities used by the SDK with canned values,
// decodes eth_call selectors against registered ABIs, and records every
// submitted transaction.
package fakechain

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

type contract struct {
	abi     abi.ABI
	results map[string][]any
}

// Backend is safe for concurrent use.
type Backend struct {
	mu sync.Mutex

	chainID     *big.Int
	gasPrice    *big.Int
	gasEstimate uint64
	head        uint64
	nonces      map[common.Address]uint64
	balances    map[common.Address]*big.Int
	contracts   map[common.Address]*contract
	txs         map[common.Hash]*types.Transaction
	pending     map[common.Hash]bool
	receipts    map[common.Hash]*types.Receipt
	failures    map[string]error

	requests  int
	closed    int
	sent      []*types.Transaction
	calls     []ethereum.CallMsg
	estimates []ethereum.CallMsg
}

// New returns a backend on chainID with the given suggested gas price and
// gas estimate.
func New(chainID int64, gasPrice *big.Int, gasEstimate uint64) *Backend {
	return &Backend{
		chainID:     big.NewInt(chainID),
		gasPrice:    gasPrice,
		gasEstimate: gasEstimate,
		head:        1,
		nonces:      map[common.Address]uint64{},
		balances:    map[common.Address]*big.Int{},
		contracts:   map[common.Address]*contract{},
		txs:         map[common.Hash]*types.Transaction{},
		pending:     map[common.Hash]bool{},
		receipts:    map[common.Hash]*types.Receipt{},
		failures:    map[string]error{},
	}
}

func (b *Backend) SetNonce(addr common.Address, nonce uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nonces[addr] = nonce
}

func (b *Backend) SetBalance(addr common.Address, wei *big.Int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.balances[addr] = wei
}

func (b *Backend) SetHead(n uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.head = n
}

// Fail makes the named backend method return err.
func (b *Backend) Fail(method string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[method] = err
}

// Answer registers the return values of method on the contract at addr.
func (b *Backend) Answer(addr common.Address, parsed abi.ABI, method string, values ...any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.contracts[addr]
	if !ok {
		c = &contract{abi: parsed, results: map[string][]any{}}
		b.contracts[addr] = c
	}
	c.results[method] = values
}

// AddTransaction makes tx visible to TransactionByHash.
func (b *Backend) AddTransaction(tx *types.Transaction, pending bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.txs[tx.Hash()] = tx
	b.pending[tx.Hash()] = pending
}

// Mine records a receipt for hash at block with the given status.
func (b *Backend) Mine(hash common.Hash, block uint64, status uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.receipts[hash] = &types.Receipt{TxHash: hash, Status: status, BlockNumber: new(big.Int).SetUint64(block)}
	b.pending[hash] = false
	if block > b.head {
		b.head = block
	}
}

// Sent returns the submitted transactions in order.
func (b *Backend) Sent() []*types.Transaction {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*types.Transaction(nil), b.sent...)
}

// Calls returns the eth_call messages in order.
func (b *Backend) Calls() []ethereum.CallMsg {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]ethereum.CallMsg(nil), b.calls...)
}

// Estimates returns the gas estimation messages in order.
func (b *Backend) Estimates() []ethereum.CallMsg {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]ethereum.CallMsg(nil), b.estimates...)
}

// Requests is the number of node round trips served so far.
func (b *Backend) Requests() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requests
}

// Closed is the number of times Close was called.
func (b *Backend) Closed() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed++
}

// enter counts a request and returns the configured failure for method. The
// caller must hold b.mu.
func (b *Backend) enter(method string) error {
	b.requests++
	return b.failures[method]
}

func (b *Backend) ChainID(ctx context.Context) (*big.Int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("ChainID"); err != nil {
		return nil, err
	}
	return new(big.Int).Set(b.chainID), nil
}

func (b *Backend) BlockNumber(ctx context.Context) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("BlockNumber"); err != nil {
		return 0, err
	}
	return b.head, nil
}

func (b *Backend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("SuggestGasPrice"); err != nil {
		return nil, err
	}
	return new(big.Int).Set(b.gasPrice), nil
}

func (b *Backend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("PendingNonceAt"); err != nil {
		return 0, err
	}
	return b.nonces[account], nil
}

func (b *Backend) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("BalanceAt"); err != nil {
		return nil, err
	}
	if bal, ok := b.balances[account]; ok {
		return new(big.Int).Set(bal), nil
	}
	return new(big.Int), nil
}

func (b *Backend) EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.estimates = append(b.estimates, call)
	if err := b.enter("EstimateGas"); err != nil {
		return 0, err
	}
	return b.gasEstimate, nil
}

func (b *Backend) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, call)
	if err := b.enter("CallContract"); err != nil {
		return nil, err
	}
	if call.To == nil {
		return nil, fmt.Errorf("fakechain: call without target")
	}
	c, ok := b.contracts[*call.To]
	if !ok {
		return nil, nil
	}
	if len(call.Data) < 4 {
		return nil, fmt.Errorf("fakechain: short call data")
	}
	m, err := c.abi.MethodById(call.Data[:4])
	if err != nil {
		return nil, err
	}
	values, ok := c.results[m.Name]
	if !ok {
		return nil, fmt.Errorf("fakechain: no answer for %s", m.Name)
	}
	return m.Outputs.Pack(values...)
}

func (b *Backend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("SendTransaction"); err != nil {
		return err
	}
	b.sent = append(b.sent, tx)
	b.txs[tx.Hash()] = tx
	b.pending[tx.Hash()] = true
	return nil
}

func (b *Backend) TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("TransactionByHash"); err != nil {
		return nil, false, err
	}
	tx, ok := b.txs[hash]
	if !ok {
		return nil, false, ethereum.NotFound
	}
	return tx, b.pending[hash], nil
}

func (b *Backend) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("TransactionReceipt"); err != nil {
		return nil, err
	}
	r, ok := b.receipts[hash]
	if !ok {
		return nil, ethereum.NotFound
	}
	return r, nil
}
