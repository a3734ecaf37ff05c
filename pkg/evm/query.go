package evm

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ugdesmond/Wallet-SDK/pkg/blockchain"
	"github.com/ugdesmond/Wallet-SDK/pkg/model"
	"go.uber.org/zap"
)

// TokenInfo reads name, symbol, decimals and totalSupply of an ERC-20 token
// concurrently. TotalSupply is returned in human units.
func (c *Chain) TokenInfo(ctx context.Context, req *model.TokenInfoRequest) (*model.TokenInfo, error) {
	addr, err := parseAddress("token", req.Address)
	if err != nil {
		return nil, err
	}
	erc20, err := blockchain.ERC20()
	if err != nil {
		return nil, err
	}

	ctx, cancel := blockchain.WithTimeout(ctx, c.timeouts.ChainRead)
	defer cancel()

	evm, err := c.open(ctx, req.RPCURL)
	if err != nil {
		return nil, err
	}
	defer evm.Close()
	token := evm.NewContract(addr, erc20)

	var (
		mu       sync.Mutex
		info     = &model.TokenInfo{Address: addr.Hex()}
		supply   *big.Int
		wg       sync.WaitGroup
		errs     = make(chan error, 4)
		readInto = func(method string, assign func(any) error) {
			defer wg.Done()
			v, err := callSingle(ctx, token, method)
			if err == nil {
				mu.Lock()
				err = assign(v)
				mu.Unlock()
			}
			if err != nil {
				errs <- fmt.Errorf("%s: %w", method, err)
			}
		}
	)

	wg.Add(4)
	go readInto("name", func(v any) (err error) { info.Name, err = asString(v); return })
	go readInto("symbol", func(v any) (err error) { info.Symbol, err = asString(v); return })
	go readInto("decimals", func(v any) (err error) { info.Decimals, err = asUint8(v); return })
	go readInto("totalSupply", func(v any) (err error) { supply, err = asBigInt(v); return })

	wg.Wait()
	close(errs)
	for e := range errs {
		if e != nil {
			zap.L().Error("failed to read token info", zap.String("token", addr.Hex()), zap.Error(e))
			return nil, e
		}
	}

	info.TotalSupply = blockchain.FromBaseUnits(supply, info.Decimals)
	return info, nil
}

// Transaction returns the node's view of req.Hash unmodified. A hash unknown
// to the node surfaces the client's not-found error.
func (c *Chain) Transaction(ctx context.Context, req *model.TransactionRequest) (*model.Transaction, error) {
	raw, err := hexutil.Decode(req.Hash)
	if err != nil || len(raw) != common.HashLength {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidHash, req.Hash)
	}

	ctx, cancel := blockchain.WithTimeout(ctx, c.timeouts.ChainRead)
	defer cancel()

	evm, err := c.open(ctx, req.RPCURL)
	if err != nil {
		return nil, err
	}
	defer evm.Close()

	tx, pending, err := evm.TransactionByHash(ctx, common.BytesToHash(raw))
	if err != nil {
		zap.L().Error("failed to get transaction", zap.String("txHash", req.Hash), zap.Error(err))
		return nil, err
	}
	return &model.Transaction{Tx: tx, Pending: pending}, nil
}

// Balance returns the native balance of req.Address, or its ERC-20 balance
// when req.TokenAddress is set, in human units.
func (c *Chain) Balance(ctx context.Context, req *model.BalanceRequest) (*model.Balance, error) {
	owner, err := parseAddress("address", req.Address)
	if err != nil {
		return nil, err
	}

	ctx, cancel := blockchain.WithTimeout(ctx, c.timeouts.ChainRead)
	defer cancel()

	evm, err := c.open(ctx, req.RPCURL)
	if err != nil {
		return nil, err
	}
	defer evm.Close()

	if req.TokenAddress == "" {
		wei, err := evm.Balance(ctx, owner)
		if err != nil {
			zap.L().Error("failed to get balance", zap.String("address", owner.Hex()), zap.Error(err))
			return nil, err
		}
		return &model.Balance{Balance: blockchain.FromBaseUnits(wei, blockchain.EtherDecimals)}, nil
	}

	tokenAddr, err := parseAddress("token", req.TokenAddress)
	if err != nil {
		return nil, err
	}
	erc20, err := blockchain.ERC20()
	if err != nil {
		return nil, err
	}
	token := evm.NewContract(tokenAddr, erc20)
	decimals, err := tokenDecimals(ctx, token)
	if err != nil {
		return nil, err
	}
	v, err := callSingle(ctx, token, "balanceOf", owner)
	if err != nil {
		return nil, err
	}
	units, err := asBigInt(v)
	if err != nil {
		return nil, err
	}
	return &model.Balance{Balance: blockchain.FromBaseUnits(units, decimals)}, nil
}

func callSingle(ctx context.Context, contract *blockchain.Contract, name string, params ...any) (any, error) {
	m, err := contract.Method(name)
	if err != nil {
		return nil, err
	}
	out, err := m.Call(ctx, 0, params...)
	if err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("%s returned %d values, want 1", name, len(out))
	}
	return out[0], nil
}

func tokenDecimals(ctx context.Context, token *blockchain.Contract) (uint8, error) {
	v, err := callSingle(ctx, token, "decimals")
	if err != nil {
		return 0, err
	}
	return asUint8(v)
}

func asString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("unexpected %T, want string", v)
	}
	return strings.TrimRight(s, "\x00"), nil
}

func asUint8(v any) (uint8, error) {
	switch n := v.(type) {
	case uint8:
		return n, nil
	case *big.Int:
		if n.IsUint64() && n.Uint64() <= 255 {
			return uint8(n.Uint64()), nil
		}
	}
	return 0, fmt.Errorf("unexpected decimals %v (%T)", v, v)
}

func asBigInt(v any) (*big.Int, error) {
	n, ok := v.(*big.Int)
	if !ok || n == nil {
		return nil, fmt.Errorf("unexpected %T, want *big.Int", v)
	}
	return n, nil
}
