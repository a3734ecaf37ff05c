package blockchain

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// ErrMethodNotFound is returned when a contract handle has no method with the requested name.
var ErrMethodNotFound = errors.New("method not found in contract ABI")

// Method is one callable entry of a contract handle. Call runs it as eth_call;
// Transact signs and submits it as a transaction.
type Method struct {
	Name     string
	ABI      abi.Method
	Call     func(ctx context.Context, gasLimit uint64, params ...any) ([]any, error)
	Transact func(ctx context.Context, signer *SignerBundle, tx TxParams, params ...any) (*types.Transaction, error)
}

// Contract is a handle bound to an address whose methods are derived from an
// ABI when the handle is built.
type Contract struct {
	Address common.Address
	ABI     abi.ABI
	methods map[string]Method
}

// NewContract builds the method table for parsed at address. Overloaded
// methods are reachable by their go-ethereum key (name, name0, name1...) and
// the first overload also by its raw name.
func (evm *EVMClient) NewContract(address common.Address, parsed abi.ABI) *Contract {
	c := &Contract{Address: address, ABI: parsed, methods: make(map[string]Method, len(parsed.Methods))}
	for key, m := range parsed.Methods {
		c.methods[key] = evm.bindMethod(address, parsed, key, m)
	}
	for _, m := range parsed.Methods {
		if _, ok := c.methods[m.RawName]; !ok {
			c.methods[m.RawName] = c.methods[m.Name]
		}
	}
	return c
}

// Method looks up name in the handle's method table.
func (c *Contract) Method(name string) (Method, error) {
	m, ok := c.methods[name]
	if !ok {
		return Method{}, fmt.Errorf("%w: %s", ErrMethodNotFound, name)
	}
	return m, nil
}

// Methods returns the sorted names the handle answers to.
func (c *Contract) Methods() []string {
	names := make([]string, 0, len(c.methods))
	for name := range c.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (evm *EVMClient) bindMethod(address common.Address, parsed abi.ABI, key string, m abi.Method) Method {
	pack := func(params []any) ([]byte, error) {
		data, err := parsed.Pack(key, coerceArgs(m.Inputs, params)...)
		if err != nil {
			zap.L().Error("failed to pack arguments", zap.String("method", key), zap.Error(err))
			return nil, err
		}
		return data, nil
	}

	return Method{
		Name: key,
		ABI:  m,
		Call: func(ctx context.Context, gasLimit uint64, params ...any) ([]any, error) {
			data, err := pack(params)
			if err != nil {
				return nil, err
			}
			out, err := evm.CallContract(ctx, ethereum.CallMsg{To: &address, Data: data, Gas: gasLimit})
			if err != nil {
				zap.L().Error("contract call failed", zap.String("contract", address.Hex()), zap.String("method", key), zap.Error(err))
				return nil, err
			}
			return parsed.Unpack(key, out)
		},
		Transact: func(ctx context.Context, signer *SignerBundle, tx TxParams, params ...any) (*types.Transaction, error) {
			data, err := pack(params)
			if err != nil {
				return nil, err
			}
			tx.To = &address
			tx.Data = data
			return evm.SignAndSend(ctx, signer, tx)
		},
	}
}
