package evm

import (
	"context"

	"github.com/ugdesmond/Wallet-SDK/pkg/blockchain"
	"github.com/ugdesmond/Wallet-SDK/pkg/model"
	"go.uber.org/zap"
)

// Call invokes req.Method on req.ContractAddress. A write MethodType signs and
// submits a transaction; any other value performs a read-only eth_call.
func (c *Chain) Call(ctx context.Context, req *model.ContractCallRequest) (*model.CallResult, error) {
	if req.MethodType == model.MethodWrite {
		return c.callWrite(ctx, req)
	}
	return c.callRead(ctx, req)
}

func (c *Chain) callRead(ctx context.Context, req *model.ContractCallRequest) (*model.CallResult, error) {
	addr, err := parseAddress("contract", req.ContractAddress)
	if err != nil {
		return nil, err
	}
	parsed, err := blockchain.ParseABI(req.ContractABI)
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

	method, err := evm.NewContract(addr, parsed).Method(req.Method)
	if err != nil {
		return nil, err
	}
	out, err := method.Call(ctx, gasLimitOr(req.GasLimit), req.Params...)
	if err != nil {
		return nil, err
	}
	return &model.CallResult{Data: unwrap(out)}, nil
}

func (c *Chain) callWrite(ctx context.Context, req *model.ContractCallRequest) (*model.CallResult, error) {
	if req.PrivateKey == "" {
		return nil, model.ErrPrivateKeyRequired
	}
	addr, err := parseAddress("contract", req.ContractAddress)
	if err != nil {
		return nil, err
	}
	parsed, err := blockchain.ParseABI(req.ContractABI)
	if err != nil {
		return nil, err
	}
	gasPrice, err := gasPriceOverride(req.GasPrice)
	if err != nil {
		return nil, err
	}
	var value any = 0
	if req.Value != nil {
		value = *req.Value
	}
	wei, err := blockchain.ToBaseUnits(value, blockchain.EtherDecimals)
	if err != nil {
		return nil, err
	}

	ctx, cancel := blockchain.WithTimeout(ctx, c.timeouts.ChainSubmit)
	defer cancel()

	evm, err := c.open(ctx, req.RPCURL)
	if err != nil {
		return nil, err
	}
	defer evm.Close()

	method, err := evm.NewContract(addr, parsed).Method(req.Method)
	if err != nil {
		return nil, err
	}
	bundle, err := evm.ResolveSigner(ctx, req.PrivateKey)
	if err != nil {
		return nil, err
	}
	tx, err := method.Transact(ctx, bundle, blockchain.TxParams{
		Value:    wei,
		GasPrice: gasPrice,
		Nonce:    req.Nonce,
		GasLimit: gasLimitOr(req.GasLimit),
	}, req.Params...)
	if err != nil {
		return nil, err
	}

	zap.L().Info("contract call submitted",
		zap.String("network", c.network),
		zap.String("contract", addr.Hex()),
		zap.String("method", method.Name),
		zap.String("txHash", tx.Hash().Hex()))
	return &model.CallResult{Data: tx}, nil
}

// unwrap returns the single output of a call directly and nil for none.
func unwrap(out []any) any {
	switch len(out) {
	case 0:
		return nil
	case 1:
		return out[0]
	default:
		return out
	}
}
