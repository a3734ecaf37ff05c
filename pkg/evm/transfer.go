package evm

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ugdesmond/Wallet-SDK/pkg/blockchain"
	"github.com/ugdesmond/Wallet-SDK/pkg/model"
	"go.uber.org/zap"
)

// Transfer sends a token transfer when req.TokenAddress is set and a native
// transfer otherwise.
func (c *Chain) Transfer(ctx context.Context, req *model.TransferRequest) (*model.Transfer, error) {
	if req.TokenAddress != "" {
		return c.TransferToken(ctx, req)
	}
	return c.TransferNative(ctx, req)
}

// TransferNative sends Amount ether (scaled by 10^18) to RecipientAddress.
// Gas price and nonce overrides win over the resolved values; Data is sent
// as UTF-8 bytes. A positive BlockConfirmation starts a background wait that
// is attached to the result; the call itself never blocks on it.
func (c *Chain) TransferNative(ctx context.Context, req *model.TransferRequest) (*model.Transfer, error) {
	to, err := parseAddress("recipient", req.RecipientAddress)
	if err != nil {
		return nil, err
	}
	value, err := blockchain.ToBaseUnits(req.Amount, blockchain.EtherDecimals)
	if err != nil {
		return nil, err
	}
	gasPrice, err := gasPriceOverride(req.GasPrice)
	if err != nil {
		return nil, err
	}

	ctx, cancel := blockchain.WithTimeout(ctx, c.timeouts.ChainSubmit)
	defer cancel()

	evm, err := c.open(ctx, req.RPCURL)
	if err != nil {
		return nil, err
	}
	s := &session{evm: evm}
	defer s.close()

	bundle, err := evm.ResolveSigner(ctx, req.PrivateKey)
	if err != nil {
		return nil, err
	}
	tx, err := evm.SignAndSend(ctx, bundle, blockchain.TxParams{
		To:       &to,
		Value:    value,
		Data:     blockchain.UTF8Data(req.Data),
		GasPrice: gasPrice,
		Nonce:    req.Nonce,
		GasLimit: gasLimitOr(req.GasLimit),
		MinGas:   bundle.BaseGas,
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("native transfer submitted",
		zap.String("network", c.network),
		zap.String("address", bundle.From.Hex()),
		zap.String("txHash", tx.Hash().Hex()))
	return c.transferResult(s, tx, req.BlockConfirmation), nil
}

// TransferToken sends Amount tokens (scaled by the token's decimals()) via
// the ERC-20 transfer method of TokenAddress.
func (c *Chain) TransferToken(ctx context.Context, req *model.TransferRequest) (*model.Transfer, error) {
	if req.TokenAddress == "" {
		return nil, model.ErrTokenAddressRequired
	}
	token, err := parseAddress("token", req.TokenAddress)
	if err != nil {
		return nil, err
	}
	recipient, err := parseAddress("recipient", req.RecipientAddress)
	if err != nil {
		return nil, err
	}
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: negative amount %s", model.ErrInvalidAmount, req.Amount)
	}
	gasPrice, err := gasPriceOverride(req.GasPrice)
	if err != nil {
		return nil, err
	}
	erc20, err := blockchain.ERC20()
	if err != nil {
		return nil, err
	}

	ctx, cancel := blockchain.WithTimeout(ctx, c.timeouts.ChainSubmit)
	defer cancel()

	evm, err := c.open(ctx, req.RPCURL)
	if err != nil {
		return nil, err
	}
	s := &session{evm: evm}
	defer s.close()

	bundle, err := evm.ResolveSigner(ctx, req.PrivateKey)
	if err != nil {
		return nil, err
	}
	contract := evm.NewContract(token, erc20)
	decimals, err := tokenDecimals(ctx, contract)
	if err != nil {
		return nil, err
	}
	amount, err := blockchain.ToBaseUnits(req.Amount, decimals)
	if err != nil {
		return nil, err
	}

	transfer, err := contract.Method("transfer")
	if err != nil {
		return nil, err
	}
	tx, err := transfer.Transact(ctx, bundle, blockchain.TxParams{
		GasPrice: gasPrice,
		Nonce:    req.Nonce,
		GasLimit: gasLimitOr(req.GasLimit),
	}, recipient, amount)
	if err != nil {
		return nil, err
	}

	zap.L().Info("token transfer submitted",
		zap.String("network", c.network),
		zap.String("address", bundle.From.Hex()),
		zap.String("token", token.Hex()),
		zap.String("txHash", tx.Hash().Hex()))
	return c.transferResult(s, tx, req.BlockConfirmation), nil
}

// session owns a chain context for one operation. Ownership moves to a
// background confirmation when one is started.
type session struct {
	evm       *blockchain.EVMClient
	handedOff bool
}

func (s *session) close() {
	if !s.handedOff {
		s.evm.Close()
	}
}

func (c *Chain) transferResult(s *session, tx *types.Transaction, depth uint64) *model.Transfer {
	res := &model.Transfer{Tx: tx}
	if depth > 0 {
		s.handedOff = true
		res.Confirmation = s.evm.StartConfirmation(tx.Hash(), depth, c.timeouts.ReceiptWait, s.evm.Close)
	}
	return res
}
