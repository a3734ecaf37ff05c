package blockchain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// receiptPollInterval is the first backoff step while waiting for a receipt.
var receiptPollInterval = time.Second

const maxReceiptBackoff = 30 * time.Second

// WithTimeout returns ctx unchanged if d <= 0, otherwise returns a child context with timeout d.
// The returned cancel function is always non-nil and should be called to release resources.
func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

// WaitForTransaction polls for a transaction receipt with exponential backoff,
// until receipt is available, context is done, or an error occurs. If maxBackoff
// is non-zero, backoff will not exceed it. It returns an error if the tx is reverted.
func (evm *EVMClient) WaitForTransaction(ctx context.Context, txHash common.Hash, maxBackoff time.Duration) (*types.Receipt, error) {
	backoff := receiptPollInterval
	for {
		receipt, err := evm.TransactionReceipt(ctx, txHash)
		switch {
		case err == nil:
			if receipt.Status == types.ReceiptStatusFailed {
				return receipt, fmt.Errorf("tx reverted: %s", txHash)
			}
			return receipt, nil
		case errors.Is(err, ethereum.NotFound):
			if err := sleepCtx(ctx, backoff); err != nil {
				return nil, err
			}
			if maxBackoff == 0 || backoff < maxBackoff {
				backoff *= 2
			}
			if maxBackoff > 0 && backoff > maxBackoff {
				backoff = maxBackoff
			}
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, err
		default:
			return nil, fmt.Errorf("receipt error: %w", err)
		}
	}
}

// WaitForConfirmations waits for txHash to be mined and then for the chain head
// to be at least depth blocks deep including the inclusion block.
func (evm *EVMClient) WaitForConfirmations(ctx context.Context, txHash common.Hash, depth uint64, maxBackoff time.Duration) (*types.Receipt, error) {
	receipt, err := evm.WaitForTransaction(ctx, txHash, maxBackoff)
	if err != nil || depth <= 1 {
		return receipt, err
	}

	target := receipt.BlockNumber.Uint64() + depth - 1
	for {
		head, err := evm.Client.BlockNumber(ctx)
		if err != nil {
			return receipt, err
		}
		if head >= target {
			return receipt, nil
		}
		if err := sleepCtx(ctx, receiptPollInterval); err != nil {
			return receipt, err
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Confirmation tracks a submitted transaction in the background until it has
// the requested number of confirmations or the wait times out.
type Confirmation struct {
	Hash  common.Hash
	Depth uint64

	done    chan struct{}
	receipt *types.Receipt
	err     error
}

// StartConfirmation launches the background wait. timeout bounds the whole
// wait (no bound when <= 0). release, when non-nil, runs once the wait ends
// and is how the caller hands over ownership of the connection.
func (evm *EVMClient) StartConfirmation(txHash common.Hash, depth uint64, timeout time.Duration, release func()) *Confirmation {
	c := &Confirmation{Hash: txHash, Depth: depth, done: make(chan struct{})}
	go func() {
		defer close(c.done)
		if release != nil {
			defer release()
		}
		ctx, cancel := WithTimeout(context.Background(), timeout)
		defer cancel()

		c.receipt, c.err = evm.WaitForConfirmations(ctx, txHash, depth, maxReceiptBackoff)
		if c.err != nil {
			zap.L().Warn("confirmation wait ended with error",
				zap.String("txHash", txHash.Hex()), zap.Uint64("depth", depth), zap.Error(c.err))
			return
		}
		zap.L().Debug("transaction confirmed",
			zap.String("txHash", txHash.Hex()), zap.Uint64("block", c.receipt.BlockNumber.Uint64()), zap.Uint64("depth", depth))
	}()
	return c
}

// Done is closed when the wait has finished.
func (c *Confirmation) Done() <-chan struct{} {
	return c.done
}

// Wait blocks until the background wait finishes or ctx is done.
func (c *Confirmation) Wait(ctx context.Context) (*types.Receipt, error) {
	select {
	case <-c.done:
		return c.receipt, c.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Receipt returns the receipt once Done is closed, nil before.
func (c *Confirmation) Receipt() *types.Receipt {
	select {
	case <-c.done:
		return c.receipt
	default:
		return nil
	}
}

// Err returns the wait error once Done is closed, nil before.
func (c *Confirmation) Err() error {
	select {
	case <-c.done:
		return c.err
	default:
		return nil
	}
}
