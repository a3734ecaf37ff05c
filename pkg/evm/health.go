package evm

import (
	"context"
	"time"

	"github.com/ugdesmond/Wallet-SDK/pkg/blockchain"
	"github.com/ugdesmond/Wallet-SDK/pkg/model"
	"go.uber.org/zap"
)

// Health probes the endpoint for its chain ID and head block.
func (c *Chain) Health(ctx context.Context, req *model.HealthRequest) (*model.NodeStatus, error) {
	ctx, cancel := blockchain.WithTimeout(ctx, c.timeouts.ChainRead)
	defer cancel()

	start := time.Now()
	evm, err := c.open(ctx, req.RPCURL)
	if err != nil {
		return nil, err
	}
	defer evm.Close()

	chainID, err := evm.ChainID(ctx)
	if err != nil {
		zap.L().Error("health probe failed", zap.String("network", c.network), zap.Error(err))
		return nil, err
	}
	head, err := evm.GetCurrentBlockNumberCtx(ctx)
	if err != nil {
		return nil, err
	}
	return &model.NodeStatus{
		Network:     c.network,
		ChainID:     chainID.String(),
		BlockNumber: head.Uint64(),
		Latency:     time.Since(start).String(),
	}, nil
}
