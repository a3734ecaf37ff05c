package sdk

import (
	"context"
	"sort"
	"sync"

	"github.com/ugdesmond/Wallet-SDK/pkg/model"
)

// Chain is one network family's implementation of the wallet operations.
type Chain interface {
	CreateWallet(req *model.CreateWalletRequest) (*model.Wallet, error)
	WalletFromMnemonic(req *model.WalletFromMnemonicRequest) (*model.Wallet, error)
	WalletFromMnemonicAndIndex(req *model.MnemonicIndexRequest) (*model.Wallet, error)
	AddressFromPrivateKey(req *model.AddressFromPrivateKeyRequest) (*model.Address, error)

	Balance(ctx context.Context, req *model.BalanceRequest) (*model.Balance, error)
	Transfer(ctx context.Context, req *model.TransferRequest) (*model.Transfer, error)
	Transaction(ctx context.Context, req *model.TransactionRequest) (*model.Transaction, error)
	TokenInfo(ctx context.Context, req *model.TokenInfoRequest) (*model.TokenInfo, error)
	Call(ctx context.Context, req *model.ContractCallRequest) (*model.CallResult, error)
	Health(ctx context.Context, req *model.HealthRequest) (*model.NodeStatus, error)
}

// Registry maps network names to chain variants. Names match exactly.
type Registry struct {
	mu     sync.RWMutex
	chains map[string]Chain
}

func NewRegistry() *Registry {
	return &Registry{chains: map[string]Chain{}}
}

// Register binds network to chain, replacing any previous binding.
func (r *Registry) Register(network string, chain Chain) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chains[network] = chain
}

// Lookup returns the chain for network or a *model.NetworkError.
func (r *Registry) Lookup(network string) (Chain, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	chain, ok := r.chains[network]
	if !ok {
		return nil, &model.NetworkError{Network: network}
	}
	return chain, nil
}

// Networks lists registered network names in sorted order.
func (r *Registry) Networks() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.chains))
	for name := range r.chains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
