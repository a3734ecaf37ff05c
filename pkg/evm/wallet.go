package evm

import (
	"github.com/ugdesmond/Wallet-SDK/pkg/model"
	"github.com/ugdesmond/Wallet-SDK/pkg/wallet"
)

// CreateWallet generates a mnemonic of the configured length and derives the
// key at the requested path, or the configured default path.
func (c *Chain) CreateWallet(req *model.CreateWalletRequest) (*model.Wallet, error) {
	mnemonic, err := wallet.GenerateMnemonic(c.cfg.MnemonicWords)
	if err != nil {
		return nil, err
	}
	return c.fromMnemonic(mnemonic, req.DerivationPath)
}

func (c *Chain) WalletFromMnemonic(req *model.WalletFromMnemonicRequest) (*model.Wallet, error) {
	return c.fromMnemonic(req.Mnemonic, req.DerivationPath)
}

func (c *Chain) WalletFromMnemonicAndIndex(req *model.MnemonicIndexRequest) (*model.Wallet, error) {
	w, err := wallet.FromMnemonicAndIndex(req.Mnemonic, req.Index)
	if err != nil {
		return nil, err
	}
	w.Network = c.network
	return w, nil
}

func (c *Chain) AddressFromPrivateKey(req *model.AddressFromPrivateKeyRequest) (*model.Address, error) {
	addr, err := wallet.AddressFromPrivateKey(req.PrivateKey)
	if err != nil {
		return nil, err
	}
	return &model.Address{Address: addr.Hex(), Network: c.network}, nil
}

func (c *Chain) fromMnemonic(mnemonic, path string) (*model.Wallet, error) {
	if path == "" {
		path = c.cfg.DerivationPath
	}
	w, err := wallet.FromMnemonic(mnemonic, path)
	if err != nil {
		return nil, err
	}
	w.Network = c.network
	return w, nil
}
