// Package wallet derives EVM key pairs from BIP-39 mnemonics along BIP-44
// paths and recovers addresses from raw private keys. All functions are pure:
// nothing is cached or persisted.
package wallet

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ugdesmond/Wallet-SDK/pkg/blockchain"
	"github.com/ugdesmond/Wallet-SDK/pkg/model"
)

// CreateWallet generates a fresh 12-word mnemonic and derives the key at path
// (DefaultDerivationPath when empty).
func CreateWallet(path string) (*model.Wallet, error) {
	mnemonic, err := GenerateMnemonic(DefaultWordCount)
	if err != nil {
		return nil, err
	}
	return FromMnemonic(mnemonic, path)
}

// FromMnemonic deterministically derives the wallet for mnemonic at path.
func FromMnemonic(mnemonic, path string) (*model.Wallet, error) {
	if path == "" {
		path = model.DefaultDerivationPath
	}
	normalized, seed, err := seedFromMnemonic(mnemonic)
	if err != nil {
		return nil, err
	}
	key, err := deriveKey(seed, path)
	if err != nil {
		return nil, err
	}
	return &model.Wallet{
		Address:    crypto.PubkeyToAddress(key.PublicKey).Hex(),
		PrivateKey: hexutil.Encode(crypto.FromECDSA(key)),
		Mnemonic:   normalized,
		Path:       path,
	}, nil
}

// FromMnemonicAndIndex derives the wallet at m/44'/60'/0'/0/<index>.
func FromMnemonicAndIndex(mnemonic string, index uint32) (*model.Wallet, error) {
	return FromMnemonic(mnemonic, fmt.Sprintf("%s%d", model.DerivationPathPrefix, index))
}

// AddressFromPrivateKey returns the checksummed address of a hex private key,
// with or without the 0x prefix.
func AddressFromPrivateKey(privateKey string) (common.Address, error) {
	addr, _, err := blockchain.ParsePrivateKeyECDSA(privateKey)
	return addr, err
}
