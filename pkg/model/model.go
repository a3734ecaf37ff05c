// Package model defines the request and result shapes shared by every chain
// variant of the SDK: wallet envelopes, transfer and contract-call payloads,
// token metadata, and the uniform success envelope. Field names and JSON tags
// follow the payloads accepted by the wallet service API.
package model

import (
	"context"
	"encoding/json"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
)

const (
	// NetworkEthereum covers every EVM-compatible chain reachable over JSON-RPC.
	NetworkEthereum = "ETHEREUM"
	// NetworkBinance and NetworkPolygon are EVM network types callers may
	// register as aliases of the Ethereum variant.
	NetworkBinance = "BINANCE"
	NetworkPolygon = "POLYGON"
)

const (
	// DerivationPathPrefix is the BIP-44 Ethereum account prefix; an address index is appended.
	DerivationPathPrefix = "m/44'/60'/0'/0/"
	// DefaultDerivationPath is the first external address of the first account.
	DefaultDerivationPath = DerivationPathPrefix + "0"
)

// MethodKind selects the execution path of a generic contract call.
type MethodKind string

const (
	MethodRead  MethodKind = "read"
	MethodWrite MethodKind = "write"
)

// Wallet is the envelope produced by key derivation. It is never persisted by the SDK.
type Wallet struct {
	Address    string `json:"address"`
	PrivateKey string `json:"privateKey"`
	Mnemonic   string `json:"mnemonic,omitempty"`
	Path       string `json:"path"`
	Network    string `json:"network"`
}

// Address pairs a derived address with the network it was requested for.
type Address struct {
	Address string `json:"address"`
	Network string `json:"network"`
}

type CreateWalletRequest struct {
	DerivationPath string `json:"derivationPath,omitempty"`
	Network        string `json:"network"`
}

type WalletFromMnemonicRequest struct {
	Mnemonic       string `json:"mnemonic"`
	DerivationPath string `json:"derivationPath,omitempty"`
	Network        string `json:"network"`
}

type MnemonicIndexRequest struct {
	Mnemonic string `json:"mnemonic"`
	Index    uint32 `json:"index"`
	Network  string `json:"network"`
}

type AddressFromPrivateKeyRequest struct {
	PrivateKey string `json:"privateKey"`
	Network    string `json:"network"`
}

// BalanceRequest reads the native balance of Address, or its ERC-20 balance
// when TokenAddress is set.
type BalanceRequest struct {
	Address      string `json:"address"`
	Network      string `json:"network"`
	RPCURL       string `json:"rpcUrl,omitempty"`
	TokenAddress string `json:"tokenAddress,omitempty"`
}

// Balance is expressed in human units (scaled down by the token decimals).
type Balance struct {
	Balance decimal.Decimal `json:"balance"`
}

// TransferRequest describes a native or token transfer. Amount is always in
// human units; GasPrice is a decimal gwei string. Nil overrides fall back to
// the values fetched from the chain.
type TransferRequest struct {
	RecipientAddress  string          `json:"recipientAddress"`
	Amount            decimal.Decimal `json:"amount"`
	Network           string          `json:"network"`
	RPCURL            string          `json:"rpcUrl"`
	PrivateKey        string          `json:"privateKey"`
	TokenAddress      string          `json:"tokenAddress,omitempty"`
	GasPrice          string          `json:"gasPrice,omitempty"`
	Nonce             *uint64         `json:"nonce,omitempty"`
	GasLimit          *uint64         `json:"gasLimit,omitempty"`
	Data              string          `json:"data,omitempty"`
	BlockConfirmation uint64          `json:"blockConfirmation,omitempty"`
	// Fee and SubtractFee are accepted for payload compatibility and not applied.
	Fee         *uint64 `json:"fee,omitempty"`
	SubtractFee bool    `json:"subtractFee,omitempty"`
}

// Confirmation is a background wait for a submitted transaction to reach the
// requested depth. Callers may ignore it or block on Wait.
type Confirmation interface {
	Done() <-chan struct{}
	Wait(ctx context.Context) (*types.Receipt, error)
}

// Transfer is the outcome of a submitted transfer. It serializes as the
// transaction itself.
type Transfer struct {
	Tx           *types.Transaction
	Confirmation Confirmation
}

func (t *Transfer) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Tx)
}

type TransactionRequest struct {
	RPCURL  string `json:"rpcUrl,omitempty"`
	Hash    string `json:"hash"`
	Network string `json:"network"`
}

// Transaction is a looked-up transaction as returned by the node.
type Transaction struct {
	Tx      *types.Transaction
	Pending bool
}

func (t *Transaction) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(t.Tx)
	if err != nil {
		return nil, err
	}
	return mergeFields(raw, map[string]any{"pending": t.Pending})
}

type TokenInfoRequest struct {
	Network string `json:"network"`
	RPCURL  string `json:"rpcUrl"`
	Address string `json:"address"`
}

// TokenInfo is ERC-20 metadata; TotalSupply is in human units.
type TokenInfo struct {
	Name        string          `json:"name"`
	Symbol      string          `json:"symbol"`
	Address     string          `json:"address"`
	Decimals    uint8           `json:"decimals"`
	TotalSupply decimal.Decimal `json:"totalSupply"`
	LogoURL     string          `json:"logoUrl,omitempty"`
}

// ContractCallRequest is a generic contract invocation routed by MethodType.
// ContractABI defaults to the ERC-20 interface; Value is in ether units.
type ContractCallRequest struct {
	RPCURL          string           `json:"rpcUrl"`
	Network         string           `json:"network"`
	ContractAddress string           `json:"contractAddress"`
	Method          string           `json:"method"`
	MethodType      MethodKind       `json:"methodType"`
	Params          []any            `json:"params"`
	Value           *decimal.Decimal `json:"value,omitempty"`
	ContractABI     json.RawMessage  `json:"contractAbi,omitempty"`
	GasPrice        string           `json:"gasPrice,omitempty"`
	GasLimit        *uint64          `json:"gasLimit,omitempty"`
	Nonce           *uint64          `json:"nonce,omitempty"`
	PrivateKey      string           `json:"privateKey,omitempty"`
}

// CallResult holds decoded outputs for reads and the submitted transaction for writes.
type CallResult struct {
	Data any `json:"data"`
}

// HealthRequest names the endpoint to probe.
type HealthRequest struct {
	RPCURL  string `json:"rpcUrl,omitempty"`
	Network string `json:"network"`
}

// NodeStatus is the reply of a node health probe.
type NodeStatus struct {
	Network     string `json:"network"`
	ChainID     string `json:"chainId"`
	BlockNumber uint64 `json:"blockNumber"`
	Latency     string `json:"latency"`
}
