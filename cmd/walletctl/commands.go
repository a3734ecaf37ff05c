package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/ugdesmond/Wallet-SDK/pkg/model"
)

// privateKeyEnv is consulted when --private-key is not given.
const privateKeyEnv = "WALLET_PRIVATE_KEY"

func privateKeyFlag(cmd *cobra.Command, dst *string) {
	cmd.Flags().StringVar(dst, "private-key", "", "hex private key (default $"+privateKeyEnv+")")
}

func privateKeyOr(v string) string {
	if v != "" {
		return v
	}
	return os.Getenv(privateKeyEnv)
}

// optionalUint returns a pointer to v only when the flag was set explicitly,
// so an explicit 0 still overrides.
func optionalUint(cmd *cobra.Command, name string, v uint64) *uint64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

func newMnemonicCmd(a *app) *cobra.Command {
	var words int
	cmd := &cobra.Command{
		Use:   "mnemonic",
		Short: "Generate a BIP-39 mnemonic",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.core.GenerateMnemonic(words)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), model.Success(m))
		},
	}
	cmd.Flags().IntVar(&words, "words", 0, "number of words: 12, 15, 18, 21 or 24 (default from config)")
	return cmd
}

func newCreateCmd(a *app) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a wallet from a fresh mnemonic",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.core.CreateWallet(&model.CreateWalletRequest{DerivationPath: path, Network: a.network})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "derivation path (default m/44'/60'/0'/0/0)")
	return cmd
}

func newFromMnemonicCmd(a *app) *cobra.Command {
	var (
		mnemonic string
		path     string
		index    uint32
	)
	cmd := &cobra.Command{
		Use:   "from-mnemonic",
		Short: "Derive a wallet from a mnemonic by path or account index",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("index") {
				if path != "" {
					return errors.New("--path and --index are mutually exclusive")
				}
				resp, err := a.core.WalletFromMnemonicAndIndex(&model.MnemonicIndexRequest{Mnemonic: mnemonic, Index: index, Network: a.network})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp)
			}
			resp, err := a.core.WalletFromMnemonic(&model.WalletFromMnemonicRequest{Mnemonic: mnemonic, DerivationPath: path, Network: a.network})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVar(&mnemonic, "mnemonic", "", "BIP-39 mnemonic")
	cmd.Flags().StringVar(&path, "path", "", "derivation path")
	cmd.Flags().Uint32Var(&index, "index", 0, "account index under m/44'/60'/0'/0/")
	_ = cmd.MarkFlagRequired("mnemonic")
	return cmd
}

func newAddressCmd(a *app) *cobra.Command {
	var key string
	cmd := &cobra.Command{
		Use:   "address",
		Short: "Print the address of a private key",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.core.AddressFromPrivateKey(&model.AddressFromPrivateKeyRequest{PrivateKey: privateKeyOr(key), Network: a.network})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	privateKeyFlag(cmd, &key)
	return cmd
}

func newBalanceCmd(a *app) *cobra.Command {
	var address, token string
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the native or ERC-20 balance of an address",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.core.Balance(cmd.Context(), &model.BalanceRequest{
				Address:      address,
				TokenAddress: token,
				Network:      a.network,
				RPCURL:       a.rpcURL,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "account address")
	cmd.Flags().StringVar(&token, "token", "", "ERC-20 token address")
	_ = cmd.MarkFlagRequired("address")
	return cmd
}

func newTransferCmd(a *app) *cobra.Command {
	var (
		to, amount, key, token, gasPrice, data string
		nonce, gasLimit, confirmations         uint64
	)
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Send ether or ERC-20 tokens",
		Long: `Send ether, or ERC-20 tokens when --token is given. With --confirmations
the command waits until the transaction is that many blocks deep.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("%w: %q", model.ErrInvalidAmount, amount)
			}
			resp, err := a.core.Transfer(cmd.Context(), &model.TransferRequest{
				RecipientAddress:  to,
				Amount:            value,
				Network:           a.network,
				RPCURL:            a.rpcURL,
				PrivateKey:        privateKeyOr(key),
				TokenAddress:      token,
				GasPrice:          gasPrice,
				Nonce:             optionalUint(cmd, "nonce", nonce),
				GasLimit:          optionalUint(cmd, "gas-limit", gasLimit),
				Data:              data,
				BlockConfirmation: confirmations,
			})
			if err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), resp); err != nil {
				return err
			}
			if resp.Data.Confirmation == nil {
				return nil
			}
			receipt, err := resp.Data.Confirmation.Wait(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), model.Success(receipt))
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "recipient address")
	cmd.Flags().StringVar(&amount, "amount", "", "amount in ether or token units")
	privateKeyFlag(cmd, &key)
	cmd.Flags().StringVar(&token, "token", "", "ERC-20 token address")
	cmd.Flags().StringVar(&gasPrice, "gas-price", "", "gas price in gwei")
	cmd.Flags().Uint64Var(&nonce, "nonce", 0, "nonce override")
	cmd.Flags().Uint64Var(&gasLimit, "gas-limit", 0, "gas limit override")
	cmd.Flags().StringVar(&data, "data", "", "UTF-8 payload for ether transfers")
	cmd.Flags().Uint64Var(&confirmations, "confirmations", 0, "blocks to wait for")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newTxCmd(a *app) *cobra.Command {
	var hash string
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Look up a transaction by hash",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.core.Transaction(cmd.Context(), &model.TransactionRequest{Hash: hash, Network: a.network, RPCURL: a.rpcURL})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVar(&hash, "hash", "", "transaction hash")
	_ = cmd.MarkFlagRequired("hash")
	return cmd
}

func newTokenInfoCmd(a *app) *cobra.Command {
	var address string
	cmd := &cobra.Command{
		Use:   "token-info",
		Short: "Show ERC-20 name, symbol, decimals and total supply",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.core.TokenInfo(cmd.Context(), &model.TokenInfoRequest{Address: address, Network: a.network, RPCURL: a.rpcURL})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "token contract address")
	_ = cmd.MarkFlagRequired("address")
	return cmd
}

func newCallCmd(a *app) *cobra.Command {
	var (
		contract, method, abiFile, params, value, key, gasPrice string
		write                                                   bool
		nonce, gasLimit                                         uint64
	)
	cmd := &cobra.Command{
		Use:   "call",
		Short: "Invoke a contract method",
		Long: `Invoke a contract method with a JSON array of parameters. Without --abi-file
the ERC-20 ABI is used. --write signs and submits a transaction.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &model.ContractCallRequest{
				RPCURL:          a.rpcURL,
				Network:         a.network,
				ContractAddress: contract,
				Method:          method,
				MethodType:      model.MethodRead,
				GasLimit:        optionalUint(cmd, "gas-limit", gasLimit),
			}
			if write {
				req.MethodType = model.MethodWrite
				req.PrivateKey = privateKeyOr(key)
				req.GasPrice = gasPrice
				req.Nonce = optionalUint(cmd, "nonce", nonce)
			}
			if value != "" {
				v, err := decimal.NewFromString(value)
				if err != nil {
					return fmt.Errorf("%w: %q", model.ErrInvalidAmount, value)
				}
				req.Value = &v
			}
			if abiFile != "" {
				raw, err := os.ReadFile(abiFile)
				if err != nil {
					return err
				}
				req.ContractABI = raw
			}
			if params != "" {
				p, err := decodeParams(params)
				if err != nil {
					return err
				}
				req.Params = p
			}

			resp, err := a.core.Call(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVar(&contract, "contract", "", "contract address")
	cmd.Flags().StringVar(&method, "method", "", "method name or signature key")
	cmd.Flags().StringVar(&abiFile, "abi-file", "", "path to a JSON ABI (default ERC-20)")
	cmd.Flags().StringVar(&params, "params", "", `JSON array of arguments, e.g. '["0xabc...", "1000"]'`)
	cmd.Flags().BoolVar(&write, "write", false, "submit a transaction instead of eth_call")
	cmd.Flags().StringVar(&value, "value", "", "ether to send with a write call")
	privateKeyFlag(cmd, &key)
	cmd.Flags().StringVar(&gasPrice, "gas-price", "", "gas price in gwei")
	cmd.Flags().Uint64Var(&nonce, "nonce", 0, "nonce override")
	cmd.Flags().Uint64Var(&gasLimit, "gas-limit", 0, "gas limit override")
	_ = cmd.MarkFlagRequired("contract")
	_ = cmd.MarkFlagRequired("method")
	return cmd
}

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe the RPC endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.core.Health(cmd.Context(), &model.HealthRequest{Network: a.network, RPCURL: a.rpcURL})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
}

// decodeParams parses a JSON array keeping numbers exact.
func decodeParams(s string) ([]any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()
	var out []any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode --params: %w", err)
	}
	return out, nil
}
