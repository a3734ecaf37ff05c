// Package sdk provides the high-level entry point of the wallet SDK.
//
// The SDK derives HD wallets from BIP-39 mnemonics and talks to EVM nodes over
// JSON-RPC to query balances, token metadata and transactions, to send native
// and ERC-20 transfers, and to invoke arbitrary contract methods. Requests
// name their network; the Core dispatches them through a Registry of chain
// variants and wraps every successful result in a model.Response envelope.
//
// # Quick Start
//
//	import (
//		"github.com/ugdesmond/Wallet-SDK/pkg/config"
//		"github.com/ugdesmond/Wallet-SDK/pkg/model"
//		"github.com/ugdesmond/Wallet-SDK/pkg/sdk"
//	)
//
//	func main() {
//		walletSDK, err := sdk.NewSDK(&config.Config{
//			RPCAddr: "https://sepolia.infura.io/v3/YOUR_PROJECT_ID",
//		})
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		mnemonic, _ := walletSDK.GenerateMnemonic(12)
//		w, err := walletSDK.WalletFromMnemonic(&model.WalletFromMnemonicRequest{
//			Mnemonic: mnemonic,
//			Network:  model.NetworkEthereum,
//		})
//		if err != nil {
//			log.Fatal(err)
//		}
//		out, _ := json.Marshal(w) // {"address":"0x...","privateKey":"0x...",...,"success":true}
//		fmt.Println(string(out))
//	}
//
// # Networks
//
// Only ETHEREUM is registered by default. Other EVM networks can be added with
// WithChain and an evm.Chain configured with evm.WithNetwork. Names match
// exactly; an unknown name fails with model.ErrNetworkNotSupported and the
// message "<NAME> Not Supported". Requests with an empty network use
// config.Config.Network.
//
// # Transfers and confirmations
//
// Transfer returns as soon as the node accepts the transaction. When
// BlockConfirmation is positive the result carries a Confirmation handle
// whose Wait blocks until the transaction has that many confirmations or the
// receipt timeout expires.
//
// # Logging and metrics
//
// The package installs a console zap logger at info level in init; set
// Config.Debug to raise it to debug, or replace it with zap.ReplaceGlobals.
// Every dispatched operation is counted by the metrics.Recorder returned
// from Core.Metrics; register it with a Prometheus registry to export it.
//
// # Thread Safety
//
// Core is safe for concurrent use. Each chain operation opens and closes its
// own node connection.
package sdk
