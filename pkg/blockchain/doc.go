// Package blockchain is the chain-context layer of the SDK. It wraps a
// JSON-RPC node behind the Backend interface and provides the primitives the
// higher-level chain variants compose:
//
//   - EVMClient: one round trip per method (gas price, nonce, balance, chain
//     ID, gas estimation, eth_call, submission, lookups). Nothing is cached.
//   - ResolveSigner: parses a private key and reads chain ID, gas price and
//     pending nonce concurrently into a SignerBundle.
//   - SignAndSend: builds, signs and submits a legacy transaction, applying
//     overrides over the bundle values.
//   - Contract: a handle whose method table is built from an ABI at
//     construction; each entry exposes Call (eth_call) and Transact.
//   - Confirmation: a background wait for a submitted transaction to reach a
//     given depth.
//
// # Units
//
// ToBaseUnits and FromBaseUnits convert between human amounts and base-unit
// integers for any decimals value; native amounts use EtherDecimals and gas
// price overrides use GweiDecimals.
//
//	wei, err := blockchain.ToBaseUnits("0.0001", blockchain.EtherDecimals)
//	// wei == 100000000000000
//
// # Usage
//
//	evm, err := blockchain.Dial(ctx, "https://rpc.sepolia.org")
//	if err != nil {
//		return err
//	}
//	defer evm.Close()
//
//	bundle, err := evm.ResolveSigner(ctx, privateKeyHex)
//	if err != nil {
//		return err // *model.SignerResolutionError
//	}
//	to := common.HexToAddress(recipient)
//	tx, err := evm.SignAndSend(ctx, bundle, blockchain.TxParams{To: &to, Value: wei, MinGas: blockchain.BaseGas})
//
// Gas price and nonce in a SignerBundle are snapshots taken at ResolvedAt and
// are not re-read before submission.
package blockchain
