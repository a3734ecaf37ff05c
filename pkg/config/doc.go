// # Usage
//
// Configuration is a plain struct; build it in code or load it:
//
//	cfg := &config.Config{
//		RPCAddr: "https://sepolia.infura.io/v3/YOUR_PROJECT_ID",
//	}
//	if err := cfg.Validate(); err != nil {
//		log.Fatal(err)
//	}
//
//	cfg, err := config.Load("wallet.yaml") // plus WALLET_* environment variables
//
// # Endpoints
//
// Every chain request may carry its own rpcUrl. RPCAddr is only the fallback
// used by Endpoint when a request omits one.
//
// # Timeouts
//
// Timeouts are applied as child deadlines of the caller's context:
//
//	Dial        - connecting to the RPC endpoint
//	ChainRead   - balance, token metadata, lookups, read calls
//	ChainSubmit - signer resolution, estimation and submission
//	ReceiptWait - background block-confirmation waits
//
// In files and environment variables durations use Go syntax ("5s", "2m").
package config
