package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/ugdesmond/Wallet-SDK/pkg/config"
	"github.com/ugdesmond/Wallet-SDK/pkg/sdk"
)

// app carries state shared by subcommands once the root pre-run has loaded it.
type app struct {
	configFile string
	network    string
	rpcURL     string
	debug      bool

	core *sdk.Core
	opts []sdk.Option
}

func newRootCmd(opts ...sdk.Option) *cobra.Command {
	a := &app{opts: opts}

	root := &cobra.Command{
		Use:   "walletctl",
		Short: "EVM wallet toolkit",
		Long: `walletctl derives HD wallets, queries balances, tokens and transactions,
and sends transfers and contract calls through an EVM JSON-RPC endpoint.

Configuration is read from --config (YAML, JSON or TOML) and WALLET_*
environment variables; flags win over both.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file path")
	flags.StringVar(&a.network, "network", "", "network name (default from config, ETHEREUM)")
	flags.StringVar(&a.rpcURL, "rpc-url", "", "JSON-RPC endpoint (default from config)")
	flags.BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newMnemonicCmd(a),
		newCreateCmd(a),
		newFromMnemonicCmd(a),
		newAddressCmd(a),
		newBalanceCmd(a),
		newTransferCmd(a),
		newTxCmd(a),
		newTokenInfoCmd(a),
		newCallCmd(a),
		newHealthCmd(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	if a.rpcURL != "" {
		cfg.RPCAddr = a.rpcURL
	}
	if a.debug {
		cfg.Debug = true
	}
	core, err := sdk.NewSDK(cfg, a.opts...)
	if err != nil {
		return err
	}
	a.core = core
	return nil
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
