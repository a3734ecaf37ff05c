// Command walletctl is a command-line front end for the wallet SDK. Every
// command prints the SDK's JSON response envelope.
package main

import (
	"os"

	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		zap.L().Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}
