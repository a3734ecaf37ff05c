package model

import (
	"errors"
	"fmt"
)

// NotSupported is appended to a network name when no chain variant is
// registered for it.
const NotSupported = " Not Supported"

var (
	// ErrInvalidMnemonic is returned when a phrase fails BIP-39 checksum validation.
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
	// ErrInvalidPrivateKey is returned for malformed hex-encoded ECDSA keys.
	ErrInvalidPrivateKey = errors.New("invalid private key")
	// ErrNetworkNotSupported is returned by the outer dispatch for unknown networks.
	ErrNetworkNotSupported = errors.New("network not supported")
	// ErrTokenAddressRequired is returned by a token transfer without a token address.
	ErrTokenAddressRequired = errors.New("token address required")
	// ErrPrivateKeyRequired is returned by a write-kind contract call without a key.
	ErrPrivateKeyRequired = errors.New("private key required")
	// ErrInvalidAddress is returned for recipient, token or contract addresses that are not 20-byte hex.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrInvalidHash is returned for transaction hashes that are not 32-byte hex.
	ErrInvalidHash = errors.New("invalid transaction hash")
	// ErrInvalidAmount is returned when a decimal amount cannot be expressed in base units.
	ErrInvalidAmount = errors.New("invalid amount")
)

// NetworkError reports a network identifier that the dispatch layer does not
// recognize. It matches ErrNetworkNotSupported with errors.Is.
type NetworkError struct {
	Network string
}

func (e *NetworkError) Error() string {
	return e.Network + NotSupported
}

func (e *NetworkError) Is(target error) bool {
	return target == ErrNetworkNotSupported
}

// SignerResolutionError wraps any failure met while building a signer bundle:
// an unparsable key, an unreachable endpoint, or a failed gas price/nonce/chain
// ID read. The cause stays reachable through errors.Is and errors.As.
type SignerResolutionError struct {
	Err error
}

func (e *SignerResolutionError) Error() string {
	return fmt.Sprintf("signer resolution failed: %v", e.Err)
}

func (e *SignerResolutionError) Unwrap() error {
	return e.Err
}
