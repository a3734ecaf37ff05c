package wallet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
	"github.com/ugdesmond/Wallet-SDK/pkg/model"
)

// DefaultWordCount is the phrase length used when none is requested.
const DefaultWordCount = 12

// ErrInvalidWordCount is returned for phrase lengths outside {12, 15, 18, 21, 24}.
var ErrInvalidWordCount = errors.New("invalid mnemonic word count")

// ValidWordCount reports whether n is a BIP-39 phrase length.
func ValidWordCount(n int) bool {
	switch n {
	case 12, 15, 18, 21, 24:
		return true
	}
	return false
}

// GenerateMnemonic returns a fresh random English phrase of the given length.
// Entropy strength is words/3*32 bits; zero selects DefaultWordCount.
func GenerateMnemonic(words int) (string, error) {
	if words == 0 {
		words = DefaultWordCount
	}
	if !ValidWordCount(words) {
		return "", fmt.Errorf("%w: %d", ErrInvalidWordCount, words)
	}
	entropy, err := bip39.NewEntropy(words / 3 * 32)
	if err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// seedFromMnemonic normalizes whitespace, checks the BIP-39 checksum and
// returns the normalized phrase with its seed (empty passphrase).
func seedFromMnemonic(mnemonic string) (string, []byte, error) {
	normalized := strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(normalized) {
		return "", nil, model.ErrInvalidMnemonic
	}
	return normalized, bip39.NewSeed(normalized, ""), nil
}
