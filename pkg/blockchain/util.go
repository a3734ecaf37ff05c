package blockchain

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
	"github.com/ugdesmond/Wallet-SDK/pkg/model"
	"go.uber.org/zap"
)

const (
	// EtherDecimals is the scale of the native coin (wei per ether = 10^18).
	EtherDecimals uint8 = 18
	// GweiDecimals is the scale of gas price overrides (wei per gwei = 10^9).
	GweiDecimals uint8 = 9
)

// ParsePrivateKeyECDSA parses a hex-encoded ECDSA private key, with or without
// the 0x prefix, and returns the corresponding Ethereum address together with
// the private key object. Malformed input yields model.ErrInvalidPrivateKey.
func ParsePrivateKeyECDSA(privateKey string) (common.Address, *ecdsa.PrivateKey, error) {
	hexKey := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(privateKey), "0x"), "0X")
	privateKeyECDSA, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return common.Address{}, nil, fmt.Errorf("%w: %v", model.ErrInvalidPrivateKey, err)
	}

	publicKeyECDSA, ok := privateKeyECDSA.Public().(*ecdsa.PublicKey)
	if !ok {
		return common.Address{}, nil, fmt.Errorf("%w: failed to get public key", model.ErrInvalidPrivateKey)
	}

	return crypto.PubkeyToAddress(*publicKeyECDSA), privateKeyECDSA, nil
}

// ToBaseUnits scales a human-unit amount by 10^decimals.
//
// Supported input types for iamount: string, float64, int64, int,
// decimal.Decimal, *decimal.Decimal. Negative amounts, amounts with more
// fractional digits than decimals, and unsupported types return
// model.ErrInvalidAmount.
func ToBaseUnits(iamount any, decimals uint8) (*big.Int, error) {
	var amount decimal.Decimal
	switch v := iamount.(type) {
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			zap.L().Error("Failed to convert string to decimal", zap.Error(err))
			return nil, fmt.Errorf("%w: %q", model.ErrInvalidAmount, v)
		}
		amount = d
	case float64:
		amount = decimal.NewFromFloat(v)
	case int64:
		amount = decimal.NewFromInt(v)
	case int:
		amount = decimal.NewFromInt(int64(v))
	case decimal.Decimal:
		amount = v
	case *decimal.Decimal:
		if v == nil {
			return nil, fmt.Errorf("%w: nil", model.ErrInvalidAmount)
		}
		amount = *v
	default:
		zap.L().Error("Unsupported type", zap.Any("amount", iamount))
		return nil, fmt.Errorf("%w: unsupported type %T", model.ErrInvalidAmount, iamount)
	}

	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: negative amount %s", model.ErrInvalidAmount, amount)
	}
	scaled := amount.Shift(int32(decimals))
	if !scaled.IsInteger() {
		return nil, fmt.Errorf("%w: %s has more than %d fractional digits", model.ErrInvalidAmount, amount, decimals)
	}
	return scaled.BigInt(), nil
}

// FromBaseUnits converts a base-unit integer into human units.
func FromBaseUnits(value *big.Int, decimals uint8) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(value, -int32(decimals))
}

// ParseGwei converts a decimal gwei string into wei.
func ParseGwei(gwei string) (*big.Int, error) {
	if strings.TrimSpace(gwei) == "" {
		return nil, fmt.Errorf("%w: empty gas price", model.ErrInvalidAmount)
	}
	return ToBaseUnits(gwei, GweiDecimals)
}

// UTF8Data returns the UTF-8 bytes of a transfer payload, nil when empty.
func UTF8Data(data string) []byte {
	if data == "" {
		return nil
	}
	return []byte(data)
}
