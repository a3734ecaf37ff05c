package blockchain

import (
	"encoding/json"
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// coerceArgs converts loosely typed call parameters (as decoded from JSON) to
// the Go types the ABI packer expects. Values that cannot be converted are
// passed through unchanged and rejected by the packer, if at all.
func coerceArgs(inputs abi.Arguments, params []any) []any {
	out := make([]any, len(params))
	for i, p := range params {
		if i < len(inputs) {
			out[i] = coerce(inputs[i].Type, p)
		} else {
			out[i] = p
		}
	}
	return out
}

func coerce(t abi.Type, v any) any {
	switch t.T {
	case abi.AddressTy:
		if s, ok := v.(string); ok && common.IsHexAddress(s) {
			return common.HexToAddress(s)
		}
	case abi.IntTy, abi.UintTy:
		n, ok := toBigInt(v)
		if !ok {
			return v
		}
		target := t.GetType()
		if target == reflect.TypeOf((*big.Int)(nil)) {
			return n
		}
		rv := reflect.New(target).Elem()
		switch target.Kind() {
		case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if !n.IsInt64() || rv.OverflowInt(n.Int64()) {
				return v
			}
			rv.SetInt(n.Int64())
		case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if !n.IsUint64() || rv.OverflowUint(n.Uint64()) {
				return v
			}
			rv.SetUint(n.Uint64())
		default:
			return v
		}
		return rv.Interface()
	case abi.BoolTy:
		if s, ok := v.(string); ok {
			switch strings.ToLower(s) {
			case "true":
				return true
			case "false":
				return false
			}
		}
	case abi.BytesTy:
		if s, ok := v.(string); ok {
			if b, err := hexutil.Decode(s); err == nil {
				return b
			}
		}
	case abi.FixedBytesTy, abi.HashTy:
		s, ok := v.(string)
		if !ok {
			return v
		}
		b, err := hexutil.Decode(s)
		if err != nil {
			return v
		}
		target := t.GetType()
		if target.Kind() != reflect.Array || len(b) > target.Len() {
			return v
		}
		rv := reflect.New(target).Elem()
		reflect.Copy(rv, reflect.ValueOf(b))
		return rv.Interface()
	case abi.SliceTy, abi.ArrayTy:
		items, ok := v.([]any)
		if !ok || t.Elem == nil {
			return v
		}
		target := t.GetType()
		var rv reflect.Value
		if target.Kind() == reflect.Array {
			if len(items) != target.Len() {
				return v
			}
			rv = reflect.New(target).Elem()
		} else {
			rv = reflect.MakeSlice(target, len(items), len(items))
		}
		for i, item := range items {
			c := reflect.ValueOf(coerce(*t.Elem, item))
			if !c.IsValid() || !c.Type().AssignableTo(target.Elem()) {
				return v
			}
			rv.Index(i).Set(c)
		}
		return rv.Interface()
	}
	return v
}

func toBigInt(v any) (*big.Int, bool) {
	switch n := v.(type) {
	case *big.Int:
		return n, n != nil
	case string:
		s := strings.TrimSpace(n)
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			b, err := hexutil.DecodeBig(s)
			return b, err == nil
		}
		return new(big.Int).SetString(s, 10)
	case json.Number:
		return new(big.Int).SetString(n.String(), 10)
	case float64:
		if n != float64(int64(n)) {
			return nil, false
		}
		return big.NewInt(int64(n)), true
	case int:
		return big.NewInt(int64(n)), true
	case int64:
		return big.NewInt(n), true
	case uint64:
		return new(big.Int).SetUint64(n), true
	}
	return nil, false
}
