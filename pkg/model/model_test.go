package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
)

func TestResponse_MarshalJSON_LiftsObjectFields(t *testing.T) {
	resp := Success(Balance{Balance: decimal.RequireFromString("1.5")})
	out, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["success"] != true {
		t.Fatalf("success = %v, want true", got["success"])
	}
	if got["balance"] != "1.5" {
		t.Fatalf("balance = %v, want \"1.5\"", got["balance"])
	}
	if _, ok := got["data"]; ok {
		t.Fatalf("object payload should not be nested under data: %s", out)
	}
}

func TestResponse_MarshalJSON_NonObjectPayload(t *testing.T) {
	tests := []struct {
		name string
		data any
		want string
	}{
		{"string", "abandon ability", `{"data":"abandon ability","success":true}`},
		{"number", 42, `{"data":42,"success":true}`},
		{"slice", []int{1, 2}, `{"data":[1,2],"success":true}`},
		{"nil", nil, `{"data":null,"success":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := json.Marshal(Success(tt.data))
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(out) != tt.want {
				t.Fatalf("got %s, want %s", out, tt.want)
			}
		})
	}
}

func TestResponse_CallResultKeepsDataKey(t *testing.T) {
	out, err := json.Marshal(Success(CallResult{Data: "0xabc"}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"data":"0xabc","success":true}` {
		t.Fatalf("got %s", out)
	}
}

func TestTransfer_MarshalJSON_IsTransaction(t *testing.T) {
	to := common.HexToAddress("0x3f5d53EB3cD50D4eFD9Cc9ae1f73097C4072f6f0")
	tx := types.NewTx(&types.LegacyTx{Nonce: 7, To: &to, Value: big.NewInt(1), Gas: 21000, GasPrice: big.NewInt(1)})
	out, err := json.Marshal(Success(&Transfer{Tx: tx}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["hash"] != tx.Hash().Hex() {
		t.Fatalf("hash = %v, want %s", got["hash"], tx.Hash().Hex())
	}
	if got["nonce"] != "0x7" {
		t.Fatalf("nonce = %v, want 0x7", got["nonce"])
	}
	if got["success"] != true {
		t.Fatalf("success missing: %s", out)
	}
}

func TestTransaction_MarshalJSON_AddsPending(t *testing.T) {
	tx := types.NewTx(&types.LegacyTx{Nonce: 1, Gas: 21000, GasPrice: big.NewInt(1), Value: big.NewInt(0)})
	out, err := json.Marshal(&Transaction{Tx: tx, Pending: true})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["pending"] != true {
		t.Fatalf("pending = %v, want true", got["pending"])
	}
}

func TestNetworkError(t *testing.T) {
	err := fmt.Errorf("dispatch: %w", &NetworkError{Network: "SOLANA"})
	if !errors.Is(err, ErrNetworkNotSupported) {
		t.Fatalf("expected errors.Is(err, ErrNetworkNotSupported)")
	}
	var ne *NetworkError
	if !errors.As(err, &ne) || ne.Network != "SOLANA" {
		t.Fatalf("expected NetworkError for SOLANA, got %v", err)
	}
	if ne.Error() != "SOLANA Not Supported" {
		t.Fatalf("Error() = %q", ne.Error())
	}
}

func TestSignerResolutionError_Unwrap(t *testing.T) {
	err := &SignerResolutionError{Err: ErrInvalidPrivateKey}
	if !errors.Is(err, ErrInvalidPrivateKey) {
		t.Fatalf("cause should be reachable")
	}
}

func TestTransferRequest_UnmarshalOverrides(t *testing.T) {
	payload := `{"recipientAddress":"0x1","amount":"0.25","nonce":0,"gasPrice":"12"}`
	var req TransferRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.Nonce == nil || *req.Nonce != 0 {
		t.Fatalf("explicit zero nonce should be kept, got %v", req.Nonce)
	}
	if req.GasLimit != nil {
		t.Fatalf("absent gasLimit should stay nil")
	}
	if !req.Amount.Equal(decimal.RequireFromString("0.25")) {
		t.Fatalf("amount = %s", req.Amount)
	}
}
