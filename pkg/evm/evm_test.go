package evm

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
	"github.com/ugdesmond/Wallet-SDK/internal/testutil/fakechain"
	"github.com/ugdesmond/Wallet-SDK/pkg/blockchain"
	"github.com/ugdesmond/Wallet-SDK/pkg/config"
	"github.com/ugdesmond/Wallet-SDK/pkg/model"
)

const (
	testKey      = "452833df01d8c11df506adcba330264c60673df43e3ecdd60ffc5ecfcbcac52f"
	testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	testChainID  = 1337
)

var (
	testAddr  = common.HexToAddress("0x3f5d53EB3cD50D4eFD9Cc9ae1f73097C4072f6f0")
	recipient = common.HexToAddress("0x9858EfFD232B4033E47d90003D41EC34EcaEda94")
	tokenAddr = common.HexToAddress("0x3c0c365b434a57132b2888e3e6021733d64a760c")
	gwei      = big.NewInt(1_000_000_000)
)

func newFake() *fakechain.Backend {
	return fakechain.New(testChainID, new(big.Int).Mul(big.NewInt(2), gwei), 21000)
}

func newTestChain(t *testing.T, fake *fakechain.Backend, opts ...Option) *Chain {
	t.Helper()
	dialer := WithDialer(func(ctx context.Context, endpoint string) (*blockchain.EVMClient, error) {
		return blockchain.NewEVMClient(fake), nil
	})
	c, err := New(&config.Config{RPCAddr: "http://fake.local"}, append([]Option{dialer}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func uint64p(v uint64) *uint64 { return &v }

func sender(t *testing.T, tx *types.Transaction) common.Address {
	t.Helper()
	from, err := types.Sender(types.LatestSignerForChainID(big.NewInt(testChainID)), tx)
	if err != nil {
		t.Fatalf("recover sender: %v", err)
	}
	return from
}

func mustERC20(t *testing.T) abi.ABI {
	t.Helper()
	parsed, err := blockchain.ERC20()
	if err != nil {
		t.Fatalf("ERC20: %v", err)
	}
	return parsed
}

func TestNew_Defaults(t *testing.T) {
	c, err := New(nil)
	if err != nil {
		t.Fatalf("New(nil): %v", err)
	}
	if c.Network() != model.NetworkEthereum {
		t.Fatalf("Network = %q", c.Network())
	}
	if c.timeouts.ChainSubmit == 0 || c.timeouts.Dial == 0 {
		t.Fatalf("timeouts not defaulted: %+v", c.timeouts)
	}

	c, err = New(nil, WithNetwork(model.NetworkPolygon))
	if err != nil {
		t.Fatal(err)
	}
	if c.Network() != model.NetworkPolygon {
		t.Fatalf("Network = %q", c.Network())
	}

	if _, err := New(&config.Config{DerivationPath: "44'/60'"}); err == nil {
		t.Fatal("expected invalid config to be rejected")
	}
}

func TestWalletOperations(t *testing.T) {
	c := newTestChain(t, newFake(), WithNetwork(model.NetworkBinance))

	w, err := c.WalletFromMnemonic(&model.WalletFromMnemonicRequest{Mnemonic: testMnemonic})
	if err != nil {
		t.Fatalf("WalletFromMnemonic: %v", err)
	}
	if w.Address != recipient.Hex() || w.Path != model.DefaultDerivationPath || w.Network != model.NetworkBinance {
		t.Fatalf("unexpected wallet %+v", w)
	}

	w1, err := c.WalletFromMnemonicAndIndex(&model.MnemonicIndexRequest{Mnemonic: testMnemonic, Index: 1})
	if err != nil {
		t.Fatalf("WalletFromMnemonicAndIndex: %v", err)
	}
	if w1.Address == w.Address || w1.Path != model.DerivationPathPrefix+"1" || w1.Network != model.NetworkBinance {
		t.Fatalf("unexpected wallet %+v", w1)
	}

	created, err := c.CreateWallet(&model.CreateWalletRequest{})
	if err != nil {
		t.Fatalf("CreateWallet: %v", err)
	}
	again, err := c.WalletFromMnemonic(&model.WalletFromMnemonicRequest{Mnemonic: created.Mnemonic})
	if err != nil {
		t.Fatalf("re-derive created wallet: %v", err)
	}
	if again.Address != created.Address || again.PrivateKey != created.PrivateKey {
		t.Fatalf("created wallet does not re-derive: %+v vs %+v", created, again)
	}

	addr, err := c.AddressFromPrivateKey(&model.AddressFromPrivateKeyRequest{PrivateKey: testKey})
	if err != nil {
		t.Fatalf("AddressFromPrivateKey: %v", err)
	}
	if addr.Address != testAddr.Hex() || addr.Network != model.NetworkBinance {
		t.Fatalf("unexpected address %+v", addr)
	}

	if _, err := c.WalletFromMnemonic(&model.WalletFromMnemonicRequest{Mnemonic: "abandon abandon"}); !errors.Is(err, model.ErrInvalidMnemonic) {
		t.Fatalf("expected ErrInvalidMnemonic, got %v", err)
	}
}

func TestTransferNative(t *testing.T) {
	fake := newFake()
	fake.SetNonce(testAddr, 3)
	c := newTestChain(t, fake)

	res, err := c.Transfer(context.Background(), &model.TransferRequest{
		RecipientAddress: recipient.Hex(),
		Amount:           decimal.RequireFromString("0.0001"),
		PrivateKey:       "0x" + testKey,
	})
	if err != nil {
		t.Fatalf("Transfer: %v", err)
	}

	sent := fake.Sent()
	if len(sent) != 1 {
		t.Fatalf("sent %d transactions, want 1", len(sent))
	}
	tx := sent[0]
	if res.Tx.Hash() != tx.Hash() {
		t.Fatalf("result hash %s != submitted %s", res.Tx.Hash(), tx.Hash())
	}
	if tx.To() == nil || *tx.To() != recipient {
		t.Fatalf("to = %v", tx.To())
	}
	if tx.Value().Cmp(big.NewInt(100_000_000_000_000)) != 0 {
		t.Fatalf("value = %s", tx.Value())
	}
	if tx.Nonce() != 3 || tx.Gas() != 21000 || tx.GasPrice().Cmp(new(big.Int).Mul(big.NewInt(2), gwei)) != 0 {
		t.Fatalf("nonce/gas/price = %d/%d/%s", tx.Nonce(), tx.Gas(), tx.GasPrice())
	}
	if len(tx.Data()) != 0 {
		t.Fatalf("unexpected data %x", tx.Data())
	}
	if from := sender(t, tx); from != testAddr {
		t.Fatalf("sender = %s", from.Hex())
	}
	if res.Confirmation != nil {
		t.Fatal("no confirmation requested, got one")
	}
	if fake.Closed() != 1 {
		t.Fatalf("client closed %d times, want 1", fake.Closed())
	}
}

func TestTransferNative_Overrides(t *testing.T) {
	fake := newFake()
	fake.SetNonce(testAddr, 9)
	c := newTestChain(t, fake)

	_, err := c.TransferNative(context.Background(), &model.TransferRequest{
		RecipientAddress: recipient.Hex(),
		Amount:           decimal.NewFromInt(1),
		PrivateKey:       testKey,
		GasPrice:         "5",
		Nonce:            uint64p(0),
		GasLimit:         uint64p(50000),
		Data:             "hello",
	})
	if err != nil {
		t.Fatalf("TransferNative: %v", err)
	}
	tx := fake.Sent()[0]
	if tx.Nonce() != 0 {
		t.Fatalf("explicit zero nonce not honoured: %d", tx.Nonce())
	}
	if tx.GasPrice().Cmp(new(big.Int).Mul(big.NewInt(5), gwei)) != 0 {
		t.Fatalf("gas price = %s", tx.GasPrice())
	}
	if tx.Gas() != 50000 || len(fake.Estimates()) != 0 {
		t.Fatalf("gas limit override ignored: gas=%d estimates=%d", tx.Gas(), len(fake.Estimates()))
	}
	if string(tx.Data()) != "hello" {
		t.Fatalf("data = %q", tx.Data())
	}
}

func TestTransferNative_GasFloor(t *testing.T) {
	fake := fakechain.New(testChainID, gwei, 15000)
	c := newTestChain(t, fake)

	_, err := c.TransferNative(context.Background(), &model.TransferRequest{
		RecipientAddress: recipient.Hex(),
		Amount:           decimal.RequireFromString("0.5"),
		PrivateKey:       testKey,
	})
	if err != nil {
		t.Fatalf("TransferNative: %v", err)
	}
	if gas := fake.Sent()[0].Gas(); gas != blockchain.BaseGas {
		t.Fatalf("gas = %d, want %d", gas, blockchain.BaseGas)
	}
}

func TestTransferNative_Errors(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name     string
		req      model.TransferRequest
		fail     string
		want     error
		noDial   bool
		wantType bool
	}{
		{
			name:   "invalid recipient",
			req:    model.TransferRequest{RecipientAddress: "0x123", Amount: decimal.NewFromInt(1), PrivateKey: testKey},
			want:   model.ErrInvalidAddress,
			noDial: true,
		},
		{
			name:   "negative amount",
			req:    model.TransferRequest{RecipientAddress: recipient.Hex(), Amount: decimal.NewFromInt(-1), PrivateKey: testKey},
			want:   model.ErrInvalidAmount,
			noDial: true,
		},
		{
			name:   "too many decimals",
			req:    model.TransferRequest{RecipientAddress: recipient.Hex(), Amount: decimal.RequireFromString("0.0000000000000000001"), PrivateKey: testKey},
			want:   model.ErrInvalidAmount,
			noDial: true,
		},
		{
			name:   "bad gas price",
			req:    model.TransferRequest{RecipientAddress: recipient.Hex(), Amount: decimal.NewFromInt(1), PrivateKey: testKey, GasPrice: "fast"},
			want:   model.ErrInvalidAmount,
			noDial: true,
		},
		{
			name:     "bad key",
			req:      model.TransferRequest{RecipientAddress: recipient.Hex(), Amount: decimal.NewFromInt(1), PrivateKey: "nope"},
			want:     model.ErrInvalidPrivateKey,
			wantType: true,
		},
		{
			name: "send rejected",
			req:  model.TransferRequest{RecipientAddress: recipient.Hex(), Amount: decimal.NewFromInt(1), PrivateKey: testKey},
			fail: "SendTransaction",
			want: errBoom,
		},
		{
			name:     "nonce unavailable",
			req:      model.TransferRequest{RecipientAddress: recipient.Hex(), Amount: decimal.NewFromInt(1), PrivateKey: testKey},
			fail:     "PendingNonceAt",
			want:     errBoom,
			wantType: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFake()
			if tt.fail != "" {
				fake.Fail(tt.fail, errBoom)
			}
			c := newTestChain(t, fake)

			_, err := c.TransferNative(context.Background(), &tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			var sre *model.SignerResolutionError
			if tt.wantType && !errors.As(err, &sre) {
				t.Fatalf("expected SignerResolutionError, got %T", err)
			}
			if len(fake.Sent()) != 0 {
				t.Fatal("transaction submitted on error")
			}
			if tt.noDial && (fake.Requests() != 0 || fake.Closed() != 0) {
				t.Fatalf("chain touched before validation: requests=%d closed=%d", fake.Requests(), fake.Closed())
			}
			if !tt.noDial && fake.Closed() != 1 {
				t.Fatalf("client closed %d times, want 1", fake.Closed())
			}
		})
	}
}

func TestTransfer_NoEndpoint(t *testing.T) {
	c, err := New(nil, WithDialer(func(ctx context.Context, endpoint string) (*blockchain.EVMClient, error) {
		t.Fatal("dialer called without endpoint")
		return nil, nil
	}))
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.TransferNative(context.Background(), &model.TransferRequest{
		RecipientAddress: recipient.Hex(),
		Amount:           decimal.NewFromInt(1),
		PrivateKey:       testKey,
	})
	if err == nil {
		t.Fatal("expected endpoint error")
	}
}

func TestTransfer_Confirmation(t *testing.T) {
	fake := newFake()
	c := newTestChain(t, fake)

	res, err := c.TransferNative(context.Background(), &model.TransferRequest{
		RecipientAddress:  recipient.Hex(),
		Amount:            decimal.NewFromInt(1),
		PrivateKey:        testKey,
		BlockConfirmation: 1,
	})
	if err != nil {
		t.Fatalf("TransferNative: %v", err)
	}
	if res.Confirmation == nil {
		t.Fatal("expected a confirmation handle")
	}
	if fake.Closed() != 0 {
		t.Fatal("client closed while confirmation is pending")
	}

	fake.Mine(res.Tx.Hash(), 5, types.ReceiptStatusSuccessful)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	receipt, err := res.Confirmation.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if receipt.BlockNumber.Uint64() != 5 || receipt.TxHash != res.Tx.Hash() {
		t.Fatalf("unexpected receipt %+v", receipt)
	}
	if fake.Closed() != 1 {
		t.Fatalf("client closed %d times after confirmation, want 1", fake.Closed())
	}
}

func TestTransferToken(t *testing.T) {
	fake := newFake()
	erc20 := mustERC20(t)
	fake.Answer(tokenAddr, erc20, "decimals", uint8(6))
	fake.SetNonce(testAddr, 1)
	c := newTestChain(t, fake)

	res, err := c.Transfer(context.Background(), &model.TransferRequest{
		RecipientAddress: recipient.Hex(),
		TokenAddress:     tokenAddr.Hex(),
		Amount:           decimal.RequireFromString("1.5"),
		PrivateKey:       testKey,
	})
	if err != nil {
		t.Fatalf("Transfer: %v", err)
	}

	tx := fake.Sent()[0]
	if res.Tx.Hash() != tx.Hash() {
		t.Fatal("result does not match submitted transaction")
	}
	if tx.To() == nil || *tx.To() != tokenAddr || tx.Value().Sign() != 0 || tx.Nonce() != 1 {
		t.Fatalf("unexpected tx to=%v value=%s nonce=%d", tx.To(), tx.Value(), tx.Nonce())
	}
	if len(fake.Estimates()) != 1 {
		t.Fatalf("estimates = %d, want 1", len(fake.Estimates()))
	}
	args, err := erc20.Methods["transfer"].Inputs.Unpack(tx.Data()[4:])
	if err != nil {
		t.Fatalf("unpack calldata: %v", err)
	}
	if args[0].(common.Address) != recipient {
		t.Fatalf("recipient = %v", args[0])
	}
	if args[1].(*big.Int).Cmp(big.NewInt(1_500_000)) != 0 {
		t.Fatalf("amount = %v", args[1])
	}
	if from := sender(t, tx); from != testAddr {
		t.Fatalf("sender = %s", from.Hex())
	}
	if fake.Closed() != 1 {
		t.Fatalf("client closed %d times, want 1", fake.Closed())
	}
}

func TestTransferToken_Overrides(t *testing.T) {
	fake := newFake()
	fake.Answer(tokenAddr, mustERC20(t), "decimals", uint8(6))
	fake.SetNonce(testAddr, 9)
	c := newTestChain(t, fake)

	_, err := c.Transfer(context.Background(), &model.TransferRequest{
		RecipientAddress: recipient.Hex(),
		TokenAddress:     tokenAddr.Hex(),
		Amount:           decimal.NewFromInt(1),
		PrivateKey:       testKey,
		GasPrice:         "7",
		Nonce:            uint64p(0),
	})
	if err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	tx := fake.Sent()[0]
	if tx.Nonce() != 0 {
		t.Fatalf("nonce = %d, want 0", tx.Nonce())
	}
	if tx.GasPrice().Cmp(big.NewInt(7_000_000_000)) != 0 {
		t.Fatalf("gas price = %s, want 7 gwei", tx.GasPrice())
	}
}

func TestTransferToken_GasLimitOverride(t *testing.T) {
	fake := newFake()
	fake.Answer(tokenAddr, mustERC20(t), "decimals", uint8(18))
	c := newTestChain(t, fake)

	_, err := c.TransferToken(context.Background(), &model.TransferRequest{
		RecipientAddress: recipient.Hex(),
		TokenAddress:     tokenAddr.Hex(),
		Amount:           decimal.NewFromInt(2),
		PrivateKey:       testKey,
		GasLimit:         uint64p(80000),
	})
	if err != nil {
		t.Fatalf("TransferToken: %v", err)
	}
	if gas := fake.Sent()[0].Gas(); gas != 80000 || len(fake.Estimates()) != 0 {
		t.Fatalf("gas = %d estimates = %d", gas, len(fake.Estimates()))
	}
}

func TestTransferToken_Errors(t *testing.T) {
	t.Run("token address required", func(t *testing.T) {
		fake := newFake()
		c := newTestChain(t, fake)
		_, err := c.TransferToken(context.Background(), &model.TransferRequest{
			RecipientAddress: recipient.Hex(),
			Amount:           decimal.NewFromInt(1),
			PrivateKey:       testKey,
		})
		if !errors.Is(err, model.ErrTokenAddressRequired) {
			t.Fatalf("expected ErrTokenAddressRequired, got %v", err)
		}
		if fake.Requests() != 0 {
			t.Fatalf("requests = %d, want 0", fake.Requests())
		}
	})

	t.Run("amount finer than decimals", func(t *testing.T) {
		fake := newFake()
		fake.Answer(tokenAddr, mustERC20(t), "decimals", uint8(6))
		c := newTestChain(t, fake)
		_, err := c.TransferToken(context.Background(), &model.TransferRequest{
			RecipientAddress: recipient.Hex(),
			TokenAddress:     tokenAddr.Hex(),
			Amount:           decimal.RequireFromString("0.0000001"),
			PrivateKey:       testKey,
		})
		if !errors.Is(err, model.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
		if len(fake.Sent()) != 0 {
			t.Fatal("transaction submitted")
		}
	})

	t.Run("invalid token address", func(t *testing.T) {
		fake := newFake()
		c := newTestChain(t, fake)
		_, err := c.TransferToken(context.Background(), &model.TransferRequest{
			RecipientAddress: recipient.Hex(),
			TokenAddress:     "token",
			Amount:           decimal.NewFromInt(1),
			PrivateKey:       testKey,
		})
		if !errors.Is(err, model.ErrInvalidAddress) {
			t.Fatalf("expected ErrInvalidAddress, got %v", err)
		}
	})
}

func TestCall_Read(t *testing.T) {
	fake := newFake()
	fake.Answer(tokenAddr, mustERC20(t), "balanceOf", big.NewInt(42))
	c := newTestChain(t, fake)

	res, err := c.Call(context.Background(), &model.ContractCallRequest{
		ContractAddress: tokenAddr.Hex(),
		Method:          "balanceOf",
		MethodType:      model.MethodRead,
		Params:          []any{testAddr.Hex()},
		GasLimit:        uint64p(90000),
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	n, ok := res.Data.(*big.Int)
	if !ok || n.Int64() != 42 {
		t.Fatalf("data = %v (%T)", res.Data, res.Data)
	}
	calls := fake.Calls()
	if len(calls) != 1 || calls[0].Gas != 90000 {
		t.Fatalf("calls = %+v", calls)
	}
	if len(fake.Sent()) != 0 {
		t.Fatal("read call submitted a transaction")
	}
	if fake.Closed() != 1 {
		t.Fatalf("client closed %d times, want 1", fake.Closed())
	}
}

func TestCall_ReadCustomABI(t *testing.T) {
	const counterABI = `[{"inputs":[],"name":"count","outputs":[{"name":"","type":"uint64"}],"stateMutability":"view","type":"function"},
{"inputs":[],"name":"reset","outputs":[],"stateMutability":"nonpayable","type":"function"}]`

	parsed, err := blockchain.ParseABI([]byte(counterABI))
	if err != nil {
		t.Fatal(err)
	}
	fake := newFake()
	fake.Answer(tokenAddr, parsed, "count", uint64(7))
	c := newTestChain(t, fake)

	res, err := c.Call(context.Background(), &model.ContractCallRequest{
		ContractAddress: tokenAddr.Hex(),
		Method:          "count",
		ContractABI:     []byte(counterABI),
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if res.Data != uint64(7) {
		t.Fatalf("data = %v (%T)", res.Data, res.Data)
	}

	if _, err := c.Call(context.Background(), &model.ContractCallRequest{
		ContractAddress: tokenAddr.Hex(),
		Method:          "mint",
		ContractABI:     []byte(counterABI),
	}); !errors.Is(err, blockchain.ErrMethodNotFound) {
		t.Fatalf("expected ErrMethodNotFound, got %v", err)
	}
}

func TestCall_Write(t *testing.T) {
	fake := newFake()
	erc20 := mustERC20(t)
	c := newTestChain(t, fake)
	value := decimal.RequireFromString("0.01")

	res, err := c.Call(context.Background(), &model.ContractCallRequest{
		ContractAddress: tokenAddr.Hex(),
		Method:          "approve",
		MethodType:      model.MethodWrite,
		Params:          []any{recipient.Hex(), "1000"},
		Value:           &value,
		GasPrice:        "3",
		Nonce:           uint64p(4),
		PrivateKey:      testKey,
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	tx, ok := res.Data.(*types.Transaction)
	if !ok {
		t.Fatalf("data = %T, want *types.Transaction", res.Data)
	}
	sent := fake.Sent()
	if len(sent) != 1 || sent[0].Hash() != tx.Hash() {
		t.Fatal("result does not match submitted transaction")
	}
	if *tx.To() != tokenAddr || tx.Nonce() != 4 || tx.Value().Cmp(big.NewInt(10_000_000_000_000_000)) != 0 {
		t.Fatalf("unexpected tx to=%v nonce=%d value=%s", tx.To(), tx.Nonce(), tx.Value())
	}
	if tx.GasPrice().Cmp(new(big.Int).Mul(big.NewInt(3), gwei)) != 0 {
		t.Fatalf("gas price = %s", tx.GasPrice())
	}
	args, err := erc20.Methods["approve"].Inputs.Unpack(tx.Data()[4:])
	if err != nil {
		t.Fatalf("unpack calldata: %v", err)
	}
	if args[0].(common.Address) != recipient || args[1].(*big.Int).Int64() != 1000 {
		t.Fatalf("args = %v", args)
	}
}

func TestCall_WriteRequiresKey(t *testing.T) {
	fake := newFake()
	c := newTestChain(t, fake)

	_, err := c.Call(context.Background(), &model.ContractCallRequest{
		ContractAddress: tokenAddr.Hex(),
		Method:          "approve",
		MethodType:      model.MethodWrite,
		Params:          []any{recipient.Hex(), "1000"},
	})
	if !errors.Is(err, model.ErrPrivateKeyRequired) {
		t.Fatalf("expected ErrPrivateKeyRequired, got %v", err)
	}
	if fake.Requests() != 0 || len(fake.Sent()) != 0 {
		t.Fatalf("chain touched: requests=%d", fake.Requests())
	}
}

func TestTokenInfo(t *testing.T) {
	fake := newFake()
	erc20 := mustERC20(t)
	fake.Answer(tokenAddr, erc20, "name", "Tether USD")
	fake.Answer(tokenAddr, erc20, "symbol", "USDT")
	fake.Answer(tokenAddr, erc20, "decimals", uint8(6))
	fake.Answer(tokenAddr, erc20, "totalSupply", big.NewInt(1_234_567_890))
	c := newTestChain(t, fake)

	info, err := c.TokenInfo(context.Background(), &model.TokenInfoRequest{Address: "0x3c0c365b434a57132b2888e3e6021733d64a760c"})
	if err != nil {
		t.Fatalf("TokenInfo: %v", err)
	}
	if info.Name != "Tether USD" || info.Symbol != "USDT" || info.Decimals != 6 {
		t.Fatalf("unexpected info %+v", info)
	}
	if info.Address != tokenAddr.Hex() {
		t.Fatalf("address = %s, want checksummed %s", info.Address, tokenAddr.Hex())
	}
	if !info.TotalSupply.Equal(decimal.RequireFromString("1234.56789")) {
		t.Fatalf("total supply = %s", info.TotalSupply)
	}
	if len(fake.Calls()) != 4 {
		t.Fatalf("calls = %d, want 4", len(fake.Calls()))
	}
	if fake.Closed() != 1 {
		t.Fatalf("client closed %d times, want 1", fake.Closed())
	}
}

func TestTokenInfo_Errors(t *testing.T) {
	errBoom := errors.New("boom")
	fake := newFake()
	fake.Fail("CallContract", errBoom)
	c := newTestChain(t, fake)

	if _, err := c.TokenInfo(context.Background(), &model.TokenInfoRequest{Address: tokenAddr.Hex()}); !errors.Is(err, errBoom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if _, err := c.TokenInfo(context.Background(), &model.TokenInfoRequest{Address: "0xzz"}); !errors.Is(err, model.ErrInvalidAddress) {
		t.Fatalf("expected ErrInvalidAddress, got %v", err)
	}
}

func TestBalance(t *testing.T) {
	fake := newFake()
	erc20 := mustERC20(t)
	fake.SetBalance(testAddr, new(big.Int).Mul(big.NewInt(15), big.NewInt(100_000_000_000_000_000)))
	fake.Answer(tokenAddr, erc20, "decimals", uint8(6))
	fake.Answer(tokenAddr, erc20, "balanceOf", big.NewInt(2_500_000))
	c := newTestChain(t, fake)

	native, err := c.Balance(context.Background(), &model.BalanceRequest{Address: testAddr.Hex()})
	if err != nil {
		t.Fatalf("native Balance: %v", err)
	}
	if !native.Balance.Equal(decimal.RequireFromString("1.5")) {
		t.Fatalf("native balance = %s", native.Balance)
	}

	token, err := c.Balance(context.Background(), &model.BalanceRequest{Address: testAddr.Hex(), TokenAddress: tokenAddr.Hex()})
	if err != nil {
		t.Fatalf("token Balance: %v", err)
	}
	if !token.Balance.Equal(decimal.RequireFromString("2.5")) {
		t.Fatalf("token balance = %s", token.Balance)
	}

	empty, err := c.Balance(context.Background(), &model.BalanceRequest{Address: recipient.Hex()})
	if err != nil {
		t.Fatal(err)
	}
	if !empty.Balance.IsZero() {
		t.Fatalf("empty balance = %s", empty.Balance)
	}
	if fake.Closed() != 3 {
		t.Fatalf("client closed %d times, want 3", fake.Closed())
	}
}

func TestTransaction(t *testing.T) {
	fake := newFake()
	tx := types.NewTx(&types.LegacyTx{Nonce: 1, To: &recipient, Value: big.NewInt(1), Gas: 21000, GasPrice: gwei})
	fake.AddTransaction(tx, true)
	c := newTestChain(t, fake)

	got, err := c.Transaction(context.Background(), &model.TransactionRequest{Hash: tx.Hash().Hex()})
	if err != nil {
		t.Fatalf("Transaction: %v", err)
	}
	if got.Tx.Hash() != tx.Hash() || !got.Pending {
		t.Fatalf("unexpected lookup %+v", got)
	}

	fake.Mine(tx.Hash(), 2, types.ReceiptStatusSuccessful)
	got, err = c.Transaction(context.Background(), &model.TransactionRequest{Hash: tx.Hash().Hex()})
	if err != nil {
		t.Fatal(err)
	}
	if got.Pending {
		t.Fatal("mined transaction reported pending")
	}

	missing := common.HexToHash("0x01").Hex()
	if _, err := c.Transaction(context.Background(), &model.TransactionRequest{Hash: missing}); !errors.Is(err, ethereum.NotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}

	before := fake.Requests()
	if _, err := c.Transaction(context.Background(), &model.TransactionRequest{Hash: "0x1234"}); !errors.Is(err, model.ErrInvalidHash) {
		t.Fatalf("expected ErrInvalidHash, got %v", err)
	}
	if fake.Requests() != before {
		t.Fatal("invalid hash reached the node")
	}
}

func TestHealth(t *testing.T) {
	fake := newFake()
	fake.SetHead(42)
	c := newTestChain(t, fake)

	st, err := c.Health(context.Background(), &model.HealthRequest{})
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if st.ChainID != "1337" || st.BlockNumber != 42 || st.Network != model.NetworkEthereum {
		t.Fatalf("unexpected status %+v", st)
	}

	errBoom := errors.New("boom")
	fake.Fail("BlockNumber", errBoom)
	if _, err := c.Health(context.Background(), &model.HealthRequest{}); !errors.Is(err, errBoom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if fake.Closed() != 2 {
		t.Fatalf("client closed %d times, want 2", fake.Closed())
	}
}
