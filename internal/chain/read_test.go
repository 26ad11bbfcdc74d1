package chain

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stxswap/internal/c32"
	"stxswap/internal/clarity"
	"stxswap/internal/token"
)

func okResponse(t *testing.T, v clarity.Value) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(callReadResponse{
			Okay:   true,
			Result: encodeResult(t, clarity.OK{Value: v}),
		})
	}
}

func TestTokenDecimalsStripsAssetSuffix(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		okResponse(t, clarity.UInt(6))(w, r)
	})
	reader := NewReader(client)

	addr := testAddress(t, c32.VersionMainnet, 0x22)
	sender := testAddress(t, c32.VersionMainnet, 0x33)
	info := &token.Info{
		FT:              addr + ".welsh-token::welsh",
		ContractAddress: addr,
		ContractName:    "welsh-token::welsh",
		AssetName:       "welsh",
	}

	decimals, err := reader.TokenDecimals(context.Background(), info, sender)
	require.NoError(t, err)
	assert.Equal(t, 6, decimals)
	assert.Contains(t, gotPath, "/welsh-token/get-decimals")
}

func TestTokenDecimalsRejectsNonNumericResult(t *testing.T) {
	client := newTestClient(t, okResponse(t, clarity.Bool(true)))
	reader := NewReader(client)

	addr := testAddress(t, c32.VersionMainnet, 0x22)
	info := &token.Info{ContractAddress: addr, ContractName: "welsh-token"}
	_, err := reader.TokenDecimals(context.Background(), info, addr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid decimal value")
}

func swapTuple(t *testing.T, stxSender, ftAddr string) clarity.Tuple {
	t.Helper()
	return clarity.Tuple{
		"ustx":           clarity.UInt(10_000_000),
		"amount":         clarity.UInt(400_000),
		"open":           clarity.Bool(true),
		"stx-sender":     clarity.Some{Value: clarity.StandardPrincipal(stxSender)},
		"ft-sender":      clarity.None{},
		"ft":             clarity.Some{Value: clarity.ContractPrincipal{Address: ftAddr, Name: "welsh-token"}},
		"expired-height": clarity.Some{Value: clarity.UInt(145_000)},
	}
}

func TestGetSwapDecodesRecord(t *testing.T) {
	stxSender := testAddress(t, c32.VersionMainnet, 0x33)
	ftAddr := testAddress(t, c32.VersionMainnet, 0x44)

	client := newTestClient(t, okResponse(t, clarity.Some{Value: swapTuple(t, stxSender, ftAddr)}))
	reader := NewReader(client)

	swap, err := reader.GetSwap(context.Background(), BidContract, 4, stxSender)
	require.NoError(t, err)

	assert.Equal(t, uint64(10_000_000), swap.Ustx)
	assert.Equal(t, uint64(400_000), swap.Amount)
	assert.True(t, swap.Open)
	assert.Equal(t, stxSender, swap.STXSender)
	assert.Empty(t, swap.FTSender)
	assert.Equal(t, ftAddr+".welsh-token", swap.FTContract)
	assert.Equal(t, uint64(145_000), swap.ExpiredHeight)
}

func TestGetSwapNoneIsNotFound(t *testing.T) {
	client := newTestClient(t, okResponse(t, clarity.None{}))
	reader := NewReader(client)

	_, err := reader.GetSwap(context.Background(), BidContract, 99,
		testAddress(t, c32.VersionMainnet, 0x33))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSwapNotFound))
}

func TestGetSwapContractErrIsNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(callReadResponse{
			Okay:   true,
			Result: encodeResult(t, clarity.Err{Value: clarity.UInt(404)}),
		})
	})
	reader := NewReader(client)

	_, err := reader.GetSwap(context.Background(), AskContract, 99,
		testAddress(t, c32.VersionMainnet, 0x33))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSwapNotFound))
}

func TestGetSwapMalformedRecord(t *testing.T) {
	// Missing the amount field.
	tuple := clarity.Tuple{
		"ustx": clarity.UInt(1),
		"open": clarity.Bool(true),
	}
	client := newTestClient(t, okResponse(t, clarity.Some{Value: tuple}))
	reader := NewReader(client)

	_, err := reader.GetSwap(context.Background(), BidContract, 4,
		testAddress(t, c32.VersionMainnet, 0x33))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrSwapNotFound))
	assert.Contains(t, err.Error(), "malformed record")
}
