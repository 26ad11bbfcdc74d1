package chain

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stxswap/internal/c32"
	"stxswap/internal/clarity"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Mainnet, WithBaseURL(server.URL))
}

func encodeResult(t *testing.T, v clarity.Value) string {
	t.Helper()
	encoded, err := clarity.EncodeHex(v)
	require.NoError(t, err)
	return encoded
}

func TestCallReadOnlyUnwrapsOK(t *testing.T) {
	var gotPath string
	var gotBody callReadRequest

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(callReadResponse{
			Okay:   true,
			Result: encodeResult(t, clarity.OK{Value: clarity.UInt(6)}),
		})
	})

	addr := testAddress(t, c32.VersionMainnet, 0x22)
	sender := testAddress(t, c32.VersionMainnet, 0x33)
	result, err := client.CallReadOnly(context.Background(), addr, "token", "get-decimals",
		[]clarity.Value{clarity.UInt(1)}, sender)
	require.NoError(t, err)

	assert.Equal(t, "/v2/contracts/call-read/"+addr+"/token/get-decimals", gotPath)
	assert.Equal(t, sender, gotBody.Sender)
	require.Len(t, gotBody.Arguments, 1)
	assert.Equal(t, encodeResult(t, clarity.UInt(1)), gotBody.Arguments[0])

	assert.True(t, result.Success)
	assert.Equal(t, clarity.UInt(6), result.Value)
}

func TestCallReadOnlyErrResultIsNotSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(callReadResponse{
			Okay:   true,
			Result: encodeResult(t, clarity.Err{Value: clarity.UInt(404)}),
		})
	})

	result, err := client.CallReadOnly(context.Background(),
		testAddress(t, c32.VersionMainnet, 0x22), "token", "get-swap", nil,
		testAddress(t, c32.VersionMainnet, 0x33))
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, clarity.UInt(404), result.Value)
}

func TestCallReadOnlyNodeFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(callReadResponse{Okay: false, Cause: "NoSuchContract"})
	})

	_, err := client.CallReadOnly(context.Background(),
		testAddress(t, c32.VersionMainnet, 0x22), "token", "get-swap", nil,
		testAddress(t, c32.VersionMainnet, 0x33))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NoSuchContract")
}

func TestNextNonce(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/extended/v1/address/")
		json.NewEncoder(w).Encode(addressNonces{PossibleNextNonce: 42})
	})

	nonce, err := client.NextNonce(context.Background(), testAddress(t, c32.VersionMainnet, 0x22))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), nonce)
}

func TestNextNonceStatusFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.NextNonce(context.Background(), testAddress(t, c32.VersionMainnet, 0x22))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestBroadcastAccepted(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/transactions", r.URL.Path)
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))
		json.NewEncoder(w).Encode("0xabc123")
	})

	result, err := client.Broadcast(context.Background(), []byte{0x00, 0x01})
	require.NoError(t, err)
	assert.Equal(t, "0xabc123", result.TxID)
}

func TestBroadcastRejection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(broadcastRejection{
			Error:      "transaction rejected",
			Reason:     "BadNonce",
			ReasonData: json.RawMessage(`{"expected":8,"actual":7}`),
			TxID:       "0xdead",
		})
	})

	_, err := client.Broadcast(context.Background(), []byte{0x00})
	require.Error(t, err)

	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "BadNonce", rejected.Reason)
	assert.Equal(t, "0xdead", rejected.TxID)
	assert.Contains(t, rejected.Error(), "BadNonce")
	// The structured rejection detail survives into the error text.
	assert.Contains(t, rejected.Error(), `"expected":8`)
}

func TestBroadcastUnstructuredFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("oops"))
	})

	_, err := client.Broadcast(context.Background(), []byte{0x00})
	require.Error(t, err)

	var rejected *RejectedError
	assert.False(t, errors.As(err, &rejected))
	assert.Contains(t, err.Error(), "oops")
}
