package stxswap

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonUnmarshal(body string, v interface{}) error {
	return json.Unmarshal([]byte(body), v)
}

func TestGetOrderBookFiltersAndSortsByUnitPrice(t *testing.T) {
	env := newTestEnv()
	env.market.responses["/token-pairs/PEPE-STX/stx-bids"] = `{"results": [
		{"id": 1, "ustx": 1000000, "amount": 500000, "status": "open", "open": true},
		{"id": 2, "ustx": 3000000, "amount": 500000, "status": "open", "open": true},
		{"id": 3, "ustx": 9000000, "amount": 500000, "status": "done", "open": false},
		{"id": 4, "ustx": 2000000, "amount": 500000, "status": "open", "open": false}
	]}`
	env.market.responses["/token-pairs/PEPE-STX/stx-asks"] = `{"results": [
		{"id": 5, "ustx": 4000000, "amount": 500000, "status": "open", "open": true},
		{"id": 6, "ustx": 2000000, "amount": 500000, "status": "open", "open": true},
		{"id": 7, "ustx": 1000000, "amount": 500000, "status": "cancelling", "open": true}
	]}`

	book, err := env.sdk.GetOrderBook(context.Background(), pepePair)
	require.NoError(t, err)

	// Closed and non-open-status entries are dropped on both sides.
	require.Len(t, book.Bids, 2)
	require.Len(t, book.Asks, 2)

	// Best bid first (highest price), best ask first (lowest price).
	assert.Equal(t, int64(2), book.Bids[0].ID)
	assert.Equal(t, int64(1), book.Bids[1].ID)
	assert.Equal(t, int64(6), book.Asks[0].ID)
	assert.Equal(t, int64(5), book.Asks[1].ID)
}

func TestGetOrderBookRejectsUnsupportedPair(t *testing.T) {
	env := newTestEnv()

	_, err := env.sdk.GetOrderBook(context.Background(), "DOGE-STX")
	require.Error(t, err)
	assert.Equal(t, KindValidation, ErrorKind(err))
	assert.Empty(t, env.market.calls)
}

func TestGetOrderBookSurfacesTransportFailure(t *testing.T) {
	env := newTestEnv()
	// Only one side resolves; the other 404s.
	env.market.responses["/token-pairs/PEPE-STX/stx-bids"] = `{"results": []}`

	_, err := env.sdk.GetOrderBook(context.Background(), pepePair)
	require.Error(t, err)
	assert.Equal(t, KindTransport, ErrorKind(err))
}

func TestGetPendingOrdersDiscriminatesSidesAndSorts(t *testing.T) {
	env := newTestEnv()
	env.market.responses["/all-pending-stx-swaps?page=1&limit=50"] = `{"results": [
		{"id": 1, "in_contract": "` + pepeContract + `", "out_contract": "STX",
		 "ustx": 2000000, "amount": 1000000, "in_decimals": 6,
		 "status": "open", "open": true, "processedAt": 100},
		{"id": 2, "in_contract": "STX", "out_contract": "` + pepeContract + `",
		 "ustx": 3000000, "amount": 1000000, "out_decimals": 6,
		 "status": "private", "open": true, "processedAt": 300},
		{"id": 3, "in_contract": "STX", "out_contract": "` + pepeContract + `",
		 "ustx": 1000000, "amount": 1000000, "out_decimals": 6,
		 "status": "done", "open": false, "processedAt": 400},
		{"id": 4, "in_contract": "` + pepeContract + `", "out_contract": "STX",
		 "ustx": 5000000, "amount": 1000000, "in_decimals": 6,
		 "status": "open", "open": true}
	]}`

	orders, err := env.sdk.GetPendingOrders(context.Background(), 0, 0)
	require.NoError(t, err)

	// The done entry is dropped; the rest sort newest first with the
	// unprocessed entry last.
	require.Len(t, orders, 3)

	assert.Equal(t, OrderTypeBid, orders[0].Type)
	require.NotNil(t, orders[0].Bid)
	assert.Equal(t, int64(2), orders[0].Bid.ID)

	assert.Equal(t, OrderTypeAsk, orders[1].Type)
	require.NotNil(t, orders[1].Ask)
	assert.Equal(t, int64(1), orders[1].Ask.ID)

	assert.Equal(t, OrderTypeAsk, orders[2].Type)
	require.NotNil(t, orders[2].Ask)
	assert.Equal(t, int64(4), orders[2].Ask.ID)

	// Display formatting resolves the market and unit price.
	assert.Equal(t, pepePair, orders[1].Market)
	assert.Equal(t, "1 PEPE", orders[1].DisplayAmount)
	assert.Equal(t, "2 STX/PEPE", orders[1].DisplayPrice)
}

func TestGetPendingOrdersUnknownTokenDegrades(t *testing.T) {
	env := newTestEnv()
	env.market.responses["/all-pending-stx-swaps?page=1&limit=50"] = `{"results": [
		{"id": 1, "in_contract": "SP000.mystery-token", "out_contract": "STX",
		 "ustx": 1000000, "amount": 1000000, "in_decimals": 6,
		 "status": "open", "open": true, "processedAt": 10}
	]}`

	orders, err := env.sdk.GetPendingOrders(context.Background(), 1, 50)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	assert.Equal(t, "UNKNOWN-STX", orders[0].Market)
	assert.Equal(t, "1 Unknown Token", orders[0].DisplayAmount)
}

func TestGetPrivateOffersResolvesPairAndContract(t *testing.T) {
	env := newTestEnv()
	endpoint := "/token-pairs/PEPE-STX/private-offers?userAddress=" + testCreator +
		"&ftContract=" + pepeContract
	env.market.responses[endpoint] = `{"privateBids": [{"id": 11}], "privateAsks": []}`

	offers, err := env.sdk.GetPrivateOffers(context.Background(), pepePair, testCreator)
	require.NoError(t, err)
	require.Len(t, offers.PrivateBids, 1)
	assert.Equal(t, int64(11), offers.PrivateBids[0].ID)
	assert.Empty(t, offers.PrivateAsks)
}

func TestGetUserOffersResolvesPairAndContract(t *testing.T) {
	env := newTestEnv()
	endpoint := "/token-pairs/PEPE-STX/user-offers?userAddress=" + testCreator +
		"&ftContract=" + pepeContract
	env.market.responses[endpoint] = `{"userBids": [], "userAsks": [{"id": 21}]}`

	offers, err := env.sdk.GetUserOffers(context.Background(), pepePair, testCreator)
	require.NoError(t, err)
	require.Len(t, offers.UserAsks, 1)
	assert.Equal(t, int64(21), offers.UserAsks[0].ID)
}

func TestGetUserOffersRejectsUnsupportedPair(t *testing.T) {
	env := newTestEnv()

	_, err := env.sdk.GetUserOffers(context.Background(), "DOGE-STX", testCreator)
	require.Error(t, err)
	assert.Equal(t, KindValidation, ErrorKind(err))
}
