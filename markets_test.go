package stxswap

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAvailableMarketsSortedByPair(t *testing.T) {
	env := newTestEnv()

	markets := env.sdk.GetAvailableMarkets()
	require.NotEmpty(t, markets)

	pairs := make([]string, len(markets))
	for i, m := range markets {
		pairs[i] = m.Pair
	}
	assert.True(t, sort.StringsAreSorted(pairs))
	assert.Contains(t, pairs, pepePair)
}

func TestGetMarketResolvesMetadata(t *testing.T) {
	env := newTestEnv()

	market, err := env.sdk.GetMarket(pepePair)
	require.NoError(t, err)
	assert.Equal(t, "PEPE", market.Symbol)
	assert.Equal(t, pepeContract, market.FTContract)
	assert.Equal(t, "pepe", market.AssetName)
}

func TestGetMarketRejectsUnknownPair(t *testing.T) {
	env := newTestEnv()

	_, err := env.sdk.GetMarket("DOGE-STX")
	require.Error(t, err)
	assert.Equal(t, KindValidation, ErrorKind(err))
}

func TestIsValidPair(t *testing.T) {
	env := newTestEnv()

	assert.True(t, env.sdk.IsValidPair(pepePair))
	assert.False(t, env.sdk.IsValidPair("DOGE-STX"))
}
