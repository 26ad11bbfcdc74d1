package stxswap

import "sort"

// Market describes one listed trading pair.
type Market struct {
	Pair       string `json:"pair"`
	Symbol     string `json:"symbol"`
	FTContract string `json:"ftContract"`
	AssetName  string `json:"assetName"`
}

// GetAvailableMarkets enumerates the listed markets, sorted by pair. The
// result is derived from the static registry and involves no network calls.
func (s *SDK) GetAvailableMarkets() []Market {
	pairs := s.registry.SupportedPairs()
	markets := make([]Market, 0, len(pairs))
	for _, pair := range pairs {
		info, ok := s.registry.TokenInfo(pair)
		if !ok {
			continue
		}
		markets = append(markets, Market{
			Pair:       pair,
			Symbol:     info.Symbol,
			FTContract: info.Contract(),
			AssetName:  info.AssetName,
		})
	}
	sort.Slice(markets, func(i, j int) bool { return markets[i].Pair < markets[j].Pair })
	return markets
}

// GetMarket resolves a single pair to its market metadata.
func (s *SDK) GetMarket(pair string) (*Market, error) {
	info, ok := s.registry.TokenInfo(pair)
	if !ok {
		return nil, opErrf("get market", KindValidation, "unsupported trading pair: %s", pair)
	}
	return &Market{
		Pair:       pair,
		Symbol:     info.Symbol,
		FTContract: info.Contract(),
		AssetName:  info.AssetName,
	}, nil
}

// IsValidPair reports whether the pair is listed.
func (s *SDK) IsValidPair(pair string) bool {
	return s.registry.IsSupportedPair(pair)
}
