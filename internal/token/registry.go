// Package token resolves trading pairs to fungible token metadata and
// provides micro-unit and marketplace fee arithmetic.
package token

import (
	"fmt"
	"sort"
	"strings"
)

// STX is the sentinel contract identifier for the native token. It is not a
// registry entry: bids escrow STX directly rather than through an FT contract.
const STX = "STX"

// STXDecimals is the decimal count of the native token (1 STX = 1,000,000 ustx).
const STXDecimals = 6

// Sentinels returned by the display-only reverse lookups on a miss.
const (
	UnknownSymbol = "Unknown Token"
	UnknownPair   = "UNKNOWN-STX"
)

// Info describes one fungible token. FT always decomposes as
// ContractAddress.ContractName::AssetName; Symbol is the registry join key.
type Info struct {
	FT              string
	ContractAddress string
	ContractName    string
	AssetName       string
	Symbol          string
}

// Contract returns the token contract identifier without the asset suffix.
func (i *Info) Contract() string {
	return i.ContractAddress + "." + i.ContractName
}

// Registry is an immutable symbol -> token identifier table with a
// precomputed inverse index. Construct once and share by reference.
type Registry struct {
	bySymbol   map[string]string // symbol -> "addr.contract::asset"
	byContract map[string]string // "addr.contract" -> symbol
}

// NewRegistry builds a registry from a symbol -> full identifier map.
// Identifiers must have the form "contractAddress.contractName::assetName".
func NewRegistry(entries map[string]string) (*Registry, error) {
	r := &Registry{
		bySymbol:   make(map[string]string, len(entries)),
		byContract: make(map[string]string, len(entries)),
	}
	for symbol, ft := range entries {
		info, err := parseIdentifier(ft)
		if err != nil {
			return nil, fmt.Errorf("registry entry %s: %w", symbol, err)
		}
		r.bySymbol[symbol] = ft
		r.byContract[info.Contract()] = symbol
	}
	return r, nil
}

// MustNewRegistry is NewRegistry for static tables; panics on a bad entry.
func MustNewRegistry(entries map[string]string) *Registry {
	r, err := NewRegistry(entries)
	if err != nil {
		panic(err)
	}
	return r
}

// DefaultRegistry returns the mainnet token table the marketplace lists.
func DefaultRegistry() *Registry {
	return MustNewRegistry(map[string]string{
		"PEPE":  "SP1Z92MPDQEWZXW36VX71Q25HKF5K2EPCJ304F275.tokensoft-token-v4k68639zxz::pepe",
		"WELSH": "SP3NE50GEXFG9SZGTT51P40X2CKYSZ5CC4ZTZ7A2G.welshcorgicoin-token::welshcorgicoin",
		"LEO":   "SP1AY6K3PQV5MRT6R4S671NWW2FRVPKM0BR162CT6.leo-token::leo",
		"NOT":   "SP32AEEF6WW5Y0NMJ1S8SBSZDAY8R5J32NBV7F24M.nope::NOT",
		"MIA":   "SP1H1733V5MZ3SZ9XRW9FKYGEZT0JDGEB8Y634C7R.miamicoin-token-v2::miamicoin",
		"NYC":   "SPSCWDV3RKV5ZRN1FQD84YE1NQFEDJ9R1F4DYQ11.newyorkcitycoin-token-v2::newyorkcitycoin",
		"GUS":   "SP1JFFSYTSH7VBM54K29ZFS9H4SVB67EA8VT2MYJ9.gus-token::gus",
		"ROO":   "SP2C1WREHGM75C7TGFAEJPFKTFTEGZKF6DFT6E2GE.kangaroo::kangaroo",
	})
}

// parseIdentifier splits "addr.contract::asset" into its parts.
func parseIdentifier(ft string) (*Info, error) {
	contractPart, assetName, ok := strings.Cut(ft, "::")
	if !ok || assetName == "" {
		return nil, fmt.Errorf("malformed token identifier %q: missing asset name", ft)
	}
	addr, name, ok := strings.Cut(contractPart, ".")
	if !ok || addr == "" || name == "" {
		return nil, fmt.Errorf("malformed token identifier %q: missing contract name", ft)
	}
	return &Info{
		FT:              ft,
		ContractAddress: addr,
		ContractName:    name,
		AssetName:       assetName,
	}, nil
}

// TokenInfo resolves a "SYMBOL-STX" pair string to token metadata.
// The second return is false when the symbol is not listed.
func (r *Registry) TokenInfo(pair string) (*Info, bool) {
	symbol, _, _ := strings.Cut(pair, "-")
	ft, ok := r.bySymbol[symbol]
	if !ok {
		return nil, false
	}
	info, err := parseIdentifier(ft)
	if err != nil {
		return nil, false
	}
	info.Symbol = symbol
	return info, true
}

// TokenInfoFromContract reverse-resolves an on-chain contract identifier into
// registry metadata. The asset name is always re-derived from the canonical
// registry entry rather than trusted from the caller-supplied identifier, so
// post-conditions bind to registry truth.
func (r *Registry) TokenInfoFromContract(ftContract string) (*Info, error) {
	symbol := r.lookupSymbol(ftContract)
	ft, ok := r.bySymbol[symbol]
	if !ok {
		return nil, fmt.Errorf("unknown token contract: %s", ftContract)
	}
	info, err := parseIdentifier(ft)
	if err != nil {
		return nil, err
	}
	info.FT = ftContract
	info.Symbol = symbol
	return info, nil
}

// SupportedPairs enumerates listed pairs, sorted lexicographically.
func (r *Registry) SupportedPairs() []string {
	pairs := make([]string, 0, len(r.bySymbol))
	for symbol := range r.bySymbol {
		pairs = append(pairs, symbol+"-STX")
	}
	sort.Strings(pairs)
	return pairs
}

// IsSupportedPair reports whether the pair is in the listed set.
func (r *Registry) IsSupportedPair(pair string) bool {
	_, ok := r.TokenInfo(pair)
	return ok
}

// TokenSymbol is a display-only reverse lookup; it degrades to the
// UnknownSymbol sentinel instead of failing.
func (r *Registry) TokenSymbol(ftContract string) string {
	if symbol := r.lookupSymbol(ftContract); symbol != "" {
		return symbol
	}
	return UnknownSymbol
}

// MarketPair is a display-only reverse lookup returning "SYMBOL-STX",
// or the UnknownPair sentinel on a miss.
func (r *Registry) MarketPair(ftContract string) string {
	if symbol := r.lookupSymbol(ftContract); symbol != "" {
		return symbol + "-STX"
	}
	return UnknownPair
}

// lookupSymbol maps a contract identifier (with or without an ::asset suffix)
// to its registry symbol, or "" on a miss.
func (r *Registry) lookupSymbol(ftContract string) string {
	if ftContract == "" {
		return ""
	}
	contractPart, _, _ := strings.Cut(ftContract, "::")
	return r.byContract[contractPart]
}
