// Package chain talks to a Stacks node: read-only contract calls, nonce
// lookup, transaction assembly/signing and broadcast.
package chain

import (
	"strings"

	"stxswap/internal/c32"
)

// Network identifies a Stacks network.
type Network string

// Supported networks. Devnet and mocknet share testnet wire parameters.
const (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
	Devnet  Network = "devnet"
	Mocknet Network = "mocknet"
)

// ValidateNetwork normalizes a network name, defaulting to testnet.
func ValidateNetwork(network string) Network {
	switch Network(strings.ToLower(network)) {
	case Mainnet:
		return Mainnet
	case Testnet, Devnet, Mocknet:
		return Network(strings.ToLower(network))
	default:
		return Testnet
	}
}

// NetworkFromPrincipal infers the network from an address prefix
// (SP/SM mainnet, ST/SN testnet). Invalid principals map to testnet.
func NetworkFromPrincipal(principal string) Network {
	if c32.IsValidAddress(principal) && len(principal) >= 2 {
		switch principal[:2] {
		case "SP", "SM":
			return Mainnet
		case "ST", "SN":
			return Testnet
		}
	}
	return Testnet
}

// CoreAPIURL returns the default node API host for the network.
func (n Network) CoreAPIURL() string {
	if n == Mainnet {
		return "https://api.hiro.so"
	}
	return "https://api.testnet.hiro.so"
}

// AddressVersion returns the single-signature c32 address version byte.
func (n Network) AddressVersion() byte {
	if n == Mainnet {
		return c32.VersionMainnet
	}
	return c32.VersionTestnet
}

// TransactionVersion returns the wire version byte for transactions.
func (n Network) TransactionVersion() byte {
	if n == Mainnet {
		return 0x00
	}
	return 0x80
}

// ChainID returns the 4-byte chain identifier.
func (n Network) ChainID() uint32 {
	if n == Mainnet {
		return 0x00000001
	}
	return 0x80000000
}
