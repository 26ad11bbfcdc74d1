package token

import (
	"fmt"
	"math"
	"strconv"
)

// Bid fee tiers. Thresholds are in ustx, divisors are the exact contract
// values (the rates below are approximate).
const (
	bidTierHigh = 10_000_000_000 // > 10,000 STX -> /450 (~0.22%)
	bidTierMid  = 5_000_000_000  // > 5,000 STX  -> /200 (0.5%)

	bidDivisorHigh = 450
	bidDivisorMid  = 200
	bidDivisorLow  = 133 // ~0.75%

	askDivisor = 400 // flat 0.25%
)

// ToMicroUnits converts a display amount into integer micro-units,
// flooring any sub-unit remainder.
func ToMicroUnits(amount float64, decimals int) uint64 {
	return uint64(math.Floor(amount * math.Pow10(decimals)))
}

// FromMicroUnits converts integer micro-units back to a display amount.
func FromMicroUnits(micro uint64, decimals int) float64 {
	return float64(micro) / math.Pow10(decimals)
}

// CalculateBidFees computes the marketplace fee for a bid, tiered on the
// STX micro-amount. Tier boundaries are exclusive on the lower tier.
func CalculateBidFees(ustx uint64) uint64 {
	switch {
	case ustx > bidTierHigh:
		return ceilDiv(ustx, bidDivisorHigh)
	case ustx > bidTierMid:
		return ceilDiv(ustx, bidDivisorMid)
	default:
		return ceilDiv(ustx, bidDivisorLow)
	}
}

// CalculateAskFees computes the flat marketplace fee for an ask on the
// token micro-amount.
func CalculateAskFees(amount uint64) uint64 {
	return ceilDiv(amount, askDivisor)
}

// ceilDiv rounds the quotient up to the next whole micro-unit.
func ceilDiv(a, b uint64) uint64 {
	return (a + b - 1) / b
}

// FormatAmount renders a micro-amount in both display and micro units,
// e.g. "1.5 PEPE (1500000 μPEPE)".
func FormatAmount(micro uint64, decimals int, symbol string) string {
	regular := strconv.FormatFloat(FromMicroUnits(micro, decimals), 'f', -1, 64)
	return fmt.Sprintf("%s %s (%d μ%s)", regular, symbol, micro, symbol)
}
