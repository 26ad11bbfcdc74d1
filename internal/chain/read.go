package chain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stxswap/internal/clarity"
	"stxswap/internal/token"
)

// ErrSwapNotFound is returned when a swap lookup fails at the application
// level: the contract reported no such swap. Transport failures surface as
// ordinary errors instead.
var ErrSwapNotFound = errors.New("swap not found")

// Reader resolves live token decimals and swap state through read-only
// contract calls. It holds no state between calls.
type Reader struct {
	client *Client
}

// NewReader creates a Reader on top of a node client.
func NewReader(client *Client) *Reader {
	return &Reader{client: client}
}

// TokenDecimals reads the decimal count from a token's base contract. There
// is no fallback default: a malformed or non-numeric response is fatal to
// any operation that needs decimal conversion.
func (r *Reader) TokenDecimals(ctx context.Context, info *token.Info, senderAddress string) (int, error) {
	// The registry may carry an ::asset suffix on the contract name.
	baseName, _, _ := strings.Cut(info.ContractName, "::")

	result, err := r.client.CallReadOnly(ctx, info.ContractAddress, baseName, FnGetDecimals, nil, senderAddress)
	if err != nil {
		return 0, fmt.Errorf("read decimals from %s.%s: %w", info.ContractAddress, baseName, err)
	}
	if !result.Success {
		return 0, fmt.Errorf("read decimals from %s.%s: contract returned err", info.ContractAddress, baseName)
	}
	decimals, ok := result.Value.(clarity.UInt)
	if !ok {
		return 0, fmt.Errorf("invalid decimal value returned from contract %s: %T", info.FT, result.Value)
	}
	return int(decimals), nil
}

// SwapRecord is the decoded on-chain state of one bid or ask.
type SwapRecord struct {
	Ustx          uint64
	Amount        uint64
	STXSender     string // empty when the contract records none
	FTSender      string // empty when the contract records none
	FTContract    string // "address.name" of the token contract
	Open          bool
	ExpiredHeight uint64 // zero when the offer does not expire
}

// GetSwap reads and decodes swap state for a swap ID from the given contract
// family. A contract-level miss maps to ErrSwapNotFound; partial data is
// never returned.
func (r *Reader) GetSwap(ctx context.Context, contract Contract, swapID uint64, senderAddress string) (*SwapRecord, error) {
	result, err := r.client.CallReadOnly(ctx, contract.Address, contract.Name, FnGetSwap,
		[]clarity.Value{clarity.UInt(swapID)}, senderAddress)
	if err != nil {
		return nil, fmt.Errorf("get-swap %d from %s: %w", swapID, contract, err)
	}
	if !result.Success {
		return nil, fmt.Errorf("get-swap %d from %s: %w", swapID, contract, ErrSwapNotFound)
	}

	value := result.Value
	if some, ok := value.(clarity.Some); ok {
		value = some.Value
	}
	if _, ok := value.(clarity.None); ok {
		return nil, fmt.Errorf("get-swap %d from %s: %w", swapID, contract, ErrSwapNotFound)
	}

	tuple, ok := value.(clarity.Tuple)
	if !ok {
		return nil, fmt.Errorf("get-swap %d from %s: malformed record %T", swapID, contract, value)
	}
	record, err := decodeSwapTuple(tuple)
	if err != nil {
		return nil, fmt.Errorf("get-swap %d from %s: %w", swapID, contract, err)
	}
	return record, nil
}

func decodeSwapTuple(t clarity.Tuple) (*SwapRecord, error) {
	record := &SwapRecord{}

	ustx, err := uintField(t, "ustx")
	if err != nil {
		return nil, err
	}
	record.Ustx = ustx

	amount, err := uintField(t, "amount")
	if err != nil {
		return nil, err
	}
	record.Amount = amount

	open, ok := t["open"].(clarity.Bool)
	if !ok {
		return nil, fmt.Errorf("malformed record: missing open flag")
	}
	record.Open = bool(open)

	record.STXSender = principalField(t, "stx-sender")
	record.FTSender = principalField(t, "ft-sender")

	switch ft := unwrapOptional(t["ft"]).(type) {
	case clarity.ContractPrincipal:
		record.FTContract = ft.String()
	case nil:
		return nil, fmt.Errorf("malformed record: missing ft contract")
	default:
		return nil, fmt.Errorf("malformed record: ft is %T", ft)
	}

	if height, ok := unwrapOptional(t["expired-height"]).(clarity.UInt); ok {
		record.ExpiredHeight = uint64(height)
	}

	return record, nil
}

func uintField(t clarity.Tuple, name string) (uint64, error) {
	v, ok := t[name].(clarity.UInt)
	if !ok {
		return 0, fmt.Errorf("malformed record: missing %s", name)
	}
	return uint64(v), nil
}

// principalField reads an optionally-wrapped principal field, returning ""
// when absent.
func principalField(t clarity.Tuple, name string) string {
	if p, ok := unwrapOptional(t[name]).(clarity.StandardPrincipal); ok {
		return string(p)
	}
	return ""
}

// unwrapOptional strips (some ...) and maps (none) to nil.
func unwrapOptional(v clarity.Value) clarity.Value {
	switch val := v.(type) {
	case clarity.Some:
		return val.Value
	case clarity.None:
		return nil
	default:
		return v
	}
}
