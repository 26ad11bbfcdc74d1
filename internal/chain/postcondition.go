package chain

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"stxswap/internal/c32"
)

// PostConditionMode gates how the chain treats asset transfers not covered
// by an explicit post-condition.
type PostConditionMode byte

// Post-condition modes.
const (
	PostConditionModeAllow PostConditionMode = 0x01
	PostConditionModeDeny  PostConditionMode = 0x02
)

// ConditionCode is the comparison applied to the transferred amount.
type ConditionCode byte

// Condition codes.
const (
	SentEq ConditionCode = 0x01
	SentGt ConditionCode = 0x02
	SentGe ConditionCode = 0x03
	SentLt ConditionCode = 0x04
	SentLe ConditionCode = 0x05
)

// Principal is the party a post-condition constrains: an account address,
// or a contract when ContractName is set.
type Principal struct {
	Address      string
	ContractName string
}

// StandardPrincipal constrains an account.
func StandardPrincipal(address string) Principal {
	return Principal{Address: address}
}

// ContractPrincipal constrains a contract.
func ContractPrincipal(c Contract) Principal {
	return Principal{Address: c.Address, ContractName: c.Name}
}

// Asset identifies a fungible token class for a post-condition.
type Asset struct {
	ContractAddress string
	ContractName    string
	AssetName       string
}

// PostCondition asserts a bound on an asset transfer; the transaction is
// rejected on chain if violated. A nil Asset means STX.
type PostCondition struct {
	Principal Principal
	Asset     *Asset
	Code      ConditionCode
	Amount    uint64
}

// NewSTXPostCondition bounds a principal's STX outflow.
func NewSTXPostCondition(principal Principal, code ConditionCode, amount uint64) PostCondition {
	return PostCondition{Principal: principal, Code: code, Amount: amount}
}

// NewFTPostCondition bounds a principal's fungible-token outflow.
func NewFTPostCondition(principal Principal, code ConditionCode, amount uint64, asset Asset) PostCondition {
	return PostCondition{Principal: principal, Asset: &asset, Code: code, Amount: amount}
}

// Wire tags for post-condition serialization.
const (
	assetTypeSTX      = 0x00
	assetTypeFungible = 0x01

	principalTypeStandard = 0x02
	principalTypeContract = 0x03
)

// serialize appends the wire form of the post-condition.
func (pc PostCondition) serialize(buf *bytes.Buffer) error {
	if pc.Asset == nil {
		buf.WriteByte(assetTypeSTX)
	} else {
		buf.WriteByte(assetTypeFungible)
	}

	if err := pc.Principal.serialize(buf); err != nil {
		return err
	}

	if pc.Asset != nil {
		version, hash, err := c32.DecodeAddress(pc.Asset.ContractAddress)
		if err != nil {
			return fmt.Errorf("post-condition asset address: %w", err)
		}
		buf.WriteByte(version)
		buf.Write(hash)
		if err := writeShortString(buf, pc.Asset.ContractName); err != nil {
			return err
		}
		if err := writeShortString(buf, pc.Asset.AssetName); err != nil {
			return err
		}
	}

	buf.WriteByte(byte(pc.Code))
	var amount [8]byte
	binary.BigEndian.PutUint64(amount[:], pc.Amount)
	buf.Write(amount[:])
	return nil
}

func (p Principal) serialize(buf *bytes.Buffer) error {
	version, hash, err := c32.DecodeAddress(p.Address)
	if err != nil {
		return fmt.Errorf("post-condition principal: %w", err)
	}
	if p.ContractName == "" {
		buf.WriteByte(principalTypeStandard)
		buf.WriteByte(version)
		buf.Write(hash)
		return nil
	}
	buf.WriteByte(principalTypeContract)
	buf.WriteByte(version)
	buf.Write(hash)
	return writeShortString(buf, p.ContractName)
}

// writeShortString writes a 1-byte length prefixed string.
func writeShortString(buf *bytes.Buffer, s string) error {
	if len(s) == 0 || len(s) > 128 {
		return fmt.Errorf("invalid name %q", s)
	}
	buf.WriteByte(byte(len(s)))
	buf.WriteString(s)
	return nil
}
