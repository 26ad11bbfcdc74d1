package chain

import (
	"bytes"
	"crypto/sha512"
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"stxswap/internal/c32"
	"stxswap/internal/clarity"
)

// Wire constants for single-signature contract-call transactions.
const (
	authTypeStandard        = 0x04
	hashModeP2PKH           = 0x00
	keyEncodingCompressed   = 0x00
	anchorModeAny           = 0x03
	payloadTypeContractCall = 0x02

	signatureLength = 65
)

// ContractCall describes a contract-call transaction before signing. Nonce
// and Fee must already be resolved; nothing here touches the network.
type ContractCall struct {
	Network           Network
	Contract          Contract
	FunctionName      string
	Args              []clarity.Value
	Nonce             uint64
	Fee               uint64
	PostConditionMode PostConditionMode
	PostConditions    []PostCondition
}

// Sign derives the signer from the private key, computes the signature over
// the transaction sighash, and returns the fully serialized transaction
// ready for broadcast. Accepts a 32-byte key or a 33-byte key with the
// trailing compression marker.
func (c *ContractCall) Sign(privateKey []byte) ([]byte, error) {
	if len(privateKey) == 33 && privateKey[32] == 0x01 {
		privateKey = privateKey[:32]
	}
	if len(privateKey) != 32 {
		return nil, fmt.Errorf("signing key must be 32 bytes, got %d", len(privateKey))
	}

	priv, pub := btcec.PrivKeyFromBytes(privateKey)
	signer := c32.Hash160(pub.SerializeCompressed())

	// Initial sighash: the transaction with fee, nonce and signature cleared.
	cleared, err := c.serialize(signer, 0, 0, [signatureLength]byte{})
	if err != nil {
		return nil, err
	}
	initial := sha512.Sum512_256(cleared)

	var presign bytes.Buffer
	presign.Write(initial[:])
	presign.WriteByte(authTypeStandard)
	var u64 [8]byte
	binary.BigEndian.PutUint64(u64[:], c.Fee)
	presign.Write(u64[:])
	binary.BigEndian.PutUint64(u64[:], c.Nonce)
	presign.Write(u64[:])
	sighash := sha512.Sum512_256(presign.Bytes())

	compact := ecdsa.SignCompact(priv, sighash[:], true)

	// SignCompact prefixes a recovery header of 27+recid+4 (compressed);
	// the wire format wants the bare recovery id followed by r and s.
	var sig [signatureLength]byte
	sig[0] = compact[0] - 27 - 4
	copy(sig[1:], compact[1:])

	return c.serialize(signer, c.Fee, c.Nonce, sig)
}

// serialize renders the transaction with the given spending-condition values.
func (c *ContractCall) serialize(signer []byte, fee, nonce uint64, sig [signatureLength]byte) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte(c.Network.TransactionVersion())
	var chainID [4]byte
	binary.BigEndian.PutUint32(chainID[:], c.Network.ChainID())
	buf.Write(chainID[:])

	// Standard auth with a single-signature spending condition.
	buf.WriteByte(authTypeStandard)
	buf.WriteByte(hashModeP2PKH)
	buf.Write(signer)
	var u64 [8]byte
	binary.BigEndian.PutUint64(u64[:], nonce)
	buf.Write(u64[:])
	binary.BigEndian.PutUint64(u64[:], fee)
	buf.Write(u64[:])
	buf.WriteByte(keyEncodingCompressed)
	buf.Write(sig[:])

	buf.WriteByte(anchorModeAny)

	buf.WriteByte(byte(c.PostConditionMode))
	var count [4]byte
	binary.BigEndian.PutUint32(count[:], uint32(len(c.PostConditions)))
	buf.Write(count[:])
	for _, pc := range c.PostConditions {
		if err := pc.serialize(&buf); err != nil {
			return nil, err
		}
	}

	buf.WriteByte(payloadTypeContractCall)
	version, hash, err := c32.DecodeAddress(c.Contract.Address)
	if err != nil {
		return nil, fmt.Errorf("contract address: %w", err)
	}
	buf.WriteByte(version)
	buf.Write(hash)
	if err := writeShortString(&buf, c.Contract.Name); err != nil {
		return nil, err
	}
	if err := writeShortString(&buf, c.FunctionName); err != nil {
		return nil, err
	}
	binary.BigEndian.PutUint32(count[:], uint32(len(c.Args)))
	buf.Write(count[:])
	for i, arg := range c.Args {
		encoded, err := clarity.Encode(arg)
		if err != nil {
			return nil, fmt.Errorf("encode argument %d: %w", i, err)
		}
		buf.Write(encoded)
	}

	return buf.Bytes(), nil
}
