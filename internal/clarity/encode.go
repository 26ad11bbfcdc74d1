package clarity

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"sort"

	"stxswap/internal/c32"
)

// Clarity name length limit (contract and tuple field names).
const maxNameLength = 128

// Encode serializes a value into its Clarity wire form.
func Encode(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeTo(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeHex serializes a value and renders it as 0x-prefixed hex, the form
// the node API accepts for read-only call arguments.
func EncodeHex(v Value) (string, error) {
	data, err := Encode(v)
	if err != nil {
		return "", err
	}
	return "0x" + hex.EncodeToString(data), nil
}

func encodeTo(buf *bytes.Buffer, v Value) error {
	buf.WriteByte(byte(v.clarityType()))

	switch val := v.(type) {
	case UInt:
		writeUint128(buf, uint64(val))
	case Int:
		writeInt128(buf, int64(val))
	case Bool:
		// Tag alone carries the value.
	case Buffer:
		writeLengthPrefixed(buf, []byte(val))
	case StringASCII:
		writeLengthPrefixed(buf, []byte(val))
	case StringUTF8:
		writeLengthPrefixed(buf, []byte(val))
	case StandardPrincipal:
		return writePrincipal(buf, string(val))
	case ContractPrincipal:
		if err := writePrincipal(buf, val.Address); err != nil {
			return err
		}
		return writeName(buf, val.Name)
	case OK:
		return encodeTo(buf, val.Value)
	case Err:
		return encodeTo(buf, val.Value)
	case Some:
		return encodeTo(buf, val.Value)
	case None:
		// Tag alone.
	case List:
		var count [4]byte
		binary.BigEndian.PutUint32(count[:], uint32(len(val)))
		buf.Write(count[:])
		for _, item := range val {
			if err := encodeTo(buf, item); err != nil {
				return err
			}
		}
	case Tuple:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var count [4]byte
		binary.BigEndian.PutUint32(count[:], uint32(len(keys)))
		buf.Write(count[:])
		for _, k := range keys {
			if err := writeName(buf, k); err != nil {
				return err
			}
			if err := encodeTo(buf, val[k]); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unsupported clarity value %T", v)
	}
	return nil
}

func writeUint128(buf *bytes.Buffer, v uint64) {
	var b [16]byte
	binary.BigEndian.PutUint64(b[8:], v)
	buf.Write(b[:])
}

func writeInt128(buf *bytes.Buffer, v int64) {
	var b [16]byte
	if v < 0 {
		for i := 0; i < 8; i++ {
			b[i] = 0xff
		}
	}
	binary.BigEndian.PutUint64(b[8:], uint64(v))
	buf.Write(b[:])
}

func writeLengthPrefixed(buf *bytes.Buffer, data []byte) {
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(data)))
	buf.Write(length[:])
	buf.Write(data)
}

// writePrincipal serializes a c32 address as version byte + hash160.
func writePrincipal(buf *bytes.Buffer, addr string) error {
	version, hash, err := c32.DecodeAddress(addr)
	if err != nil {
		return fmt.Errorf("encode principal: %w", err)
	}
	buf.WriteByte(version)
	buf.Write(hash)
	return nil
}

// writeName serializes a Clarity name as a 1-byte length prefix + bytes.
func writeName(buf *bytes.Buffer, name string) error {
	if len(name) == 0 || len(name) > maxNameLength {
		return fmt.Errorf("invalid clarity name %q", name)
	}
	buf.WriteByte(byte(len(name)))
	buf.WriteString(name)
	return nil
}
