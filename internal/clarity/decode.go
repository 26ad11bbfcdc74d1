package clarity

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"stxswap/internal/c32"
)

// Guard against absurd collection sizes in malformed responses.
const maxCollectionLength = 4096

// DecodeHex parses a 0x-prefixed hex string, the form the node API returns
// for read-only call results.
func DecodeHex(s string) (Value, error) {
	data, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("decode clarity hex: %w", err)
	}
	return Decode(data)
}

// Decode parses a single serialized Clarity value. Trailing bytes are an
// error: a call result is exactly one value.
func Decode(data []byte) (Value, error) {
	v, rest, err := decodeNext(data)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("decode clarity value: %d trailing bytes", len(rest))
	}
	return v, nil
}

func decodeNext(data []byte) (Value, []byte, error) {
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("decode clarity value: empty input")
	}
	tag := Type(data[0])
	rest := data[1:]

	switch tag {
	case TypeUInt:
		if len(rest) < 16 {
			return nil, nil, fmt.Errorf("truncated uint")
		}
		high := binary.BigEndian.Uint64(rest[:8])
		low := binary.BigEndian.Uint64(rest[8:16])
		if high != 0 {
			return nil, nil, fmt.Errorf("uint value exceeds 64 bits")
		}
		return UInt(low), rest[16:], nil

	case TypeInt:
		if len(rest) < 16 {
			return nil, nil, fmt.Errorf("truncated int")
		}
		high := binary.BigEndian.Uint64(rest[:8])
		low := binary.BigEndian.Uint64(rest[8:16])
		switch {
		case high == 0 && low <= 1<<63-1:
			return Int(int64(low)), rest[16:], nil
		case high == ^uint64(0) && int64(low) < 0:
			return Int(int64(low)), rest[16:], nil
		default:
			return nil, nil, fmt.Errorf("int value exceeds 64 bits")
		}

	case TypeBoolTrue:
		return Bool(true), rest, nil
	case TypeBoolFalse:
		return Bool(false), rest, nil

	case TypeBuffer:
		payload, remaining, err := readLengthPrefixed(rest)
		if err != nil {
			return nil, nil, fmt.Errorf("buffer: %w", err)
		}
		return Buffer(payload), remaining, nil

	case TypeStringASCII:
		payload, remaining, err := readLengthPrefixed(rest)
		if err != nil {
			return nil, nil, fmt.Errorf("string-ascii: %w", err)
		}
		return StringASCII(payload), remaining, nil

	case TypeStringUTF8:
		payload, remaining, err := readLengthPrefixed(rest)
		if err != nil {
			return nil, nil, fmt.Errorf("string-utf8: %w", err)
		}
		return StringUTF8(payload), remaining, nil

	case TypeStandardPrincipal:
		addr, remaining, err := readPrincipal(rest)
		if err != nil {
			return nil, nil, err
		}
		return StandardPrincipal(addr), remaining, nil

	case TypeContractPrincipal:
		addr, remaining, err := readPrincipal(rest)
		if err != nil {
			return nil, nil, err
		}
		name, remaining, err := readName(remaining)
		if err != nil {
			return nil, nil, err
		}
		return ContractPrincipal{Address: addr, Name: name}, remaining, nil

	case TypeResponseOK:
		inner, remaining, err := decodeNext(rest)
		if err != nil {
			return nil, nil, err
		}
		return OK{Value: inner}, remaining, nil

	case TypeResponseErr:
		inner, remaining, err := decodeNext(rest)
		if err != nil {
			return nil, nil, err
		}
		return Err{Value: inner}, remaining, nil

	case TypeOptionalNone:
		return None{}, rest, nil

	case TypeOptionalSome:
		inner, remaining, err := decodeNext(rest)
		if err != nil {
			return nil, nil, err
		}
		return Some{Value: inner}, remaining, nil

	case TypeList:
		count, remaining, err := readCount(rest)
		if err != nil {
			return nil, nil, fmt.Errorf("list: %w", err)
		}
		list := make(List, 0, count)
		for i := 0; i < count; i++ {
			var item Value
			item, remaining, err = decodeNext(remaining)
			if err != nil {
				return nil, nil, err
			}
			list = append(list, item)
		}
		return list, remaining, nil

	case TypeTuple:
		count, remaining, err := readCount(rest)
		if err != nil {
			return nil, nil, fmt.Errorf("tuple: %w", err)
		}
		tuple := make(Tuple, count)
		for i := 0; i < count; i++ {
			var name string
			name, remaining, err = readName(remaining)
			if err != nil {
				return nil, nil, err
			}
			var item Value
			item, remaining, err = decodeNext(remaining)
			if err != nil {
				return nil, nil, err
			}
			tuple[name] = item
		}
		return tuple, remaining, nil

	default:
		return nil, nil, fmt.Errorf("unknown clarity type tag 0x%02x", byte(tag))
	}
}

func readLengthPrefixed(data []byte) ([]byte, []byte, error) {
	if len(data) < 4 {
		return nil, nil, fmt.Errorf("truncated length prefix")
	}
	length := int(binary.BigEndian.Uint32(data[:4]))
	if length > len(data)-4 {
		return nil, nil, fmt.Errorf("declared length %d exceeds input", length)
	}
	return data[4 : 4+length], data[4+length:], nil
}

func readCount(data []byte) (int, []byte, error) {
	if len(data) < 4 {
		return 0, nil, fmt.Errorf("truncated count")
	}
	count := int(binary.BigEndian.Uint32(data[:4]))
	if count > maxCollectionLength {
		return 0, nil, fmt.Errorf("collection length %d too large", count)
	}
	return count, data[4:], nil
}

func readPrincipal(data []byte) (string, []byte, error) {
	if len(data) < 1+c32.HashLength {
		return "", nil, fmt.Errorf("truncated principal")
	}
	addr, err := c32.EncodeAddress(data[0], data[1:1+c32.HashLength])
	if err != nil {
		return "", nil, fmt.Errorf("principal: %w", err)
	}
	return addr, data[1+c32.HashLength:], nil
}

func readName(data []byte) (string, []byte, error) {
	if len(data) < 1 {
		return "", nil, fmt.Errorf("truncated name")
	}
	length := int(data[0])
	if length == 0 || length > maxNameLength || length > len(data)-1 {
		return "", nil, fmt.Errorf("invalid name length %d", length)
	}
	return string(data[1 : 1+length]), data[1+length:], nil
}
