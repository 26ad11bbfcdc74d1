// Package c32 implements the Crockford-style base32 check encoding used for
// Stacks addresses. An address is 'S' + version character + c32(payload +
// 4-byte double-SHA256 checksum).
package c32

import (
	"crypto/sha256"
	"fmt"
	"math/big"
	"strings"

	"github.com/decred/dcrd/crypto/ripemd160"
)

const alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// Single-signature address versions.
const (
	VersionMainnet byte = 22 // 'P' -> addresses starting "SP"
	VersionTestnet byte = 26 // 'T' -> addresses starting "ST"
)

// HashLength is the byte length of an address payload (hash160).
const HashLength = 20

const checksumLength = 4

var digitValue = func() map[byte]byte {
	m := make(map[byte]byte, len(alphabet))
	for i := 0; i < len(alphabet); i++ {
		m[alphabet[i]] = byte(i)
	}
	return m
}()

var base = big.NewInt(int64(len(alphabet)))

// Encode renders data as a c32 string. Each leading zero byte maps to a
// leading '0' character, mirroring the reference implementation.
func Encode(data []byte) string {
	zeros := 0
	for zeros < len(data) && data[zeros] == 0 {
		zeros++
	}

	var sb strings.Builder
	n := new(big.Int).SetBytes(data)
	mod := new(big.Int)
	var digits []byte
	for n.Sign() > 0 {
		n.DivMod(n, base, mod)
		digits = append(digits, alphabet[mod.Int64()])
	}
	for i := 0; i < zeros; i++ {
		sb.WriteByte('0')
	}
	for i := len(digits) - 1; i >= 0; i-- {
		sb.WriteByte(digits[i])
	}
	return sb.String()
}

// Decode parses a c32 string back into bytes.
func Decode(s string) ([]byte, error) {
	s = normalize(s)

	zeros := 0
	for zeros < len(s) && s[zeros] == '0' {
		zeros++
	}

	n := new(big.Int)
	for i := 0; i < len(s); i++ {
		v, ok := digitValue[s[i]]
		if !ok {
			return nil, fmt.Errorf("invalid c32 character %q", s[i])
		}
		n.Mul(n, base)
		n.Add(n, big.NewInt(int64(v)))
	}

	out := make([]byte, zeros, zeros+(n.BitLen()+7)/8)
	return append(out, n.Bytes()...), nil
}

// EncodeAddress renders a version byte and hash160 payload as a Stacks address.
func EncodeAddress(version byte, hash []byte) (string, error) {
	if len(hash) != HashLength {
		return "", fmt.Errorf("address payload must be %d bytes, got %d", HashLength, len(hash))
	}
	if int(version) >= len(alphabet) {
		return "", fmt.Errorf("invalid address version %d", version)
	}
	sum := checksum(version, hash)
	payload := make([]byte, 0, HashLength+checksumLength)
	payload = append(payload, hash...)
	payload = append(payload, sum...)
	return "S" + string(alphabet[version]) + Encode(payload), nil
}

// DecodeAddress parses a Stacks address into its version and hash160 payload,
// verifying the checksum.
func DecodeAddress(addr string) (byte, []byte, error) {
	if len(addr) < 2 || addr[0] != 'S' {
		return 0, nil, fmt.Errorf("invalid address %q: missing S prefix", addr)
	}
	version, ok := digitValue[normalize(addr[1:2])[0]]
	if !ok {
		return 0, nil, fmt.Errorf("invalid address %q: bad version character", addr)
	}
	payload, err := Decode(addr[2:])
	if err != nil {
		return 0, nil, fmt.Errorf("invalid address %q: %w", addr, err)
	}
	if len(payload) != HashLength+checksumLength {
		return 0, nil, fmt.Errorf("invalid address %q: payload length %d", addr, len(payload))
	}
	hash := payload[:HashLength]
	want := checksum(version, hash)
	got := payload[HashLength:]
	for i := range want {
		if want[i] != got[i] {
			return 0, nil, fmt.Errorf("invalid address %q: checksum mismatch", addr)
		}
	}
	return version, hash, nil
}

// IsValidAddress reports whether addr parses and checksums correctly.
func IsValidAddress(addr string) bool {
	_, _, err := DecodeAddress(addr)
	return err == nil
}

// Hash160 computes ripemd160(sha256(data)), the address payload for a
// serialized public key.
func Hash160(data []byte) []byte {
	sha := sha256.Sum256(data)
	h := ripemd160.New()
	h.Write(sha[:])
	return h.Sum(nil)
}

// checksum is the first four bytes of sha256(sha256(version || hash)).
func checksum(version byte, hash []byte) []byte {
	first := sha256.Sum256(append([]byte{version}, hash...))
	second := sha256.Sum256(first[:])
	return second[:checksumLength]
}

// normalize uppercases and folds the homoglyphs the alphabet excludes.
func normalize(s string) string {
	s = strings.ToUpper(s)
	s = strings.ReplaceAll(s, "O", "0")
	s = strings.ReplaceAll(s, "L", "1")
	s = strings.ReplaceAll(s, "I", "1")
	return s
}
