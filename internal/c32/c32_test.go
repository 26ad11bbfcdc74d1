package c32

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		{0x00},
		{0x00, 0x00, 0x01},
		{0xde, 0xad, 0xbe, 0xef},
		bytes.Repeat([]byte{0xff}, 20),
		append([]byte{0, 0}, bytes.Repeat([]byte{0xab}, 18)...),
	}
	for _, data := range cases {
		decoded, err := Decode(Encode(data))
		require.NoError(t, err)
		assert.Equal(t, data, decoded)
	}
}

func TestDecodeNormalizes(t *testing.T) {
	data := []byte{0xde, 0xad, 0xbe, 0xef}
	encoded := Encode(data)

	// Lowercase and homoglyphs must fold back to the canonical alphabet.
	// Digits are left alone; only letters have a case to fold.
	folded := ""
	for _, c := range encoded {
		switch {
		case c == '0':
			folded += "O"
		case c == '1':
			folded += "L"
		case c >= 'A' && c <= 'Z':
			folded += string(c + ('a' - 'A'))
		default:
			folded += string(c)
		}
	}
	decoded, err := Decode(folded)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestDecodeRejectsInvalidCharacters(t *testing.T) {
	_, err := Decode("AB*CD")
	require.Error(t, err)
}

func TestAddressRoundTrip(t *testing.T) {
	hash := bytes.Repeat([]byte{0x42}, HashLength)

	for _, version := range []byte{VersionMainnet, VersionTestnet} {
		addr, err := EncodeAddress(version, hash)
		require.NoError(t, err)

		gotVersion, gotHash, err := DecodeAddress(addr)
		require.NoError(t, err)
		assert.Equal(t, version, gotVersion)
		assert.Equal(t, hash, gotHash)
		assert.True(t, IsValidAddress(addr))
	}
}

func TestAddressPrefixes(t *testing.T) {
	hash := bytes.Repeat([]byte{0x01}, HashLength)

	mainnet, err := EncodeAddress(VersionMainnet, hash)
	require.NoError(t, err)
	assert.Equal(t, "SP", mainnet[:2])

	testnet, err := EncodeAddress(VersionTestnet, hash)
	require.NoError(t, err)
	assert.Equal(t, "ST", testnet[:2])
}

func TestDecodeAddressRejectsTamperedChecksum(t *testing.T) {
	hash := bytes.Repeat([]byte{0x42}, HashLength)
	addr, err := EncodeAddress(VersionMainnet, hash)
	require.NoError(t, err)

	// Flip the last character to another alphabet member.
	last := addr[len(addr)-1]
	replacement := byte('2')
	if last == replacement {
		replacement = '3'
	}
	tampered := addr[:len(addr)-1] + string(replacement)
	assert.False(t, IsValidAddress(tampered))
}

func TestEncodeAddressRejectsBadPayload(t *testing.T) {
	_, err := EncodeAddress(VersionMainnet, []byte{0x01, 0x02})
	require.Error(t, err)
}

func TestDecodeAddressRejectsMissingPrefix(t *testing.T) {
	_, _, err := DecodeAddress("XP000")
	require.Error(t, err)
	_, _, err = DecodeAddress("")
	require.Error(t, err)
}
