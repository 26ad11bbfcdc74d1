package clarity

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stxswap/internal/c32"
)

func testAddress(t *testing.T, fill byte) string {
	t.Helper()
	addr, err := c32.EncodeAddress(c32.VersionMainnet, bytes.Repeat([]byte{fill}, c32.HashLength))
	require.NoError(t, err)
	return addr
}

func roundTrip(t *testing.T, v Value) Value {
	t.Helper()
	data, err := Encode(v)
	require.NoError(t, err)
	decoded, err := Decode(data)
	require.NoError(t, err)
	return decoded
}

func TestUIntRoundTrip(t *testing.T) {
	for _, v := range []UInt{0, 1, 1_000_000, 1<<64 - 1} {
		assert.Equal(t, v, roundTrip(t, v))
	}
}

func TestUIntWireFormat(t *testing.T) {
	data, err := Encode(UInt(6))
	require.NoError(t, err)
	// Tag 0x01 followed by 16 big-endian bytes.
	want := append([]byte{0x01}, make([]byte, 15)...)
	want = append(want, 0x06)
	assert.Equal(t, want, data)
}

func TestIntRoundTrip(t *testing.T) {
	for _, v := range []Int{0, 42, -1, -1 << 62, 1<<62 + 7} {
		assert.Equal(t, v, roundTrip(t, v))
	}
}

func TestBoolAndOptionals(t *testing.T) {
	assert.Equal(t, Bool(true), roundTrip(t, Bool(true)))
	assert.Equal(t, Bool(false), roundTrip(t, Bool(false)))
	assert.Equal(t, None{}, roundTrip(t, None{}))
	assert.Equal(t, Some{Value: UInt(7)}, roundTrip(t, Some{Value: UInt(7)}))
}

func TestPrincipals(t *testing.T) {
	addr := testAddress(t, 0x42)

	assert.Equal(t, StandardPrincipal(addr), roundTrip(t, StandardPrincipal(addr)))

	cp := ContractPrincipal{Address: addr, Name: "welshcorgicoin-token"}
	assert.Equal(t, cp, roundTrip(t, cp))
	assert.Equal(t, addr+".welshcorgicoin-token", cp.String())
}

func TestEncodeRejectsBadPrincipal(t *testing.T) {
	_, err := Encode(StandardPrincipal("not-an-address"))
	require.Error(t, err)
}

func TestResponseTupleRoundTrip(t *testing.T) {
	addr := testAddress(t, 0x01)
	v := OK{Value: Tuple{
		"ustx":           UInt(10_000_000),
		"amount":         UInt(1_000_000_000),
		"stx-sender":     StandardPrincipal(addr),
		"open":           Bool(true),
		"expired-height": None{},
		"ft": ContractPrincipal{
			Address: addr,
			Name:    "tokensoft-token-v4k68639zxz",
		},
	}}
	assert.Equal(t, v, roundTrip(t, v))
}

func TestListAndStrings(t *testing.T) {
	v := List{UInt(1), StringASCII("open"), StringUTF8("μSTX"), Buffer{0xde, 0xad}}
	assert.Equal(t, v, roundTrip(t, v))
}

func TestTupleKeysSortedOnWire(t *testing.T) {
	a, err := Encode(Tuple{"b": UInt(2), "a": UInt(1)})
	require.NoError(t, err)
	b, err := Encode(Tuple{"a": UInt(1), "b": UInt(2)})
	require.NoError(t, err)
	assert.Equal(t, a, b)

	// "a" must serialize before "b": name length 1, then the name byte.
	idx := bytes.Index(a, []byte{0x01, 'a'})
	assert.NotEqual(t, -1, idx)
	assert.Less(t, idx, bytes.Index(a, []byte{0x01, 'b'}))
}

func TestDecodeHex(t *testing.T) {
	// (ok u6) as returned for get-decimals.
	v, err := DecodeHex("0x0701" + "000000000000000000000000000000" + "06")
	require.NoError(t, err)
	assert.Equal(t, OK{Value: UInt(6)}, v)
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string][]byte{
		"empty":           {},
		"unknown tag":     {0x7f},
		"truncated uint":  {0x01, 0x00},
		"oversized uint":  append([]byte{0x01, 0x01}, make([]byte, 15)...),
		"trailing bytes":  {0x03, 0x03},
		"truncated tuple": {0x0c, 0x00, 0x00, 0x00, 0x01},
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(data)
			require.Error(t, err)
		})
	}
}
