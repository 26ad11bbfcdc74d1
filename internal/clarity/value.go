// Package clarity implements the Clarity value wire encoding used by
// read-only contract calls and contract-call transaction arguments. Only the
// value kinds the SDK exchanges with the swap contracts are supported.
package clarity

// Type is the one-byte serialization tag of a Clarity value.
type Type byte

// Serialization tags.
const (
	TypeInt               Type = 0x00
	TypeUInt              Type = 0x01
	TypeBuffer            Type = 0x02
	TypeBoolTrue          Type = 0x03
	TypeBoolFalse         Type = 0x04
	TypeStandardPrincipal Type = 0x05
	TypeContractPrincipal Type = 0x06
	TypeResponseOK        Type = 0x07
	TypeResponseErr       Type = 0x08
	TypeOptionalNone      Type = 0x09
	TypeOptionalSome      Type = 0x0a
	TypeList              Type = 0x0b
	TypeTuple             Type = 0x0c
	TypeStringASCII       Type = 0x0d
	TypeStringUTF8        Type = 0x0e
)

// Value is a Clarity value.
type Value interface {
	clarityType() Type
}

// UInt is a Clarity uint. Amounts the SDK handles fit in 64 bits; decoding a
// wider value is an error.
type UInt uint64

// Int is a Clarity int, restricted to the int64 range on decode.
type Int int64

// Bool is a Clarity bool.
type Bool bool

// Buffer is a Clarity byte buffer.
type Buffer []byte

// StringASCII is a Clarity string-ascii.
type StringASCII string

// StringUTF8 is a Clarity string-utf8.
type StringUTF8 string

// StandardPrincipal is a c32-encoded account address.
type StandardPrincipal string

/// ContractPrincipal is a contract identifier: a deployer address plus a
// contract name.
type ContractPrincipal struct {
	Address string
	Name    string
}

// String renders the principal as "address.name".
func (p ContractPrincipal) String() string { return p.Address + "." + p.Name }

// OK is a (response ok ...) wrapper.
type OK struct{ Value Value }

// Err is a (response err ...) wrapper.
type Err struct{ Value Value }

// Some is an (optional some ...) wrapper.
type Some struct{ Value Value }

// None is the empty optional.
type None struct{}

// List is a Clarity list.
type List []Value

// Tuple is a Clarity tuple. Keys are serialized in lexicographic order.
type Tuple map[string]Value

func (UInt) clarityType() Type              { return TypeUInt }
func (Int) clarityType() Type               { return TypeInt }
func (Buffer) clarityType() Type            { return TypeBuffer }
func (StringASCII) clarityType() Type       { return TypeStringASCII }
func (StringUTF8) clarityType() Type        { return TypeStringUTF8 }
func (StandardPrincipal) clarityType() Type { return TypeStandardPrincipal }
func (ContractPrincipal) clarityType() Type { return TypeContractPrincipal }
func (OK) clarityType() Type                { return TypeResponseOK }
func (Err) clarityType() Type               { return TypeResponseErr }
func (Some) clarityType() Type              { return TypeOptionalSome }
func (None) clarityType() Type              { return TypeOptionalNone }
func (List) clarityType() Type              { return TypeList }
func (Tuple) clarityType() Type             { return TypeTuple }

func (b Bool) clarityType() Type {
	if b {
		return TypeBoolTrue
	}
	return TypeBoolFalse
}
