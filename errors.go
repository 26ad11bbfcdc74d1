package stxswap

import (
	"errors"
	"fmt"

	"stxswap/internal/chain"
)

// Kind classifies an operation failure.
type Kind int

// Failure kinds.
const (
	KindUnknown Kind = iota
	KindValidation
	KindTransport
	KindDecode
	KindUnauthorized
	KindBroadcast
	KindNotFound
)

// String returns the kind label.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	case KindUnauthorized:
		return "unauthorized"
	case KindBroadcast:
		return "broadcast"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is the single wrapper every public operation applies to a failure.
// Op names the operation in user terms; Err carries the underlying cause.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// ErrorKind extracts the failure kind from an error chain.
func ErrorKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// opErr wraps a cause with the operation name and kind. Errors already
// wrapped by an inner public operation pass through unchanged.
func opErr(op string, kind Kind, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Op: op, Kind: kind, Err: err}
}

// opErrf builds a leaf failure for the operation.
func opErrf(op string, kind Kind, format string, args ...interface{}) error {
	return &Error{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// chainErrKind maps a node interaction failure to a kind: a structured
// rejection is a broadcast failure, a contract-level miss is not-found, and
// everything else is transport.
func chainErrKind(err error) Kind {
	var rejected *chain.RejectedError
	if errors.As(err, &rejected) {
		return KindBroadcast
	}
	if errors.Is(err, chain.ErrSwapNotFound) {
		return KindNotFound
	}
	return KindTransport
}
