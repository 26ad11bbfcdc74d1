package stxswap

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"stxswap/internal/chain"
)

func TestErrorMessageNamesOperation(t *testing.T) {
	err := opErrf("create bid offer", KindValidation, "unsupported trading pair: %s", "DOGE-STX")
	assert.Equal(t, "failed to create bid offer: unsupported trading pair: DOGE-STX", err.Error())
}

func TestOpErrDoesNotDoubleWrap(t *testing.T) {
	inner := opErrf("fetch nonce", KindTransport, "status 502")
	outer := opErr("create bid offer", KindUnknown, inner)
	assert.Same(t, inner, outer)
	assert.Equal(t, KindTransport, ErrorKind(outer))
}

func TestErrorKindUnwrapsThroughChain(t *testing.T) {
	err := fmt.Errorf("context: %w", opErrf("cancel ask offer", KindUnauthorized, "not yours"))
	assert.Equal(t, KindUnauthorized, ErrorKind(err))
	assert.Equal(t, KindUnknown, ErrorKind(errors.New("plain")))
}

func TestChainErrKindClassification(t *testing.T) {
	assert.Equal(t, KindBroadcast, chainErrKind(&chain.RejectedError{Message: "bad"}))
	assert.Equal(t, KindBroadcast, chainErrKind(fmt.Errorf("wrap: %w", &chain.RejectedError{Message: "bad"})))
	assert.Equal(t, KindNotFound, chainErrKind(fmt.Errorf("get-swap: %w", chain.ErrSwapNotFound)))
	assert.Equal(t, KindTransport, chainErrKind(errors.New("connection refused")))
}
