package rpc

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRPCError_FillsKnownMessage(t *testing.T) {
	err := NewRPCError(CodeAccessDenied, "")
	assert.Equal(t, "Access denied", err.Message)
	assert.Equal(t, "rpc error -32000: Access denied", err.Error())
}

func TestNewRPCError_KeepsProvidedMessage(t *testing.T) {
	err := NewRPCError(CodeModemNotFound, "no such modem")
	assert.Equal(t, "no such modem", err.Message)
}

func TestErrorMessage_UnknownCode(t *testing.T) {
	assert.Equal(t, "null", ErrorMessage(-999))
}

func TestAsRPCError(t *testing.T) {
	rpcErr := NewRPCError(CodeMethodNotFound, "")
	wrapped := fmt.Errorf("kmwan.get_status: %w", rpcErr)

	got, ok := AsRPCError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeMethodNotFound, got.Code)

	_, ok = AsRPCError(errors.New("plain"))
	assert.False(t, ok)

	_, ok = AsRPCError(nil)
	assert.False(t, ok)
}

func TestAsTransportError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewTransportError("post /rpc", cause)

	got, ok := AsTransportError(fmt.Errorf("fetch: %w", err))
	require.True(t, ok)
	assert.Equal(t, "post /rpc", got.Op)
	assert.ErrorIs(t, got, cause)

	_, ok = AsTransportError(NewRPCError(CodeNull, ""))
	assert.False(t, ok)
}

func TestTransportError_NoCause(t *testing.T) {
	err := &TransportError{Op: "dial"}
	assert.Equal(t, "dial", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestIsAuthError(t *testing.T) {
	assert.True(t, IsAuthError(NewRPCError(CodeInvalidSession, "")))
	assert.True(t, IsAuthError(NewRPCError(CodeAccessDenied, "")))
	assert.False(t, IsAuthError(NewRPCError(CodeModemNotFound, "")))
	assert.False(t, IsAuthError(errors.New("plain")))
}

func TestIsSessionError(t *testing.T) {
	assert.True(t, IsSessionError(NewRPCError(CodeInvalidSession, "")))
	assert.False(t, IsSessionError(NewRPCError(CodeAccessDenied, "")))
}

func TestIsMethodNotFound(t *testing.T) {
	assert.True(t, IsMethodNotFound(NewRPCError(CodeMethodNotFound, "")))
	assert.False(t, IsMethodNotFound(NewRPCError(CodeInvalidSession, "")))
}
