package rpc

import (
	"errors"
	"fmt"
)

// Error codes returned by the firmware inside otherwise successful
// HTTP responses. The set was collected against live routers; it
// extends the reserved JSON-RPC range with GL.iNet specific codes.
const (
	CodeInvalidSession     = -1
	CodeServerMustStop     = -200
	CodeNull               = -204
	CodeModemNotFound      = -250
	CodeModemIDMissing     = -251
	CodePhoneNumberMissing = -260
	CodeMessageMissing     = -261
	CodeAccessDenied       = -32000
	CodeMethodNotFound     = -32601
)

var errorMessages = map[int]string{
	CodeInvalidSession:     "Invalid user, permission denied or not logged in!",
	CodeServerMustStop:     "Server must be stopped server before starting client!!!",
	CodeNull:               "Null",
	CodeModemNotFound:      "Modem not found",
	CodeModemIDMissing:     "modem_id missing",
	CodePhoneNumberMissing: "Destination phone number missing",
	CodeMessageMissing:     "Message content missing",
	CodeAccessDenied:       "Access denied",
	CodeMethodNotFound:     "Method not found",
}

// ErrorMessage returns the known message for a firmware error code, or
// "null" when the code is undocumented. Responses omit the message
// field often enough that callers should not rely on it.
func ErrorMessage(code int) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "null"
}

// RPCError is an error object returned by the router. The call reached
// the firmware and was rejected there.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewRPCError builds an RPCError, filling in the documented message
// when the response carried none.
func NewRPCError(code int, message string) *RPCError {
	if message == "" {
		message = ErrorMessage(code)
	}
	return &RPCError{Code: code, Message: message}
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// TransportError wraps a failure that happened before the router
// produced a response: connection refused, timeout, malformed body.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError wraps err as a transport failure for operation op.
func NewTransportError(op string, err error) *TransportError {
	return &TransportError{Op: op, Err: err}
}

// AsRPCError unwraps err to the router error object, if any.
func AsRPCError(err error) (*RPCError, bool) {
	var rpcErr *RPCError
	if errors.As(err, &rpcErr) {
		return rpcErr, true
	}
	return nil, false
}

// AsTransportError unwraps err to the transport failure, if any.
func AsTransportError(err error) (*TransportError, bool) {
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return transportErr, true
	}
	return nil, false
}

// IsAuthError reports whether err is an authentication failure: an
// expired session or a rejected login.
func IsAuthError(err error) bool {
	rpcErr, ok := AsRPCError(err)
	return ok && (rpcErr.Code == CodeInvalidSession || rpcErr.Code == CodeAccessDenied)
}

// IsSessionError reports whether err means the session id is invalid
// or expired and a fresh login is needed.
func IsSessionError(err error) bool {
	rpcErr, ok := AsRPCError(err)
	return ok && rpcErr.Code == CodeInvalidSession
}

// IsMethodNotFound reports whether the firmware does not implement the
// requested method, which is how older firmwares answer newer calls.
func IsMethodNotFound(err error) bool {
	rpcErr, ok := AsRPCError(err)
	return ok && rpcErr.Code == CodeMethodNotFound
}
