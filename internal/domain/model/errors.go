package model

import "errors"

var (
	// ErrUnsupportedOperation is returned for hosted payment pages and
	// gateway notifications.
	ErrUnsupportedOperation = errors.New("operation not supported by the Moneris plugin")
	// ErrOriginalTransactionNotFound is returned when a capture, void or
	// refund has no prior transaction to reference.
	ErrOriginalTransactionNotFound = errors.New("original transaction not found")
	// ErrInvalidRequest wraps validation failures of inbound calls.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrGatewayFailure wraps transport and protocol failures talking to
	// the gateway. No row is written when it is returned.
	ErrGatewayFailure = errors.New("gateway call failed")
)
