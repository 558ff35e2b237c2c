package tip

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies a failed submission.
type ErrorKind string

// Failure kinds.
const (
	KindValidation ErrorKind = "validation"
	KindAdapter    ErrorKind = "adapter"
	KindUnknown    ErrorKind = "unknown"
)

// Status messages shown for validation and unknown failures.
const (
	MsgWalletNotConnected = "Wallet not connected"
	MsgEnterRecipient     = "Enter recipient address"
	MsgEnterValidAmount   = "Enter valid amount"
	MsgUnsupportedToken   = "Select a supported token"
	MsgInvalidRecipient   = "Invalid recipient address"
	MsgFeeReceiverMissing = "Fee receiver not configured"
	MsgInvalidFeeReceiver = "Invalid fee receiver address"
	MsgTransactionFailed  = "Transaction failed."
)

// ValidationError is a local, recoverable input problem. No adapter call is
// made when one is returned.
type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func invalid(msg string, cause error) *ValidationError {
	return &ValidationError{Message: msg, Cause: cause}
}

// AdapterError wraps a failure reported by the wallet session or the read
// client. Its message is shown verbatim.
type AdapterError struct {
	Err error
}

func (e *AdapterError) Error() string {
	return e.Err.Error()
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}

// UnknownError is anything else, including a panic inside the adapter.
type UnknownError struct {
	Cause any
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("unexpected failure: %v", e.Cause)
}

func kindOf(err error) ErrorKind {
	var v *ValidationError
	if errors.As(err, &v) {
		return KindValidation
	}
	var a *AdapterError
	if errors.As(err, &a) {
		return KindAdapter
	}
	return KindUnknown
}

func messageOf(err error) string {
	switch kindOf(err) {
	case KindValidation, KindAdapter:
		return err.Error()
	default:
		return MsgTransactionFailed
	}
}
