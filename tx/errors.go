package tx

import (
	"encoding/json"
	"fmt"
)

// ErrorKind buckets every failure the pipeline can surface. The kind
// decides what the caller may do next: retry, re-prompt, or give up.
type ErrorKind int

const (
	// KindInputValidation is a local constraint failure. Never reaches
	// the network.
	KindInputValidation ErrorKind = iota
	// KindSimulationFailure is a rejected simulate call. The draft
	// survives; the caller may retry.
	KindSimulationFailure
	// KindSignerFailure wraps a SignerError.
	KindSignerFailure
	// KindBroadcastRejected is a failed broadcast HTTP call. The chain
	// state is unknown; resubmission needs a fresh sequence number.
	KindBroadcastRejected
	// KindExecutionReverted means broadcast succeeded but the transaction
	// itself failed on chain.
	KindExecutionReverted
)

func (k ErrorKind) String() string {
	switch k {
	case KindInputValidation:
		return "input_validation"
	case KindSimulationFailure:
		return "simulation_failure"
	case KindSignerFailure:
		return "signer_failure"
	case KindBroadcastRejected:
		return "broadcast_rejected"
	case KindExecutionReverted:
		return "execution_reverted"
	}
	return "unknown"
}

// Error is a pipeline failure with a display-ready message. The wrapped
// cause keeps diagnostics out of what the user sees.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Kind.String() + ": " + e.Message
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.cause }

func newError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

func validationError(format string, args ...any) *Error {
	return &Error{Kind: KindInputValidation, Message: fmt.Sprintf(format, args...)}
}

// messageLog is one per-message entry of an array-form raw_log.
type messageLog struct {
	Success bool   `json:"success"`
	Log     string `json:"log"`
}

// ParseRawLog extracts the failure message embedded in a broadcast
// raw_log. The chain reports per-message results as a JSON array whose
// failed entry carries a nested JSON log with a message field; some nodes
// return a plain object instead. An empty return means the log carries no
// failure and the transaction executed.
func ParseRawLog(raw string) string {
	if raw == "" {
		return ""
	}

	var entries []messageLog
	if err := json.Unmarshal([]byte(raw), &entries); err == nil {
		for _, entry := range entries {
			if entry.Success {
				continue
			}
			var nested struct {
				Message string `json:"message"`
			}
			if err := json.Unmarshal([]byte(entry.Log), &nested); err == nil && nested.Message != "" {
				return nested.Message
			}
			return entry.Log
		}
		return ""
	}

	var object struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(raw), &object); err == nil {
		return object.Message
	}
	return ""
}
