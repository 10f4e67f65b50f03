package tx

import (
	"context"
	"encoding/json"

	"github.com/terra-community/station-core/models"
)

// SignerKind classifies a signing failure. Password and hardware kinds are
// recoverable; anything else ends the attempt.
type SignerKind int

const (
	SignerIncorrectPassword SignerKind = iota
	SignerHardwareRejected
	SignerHardwareTimeout
	SignerOther
)

func (k SignerKind) String() string {
	switch k {
	case SignerIncorrectPassword:
		return "incorrect_password"
	case SignerHardwareRejected:
		return "hardware_rejected"
	case SignerHardwareTimeout:
		return "hardware_timeout"
	}
	return "other"
}

// SignerError reports why signing failed.
type SignerError struct {
	Kind    SignerKind
	Message string
}

func (e *SignerError) Error() string {
	if e.Message != "" {
		return "signer: " + e.Message
	}
	return "signer: " + e.Kind.String()
}

// Recoverable reports whether the caller can retry without rebuilding the
// attempt: re-enter the password, or re-confirm on the device.
func (e *SignerError) Recoverable() bool {
	switch e.Kind {
	case SignerIncorrectPassword, SignerHardwareRejected, SignerHardwareTimeout:
		return true
	}
	return false
}

// Signer produces signed transaction bytes from an unsigned value and the
// account info it was built against. Implementations are opaque to the
// pipeline: a local keystore checks the password, a hardware wallet
// ignores it and waits for device confirmation.
type Signer interface {
	// RequiresPassword reports whether Sign needs a non-empty password.
	RequiresPassword() bool
	// Sign returns signed transaction bytes, or a *SignerError.
	Sign(ctx context.Context, unsigned json.RawMessage, base models.Base, password string) (json.RawMessage, error)
}
