// Package wallet turns user intents into transaction drafts: transfers,
// swaps, staking, governance, and raw contract execution. Each constructor
// validates its inputs locally, builds the endpoint payload, and attaches
// the affordability predicate the pipeline enforces at submit time.
package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/terra-community/station-core/chain"
)

// ErrInvalidInput marks a local constraint failure. Drafts with invalid
// input are never built, so nothing invalid reaches the network.
var ErrInvalidInput = errors.New("invalid input")

func inputError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// MaxMemoBytes is the chain's memo size limit.
const MaxMemoBytes = 256

// ValidateTerraAddress checks bech32 account address shape and checksum.
func ValidateTerraAddress(address string) error {
	if address == "" {
		return inputError("address is required")
	}
	if !chain.IsAddress(address) {
		return inputError("address %q is invalid", address)
	}
	return nil
}

// ValidateEthereumAddress checks the 0x-prefixed hex shape used by the
// shuttle bridges.
func ValidateEthereumAddress(address string) error {
	if len(address) != 42 || !strings.HasPrefix(address, "0x") {
		return inputError("address %q is not an Ethereum address", address)
	}
	for _, c := range address[2:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return inputError("address %q is not an Ethereum address", address)
		}
	}
	return nil
}

// ValidateMemo enforces the size limit and rejects angle brackets, which
// some explorers render unescaped.
func ValidateMemo(memo string) error {
	if len(memo) > MaxMemoBytes {
		return inputError("memo exceeds %d bytes", MaxMemoBytes)
	}
	if strings.ContainsAny(memo, "<>") {
		return inputError("memo must not contain angle brackets")
	}
	return nil
}

// ValidateAmount requires a positive integer amount in micro-units.
func ValidateAmount(amount string) error {
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return inputError("amount %q is not a number", amount)
	}
	if !parsed.IsInteger() {
		return inputError("amount must be within 6 decimal points")
	}
	if !parsed.IsPositive() {
		return inputError("amount must be positive")
	}
	return nil
}

// ValidateExecuteMsg requires a JSON object, the only shape a contract
// accepts.
func ValidateExecuteMsg(msg string) error {
	var object map[string]json.RawMessage
	if err := json.Unmarshal([]byte(msg), &object); err != nil {
		return inputError("execute msg is not a JSON object")
	}
	return nil
}
