package chain

import (
	"strings"

	"github.com/btcsuite/btcutil/bech32"
)

// Denoms the stable tables know about. The staking/gas token is uluna; the
// remaining native denoms are the stablecoins.
const (
	DenomLuna = "uluna"
	DenomUSD  = "uusd"
)

// IsNativeDenom reports whether the string names a native chain
// denomination (the staking token or a four-letter stable denom).
func IsNativeDenom(s string) bool {
	return strings.HasPrefix(s, "u") && (s == DenomLuna || len(s) == 4)
}

// IsNativeTerra reports whether the string names a native stablecoin, i.e. a
// native denom other than the staking token.
func IsNativeTerra(s string) bool {
	return IsNativeDenom(s) && s != DenomLuna
}

// IsAddress reports whether the string is a valid bech32 account or contract
// address for this chain.
func IsAddress(s string) bool {
	if len(s) != 44 || !strings.HasPrefix(s, "terra") {
		return false
	}
	prefix, _, err := bech32.Decode(s)
	return err == nil && prefix == "terra"
}

// IsValidatorAddress reports whether the string is a valid bech32 validator
// operator address.
func IsValidatorAddress(s string) bool {
	if !strings.HasPrefix(s, "terravaloper") {
		return false
	}
	prefix, _, err := bech32.Decode(s)
	return err == nil && prefix == "terravaloper"
}
