package numeric

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/terra-community/station-core/models"
)

// microPerUnit is the number of micro-units per display unit.
var microPerUnit = decimal.NewFromInt(1_000_000)

// Fixed formats a decimal string truncated and padded to exactly p decimal
// places, without thousands separators. Truncation, never rounding: the
// display must not show more value than is actually held.
func Fixed(s string, p int32) string {
	d, err := decimal.NewFromString(Or(s, "0"))
	if err != nil {
		d = decimal.Zero
	}
	return d.Truncate(p).StringFixed(p)
}

// Decimal is Fixed with thousands separators in the integer part.
func Decimal(s string, p int32) string {
	return group(Fixed(s, p))
}

// Amount converts a micro-unit amount string to display units, truncated to
// six decimal places, or to an integer when integer is true.
func Amount(amount string, integer bool) string {
	d, err := decimal.NewFromString(Or(amount, "0"))
	if err != nil {
		d = decimal.Zero
	}
	places := int32(6)
	if integer {
		places = 0
	}
	return Decimal(d.Div(microPerUnit).String(), places)
}

// PlainAmount is Amount without thousands separators, for values that feed
// further parsing rather than a screen.
func PlainAmount(amount string, integer bool) string {
	d, err := decimal.NewFromString(Or(amount, "0"))
	if err != nil {
		d = decimal.Zero
	}
	places := int32(6)
	if integer {
		places = 0
	}
	return Fixed(d.Div(microPerUnit).String(), places)
}

// DenomUnit maps a native denomination to its display unit: uluna is Luna,
// every other stable denom takes its ISO prefix plus T (ukrw -> KRT).
// Unknown or non-native denominations map to the empty string.
func DenomUnit(denom string) string {
	if denom == "" || !strings.HasPrefix(denom, "u") {
		return ""
	}
	if denom == "uluna" {
		return "Luna"
	}
	if len(denom) < 3 {
		return ""
	}
	return strings.ToUpper(denom[1:3] + "t")
}

// Display formats a coin for presentation.
func Display(c models.Coin, integer bool) models.DisplayCoin {
	return models.DisplayCoin{
		Value: Amount(c.Amount, integer),
		Unit:  DenomUnit(c.Denom),
	}
}

// CoinString renders a coin as "value unit".
func CoinString(c models.Coin, integer bool) string {
	d := Display(c, integer)
	return d.Value + " " + d.Unit
}

// ToAmount converts user display input to a micro-unit amount string.
// Empty input counts as zero.
func ToAmount(input string) (string, error) {
	d, err := decimal.NewFromString(Or(input, "0"))
	if err != nil {
		return "", ErrInvalidNumber
	}
	return d.Mul(microPerUnit).String(), nil
}

// ToInput converts a micro-unit amount string to display input.
func ToInput(amount string) (string, error) {
	d, err := decimal.NewFromString(Or(amount, "0"))
	if err != nil {
		return "", ErrInvalidNumber
	}
	return d.Div(microPerUnit).String(), nil
}

// TruncateAddress shortens an address keeping head and tail characters,
// e.g. "terra1srw...098jdej".
func TruncateAddress(address string, head, tail int) string {
	if address == "" {
		return ""
	}
	if len(address) <= head+tail {
		return address
	}
	return address[:head] + "..." + address[len(address)-tail:]
}

// group inserts thousands separators into the integer part of a plain
// decimal string.
func group(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if fracPart != "" {
		out += "." + fracPart
	}
	if neg {
		out = "-" + out
	}
	return out
}
