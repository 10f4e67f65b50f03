package wallet

import (
	"github.com/shopspring/decimal"

	"github.com/terra-community/station-core/fee"
	"github.com/terra-community/station-core/lcd"
	"github.com/terra-community/station-core/models"
)

func available(balances []lcd.Balance, denom string) decimal.Decimal {
	for _, balance := range balances {
		if balance.Denom == denom {
			if amount, err := decimal.NewFromString(balance.Available); err == nil {
				return amount
			}
		}
	}
	return decimal.Zero
}

func delegatable(balances []lcd.Balance, denom string) decimal.Decimal {
	for _, balance := range balances {
		if balance.Denom == denom {
			if amount, err := decimal.NewFromString(balance.Delegatable); err == nil {
				return amount
			}
		}
	}
	return decimal.Zero
}

func amountOf(coin models.Coin) decimal.Decimal {
	amount, err := decimal.NewFromString(coin.Amount)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// FeeDenomList returns the fee denominations the account can actually
// pay in: priced denominations with a positive available balance, in the
// calculator's order.
func FeeDenomList(balances []lcd.Balance, fees *fee.Calculator) []string {
	var list []string
	for _, denom := range fees.Denoms() {
		if available(balances, denom).IsPositive() {
			list = append(list, denom)
		}
	}
	return list
}

// IsFeeAvailable reports whether the fee alone is covered.
func IsFeeAvailable(txFee models.Coin, balances []lcd.Balance) bool {
	return amountOf(txFee).LessThanOrEqual(available(balances, txFee.Denom))
}

// IsAvailable reports whether a transfer of amount plus tax plus fee fits
// the balances. When the fee shares the transfer denomination all three
// come out of one balance; otherwise the fee is checked separately.
func IsAvailable(amount, tax, txFee models.Coin, balances []lcd.Balance) bool {
	spend := amountOf(amount).Add(amountOf(tax))
	if amount.Denom == txFee.Denom {
		return spend.Add(amountOf(txFee)).LessThanOrEqual(available(balances, amount.Denom))
	}
	return spend.LessThanOrEqual(available(balances, amount.Denom)) &&
		IsFeeAvailable(txFee, balances)
}

// IsDelegatable reports whether a delegation fits the delegatable balance
// with the fee still payable from the available one.
func IsDelegatable(amount, txFee models.Coin, balances []lcd.Balance) bool {
	if !amountOf(amount).LessThanOrEqual(delegatable(balances, amount.Denom)) {
		return false
	}
	return IsFeeAvailable(txFee, balances)
}
