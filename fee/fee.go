// Package fee converts gas estimates into fee amounts and back using the
// per-denomination gas price table of the active network. The tables differ
// by more than an order of magnitude between mainnet and testnet, so the
// table is always selected off the chain context, never assumed.
package fee

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/terra-community/station-core/chain"
	"github.com/terra-community/station-core/models"
)

// ErrNoGasPrice reports a denomination without a gas price entry. Fees
// cannot be paid in such a denomination and callers must exclude it from
// fee selection instead of treating the price as zero.
var ErrNoGasPrice = errors.New("no gas price for denom")

var gasPricesMainnet = map[string]string{
	"uluna": "0.00506",
	"uusd":  "0.0015",
	"usdr":  "0.00102",
	"ukrw":  "1.7805",
	"umnt":  "4.31626",
}

var gasPricesTestnet = map[string]string{
	"uluna": "0.15",
	"uusd":  "0.15",
	"usdr":  "0.1018",
	"ukrw":  "178.05",
	"umnt":  "431.6259",
}

// Calculator computes fees for one network.
type Calculator struct {
	prices map[string]string
}

// NewCalculator returns the calculator for the given chain.
func NewCalculator(chainCtx chain.Context) *Calculator {
	prices := gasPricesTestnet
	if chainCtx.IsMainnet() {
		prices = gasPricesMainnet
	}
	return &Calculator{prices: prices}
}

func (c *Calculator) price(denom string) (decimal.Decimal, error) {
	raw, ok := c.prices[denom]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrNoGasPrice, denom)
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("bad gas price table entry for %q: %w", denom, err)
	}
	return price, nil
}

// GasPrice returns the gas price for a denomination.
func (c *Calculator) GasPrice(denom string) (models.Coin, error) {
	raw, ok := c.prices[denom]
	if !ok {
		return models.Coin{}, fmt.Errorf("%w: %q", ErrNoGasPrice, denom)
	}
	return models.Coin{Amount: raw, Denom: denom}, nil
}

// FromGas returns ceil(gasUnits * gasPrice[denom]) as a fee amount.
func (c *Calculator) FromGas(denom, gasUnits string) (string, error) {
	price, err := c.price(denom)
	if err != nil {
		return "", err
	}
	gas, err := decimal.NewFromString(gasUnits)
	if err != nil {
		return "", fmt.Errorf("bad gas amount %q: %w", gasUnits, err)
	}
	return gas.Mul(price).Ceil().String(), nil
}

// ToGas returns floor(feeAmount / gasPrice[denom]) as a gas quantity.
func (c *Calculator) ToGas(denom, feeAmount string) (string, error) {
	price, err := c.price(denom)
	if err != nil {
		return "", err
	}
	amount, err := decimal.NewFromString(feeAmount)
	if err != nil {
		return "", fmt.Errorf("bad fee amount %q: %w", feeAmount, err)
	}
	return amount.DivRound(price, 18).Floor().String(), nil
}

// Payable reports whether fees can be paid in the denomination.
func (c *Calculator) Payable(denom string) bool {
	_, ok := c.prices[denom]
	return ok
}

// Denoms lists the fee-payable denominations in a stable order.
func (c *Calculator) Denoms() []string {
	denoms := make([]string, 0, len(c.prices))
	for denom := range c.prices {
		denoms = append(denoms, denom)
	}
	sort.Strings(denoms)
	return denoms
}
