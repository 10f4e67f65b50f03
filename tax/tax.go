// Package tax computes the protocol transfer tax owed on native sends:
// min(amount * rate, cap), ceiling-rounded. Rate and cap come from the
// treasury module and are cached for the calculator's lifetime.
package tax

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/terra-community/station-core/chain"
	"github.com/terra-community/station-core/models"
	"github.com/terra-community/station-core/numeric"
)

// Querier is the treasury query surface the calculator needs.
type Querier interface {
	GetTaxRate(ctx context.Context) (string, error)
	GetTaxCap(ctx context.Context, denom string) (string, error)
}

// Calculator caches tax parameters and applies the chain's exemption rules.
type Calculator struct {
	querier Querier

	mu   sync.Mutex
	rate *decimal.Decimal
	caps map[string]decimal.Decimal
}

// NewCalculator creates a calculator backed by the given treasury querier.
func NewCalculator(querier Querier) *Calculator {
	return &Calculator{
		querier: querier,
		caps:    make(map[string]decimal.Decimal),
	}
}

// Exempt reports whether transfers of the denomination carry no tax: the
// staking/gas token is never taxed, and contract tokens are outside the
// treasury module entirely. Native market swaps also bypass the tax module;
// that carve-out is the venue's, applied by the swap flow, not here.
func Exempt(denom string) bool {
	return denom == chain.DenomLuna || chain.IsAddress(denom)
}

func (c *Calculator) fetchRate(ctx context.Context) (decimal.Decimal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rate != nil {
		return *c.rate, nil
	}
	raw, err := c.querier.GetTaxRate(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch tax rate: %w", err)
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("bad tax rate %q: %w", raw, err)
	}
	c.rate = &rate
	return rate, nil
}

func (c *Calculator) fetchCap(ctx context.Context, denom string) (decimal.Decimal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cap, ok := c.caps[denom]; ok {
		return cap, nil
	}
	raw, err := c.querier.GetTaxCap(ctx, denom)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch tax cap: %w", err)
	}
	cap, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("bad tax cap %q: %w", raw, err)
	}
	c.caps[denom] = cap
	return cap, nil
}

// Tax returns the tax coin owed on transferring amount of denom.
func (c *Calculator) Tax(ctx context.Context, denom, amount string) (models.Coin, error) {
	if Exempt(denom) {
		return models.Coin{Amount: "0", Denom: denom}, nil
	}
	rate, err := c.fetchRate(ctx)
	if err != nil {
		return models.Coin{}, err
	}
	cap, err := c.fetchCap(ctx, denom)
	if err != nil {
		return models.Coin{}, err
	}
	value, err := decimal.NewFromString(numeric.Or(amount, "0"))
	if err != nil {
		return models.Coin{}, fmt.Errorf("%w: %q", numeric.ErrInvalidNumber, amount)
	}

	owed := value.Mul(rate)
	if owed.GreaterThan(cap) {
		owed = cap
	}
	return models.Coin{Amount: owed.Ceil().String(), Denom: denom}, nil
}

// Max returns the greatest amount sendable from balance after reserving
// the tax on it.
func (c *Calculator) Max(ctx context.Context, denom, balance string) (models.Coin, error) {
	owed, err := c.Tax(ctx, denom, balance)
	if err != nil {
		return models.Coin{}, err
	}
	remaining, err := numeric.Minus(numeric.Or(balance, "0"), owed.Amount)
	if err != nil {
		return models.Coin{}, err
	}
	return models.Coin{Amount: remaining, Denom: denom}, nil
}

// Description renders the tax terms for display, e.g.
// "Tax (0.406%, Max 1 Luna)".
func (c *Calculator) Description(ctx context.Context, denom string) (string, error) {
	if Exempt(denom) {
		return "", nil
	}
	rate, err := c.fetchRate(ctx)
	if err != nil {
		return "", err
	}
	cap, err := c.fetchCap(ctx, denom)
	if err != nil {
		return "", err
	}
	percent, err := numeric.Percent(rate.String(), 3)
	if err != nil {
		return "", err
	}
	capCoin := numeric.CoinString(models.Coin{Amount: cap.String(), Denom: denom}, false)
	return fmt.Sprintf("Tax (%s, Max %s)", percent, capCoin), nil
}
