package swap

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/terra-community/station-core/chain"
	"github.com/terra-community/station-core/lcd"
	"github.com/terra-community/station-core/models"
)

var log zerolog.Logger

func init() {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log = zerolog.New(out).With().Timestamp().Str("component", "swap").Logger()
}

// DefaultSlippageTolerance is the fraction of simulated output the route
// execution may lose before reverting. An empirical default, not a derived
// one; override it per router when product decides otherwise.
const DefaultSlippageTolerance = "0.01"

// Querier is the simulation surface the router needs from the LCD client.
type Querier interface {
	SimulateMarketSwap(ctx context.Context, offer models.Coin, askDenom string) (models.Coin, error)
	GetSwapRates(ctx context.Context, denom string) ([]lcd.SwapRate, error)
	GetMarketParameters(ctx context.Context) (lcd.MarketParameters, error)
	GetOracleWhitelist(ctx context.Context) ([]lcd.TobinTaxItem, error)
	QueryContract(ctx context.Context, contract string, queryMsg, out any) error
}

// Router selects a venue and produces quotes for one network's pair
// registry. Stateless between calls; safe for concurrent use.
type Router struct {
	client   Querier
	pairs    chain.Pairs
	slippage decimal.Decimal
}

// NewRouter creates a router with the default slippage tolerance.
func NewRouter(client Querier, pairs chain.Pairs) *Router {
	tolerance, _ := decimal.NewFromString(DefaultSlippageTolerance)
	return &Router{client: client, pairs: pairs, slippage: tolerance}
}

// NewRouterWithSlippage creates a router with an explicit slippage
// tolerance given as a fraction, e.g. "0.01" for 1%.
func NewRouterWithSlippage(client Querier, pairs chain.Pairs, tolerance string) (*Router, error) {
	parsed, err := decimal.NewFromString(tolerance)
	if err != nil {
		return nil, fmt.Errorf("bad slippage tolerance %q: %w", tolerance, err)
	}
	if parsed.IsNegative() || parsed.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("slippage tolerance %q out of range [0, 1)", tolerance)
	}
	return &Router{client: client, pairs: pairs, slippage: parsed}, nil
}

// Venues returns the execution paths viable for the pair, in preference
// order. The two-hop route is a fallback: it is only offered when no
// direct venue exists.
func (r *Router) Venues(req Request) []Venue {
	if req.From == req.To || req.From == "" || req.To == "" {
		return nil
	}

	var venues []Venue
	if chain.IsNativeDenom(req.From) && chain.IsNativeDenom(req.To) {
		venues = append(venues, VenueOnChain)
	}
	if _, _, ok := r.pairs.FindPair(req.From, req.To); ok {
		venues = append(venues, VenuePair)
	}
	if len(venues) == 0 && r.routable(req.From) && r.routable(req.To) && r.pairs.RouteContract != "" {
		venues = append(venues, VenueRoute)
	}
	return venues
}

// routable reports whether a two-hop leg through uusd can reach the denom.
func (r *Router) routable(denom string) bool {
	if chain.IsNativeDenom(denom) {
		return true
	}
	_, ok := r.pairs.Tokens[denom]
	return ok
}

// Route quotes every viable venue concurrently and returns the quote with
// the greatest return amount. A venue whose simulation fails is simply
// removed from consideration; selection happens only after every quote has
// resolved or failed. Ties keep the native market.
func (r *Router) Route(ctx context.Context, req Request) (Quote, error) {
	venues := r.Venues(req)
	if len(venues) == 0 {
		return Quote{}, fmt.Errorf("%w: %s to %s", ErrSwapUnavailable, req.From, req.To)
	}

	type outcome struct {
		quote Quote
		err   error
	}
	outcomes := make([]outcome, len(venues))

	var wg sync.WaitGroup
	for i, venue := range venues {
		wg.Add(1)
		go func(i int, venue Venue) {
			defer wg.Done()
			quote, err := r.quote(ctx, venue, req)
			outcomes[i] = outcome{quote: quote, err: err}
		}(i, venue)
	}
	wg.Wait()

	var best *Quote
	var lastErr error
	for i := range outcomes {
		if outcomes[i].err != nil {
			log.Debug().Err(outcomes[i].err).
				Stringer("venue", venues[i]).
				Str("from", req.From).
				Str("to", req.To).
				Msg("venue simulation failed, dropping venue")
			lastErr = outcomes[i].err
			continue
		}
		quote := outcomes[i].quote
		if best == nil || greaterThan(quote.ReturnAmount, best.ReturnAmount) {
			best = &quote
		}
	}

	if best == nil {
		return Quote{}, fmt.Errorf("%w: %v", ErrAllSimulationsFailed, lastErr)
	}

	log.Debug().
		Stringer("venue", best.Venue).
		Str("return", best.ReturnAmount).
		Msg("selected venue")
	return *best, nil
}

func (r *Router) quote(ctx context.Context, venue Venue, req Request) (Quote, error) {
	switch venue {
	case VenueOnChain:
		return r.quoteOnChain(ctx, req)
	case VenuePair:
		return r.quotePair(ctx, req)
	case VenueRoute:
		return r.quoteRoute(ctx, req)
	}
	return Quote{}, fmt.Errorf("unknown venue %d", venue)
}

func (r *Router) quoteOnChain(ctx context.Context, req Request) (Quote, error) {
	swapped, err := r.client.SimulateMarketSwap(ctx,
		models.Coin{Amount: req.Amount, Denom: req.From}, req.To)
	if err != nil {
		return Quote{}, fmt.Errorf("market swap simulation failed: %w", err)
	}

	// Expected-price principal for spread display; best effort, the quote
	// stands without it.
	spread := "0"
	if rates, err := r.client.GetSwapRates(ctx, req.From); err == nil {
		if rate := findRate(rates, req.To); rate != "" {
			spread = spreadAmount(req.Amount, rate, swapped.Amount)
		}
	}

	return Quote{
		Venue:         VenueOnChain,
		InputAmount:   req.Amount,
		ReturnAmount:  swapped.Amount,
		TradingFee:    "0",
		SpreadAmount:  spread,
		MinSpreadRate: r.minSpreadRate(ctx, req.From, req.To),
	}, nil
}

// minSpreadRate is the protocol floor on the market swap spread: the
// market module's min_spread when the staking token is a leg, otherwise
// the larger tobin tax of the two stables. Best effort; empty when the
// parameters cannot be fetched.
func (r *Router) minSpreadRate(ctx context.Context, from, to string) string {
	if from == chain.DenomLuna || to == chain.DenomLuna {
		params, err := r.client.GetMarketParameters(ctx)
		if err != nil {
			return ""
		}
		return params.MinSpread
	}
	whitelist, err := r.client.GetOracleWhitelist(ctx)
	if err != nil {
		return ""
	}
	var floor decimal.Decimal
	var found bool
	for _, item := range whitelist {
		if item.Name != from && item.Name != to {
			continue
		}
		tax, err := decimal.NewFromString(item.TobinTax)
		if err != nil {
			continue
		}
		if !found || tax.GreaterThan(floor) {
			floor = tax
			found = true
		}
	}
	if !found {
		return ""
	}
	return floor.String()
}

// pairSimulation is the pair contract's simulation response.
type pairSimulation struct {
	ReturnAmount     string `json:"return_amount"`
	SpreadAmount     string `json:"spread_amount"`
	CommissionAmount string `json:"commission_amount"`
}

func (r *Router) quotePair(ctx context.Context, req Request) (Quote, error) {
	pair, _, ok := r.pairs.FindPair(req.From, req.To)
	if !ok {
		return Quote{}, ErrSwapUnavailable
	}

	queryMsg := map[string]any{
		"simulation": map[string]any{"offer_asset": offerAsset(req.Amount, req.From)},
	}
	var sim pairSimulation
	if err := r.client.QueryContract(ctx, pair, queryMsg, &sim); err != nil {
		return Quote{}, fmt.Errorf("pair simulation failed: %w", err)
	}

	return Quote{
		Venue:        VenuePair,
		InputAmount:  req.Amount,
		ReturnAmount: sim.ReturnAmount,
		TradingFee:   sim.CommissionAmount,
		SpreadAmount: sim.SpreadAmount,
	}, nil
}

func (r *Router) quoteRoute(ctx context.Context, req Request) (Quote, error) {
	queryMsg := map[string]any{
		"simulate_swap_operations": map[string]any{
			"offer_amount": req.Amount,
			"operations":   routeOperations(req.From, req.To),
		},
	}
	var sim struct {
		Amount string `json:"amount"`
	}
	if err := r.client.QueryContract(ctx, r.pairs.RouteContract, queryMsg, &sim); err != nil {
		return Quote{}, fmt.Errorf("route simulation failed: %w", err)
	}

	minimum, err := r.MinimumReceive(sim.Amount)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		Venue:          VenueRoute,
		InputAmount:    req.Amount,
		ReturnAmount:   sim.Amount,
		TradingFee:     "0",
		SpreadAmount:   "0",
		MinimumReceive: minimum,
	}, nil
}

// MinimumReceive applies the slippage tolerance to a simulated output:
// floor(simulated * (1 - tolerance)). Execution reverts below this floor.
func (r *Router) MinimumReceive(simulated string) (string, error) {
	out, err := decimal.NewFromString(simulated)
	if err != nil {
		return "", fmt.Errorf("bad simulated amount %q: %w", simulated, err)
	}
	floor := out.Mul(decimal.NewFromInt(1).Sub(r.slippage)).Floor()
	return floor.String(), nil
}

func findRate(rates []lcd.SwapRate, denom string) string {
	for _, rate := range rates {
		if rate.Denom == denom {
			return rate.SwapRate
		}
	}
	return ""
}

// spreadAmount is principal minus return, where principal is the offer
// amount at the oracle exchange rate.
func spreadAmount(amount, rate, returned string) string {
	a, err1 := decimal.NewFromString(amount)
	r, err2 := decimal.NewFromString(rate)
	ret, err3 := decimal.NewFromString(returned)
	if err1 != nil || err2 != nil || err3 != nil {
		return "0"
	}
	return a.Mul(r).Sub(ret).String()
}

func greaterThan(a, b string) bool {
	da, err1 := decimal.NewFromString(a)
	db, err2 := decimal.NewFromString(b)
	if err1 != nil || err2 != nil {
		return false
	}
	return da.GreaterThan(db)
}
