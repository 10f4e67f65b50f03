// Package swap decides the execution venue for a currency conversion:
// the chain's native market, a direct AMM pair contract, or a two-hop
// route through the stable intermediate denom. Every viable venue is
// simulated concurrently and the quote with the greatest return wins.
package swap

import "errors"

// ErrSwapUnavailable reports a pair no venue can serve. Terminal for the
// pair: the router never retries it.
var ErrSwapUnavailable = errors.New("swap unavailable for pair")

// ErrAllSimulationsFailed reports that venues existed for the pair but
// every simulation failed.
var ErrAllSimulationsFailed = errors.New("all venue simulations failed")

// Venue is an execution path for a swap.
type Venue int

const (
	// VenueOnChain is the chain's native market module.
	VenueOnChain Venue = iota
	// VenuePair is a direct AMM pair contract.
	VenuePair
	// VenueRoute is a two-hop path through the stable intermediate.
	VenueRoute
)

func (v Venue) String() string {
	switch v {
	case VenueOnChain:
		return "onchain"
	case VenuePair:
		return "pair"
	case VenueRoute:
		return "route"
	}
	return "unknown"
}

// Quote is the simulated outcome of executing a swap on one venue.
type Quote struct {
	Venue Venue
	// InputAmount is the offered amount in micro-units.
	InputAmount string
	// ReturnAmount is the simulated amount received.
	ReturnAmount string
	// TradingFee is the AMM commission; "0" on the native market.
	TradingFee string
	// SpreadAmount is the difference between the expected-price principal
	// and the simulated return.
	SpreadAmount string
	// MinSpreadRate is the protocol's floor on the market swap spread as
	// a decimal rate; empty off the native market.
	MinSpreadRate string
	// MinimumReceive is the route execution's revert floor; empty for
	// venues that do not enforce one.
	MinimumReceive string
}

// Request describes a conversion the user intends.
type Request struct {
	From   string
	To     string
	Amount string
}
