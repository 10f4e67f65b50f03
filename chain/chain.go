// Package chain defines the active-chain context and the static registries
// keyed off it: gas-price network identity, AMM pair contracts and the token
// whitelist. The context is an immutable value threaded through every core
// call; there is no process-wide current chain, so a chain switch can never
// corrupt an in-flight request.
package chain

// Context identifies the chain a request is addressed to. Values are
// immutable; switching chains means constructing a new Context, never
// mutating one.
type Context struct {
	// Name selects the static tables (gas prices, pair registry):
	// "mainnet" or "testnet".
	Name string
	// ID is the chain id reported by the node, e.g. "columbus-4".
	ID string
	// LCD is the base URL of the light client daemon serving the JSON API.
	LCD string
}

// IsMainnet reports whether the context targets the main network.
func (c Context) IsMainnet() bool { return c.Name == "mainnet" }

// Mainnet returns the main network context.
func Mainnet() Context {
	return Context{
		Name: "mainnet",
		ID:   "columbus-4",
		LCD:  "https://fcd.terra.dev",
	}
}

// Testnet returns the test network context. Gas prices on testnet differ
// from mainnet by more than an order of magnitude, so the two must never be
// conflated.
func Testnet() Context {
	return Context{
		Name: "testnet",
		ID:   "tequila-0004",
		LCD:  "https://tequila-fcd.terra.dev",
	}
}
