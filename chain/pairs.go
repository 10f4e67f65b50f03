package chain

// Token describes a whitelisted contract token and the AMM pair contract
// quoting it against uusd.
type Token struct {
	Token  string `toml:"token" json:"token"`
	Symbol string `toml:"symbol" json:"symbol"`
	Pair   string `toml:"pair" json:"pair"`
}

// Pairs is the registry of AMM venues for one network: the Luna/stable pair
// contracts, the whitelisted contract tokens with their uusd pairs, and the
// multi-hop route contract. Loaded once at startup and immutable for the
// session.
type Pairs struct {
	// LunaPairs maps a stable denom to the pair contract trading it
	// against the staking token.
	LunaPairs map[string]string `toml:"luna_pairs"`
	// Tokens maps a contract-token address to its whitelist entry.
	Tokens map[string]Token `toml:"tokens"`
	// RouteContract executes two-hop swap operations through uusd.
	// Empty means multi-hop routing is unavailable on this network.
	RouteContract string `toml:"route_contract"`
}

// DefaultPairs returns the built-in pair registry for the named network.
// Unknown names get an empty registry: no pair, no route, on-chain market
// only.
func DefaultPairs(name string) Pairs {
	switch name {
	case "mainnet":
		return Pairs{
			LunaPairs: map[string]string{
				"ukrw": "terra1zw0kfxrxgrs5l087mjm79hcmj3y8z6tljuhpmc",
				"umnt": "terra1sndgzq62wp23mv20ndr4sxg6k8xcsudsy87uph",
				"usdr": "terra1vs2vuks65rq7xj78mwtvn7vvnm2gn7adjlr002",
				"uusd": "terra1tndcaqxkpc5ce9qee5ggqf430mr2z3pefe5wj6",
			},
			Tokens:        map[string]Token{},
			RouteContract: "terra19qx5xe6q9ll4w0890ux7lv2p4mf3csd4qvt3ex",
		}
	case "testnet":
		return Pairs{
			LunaPairs: map[string]string{
				"ukrw": "terra1rfzwcdhhu502xws6r5pxw4hx8c6vms772d6vyu",
				"umnt": "terra18x2ld35r4vn5rlygjzpjenyh2rfmvqgqk9lrnn",
				"usdr": "terra1dmrn07plsrr8p7qqq6dmue8ydw0smxfza6f8sc",
				"uusd": "terra156v8s539wtz0sjpn8y8a8lfg8fhmwa7fy22aff",
			},
			Tokens:        map[string]Token{},
			RouteContract: "terra1dtzpdj3lc7prd46tuxj2aqy40uv4v4xsphwcpx",
		}
	}
	return Pairs{LunaPairs: map[string]string{}, Tokens: map[string]Token{}}
}

// FindPair resolves the direct AMM pair contract for an unordered {from, to}
// pair. For Luna/stable markets it returns the pair contract alone; for
// hybrid uusd/token markets it also returns the token contract. ok is false
// when no direct pair exists.
func (p Pairs) FindPair(from, to string) (pair, token string, ok bool) {
	other, hasLuna := otherOf(from, to, DenomLuna)
	if hasLuna {
		pair, ok = p.LunaPairs[other]
		return pair, "", ok
	}

	other, hasUSD := otherOf(from, to, DenomUSD)
	if hasUSD {
		entry, found := p.Tokens[other]
		if !found {
			return "", "", false
		}
		return entry.Pair, entry.Token, true
	}

	return "", "", false
}

func otherOf(a, b, target string) (string, bool) {
	switch target {
	case a:
		return b, true
	case b:
		return a, true
	}
	return "", false
}
