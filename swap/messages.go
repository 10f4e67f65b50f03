package swap

import (
	"encoding/base64"
	"encoding/json"

	"github.com/terra-community/station-core/chain"
	"github.com/terra-community/station-core/models"
)

// assetInfo is the AMM's description of one side of a market: either a
// native denom or a contract token.
func assetInfo(denom string) map[string]any {
	if chain.IsAddress(denom) {
		return map[string]any{"token": map[string]any{"contract_addr": denom}}
	}
	return map[string]any{"native_token": map[string]any{"denom": denom}}
}

// offerAsset describes the coin offered to a pair contract.
func offerAsset(amount, denom string) map[string]any {
	return map[string]any{
		"amount": amount,
		"info":   assetInfo(denom),
	}
}

// routeOperation is one leg of a two-hop route: the native market for
// native-to-stable legs, the AMM for anything touching a token.
func routeOperation(from, to string) map[string]any {
	if chain.IsNativeDenom(from) && chain.IsNativeTerra(to) {
		return map[string]any{
			"native_swap": map[string]any{"offer_denom": from, "ask_denom": to},
		}
	}
	return map[string]any{
		"terra_swap": map[string]any{
			"offer_asset_info": assetInfo(from),
			"ask_asset_info":   assetInfo(to),
		},
	}
}

// routeOperations builds both legs through the stable intermediate.
func routeOperations(from, to string) []map[string]any {
	return []map[string]any{
		routeOperation(from, chain.DenomUSD),
		routeOperation(chain.DenomUSD, to),
	}
}

func toBase64(msg any) (string, error) {
	raw, err := json.Marshal(msg)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Payload is the endpoint and body that executes a swap as a transaction.
type Payload struct {
	// URL is the LCD transaction-building endpoint.
	URL string
	// Body is the endpoint-specific payload merged next to base_req.
	Body map[string]any
}

// BuildPayload produces the execution payload for the selected venue.
// The quote must come from Route on the same request: the route venue's
// minimum-receive floor is part of the message.
func (r *Router) BuildPayload(req Request, quote Quote) (Payload, error) {
	switch quote.Venue {
	case VenueOnChain:
		return Payload{
			URL: "/market/swap",
			Body: map[string]any{
				"ask_denom":  req.To,
				"offer_coin": models.Coin{Amount: req.Amount, Denom: req.From},
			},
		}, nil

	case VenuePair:
		pair, _, ok := r.pairs.FindPair(req.From, req.To)
		if !ok {
			return Payload{}, ErrSwapUnavailable
		}
		swapMsg := map[string]any{"swap": map[string]any{"offer_asset": offerAsset(req.Amount, req.From)}}
		if chain.IsAddress(req.From) {
			return r.tokenSendPayload(req.From, pair, req.Amount, swapMsg)
		}
		execMsg, err := json.Marshal(swapMsg)
		if err != nil {
			return Payload{}, err
		}
		return Payload{
			URL: "/wasm/contracts/" + pair,
			Body: map[string]any{
				"exec_msg": string(execMsg),
				"coins":    []models.Coin{{Amount: req.Amount, Denom: req.From}},
			},
		}, nil

	case VenueRoute:
		if r.pairs.RouteContract == "" {
			return Payload{}, ErrSwapUnavailable
		}
		executeMsg := map[string]any{
			"execute_swap_operations": map[string]any{
				"offer_amount":    req.Amount,
				"operations":      routeOperations(req.From, req.To),
				"minimum_receive": quote.MinimumReceive,
			},
		}
		if chain.IsAddress(req.From) {
			return r.tokenSendPayload(req.From, r.pairs.RouteContract, req.Amount, executeMsg)
		}
		execMsg, err := json.Marshal(executeMsg)
		if err != nil {
			return Payload{}, err
		}
		return Payload{
			URL: "/wasm/contracts/" + r.pairs.RouteContract,
			Body: map[string]any{
				"exec_msg": string(execMsg),
				"coins":    []models.Coin{{Amount: req.Amount, Denom: req.From}},
			},
		}, nil
	}

	return Payload{}, ErrSwapUnavailable
}

// tokenSendPayload wraps a hook message in a cw20 send: token contracts
// cannot receive coins, so the token itself forwards the amount with the
// embedded message.
func (r *Router) tokenSendPayload(token, recipient, amount string, hookMsg any) (Payload, error) {
	encoded, err := toBase64(hookMsg)
	if err != nil {
		return Payload{}, err
	}
	execMsg, err := json.Marshal(map[string]any{
		"send": map[string]any{
			"contract": recipient,
			"amount":   amount,
			"msg":      encoded,
		},
	})
	if err != nil {
		return Payload{}, err
	}
	return Payload{
		URL:  "/wasm/contracts/" + token,
		Body: map[string]any{"exec_msg": string(execMsg)},
	}, nil
}
