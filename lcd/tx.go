package lcd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/terra-community/station-core/models"
)

// BaseReq is the common request block every transaction-building endpoint
// expects alongside its message-specific payload.
type BaseReq struct {
	From          string        `json:"from"`
	ChainID       string        `json:"chain_id"`
	AccountNumber string        `json:"account_number"`
	Sequence      string        `json:"sequence"`
	Simulate      bool          `json:"simulate"`
	Gas           string        `json:"gas"`
	GasPrices     []models.Coin `json:"gas_prices,omitempty"`
	Fees          []models.Coin `json:"fees,omitempty"`
	Memo          string        `json:"memo,omitempty"`
}

// NewBaseReq combines fresh base account info with the fee parameters of
// one attempt.
func NewBaseReq(base models.Base, simulate bool, gas string) BaseReq {
	return BaseReq{
		From:          base.From,
		ChainID:       base.ChainID,
		AccountNumber: base.AccountNumber,
		Sequence:      base.Sequence,
		Simulate:      simulate,
		Gas:           gas,
	}
}

func mergeBody(baseReq BaseReq, payload map[string]any) map[string]any {
	body := make(map[string]any, len(payload)+1)
	body["base_req"] = baseReq
	for k, v := range payload {
		body[k] = v
	}
	return body
}

// SimulateTx posts the payload with simulate=true and returns the node's
// gas estimate.
func (c *Client) SimulateTx(ctx context.Context, path string, baseReq BaseReq, payload map[string]any) (string, error) {
	var resp struct {
		GasEstimate string `json:"gas_estimate"`
	}
	if err := c.post(ctx, path, mergeBody(baseReq, payload), &resp); err != nil {
		return "", err
	}
	if resp.GasEstimate == "" {
		return "", fmt.Errorf("simulate returned no gas estimate")
	}
	return resp.GasEstimate, nil
}

// CreateTx posts the payload with simulate=false and returns the unsigned
// transaction value to be signed.
func (c *Client) CreateTx(ctx context.Context, path string, baseReq BaseReq, payload map[string]any) (json.RawMessage, error) {
	var resp struct {
		Value json.RawMessage `json:"value"`
	}
	if err := c.post(ctx, path, mergeBody(baseReq, payload), &resp); err != nil {
		return nil, err
	}
	if len(resp.Value) == 0 {
		return nil, fmt.Errorf("tx endpoint returned no value to sign")
	}
	return resp.Value, nil
}

// BroadcastResult is the chain's synchronous broadcast response. RawLog may
// embed an execution failure even when the HTTP call succeeded.
type BroadcastResult struct {
	Height string `json:"height"`
	TxHash string `json:"txhash"`
	RawLog string `json:"raw_log"`
}

// Broadcast submits a signed transaction.
func (c *Client) Broadcast(ctx context.Context, signedTx json.RawMessage) (BroadcastResult, error) {
	var resp BroadcastResult
	if err := c.post(ctx, "/v1/txs", signedTx, &resp); err != nil {
		return BroadcastResult{}, err
	}
	return resp, nil
}
