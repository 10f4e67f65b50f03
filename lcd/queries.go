package lcd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/terra-community/station-core/models"
)

// result is the {"result": ...} envelope most LCD responses use.
type result[T any] struct {
	Result T `json:"result"`
}

// LatestBlock is the header data of the most recent block.
type LatestBlock struct {
	ChainID string
	Height  string
}

type latestBlockResponse struct {
	Block struct {
		Header struct {
			ChainID string `json:"chain_id"`
			Height  string `json:"height"`
		} `json:"header"`
	} `json:"block"`
}

// GetLatestBlock returns the chain id and height of the newest block.
func (c *Client) GetLatestBlock(ctx context.Context) (LatestBlock, error) {
	var resp latestBlockResponse
	if err := c.get(ctx, "/blocks/latest", nil, &resp); err != nil {
		return LatestBlock{}, err
	}
	c.observeHeight(resp.Block.Header.Height)
	return LatestBlock{
		ChainID: resp.Block.Header.ChainID,
		Height:  resp.Block.Header.Height,
	}, nil
}

// accountValue is the account number and sequence of an account. Vesting
// accounts nest the base account one level deeper and must be unwrapped.
type accountValue struct {
	AccountNumber string `json:"account_number"`
	Sequence      string `json:"sequence"`

	BaseVestingAccount *struct {
		BaseAccount accountValue `json:"BaseAccount"`
	} `json:"BaseVestingAccount"`
}

func (v accountValue) unwrap() accountValue {
	if v.BaseVestingAccount != nil {
		return v.BaseVestingAccount.BaseAccount
	}
	return v
}

// GetAccount returns the account number and sequence for an address.
func (c *Client) GetAccount(ctx context.Context, address string) (number, sequence string, err error) {
	var resp result[struct {
		Value accountValue `json:"value"`
	}]
	if err := c.get(ctx, "/auth/accounts/"+address, nil, &resp); err != nil {
		return "", "", err
	}
	value := resp.Result.Value.unwrap()
	return value.AccountNumber, value.Sequence, nil
}

// GetBase fetches the base account info for a sender. It is called fresh
// immediately before simulate and before submit; the sequence must reflect
// the chain state at the moment of use.
func (c *Client) GetBase(ctx context.Context, from string) (models.Base, error) {
	latest, err := c.GetLatestBlock(ctx)
	if err != nil {
		return models.Base{}, fmt.Errorf("failed to fetch latest block: %w", err)
	}
	number, sequence, err := c.GetAccount(ctx, from)
	if err != nil {
		return models.Base{}, fmt.Errorf("failed to fetch account: %w", err)
	}
	return models.Base{
		From:          from,
		ChainID:       latest.ChainID,
		AccountNumber: number,
		Sequence:      sequence,
	}, nil
}

// GetTaxRate returns the protocol transfer tax rate as a decimal string.
func (c *Client) GetTaxRate(ctx context.Context) (string, error) {
	var resp result[string]
	if err := c.get(ctx, "/treasury/tax_rate", nil, &resp); err != nil {
		return "", err
	}
	return resp.Result, nil
}

// GetTaxCap returns the per-denomination tax ceiling in micro-units.
func (c *Client) GetTaxCap(ctx context.Context, denom string) (string, error) {
	var resp result[string]
	if err := c.get(ctx, "/treasury/tax_cap/"+denom, nil, &resp); err != nil {
		return "", err
	}
	return resp.Result, nil
}

// Balance is one denomination's position in a bank account.
type Balance struct {
	Denom       string `json:"denom"`
	Available   string `json:"available"`
	Delegatable string `json:"delegatable"`
}

// BankData is the full bank state for an address.
type BankData struct {
	Balance []Balance `json:"balance"`
}

// GetBank returns the bank balances for an address.
func (c *Client) GetBank(ctx context.Context, address string) (BankData, error) {
	var resp BankData
	if err := c.get(ctx, "/v1/bank/"+address, nil, &resp); err != nil {
		return BankData{}, err
	}
	return resp, nil
}

// Delegation is one of the user's staking positions.
type Delegation struct {
	ValidatorAddress string `json:"validatorAddress"`
	ValidatorName    string `json:"validatorName"`
	AmountDelegated  string `json:"amountDelegated"`
	TotalReward      string `json:"totalReward"`
}

// StakingData is the staking overview for an address.
type StakingData struct {
	AvailableLuna string       `json:"availableLuna"`
	Delegations   []Delegation `json:"myDelegations"`
}

// GetStaking returns the staking positions for an address.
func (c *Client) GetStaking(ctx context.Context, address string) (StakingData, error) {
	var resp StakingData
	if err := c.get(ctx, "/v1/staking/"+address, nil, &resp); err != nil {
		return StakingData{}, err
	}
	return resp, nil
}

// Proposal is a governance proposal summary.
type Proposal struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Status  string `json:"status"`
	Deposit struct {
		TotalDeposit []models.Coin `json:"totalDeposit"`
	} `json:"deposit"`
}

// GetProposals lists governance proposals.
func (c *Client) GetProposals(ctx context.Context) ([]Proposal, error) {
	var resp struct {
		Proposals []Proposal `json:"proposals"`
	}
	if err := c.get(ctx, "/v1/gov/proposals", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Proposals, nil
}

// SimulateMarketSwap asks the chain's native market module what an offer
// coin would currently buy in the ask denomination.
func (c *Client) SimulateMarketSwap(ctx context.Context, offer models.Coin, askDenom string) (models.Coin, error) {
	query := url.Values{}
	query.Set("offer_coin", offer.Amount+offer.Denom)
	query.Set("ask_denom", askDenom)

	var resp result[models.Coin]
	if err := c.get(ctx, "/market/swap", query, &resp); err != nil {
		return models.Coin{}, err
	}
	return resp.Result, nil
}

// SwapRate is the market exchange rate from a base denom into one ask denom.
type SwapRate struct {
	Denom    string `json:"denom"`
	SwapRate string `json:"swaprate"`
}

// GetSwapRates returns the price list for a denom against every other
// native denom, used for expected-price and spread display.
func (c *Client) GetSwapRates(ctx context.Context, denom string) ([]SwapRate, error) {
	var rates []SwapRate
	if err := c.get(ctx, "/v1/market/swaprate/"+denom, nil, &rates); err != nil {
		return nil, err
	}
	return rates, nil
}

// MarketParameters holds the native market module parameters.
type MarketParameters struct {
	MinSpread string `json:"min_spread"`
}

// GetMarketParameters returns the native market parameters.
func (c *Client) GetMarketParameters(ctx context.Context) (MarketParameters, error) {
	var resp result[MarketParameters]
	if err := c.get(ctx, "/market/parameters", nil, &resp); err != nil {
		return MarketParameters{}, err
	}
	return resp.Result, nil
}

// TobinTaxItem is one oracle-whitelisted denom and its tobin tax.
type TobinTaxItem struct {
	Name     string `json:"name"`
	TobinTax string `json:"tobin_tax"`
}

// GetOracleWhitelist returns the oracle whitelist with per-denom tobin tax.
func (c *Client) GetOracleWhitelist(ctx context.Context) ([]TobinTaxItem, error) {
	var resp result[struct {
		Whitelist []TobinTaxItem `json:"whitelist"`
	}]
	if err := c.get(ctx, "/oracle/parameters", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Result.Whitelist, nil
}

// QueryContract runs a read-only wasm query against a contract and decodes
// the result envelope into out.
func (c *Client) QueryContract(ctx context.Context, contract string, queryMsg, out any) error {
	msg, err := json.Marshal(queryMsg)
	if err != nil {
		return fmt.Errorf("failed to encode query message: %w", err)
	}
	query := url.Values{}
	query.Set("query_msg", string(msg))

	var resp result[json.RawMessage]
	if err := c.get(ctx, "/wasm/contracts/"+contract+"/store", query, &resp); err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Result, out); err != nil {
		return fmt.Errorf("failed to decode contract query result: %w", err)
	}
	return nil
}
