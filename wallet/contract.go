package wallet

import (
	"github.com/terra-community/station-core/chain"
	"github.com/terra-community/station-core/fee"
	"github.com/terra-community/station-core/lcd"
	"github.com/terra-community/station-core/models"
	"github.com/terra-community/station-core/swap"
	"github.com/terra-community/station-core/tx"
)

// NewExecuteContract builds a draft executing an arbitrary contract
// message, optionally sending coins along.
func NewExecuteContract(sender, contract, execMsg string, coins []models.Coin, bank lcd.BankData, fees *fee.Calculator) (tx.Draft, error) {
	if err := ValidateTerraAddress(sender); err != nil {
		return tx.Draft{}, err
	}
	if err := ValidateTerraAddress(contract); err != nil {
		return tx.Draft{}, err
	}
	if err := ValidateExecuteMsg(execMsg); err != nil {
		return tx.Draft{}, err
	}
	for _, coin := range coins {
		if err := ValidateAmount(coin.Amount); err != nil {
			return tx.Draft{}, err
		}
	}

	payload := map[string]any{"exec_msg": execMsg}
	if len(coins) > 0 {
		payload["coins"] = coins
	}

	return tx.Draft{
		URL:       "/wasm/contracts/" + contract,
		Payload:   payload,
		From:      sender,
		FeeDenoms: FeeDenomList(bank.Balance, fees),
		Validate: func(txFee models.Coin) bool {
			for _, coin := range coins {
				zero := models.Coin{Amount: "0", Denom: coin.Denom}
				if !IsAvailable(coin, zero, txFee, bank.Balance) {
					return false
				}
			}
			return IsFeeAvailable(txFee, bank.Balance)
		},
	}, nil
}

// NewSwap builds a draft executing a quoted swap on its selected venue.
// The quote must come from the same router and request; the route venue's
// minimum-receive floor is baked into the message.
func NewSwap(router *swap.Router, from string, req swap.Request, quote swap.Quote, bank lcd.BankData, fees *fee.Calculator) (tx.Draft, error) {
	if err := ValidateTerraAddress(from); err != nil {
		return tx.Draft{}, err
	}
	if err := ValidateAmount(req.Amount); err != nil {
		return tx.Draft{}, err
	}

	payload, err := router.BuildPayload(req, quote)
	if err != nil {
		return tx.Draft{}, err
	}

	offer := models.Coin{Amount: req.Amount, Denom: req.From}
	return tx.Draft{
		URL:       payload.URL,
		Payload:   payload.Body,
		From:      from,
		FeeDenoms: FeeDenomList(bank.Balance, fees),
		Validate: func(txFee models.Coin) bool {
			if !chain.IsNativeDenom(req.From) {
				return IsFeeAvailable(txFee, bank.Balance)
			}
			// Market swaps are exempt from transfer tax.
			zeroTax := models.Coin{Amount: "0", Denom: req.From}
			return IsAvailable(offer, zeroTax, txFee, bank.Balance)
		},
	}, nil
}
