package wallet

import (
	"github.com/terra-community/station-core/chain"
	"github.com/terra-community/station-core/fee"
	"github.com/terra-community/station-core/lcd"
	"github.com/terra-community/station-core/models"
	"github.com/terra-community/station-core/tx"
)

func validateValidator(address string) error {
	if !chain.IsValidatorAddress(address) {
		return inputError("validator address %q is invalid", address)
	}
	return nil
}

func stakingCoin(amount string) models.Coin {
	return models.Coin{Amount: amount, Denom: chain.DenomLuna}
}

// NewDelegate builds a delegation draft. The staked amount comes out of
// the delegatable balance, the fee out of the available one.
func NewDelegate(delegator, validator, amount string, bank lcd.BankData, fees *fee.Calculator) (tx.Draft, error) {
	if err := ValidateTerraAddress(delegator); err != nil {
		return tx.Draft{}, err
	}
	if err := validateValidator(validator); err != nil {
		return tx.Draft{}, err
	}
	if err := ValidateAmount(amount); err != nil {
		return tx.Draft{}, err
	}

	coin := stakingCoin(amount)
	return tx.Draft{
		URL: "/staking/delegators/" + delegator + "/delegations",
		Payload: map[string]any{
			"delegator_address": delegator,
			"validator_address": validator,
			"amount":            coin,
		},
		From:      delegator,
		FeeDenoms: FeeDenomList(bank.Balance, fees),
		Validate: func(txFee models.Coin) bool {
			return IsDelegatable(coin, txFee, bank.Balance)
		},
	}, nil
}

// NewUndelegate builds an unbonding draft. Undelegated coins stay locked
// for the unbonding period, so only the fee needs covering now.
func NewUndelegate(delegator, validator, amount string, bank lcd.BankData, fees *fee.Calculator) (tx.Draft, error) {
	if err := ValidateTerraAddress(delegator); err != nil {
		return tx.Draft{}, err
	}
	if err := validateValidator(validator); err != nil {
		return tx.Draft{}, err
	}
	if err := ValidateAmount(amount); err != nil {
		return tx.Draft{}, err
	}

	return tx.Draft{
		URL: "/staking/delegators/" + delegator + "/unbonding_delegations",
		Payload: map[string]any{
			"delegator_address": delegator,
			"validator_address": validator,
			"amount":            stakingCoin(amount),
		},
		From:      delegator,
		FeeDenoms: FeeDenomList(bank.Balance, fees),
		Validate: func(txFee models.Coin) bool {
			return IsFeeAvailable(txFee, bank.Balance)
		},
	}, nil
}

// NewRedelegate builds a draft moving an existing delegation between
// validators.
func NewRedelegate(delegator, src, dst, amount string, bank lcd.BankData, fees *fee.Calculator) (tx.Draft, error) {
	if err := ValidateTerraAddress(delegator); err != nil {
		return tx.Draft{}, err
	}
	if err := validateValidator(src); err != nil {
		return tx.Draft{}, err
	}
	if err := validateValidator(dst); err != nil {
		return tx.Draft{}, err
	}
	if src == dst {
		return tx.Draft{}, inputError("source and destination validators are the same")
	}
	if err := ValidateAmount(amount); err != nil {
		return tx.Draft{}, err
	}

	return tx.Draft{
		URL: "/staking/delegators/" + delegator + "/redelegations",
		Payload: map[string]any{
			"delegator_address":     delegator,
			"validator_src_address": src,
			"validator_dst_address": dst,
			"amount":                stakingCoin(amount),
		},
		From:      delegator,
		FeeDenoms: FeeDenomList(bank.Balance, fees),
		Validate: func(txFee models.Coin) bool {
			return IsFeeAvailable(txFee, bank.Balance)
		},
	}, nil
}

// NewWithdraw builds a rewards withdrawal draft. One validator address
// scopes the withdrawal to that validator; none withdraws everything.
func NewWithdraw(delegator string, validators []string, bank lcd.BankData, fees *fee.Calculator) (tx.Draft, error) {
	if err := ValidateTerraAddress(delegator); err != nil {
		return tx.Draft{}, err
	}
	for _, validator := range validators {
		if err := validateValidator(validator); err != nil {
			return tx.Draft{}, err
		}
	}

	path := "/distribution/delegators/" + delegator + "/rewards"
	if len(validators) == 1 {
		path += "/" + validators[0]
	}

	return tx.Draft{
		URL:       path,
		Payload:   map[string]any{},
		From:      delegator,
		FeeDenoms: FeeDenomList(bank.Balance, fees),
		Validate: func(txFee models.Coin) bool {
			return IsFeeAvailable(txFee, bank.Balance)
		},
	}, nil
}
