package wallet

import (
	"github.com/terra-community/station-core/chain"
	"github.com/terra-community/station-core/fee"
	"github.com/terra-community/station-core/lcd"
	"github.com/terra-community/station-core/models"
	"github.com/terra-community/station-core/tx"
)

// VoteOption is a governance vote choice, spelled the way the gov module
// expects it.
type VoteOption string

const (
	VoteYes        VoteOption = "yes"
	VoteNo         VoteOption = "no"
	VoteNoWithVeto VoteOption = "no_with_veto"
	VoteAbstain    VoteOption = "abstain"
)

func validVoteOption(option VoteOption) bool {
	switch option {
	case VoteYes, VoteNo, VoteNoWithVeto, VoteAbstain:
		return true
	}
	return false
}

// NewVote builds a governance vote draft.
func NewVote(voter, proposalID string, option VoteOption, bank lcd.BankData, fees *fee.Calculator) (tx.Draft, error) {
	if err := ValidateTerraAddress(voter); err != nil {
		return tx.Draft{}, err
	}
	if proposalID == "" {
		return tx.Draft{}, inputError("proposal id is required")
	}
	if !validVoteOption(option) {
		return tx.Draft{}, inputError("vote option %q is invalid", option)
	}

	return tx.Draft{
		URL: "/gov/proposals/" + proposalID + "/votes",
		Payload: map[string]any{
			"voter":  voter,
			"option": string(option),
		},
		From:      voter,
		FeeDenoms: FeeDenomList(bank.Balance, fees),
		Validate: func(txFee models.Coin) bool {
			return IsFeeAvailable(txFee, bank.Balance)
		},
	}, nil
}

// NewDeposit builds a draft adding Luna to a proposal's deposit.
func NewDeposit(depositor, proposalID, amount string, bank lcd.BankData, fees *fee.Calculator) (tx.Draft, error) {
	if err := ValidateTerraAddress(depositor); err != nil {
		return tx.Draft{}, err
	}
	if proposalID == "" {
		return tx.Draft{}, inputError("proposal id is required")
	}
	if err := ValidateAmount(amount); err != nil {
		return tx.Draft{}, err
	}

	coin := models.Coin{Amount: amount, Denom: chain.DenomLuna}
	return tx.Draft{
		URL: "/gov/proposals/" + proposalID + "/deposits",
		Payload: map[string]any{
			"depositor": depositor,
			"amount":    []models.Coin{coin},
		},
		From:      depositor,
		FeeDenoms: FeeDenomList(bank.Balance, fees),
		Validate: func(txFee models.Coin) bool {
			return IsAvailable(coin, models.Coin{Amount: "0", Denom: coin.Denom}, txFee, bank.Balance)
		},
	}, nil
}

// NewSubmitProposal builds a text proposal draft. The initial deposit is
// optional; "0" or empty skips it.
func NewSubmitProposal(proposer, title, description, initialDeposit string, bank lcd.BankData, fees *fee.Calculator) (tx.Draft, error) {
	if err := ValidateTerraAddress(proposer); err != nil {
		return tx.Draft{}, err
	}
	if title == "" {
		return tx.Draft{}, inputError("title is required")
	}
	if description == "" {
		return tx.Draft{}, inputError("description is required")
	}

	deposit := []models.Coin{}
	spend := models.Coin{Amount: "0", Denom: chain.DenomLuna}
	if initialDeposit != "" && initialDeposit != "0" {
		if err := ValidateAmount(initialDeposit); err != nil {
			return tx.Draft{}, err
		}
		spend = models.Coin{Amount: initialDeposit, Denom: chain.DenomLuna}
		deposit = append(deposit, spend)
	}

	return tx.Draft{
		URL: "/gov/proposals",
		Payload: map[string]any{
			"title":           title,
			"description":     description,
			"proposal_type":   "text",
			"proposer":        proposer,
			"initial_deposit": deposit,
		},
		From:      proposer,
		FeeDenoms: FeeDenomList(bank.Balance, fees),
		Validate: func(txFee models.Coin) bool {
			return IsAvailable(spend, models.Coin{Amount: "0", Denom: spend.Denom}, txFee, bank.Balance)
		},
	}, nil
}
