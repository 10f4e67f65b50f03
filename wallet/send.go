package wallet

import (
	"encoding/json"

	"github.com/terra-community/station-core/chain"
	"github.com/terra-community/station-core/fee"
	"github.com/terra-community/station-core/lcd"
	"github.com/terra-community/station-core/models"
	"github.com/terra-community/station-core/tx"
)

// SendRequest describes a transfer of a native coin or a contract token,
// on Terra or across a shuttle bridge.
type SendRequest struct {
	From string
	// To is a terra address, or an Ethereum-style address for bridge
	// networks.
	To      string
	Network Network
	// Denom is a native denom or a token contract address.
	Denom  string
	Amount string
	Memo   string
}

// NewSend builds a transfer draft. Cross-chain transfers are addressed to
// the network's shuttle bridge with the real recipient in the memo, which
// is why outgoing bridge transfers cannot carry a user memo.
func NewSend(chainCtx chain.Context, req SendRequest, bank lcd.BankData, taxDue models.Coin, fees *fee.Calculator) (tx.Draft, error) {
	if err := ValidateAmount(req.Amount); err != nil {
		return tx.Draft{}, err
	}
	if err := ValidateMemo(req.Memo); err != nil {
		return tx.Draft{}, err
	}

	network := req.Network
	if network == "" {
		network = NetworkTerra
	}

	recipient := req.To
	memo := req.Memo
	if network != NetworkTerra {
		if err := ValidateEthereumAddress(req.To); err != nil {
			return tx.Draft{}, err
		}
		if memo != "" {
			return tx.Draft{}, inputError("bridge transfers cannot carry a memo")
		}
		bridge, ok := ShuttleAddress(chainCtx.Name, network)
		if !ok {
			return tx.Draft{}, inputError("no %s bridge on %s", network, chainCtx.Name)
		}
		recipient = bridge
		memo = req.To
	} else if err := ValidateTerraAddress(req.To); err != nil {
		return tx.Draft{}, err
	}

	amount := models.Coin{Amount: req.Amount, Denom: req.Denom}

	if chain.IsNativeDenom(req.Denom) {
		return tx.Draft{
			URL:       "/bank/accounts/" + recipient + "/transfers",
			Payload:   map[string]any{"coins": []models.Coin{amount}},
			From:      req.From,
			Memo:      memo,
			FeeDenoms: FeeDenomList(bank.Balance, fees),
			Validate: func(txFee models.Coin) bool {
				return IsAvailable(amount, taxDue, txFee, bank.Balance)
			},
		}, nil
	}

	if err := ValidateTerraAddress(req.Denom); err != nil {
		return tx.Draft{}, inputError("denom %q is neither native nor a token contract", req.Denom)
	}
	execMsg, err := json.Marshal(map[string]any{
		"transfer": map[string]string{"recipient": recipient, "amount": req.Amount},
	})
	if err != nil {
		return tx.Draft{}, err
	}
	return tx.Draft{
		URL:       "/wasm/contracts/" + req.Denom,
		Payload:   map[string]any{"exec_msg": string(execMsg)},
		From:      req.From,
		Memo:      memo,
		FeeDenoms: FeeDenomList(bank.Balance, fees),
		Validate: func(txFee models.Coin) bool {
			return IsFeeAvailable(txFee, bank.Balance)
		},
	}, nil
}
