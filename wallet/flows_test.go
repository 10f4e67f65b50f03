package wallet

import (
	"encoding/json"
	"testing"

	"github.com/zeebo/assert"

	"github.com/terra-community/station-core/chain"
	"github.com/terra-community/station-core/fee"
	"github.com/terra-community/station-core/lcd"
	"github.com/terra-community/station-core/models"
	"github.com/terra-community/station-core/swap"
)

const (
	testSender       = "terra1srw9p49fa46fw6asp0ttrr3cj8evmj3098jdej"
	testRecipient    = "terra1x46rqay4d3cssq8gxxvqz8xt6nwlz4td20k38v"
	testValidator    = "terravaloper1dcegyrekltswvyy0xy69ydgxn9x8x32zdy3ua5"
	testValidator2   = "terravaloper1wcegyrekltswvyy0xy69ydgxn9x8x32z98wgva"
	testEthRecipient = "0x5b73CDf935491E1E48027A75b909Eaeb8aEf5c3c"
)

func testBank() lcd.BankData {
	return lcd.BankData{Balance: []lcd.Balance{
		{Denom: "uluna", Available: "2000000", Delegatable: "1500000"},
		{Denom: "uusd", Available: "500000", Delegatable: "0"},
	}}
}

func testFees() *fee.Calculator {
	return fee.NewCalculator(chain.Mainnet())
}

func zeroCoin(denom string) models.Coin {
	return models.Coin{Amount: "0", Denom: denom}
}

func TestFeeDenomList(t *testing.T) {
	list := FeeDenomList(testBank().Balance, testFees())
	assert.DeepEqual(t, []string{"uluna", "uusd"}, list)
}

func TestIsAvailable(t *testing.T) {
	balances := testBank().Balance

	// amount, tax, and fee share one balance
	assert.True(t, IsAvailable(
		models.Coin{Amount: "1999000", Denom: "uluna"},
		zeroCoin("uluna"),
		models.Coin{Amount: "1000", Denom: "uluna"},
		balances,
	))
	assert.False(t, IsAvailable(
		models.Coin{Amount: "1999001", Denom: "uluna"},
		zeroCoin("uluna"),
		models.Coin{Amount: "1000", Denom: "uluna"},
		balances,
	))

	// fee from another denom is checked against its own balance
	assert.True(t, IsAvailable(
		models.Coin{Amount: "2000000", Denom: "uluna"},
		zeroCoin("uluna"),
		models.Coin{Amount: "500000", Denom: "uusd"},
		balances,
	))
	assert.False(t, IsAvailable(
		models.Coin{Amount: "2000000", Denom: "uluna"},
		zeroCoin("uluna"),
		models.Coin{Amount: "500001", Denom: "uusd"},
		balances,
	))

	// tax counts against the transfer balance
	assert.False(t, IsAvailable(
		models.Coin{Amount: "499000", Denom: "uusd"},
		models.Coin{Amount: "1001", Denom: "uusd"},
		models.Coin{Amount: "100", Denom: "uluna"},
		balances,
	))
}

func TestIsDelegatable(t *testing.T) {
	balances := testBank().Balance

	assert.True(t, IsDelegatable(
		models.Coin{Amount: "1500000", Denom: "uluna"},
		models.Coin{Amount: "1000", Denom: "uluna"},
		balances,
	))
	assert.False(t, IsDelegatable(
		models.Coin{Amount: "1500001", Denom: "uluna"},
		models.Coin{Amount: "1000", Denom: "uluna"},
		balances,
	))
}

func TestNewSendNative(t *testing.T) {
	draft, err := NewSend(chain.Mainnet(), SendRequest{
		From:   testSender,
		To:     testRecipient,
		Denom:  "uusd",
		Amount: "100000",
		Memo:   "rent",
	}, testBank(), models.Coin{Amount: "406", Denom: "uusd"}, testFees())
	assert.NoError(t, err)

	assert.Equal(t, "/bank/accounts/"+testRecipient+"/transfers", draft.URL)
	assert.Equal(t, testSender, draft.From)
	assert.Equal(t, "rent", draft.Memo)
	assert.DeepEqual(t, []models.Coin{{Amount: "100000", Denom: "uusd"}}, draft.Payload["coins"].([]models.Coin))
	assert.DeepEqual(t, []string{"uluna", "uusd"}, draft.FeeDenoms)

	assert.True(t, draft.Validate(models.Coin{Amount: "263", Denom: "uusd"}))
	// 100000 + 406 tax + fee > 500000 available
	assert.False(t, draft.Validate(models.Coin{Amount: "400000", Denom: "uusd"}))
}

func TestNewSendRejectsBadInput(t *testing.T) {
	base := SendRequest{From: testSender, To: testRecipient, Denom: "uusd", Amount: "100000"}

	bad := base
	bad.To = "terra1notanaddress"
	_, err := NewSend(chain.Mainnet(), bad, testBank(), zeroCoin("uusd"), testFees())
	assert.Error(t, err)

	bad = base
	bad.Amount = "0.5"
	_, err = NewSend(chain.Mainnet(), bad, testBank(), zeroCoin("uusd"), testFees())
	assert.Error(t, err)

	bad = base
	bad.Memo = "a<b"
	_, err = NewSend(chain.Mainnet(), bad, testBank(), zeroCoin("uusd"), testFees())
	assert.Error(t, err)
}

func TestNewSendBridge(t *testing.T) {
	draft, err := NewSend(chain.Mainnet(), SendRequest{
		From:    testSender,
		To:      testEthRecipient,
		Network: NetworkEthereum,
		Denom:   "uusd",
		Amount:  "100000",
	}, testBank(), zeroCoin("uusd"), testFees())
	assert.NoError(t, err)

	bridge, ok := ShuttleAddress("mainnet", NetworkEthereum)
	assert.True(t, ok)
	// Coins go to the bridge; the real recipient rides in the memo.
	assert.Equal(t, "/bank/accounts/"+bridge+"/transfers", draft.URL)
	assert.Equal(t, testEthRecipient, draft.Memo)
}

func TestNewSendBridgeRejectsUserMemo(t *testing.T) {
	_, err := NewSend(chain.Mainnet(), SendRequest{
		From:    testSender,
		To:      testEthRecipient,
		Network: NetworkBSC,
		Denom:   "uusd",
		Amount:  "100000",
		Memo:    "hello",
	}, testBank(), zeroCoin("uusd"), testFees())
	assert.Error(t, err)
}

func TestNewSendToken(t *testing.T) {
	token := "terra14z56l0fp2lsf86zy3hty2z47ezkhnthtr9yq76"
	draft, err := NewSend(chain.Mainnet(), SendRequest{
		From:   testSender,
		To:     testRecipient,
		Denom:  token,
		Amount: "250000",
	}, testBank(), zeroCoin("uusd"), testFees())
	assert.NoError(t, err)

	assert.Equal(t, "/wasm/contracts/"+token, draft.URL)

	var msg struct {
		Transfer struct {
			Recipient string `json:"recipient"`
			Amount    string `json:"amount"`
		} `json:"transfer"`
	}
	assert.NoError(t, json.Unmarshal([]byte(draft.Payload["exec_msg"].(string)), &msg))
	assert.Equal(t, testRecipient, msg.Transfer.Recipient)
	assert.Equal(t, "250000", msg.Transfer.Amount)

	// Token transfers only need the fee covered.
	assert.True(t, draft.Validate(models.Coin{Amount: "500000", Denom: "uusd"}))
	assert.False(t, draft.Validate(models.Coin{Amount: "500001", Denom: "uusd"}))
}

func TestNewDelegate(t *testing.T) {
	draft, err := NewDelegate(testSender, testValidator, "1000000", testBank(), testFees())
	assert.NoError(t, err)

	assert.Equal(t, "/staking/delegators/"+testSender+"/delegations", draft.URL)
	assert.Equal(t, testValidator, draft.Payload["validator_address"])
	assert.DeepEqual(t, models.Coin{Amount: "1000000", Denom: "uluna"}, draft.Payload["amount"].(models.Coin))

	assert.True(t, draft.Validate(models.Coin{Amount: "886", Denom: "uluna"}))
}

func TestNewUndelegate(t *testing.T) {
	draft, err := NewUndelegate(testSender, testValidator, "1000000", testBank(), testFees())
	assert.NoError(t, err)
	assert.Equal(t, "/staking/delegators/"+testSender+"/unbonding_delegations", draft.URL)
}

func TestNewRedelegate(t *testing.T) {
	draft, err := NewRedelegate(testSender, testValidator, testValidator2, "1000000", testBank(), testFees())
	assert.NoError(t, err)
	assert.Equal(t, "/staking/delegators/"+testSender+"/redelegations", draft.URL)
	assert.Equal(t, testValidator, draft.Payload["validator_src_address"])
	assert.Equal(t, testValidator2, draft.Payload["validator_dst_address"])

	_, err = NewRedelegate(testSender, testValidator, testValidator, "1000000", testBank(), testFees())
	assert.Error(t, err)
}

func TestNewWithdraw(t *testing.T) {
	draft, err := NewWithdraw(testSender, nil, testBank(), testFees())
	assert.NoError(t, err)
	assert.Equal(t, "/distribution/delegators/"+testSender+"/rewards", draft.URL)

	draft, err = NewWithdraw(testSender, []string{testValidator}, testBank(), testFees())
	assert.NoError(t, err)
	assert.Equal(t, "/distribution/delegators/"+testSender+"/rewards/"+testValidator, draft.URL)
}

func TestNewVote(t *testing.T) {
	draft, err := NewVote(testSender, "42", VoteNoWithVeto, testBank(), testFees())
	assert.NoError(t, err)
	assert.Equal(t, "/gov/proposals/42/votes", draft.URL)
	assert.Equal(t, "no_with_veto", draft.Payload["option"])

	_, err = NewVote(testSender, "42", VoteOption("maybe"), testBank(), testFees())
	assert.Error(t, err)
}

func TestNewDeposit(t *testing.T) {
	draft, err := NewDeposit(testSender, "42", "1000000", testBank(), testFees())
	assert.NoError(t, err)
	assert.Equal(t, "/gov/proposals/42/deposits", draft.URL)
	assert.DeepEqual(t, []models.Coin{{Amount: "1000000", Denom: "uluna"}}, draft.Payload["amount"].([]models.Coin))
}

func TestNewSubmitProposal(t *testing.T) {
	draft, err := NewSubmitProposal(testSender, "Raise cap", "Raise the tax cap", "1000000", testBank(), testFees())
	assert.NoError(t, err)
	assert.Equal(t, "/gov/proposals", draft.URL)
	assert.Equal(t, "text", draft.Payload["proposal_type"])

	_, err = NewSubmitProposal(testSender, "", "desc", "", testBank(), testFees())
	assert.Error(t, err)
}

func TestNewExecuteContract(t *testing.T) {
	contract := "terra1tndcaqxkpc5ce9qee5ggqf430mr2z3pefe5wj6"
	draft, err := NewExecuteContract(testSender, contract, `{"claim":{}}`, nil, testBank(), testFees())
	assert.NoError(t, err)
	assert.Equal(t, "/wasm/contracts/"+contract, draft.URL)
	_, hasCoins := draft.Payload["coins"]
	assert.False(t, hasCoins)

	_, err = NewExecuteContract(testSender, contract, `not json`, nil, testBank(), testFees())
	assert.Error(t, err)
}

func TestNewSwapDraft(t *testing.T) {
	router := swap.NewRouter(nil, chain.DefaultPairs("mainnet"))
	req := swap.Request{From: "uluna", To: "uusd", Amount: "1000000"}

	draft, err := NewSwap(router, testSender, req, swap.Quote{Venue: swap.VenueOnChain}, testBank(), testFees())
	assert.NoError(t, err)
	assert.Equal(t, "/market/swap", draft.URL)
	assert.Equal(t, "uusd", draft.Payload["ask_denom"])

	// Offer plus fee within the Luna balance, no tax on market swaps.
	assert.True(t, draft.Validate(models.Coin{Amount: "886", Denom: "uluna"}))
	assert.False(t, draft.Validate(models.Coin{Amount: "1000001", Denom: "uluna"}))
}
