package lcd_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zeebo/assert"

	"github.com/terra-community/station-core/chain"
	"github.com/terra-community/station-core/lcd"
	"github.com/terra-community/station-core/models"
)

func testClient(t *testing.T, handler http.Handler) *lcd.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return lcd.NewClient(chain.Context{Name: "testnet", ID: "tequila-0004", LCD: server.URL})
}

func TestGetBase(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/blocks/latest", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"block":{"header":{"chain_id":"tequila-0004","height":"4724242"}}}`))
	})
	mux.HandleFunc("/auth/accounts/terra1sender", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":{"value":{"account_number":"118","sequence":"42"}}}`))
	})

	client := testClient(t, mux)
	base, err := client.GetBase(context.Background(), "terra1sender")
	assert.NoError(t, err)
	assert.Equal(t, models.Base{
		From:          "terra1sender",
		ChainID:       "tequila-0004",
		AccountNumber: "118",
		Sequence:      "42",
	}, base)
}

func TestGetAccountUnwrapsVestingAccount(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/accounts/terra1vesting", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":{"value":{"BaseVestingAccount":{"BaseAccount":{"account_number":"7","sequence":"3"}}}}}`))
	})

	client := testClient(t, mux)
	number, sequence, err := client.GetAccount(context.Background(), "terra1vesting")
	assert.NoError(t, err)
	assert.Equal(t, "7", number)
	assert.Equal(t, "3", sequence)
}

func TestSimulateMarketSwap(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/market/swap", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1000000uluna", r.URL.Query().Get("offer_coin"))
		assert.Equal(t, "uusd", r.URL.Query().Get("ask_denom"))
		_, _ = w.Write([]byte(`{"result":{"amount":"25000000","denom":"uusd"}}`))
	})

	client := testClient(t, mux)
	swapped, err := client.SimulateMarketSwap(context.Background(),
		models.Coin{Amount: "1000000", Denom: "uluna"}, "uusd")
	assert.NoError(t, err)
	assert.Equal(t, models.Coin{Amount: "25000000", Denom: "uusd"}, swapped)
}

func TestQueryContract(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/wasm/contracts/terra1pair/store", func(w http.ResponseWriter, r *http.Request) {
		var msg map[string]any
		assert.NoError(t, json.Unmarshal([]byte(r.URL.Query().Get("query_msg")), &msg))
		_, ok := msg["simulation"]
		assert.True(t, ok)
		_, _ = w.Write([]byte(`{"result":{"return_amount":"990","spread_amount":"5","commission_amount":"5"}}`))
	})

	client := testClient(t, mux)
	var out struct {
		ReturnAmount string `json:"return_amount"`
	}
	err := client.QueryContract(context.Background(), "terra1pair",
		map[string]any{"simulation": map[string]any{}}, &out)
	assert.NoError(t, err)
	assert.Equal(t, "990", out.ReturnAmount)
}

func TestAPIErrorMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/treasury/tax_rate", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid request"}`))
	})

	client := testClient(t, mux)
	_, err := client.GetTaxRate(context.Background())
	var apiErr *lcd.APIError
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "invalid request", apiErr.Message)
}

func TestBlockHeightHeaderPropagation(t *testing.T) {
	var sawHeader string
	mux := http.NewServeMux()
	mux.HandleFunc("/blocks/latest", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"block":{"header":{"chain_id":"tequila-0004","height":"100"}}}`))
	})
	mux.HandleFunc("/treasury/tax_rate", func(w http.ResponseWriter, r *http.Request) {
		sawHeader = r.Header.Get("block-height")
		_, _ = w.Write([]byte(`{"result":"0.00406"}`))
	})

	client := testClient(t, mux)
	_, err := client.GetLatestBlock(context.Background())
	assert.NoError(t, err)

	rate, err := client.GetTaxRate(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "0.00406", rate)
	assert.Equal(t, "100", sawHeader)
}

func TestContextCancellation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/treasury/tax_rate", func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	client := testClient(t, mux)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.GetTaxRate(ctx)
	assert.Error(t, err)
}
