package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/zeebo/assert"

	"github.com/terra-community/station-core/chain"
	"github.com/terra-community/station-core/fee"
	"github.com/terra-community/station-core/models"
	"github.com/terra-community/station-core/swap"
)

type fakeQuoter struct {
	quote swap.Quote
	err   error
}

func (f *fakeQuoter) Route(_ context.Context, _ swap.Request) (swap.Quote, error) {
	return f.quote, f.err
}

type fakeTaxes struct {
	tax models.Coin
	err error
}

func (f *fakeTaxes) Tax(_ context.Context, denom, _ string) (models.Coin, error) {
	if f.err != nil {
		return models.Coin{}, f.err
	}
	return f.tax, nil
}

func (f *fakeTaxes) Description(_ context.Context, _ string) (string, error) {
	return "Tax (0.406%, Max 1.000000 UST)", nil
}

func newTestServer(quoter Quoter, taxes TaxQuerier) *httptest.Server {
	handlers := &Handlers{
		Quoter: quoter,
		Taxes:  taxes,
		Fees:   fee.NewCalculator(chain.Mainnet()),
	}
	server := NewServer(DefaultServerConfig(), handlers)
	return httptest.NewServer(server.mux)
}

func TestQuoteEndpoint(t *testing.T) {
	quoter := &fakeQuoter{quote: swap.Quote{
		Venue:        swap.VenuePair,
		InputAmount:  "1000000",
		ReturnAmount: "990000",
		TradingFee:   "2970",
		SpreadAmount: "1200",
	}}
	ts := newTestServer(quoter, &fakeTaxes{})
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/v1/quote", "application/json",
		strings.NewReader(`{"from":"uluna","to":"uusd","amount":"1000000"}`))
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "no-store, no-cache, must-revalidate", resp.Header.Get("Cache-Control"))

	var body quoteResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "pair", body.Venue)
	assert.Equal(t, "990000", body.ReturnAmount)
	assert.Equal(t, "", body.MinimumReceive)
}

func TestQuoteEndpointRejectsIncomplete(t *testing.T) {
	ts := newTestServer(&fakeQuoter{}, &fakeTaxes{})
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/v1/quote", "application/json",
		strings.NewReader(`{"from":"uluna"}`))
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestQuoteEndpointUnavailablePair(t *testing.T) {
	ts := newTestServer(&fakeQuoter{err: swap.ErrSwapUnavailable}, &fakeTaxes{})
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/v1/quote", "application/json",
		strings.NewReader(`{"from":"uluna","to":"ibc/unknown","amount":"1"}`))
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestQuoteEndpointSimulationsFailed(t *testing.T) {
	ts := newTestServer(&fakeQuoter{err: swap.ErrAllSimulationsFailed}, &fakeTaxes{})
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/v1/quote", "application/json",
		strings.NewReader(`{"from":"uluna","to":"uusd","amount":"1"}`))
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestTaxEndpoint(t *testing.T) {
	taxes := &fakeTaxes{tax: models.Coin{Amount: "406", Denom: "uusd"}}
	ts := newTestServer(&fakeQuoter{}, taxes)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/tax/uusd?amount=100000")
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body taxResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.DeepEqual(t, models.Coin{Amount: "406", Denom: "uusd"}, body.Tax)
	assert.Equal(t, "Tax (0.406%, Max 1.000000 UST)", body.Description)
}

func TestTaxEndpointRequiresAmount(t *testing.T) {
	ts := newTestServer(&fakeQuoter{}, &fakeTaxes{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/tax/uusd")
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTaxEndpointUpstreamFailure(t *testing.T) {
	ts := newTestServer(&fakeQuoter{}, &fakeTaxes{err: errors.New("treasury unreachable")})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/tax/uusd?amount=100000")
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestFeeEndpoint(t *testing.T) {
	ts := newTestServer(&fakeQuoter{}, &fakeTaxes{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/fee/uluna?gas=100000")
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body feeResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	// ceil(100000 * 0.00506)
	assert.DeepEqual(t, models.Coin{Amount: "506", Denom: "uluna"}, body.Fee)
	assert.Equal(t, "0.00506", body.GasPrice.Amount)
}

func TestFeeEndpointUnknownDenom(t *testing.T) {
	ts := newTestServer(&fakeQuoter{}, &fakeTaxes{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/fee/uatom?gas=100000")
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthEndpoints(t *testing.T) {
	ts := newTestServer(&fakeQuoter{}, &fakeTaxes{})
	defer ts.Close()

	for _, path := range []string{"/server/health", "/server/ready"} {
		resp, err := http.Get(ts.URL + path)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}
}
