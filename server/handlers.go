package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/terra-community/station-core/fee"
	"github.com/terra-community/station-core/models"
	"github.com/terra-community/station-core/swap"
)

// Quoter selects the best swap venue for a request. *swap.Router
// satisfies it.
type Quoter interface {
	Route(ctx context.Context, req swap.Request) (swap.Quote, error)
}

// TaxQuerier prices the transfer tax for one denomination.
// *tax.Calculator satisfies it.
type TaxQuerier interface {
	Tax(ctx context.Context, denom, amount string) (models.Coin, error)
	Description(ctx context.Context, denom string) (string, error)
}

// Handlers holds the calculators behind the HTTP surface.
type Handlers struct {
	Quoter Quoter
	Taxes  TaxQuerier
	Fees   *fee.Calculator
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		Logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

type quoteRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type quoteResponse struct {
	Venue          string `json:"venue"`
	InputAmount    string `json:"input_amount"`
	ReturnAmount   string `json:"return_amount"`
	TradingFee     string `json:"trading_fee"`
	SpreadAmount   string `json:"spread_amount"`
	MinSpreadRate  string `json:"min_spread_rate,omitempty"`
	MinimumReceive string `json:"minimum_receive,omitempty"`
}

// Quote simulates every viable venue for the pair and returns the best
// one.
func (h *Handlers) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.From == "" || req.To == "" || req.Amount == "" {
		writeError(w, http.StatusBadRequest, "from, to, and amount are required")
		return
	}

	quote, err := h.Quoter.Route(r.Context(), swap.Request{
		From:   req.From,
		To:     req.To,
		Amount: req.Amount,
	})
	switch {
	case errors.Is(err, swap.ErrSwapUnavailable):
		quoteFailures.WithLabelValues("unavailable").Inc()
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case errors.Is(err, swap.ErrAllSimulationsFailed):
		quoteFailures.WithLabelValues("simulation").Inc()
		writeError(w, http.StatusBadGateway, err.Error())
		return
	case err != nil:
		quoteFailures.WithLabelValues("internal").Inc()
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	quotesServed.WithLabelValues(quote.Venue.String()).Inc()
	writeJSON(w, http.StatusOK, quoteResponse{
		Venue:          quote.Venue.String(),
		InputAmount:    quote.InputAmount,
		ReturnAmount:   quote.ReturnAmount,
		TradingFee:     quote.TradingFee,
		SpreadAmount:   quote.SpreadAmount,
		MinSpreadRate:  quote.MinSpreadRate,
		MinimumReceive: quote.MinimumReceive,
	})
}

type taxResponse struct {
	Tax         models.Coin `json:"tax"`
	Description string      `json:"description,omitempty"`
}

// Tax prices the transfer tax for an amount in the path denomination.
func (h *Handlers) Tax(w http.ResponseWriter, r *http.Request) {
	denom := chi.URLParam(r, "denom")
	amount := r.URL.Query().Get("amount")
	if amount == "" {
		writeError(w, http.StatusBadRequest, "amount query parameter is required")
		return
	}

	taxCoin, err := h.Taxes.Tax(r.Context(), denom, amount)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	resp := taxResponse{Tax: taxCoin}
	if description, err := h.Taxes.Description(r.Context(), denom); err == nil {
		resp.Description = description
	}

	taxQueries.Inc()
	writeJSON(w, http.StatusOK, resp)
}

type feeResponse struct {
	Fee      models.Coin `json:"fee"`
	GasPrice models.Coin `json:"gas_price"`
}

// Fee prices a gas amount in the path denomination.
func (h *Handlers) Fee(w http.ResponseWriter, r *http.Request) {
	denom := chi.URLParam(r, "denom")
	gas := r.URL.Query().Get("gas")
	if gas == "" {
		writeError(w, http.StatusBadRequest, "gas query parameter is required")
		return
	}

	amount, err := h.Fees.FromGas(denom, gas)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	price, err := h.Fees.GasPrice(denom)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	feeQueries.Inc()
	writeJSON(w, http.StatusOK, feeResponse{
		Fee:      models.Coin{Amount: amount, Denom: denom},
		GasPrice: price,
	})
}
