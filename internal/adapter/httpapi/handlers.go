package httpapi

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kelsier27/investsim-backend/internal/domain"
	"github.com/kelsier27/investsim-backend/internal/usecase/market"
	"github.com/kelsier27/investsim-backend/internal/usecase/simulation"
	"github.com/kelsier27/investsim-backend/internal/usecase/valuation"
	"github.com/kelsier27/investsim-backend/pkg/logger"
)

const dateLayout = "2006-01-02"

// Handlers bundles the HTTP handlers for the interactive surface.
type Handlers struct {
	market     *market.Service
	simulation *simulation.Service
	valuation  *valuation.Service
	currency   string
	logger     *logger.Logger
}

// NewHandlers creates the handler set for the API.
func NewHandlers(
	marketService *market.Service,
	simulationService *simulation.Service,
	valuationService *valuation.Service,
	currency string,
	log *logger.Logger,
) *Handlers {
	return &Handlers{
		market:     marketService,
		simulation: simulationService,
		valuation:  valuationService,
		currency:   currency,
		logger:     log,
	}
}

// quoteResponse represents a latest-price row for API responses
type quoteResponse struct {
	Ticker       string `json:"ticker"`
	Date         string `json:"date"`
	Close        string `json:"close"`
	CloseDisplay string `json:"close_display"`
	Company      string `json:"company"`
}

// investmentEntryResponse represents one ledger row for API responses
type investmentEntryResponse struct {
	ID                int64  `json:"id"`
	Ticker            string `json:"ticker"`
	Company           string `json:"company"`
	PurchaseDate      string `json:"purchase_date"`
	PurchasePrice     string `json:"purchase_price"`
	InvestmentAmount  string `json:"investment_amount"`
	PurchaseAmount    string `json:"purchase_amount"`
	InvestmentBalance string `json:"investment_balance"`
	TotalShares       int64  `json:"total_shares"`
}

// reportResponse represents the consolidated valuation for API responses
type reportResponse struct {
	Ticker               string `json:"ticker"`
	Company              string `json:"company"`
	AsOf                 string `json:"as_of"`
	TotalInvested        string `json:"total_invested"`
	TotalInvestedDisplay string `json:"total_invested_display"`
	TotalShares          int64  `json:"total_shares"`
	LatestPrice          string `json:"latest_price"`
	CurrentValue         string `json:"current_value"`
	CurrentValueDisplay  string `json:"current_value_display"`
	ProfitLoss           string `json:"profit_loss"`
	ProfitLossDisplay    string `json:"profit_loss_display"`
	Profitable           bool   `json:"profitable"`
}

func toEntryResponse(entry *domain.InvestmentEntry) investmentEntryResponse {
	return investmentEntryResponse{
		ID:                entry.ID,
		Ticker:            entry.Ticker,
		Company:           entry.Company,
		PurchaseDate:      entry.PurchaseDate.Format(dateLayout),
		PurchasePrice:     entry.PurchasePrice.String(),
		InvestmentAmount:  entry.InvestmentAmount.String(),
		PurchaseAmount:    entry.PurchaseAmount.String(),
		InvestmentBalance: entry.InvestmentBalance.String(),
		TotalShares:       entry.TotalShares,
	}
}

// GetTickers returns the configured ticker universe.
// GET /api/tickers
func (h *Handlers) GetTickers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"tickers": h.market.Tickers(),
	})
}

// GetLatestPrices returns the most recent closing price per ticker.
// GET /api/prices/latest
func (h *Handlers) GetLatestPrices(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.market.LatestQuotes(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load latest quotes")
		respondError(w, http.StatusInternalServerError, "failed to load latest prices")
		return
	}

	result := make([]quoteResponse, 0, len(quotes))
	for _, quote := range quotes {
		result = append(result, quoteResponse{
			Ticker:       quote.Ticker,
			Date:         quote.Date.Format(dateLayout),
			Close:        quote.Close.String(),
			CloseDisplay: displayMoney(quote.Close, h.currency),
			Company:      quote.Company,
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"prices": result})
}

// ListInvestments returns the ledger rows for a ticker, oldest first.
// GET /api/investments/{ticker}
func (h *Handlers) ListInvestments(w http.ResponseWriter, r *http.Request) {
	ticker, ok := h.tickerFromRequest(w, r)
	if !ok {
		return
	}

	entries, err := h.valuation.History(r.Context(), ticker)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to list investments")
		respondError(w, http.StatusInternalServerError, "failed to list investments")
		return
	}

	result := make([]investmentEntryResponse, 0, len(entries))
	for _, entry := range entries {
		result = append(result, toEntryResponse(entry))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ticker":      ticker,
		"investments": result,
	})
}

// Generate runs the monthly purchase simulation for a ticker and appends
// the resulting entries to the ledger. Re-invoking resumes from the last
// recorded period instead of duplicating it.
// POST /api/investments/{ticker}/generate
func (h *Handlers) Generate(w http.ResponseWriter, r *http.Request) {
	ticker, ok := h.tickerFromRequest(w, r)
	if !ok {
		return
	}

	entries, err := h.simulation.Generate(r.Context(), ticker)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to generate investments")
		respondError(w, http.StatusInternalServerError, "failed to generate investments")
		return
	}

	result := make([]investmentEntryResponse, 0, len(entries))
	for i := range entries {
		result = append(result, toEntryResponse(&entries[i]))
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"ticker":    ticker,
		"generated": len(result),
		"entries":   result,
	})
}

// GetReport returns the consolidated valuation for a ticker.
// GET /api/investments/{ticker}/report
func (h *Handlers) GetReport(w http.ResponseWriter, r *http.Request) {
	ticker, ok := h.tickerFromRequest(w, r)
	if !ok {
		return
	}

	report, err := h.valuation.Report(r.Context(), ticker)
	if err != nil {
		if errors.Is(err, domain.ErrNoInvestments) {
			respondError(w, http.StatusNotFound, "no investments found for ticker")
			return
		}
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to build report")
		respondError(w, http.StatusInternalServerError, "failed to build report")
		return
	}

	respondJSON(w, http.StatusOK, reportResponse{
		Ticker:               report.Ticker,
		Company:              report.Company,
		AsOf:                 report.AsOf.Format(dateLayout),
		TotalInvested:        report.TotalInvested.String(),
		TotalInvestedDisplay: displayMoney(report.TotalInvested, h.currency),
		TotalShares:          report.TotalShares,
		LatestPrice:          report.LatestPrice.String(),
		CurrentValue:         report.CurrentValue.String(),
		CurrentValueDisplay:  displayMoney(report.CurrentValue, h.currency),
		ProfitLoss:           report.ProfitLoss.String(),
		ProfitLossDisplay:    displayMoney(report.ProfitLoss, h.currency),
		Profitable:           !report.ProfitLoss.IsNegative(),
	})
}

// tickerFromRequest extracts the {ticker} path variable and checks it
// against the configured universe, mirroring the UI's ticker selector.
func (h *Handlers) tickerFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	ticker := mux.Vars(r)["ticker"]
	if ticker == "" {
		respondError(w, http.StatusBadRequest, "ticker is required")
		return "", false
	}

	if !h.market.Supported(ticker) {
		respondError(w, http.StatusBadRequest, "unsupported ticker")
		return "", false
	}

	return ticker, true
}
