package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelsier27/investsim-backend/internal/adapter/repository/memory"
	"github.com/kelsier27/investsim-backend/internal/domain"
	"github.com/kelsier27/investsim-backend/internal/usecase/market"
	"github.com/kelsier27/investsim-backend/internal/usecase/simulation"
	"github.com/kelsier27/investsim-backend/internal/usecase/valuation"
	"github.com/kelsier27/investsim-backend/pkg/config"
	"github.com/kelsier27/investsim-backend/pkg/logger"
)

const testToken = "test-token"

func newTestRouter(t *testing.T) (http.Handler, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	priceRepo := memory.NewPriceRepository(store)
	investmentRepo := memory.NewInvestmentRepository(store)

	cfg := &config.Config{Env: "development", LogLevel: "error", LogFormat: "json"}
	log := logger.New(cfg)

	marketService := market.NewService(priceRepo, []string{"TCS", "INFY", "SBIN"})
	simulationService := simulation.NewService(priceRepo, investmentRepo, decimal.NewFromInt(10000))
	valuationService := valuation.NewService(investmentRepo)

	handlers := NewHandlers(marketService, simulationService, valuationService, "INR", log)
	return NewRouter(handlers, log, testToken), store
}

func seedReferencePrices(t *testing.T, store *memory.Store) {
	t.Helper()

	repo := memory.NewPriceRepository(store)
	records := []domain.PriceRecord{}
	prices := []int64{500, 450, 1200, 300}
	for i, p := range prices {
		records = append(records, domain.PriceRecord{
			Ticker:  "TCS",
			Date:    time.Date(2024, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC),
			Open:    decimal.NewFromInt(p),
			Close:   decimal.NewFromInt(p + 10),
			Company: "Tata Consultancy Services",
		})
	}
	require.NoError(t, repo.SaveBatch(context.Background(), records))
}

func doRequest(t *testing.T, router http.Handler, method, path, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealth_NoAuthRequired(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPI_RequiresToken(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/tickers", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/tickers", "wrong-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/tickers", testToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetTickers(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/tickers", testToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Tickers []string `json:"tickers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"TCS", "INFY", "SBIN"}, body.Tickers)
}

func TestGenerateAndReport_FullFlow(t *testing.T) {
	router, store := newTestRouter(t)
	seedReferencePrices(t, store)

	// Generate the simulated purchases.
	rec := doRequest(t, router, http.MethodPost, "/api/investments/TCS/generate", testToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	var generated struct {
		Ticker    string                    `json:"ticker"`
		Generated int                       `json:"generated"`
		Entries   []investmentEntryResponse `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &generated))
	assert.Equal(t, 4, generated.Generated)
	require.Len(t, generated.Entries, 4)
	assert.Equal(t, int64(20), generated.Entries[0].TotalShares)
	assert.Equal(t, "100", generated.Entries[1].InvestmentBalance)

	// The ledger now lists the same four periods.
	rec = doRequest(t, router, http.MethodGet, "/api/investments/TCS", testToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed struct {
		Investments []investmentEntryResponse `json:"investments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed.Investments, 4)
	assert.Equal(t, "2024-01-01", listed.Investments[0].PurchaseDate)

	// And the report matches the reference scenario.
	rec = doRequest(t, router, http.MethodGet, "/api/investments/TCS/report", testToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var report reportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, int64(85), report.TotalShares)
	assert.Equal(t, "40000", report.TotalInvested)
	assert.Equal(t, "25500", report.CurrentValue)
	assert.Equal(t, "-14500", report.ProfitLoss)
	assert.False(t, report.Profitable)
	assert.Equal(t, "Tata Consultancy Services", report.Company)
}

func TestGenerate_RetriggerAppendsNothing(t *testing.T) {
	router, store := newTestRouter(t)
	seedReferencePrices(t, store)

	rec := doRequest(t, router, http.MethodPost, "/api/investments/TCS/generate", testToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Same price history, so the resume policy finds no new months.
	rec = doRequest(t, router, http.MethodPost, "/api/investments/TCS/generate", testToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	var generated struct {
		Generated int `json:"generated"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &generated))
	assert.Equal(t, 0, generated.Generated)

	rec = doRequest(t, router, http.MethodGet, "/api/investments/TCS", testToken)
	var listed struct {
		Investments []investmentEntryResponse `json:"investments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed.Investments, 4)
}

func TestGenerate_UnsupportedTicker(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/investments/AAPL/generate", testToken)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerate_EmptyHistory(t *testing.T) {
	router, _ := newTestRouter(t)

	// INFY is in the universe but has no price records.
	rec := doRequest(t, router, http.MethodPost, "/api/investments/INFY/generate", testToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	var generated struct {
		Generated int `json:"generated"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &generated))
	assert.Equal(t, 0, generated.Generated)
}

func TestReport_NoInvestments(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/investments/TCS/report", testToken)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetLatestPrices(t *testing.T) {
	router, store := newTestRouter(t)
	seedReferencePrices(t, store)

	rec := doRequest(t, router, http.MethodGet, "/api/prices/latest", testToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Prices []quoteResponse `json:"prices"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Prices, 1)
	assert.Equal(t, "TCS", body.Prices[0].Ticker)
	assert.Equal(t, "2024-04-01", body.Prices[0].Date)
	assert.Equal(t, "310", body.Prices[0].Close)
	assert.NotEmpty(t, body.Prices[0].CloseDisplay)
}
