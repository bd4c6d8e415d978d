package loader

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kelsier27/investsim-backend/internal/domain"
)

// MockPriceRepository is a mock implementation of PriceRepository for testing
type MockPriceRepository struct {
	mock.Mock

	saved []domain.PriceRecord
}

func (m *MockPriceRepository) MonthlyOpenings(ctx context.Context, ticker string) ([]domain.MonthlyTrade, error) {
	args := m.Called(ctx, ticker)
	return nil, args.Error(1)
}

func (m *MockPriceRepository) LatestQuotes(ctx context.Context) ([]domain.Quote, error) {
	args := m.Called(ctx)
	return nil, args.Error(1)
}

func (m *MockPriceRepository) SaveBatch(ctx context.Context, records []domain.PriceRecord) error {
	args := m.Called(ctx, records)
	m.saved = append(m.saved, records...)
	return args.Error(0)
}

func TestLoad_ParsesRowsWithHeader(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockPriceRepository)
	service := NewService(mockRepo)

	input := strings.Join([]string{
		"ticker,date,open,close,company",
		"TCS,2024-01-01,3500.50,3522.00,Tata Consultancy Services",
		"TCS,2024-01-02,3522.00,3519.25,Tata Consultancy Services",
		"INFY,2024-01-01,1533.85,1540.00,Infosys",
	}, "\n")

	mockRepo.On("SaveBatch", ctx, mock.AnythingOfType("[]domain.PriceRecord")).Return(nil)

	n, err := service.Load(ctx, strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.Len(t, mockRepo.saved, 3)
	assert.Equal(t, "TCS", mockRepo.saved[0].Ticker)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), mockRepo.saved[0].Date)
	assert.True(t, mockRepo.saved[0].Open.Equal(decimal.RequireFromString("3500.50")))
	assert.Equal(t, "Infosys", mockRepo.saved[2].Company)
}

func TestLoad_HeaderlessInput(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockPriceRepository)
	service := NewService(mockRepo)

	input := "SBIN,2024-03-04,760.10,764.95,State Bank of India\n"

	mockRepo.On("SaveBatch", ctx, mock.AnythingOfType("[]domain.PriceRecord")).Return(nil)

	n, err := service.Load(ctx, strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestLoad_RejectsBadRows(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		errMsg string
	}{
		{
			name:   "invalid date",
			input:  "TCS,01/02/2024,3500,3510,Tata Consultancy Services\nTCS,2024-13-40,1,2,x",
			errMsg: "invalid date",
		},
		{
			name:   "invalid open price",
			input:  "TCS,2024-01-01,abc,3510,Tata Consultancy Services",
			errMsg: "invalid open price",
		},
		{
			name:   "non-positive price",
			input:  "TCS,2024-01-01,0,3510,Tata Consultancy Services",
			errMsg: "prices must be positive",
		},
		{
			name:   "missing ticker",
			input:  ",2024-01-01,3500,3510,Tata Consultancy Services",
			errMsg: "ticker cannot be empty",
		},
		{
			name:   "short row",
			input:  "TCS,2024-01-01,3500",
			errMsg: "expected 5 columns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockPriceRepository)
			service := NewService(mockRepo)

			_, err := service.Load(context.Background(), strings.NewReader(tt.input))

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			mockRepo.AssertNotCalled(t, "SaveBatch")
		})
	}
}

func TestLoad_EmptyInput(t *testing.T) {
	mockRepo := new(MockPriceRepository)
	service := NewService(mockRepo)

	n, err := service.Load(context.Background(), strings.NewReader(""))

	assert.NoError(t, err)
	assert.Equal(t, 0, n)
	mockRepo.AssertNotCalled(t, "SaveBatch")
}
