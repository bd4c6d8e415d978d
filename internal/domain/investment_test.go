package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validEntry() InvestmentEntry {
	return InvestmentEntry{
		Ticker:            "TCS",
		Company:           "Tata Consultancy Services",
		PurchaseDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PurchasePrice:     decimal.NewFromInt(450),
		InvestmentAmount:  decimal.NewFromInt(10000),
		PurchaseAmount:    decimal.NewFromInt(9900),
		InvestmentBalance: decimal.NewFromInt(100),
		TotalShares:       22,
	}
}

func TestInvestmentEntry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(e *InvestmentEntry)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "Valid entry should pass",
			mutate:  func(e *InvestmentEntry) {},
			wantErr: false,
		},
		{
			name: "Zero-share entry with full carry-forward should pass",
			mutate: func(e *InvestmentEntry) {
				e.PurchasePrice = decimal.NewFromInt(12000)
				e.InvestmentAmount = decimal.NewFromInt(10000)
				e.PurchaseAmount = decimal.Zero
				e.InvestmentBalance = decimal.NewFromInt(10000)
				e.TotalShares = 0
			},
			wantErr: false,
		},
		{
			name: "Empty ticker should fail",
			mutate: func(e *InvestmentEntry) {
				e.Ticker = ""
			},
			wantErr: true,
			errMsg:  "ticker cannot be empty",
		},
		{
			name: "Non-positive price should fail",
			mutate: func(e *InvestmentEntry) {
				e.PurchasePrice = decimal.Zero
			},
			wantErr: true,
			errMsg:  "purchase price must be positive",
		},
		{
			name: "Negative shares should fail",
			mutate: func(e *InvestmentEntry) {
				e.TotalShares = -1
			},
			wantErr: true,
			errMsg:  "total shares cannot be negative",
		},
		{
			name: "Purchase amount not equal to price times shares should fail",
			mutate: func(e *InvestmentEntry) {
				e.PurchaseAmount = decimal.NewFromInt(9000)
				e.InvestmentBalance = decimal.NewFromInt(1000)
			},
			wantErr: true,
			errMsg:  "purchase amount must equal purchase price times total shares",
		},
		{
			name: "Balance not equal to unspent remainder should fail",
			mutate: func(e *InvestmentEntry) {
				e.InvestmentBalance = decimal.NewFromInt(50)
			},
			wantErr: true,
			errMsg:  "investment balance must equal investment amount minus purchase amount",
		},
		{
			name: "Balance at or above price means affordability was not exhausted",
			mutate: func(e *InvestmentEntry) {
				// 21 shares at 450 leaves 550, enough for one more share.
				e.PurchaseAmount = decimal.NewFromInt(9450)
				e.InvestmentBalance = decimal.NewFromInt(550)
				e.TotalShares = 21
			},
			wantErr: true,
			errMsg:  "investment balance must be less than purchase price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := validEntry()
			tt.mutate(&entry)

			err := entry.Validate()

			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
