package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PositionReport is the point-in-time valuation of a ticker's accumulated
// purchases. It is derived from the ledger on demand and never stored.
//
// LatestPrice is the purchase price of the most recent ledger entry, used as
// a deliberate stand-in for the current market price. The system never
// fetches a live quote, which keeps reports reproducible for a given ledger.
type PositionReport struct {
	Ticker        string
	Company       string
	AsOf          time.Time // purchase date of the latest entry
	TotalInvested decimal.Decimal
	TotalShares   int64
	LatestPrice   decimal.Decimal
	CurrentValue  decimal.Decimal
	ProfitLoss    decimal.Decimal
}
