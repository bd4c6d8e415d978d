package httpapi

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// displayMoney renders a decimal amount as a localized currency string,
// e.g. "₹10,000.00" for INR. Formatting is a presentation concern only;
// every response also carries the raw decimal string.
func displayMoney(value decimal.Decimal, code string) string {
	// Going through the constructor guarantees a non-nil currency even for
	// codes go-money does not know.
	cur := *money.New(0, code).Currency()
	minor := value.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return cur.Formatter().Format(minor)
}
