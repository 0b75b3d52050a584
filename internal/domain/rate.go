package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RateChange holds the pairwise conversion rates in effect for one calendar
// month. Rows are written by the rate-ingestion process and are read-only to
// the transfer engine.
type RateChange struct {
	ID    int64
	Year  int
	Month int
	Rates map[string]decimal.Decimal
}

// PairKey builds the rate-table key for a currency pair, e.g. "RSD/EUR".
func PairKey(from, to CurrencyType) string {
	return fmt.Sprintf("%s/%s", from, to)
}

// Rate looks up the conversion rate for a pair in this month's table.
func (rc RateChange) Rate(from, to CurrencyType) (decimal.Decimal, bool) {
	rate, ok := rc.Rates[PairKey(from, to)]
	return rate, ok
}
