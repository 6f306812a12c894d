package domain

import "github.com/shopspring/decimal"

// Position flexible earn holding as reported by the exchange.
// Positions are not merged: the same asset may appear more than once.
type Position struct {
	Asset       string
	TotalAmount decimal.Decimal
}

// PriceMap maps a trading pair symbol (BTCUSDT) to its last traded price.
type PriceMap map[string]decimal.Decimal

// Lookup returns the price for symbol and whether it was resolved.
func (m PriceMap) Lookup(symbol string) (decimal.Decimal, bool) {
	if m == nil {
		return decimal.Zero, false
	}
	price, ok := m[symbol]
	return price, ok
}
