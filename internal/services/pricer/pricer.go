// Package pricer fetches ticker snapshots used to value earn positions.
package pricer

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/vadiminshakov/earnwatch/internal/domain"
)

// TickerSource returns the last price of every requested symbol found in a
// single ticker snapshot. Symbols missing from the snapshot are left out of the map.
type TickerSource interface {
	TickerPrices(ctx context.Context, symbols []string) (domain.PriceMap, error)
}

// pick keeps the requested symbols of a full snapshot keyed by symbol.
// Entries with an empty or malformed price count as missing.
func pick(symbols []string, snapshot map[string]string) domain.PriceMap {
	prices := make(domain.PriceMap, len(symbols))
	for _, symbol := range symbols {
		raw, ok := snapshot[symbol]
		if !ok || raw == "" {
			continue
		}
		price, err := decimal.NewFromString(raw)
		if err != nil {
			continue
		}
		prices[symbol] = price
	}
	return prices
}
