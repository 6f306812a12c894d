package domain

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// RowStatus describes how a position contributed to the total.
type RowStatus string

const (
	// RowStable stablecoin row, counted at price 1.
	RowStable RowStatus = "stable"
	// RowPriced row valued with a resolved ticker price.
	RowPriced RowStatus = "priced"
	// RowUnresolved row without a ticker price; excluded from the total.
	RowUnresolved RowStatus = "unresolved"
	// RowSkipped zero or negative amount; never counted.
	RowSkipped RowStatus = "skipped"
)

// ValuationRow per-position breakdown line.
type ValuationRow struct {
	Asset  string
	Amount decimal.Decimal
	// Symbol is empty for stable and skipped rows.
	Symbol string
	Price  decimal.Decimal
	Value  decimal.Decimal
	Status RowStatus
}

// Counted reports whether the row contributes to the total.
func (r ValuationRow) Counted() bool {
	return r.Status == RowStable || r.Status == RowPriced
}

// Valuation result of a single aggregation run.
type Valuation struct {
	Timestamp  time.Time
	Stablecoin string
	Positions  []Position
	Rows       []ValuationRow
	// StableBalance sum of stablecoin rows.
	StableBalance decimal.Decimal
	// Total stablecoin-denominated sum of all counted rows.
	Total decimal.Decimal
}

// RowsWithStatus returns rows in input order that have one of the given statuses.
func (v Valuation) RowsWithStatus(statuses ...RowStatus) []ValuationRow {
	var rows []ValuationRow
	for _, r := range v.Rows {
		for _, s := range statuses {
			if r.Status == s {
				rows = append(rows, r)
				break
			}
		}
	}
	return rows
}

// UnresolvedAssets lists the assets of rows left out of the total for lack of a price.
func (v Valuation) UnresolvedAssets() []string {
	return lo.Map(v.RowsWithStatus(RowUnresolved), func(r ValuationRow, _ int) string {
		return r.Asset
	})
}

// Partial reports whether some rows could not be priced.
func (v Valuation) Partial() bool {
	return lo.ContainsBy(v.Rows, func(r ValuationRow) bool { return r.Status == RowUnresolved })
}
