// Package aggregator values flexible earn positions in a stablecoin.
package aggregator

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vadiminshakov/earnwatch/internal/domain"
)

type positionSource interface {
	FlexiblePositions(ctx context.Context) ([]domain.Position, error)
}

type tickerSource interface {
	TickerPrices(ctx context.Context, symbols []string) (domain.PriceMap, error)
}

// Aggregator sums positions into a single stablecoin total.
type Aggregator struct {
	logger     *zap.Logger
	positions  positionSource
	tickers    tickerSource
	stablecoin string
	now        func() time.Time
}

// NewAggregator creates an Aggregator valuing everything in stablecoin.
func NewAggregator(logger *zap.Logger, positions positionSource, tickers tickerSource, stablecoin string) (*Aggregator, error) {
	if positions == nil {
		return nil, errors.New("position source is required")
	}
	if tickers == nil {
		return nil, errors.New("ticker source is required")
	}
	stablecoin = strings.ToUpper(strings.TrimSpace(stablecoin))
	if stablecoin == "" {
		return nil, errors.New("stablecoin is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Aggregator{
		logger:     logger,
		positions:  positions,
		tickers:    tickers,
		stablecoin: stablecoin,
		now:        time.Now,
	}, nil
}

// Aggregate fetches positions and prices once and returns the valuation.
// Rows without a price are reported as unresolved and left out of the total.
func (a *Aggregator) Aggregate(ctx context.Context) (domain.Valuation, error) {
	a.logger.Info("fetching flexible earn positions")
	positions, err := a.positions.FlexiblePositions(ctx)
	if err != nil {
		return domain.Valuation{}, errors.Wrap(err, "failed to fetch flexible positions")
	}
	a.logger.Info("fetched flexible earn positions", zap.Int("count", len(positions)))

	valuation := domain.Valuation{
		Timestamp:     a.now(),
		Stablecoin:    a.stablecoin,
		Positions:     positions,
		StableBalance: decimal.Zero,
		Total:         decimal.Zero,
	}
	if len(positions) == 0 {
		return valuation, nil
	}

	rows := make([]domain.ValuationRow, 0, len(positions))
	for _, p := range positions {
		row := domain.ValuationRow{Asset: p.Asset, Amount: p.TotalAmount}
		switch {
		case !p.TotalAmount.IsPositive():
			row.Status = domain.RowSkipped
		case a.isStablecoin(p.Asset):
			row.Status = domain.RowStable
			row.Price = decimal.NewFromInt(1)
			row.Value = p.TotalAmount
		default:
			pair := domain.NewPair(strings.ToUpper(p.Asset), a.stablecoin)
			row.Symbol = pair.Symbol()
			row.Status = domain.RowUnresolved
		}
		rows = append(rows, row)
	}

	prices := a.fetchPrices(ctx, rows)
	if err := ctx.Err(); err != nil {
		return domain.Valuation{}, err
	}

	for i := range rows {
		row := &rows[i]
		switch row.Status {
		case domain.RowStable:
			valuation.StableBalance = valuation.StableBalance.Add(row.Value)
			valuation.Total = valuation.Total.Add(row.Value)
		case domain.RowUnresolved:
			price, ok := prices.Lookup(row.Symbol)
			if !ok {
				a.logger.Warn("no ticker price, position excluded from total",
					zap.String("asset", row.Asset),
					zap.String("symbol", row.Symbol),
					zap.String("amount", row.Amount.String()))
				continue
			}
			row.Price = price
			row.Value = row.Amount.Mul(price)
			row.Status = domain.RowPriced
			valuation.Total = valuation.Total.Add(row.Value)
		}
	}

	valuation.Rows = rows
	return valuation, nil
}

// fetchPrices requests every needed symbol in one call. A failed call yields an
// empty map so the run still produces a best-effort total.
func (a *Aggregator) fetchPrices(ctx context.Context, rows []domain.ValuationRow) domain.PriceMap {
	symbols := lo.Uniq(lo.FilterMap(rows, func(r domain.ValuationRow, _ int) (string, bool) {
		return r.Symbol, r.Status == domain.RowUnresolved
	}))
	if len(symbols) == 0 {
		return domain.PriceMap{}
	}

	a.logger.Info("fetching ticker prices", zap.Int("symbols", len(symbols)))
	prices, err := a.tickers.TickerPrices(ctx, symbols)
	if err != nil {
		a.logger.Warn("failed to fetch ticker prices, priced positions excluded from total", zap.Error(err))
		return domain.PriceMap{}
	}

	return prices
}

func (a *Aggregator) isStablecoin(asset string) bool {
	return strings.EqualFold(asset, a.stablecoin)
}
