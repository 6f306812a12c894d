package pricer

import (
	"context"

	"github.com/hirokisan/bybit/v2"
	"github.com/pkg/errors"

	"github.com/vadiminshakov/earnwatch/internal/domain"
)

// BybitPricer reads the Bybit V5 spot ticker snapshot.
type BybitPricer struct {
	client *bybit.Client
}

func NewBybitPricer(client *bybit.Client) *BybitPricer {
	return &BybitPricer{client: client}
}

func (p *BybitPricer) TickerPrices(ctx context.Context, symbols []string) (domain.PriceMap, error) {
	if len(symbols) == 0 {
		return domain.PriceMap{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := p.client.V5().Market().GetTickers(bybit.V5GetTickersParam{
		Category: "spot",
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get bybit spot tickers")
	}
	if result == nil || result.Result.Spot == nil {
		return nil, errors.New("bybit API returned empty spot tickers")
	}

	snapshot := make(map[string]string, len(result.Result.Spot.List))
	for _, ticker := range result.Result.Spot.List {
		snapshot[string(ticker.Symbol)] = ticker.LastPrice
	}

	return pick(symbols, snapshot), nil
}
