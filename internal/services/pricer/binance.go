package pricer

import (
	"context"

	"github.com/adshao/go-binance/v2"
	"github.com/pkg/errors"

	"github.com/vadiminshakov/earnwatch/internal/domain"
)

// BinancePricer reads the Binance spot ticker snapshot.
type BinancePricer struct {
	client *binance.Client
}

func NewBinancePricer(client *binance.Client) *BinancePricer {
	return &BinancePricer{client: client}
}

// TickerPrices fetches all symbol prices in one call and keeps the requested ones.
func (p *BinancePricer) TickerPrices(ctx context.Context, symbols []string) (domain.PriceMap, error) {
	if len(symbols) == 0 {
		return domain.PriceMap{}, nil
	}

	prices, err := p.client.NewListPricesService().Do(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list binance ticker prices")
	}

	snapshot := make(map[string]string, len(prices))
	for _, price := range prices {
		if price == nil {
			continue
		}
		snapshot[price.Symbol] = price.Price
	}

	return pick(symbols, snapshot), nil
}
