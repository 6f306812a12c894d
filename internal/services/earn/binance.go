package earn

import (
	"context"

	"github.com/adshao/go-binance/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/vadiminshakov/earnwatch/internal/domain"
)

// maxPageSize is the largest page the simple earn position endpoint accepts.
const maxPageSize = 100

// BinanceEarn reads Binance Simple Earn flexible positions.
type BinanceEarn struct {
	client *binance.Client
}

func NewBinanceEarn(client *binance.Client) *BinanceEarn {
	return &BinanceEarn{client: client}
}

// FlexiblePositions returns every flexible position in a single request.
func (e *BinanceEarn) FlexiblePositions(ctx context.Context) ([]domain.Position, error) {
	res, err := e.client.NewSimpleEarnService().
		FlexibleService().
		GetPosition().
		Size(maxPageSize).
		Do(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get binance flexible earn positions")
	}
	if res == nil {
		return nil, nil
	}

	positions := make([]domain.Position, 0, len(res.Rows))
	for _, row := range res.Rows {
		if row.TotalAmount == "" {
			positions = append(positions, domain.Position{Asset: row.Asset, TotalAmount: decimal.Zero})
			continue
		}
		amount, err := decimal.NewFromString(row.TotalAmount)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse total amount %q of %s", row.TotalAmount, row.Asset)
		}
		positions = append(positions, domain.Position{
			Asset:       row.Asset,
			TotalAmount: amount,
		})
	}

	return positions, nil
}
