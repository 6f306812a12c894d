// Package earn reads flexible savings positions from an exchange.
package earn

import (
	"context"

	"github.com/vadiminshakov/earnwatch/internal/domain"
)

// PositionSource lists flexible earn positions.
type PositionSource interface {
	FlexiblePositions(ctx context.Context) ([]domain.Position, error)
}
