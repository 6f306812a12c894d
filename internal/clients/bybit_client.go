package clients

import (
	"github.com/hirokisan/bybit/v2"
)

// NewPublicBybitClient creates a Bybit client for public market data.
func NewPublicBybitClient() *bybit.Client {
	return bybit.NewClient()
}
