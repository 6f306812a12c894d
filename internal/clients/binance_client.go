package clients

import (
	"github.com/adshao/go-binance/v2"
)

// NewBinanceClient creates an authenticated Binance client.
// UseTestnet is package level in go-binance and must be set before the client is built.
func NewBinanceClient(apiKey, apiSecret string, testnet bool) *binance.Client {
	binance.UseTestnet = testnet
	client := binance.NewClient(apiKey, apiSecret)
	return client
}

// NewPublicBinanceClient creates a client without keys for market data only.
func NewPublicBinanceClient() *binance.Client {
	return binance.NewClient("", "")
}
