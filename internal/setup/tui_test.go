package setup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadiminshakov/earnwatch/config"
)

func TestAnswers_Config(t *testing.T) {
	tests := []struct {
		name        string
		answers     Answers
		expected    config.Config
		expectError bool
	}{
		{
			name:    "defaults",
			answers: defaultAnswers(),
			expected: config.Config{
				Platform:    config.PlatformBinance,
				PriceSource: config.PlatformBinance,
				Stablecoin:  "USDT",
				LogLevel:    "info",
				HistoryDir:  "./wal/valuations",
			},
		},
		{
			name: "bybit prices with export",
			answers: Answers{
				PriceSource: config.PlatformBybit,
				Stablecoin:  " usdc ",
				Testnet:     true,
				XLSXPath:    "balance.XLSX",
			},
			expected: config.Config{
				Platform:    config.PlatformBinance,
				PriceSource: config.PlatformBybit,
				Stablecoin:  "USDC",
				Testnet:     true,
				LogLevel:    "info",
				XLSXPath:    "balance.XLSX",
			},
		},
		{
			name:        "empty stablecoin",
			answers:     Answers{PriceSource: config.PlatformBinance},
			expectError: true,
		},
		{
			name:        "bad export extension",
			answers:     Answers{PriceSource: config.PlatformBinance, Stablecoin: "USDT", XLSXPath: "out.csv"},
			expectError: true,
		},
		{
			name:        "unknown price source",
			answers:     Answers{PriceSource: "kraken", Stablecoin: "USDT"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf, err := tt.answers.Config()
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, conf)
		})
	}
}

func TestValidateStablecoin(t *testing.T) {
	assert.NoError(t, validateStablecoin("USDT"))
	assert.NoError(t, validateStablecoin("FDUSD"))
	assert.Error(t, validateStablecoin(""))
	assert.Error(t, validateStablecoin("US-DT"))
}

func TestSummary(t *testing.T) {
	s := summary(config.Default())
	assert.Contains(t, s, "Price source: binance")
	assert.Contains(t, s, "History: off")
	assert.Contains(t, s, "Export: off")
}
