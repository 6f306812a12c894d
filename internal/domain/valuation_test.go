package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleValuation() Valuation {
	return Valuation{
		Timestamp:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Stablecoin: "USDT",
		Rows: []ValuationRow{
			{Asset: "USDT", Amount: decimal.NewFromInt(100), Price: decimal.NewFromInt(1), Value: decimal.NewFromInt(100), Status: RowStable},
			{Asset: "BTC", Amount: decimal.RequireFromString("0.5"), Symbol: "BTCUSDT", Price: decimal.NewFromInt(60000), Value: decimal.NewFromInt(30000), Status: RowPriced},
			{Asset: "ETH", Amount: decimal.NewFromInt(2), Symbol: "ETHUSDT", Status: RowUnresolved},
			{Asset: "BNB", Amount: decimal.Zero, Status: RowSkipped},
			{Asset: "DOGE", Amount: decimal.NewFromInt(5), Symbol: "DOGEUSDT", Status: RowUnresolved},
		},
		StableBalance: decimal.NewFromInt(100),
		Total:         decimal.NewFromInt(30100),
	}
}

func TestValuationRow_Counted(t *testing.T) {
	tests := []struct {
		status RowStatus
		want   bool
	}{
		{RowStable, true},
		{RowPriced, true},
		{RowUnresolved, false},
		{RowSkipped, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, ValuationRow{Status: tt.status}.Counted())
		})
	}
}

func TestValuation_RowsWithStatus(t *testing.T) {
	v := sampleValuation()

	unresolved := v.RowsWithStatus(RowUnresolved)
	require.Len(t, unresolved, 2)
	assert.Equal(t, "ETH", unresolved[0].Asset)
	assert.Equal(t, "DOGE", unresolved[1].Asset)

	counted := v.RowsWithStatus(RowStable, RowPriced)
	require.Len(t, counted, 2)
	assert.Equal(t, "USDT", counted[0].Asset)
	assert.Equal(t, "BTC", counted[1].Asset)

	assert.Empty(t, Valuation{}.RowsWithStatus(RowPriced))
}

func TestValuation_Partial(t *testing.T) {
	assert.True(t, sampleValuation().Partial())

	v := sampleValuation()
	v.Rows = v.RowsWithStatus(RowStable, RowPriced, RowSkipped)
	assert.False(t, v.Partial())

	assert.False(t, Valuation{}.Partial())
}

func TestValuation_UnresolvedAssets(t *testing.T) {
	assert.Equal(t, []string{"ETH", "DOGE"}, sampleValuation().UnresolvedAssets())
	assert.Empty(t, Valuation{}.UnresolvedAssets())
}

func TestNewValuationSnapshot(t *testing.T) {
	v := sampleValuation()

	s := NewValuationSnapshot("run-1", v)

	assert.Equal(t, "run-1", s.RunID)
	assert.Equal(t, v.Timestamp, s.Timestamp)
	assert.Equal(t, "USDT", s.Stablecoin)
	assert.Equal(t, "30100", s.Total)
	assert.Equal(t, "100", s.Stable)
	assert.Equal(t, []string{"ETH", "DOGE"}, s.Unresolved)
	assert.Equal(t, 5, s.Rows)
}

func TestNewValuationSnapshot_Empty(t *testing.T) {
	s := NewValuationSnapshot("run-2", Valuation{Stablecoin: "USDC"})

	assert.Equal(t, "0", s.Total)
	assert.Nil(t, s.Unresolved)
	assert.Zero(t, s.Rows)
}
