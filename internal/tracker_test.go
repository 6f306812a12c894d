package internal

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/adshao/go-binance/v2/common"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadiminshakov/earnwatch/config"
	"github.com/vadiminshakov/earnwatch/internal/domain"
)

type stubPositions struct {
	positions []domain.Position
	err       error
}

func (s *stubPositions) FlexiblePositions(ctx context.Context) ([]domain.Position, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.positions, s.err
}

type stubTickers struct {
	prices domain.PriceMap
}

func (s *stubTickers) TickerPrices(_ context.Context, _ []string) (domain.PriceMap, error) {
	return s.prices, nil
}

type memStore struct {
	saved  []domain.ValuationSnapshot
	err    error
	closed bool
}

func (m *memStore) Save(snapshot domain.ValuationSnapshot) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, snapshot)
	return nil
}

func (m *memStore) Close() error {
	m.closed = true
	return nil
}

type recordingNotifier struct {
	got []domain.Valuation
	err error
}

func (r *recordingNotifier) Notify(_ context.Context, v domain.Valuation) error {
	r.got = append(r.got, v)
	return r.err
}

func samplePositions() *stubPositions {
	return &stubPositions{positions: []domain.Position{
		{Asset: "USDT", TotalAmount: decimal.NewFromInt(100)},
		{Asset: "BTC", TotalAmount: decimal.RequireFromString("0.5")},
	}}
}

func sampleTickers() *stubTickers {
	return &stubTickers{prices: domain.PriceMap{"BTCUSDT": decimal.NewFromInt(60000)}}
}

func TestBalanceTracker_Run(t *testing.T) {
	store := &memStore{}
	notifier := &recordingNotifier{}
	conf := config.Default()
	conf.XLSXPath = filepath.Join(t.TempDir(), "balance.xlsx")

	tracker, err := NewBalanceTracker(nil, conf, samplePositions(), sampleTickers(), WithStore(store), WithNotifier(notifier))
	require.NoError(t, err)
	tracker.newRunID = func() string { return "run-1" }

	var out bytes.Buffer
	v, err := tracker.Run(context.Background(), &out)
	require.NoError(t, err)

	assert.True(t, v.Total.Equal(decimal.NewFromInt(30100)))
	assert.Contains(t, out.String(), "Total flexible balance: $30100.00 USDT")

	require.Len(t, store.saved, 1)
	assert.Equal(t, "run-1", store.saved[0].RunID)
	assert.Equal(t, "30100", store.saved[0].Total)

	require.Len(t, notifier.got, 1)
	assert.True(t, notifier.got[0].Total.Equal(v.Total))

	_, err = os.Stat(conf.XLSXPath)
	assert.NoError(t, err)

	require.NoError(t, tracker.Close())
	assert.True(t, store.closed)
}

func TestBalanceTracker_Run_SideEffectFailuresIgnored(t *testing.T) {
	store := &memStore{err: errors.New("disk full")}
	notifier := &recordingNotifier{err: errors.New("pushover down")}
	conf := config.Default()
	conf.XLSXPath = filepath.Join(t.TempDir(), "missing-dir", "balance.xlsx")

	tracker, err := NewBalanceTracker(nil, conf, samplePositions(), sampleTickers(), WithStore(store), WithNotifier(notifier))
	require.NoError(t, err)

	var out bytes.Buffer
	v, err := tracker.Run(context.Background(), &out)
	require.NoError(t, err)
	assert.True(t, v.Total.Equal(decimal.NewFromInt(30100)))
	assert.Len(t, notifier.got, 1)
}

func TestBalanceTracker_Run_ExchangeFailure(t *testing.T) {
	positions := &stubPositions{err: errors.Wrap(&common.APIError{Code: -2015, Message: "Invalid API-key"}, "get positions")}
	store := &memStore{}
	notifier := &recordingNotifier{}

	tracker, err := NewBalanceTracker(nil, config.Default(), positions, sampleTickers(), WithStore(store), WithNotifier(notifier))
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = tracker.Run(context.Background(), &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRunAborted)

	var apiErr *common.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, int64(-2015), apiErr.Code)

	assert.Contains(t, out.String(), "authentication failed")
	assert.NotContains(t, out.String(), "Total flexible balance")
	assert.Empty(t, store.saved)
	assert.Empty(t, notifier.got)
}

func TestBalanceTracker_Run_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tracker, err := NewBalanceTracker(nil, config.Default(), samplePositions(), sampleTickers())
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = tracker.Run(ctx, &out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestBalanceTracker_CloseWithoutStore(t *testing.T) {
	tracker, err := NewBalanceTracker(nil, config.Default(), samplePositions(), sampleTickers())
	require.NoError(t, err)
	assert.NoError(t, tracker.Close())
}

func TestBalanceTracker_Run_UnexpectedFailureReported(t *testing.T) {
	positions := &stubPositions{err: errors.New("boom")}

	tracker, err := NewBalanceTracker(nil, config.Default(), positions, sampleTickers())
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = tracker.Run(context.Background(), &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRunAborted)
	assert.Contains(t, err.Error(), "boom")
	assert.Contains(t, out.String(), "Query failed: unexpected error")
}
