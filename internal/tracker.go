package internal

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vadiminshakov/earnwatch/config"
	"github.com/vadiminshakov/earnwatch/internal/domain"
	"github.com/vadiminshakov/earnwatch/internal/report"
	"github.com/vadiminshakov/earnwatch/internal/services/aggregator"
	"github.com/vadiminshakov/earnwatch/internal/services/earn"
	"github.com/vadiminshakov/earnwatch/internal/services/pricer"
)

type valuationStore interface {
	Save(snapshot domain.ValuationSnapshot) error
	Close() error
}

type notifier interface {
	Notify(ctx context.Context, v domain.Valuation) error
}

// ErrRunAborted marks a failed run whose reason was already printed to the user.
var ErrRunAborted = errors.New("valuation aborted")

type abortedError struct {
	err error
}

func (e *abortedError) Error() string { return e.err.Error() }

func (e *abortedError) Unwrap() error { return e.err }

func (e *abortedError) Is(target error) bool { return target == ErrRunAborted }

// Option configures optional BalanceTracker outputs.
type Option func(*BalanceTracker)

// WithStore records every valuation in store.
func WithStore(store valuationStore) Option {
	return func(t *BalanceTracker) {
		t.store = store
	}
}

// WithNotifier pushes every valuation through n.
func WithNotifier(n notifier) Option {
	return func(t *BalanceTracker) {
		t.notifier = n
	}
}

// BalanceTracker runs a single flexible earn valuation and reports it.
type BalanceTracker struct {
	Config     config.Config
	logger     *zap.Logger
	aggregator *aggregator.Aggregator
	store      valuationStore
	notifier   notifier
	newRunID   func() string
}

// NewBalanceTracker creates a tracker on top of the given exchange adapters.
func NewBalanceTracker(
	logger *zap.Logger,
	conf config.Config,
	positions earn.PositionSource,
	tickers pricer.TickerSource,
	opts ...Option,
) (*BalanceTracker, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	agg, err := aggregator.NewAggregator(logger, positions, tickers, conf.Stablecoin)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create aggregator")
	}

	t := &BalanceTracker{
		Config:     conf,
		logger:     logger,
		aggregator: agg,
		newRunID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

// Run values the flexible earn account and writes the report to out.
// A failed aggregation is rendered to out and returned matching ErrRunAborted.
// History, export and notification failures are logged and do not fail the run.
func (t *BalanceTracker) Run(ctx context.Context, out io.Writer) (domain.Valuation, error) {
	v, err := t.aggregator.Aggregate(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return domain.Valuation{}, ctx.Err()
		}
		if rerr := report.RenderFailure(out, err); rerr != nil {
			t.logger.Error("failed to render failure", zap.Error(rerr))
			return domain.Valuation{}, err
		}
		return domain.Valuation{}, &abortedError{err: err}
	}

	if err := report.Render(out, v); err != nil {
		return v, errors.Wrap(err, "failed to render valuation")
	}

	t.record(v)
	t.export(v)
	t.notify(ctx, v)

	return v, nil
}

// Close releases the history store.
func (t *BalanceTracker) Close() error {
	if t.store == nil {
		return nil
	}
	return t.store.Close()
}

func (t *BalanceTracker) record(v domain.Valuation) {
	if t.store == nil {
		return
	}
	snapshot := domain.NewValuationSnapshot(t.newRunID(), v)
	if err := t.store.Save(snapshot); err != nil {
		t.logger.Error("failed to save valuation snapshot", zap.Error(err))
		return
	}
	t.logger.Debug("valuation snapshot saved", zap.String("run_id", snapshot.RunID))
}

func (t *BalanceTracker) export(v domain.Valuation) {
	if t.Config.XLSXPath == "" {
		return
	}
	if err := report.ExportXLSX(t.Config.XLSXPath, v); err != nil {
		t.logger.Error("failed to export valuation", zap.String("path", t.Config.XLSXPath), zap.Error(err))
		return
	}
	t.logger.Info("valuation exported", zap.String("path", t.Config.XLSXPath))
}

func (t *BalanceTracker) notify(ctx context.Context, v domain.Valuation) {
	if t.notifier == nil {
		return
	}
	if err := t.notifier.Notify(ctx, v); err != nil {
		t.logger.Error("failed to send notification", zap.Error(err))
	}
}
