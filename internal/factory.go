package internal

import (
	"fmt"

	binance "github.com/adshao/go-binance/v2"
	bybit "github.com/hirokisan/bybit/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vadiminshakov/earnwatch/config"
	"github.com/vadiminshakov/earnwatch/internal/clients"
	"github.com/vadiminshakov/earnwatch/internal/notify"
	"github.com/vadiminshakov/earnwatch/internal/services/earn"
	"github.com/vadiminshakov/earnwatch/internal/services/pricer"
	"github.com/vadiminshakov/earnwatch/internal/storage/valuations"
)

// ServiceProvider creates platform-specific exchange adapters.
type ServiceProvider interface {
	Positions() (earn.PositionSource, error)
	Tickers() (pricer.TickerSource, error)
}

// NewServiceProvider creates a service provider based on the client type.
// This is the single point of truth for dispatching to platform-specific implementations.
func NewServiceProvider(client any) (ServiceProvider, error) {
	switch c := client.(type) {
	case *binance.Client:
		return &binanceProvider{client: c}, nil
	case *bybit.Client:
		return &bybitProvider{client: c}, nil
	default:
		return nil, fmt.Errorf("unsupported client type: %T", client)
	}
}

type binanceProvider struct {
	client *binance.Client
}

func (p *binanceProvider) Positions() (earn.PositionSource, error) {
	return earn.NewBinanceEarn(p.client), nil
}
func (p *binanceProvider) Tickers() (pricer.TickerSource, error) {
	return pricer.NewBinancePricer(p.client), nil
}

type bybitProvider struct {
	client *bybit.Client
}

func (p *bybitProvider) Positions() (earn.PositionSource, error) {
	return nil, errors.New("flexible earn positions are not supported on bybit")
}
func (p *bybitProvider) Tickers() (pricer.TickerSource, error) {
	return pricer.NewBybitPricer(p.client), nil
}

// NewBalanceTrackerFromConfig builds the exchange clients and the optional
// history store and notifier described by conf.
func NewBalanceTrackerFromConfig(
	logger *zap.Logger,
	conf config.Config,
	creds config.Credentials,
	push config.PushoverCredentials,
) (*BalanceTracker, error) {
	positions, tickers, err := sourcesFor(conf, creds)
	if err != nil {
		return nil, err
	}

	var opts []Option
	var store *valuations.WALStore
	if conf.HistoryDir != "" {
		if store, err = valuations.NewWALStore(conf.HistoryDir); err != nil {
			return nil, err
		}
		opts = append(opts, WithStore(store))
	}
	if push.Enabled() {
		opts = append(opts, WithNotifier(notify.NewPushoverNotifier(push.Token, push.User)))
	}

	tracker, err := NewBalanceTracker(logger, conf, positions, tickers, opts...)
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return nil, err
	}
	return tracker, nil
}

// sourcesFor picks the position source of conf.Platform and the ticker source
// of conf.PriceSource, sharing one client when both are the same exchange.
func sourcesFor(conf config.Config, creds config.Credentials) (earn.PositionSource, pricer.TickerSource, error) {
	positionsProvider, err := providerFor(conf.Platform, creds, conf.Testnet)
	if err != nil {
		return nil, nil, err
	}
	positions, err := positionsProvider.Positions()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create position source")
	}

	tickersProvider := positionsProvider
	if conf.PriceSource != conf.Platform {
		if tickersProvider, err = providerFor(conf.PriceSource, creds, conf.Testnet); err != nil {
			return nil, nil, err
		}
	}
	tickers, err := tickersProvider.Tickers()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create ticker source")
	}

	return positions, tickers, nil
}

func providerFor(platform string, creds config.Credentials, testnet bool) (ServiceProvider, error) {
	var client any
	switch platform {
	case config.PlatformBinance:
		client = clients.NewBinanceClient(creds.APIKey, creds.SecretKey, testnet)
	case config.PlatformBybit:
		client = clients.NewPublicBybitClient()
	default:
		return nil, fmt.Errorf("unsupported platform: %s", platform)
	}
	return NewServiceProvider(client)
}
