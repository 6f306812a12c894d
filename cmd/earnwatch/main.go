// Command earnwatch prints the Binance Simple Earn flexible balance valued in
// a stablecoin.
//
// Usage:
//
//	earnwatch [--config config.yaml] [--log-level debug]
//	earnwatch history --config config.yaml
//	earnwatch setup [--output config.gen.yaml]
//
// Required environment variables (or a .env file in the working directory):
//
//	BINANCE_API_KEY, BINANCE_SECRET_KEY
//
// Optional notification variables:
//
//	PUSHOVER_TOKEN, PUSHOVER_USER
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vadiminshakov/earnwatch/config"
	"github.com/vadiminshakov/earnwatch/internal"
	"github.com/vadiminshakov/earnwatch/internal/apierr"
	"github.com/vadiminshakov/earnwatch/internal/report"
	"github.com/vadiminshakov/earnwatch/internal/setup"
	"github.com/vadiminshakov/earnwatch/internal/storage/valuations"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdout)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, out io.Writer) int {
	err := newApp(out).RunContext(ctx, args)
	return exitCode(ctx, err, out)
}

// exitCode maps the run result to the process exit status.
// Configuration and unreported errors are fatal (1). Exchange failures are
// reported and end the run normally (0), as does user cancellation.
func exitCode(ctx context.Context, err error, out io.Writer) int {
	if err == nil {
		return 0
	}
	if ctx.Err() != nil || errors.Is(err, huh.ErrUserAborted) || errors.Is(err, setup.ErrCancelled) {
		fmt.Fprintln(out, "\nCancelled by user")
		return 0
	}

	switch apierr.Classify(err) {
	case apierr.KindConfig:
		return 1
	case apierr.KindAuth, apierr.KindPermission, apierr.KindNetwork, apierr.KindExchange:
		return 0
	}
	if errors.Is(err, internal.ErrRunAborted) {
		return 0
	}
	return 1
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "earnwatch",
		Usage:     "print the Binance flexible earn balance valued in a stablecoin",
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to yaml config",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level: debug, info, warn, error",
			},
		},
		Action: runValuation,
		Commands: []*cli.Command{
			{
				Name:   "history",
				Usage:  "list stored valuations (needs history_dir in the config)",
				Action: runHistory,
			},
			{
				Name:  "setup",
				Usage: "interactive configuration wizard",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Value:   "config.gen.yaml",
						Usage:   "where to write the generated config",
					},
				},
				Action: func(c *cli.Context) error {
					return setup.RunTUI(c.String("output"))
				},
			},
		},
	}
}

func runValuation(c *cli.Context) error {
	out := c.App.Writer

	conf, err := loadConfig(c)
	if err != nil {
		return fail(out, err)
	}

	logger, err := newLogger(conf.LogLevel)
	if err != nil {
		return fail(out, err)
	}
	defer logger.Sync()

	if err := config.LoadDotEnv(); err != nil {
		logger.Warn("failed to load .env file", zap.Error(err))
	}

	creds, err := config.ResolveCredentials("", "")
	if err != nil {
		return fail(out, err)
	}

	push, err := config.ResolvePushover()
	if err != nil {
		logger.Warn("pushover notifications disabled", zap.Error(err))
		push = config.PushoverCredentials{}
	}

	tracker, err := internal.NewBalanceTrackerFromConfig(logger, conf, creds, push)
	if err != nil {
		return fail(out, err)
	}
	defer func() {
		if err := tracker.Close(); err != nil {
			logger.Error("failed to close valuation history", zap.Error(err))
		}
	}()

	logger.Info("starting valuation",
		zap.String("price_source", conf.PriceSource),
		zap.String("stablecoin", conf.Stablecoin))

	_, err = tracker.Run(c.Context, out)
	return err
}

func runHistory(c *cli.Context) error {
	out := c.App.Writer

	conf, err := loadConfig(c)
	if err != nil {
		return fail(out, err)
	}
	if conf.HistoryDir == "" {
		return fail(out, errors.Wrap(config.ErrInvalidConfig, "history_dir is not set"))
	}

	store, err := valuations.NewWALStore(conf.HistoryDir)
	if err != nil {
		return fail(out, err)
	}
	defer store.Close()

	records, err := store.SnapshotsAfter(0)
	if err != nil {
		return fail(out, err)
	}

	return report.RenderHistory(out, records)
}

func loadConfig(c *cli.Context) (config.Config, error) {
	conf, err := config.Load(c.String("config"))
	if err != nil {
		return config.Config{}, err
	}
	if c.IsSet("log-level") {
		conf.LogLevel = c.String("log-level")
	}
	return conf, nil
}

func newLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.Wrapf(config.ErrInvalidConfig, "invalid log level %q", level)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func fail(out io.Writer, err error) error {
	_ = report.RenderFailure(out, err)
	return err
}
