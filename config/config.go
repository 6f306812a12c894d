package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	PlatformBinance = "binance"
	PlatformBybit   = "bybit"

	defaultStablecoin = "USDT"
	defaultLogLevel   = "info"
)

// Config validated run configuration.
type Config struct {
	// Platform exchange that holds the flexible earn positions.
	Platform string
	// PriceSource exchange used for the ticker snapshot.
	PriceSource string
	// Stablecoin valuation currency and quote suffix of every priced pair.
	Stablecoin string
	Testnet    bool
	LogLevel   string
	// HistoryDir enables the valuation history WAL when set.
	HistoryDir string
	// XLSXPath enables the spreadsheet export when set.
	XLSXPath string
}

// ConfigTmp raw yaml representation of Config.
type ConfigTmp struct {
	Platform    string `yaml:"platform,omitempty"`
	PriceSource string `yaml:"price_source,omitempty"`
	Stablecoin  string `yaml:"stablecoin,omitempty"`
	Testnet     bool   `yaml:"testnet,omitempty"`
	LogLevel    string `yaml:"log_level,omitempty"`
	HistoryDir  string `yaml:"history_dir,omitempty"`
	XLSXPath    string `yaml:"xlsx_path,omitempty"`
}

// ErrInvalidConfig is returned for a config that fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Default returns the configuration used when no file is given.
func Default() Config {
	c, _ := fromTmp(ConfigTmp{})
	return c
}

// Load reads the yaml config at path. An empty path yields Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(ErrInvalidConfig, "read config %s: %v", path, err)
	}

	var tmp ConfigTmp
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return Config{}, errors.Wrapf(ErrInvalidConfig, "parse config %s: %v", path, err)
	}

	return fromTmp(tmp)
}

// Save writes c to path in yaml form.
func Save(path string, c Config) error {
	data, err := yaml.Marshal(c.toTmp())
	if err != nil {
		return errors.Wrap(err, "failed to generate yaml")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to save config file %s", path)
	}
	return nil
}

func fromTmp(c ConfigTmp) (Config, error) {
	conf := Config{
		Platform:    strings.ToLower(strings.TrimSpace(c.Platform)),
		PriceSource: strings.ToLower(strings.TrimSpace(c.PriceSource)),
		Stablecoin:  strings.ToUpper(strings.TrimSpace(c.Stablecoin)),
		Testnet:     c.Testnet,
		LogLevel:    strings.ToLower(strings.TrimSpace(c.LogLevel)),
		HistoryDir:  c.HistoryDir,
		XLSXPath:    c.XLSXPath,
	}

	if conf.Platform == "" {
		conf.Platform = PlatformBinance
	}
	if conf.PriceSource == "" {
		conf.PriceSource = conf.Platform
	}
	if conf.Stablecoin == "" {
		conf.Stablecoin = defaultStablecoin
	}
	if conf.LogLevel == "" {
		conf.LogLevel = defaultLogLevel
	}

	if conf.Platform != PlatformBinance {
		return Config{}, errors.Wrapf(ErrInvalidConfig,
			"incorrect 'platform' param: %s (flexible earn positions are only available on binance)", c.Platform)
	}
	switch conf.PriceSource {
	case PlatformBinance, PlatformBybit:
	default:
		return Config{}, errors.Wrapf(ErrInvalidConfig,
			"incorrect 'price_source' param: %s (correct values are binance, bybit)", c.PriceSource)
	}

	return conf, nil
}

func (c Config) toTmp() ConfigTmp {
	return ConfigTmp{
		Platform:    c.Platform,
		PriceSource: c.PriceSource,
		Stablecoin:  c.Stablecoin,
		Testnet:     c.Testnet,
		LogLevel:    c.LogLevel,
		HistoryDir:  c.HistoryDir,
		XLSXPath:    c.XLSXPath,
	}
}
