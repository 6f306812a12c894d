package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const (
	// EnvAPIKey environment variable holding the Binance API key.
	EnvAPIKey = "BINANCE_API_KEY"
	// EnvSecretKey environment variable holding the Binance API secret.
	EnvSecretKey = "BINANCE_SECRET_KEY"

	dotEnvFile = ".env"
)

// ErrMissingCredentials is returned when no API key/secret pair can be resolved.
var ErrMissingCredentials = errors.New("BINANCE_API_KEY and BINANCE_SECRET_KEY must be set")

// Credentials Binance API key pair.
type Credentials struct {
	APIKey    string `split_words:"true"`
	SecretKey string `split_words:"true"`
}

// PushoverCredentials optional notification credentials.
type PushoverCredentials struct {
	Token string `split_words:"true"`
	User  string `split_words:"true"`
}

// Enabled reports whether both pushover values are set.
func (p PushoverCredentials) Enabled() bool {
	return p.Token != "" && p.User != ""
}

// LoadDotEnv loads a .env file from the working directory if one exists.
// Variables already present in the environment are kept.
func LoadDotEnv() error {
	if _, err := os.Stat(dotEnvFile); err != nil {
		return nil
	}
	return errors.Wrap(godotenv.Load(dotEnvFile), "load .env")
}

// ResolveCredentials returns the key pair from explicit arguments, falling back
// per field to BINANCE_API_KEY and BINANCE_SECRET_KEY.
func ResolveCredentials(apiKey, secretKey string) (Credentials, error) {
	var env Credentials
	if err := envconfig.Process("BINANCE", &env); err != nil {
		return Credentials{}, errors.Wrap(err, "read binance credentials from environment")
	}

	creds := Credentials{APIKey: apiKey, SecretKey: secretKey}
	if creds.APIKey == "" {
		creds.APIKey = env.APIKey
	}
	if creds.SecretKey == "" {
		creds.SecretKey = env.SecretKey
	}

	if creds.APIKey == "" || creds.SecretKey == "" {
		return Credentials{}, ErrMissingCredentials
	}

	return creds, nil
}

// ResolvePushover reads PUSHOVER_TOKEN and PUSHOVER_USER.
func ResolvePushover() (PushoverCredentials, error) {
	var p PushoverCredentials
	if err := envconfig.Process("PUSHOVER", &p); err != nil {
		return PushoverCredentials{}, errors.Wrap(err, "read pushover credentials from environment")
	}
	return p, nil
}
