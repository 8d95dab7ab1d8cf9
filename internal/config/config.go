// Package config holds the verifier's public defaults and output settings.
package config

import (
	"github.com/go-faster/errors"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/MJE43/stake-pf-verify/internal/engine"
)

const (
	FormatText = "text"
	FormatJSON = "json"

	DefaultClientSeed          = "pxfv6pdY0X"
	DefaultPublishedCommitment = "6691b3a8b89b96292a9f930343af4690dd4892db29d5af87ac6f6f4bce346fcf"
)

// ErrInvalid marks a configuration value that cannot be used.
var ErrInvalid = errors.New("invalid configuration")

// Config represents the application configuration structure.
type Config struct {
	// Environment selects the logger preset (development or production).
	Environment string `env:"PF_ENVIRONMENT" env-default:"production" yaml:"environment"`

	// Verifier holds the public values of the round being audited.
	Verifier struct {
		// ClientSeed is used when --client is not given.
		ClientSeed string `env:"PF_CLIENT_SEED" env-default:"pxfv6pdY0X" yaml:"clientSeed"`
		// PublishedCommitment is used when --published is not given.
		PublishedCommitment string `env:"PF_PUBLISHED_COMMITMENT" env-default:"6691b3a8b89b96292a9f930343af4690dd4892db29d5af87ac6f6f4bce346fcf" yaml:"publishedCommitment"` //nolint: lll
		// Nonce is used when --nonce is not given.
		Nonce uint64 `env:"PF_NONCE" env-default:"1" yaml:"nonce"`
	} `yaml:"verifier"`

	Output struct {
		// Format is either "text" or "json".
		Format string `env:"PF_OUTPUT" env-default:"text" yaml:"format"`
	} `yaml:"output"`

	Log struct {
		// Level is a zap level name; empty keeps the environment preset.
		Level string `env:"PF_LOG_LEVEL" env-default:"" yaml:"level"`
	} `yaml:"log"`
}

// Load reads the optional yaml file at configPath, then the environment.
// An empty path reads the environment only.
func Load(configPath string) (*Config, error) {
	var cfg Config

	var err error
	if configPath == "" {
		err = cleanenv.ReadEnv(&cfg)
	} else {
		err = cleanenv.ReadConfig(configPath, &cfg)
	}
	if err != nil {
		return nil, errors.Wrap(err, "could not read config")
	}

	return &cfg, nil
}

// Validate checks values that would otherwise surface as confusing
// verification failures.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatText, FormatJSON:
	default:
		return errors.Wrapf(ErrInvalid, "output format %q (want %s or %s)", c.Output.Format, FormatText, FormatJSON)
	}

	if !engine.IsCommitment(c.Verifier.PublishedCommitment) {
		return errors.Wrapf(ErrInvalid, "published commitment %q must be %d lowercase hex characters",
			c.Verifier.PublishedCommitment, engine.CommitmentLength)
	}

	return nil
}
