// Package config loads importer settings from the environment
package config

import (
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/ironsworn-content/internal/errors"
)

// Environment variable defaults
const (
	DefaultBaseURL    = "https://raw.githubusercontent.com/rsek/dataforged/main/"
	DefaultOutputDir  = "system/assets"
	DefaultCompendium = "foundry-ironsworn.starforgedmoves"
)

// Config holds every setting the CLI commands read
type Config struct {
	BaseURL     string        `env:"IRONSWORN_DATAFORGED_BASE_URL" envDefault:"https://raw.githubusercontent.com/rsek/dataforged/main/"`
	OutputDir   string        `env:"IRONSWORN_OUTPUT_DIR" envDefault:"system/assets"`
	HTTPTimeout time.Duration `env:"IRONSWORN_HTTP_TIMEOUT" envDefault:"0s"`
	Compendium  string        `env:"IRONSWORN_COMPENDIUM" envDefault:"foundry-ironsworn.starforgedmoves"`

	// RedisAddr enables the redis snapshot repository; a redis:// URL is
	// accepted as well as host:port
	RedisAddr string `env:"IRONSWORN_REDIS_ADDR"`

	IncludeSettingTruths bool `env:"IRONSWORN_WITH_SETTING_TRUTHS" envDefault:"false"`
	Verbose              bool `env:"IRONSWORN_VERBOSE" envDefault:"false"`
}

// Load parses the environment into a validated Config
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "parse env")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that env parsing cannot
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.BaseURL == "" {
		vb.RequiredField("BaseURL")
	} else if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		vb.InvalidField("BaseURL", "must be an absolute URL")
	}
	if c.OutputDir == "" {
		vb.RequiredField("OutputDir")
	}
	if c.HTTPTimeout < 0 {
		vb.InvalidField("HTTPTimeout", "cannot be negative")
	}
	if c.Compendium == "" {
		vb.RequiredField("Compendium")
	}

	return vb.Build()
}
