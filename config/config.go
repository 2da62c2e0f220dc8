// Package config loads the immo configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	patrimoine "github.com/timaelia1-mgt/patrimoine-immo-sub000"
	"github.com/timaelia1-mgt/patrimoine-immo-sub000/logger"
)

// EnvPrefix prefixes the environment variables read by Load, e.g. IMMO_CURRENCY.
const EnvPrefix = "IMMO"

// EnvConfigFile names the configuration file when Load is given no path.
const EnvConfigFile = EnvPrefix + "_CONFIG_FILE"

// Config holds all application configuration
type Config struct {
	Currency   string // ISO 4217 code of the portfolio amounts
	Portfolio  string // default snapshot file
	Projection ProjectionConfig
	IRR        IRRConfig
	Log        LogConfig
}

// ProjectionConfig holds the net worth projection settings
type ProjectionConfig struct {
	AppreciationRate float64 // yearly, 0.02 means 2%
	PastYears        int
	FutureYears      int
}

// IRRConfig holds the IRR solver bounds
type IRRConfig struct {
	MinRate       float64
	MaxRate       float64
	MaxIterations int
	Tolerance     float64
	MinMonths     int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("currency", patrimoine.DefaultCurrency)
	v.SetDefault("portfolio", "portfolio.json")

	p := patrimoine.DefaultProjectionOptions
	v.SetDefault("projection.appreciation_rate", p.AppreciationRate.Or(0))
	v.SetDefault("projection.past_years", p.PastYears.Or(0))
	v.SetDefault("projection.future_years", p.FutureYears)

	irr := patrimoine.DefaultIRROptions
	v.SetDefault("irr.min_rate", irr.MinRate)
	v.SetDefault("irr.max_rate", irr.MaxRate)
	v.SetDefault("irr.max_iterations", irr.MaxIterations)
	v.SetDefault("irr.tolerance", irr.Tolerance)
	v.SetDefault("irr.min_months", irr.MinMonths)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stderr")
}

// Load loads the configuration.
// Priority (highest to lowest):
//  1. Environment variables with IMMO_ prefix (e.g., IMMO_PROJECTION_PAST_YEARS)
//  2. a .env file in the working directory
//  3. the config file: path when not empty, then $IMMO_CONFIG_FILE, otherwise an
//     optional immo.{yaml,json,toml} in the working directory
//  4. Built-in defaults
func Load(path string) (*Config, error) {
	// .env never overrides the real environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("immo")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// no config file is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Currency:  strings.ToUpper(v.GetString("currency")),
		Portfolio: v.GetString("portfolio"),
		Projection: ProjectionConfig{
			AppreciationRate: v.GetFloat64("projection.appreciation_rate"),
			PastYears:        v.GetInt("projection.past_years"),
			FutureYears:      v.GetInt("projection.future_years"),
		},
		IRR: IRRConfig{
			MinRate:       v.GetFloat64("irr.min_rate"),
			MaxRate:       v.GetFloat64("irr.max_rate"),
			MaxIterations: v.GetInt("irr.max_iterations"),
			Tolerance:     v.GetFloat64("irr.tolerance"),
			MinMonths:     v.GetInt("irr.min_months"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if err := patrimoine.ValidateCurrency(c.Currency); err != nil {
		return fmt.Errorf("currency: %w", err)
	}
	if c.Projection.AppreciationRate <= -1 {
		return fmt.Errorf("projection.appreciation_rate must be greater than -1, got %v", c.Projection.AppreciationRate)
	}
	if c.Projection.PastYears < 0 || c.Projection.FutureYears <= 0 {
		return fmt.Errorf("projection.past_years (%d) cannot be negative and projection.future_years (%d) must be positive",
			c.Projection.PastYears, c.Projection.FutureYears)
	}
	if c.IRR.MinRate <= -1 || c.IRR.MinRate >= c.IRR.MaxRate {
		return fmt.Errorf("irr.min_rate (%v) must be greater than -1 and lower than irr.max_rate (%v)", c.IRR.MinRate, c.IRR.MaxRate)
	}
	if c.IRR.MaxIterations <= 0 {
		return fmt.Errorf("irr.max_iterations must be positive")
	}
	if c.IRR.Tolerance <= 0 {
		return fmt.Errorf("irr.tolerance must be positive")
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}

// ProjectionOptions returns the projection settings as engine options.
func (c *Config) ProjectionOptions() patrimoine.ProjectionOptions {
	return patrimoine.ProjectionOptions{
		AppreciationRate: patrimoine.Some(c.Projection.AppreciationRate),
		PastYears:        patrimoine.Some(c.Projection.PastYears),
		FutureYears:      c.Projection.FutureYears,
	}
}

// IRROptions returns the solver bounds as engine options.
func (c *Config) IRROptions() patrimoine.IRROptions {
	return patrimoine.IRROptions{
		MinRate:       c.IRR.MinRate,
		MaxRate:       c.IRR.MaxRate,
		MaxIterations: c.IRR.MaxIterations,
		Tolerance:     c.IRR.Tolerance,
		MinMonths:     c.IRR.MinMonths,
	}
}

// Logger returns the logger settings.
func (c *Config) Logger() *logger.Config {
	cfg := logger.DefaultConfig()
	cfg.Level = c.Log.Level
	cfg.Format = c.Log.Format
	cfg.Output = c.Log.Output
	return cfg
}
