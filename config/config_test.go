package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir runs the test in an empty directory so no immo.* or .env file is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad(t *testing.T) {
	t.Run("loads default values", func(t *testing.T) {
		chdir(t)

		cfg, err := Load("")
		require.NoError(t, err)

		assert.Equal(t, "EUR", cfg.Currency)
		assert.Equal(t, "portfolio.json", cfg.Portfolio)
		assert.Equal(t, 0.02, cfg.Projection.AppreciationRate)
		assert.Equal(t, 2, cfg.Projection.PastYears)
		assert.Equal(t, 20, cfg.Projection.FutureYears)
		assert.Equal(t, -0.99, cfg.IRR.MinRate)
		assert.Equal(t, 1.0, cfg.IRR.MaxRate)
		assert.Equal(t, 100, cfg.IRR.MaxIterations)
		assert.Equal(t, 1e-6, cfg.IRR.Tolerance)
		assert.Equal(t, 6, cfg.IRR.MinMonths)
		assert.Equal(t, "warn", cfg.Log.Level)
		assert.Equal(t, "console", cfg.Log.Format)
	})

	t.Run("loads values from environment variables with IMMO prefix", func(t *testing.T) {
		chdir(t)
		t.Setenv("IMMO_CURRENCY", "usd")
		t.Setenv("IMMO_PROJECTION_APPRECIATION_RATE", "0")
		t.Setenv("IMMO_PROJECTION_FUTURE_YEARS", "30")
		t.Setenv("IMMO_IRR_MAX_ITERATIONS", "50")

		cfg, err := Load("")
		require.NoError(t, err)

		assert.Equal(t, "USD", cfg.Currency)
		assert.Equal(t, 0.0, cfg.Projection.AppreciationRate)
		assert.Equal(t, 30, cfg.Projection.FutureYears)
		assert.Equal(t, 50, cfg.IRR.MaxIterations)
	})

	t.Run("loads the config file", func(t *testing.T) {
		dir := chdir(t)
		path := filepath.Join(dir, "custom.yaml")
		content := "currency: GBP\nprojection:\n  past_years: 5\nlog:\n  level: debug\n  format: json\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "GBP", cfg.Currency)
		assert.Equal(t, 5, cfg.Projection.PastYears)
		assert.Equal(t, 20, cfg.Projection.FutureYears)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("environment wins over the config file", func(t *testing.T) {
		dir := chdir(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "immo.yaml"), []byte("currency: GBP\n"), 0o644))
		t.Setenv("IMMO_CURRENCY", "CHF")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "CHF", cfg.Currency)
	})

	t.Run("loads the .env file", func(t *testing.T) {
		dir := chdir(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("IMMO_PORTFOLIO=biens.yaml\n"), 0o644))
		// godotenv sets the variable for the process, make sure it is restored
		t.Setenv("IMMO_PORTFOLIO", "")
		require.NoError(t, os.Unsetenv("IMMO_PORTFOLIO"))

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "biens.yaml", cfg.Portfolio)
	})

	t.Run("reads the config file named by IMMO_CONFIG_FILE", func(t *testing.T) {
		dir := chdir(t)
		path := filepath.Join(dir, "other.yaml")
		require.NoError(t, os.WriteFile(path, []byte("portfolio: other.json\n"), 0o644))
		t.Setenv(EnvConfigFile, path)

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "other.json", cfg.Portfolio)
	})

	t.Run("missing explicit config file is an error", func(t *testing.T) {
		dir := chdir(t)
		_, err := Load(filepath.Join(dir, "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown currency", map[string]string{"IMMO_CURRENCY": "NOPE"}},
		{"inverted irr bracket", map[string]string{"IMMO_IRR_MIN_RATE": "0.5", "IMMO_IRR_MAX_RATE": "0.1"}},
		{"irr min rate at -100%", map[string]string{"IMMO_IRR_MIN_RATE": "-1"}},
		{"no iterations", map[string]string{"IMMO_IRR_MAX_ITERATIONS": "0"}},
		{"no future", map[string]string{"IMMO_PROJECTION_FUTURE_YEARS": "0"}},
		{"bad log format", map[string]string{"IMMO_LOG_FORMAT": "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestOptions(t *testing.T) {
	chdir(t)
	t.Setenv("IMMO_PROJECTION_APPRECIATION_RATE", "0")

	cfg, err := Load("")
	require.NoError(t, err)

	p := cfg.ProjectionOptions()
	rate, ok := p.AppreciationRate.Get()
	assert.True(t, ok, "an explicit 0 appreciation must stay set")
	assert.Equal(t, 0.0, rate)
	assert.Equal(t, 2, p.PastYears.Or(-1))

	irr := cfg.IRROptions()
	assert.Equal(t, 100, irr.MaxIterations)
	assert.Equal(t, 6, irr.MinMonths)

	l := cfg.Logger()
	assert.Equal(t, "warn", l.Level)
	assert.Equal(t, "stderr", l.Output)
}
