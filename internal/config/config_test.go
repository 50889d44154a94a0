package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CURRENCY_CODE", "")
	t.Setenv("LEDGER_TIMEOUT", "")
	t.Setenv("STOREFRONT_REDIS_ADDR", "")

	cfg := Load()
	assert.Equal(t, "AED", cfg.CurrencyCode)
	assert.Equal(t, 10*time.Second, cfg.LedgerTimeout)
	assert.Equal(t, "dar-alnasr-cart", cfg.CartStorageKey)
	assert.Empty(t, cfg.RedisAddr)
	assert.NotEmpty(t, cfg.StateFile)
	assert.NotEmpty(t, cfg.Owner)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CURRENCY_CODE", "USD")
	t.Setenv("LEDGER_TIMEOUT", "3s")
	t.Setenv("STOREFRONT_OWNER", "layla")
	t.Setenv("STAN_SUBJECT", "  ")

	cfg := Load()
	assert.Equal(t, "USD", cfg.CurrencyCode)
	assert.Equal(t, 3*time.Second, cfg.LedgerTimeout)
	assert.Equal(t, "layla", cfg.Owner)
	assert.Equal(t, "orders", cfg.StanSubject, "blank values fall back to defaults")
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("LEDGER_TIMEOUT", "soon")
	assert.Equal(t, 10*time.Second, Load().LedgerTimeout)
}

func TestNewLogger(t *testing.T) {
	logger, err := Config{LogLevel: "warn"}.NewLogger()
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger, err = Config{LogLevel: "debug"}.NewLogger()
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}
