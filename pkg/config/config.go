// Package config reads tool configuration from the environment, with .env
// files loaded when present. Configuration is read once at process start and
// never mutated; conversions share it read-only.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/FACorreiaa/bank2qfx/pkg/money"
)

// Config holds all application configuration.
type Config struct {
	Limits  LimitsConfig
	Account AccountConfig
	Output  OutputConfig
}

type LimitsConfig struct {
	// MaxRows bounds how many grid rows one conversion may load.
	MaxRows int
}

type AccountConfig struct {
	BankID   string
	AcctID   string
	Currency string
	// InvertCreditCard flips amount signs for credit-card-classified
	// files whose exports report charges as positive "amount spent".
	InvertCreditCard bool
}

type OutputConfig struct {
	// TZSuffix is the OFX timezone suffix stamped onto every timestamp.
	TZSuffix string
	LogLevel string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Missing .env files are fine; the environment still applies.
	_ = godotenv.Load()

	cfg := &Config{
		Limits: LimitsConfig{
			MaxRows: getEnvAsInt("BANK2QFX_MAX_ROWS", 50000),
		},
		Account: AccountConfig{
			BankID:           getEnv("BANK2QFX_BANK_ID", "026005092"),
			AcctID:           getEnv("BANK2QFX_ACCT_ID", "10000001"),
			Currency:         getEnv("BANK2QFX_CURRENCY", money.USD),
			InvertCreditCard: getEnvAsBool("BANK2QFX_INVERT_CC", false),
		},
		Output: OutputConfig{
			TZSuffix: getEnv("BANK2QFX_TZ_SUFFIX", "[-8]"),
			LogLevel: getEnv("BANK2QFX_LOG_LEVEL", "info"),
		},
	}

	if !money.KnownCurrency(cfg.Account.Currency) {
		return nil, fmt.Errorf("BANK2QFX_CURRENCY: unknown currency code %q", cfg.Account.Currency)
	}
	if cfg.Limits.MaxRows < 0 {
		return nil, fmt.Errorf("BANK2QFX_MAX_ROWS must not be negative")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
