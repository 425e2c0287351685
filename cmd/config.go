package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/pricing"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
)

const (
	defaultEnvFile              = ".env"
	defaultStalledOrderSchedule = "0 */15 * * * *"
	defaultStalledOrderAfter    = 48 * time.Hour
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	LogLevel   slog.Level

	FreeShippingThreshold kernel.Money
	FlatShippingFee       kernel.Money
	TaxRate               decimal.Decimal

	StalledOrderSchedule string
	StalledOrderAfter    time.Duration
}

// LoadConfig reads the environment after loading the .env file named by
// --env-file. Variables already set in the process environment win over the
// file. A missing default .env is ignored; a missing explicit one is an error.
func LoadConfig(args []string) (Config, error) {
	flags := pflag.NewFlagSet("storefront", pflag.ContinueOnError)
	envFile := flags.String("env-file", defaultEnvFile, "path to the .env file")
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	if err := godotenv.Load(*envFile); err != nil {
		if flags.Changed("env-file") || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", *envFile, err)
		}
	}

	return configFromEnv(os.LookupEnv)
}

func configFromEnv(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	cfg := Config{
		HTTPPort:             get("HTTP_PORT", "8080"),
		DBHost:               get("DB_HOST", "localhost"),
		DBPort:               get("DB_PORT", "5432"),
		DBUser:               get("DB_USER", ""),
		DBPassword:           get("DB_PASSWORD", ""),
		DBName:               get("DB_NAME", ""),
		DBSslMode:            get("DB_SSLMODE", "disable"),
		StalledOrderSchedule: get("STALLED_ORDER_SCHEDULE", defaultStalledOrderSchedule),
	}

	var problems []error

	if err := cfg.LogLevel.UnmarshalText([]byte(get("LOG_LEVEL", "info"))); err != nil {
		problems = append(problems, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	threshold, err := kernel.ParseMoney(get("FREE_SHIPPING_THRESHOLD", pricing.DefaultFreeShippingThreshold.String()))
	if err != nil {
		problems = append(problems, fmt.Errorf("FREE_SHIPPING_THRESHOLD: %w", err))
	}
	cfg.FreeShippingThreshold = threshold

	fee, err := kernel.ParseMoney(get("FLAT_SHIPPING_FEE", pricing.DefaultFlatShippingFee.String()))
	if err != nil {
		problems = append(problems, fmt.Errorf("FLAT_SHIPPING_FEE: %w", err))
	}
	cfg.FlatShippingFee = fee

	taxRate, err := decimal.NewFromString(get("TAX_RATE", "0"))
	switch {
	case err != nil:
		problems = append(problems, fmt.Errorf("TAX_RATE: %w", err))
	case taxRate.IsNegative():
		problems = append(problems, fmt.Errorf("TAX_RATE: %s is negative", taxRate))
	}
	cfg.TaxRate = taxRate

	after, err := time.ParseDuration(get("STALLED_ORDER_AFTER", defaultStalledOrderAfter.String()))
	switch {
	case err != nil:
		problems = append(problems, fmt.Errorf("STALLED_ORDER_AFTER: %w", err))
	case after <= 0:
		problems = append(problems, fmt.Errorf("STALLED_ORDER_AFTER: %s is not positive", after))
	}
	cfg.StalledOrderAfter = after

	if len(problems) > 0 {
		return Config{}, errors.Join(problems...)
	}
	return cfg, nil
}

// DSN is the PostgreSQL connection string for gorm's postgres driver.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) PricingPolicy() pricing.Policy {
	return pricing.Policy{
		FreeShippingThreshold: c.FreeShippingThreshold,
		FlatShippingFee:       c.FlatShippingFee,
	}
}
