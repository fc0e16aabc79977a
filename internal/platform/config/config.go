package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Ledger bootstrap
	LedgerName       string
	BaseCurrencyCode string

	// External rate provider
	RateProviderName string
	RateProviderURL  string

	// RateLimit is a ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string

	// RoundingAccounts maps currency codes to the account absorbing small
	// sync residuals, e.g. "USD:Rounding Differences,EUR:Rounding Differences".
	RoundingAccounts map[string]string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LEDGER_NAME", "main")
	viper.SetDefault("BASE_CURRENCY_CODE", "USD")
	viper.SetDefault("RATE_PROVIDER_NAME", "openexchange")
	viper.SetDefault("RATE_PROVIDER_URL", "")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("ROUNDING_ACCOUNTS", "")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:      viper.GetString("PGSQL_URL"),
		Port:             viper.GetString("PORT"),
		IsProduction:     viper.GetBool("IS_PRODUCTION"),
		LedgerName:       viper.GetString("LEDGER_NAME"),
		BaseCurrencyCode: strings.ToUpper(viper.GetString("BASE_CURRENCY_CODE")),
		RateProviderName: viper.GetString("RATE_PROVIDER_NAME"),
		RateProviderURL:  viper.GetString("RATE_PROVIDER_URL"),
		RateLimit:        viper.GetString("RATE_LIMIT"),
		RoundingAccounts: parseRoundingAccounts(viper.GetString("ROUNDING_ACCOUNTS")),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.RateProviderURL == "" {
		log.Println("Warning: RATE_PROVIDER_URL not set. Currency conversion will only resolve persisted rates.")
	}

	return cfg, nil
}

// parseRoundingAccounts parses "USD:Rounding Differences,EUR:FX Rounding"
// into a code-to-account map. Malformed segments are skipped with a warning.
func parseRoundingAccounts(raw string) map[string]string {
	accounts := make(map[string]string)
	if raw == "" {
		return accounts
	}
	for _, segment := range strings.Split(raw, ",") {
		code, account, found := strings.Cut(segment, ":")
		code = strings.ToUpper(strings.TrimSpace(code))
		account = strings.TrimSpace(account)
		if !found || code == "" || account == "" {
			log.Printf("Warning: skipping malformed ROUNDING_ACCOUNTS segment %q\n", segment)
			continue
		}
		accounts[code] = account
	}
	return accounts
}
