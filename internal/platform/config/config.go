package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret string
	JWTIssuer string

	// Global transaction bounds.
	MinAmount decimal.Decimal
	MaxAmount decimal.Decimal

	// Class-default rolling-window limits, overridable per account.
	DailyLimitChecking   decimal.Decimal
	DailyLimitSavings    decimal.Decimal
	DailyLimitBusiness   decimal.Decimal
	MonthlyLimitChecking decimal.Decimal
	MonthlyLimitSavings  decimal.Decimal
	MonthlyLimitBusiness decimal.Decimal

	// Fraud screen thresholds.
	HighValueThreshold decimal.Decimal
	VelocityCeiling    int
	VelocityWindow     time.Duration

	WireFee     decimal.Decimal
	MaxBulkSize int
	RateLimit   string // ulule/limiter format, e.g. "100-M"
	AuditBuffer int    // queue depth of the async audit recorder
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "corebank")
	viper.SetDefault("MIN_AMOUNT", "0.01")
	viper.SetDefault("MAX_AMOUNT", "1000000.00")
	viper.SetDefault("DAILY_LIMIT_CHECKING", "5000.00")
	viper.SetDefault("DAILY_LIMIT_SAVINGS", "2500.00")
	viper.SetDefault("DAILY_LIMIT_BUSINESS", "50000.00")
	viper.SetDefault("MONTHLY_LIMIT_CHECKING", "50000.00")
	viper.SetDefault("MONTHLY_LIMIT_SAVINGS", "25000.00")
	viper.SetDefault("MONTHLY_LIMIT_BUSINESS", "500000.00")
	viper.SetDefault("HIGH_VALUE_THRESHOLD", "10000.00")
	viper.SetDefault("VELOCITY_CEILING", 10)
	viper.SetDefault("VELOCITY_WINDOW", "1h")
	viper.SetDefault("WIRE_FEE", "25.00")
	viper.SetDefault("MAX_BULK_SIZE", 100)
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("AUDIT_BUFFER", 1024)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.MinAmount = mustDecimal("MIN_AMOUNT")
	cfg.MaxAmount = mustDecimal("MAX_AMOUNT")
	cfg.DailyLimitChecking = mustDecimal("DAILY_LIMIT_CHECKING")
	cfg.DailyLimitSavings = mustDecimal("DAILY_LIMIT_SAVINGS")
	cfg.DailyLimitBusiness = mustDecimal("DAILY_LIMIT_BUSINESS")
	cfg.MonthlyLimitChecking = mustDecimal("MONTHLY_LIMIT_CHECKING")
	cfg.MonthlyLimitSavings = mustDecimal("MONTHLY_LIMIT_SAVINGS")
	cfg.MonthlyLimitBusiness = mustDecimal("MONTHLY_LIMIT_BUSINESS")
	cfg.HighValueThreshold = mustDecimal("HIGH_VALUE_THRESHOLD")
	cfg.WireFee = mustDecimal("WIRE_FEE")

	cfg.VelocityCeiling = viper.GetInt("VELOCITY_CEILING")

	velocityWindowStr := viper.GetString("VELOCITY_WINDOW")
	velocityWindow, err := time.ParseDuration(velocityWindowStr)
	if err != nil {
		velocityWindow = time.Hour
		log.Printf("Warning: Invalid value for VELOCITY_WINDOW ('%s'). Defaulting to %s.\n", velocityWindowStr, velocityWindow)
	}
	cfg.VelocityWindow = velocityWindow

	cfg.MaxBulkSize = viper.GetInt("MAX_BULK_SIZE")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.AuditBuffer = viper.GetInt("AUDIT_BUFFER")

	return cfg, nil
}

// mustDecimal reads a decimal env value, falling back to zero on parse failure.
// Defaults above guarantee a parseable value unless the operator overrides it.
func mustDecimal(key string) decimal.Decimal {
	raw := viper.GetString(key)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		log.Printf("Warning: Invalid decimal for %s ('%s'). Defaulting to 0.\n", key, raw)
		return decimal.Zero
	}
	return d
}
