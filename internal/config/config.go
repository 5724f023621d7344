package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/SanorSmith/Tibba-sub001/internal/domain/attendance"
	"github.com/SanorSmith/Tibba-sub001/internal/domain/payroll"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Shift    attendance.ShiftRules
	Rates    payroll.Rates
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration. Tokens are issued by the hospital's
// identity provider; this service only verifies them.
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

func Load() (*Config, error) {
	// Missing .env is fine; environment variables may come from the runtime.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "tibba"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Shift rules
	shift := attendance.DefaultShiftRules()
	shift.StandardShiftHours, err = getEnvFloat("SHIFT_STANDARD_HOURS", shift.StandardShiftHours)
	if err != nil {
		return nil, err
	}
	shift.LateAfter, err = getEnvTimeOfDay("SHIFT_LATE_AFTER", shift.LateAfter)
	if err != nil {
		return nil, err
	}
	shift.EarlyBefore, err = getEnvTimeOfDay("SHIFT_EARLY_BEFORE", shift.EarlyBefore)
	if err != nil {
		return nil, err
	}
	config.Shift = shift

	// Payroll rates; every rate overridable so policy changes are a config
	// change, not a deploy.
	rates := payroll.DefaultRates()
	for _, r := range []struct {
		env string
		dst *decimal.Decimal
	}{
		{"PAYROLL_HOUSING_RATE", &rates.HousingRate},
		{"PAYROLL_TRANSPORT_ALLOWANCE", &rates.TransportAllowance},
		{"PAYROLL_MEAL_ALLOWANCE", &rates.MealAllowance},
		{"PAYROLL_OVERTIME_MULTIPLIER", &rates.OvertimeMultiplier},
		{"PAYROLL_NIGHT_SHIFT_RATE", &rates.NightShiftRate},
		{"PAYROLL_SS_EMPLOYEE_RATE", &rates.SocialSecurityEmployeeRate},
		{"PAYROLL_SS_EMPLOYER_RATE", &rates.SocialSecurityEmployerRate},
		{"PAYROLL_INCOME_TAX_RATE", &rates.IncomeTaxRate},
		{"PAYROLL_STANDARD_MONTHLY_HOURS", &rates.StandardMonthlyHours},
		{"PAYROLL_ABSENCE_DIVISOR_DAYS", &rates.AbsenceDivisorDays},
		{"PAYROLL_DEFAULT_BASIC_SALARY", &rates.DefaultBasicSalary},
	} {
		*r.dst, err = getEnvDecimal(r.env, *r.dst)
		if err != nil {
			return nil, err
		}
	}
	config.Rates = rates

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getEnvDecimal(key string, fallback decimal.Decimal) (decimal.Decimal, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// getEnvTimeOfDay parses an "HH:MM" clock time.
func getEnvTimeOfDay(key string, fallback attendance.TimeOfDay) (attendance.TimeOfDay, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return attendance.TimeOfDay{}, fmt.Errorf("invalid %s: expected HH:MM, got %q", key, value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return attendance.TimeOfDay{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return attendance.TimeOfDay{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return attendance.TimeOfDay{}, fmt.Errorf("invalid %s: %q out of range", key, value)
	}
	return attendance.TimeOfDay{Hour: hour, Minute: minute}, nil
}
