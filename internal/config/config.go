package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite = "sqlite3"
	DriverLibSQL = "libsql"
	DriverMemory = "memory"
)

type Config struct {
	DatabaseURL    string
	DatabaseDriver string
	OutputDir      string

	LogLevel  string
	LogFormat string

	DefaultHourlyRate float64
	DefaultKmRate     float64
	// KeepLastDay refuses removal of the only remaining day entry.
	KeepLastDay bool
	// NextDayDates dates a new day entry one day after the previous one.
	NextDayDates bool

	MalformedDays      string
	ServiceDescription string
	TravelDescription  string
}

func Load(dbConn, dbDriver string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	if dbConn == "" {
		dbConn = getEnv("DATABASE_URL", "./ndis-invoice.db")
	}

	if dbDriver == "" {
		dbDriver = getEnv("DATABASE_DRIVER", defaultDriver(dbConn))
	}

	hourlyRate, err := getEnvFloat("DEFAULT_HOURLY_RATE", 60)
	if err != nil {
		return nil, err
	}
	kmRate, err := getEnvFloat("DEFAULT_KM_RATE", 1)
	if err != nil {
		return nil, err
	}

	malformed := strings.ToLower(getEnv("MALFORMED_DAYS", "skip"))
	if malformed != "skip" && malformed != "zero" {
		return nil, fmt.Errorf("MALFORMED_DAYS must be skip or zero, got %q", malformed)
	}

	cfg := &Config{
		DatabaseURL:        dbConn,
		DatabaseDriver:     dbDriver,
		OutputDir:          getEnv("OUTPUT_DIR", "."),
		LogLevel:           getEnv("LOG_LEVEL", "warn"),
		LogFormat:          getEnv("LOG_FORMAT", "console"),
		DefaultHourlyRate:  hourlyRate,
		DefaultKmRate:      kmRate,
		KeepLastDay:        getEnv("KEEP_LAST_DAY", "true") == "true",
		NextDayDates:       getEnv("NEXT_DAY_DATES", "true") == "true",
		MalformedDays:      malformed,
		ServiceDescription: getEnv("SERVICE_DESCRIPTION", ""),
		TravelDescription:  getEnv("TRAVEL_DESCRIPTION", ""),
	}

	return cfg, nil
}

func (c *Config) Dump() {
	fmt.Printf("Database URL: %s\n", c.DatabaseURL)
	fmt.Printf("Database Driver: %s\n", c.DatabaseDriver)
	fmt.Printf("Output Dir: %s\n", c.OutputDir)
}

// Turso URLs go through the libsql driver, everything else is a local file.
func defaultDriver(url string) string {
	if strings.HasPrefix(url, "libsql://") || strings.HasPrefix(url, "https://") || strings.HasPrefix(url, "http://") {
		return DriverLibSQL
	}
	return DriverSQLite
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s must be a non-negative number, got %q", key, raw)
	}
	return v, nil
}
