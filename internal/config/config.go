package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL    string
	DatabaseDriver string
	Timezone       string
	Location       *time.Location
	Port           string
	StoreTimeout   time.Duration
	NotifyTimeout  time.Duration
	TimecardDir    string
	DevMode        bool
}

// Load reads configuration from the environment and an optional .env file.
// Non-empty arguments override their environment variables.
func Load(dbConn, dbDriver, devMode string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	if dbConn == "" {
		dbConn = getEnv("DATABASE_URL", "./timebot.db")
	}

	if dbDriver == "" {
		dbDriver = getEnv("DATABASE_DRIVER", "sqlite3")
	}

	isDevMode := devMode == "true" || (devMode == "" && getEnv("DEV_MODE", "false") == "true")

	timezone := getEnv("TIMEZONE", "America/Denver")
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", timezone, err)
	}

	storeTimeout, err := getDuration("STORE_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	notifyTimeout, err := getDuration("NOTIFY_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL:    dbConn,
		DatabaseDriver: dbDriver,
		Timezone:       timezone,
		Location:       location,
		Port:           getEnv("PORT", "8000"),
		StoreTimeout:   storeTimeout,
		NotifyTimeout:  notifyTimeout,
		TimecardDir:    getEnv("TIMECARD_DIR", "./timecards"),
		DevMode:        isDevMode,
	}

	return cfg, nil
}

func (c *Config) Dump() {
	fmt.Printf("Database URL: %s\n", c.DatabaseURL)
	fmt.Printf("Database Driver: %s\n", c.DatabaseDriver)
	fmt.Printf("Timezone: %s\n", c.Timezone)
	fmt.Printf("Port: %s\n", c.Port)
	fmt.Printf("Store Timeout: %s\n", c.StoreTimeout)
	fmt.Printf("Notify Timeout: %s\n", c.NotifyTimeout)
	fmt.Printf("Timecard Dir: %s\n", c.TimecardDir)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}
