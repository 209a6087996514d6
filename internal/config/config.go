package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Database
	SQLiteDBPath string

	// AMQP
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets
	GoogleSpreadsheetID      string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string

	// Worker
	SyncBatchSize int
	SyncInterval  time.Duration

	// Report
	Users          []string
	Categories     []string
	RecentN        int
	ReportCacheTTL time.Duration

	// Backend selection
	DataBackend string
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8081"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/budget.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "budget"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "sync_rows"),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),

		SyncBatchSize: getEnvInt("SYNC_BATCH_SIZE", 10),
		SyncInterval:  getEnvDuration("SYNC_INTERVAL", 30*time.Second),

		Users:          getEnvList("TRACKER_USERS", nil),
		Categories:     getEnvList("TRACKER_CATEGORIES", nil),
		RecentN:        getEnvInt("RECENT_TRANSACTIONS", 10),
		ReportCacheTTL: getEnvDuration("REPORT_CACHE_TTL", 60*time.Second),

		DataBackend: getEnv("DATA_BACKEND", "memory"),
	}
}

// Validate checks the configuration and returns every problem at once.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	validBackends := []string{"memory", "sheets", "sqlite"}
	valid := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			valid = true
			break
		}
	}
	if !valid {
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errs = append(errs, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errs = append(errs, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.DataBackend == "sheets" {
		if c.GoogleSpreadsheetID == "" {
			errs = append(errs, "Google Spreadsheet ID is required when using sheets backend")
		}
		hasJSON := c.GoogleServiceAccountJSON != ""
		hasFile := c.GoogleServiceAccountFile != "" || os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != ""
		if !hasJSON && !hasFile {
			errs = append(errs, "either GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS must be provided for sheets backend")
		}
		if hasFile && c.GoogleServiceAccountFile != "" {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errs = append(errs, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
	}

	if c.SyncBatchSize < 1 {
		errs = append(errs, fmt.Sprintf("invalid sync batch size %d: must be at least 1", c.SyncBatchSize))
	} else if c.SyncBatchSize > 1000 {
		errs = append(errs, fmt.Sprintf("invalid sync batch size %d: must be at most 1000", c.SyncBatchSize))
	}

	if c.SyncInterval < time.Second {
		errs = append(errs, fmt.Sprintf("invalid sync interval %v: must be at least 1 second", c.SyncInterval))
	} else if c.SyncInterval > 24*time.Hour {
		errs = append(errs, fmt.Sprintf("invalid sync interval %v: must be at most 24 hours", c.SyncInterval))
	}

	if c.RecentN < 1 || c.RecentN > 100 {
		errs = append(errs, fmt.Sprintf("invalid recent transactions count %d: must be between 1 and 100", c.RecentN))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
