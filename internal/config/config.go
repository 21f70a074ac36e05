package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/vytor/userdirectory/internal/logger"
)

const (
	DefaultProfileAPIURL = "https://randomuser.me/api/"
	DefaultResultCount   = 12

	// requestTimeoutMargin is the time a request gets beyond the upstream
	// fetch to store and render the page.
	requestTimeoutMargin = 10 * time.Second
)

type Config struct {
	Addr            string
	DBPath          string
	LogLevel        string
	ProfileAPIURL   string
	ResultCount     int
	Nationalities   []string
	FetchTimeout    time.Duration
	PageTTL         time.Duration
	PruneInterval   time.Duration
	WorkerCount     int
	WorkerQueueSize int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:            envOr("ADDR", ":8080"),
		DBPath:          envOr("DB_PATH", "file:directory.db"),
		LogLevel:        envOr("LOG_LEVEL", "INFO"),
		ProfileAPIURL:   envOr("PROFILE_API_URL", DefaultProfileAPIURL),
		ResultCount:     envIntOr("RESULT_COUNT", DefaultResultCount),
		Nationalities:   envListOr("NATIONALITIES", []string{"au", "ca", "gb", "us"}),
		FetchTimeout:    envDurationOr("FETCH_TIMEOUT", 15*time.Second),
		PageTTL:         envDurationOr("PAGE_TTL", 30*time.Minute),
		PruneInterval:   envDurationOr("PRUNE_INTERVAL", 5*time.Minute),
		WorkerCount:     envIntOr("WORKER_COUNT", 1),
		WorkerQueueSize: envIntOr("WORKER_QUEUE_SIZE", 8),
	}
}

// RequestTimeout bounds a whole HTTP request. It always outlasts FetchTimeout
// so a slow upstream fails as a fetch error, not as a cut-off response.
func (c Config) RequestTimeout() time.Duration {
	return c.FetchTimeout + requestTimeoutMargin
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}
	if _, ok := logger.LookupLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if u, err := url.Parse(c.ProfileAPIURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("PROFILE_API_URL must be an absolute http(s) URL (got %q)", c.ProfileAPIURL))
	}
	if c.ResultCount < 1 || c.ResultCount > 5000 {
		errs = append(errs, fmt.Errorf("RESULT_COUNT must be between 1 and 5000 (got %d)", c.ResultCount))
	}
	for _, nat := range c.Nationalities {
		if len(nat) != 2 {
			errs = append(errs, fmt.Errorf("NATIONALITIES entries must be two-letter codes (got %q)", nat))
			break
		}
	}
	if c.FetchTimeout <= 0 {
		errs = append(errs, fmt.Errorf("FETCH_TIMEOUT must be positive (got %v)", c.FetchTimeout))
	}
	if c.PageTTL <= 0 {
		errs = append(errs, fmt.Errorf("PAGE_TTL must be positive (got %v)", c.PageTTL))
	}
	if c.PruneInterval <= 0 {
		errs = append(errs, fmt.Errorf("PRUNE_INTERVAL must be positive (got %v)", c.PruneInterval))
	}
	if c.WorkerCount < 1 {
		errs = append(errs, fmt.Errorf("WORKER_COUNT must be at least 1 (got %d)", c.WorkerCount))
	}
	if c.WorkerQueueSize < 1 {
		errs = append(errs, fmt.Errorf("WORKER_QUEUE_SIZE must be at least 1 (got %d)", c.WorkerQueueSize))
	}

	return errors.Join(errs...)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %v", key, v, def)
	}
	return def
}

// envListOr splits a comma separated value. An explicit "-" disables the list.
func envListOr(key string, def []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	if v == "-" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}
