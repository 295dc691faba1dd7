package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/terraincognita07/nutrigoal/internal/db"
)

const minSecretKeyLength = 32

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
	"secret":                                     {},
}

type Config struct {
	Port         string
	SecretKey    string
	Location     *time.Location
	CookieSecure bool
	LogLevel     slog.Level
	Database     db.Options
}

// LoadDotEnv reads path into the environment when it exists. Variables that
// are already set win over the file.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// Load reads the server configuration from the environment.
func Load() (Config, error) {
	secretKey, err := resolveSecretKey()
	if err != nil {
		return Config{}, err
	}
	port, err := resolvePort()
	if err != nil {
		return Config{}, err
	}
	logLevel, err := resolveLogLevel()
	if err != nil {
		return Config{}, err
	}
	cookieSecure, err := resolveBool("COOKIE_SECURE", false)
	if err != nil {
		return Config{}, err
	}
	location, err := resolveLocation()
	if err != nil {
		return Config{}, err
	}

	return Config{
		Port:         port,
		SecretKey:    secretKey,
		Location:     location,
		CookieSecure: cookieSecure,
		LogLevel:     logLevel,
		Database:     DatabaseOptions(),
	}, nil
}

// DatabaseOptions is the subset of Load needed by commands that only touch
// storage.
func DatabaseOptions() db.Options {
	return db.Options{
		Driver:      getEnv("DB_DRIVER", db.DriverSQLite),
		SQLitePath:  getEnv("DB_PATH", filepath.Join("data", "nutrigoal.db")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
}

func resolveSecretKey() (string, error) {
	secretKey := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secretKey == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secretKey)]; insecure {
		return "", errors.New("SECRET_KEY uses an insecure placeholder value")
	}
	if len(secretKey) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secretKey, nil
}

func resolvePort() (string, error) {
	raw := getEnv("PORT", "8080")
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid PORT %q", raw)
	}
	return strconv.Itoa(port), nil
}

func resolveLogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return level, nil
}

func resolveLocation() (*time.Location, error) {
	name := getEnv("TZ", "UTC")
	location, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid TZ %q: %w", name, err)
	}
	return location, nil
}

func resolveBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s %q", key, raw)
	}
	return value, nil
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
