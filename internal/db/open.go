package db

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Options struct {
	Driver      string
	SQLitePath  string
	DatabaseURL string
}

// Open connects to the configured store and brings its schema up to date.
func Open(options Options) (*gorm.DB, error) {
	switch strings.ToLower(strings.TrimSpace(options.Driver)) {
	case "", DriverSQLite:
		return OpenSQLite(options.SQLitePath)
	case DriverPostgres:
		if strings.TrimSpace(options.DatabaseURL) == "" {
			return nil, fmt.Errorf("postgres driver requires a database url")
		}
		return OpenPostgres(options.DatabaseURL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", options.Driver)
	}
}
