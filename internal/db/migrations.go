package db

import (
	"cmp"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"

	embeddedmigrations "github.com/terraincognita07/nutrigoal/migrations"
	"gorm.io/gorm"
)

const schemaMigrationsDDL = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	applied_at %s NOT NULL
)`

// timestampTypes maps a gorm dialector name to the column type used for
// schema_migrations.applied_at. A dialect missing here has no migrations.
var timestampTypes = map[string]string{
	DriverSQLite:   "DATETIME",
	DriverPostgres: "TIMESTAMPTZ",
}

type migration struct {
	version    string
	sequence   int
	name       string
	statements []string
}

// migrate applies every embedded migration for the connection's dialect
// that schema_migrations does not list yet, in version order.
func migrate(database *gorm.DB) error {
	dialect := database.Dialector.Name()
	timestampType, ok := timestampTypes[dialect]
	if !ok {
		return fmt.Errorf("no migrations for database dialect %q", dialect)
	}
	if err := database.Exec(fmt.Sprintf(schemaMigrationsDDL, timestampType)).Error; err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	pending, err := pendingMigrations(database, dialect)
	if err != nil {
		return err
	}
	for _, step := range pending {
		if err := step.apply(database); err != nil {
			return err
		}
	}
	return nil
}

func pendingMigrations(database *gorm.DB, dialect string) ([]migration, error) {
	available, err := embeddedMigrations(dialect)
	if err != nil {
		return nil, err
	}

	var applied []string
	if err := database.Table("schema_migrations").Pluck("version", &applied).Error; err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	return slices.DeleteFunc(available, func(step migration) bool {
		return slices.Contains(applied, step.version)
	}), nil
}

// embeddedMigrations reads <dialect>/NNNN_name.sql files and orders them by
// their numeric prefix. Two files sharing a prefix are rejected.
func embeddedMigrations(dialect string) ([]migration, error) {
	paths, err := fs.Glob(embeddedmigrations.Files, dialect+"/*.sql")
	if err != nil {
		return nil, fmt.Errorf("list %s migrations: %w", dialect, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no embedded migrations for %s", dialect)
	}

	migrations := make([]migration, 0, len(paths))
	seen := make(map[int]string, len(paths))
	for _, filePath := range paths {
		fileName := path.Base(filePath)
		prefix, _, found := strings.Cut(fileName, "_")
		sequence, convErr := strconv.Atoi(prefix)
		if !found || convErr != nil {
			return nil, fmt.Errorf("migration %s: missing numeric prefix", filePath)
		}
		if previous, duplicate := seen[sequence]; duplicate {
			return nil, fmt.Errorf("migrations %s and %s share version %s", previous, fileName, prefix)
		}
		seen[sequence] = fileName

		raw, readErr := fs.ReadFile(embeddedmigrations.Files, filePath)
		if readErr != nil {
			return nil, fmt.Errorf("read migration %s: %w", filePath, readErr)
		}
		statements := sqlStatements(string(raw))
		if len(statements) == 0 {
			return nil, fmt.Errorf("migration %s is empty", filePath)
		}

		migrations = append(migrations, migration{
			version:    prefix,
			sequence:   sequence,
			name:       strings.TrimSuffix(fileName, ".sql"),
			statements: statements,
		})
	}

	slices.SortFunc(migrations, func(left, right migration) int {
		return cmp.Compare(left.sequence, right.sequence)
	})
	return migrations, nil
}

func (step migration) apply(database *gorm.DB) error {
	return database.Transaction(func(tx *gorm.DB) error {
		for index, statement := range step.statements {
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("migration %s statement %d: %w", step.name, index+1, err)
			}
		}
		record := map[string]any{
			"version":    step.version,
			"name":       step.name,
			"applied_at": tx.NowFunc(),
		}
		if err := tx.Table("schema_migrations").Create(record).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", step.name, err)
		}
		return nil
	})
}

// sqlStatements drops "--" comment lines and splits the rest on semicolons.
// Migration files must not put semicolons inside string literals.
func sqlStatements(script string) []string {
	var body strings.Builder
	for line := range strings.Lines(script) {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		body.WriteString(line)
	}

	var statements []string
	for chunk := range strings.SplitSeq(body.String(), ";") {
		if statement := strings.TrimSpace(chunk); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}
