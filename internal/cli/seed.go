package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/terraincognita07/nutrigoal/internal/db"
	"github.com/terraincognita07/nutrigoal/internal/services"
)

func RunSeedCommand(options db.Options, dir string, out io.Writer) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("reference data directory is required")
	}

	database, err := db.Open(options)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	repositories := db.NewRepositories(database)
	catalog := services.NewCatalogService(repositories.Units, repositories.Nutrients, repositories.GoalTemplates)

	report, err := services.NewReferenceSeeder(catalog).SeedDirectory(dir)
	if err != nil {
		return fmt.Errorf("seed %s: %w", dir, err)
	}

	fmt.Fprintf(out, "Units created: %d\n", report.UnitsCreated)
	fmt.Fprintf(out, "Nutrients created: %d, updated: %d\n", report.NutrientsCreated, report.NutrientsUpdated)
	fmt.Fprintf(out, "Goal templates saved: %d\n", report.TemplatesSaved)
	for _, reason := range report.Skipped {
		fmt.Fprintf(out, "skipped: %s\n", reason)
	}
	return nil
}
