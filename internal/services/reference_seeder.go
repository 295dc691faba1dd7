package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/terraincognita07/nutrigoal/internal/models"
)

const (
	UnitsFileName         = "units.csv"
	NutrientsFileName     = "nutrients.csv"
	GoalTemplatesFileName = "goal_templates.csv"
)

var ErrInvalidReferenceFile = errors.New("invalid reference data file")

var goalTemplateBaseColumns = map[string]struct{}{
	"name":            {},
	"sex":             {},
	"isPregnant":      {},
	"isLactating":     {},
	"ageMin":          {},
	"ageMax":          {},
	"defaultCalories": {},
}

// SeedReport summarizes one import run. Skipped holds human readable reasons
// for rows or columns that were not imported.
type SeedReport struct {
	UnitsCreated     int      `json:"units_created"`
	NutrientsCreated int      `json:"nutrients_created"`
	NutrientsUpdated int      `json:"nutrients_updated"`
	TemplatesSaved   int      `json:"templates_saved"`
	Skipped          []string `json:"skipped,omitempty"`
}

func (report *SeedReport) skip(format string, args ...any) {
	report.Skipped = append(report.Skipped, fmt.Sprintf(format, args...))
}

// ReferenceSeeder imports units, nutrients and goal templates from CSV files.
// Every import is a get-or-create so a directory can be seeded repeatedly.
type ReferenceSeeder struct {
	catalog *CatalogService
}

func NewReferenceSeeder(catalog *CatalogService) *ReferenceSeeder {
	return &ReferenceSeeder{catalog: catalog}
}

// SeedDirectory imports the three reference files from dir in dependency
// order. Missing files are reported and skipped.
func (seeder *ReferenceSeeder) SeedDirectory(dir string) (SeedReport, error) {
	report := SeedReport{}
	steps := []struct {
		file string
		seed func(io.Reader, *SeedReport) error
	}{
		{file: UnitsFileName, seed: seeder.SeedUnits},
		{file: NutrientsFileName, seed: seeder.SeedNutrients},
		{file: GoalTemplatesFileName, seed: seeder.SeedGoalTemplates},
	}

	for _, step := range steps {
		path := filepath.Join(dir, step.file)
		file, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			report.skip("%s: file not found", step.file)
			continue
		}
		if err != nil {
			return report, err
		}
		err = step.seed(file, &report)
		file.Close()
		if err != nil {
			return report, fmt.Errorf("%s: %w", step.file, err)
		}
	}
	return report, nil
}

// SeedUnits reads name,abbreviation rows.
func (seeder *ReferenceSeeder) SeedUnits(source io.Reader, report *SeedReport) error {
	rows, err := readReferenceRows(source, "name", "abbreviation")
	if err != nil {
		return err
	}
	for _, row := range rows {
		name := row.value("name")
		abbreviation := row.value("abbreviation")
		_, created, err := seeder.ensureUnit(name, abbreviation)
		if errors.Is(err, ErrInvalidUnit) {
			report.skip("units line %d: %v", row.line, err)
			continue
		}
		if err != nil {
			return err
		}
		if created {
			report.UnitsCreated++
		}
	}
	return nil
}

func (seeder *ReferenceSeeder) ensureUnit(name string, abbreviation string) (models.Unit, bool, error) {
	for _, label := range []string{abbreviation, name} {
		if label == "" {
			continue
		}
		unit, err := seeder.catalog.FindUnitByLabel(label)
		if err == nil {
			return unit, false, nil
		}
		if !errors.Is(err, ErrUnitNotFound) {
			return models.Unit{}, false, err
		}
	}
	unit, err := seeder.catalog.CreateUnit(name, abbreviation)
	if err != nil {
		return models.Unit{}, false, err
	}
	return unit, true, nil
}

// SeedNutrients reads name,unit_abbreviation,isCategory,parentNutrient rows.
// Parents are linked after every row exists so a child may precede its
// parent in the file.
func (seeder *ReferenceSeeder) SeedNutrients(source io.Reader, report *SeedReport) error {
	rows, err := readReferenceRows(source, "name", "unit_abbreviation", "isCategory", "parentNutrient")
	if err != nil {
		return err
	}

	ids := make(map[string]uint, len(rows))
	for _, row := range rows {
		name := row.value("name")
		if name == "" {
			report.skip("nutrients line %d: name is required", row.line)
			continue
		}
		isCategory, err := parseReferenceBool(row.value("isCategory"))
		if err != nil {
			report.skip("nutrients line %d: isCategory: %v", row.line, err)
			continue
		}

		existing, found, err := seeder.catalog.FindNutrientByName(name)
		if err != nil {
			return err
		}
		if found {
			ids[name] = existing.ID
			report.NutrientsUpdated++
			continue
		}

		unit, _, err := seeder.ensureUnit("", row.value("unit_abbreviation"))
		if errors.Is(err, ErrInvalidUnit) {
			report.skip("nutrients line %d: %s has no unit", row.line, name)
			continue
		}
		if err != nil {
			return err
		}
		nutrient, err := seeder.catalog.CreateNutrient(NutrientInput{Name: name, UnitID: unit.ID, IsCategory: isCategory})
		if err != nil {
			return err
		}
		ids[name] = nutrient.ID
		report.NutrientsCreated++
	}

	for _, row := range rows {
		parentName := row.value("parentNutrient")
		childID, ok := ids[row.value("name")]
		if parentName == "" || !ok {
			continue
		}
		parentID, known := ids[parentName]
		if !known {
			parent, found, err := seeder.catalog.FindNutrientByName(parentName)
			if err != nil {
				return err
			}
			if !found {
				report.skip("nutrients line %d: parent nutrient %q does not exist", row.line, parentName)
				continue
			}
			parentID = parent.ID
		}
		err := seeder.catalog.SetNutrientParent(childID, &parentID)
		if errors.Is(err, ErrInvalidNutrientTree) {
			report.skip("nutrients line %d: %v", row.line, err)
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// SeedGoalTemplates reads name,sex,isPregnant,isLactating,ageMin,ageMax rows
// followed by one column per nutrient name holding its recommended value.
// Columns naming unknown nutrients are reported once and skipped.
func (seeder *ReferenceSeeder) SeedGoalTemplates(source io.Reader, report *SeedReport) error {
	rows, err := readReferenceRows(source, "name", "sex", "isPregnant", "isLactating", "ageMin", "ageMax")
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	nutrientColumns := make(map[string]uint)
	for _, column := range rows[0].header {
		if _, base := goalTemplateBaseColumns[column]; base {
			continue
		}
		nutrient, found, err := seeder.catalog.FindNutrientByName(column)
		if err != nil {
			return err
		}
		if !found {
			report.skip("goal templates: nutrient column %q does not exist", column)
			continue
		}
		nutrientColumns[column] = nutrient.ID
	}

	for _, row := range rows {
		template, err := templateFromRow(row, nutrientColumns)
		if err != nil {
			report.skip("goal templates line %d: %v", row.line, err)
			continue
		}
		_, err = seeder.catalog.SaveGoalTemplate(template)
		if errors.Is(err, ErrInvalidGoalTemplate) || errors.Is(err, ErrValidationRange) {
			report.skip("goal templates line %d: %v", row.line, err)
			continue
		}
		if err != nil {
			return err
		}
		report.TemplatesSaved++
	}
	return nil
}

func templateFromRow(row referenceRow, nutrientColumns map[string]uint) (models.GoalTemplate, error) {
	template := models.GoalTemplate{Name: row.value("name")}
	if sex := row.value("sex"); sex != "" {
		template.Sex = &sex
	}

	var err error
	if template.IsPregnant, err = parseReferenceBool(row.value("isPregnant")); err != nil {
		return models.GoalTemplate{}, fmt.Errorf("isPregnant: %w", err)
	}
	if template.IsLactating, err = parseReferenceBool(row.value("isLactating")); err != nil {
		return models.GoalTemplate{}, fmt.Errorf("isLactating: %w", err)
	}
	if template.AgeMin, err = strconv.Atoi(row.value("ageMin")); err != nil {
		return models.GoalTemplate{}, fmt.Errorf("ageMin: %w", err)
	}
	if template.AgeMax, err = strconv.Atoi(row.value("ageMax")); err != nil {
		return models.GoalTemplate{}, fmt.Errorf("ageMax: %w", err)
	}
	if raw := row.value("defaultCalories"); raw != "" {
		if template.DefaultCalories, err = strconv.Atoi(raw); err != nil {
			return models.GoalTemplate{}, fmt.Errorf("defaultCalories: %w", err)
		}
	}

	for _, column := range row.header {
		nutrientID, ok := nutrientColumns[column]
		if !ok {
			continue
		}
		value := 0.0
		if raw := row.value(column); raw != "" {
			if value, err = strconv.ParseFloat(raw, 64); err != nil {
				return models.GoalTemplate{}, fmt.Errorf("%s: %w", column, err)
			}
		}
		template.Nutrients = append(template.Nutrients, models.GoalTemplateNutrient{NutrientID: nutrientID, RecommendedValue: value})
	}
	return template, nil
}

type referenceRow struct {
	line   int
	header []string
	fields map[string]string
}

func (row referenceRow) value(column string) string {
	return row.fields[column]
}

func readReferenceRows(source io.Reader, required ...string) ([]referenceRow, error) {
	reader := csv.NewReader(source)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header", ErrInvalidReferenceFile)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReferenceFile, err)
	}
	for index := range header {
		header[index] = strings.TrimSpace(strings.TrimPrefix(header[index], "\ufeff"))
	}

	present := make(map[string]struct{}, len(header))
	for _, column := range header {
		present[column] = struct{}{}
	}
	for _, column := range required {
		if _, ok := present[column]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrInvalidReferenceFile, column)
		}
	}

	rows := make([]referenceRow, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidReferenceFile, err)
		}
		line, _ := reader.FieldPos(0)
		row := referenceRow{line: line, header: header, fields: make(map[string]string, len(header))}
		for index, column := range header {
			if index < len(record) {
				row.fields[column] = strings.TrimSpace(record[index])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseReferenceBool(raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}
