package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/nutrigoal/internal/models"
)

var (
	ErrInvalidUnit         = errors.New("unit needs a name or an abbreviation")
	ErrUnitNotFound        = errors.New("unit not found")
	ErrInvalidNutrient     = errors.New("invalid nutrient")
	ErrNutrientNotFound    = errors.New("nutrient not found")
	ErrInvalidNutrientTree = errors.New("invalid nutrient tree")
	ErrInvalidGoalTemplate = errors.New("invalid goal template")
	ErrGoalTemplateMissing = errors.New("goal template not found")
)

type CatalogUnitRepository interface {
	List() ([]models.Unit, error)
	FindByID(unitID uint) (models.Unit, error)
	FindByLabel(label string) (models.Unit, bool, error)
	Create(unit *models.Unit) error
}

type CatalogNutrientRepository interface {
	List() ([]models.Nutrient, error)
	FindByID(nutrientID uint) (models.Nutrient, error)
	FindByName(name string) (models.Nutrient, bool, error)
	Create(nutrient *models.Nutrient) error
	SetParent(nutrientID uint, parentID *uint) error
}

type CatalogTemplateRepository interface {
	List() ([]models.GoalTemplate, error)
	FindByID(templateID uint) (models.GoalTemplate, error)
	Upsert(template *models.GoalTemplate) error
}

// CatalogService curates the shared reference data: units, the nutrient tree
// and goal templates.
type CatalogService struct {
	units     CatalogUnitRepository
	nutrients CatalogNutrientRepository
	templates CatalogTemplateRepository
}

func NewCatalogService(units CatalogUnitRepository, nutrients CatalogNutrientRepository, templates CatalogTemplateRepository) *CatalogService {
	return &CatalogService{
		units:     units,
		nutrients: nutrients,
		templates: templates,
	}
}

func (service *CatalogService) ListUnits() ([]models.Unit, error) {
	return service.units.List()
}

func (service *CatalogService) CreateUnit(name string, abbreviation string) (models.Unit, error) {
	unit := models.Unit{Name: optionalText(name), Abbreviation: optionalText(abbreviation)}
	if unit.Name == nil && unit.Abbreviation == nil {
		return models.Unit{}, ErrInvalidUnit
	}
	if err := service.units.Create(&unit); err != nil {
		return models.Unit{}, err
	}
	return unit, nil
}

// FindUnitByLabel looks a unit up by abbreviation or name.
func (service *CatalogService) FindUnitByLabel(label string) (models.Unit, error) {
	unit, found, err := service.units.FindByLabel(strings.TrimSpace(label))
	if err != nil {
		return models.Unit{}, err
	}
	if !found {
		return models.Unit{}, fmt.Errorf("%w: %q", ErrUnitNotFound, label)
	}
	return unit, nil
}

func (service *CatalogService) ListNutrients() ([]models.Nutrient, error) {
	return service.nutrients.List()
}

// NutrientInput describes a nutrient to create.
type NutrientInput struct {
	Name       string
	UnitID     uint
	IsCategory bool
	ParentID   *uint
}

func (service *CatalogService) CreateNutrient(input NutrientInput) (models.Nutrient, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Nutrient{}, fmt.Errorf("%w: name is required", ErrInvalidNutrient)
	}
	if _, err := service.units.FindByID(input.UnitID); err != nil {
		if isNotFound(err) {
			return models.Nutrient{}, ErrUnitNotFound
		}
		return models.Nutrient{}, err
	}
	if input.IsCategory && input.ParentID != nil {
		return models.Nutrient{}, fmt.Errorf("%w: a category cannot have a parent", ErrInvalidNutrientTree)
	}
	if input.ParentID != nil {
		if _, err := service.loadNutrient(*input.ParentID); err != nil {
			return models.Nutrient{}, err
		}
	}

	nutrient := models.Nutrient{
		Name:             name,
		UnitID:           input.UnitID,
		IsCategory:       input.IsCategory,
		ParentNutrientID: input.ParentID,
	}
	if err := service.nutrients.Create(&nutrient); err != nil {
		return models.Nutrient{}, err
	}
	return nutrient, nil
}

// SetNutrientParent moves a nutrient under parentID, or to the root when
// parentID is nil. The move is rejected if it would put the nutrient below
// itself.
func (service *CatalogService) SetNutrientParent(nutrientID uint, parentID *uint) error {
	nutrient, err := service.loadNutrient(nutrientID)
	if err != nil {
		return err
	}
	if parentID == nil {
		return service.nutrients.SetParent(nutrientID, nil)
	}
	if nutrient.IsCategory {
		return fmt.Errorf("%w: a category cannot have a parent", ErrInvalidNutrientTree)
	}

	visited := map[uint]struct{}{}
	for cursor := parentID; cursor != nil; {
		if *cursor == nutrientID {
			return fmt.Errorf("%w: %s cannot be its own ancestor", ErrInvalidNutrientTree, nutrient.Name)
		}
		if _, seen := visited[*cursor]; seen {
			return fmt.Errorf("%w: existing cycle above nutrient %d", ErrInvalidNutrientTree, *cursor)
		}
		visited[*cursor] = struct{}{}

		ancestor, err := service.loadNutrient(*cursor)
		if err != nil {
			return err
		}
		cursor = ancestor.ParentNutrientID
	}
	return service.nutrients.SetParent(nutrientID, parentID)
}

func (service *CatalogService) loadNutrient(nutrientID uint) (models.Nutrient, error) {
	nutrient, err := service.nutrients.FindByID(nutrientID)
	if isNotFound(err) {
		return models.Nutrient{}, fmt.Errorf("%w: %d", ErrNutrientNotFound, nutrientID)
	}
	return nutrient, err
}

func (service *CatalogService) FindNutrientByName(name string) (models.Nutrient, bool, error) {
	return service.nutrients.FindByName(strings.TrimSpace(name))
}

func (service *CatalogService) ListGoalTemplates() ([]models.GoalTemplate, error) {
	return service.templates.List()
}

func (service *CatalogService) GetGoalTemplate(templateID uint) (models.GoalTemplate, error) {
	template, err := service.templates.FindByID(templateID)
	if isNotFound(err) {
		return models.GoalTemplate{}, ErrGoalTemplateMissing
	}
	return template, err
}

// SaveGoalTemplate validates and upserts a template by name.
func (service *CatalogService) SaveGoalTemplate(template models.GoalTemplate) (models.GoalTemplate, error) {
	template.Name = strings.TrimSpace(template.Name)
	if template.Name == "" {
		return models.GoalTemplate{}, fmt.Errorf("%w: name is required", ErrInvalidGoalTemplate)
	}
	if template.Sex != nil && *template.Sex != models.SexMale && *template.Sex != models.SexFemale {
		return models.GoalTemplate{}, fmt.Errorf("%w: unknown sex %q", ErrInvalidGoalTemplate, *template.Sex)
	}
	if template.AgeMin < 0 || template.AgeMax > maxProfileAge || template.AgeMin > template.AgeMax {
		return models.GoalTemplate{}, fmt.Errorf("%w: age range %d-%d", ErrValidationRange, template.AgeMin, template.AgeMax)
	}
	if template.DefaultCalories == 0 {
		template.DefaultCalories = models.DefaultCalories
	}
	if template.DefaultCalories < 0 || template.DefaultCalories > models.MaxGoalCalories {
		return models.GoalTemplate{}, fmt.Errorf("%w: default calories %d", ErrValidationRange, template.DefaultCalories)
	}

	seen := make(map[uint]struct{}, len(template.Nutrients))
	for _, nutrient := range template.Nutrients {
		if nutrient.RecommendedValue < 0 {
			return models.GoalTemplate{}, fmt.Errorf("%w: negative recommended value", ErrValidationRange)
		}
		if _, duplicate := seen[nutrient.NutrientID]; duplicate {
			return models.GoalTemplate{}, fmt.Errorf("%w: nutrient %d listed twice", ErrInvalidGoalTemplate, nutrient.NutrientID)
		}
		seen[nutrient.NutrientID] = struct{}{}
		if _, err := service.loadNutrient(nutrient.NutrientID); err != nil {
			return models.GoalTemplate{}, err
		}
	}

	if err := service.templates.Upsert(&template); err != nil {
		return models.GoalTemplate{}, err
	}
	return template, nil
}

func optionalText(raw string) *string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	return &value
}
