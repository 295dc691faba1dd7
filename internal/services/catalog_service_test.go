package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/nutrigoal/internal/models"
	"gorm.io/gorm"
)

type memoryUnitRepo struct {
	units []models.Unit
}

func (repo *memoryUnitRepo) List() ([]models.Unit, error) {
	return repo.units, nil
}

func (repo *memoryUnitRepo) FindByID(unitID uint) (models.Unit, error) {
	for _, unit := range repo.units {
		if unit.ID == unitID {
			return unit, nil
		}
	}
	return models.Unit{}, gorm.ErrRecordNotFound
}

func (repo *memoryUnitRepo) FindByLabel(label string) (models.Unit, bool, error) {
	for _, unit := range repo.units {
		if (unit.Abbreviation != nil && *unit.Abbreviation == label) || (unit.Name != nil && *unit.Name == label) {
			return unit, true, nil
		}
	}
	return models.Unit{}, false, nil
}

func (repo *memoryUnitRepo) Create(unit *models.Unit) error {
	unit.ID = uint(len(repo.units) + 1)
	repo.units = append(repo.units, *unit)
	return nil
}

type memoryNutrientRepo struct {
	nutrients map[uint]models.Nutrient
	nextID    uint
}

func newMemoryNutrientRepo(nutrients ...models.Nutrient) *memoryNutrientRepo {
	repo := &memoryNutrientRepo{nutrients: map[uint]models.Nutrient{}, nextID: 1}
	for _, nutrient := range nutrients {
		repo.nutrients[nutrient.ID] = nutrient
		if nutrient.ID >= repo.nextID {
			repo.nextID = nutrient.ID + 1
		}
	}
	return repo
}

func (repo *memoryNutrientRepo) List() ([]models.Nutrient, error) {
	nutrients := make([]models.Nutrient, 0, len(repo.nutrients))
	for _, nutrient := range repo.nutrients {
		nutrients = append(nutrients, nutrient)
	}
	return nutrients, nil
}

func (repo *memoryNutrientRepo) FindByID(nutrientID uint) (models.Nutrient, error) {
	nutrient, ok := repo.nutrients[nutrientID]
	if !ok {
		return models.Nutrient{}, gorm.ErrRecordNotFound
	}
	return nutrient, nil
}

func (repo *memoryNutrientRepo) FindByName(name string) (models.Nutrient, bool, error) {
	for _, nutrient := range repo.nutrients {
		if nutrient.Name == name {
			return nutrient, true, nil
		}
	}
	return models.Nutrient{}, false, nil
}

func (repo *memoryNutrientRepo) Create(nutrient *models.Nutrient) error {
	nutrient.ID = repo.nextID
	repo.nextID++
	repo.nutrients[nutrient.ID] = *nutrient
	return nil
}

func (repo *memoryNutrientRepo) SetParent(nutrientID uint, parentID *uint) error {
	nutrient := repo.nutrients[nutrientID]
	nutrient.ParentNutrientID = parentID
	repo.nutrients[nutrientID] = nutrient
	return nil
}

type memoryTemplateRepo struct {
	templates []models.GoalTemplate
}

func (repo *memoryTemplateRepo) List() ([]models.GoalTemplate, error) {
	return repo.templates, nil
}

func (repo *memoryTemplateRepo) FindByID(templateID uint) (models.GoalTemplate, error) {
	for _, template := range repo.templates {
		if template.ID == templateID {
			return template, nil
		}
	}
	return models.GoalTemplate{}, gorm.ErrRecordNotFound
}

func (repo *memoryTemplateRepo) Upsert(template *models.GoalTemplate) error {
	for index := range repo.templates {
		if repo.templates[index].Name == template.Name {
			template.ID = repo.templates[index].ID
			repo.templates[index] = *template
			return nil
		}
	}
	template.ID = uint(len(repo.templates) + 1)
	repo.templates = append(repo.templates, *template)
	return nil
}

func gramUnit() models.Unit {
	return models.Unit{ID: 1, Name: stringPtr("Gram"), Abbreviation: stringPtr("g")}
}

func newCatalogServiceForTest(nutrients ...models.Nutrient) (*CatalogService, *memoryNutrientRepo, *memoryTemplateRepo) {
	nutrientRepo := newMemoryNutrientRepo(nutrients...)
	templateRepo := &memoryTemplateRepo{}
	service := NewCatalogService(&memoryUnitRepo{units: []models.Unit{gramUnit()}}, nutrientRepo, templateRepo)
	return service, nutrientRepo, templateRepo
}

func TestCatalogServiceCreateUnitRequiresNameOrAbbreviation(t *testing.T) {
	service, _, _ := newCatalogServiceForTest()

	if _, err := service.CreateUnit("  ", ""); !errors.Is(err, ErrInvalidUnit) {
		t.Fatalf("expected ErrInvalidUnit, got %v", err)
	}

	unit, err := service.CreateUnit("", " IU ")
	if err != nil {
		t.Fatalf("CreateUnit() unexpected error: %v", err)
	}
	if unit.Name != nil || unit.Abbreviation == nil || *unit.Abbreviation != "IU" {
		t.Fatalf("unexpected unit %#v", unit)
	}

	found, err := service.FindUnitByLabel("IU")
	if err != nil || found.ID != unit.ID {
		t.Fatalf("FindUnitByLabel() = %#v, %v", found, err)
	}
	if _, err := service.FindUnitByLabel("oz"); !errors.Is(err, ErrUnitNotFound) {
		t.Fatalf("expected ErrUnitNotFound, got %v", err)
	}
}

func TestCatalogServiceCreateNutrientEnforcesTreeRules(t *testing.T) {
	vitamins := models.Nutrient{ID: 10, Name: "Vitamins", UnitID: 1, IsCategory: true}
	service, _, _ := newCatalogServiceForTest(vitamins)

	child, err := service.CreateNutrient(NutrientInput{Name: "Vitamin C", UnitID: 1, ParentID: uintPtr(10)})
	if err != nil {
		t.Fatalf("CreateNutrient() unexpected error: %v", err)
	}
	if child.ParentNutrientID == nil || *child.ParentNutrientID != 10 {
		t.Fatalf("expected parent 10, got %#v", child.ParentNutrientID)
	}

	tests := []struct {
		name  string
		input NutrientInput
		want  error
	}{
		{name: "blank name", input: NutrientInput{Name: " ", UnitID: 1}, want: ErrInvalidNutrient},
		{name: "unknown unit", input: NutrientInput{Name: "Iron", UnitID: 9}, want: ErrUnitNotFound},
		{name: "missing parent", input: NutrientInput{Name: "Iron", UnitID: 1, ParentID: uintPtr(99)}, want: ErrNutrientNotFound},
		{name: "category with parent", input: NutrientInput{Name: "Minerals", UnitID: 1, IsCategory: true, ParentID: uintPtr(10)}, want: ErrInvalidNutrientTree},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := service.CreateNutrient(tt.input); !errors.Is(err, tt.want) {
				t.Fatalf("CreateNutrient() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCatalogServiceSetNutrientParentRejectsCycles(t *testing.T) {
	service, repo, _ := newCatalogServiceForTest(
		models.Nutrient{ID: 1, Name: "Fat", UnitID: 1},
		models.Nutrient{ID: 2, Name: "Saturated", UnitID: 1, ParentNutrientID: uintPtr(1)},
		models.Nutrient{ID: 3, Name: "Palmitic", UnitID: 1, ParentNutrientID: uintPtr(2)},
		models.Nutrient{ID: 4, Name: "Lipids", UnitID: 1, IsCategory: true},
	)

	if err := service.SetNutrientParent(1, uintPtr(3)); !errors.Is(err, ErrInvalidNutrientTree) {
		t.Fatalf("expected cycle to be rejected, got %v", err)
	}
	if err := service.SetNutrientParent(1, uintPtr(1)); !errors.Is(err, ErrInvalidNutrientTree) {
		t.Fatalf("expected self-parent to be rejected, got %v", err)
	}
	if err := service.SetNutrientParent(4, uintPtr(1)); !errors.Is(err, ErrInvalidNutrientTree) {
		t.Fatalf("expected category parent to be rejected, got %v", err)
	}
	if repo.nutrients[1].ParentNutrientID != nil {
		t.Fatal("expected rejected moves to leave the tree untouched")
	}

	if err := service.SetNutrientParent(1, uintPtr(4)); err != nil {
		t.Fatalf("SetNutrientParent() unexpected error: %v", err)
	}
	if parent := repo.nutrients[1].ParentNutrientID; parent == nil || *parent != 4 {
		t.Fatalf("expected Fat under Lipids, got %v", parent)
	}
	if err := service.SetNutrientParent(3, nil); err != nil {
		t.Fatalf("SetNutrientParent(nil) unexpected error: %v", err)
	}
}

func TestCatalogServiceSaveGoalTemplateValidates(t *testing.T) {
	service, _, templates := newCatalogServiceForTest(models.Nutrient{ID: 5, Name: "Fiber", UnitID: 1})

	saved, err := service.SaveGoalTemplate(models.GoalTemplate{
		Name:      " Female 19-30 ",
		Sex:       stringPtr(models.SexFemale),
		AgeMin:    19,
		AgeMax:    30,
		Nutrients: []models.GoalTemplateNutrient{{NutrientID: 5, RecommendedValue: 25}},
	})
	if err != nil {
		t.Fatalf("SaveGoalTemplate() unexpected error: %v", err)
	}
	if saved.Name != "Female 19-30" || saved.DefaultCalories != models.DefaultCalories {
		t.Fatalf("unexpected saved template %#v", saved)
	}
	if len(templates.templates) != 1 {
		t.Fatalf("expected one stored template, got %d", len(templates.templates))
	}

	tests := []struct {
		name     string
		template models.GoalTemplate
		want     error
	}{
		{name: "blank name", template: models.GoalTemplate{Name: "", AgeMax: 10}, want: ErrInvalidGoalTemplate},
		{name: "unknown sex", template: models.GoalTemplate{Name: "x", Sex: stringPtr("Other"), AgeMax: 10}, want: ErrInvalidGoalTemplate},
		{name: "inverted ages", template: models.GoalTemplate{Name: "x", AgeMin: 30, AgeMax: 19}, want: ErrValidationRange},
		{name: "age above bound", template: models.GoalTemplate{Name: "x", AgeMax: 121}, want: ErrValidationRange},
		{name: "negative value", template: models.GoalTemplate{Name: "x", AgeMax: 10, Nutrients: []models.GoalTemplateNutrient{{NutrientID: 5, RecommendedValue: -1}}}, want: ErrValidationRange},
		{name: "unknown nutrient", template: models.GoalTemplate{Name: "x", AgeMax: 10, Nutrients: []models.GoalTemplateNutrient{{NutrientID: 77}}}, want: ErrNutrientNotFound},
		{
			name:     "duplicate nutrient",
			template: models.GoalTemplate{Name: "x", AgeMax: 10, Nutrients: []models.GoalTemplateNutrient{{NutrientID: 5}, {NutrientID: 5}}},
			want:     ErrInvalidGoalTemplate,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := service.SaveGoalTemplate(tt.template); !errors.Is(err, tt.want) {
				t.Fatalf("SaveGoalTemplate() error = %v, want %v", err, tt.want)
			}
		})
	}
}
