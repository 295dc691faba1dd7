package db

import (
	"github.com/terraincognita07/nutrigoal/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NutrientRepository struct {
	database *gorm.DB
}

func NewNutrientRepository(database *gorm.DB) *NutrientRepository {
	return &NutrientRepository{database: database}
}

func (repo *NutrientRepository) List() ([]models.Nutrient, error) {
	nutrients := make([]models.Nutrient, 0)
	if err := repo.database.Preload("Unit").Order("id ASC").Find(&nutrients).Error; err != nil {
		return nil, err
	}
	return nutrients, nil
}

func (repo *NutrientRepository) FindByID(nutrientID uint) (models.Nutrient, error) {
	var nutrient models.Nutrient
	if err := repo.database.Preload("Unit").First(&nutrient, nutrientID).Error; err != nil {
		return models.Nutrient{}, err
	}
	return nutrient, nil
}

func (repo *NutrientRepository) FindByName(name string) (models.Nutrient, bool, error) {
	var nutrient models.Nutrient
	result := repo.database.Preload("Unit").Where("name = ?", name).Limit(1).Find(&nutrient)
	if result.Error != nil {
		return models.Nutrient{}, false, result.Error
	}
	return nutrient, result.RowsAffected > 0, nil
}

// FindByNames returns the rows keyed by name; names without a row are absent
// from the map.
func (repo *NutrientRepository) FindByNames(names []string) (map[string]models.Nutrient, error) {
	return findNutrientsByName(repo.database, names)
}

func findNutrientsByName(database *gorm.DB, names []string) (map[string]models.Nutrient, error) {
	nutrients := make([]models.Nutrient, 0, len(names))
	if err := database.Where("name IN ?", names).Find(&nutrients).Error; err != nil {
		return nil, err
	}
	byName := make(map[string]models.Nutrient, len(nutrients))
	for _, nutrient := range nutrients {
		byName[nutrient.Name] = nutrient
	}
	return byName, nil
}

func (repo *NutrientRepository) Create(nutrient *models.Nutrient) error {
	return repo.database.Create(nutrient).Error
}

func (repo *NutrientRepository) SetParent(nutrientID uint, parentID *uint) error {
	return repo.database.Model(&models.Nutrient{}).
		Where("id = ?", nutrientID).
		Update("parent_nutrient_id", parentID).Error
}

// ensureGramNutrients returns the named nutrients, creating missing ones in
// grams on tx. Concurrent callers converge on the same rows through the
// unique name indexes.
func ensureGramNutrients(tx *gorm.DB, names []string) (map[string]models.Nutrient, error) {
	byName, err := findNutrientsByName(tx, names)
	if err != nil {
		return nil, err
	}
	if len(byName) == len(names) {
		return byName, nil
	}

	gramName, gramAbbreviation := "Gram", "g"
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Unit{Name: &gramName, Abbreviation: &gramAbbreviation}).Error; err != nil {
		return nil, err
	}
	var gram models.Unit
	if err := tx.Where("abbreviation = ?", gramAbbreviation).First(&gram).Error; err != nil {
		return nil, err
	}

	for _, name := range names {
		if _, exists := byName[name]; exists {
			continue
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Omit("Unit").
			Create(&models.Nutrient{Name: name, UnitID: gram.ID}).Error; err != nil {
			return nil, err
		}
	}
	return findNutrientsByName(tx, names)
}
