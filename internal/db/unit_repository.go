package db

import (
	"github.com/terraincognita07/nutrigoal/internal/models"
	"gorm.io/gorm"
)

type UnitRepository struct {
	database *gorm.DB
}

func NewUnitRepository(database *gorm.DB) *UnitRepository {
	return &UnitRepository{database: database}
}

func (repo *UnitRepository) List() ([]models.Unit, error) {
	units := make([]models.Unit, 0)
	if err := repo.database.Order("id ASC").Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

func (repo *UnitRepository) FindByID(unitID uint) (models.Unit, error) {
	var unit models.Unit
	if err := repo.database.First(&unit, unitID).Error; err != nil {
		return models.Unit{}, err
	}
	return unit, nil
}

// FindByLabel matches either the abbreviation or the full name.
func (repo *UnitRepository) FindByLabel(label string) (models.Unit, bool, error) {
	var unit models.Unit
	result := repo.database.
		Where("abbreviation = ? OR name = ?", label, label).
		Order("id ASC").
		Limit(1).
		Find(&unit)
	if result.Error != nil {
		return models.Unit{}, false, result.Error
	}
	return unit, result.RowsAffected > 0, nil
}

func (repo *UnitRepository) Create(unit *models.Unit) error {
	return repo.database.Create(unit).Error
}
