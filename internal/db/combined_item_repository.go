package db

import (
	"github.com/terraincognita07/nutrigoal/internal/models"
	"gorm.io/gorm"
)

type CombinedItemRepository struct {
	database *gorm.DB
}

func NewCombinedItemRepository(database *gorm.DB) *CombinedItemRepository {
	return &CombinedItemRepository{database: database}
}

func (repo *CombinedItemRepository) withElements() *gorm.DB {
	return repo.database.
		Preload("Elements", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("Elements.Item")
}

func (repo *CombinedItemRepository) FindByID(combinedItemID uint) (models.CombinedItem, error) {
	var combined models.CombinedItem
	if err := repo.withElements().First(&combined, combinedItemID).Error; err != nil {
		return models.CombinedItem{}, err
	}
	return combined, nil
}

func (repo *CombinedItemRepository) FindOwner(combinedItemID uint) (uint, bool, error) {
	var combined models.CombinedItem
	result := repo.database.Select("id", "user_id").Where("id = ?", combinedItemID).Limit(1).Find(&combined)
	if result.Error != nil {
		return 0, false, result.Error
	}
	return combined.UserID, result.RowsAffected > 0, nil
}

func (repo *CombinedItemRepository) ListByUser(userID uint) ([]models.CombinedItem, error) {
	combinedItems := make([]models.CombinedItem, 0)
	if err := repo.withElements().
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&combinedItems).Error; err != nil {
		return nil, err
	}
	return combinedItems, nil
}

func (repo *CombinedItemRepository) Create(combined *models.CombinedItem) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		elements := combined.Elements
		if err := tx.Omit("Elements").Create(combined).Error; err != nil {
			return err
		}
		for index := range elements {
			elements[index].CombinedItemID = combined.ID
			if err := tx.Omit("Item").Create(&elements[index]).Error; err != nil {
				return err
			}
		}
		combined.Elements = elements
		return nil
	})
}

func (repo *CombinedItemRepository) AddElement(element *models.CombinedItemElement) error {
	return repo.database.Omit("Item").Create(element).Error
}
