package db

import (
	"strings"

	"github.com/terraincognita07/nutrigoal/internal/models"
	"gorm.io/gorm"
)

type ItemRepository struct {
	database *gorm.DB
}

func NewItemRepository(database *gorm.DB) *ItemRepository {
	return &ItemRepository{database: database}
}

func (repo *ItemRepository) detailQuery() *gorm.DB {
	return repo.database.
		Preload("ServingSize.Unit").
		Preload("Nutrients", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("Nutrients.Nutrient.Unit").
		Preload("Bioactives", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("Bioactives.Unit")
}

func (repo *ItemRepository) FindByID(itemID uint) (models.Item, error) {
	var item models.Item
	if err := repo.detailQuery().First(&item, itemID).Error; err != nil {
		return models.Item{}, err
	}
	return item, nil
}

// ExistsVisible reports whether the item exists and is either a catalog item
// or a custom item owned by userID.
func (repo *ItemRepository) ExistsVisible(itemID uint, userID uint) (bool, bool, error) {
	var item models.Item
	result := repo.database.Select("id", "user_id").Where("id = ?", itemID).Limit(1).Find(&item)
	if result.Error != nil {
		return false, false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, false, nil
	}
	return true, item.VisibleTo(userID), nil
}

// Search matches a barcode exactly when given, otherwise requires every word
// of the query to appear in the name, shortest names and best-described items
// first. Only items visible to userID are returned.
func (repo *ItemRepository) Search(userID uint, barcode string, query string, limit int) ([]models.Item, error) {
	statement := repo.database.Model(&models.Item{}).
		Preload("ServingSize.Unit").
		Where("(user_id IS NULL OR user_id = ?)", userID)

	if barcode = strings.TrimSpace(barcode); barcode != "" {
		statement = statement.Where("barcode = ?", barcode)
	} else {
		for _, word := range strings.Fields(query) {
			statement = statement.Where(`lower(name) LIKE ? ESCAPE '\'`, "%"+likeLiteral(strings.ToLower(word))+"%")
		}
	}

	items := make([]models.Item, 0)
	statement = statement.
		Order("length(name) ASC").
		Order("(SELECT COUNT(*) FROM item_nutrients WHERE item_nutrients.item_id = items.id) DESC").
		Order("id ASC")
	if err := statement.Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// likeLiteral makes LIKE treat every character of value literally under
// ESCAPE '\'.
func likeLiteral(value string) string {
	return likeEscaper.Replace(value)
}

// CreateWithNutrients stores the serving size, the item and its nutrient
// amounts as one unit.
func (repo *ItemRepository) CreateWithNutrients(item *models.Item) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if item.ServingSizeID == 0 {
			serving := item.ServingSize
			serving.ID = 0
			if err := tx.Omit("Unit").Create(&serving).Error; err != nil {
				return err
			}
			item.ServingSizeID = serving.ID
			item.ServingSize.ID = serving.ID
		}

		nutrients := item.Nutrients
		if err := tx.Omit("ServingSize", "Nutrients", "Bioactives").Create(item).Error; err != nil {
			return err
		}
		for index := range nutrients {
			nutrients[index].ItemID = item.ID
			if err := tx.Omit("Nutrient").Create(&nutrients[index]).Error; err != nil {
				return err
			}
		}
		item.Nutrients = nutrients
		return nil
	})
}

func (repo *ItemRepository) AddBioactive(bioactive *models.ItemBioactive) error {
	return repo.database.Omit("Unit").Create(bioactive).Error
}

func (repo *ItemRepository) ListBioactives(itemID uint) ([]models.ItemBioactive, error) {
	bioactives := make([]models.ItemBioactive, 0)
	if err := repo.database.Preload("Unit").
		Where("item_id = ?", itemID).
		Order("id ASC").
		Find(&bioactives).Error; err != nil {
		return nil, err
	}
	return bioactives, nil
}

// ToggleFavorite flips the favorite flag and reports the new state.
func (repo *ItemRepository) ToggleFavorite(userID uint, itemID uint) (bool, error) {
	favorited := false
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		var existing models.FavoriteItem
		result := tx.Where("user_id = ? AND item_id = ?", userID, itemID).Limit(1).Find(&existing)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return tx.Delete(&existing).Error
		}
		favorited = true
		return tx.Create(&models.FavoriteItem{UserID: userID, ItemID: itemID}).Error
	})
	if err != nil {
		return false, err
	}
	return favorited, nil
}

func (repo *ItemRepository) ListFavoriteIDs(userID uint) ([]uint, error) {
	ids := make([]uint, 0)
	if err := repo.database.Model(&models.FavoriteItem{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Pluck("item_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
