package db

import (
	"time"

	"github.com/terraincognita07/nutrigoal/internal/models"
	"gorm.io/gorm"
)

// Combined-item sums join the consumed row straight to each element's item
// and scale by the consumed portion only. Element portions are recipe
// metadata and do not weight the totals.
const (
	itemCaloriesSQL = `
SELECT COALESCE(SUM(items.calories * consumed.portion), 0)
FROM consumed
JOIN items ON items.id = consumed.item_id
WHERE consumed.user_id = ? AND consumed.consumed_at >= ? AND consumed.consumed_at < ?`

	combinedCaloriesSQL = `
SELECT COALESCE(SUM(items.calories * consumed.portion), 0)
FROM consumed
JOIN combined_item_elements elements ON elements.combined_item_id = consumed.combined_item_id
JOIN items ON items.id = elements.item_id
WHERE consumed.user_id = ? AND consumed.consumed_at >= ? AND consumed.consumed_at < ?`

	itemNutrientTotalsSQL = `
SELECT item_nutrients.nutrient_id AS nutrient_id, COALESCE(SUM(consumed.portion * item_nutrients.amount), 0) AS total
FROM consumed
JOIN item_nutrients ON item_nutrients.item_id = consumed.item_id
WHERE consumed.user_id = ? AND consumed.consumed_at >= ? AND consumed.consumed_at < ?`

	combinedNutrientTotalsSQL = `
SELECT item_nutrients.nutrient_id AS nutrient_id, COALESCE(SUM(consumed.portion * item_nutrients.amount), 0) AS total
FROM consumed
JOIN combined_item_elements elements ON elements.combined_item_id = consumed.combined_item_id
JOIN item_nutrients ON item_nutrients.item_id = elements.item_id
WHERE consumed.user_id = ? AND consumed.consumed_at >= ? AND consumed.consumed_at < ?`
)

type ConsumptionRepository struct {
	database *gorm.DB
}

func NewConsumptionRepository(database *gorm.DB) *ConsumptionRepository {
	return &ConsumptionRepository{database: database}
}

func (repo *ConsumptionRepository) Create(entry *models.Consumed) error {
	return repo.database.Create(entry).Error
}

func (repo *ConsumptionRepository) FindByID(consumedID uint) (models.Consumed, error) {
	var entry models.Consumed
	if err := repo.database.First(&entry, consumedID).Error; err != nil {
		return models.Consumed{}, err
	}
	return entry, nil
}

func (repo *ConsumptionRepository) Delete(consumedID uint) error {
	return repo.database.Delete(&models.Consumed{}, consumedID).Error
}

func (repo *ConsumptionRepository) ListByUserRange(userID uint, from time.Time, to time.Time) ([]models.ConsumedEntry, error) {
	entries := make([]models.ConsumedEntry, 0)
	if err := repo.database.Table("consumed").
		Select(`consumed.id, consumed.item_id, consumed.combined_item_id,
COALESCE(items.name, combined_items.name, '') AS name,
consumed.portion, consumed.consumed_at`).
		Joins("LEFT JOIN items ON items.id = consumed.item_id").
		Joins("LEFT JOIN combined_items ON combined_items.id = consumed.combined_item_id").
		Where("consumed.user_id = ? AND consumed.consumed_at >= ? AND consumed.consumed_at < ?", userID, from.UTC(), to.UTC()).
		Order("consumed.consumed_at ASC, consumed.id ASC").
		Scan(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *ConsumptionRepository) SumCalories(userID uint, from time.Time, to time.Time) (float64, error) {
	total := 0.0
	for _, query := range []string{itemCaloriesSQL, combinedCaloriesSQL} {
		var partial float64
		if err := repo.database.Raw(query, userID, from.UTC(), to.UTC()).Scan(&partial).Error; err != nil {
			return 0, err
		}
		total += partial
	}
	return total, nil
}

func (repo *ConsumptionRepository) SumNutrient(userID uint, nutrientID uint, from time.Time, to time.Time) (float64, error) {
	total := 0.0
	for _, query := range []string{itemNutrientTotalsSQL, combinedNutrientTotalsSQL} {
		var rows []nutrientTotalRow
		if err := repo.database.Raw(
			query+" AND item_nutrients.nutrient_id = ? GROUP BY item_nutrients.nutrient_id",
			userID, from.UTC(), to.UTC(), nutrientID,
		).Scan(&rows).Error; err != nil {
			return 0, err
		}
		for _, row := range rows {
			total += row.Total
		}
	}
	return total, nil
}

// SumNutrients returns the consumed amount of every nutrient that appears in
// the range. Nutrients with no consumption are absent from the map.
func (repo *ConsumptionRepository) SumNutrients(userID uint, from time.Time, to time.Time) (map[uint]float64, error) {
	totals := make(map[uint]float64)
	for _, query := range []string{itemNutrientTotalsSQL, combinedNutrientTotalsSQL} {
		var rows []nutrientTotalRow
		if err := repo.database.Raw(
			query+" GROUP BY item_nutrients.nutrient_id",
			userID, from.UTC(), to.UTC(),
		).Scan(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			totals[row.NutrientID] += row.Total
		}
	}
	return totals, nil
}

type nutrientTotalRow struct {
	NutrientID uint    `gorm:"column:nutrient_id"`
	Total      float64 `gorm:"column:total"`
}
