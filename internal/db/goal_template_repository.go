package db

import (
	"github.com/terraincognita07/nutrigoal/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GoalTemplateRepository struct {
	database *gorm.DB
}

func NewGoalTemplateRepository(database *gorm.DB) *GoalTemplateRepository {
	return &GoalTemplateRepository{database: database}
}

func (repo *GoalTemplateRepository) withNutrients(database *gorm.DB) *gorm.DB {
	return database.
		Preload("Nutrients", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("Nutrients.Nutrient.Unit")
}

func (repo *GoalTemplateRepository) List() ([]models.GoalTemplate, error) {
	templates := make([]models.GoalTemplate, 0)
	if err := repo.withNutrients(repo.database).Order("id ASC").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (repo *GoalTemplateRepository) FindByID(templateID uint) (models.GoalTemplate, error) {
	var template models.GoalTemplate
	if err := repo.withNutrients(repo.database).First(&template, templateID).Error; err != nil {
		return models.GoalTemplate{}, err
	}
	return template, nil
}

// ListMatching returns every template for the exact (sex, pregnant,
// lactating) triple whose inclusive age range contains age.
func (repo *GoalTemplateRepository) ListMatching(sex string, isPregnant bool, isLactating bool, age int) ([]models.GoalTemplate, error) {
	templates := make([]models.GoalTemplate, 0)
	if err := repo.withNutrients(repo.database).
		Where("sex = ? AND is_pregnant = ? AND is_lactating = ?", sex, isPregnant, isLactating).
		Where("age_min <= ? AND age_max >= ?", age, age).
		Order("id ASC").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// Upsert creates the template or overwrites the one with the same name, then
// upserts each recommended value. Existing nutrient rows not named in
// template.Nutrients are left in place.
func (repo *GoalTemplateRepository) Upsert(template *models.GoalTemplate) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		nutrients := template.Nutrients

		var existing models.GoalTemplate
		result := tx.Where("name = ?", template.Name).Limit(1).Find(&existing)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			if err := tx.Omit("Nutrients").Create(template).Error; err != nil {
				return err
			}
		} else {
			template.ID = existing.ID
			if err := tx.Model(&models.GoalTemplate{}).Where("id = ?", existing.ID).Updates(map[string]any{
				"sex":              template.Sex,
				"is_pregnant":      template.IsPregnant,
				"is_lactating":     template.IsLactating,
				"age_min":          template.AgeMin,
				"age_max":          template.AgeMax,
				"default_calories": template.DefaultCalories,
			}).Error; err != nil {
				return err
			}
		}

		for index := range nutrients {
			nutrients[index].TemplateID = template.ID
			if err := tx.Omit("Nutrient").Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "template_id"}, {Name: "nutrient_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"recommended_value"}),
			}).Create(&nutrients[index]).Error; err != nil {
				return err
			}
		}
		template.Nutrients = nutrients
		return nil
	})
}
