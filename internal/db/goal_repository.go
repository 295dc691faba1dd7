package db

import (
	"fmt"
	"maps"
	"slices"

	"github.com/terraincognita07/nutrigoal/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GoalRepository struct {
	database *gorm.DB
}

func NewGoalRepository(database *gorm.DB) *GoalRepository {
	return &GoalRepository{database: database}
}

func withGoalNutrients(database *gorm.DB) *gorm.DB {
	return database.
		Preload("Nutrients", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("Nutrients.Nutrient.Unit")
}

func (repo *GoalRepository) ListByUser(userID uint) ([]models.UserGoal, error) {
	goals := make([]models.UserGoal, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("id ASC").Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (repo *GoalRepository) FindByID(goalID uint) (models.UserGoal, error) {
	var goal models.UserGoal
	if err := withGoalNutrients(repo.database).First(&goal, goalID).Error; err != nil {
		return models.UserGoal{}, err
	}
	return goal, nil
}

func (repo *GoalRepository) FindActiveByUser(userID uint) (models.UserGoal, bool, error) {
	var goal models.UserGoal
	result := withGoalNutrients(repo.database).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("id ASC").
		Limit(1).
		Find(&goal)
	if result.Error != nil {
		return models.UserGoal{}, false, result.Error
	}
	return goal, result.RowsAffected > 0, nil
}

func (repo *GoalRepository) NameTaken(userID uint, name string, exceptGoalID uint) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.UserGoal{}).
		Where("user_id = ? AND name = ? AND id <> ?", userID, name, exceptGoalID).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

// SaveDraft gets or creates the goal named draft.Name for the user, updates
// its calories and template, and upserts every target. A user's first goal
// is created active. Macronutrient rows missing for draft.MacroGrams are
// created in the same transaction.
func (repo *GoalRepository) SaveDraft(draft models.GoalDraft) (models.UserGoal, error) {
	var goalID uint
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		if err := lockUserGoals(tx, draft.UserID); err != nil {
			return err
		}
		macros, err := gramTargets(tx, draft.MacroGrams)
		if err != nil {
			return err
		}

		var goal models.UserGoal
		result := tx.Where("user_id = ? AND name = ?", draft.UserID, draft.Name).Limit(1).Find(&goal)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			var existing int64
			if err := tx.Model(&models.UserGoal{}).Where("user_id = ?", draft.UserID).Count(&existing).Error; err != nil {
				return err
			}
			goal = models.UserGoal{
				UserID:     draft.UserID,
				Name:       draft.Name,
				TemplateID: draft.TemplateID,
				Calories:   draft.Calories,
				IsActive:   existing == 0,
			}
			if err := tx.Omit("Nutrients").Create(&goal).Error; err != nil {
				return err
			}
		} else if err := tx.Model(&models.UserGoal{}).Where("id = ?", goal.ID).Updates(map[string]any{
			"calories":    draft.Calories,
			"template_id": draft.TemplateID,
		}).Error; err != nil {
			return err
		}

		goalID = goal.ID
		if err := upsertGoalTargets(tx, goal.ID, draft.Targets); err != nil {
			return err
		}
		return upsertGoalTargets(tx, goal.ID, macros)
	})
	if err != nil {
		return models.UserGoal{}, err
	}
	return repo.FindByID(goalID)
}

// ApplyChanges writes changes to one goal owned by userID. Activation clears
// the sibling flags before setting this one so the one-active index never
// sees two rows.
func (repo *GoalRepository) ApplyChanges(userID uint, goalID uint, changes models.GoalChanges) (models.UserGoal, error) {
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		if err := lockUserGoals(tx, userID); err != nil {
			return err
		}
		macros, err := gramTargets(tx, changes.MacroGrams)
		if err != nil {
			return err
		}

		updates := map[string]any{}
		if changes.Name != nil {
			updates["name"] = *changes.Name
		}
		if changes.Calories != nil {
			updates["calories"] = *changes.Calories
		}
		if changes.Activate {
			if err := tx.Model(&models.UserGoal{}).
				Where("user_id = ? AND id <> ? AND is_active = ?", userID, goalID, true).
				Update("is_active", false).Error; err != nil {
				return err
			}
			updates["is_active"] = true
		}
		if len(updates) > 0 {
			if err := tx.Model(&models.UserGoal{}).
				Where("id = ? AND user_id = ?", goalID, userID).
				Updates(updates).Error; err != nil {
				return err
			}
		}
		if err := upsertGoalTargets(tx, goalID, changes.Targets); err != nil {
			return err
		}
		return upsertGoalTargets(tx, goalID, macros)
	})
	if err != nil {
		return models.UserGoal{}, err
	}
	return repo.FindByID(goalID)
}

// lockUserGoals serializes goal writes per user by locking the owning user
// row. SQLite ignores the locking clause and serializes writers itself.
func lockUserGoals(tx *gorm.DB, userID uint) error {
	var owner models.User
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", userID).
		Limit(1).
		Find(&owner).Error
}

// gramTargets resolves gram amounts keyed by nutrient name into targets,
// creating the nutrients that do not exist yet.
func gramTargets(tx *gorm.DB, grams map[string]float64) ([]models.NutrientTarget, error) {
	if len(grams) == 0 {
		return nil, nil
	}
	names := slices.Sorted(maps.Keys(grams))
	byName, err := ensureGramNutrients(tx, names)
	if err != nil {
		return nil, err
	}

	targets := make([]models.NutrientTarget, 0, len(names))
	for _, name := range names {
		nutrient, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("nutrient %q could not be created", name)
		}
		targets = append(targets, models.NutrientTarget{NutrientID: nutrient.ID, Value: grams[name]})
	}
	return targets, nil
}

func upsertGoalTargets(tx *gorm.DB, goalID uint, targets []models.NutrientTarget) error {
	for _, target := range targets {
		row := models.UserGoalNutrient{
			GoalID:      goalID,
			NutrientID:  target.NutrientID,
			TargetValue: target.Value,
		}
		if err := tx.Omit("Nutrient").Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "goal_id"}, {Name: "nutrient_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"target_value"}),
		}).Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
