package db

import (
	"testing"
	"time"

	"github.com/terraincognita07/nutrigoal/internal/models"
	"gorm.io/gorm"
)

type goalFixture struct {
	userID     uint
	templateID uint
	gramUnitID uint
	fatID      uint
	proteinID  uint
}

func seedGoalFixture(t *testing.T, database *gorm.DB) goalFixture {
	t.Helper()

	user := models.User{
		Email:        "fixture@nutrigoal.local",
		PasswordHash: "hash",
		Role:         models.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("create fixture user: %v", err)
	}

	sex := models.SexFemale
	template := models.GoalTemplate{Name: "Female 19-50", Sex: &sex, AgeMin: 19, AgeMax: 50, DefaultCalories: 2000}
	if err := database.Omit("Nutrients").Create(&template).Error; err != nil {
		t.Fatalf("create fixture template: %v", err)
	}

	nutrients := NewNutrientRepository(database)
	byName, err := nutrients.FindByNames(models.MacronutrientNames())
	if err != nil {
		t.Fatalf("load macronutrients: %v", err)
	}

	return goalFixture{
		userID:     user.ID,
		templateID: template.ID,
		gramUnitID: byName[models.NutrientFat].UnitID,
		fatID:      byName[models.NutrientFat].ID,
		proteinID:  byName[models.NutrientProtein].ID,
	}
}

func createUserForTest(t *testing.T, database *gorm.DB, email string) models.User {
	t.Helper()

	user := models.User{Email: email, PasswordHash: "hash", Role: models.RoleUser, CreatedAt: time.Now().UTC()}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func createItemForTest(t *testing.T, database *gorm.DB, fixture goalFixture, name string, calories int, nutrients map[uint]float64) models.Item {
	t.Helper()

	item := models.Item{
		Name:        name,
		Calories:    calories,
		ServingSize: models.ServingSize{Amount: 100, UnitID: fixture.gramUnitID},
	}
	for nutrientID, amount := range nutrients {
		item.Nutrients = append(item.Nutrients, models.ItemNutrient{NutrientID: nutrientID, Amount: amount})
	}
	if err := NewItemRepository(database).CreateWithNutrients(&item); err != nil {
		t.Fatalf("create item %s: %v", name, err)
	}
	return item
}
