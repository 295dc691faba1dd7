package db

import (
	"path/filepath"
	"testing"

	"github.com/terraincognita07/nutrigoal/internal/models"
)

func TestGoalRepositorySaveDraftActivatesOnlyFirstGoal(t *testing.T) {
	database := openSQLiteForMigrationBootstrapTest(t, filepath.Join(t.TempDir(), "goal-draft.db"))
	fixture := seedGoalFixture(t, database)
	repo := NewGoalRepository(database)

	first, err := repo.SaveDraft(models.GoalDraft{
		UserID:     fixture.userID,
		TemplateID: fixture.templateID,
		Name:       "Female 19-50",
		Calories:   2163,
		Targets:    []models.NutrientTarget{{NutrientID: fixture.fatID, Value: 54.07}},
	})
	if err != nil {
		t.Fatalf("SaveDraft() first goal unexpected error: %v", err)
	}
	if !first.IsActive {
		t.Fatal("expected first goal to be active")
	}

	second, err := repo.SaveDraft(models.GoalDraft{
		UserID:     fixture.userID,
		TemplateID: fixture.templateID,
		Name:       "Cutting",
		Calories:   1800,
	})
	if err != nil {
		t.Fatalf("SaveDraft() second goal unexpected error: %v", err)
	}
	if second.IsActive {
		t.Fatal("expected second goal to be inactive")
	}

	goals, err := repo.ListByUser(fixture.userID)
	if err != nil {
		t.Fatalf("ListByUser() unexpected error: %v", err)
	}
	if len(goals) != 2 {
		t.Fatalf("expected 2 goals, got %d", len(goals))
	}
}

func TestGoalRepositorySaveDraftUpsertsByName(t *testing.T) {
	database := openSQLiteForMigrationBootstrapTest(t, filepath.Join(t.TempDir(), "goal-upsert.db"))
	fixture := seedGoalFixture(t, database)
	repo := NewGoalRepository(database)

	draft := models.GoalDraft{
		UserID:     fixture.userID,
		TemplateID: fixture.templateID,
		Name:       "Female 19-50",
		Calories:   2000,
		Targets: []models.NutrientTarget{
			{NutrientID: fixture.fatID, Value: 10},
			{NutrientID: fixture.proteinID, Value: 20},
			{NutrientID: fixture.fatID, Value: 50},
		},
	}
	first, err := repo.SaveDraft(draft)
	if err != nil {
		t.Fatalf("SaveDraft() unexpected error: %v", err)
	}

	draft.Calories = 2500
	second, err := repo.SaveDraft(draft)
	if err != nil {
		t.Fatalf("SaveDraft() repeat unexpected error: %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("expected same goal id %d, got %d", first.ID, second.ID)
	}
	if second.Calories != 2500 {
		t.Fatalf("expected calories 2500, got %d", second.Calories)
	}
	if len(second.Nutrients) != 2 {
		t.Fatalf("expected 2 goal nutrients, got %d", len(second.Nutrients))
	}
	if second.Nutrients[0].NutrientID != fixture.fatID || second.Nutrients[0].TargetValue != 50 {
		t.Fatalf("expected later fat target to win, got %#v", second.Nutrients[0])
	}
	if second.Nutrients[0].Nutrient.Unit.Label() != "g" {
		t.Fatalf("expected nutrient unit to be preloaded, got %#v", second.Nutrients[0].Nutrient.Unit)
	}
}

func TestGoalRepositoryApplyChangesActivationFlipsSiblings(t *testing.T) {
	database := openSQLiteForMigrationBootstrapTest(t, filepath.Join(t.TempDir(), "goal-activate.db"))
	fixture := seedGoalFixture(t, database)
	repo := NewGoalRepository(database)

	first, err := repo.SaveDraft(models.GoalDraft{UserID: fixture.userID, TemplateID: fixture.templateID, Name: "A", Calories: 2000})
	if err != nil {
		t.Fatalf("SaveDraft(A) unexpected error: %v", err)
	}
	second, err := repo.SaveDraft(models.GoalDraft{UserID: fixture.userID, TemplateID: fixture.templateID, Name: "B", Calories: 2000})
	if err != nil {
		t.Fatalf("SaveDraft(B) unexpected error: %v", err)
	}

	updated, err := repo.ApplyChanges(fixture.userID, second.ID, models.GoalChanges{Activate: true})
	if err != nil {
		t.Fatalf("ApplyChanges() unexpected error: %v", err)
	}
	if !updated.IsActive {
		t.Fatal("expected second goal to be active")
	}

	reloaded, err := repo.FindByID(first.ID)
	if err != nil {
		t.Fatalf("FindByID() unexpected error: %v", err)
	}
	if reloaded.IsActive {
		t.Fatal("expected first goal to be deactivated")
	}

	active, found, err := repo.FindActiveByUser(fixture.userID)
	if err != nil || !found {
		t.Fatalf("FindActiveByUser() found=%v err=%v", found, err)
	}
	if active.ID != second.ID {
		t.Fatalf("expected active goal %d, got %d", second.ID, active.ID)
	}
}

func TestGoalRepositoryNameTakenIgnoresSameGoal(t *testing.T) {
	database := openSQLiteForMigrationBootstrapTest(t, filepath.Join(t.TempDir(), "goal-name.db"))
	fixture := seedGoalFixture(t, database)
	repo := NewGoalRepository(database)

	goal, err := repo.SaveDraft(models.GoalDraft{UserID: fixture.userID, TemplateID: fixture.templateID, Name: "A", Calories: 2000})
	if err != nil {
		t.Fatalf("SaveDraft() unexpected error: %v", err)
	}

	taken, err := repo.NameTaken(fixture.userID, "A", goal.ID)
	if err != nil {
		t.Fatalf("NameTaken() unexpected error: %v", err)
	}
	if taken {
		t.Fatal("expected goal's own name to be available to it")
	}

	taken, err = repo.NameTaken(fixture.userID, "A", 0)
	if err != nil {
		t.Fatalf("NameTaken() unexpected error: %v", err)
	}
	if !taken {
		t.Fatal("expected name to be taken for other goals")
	}
}

func TestGoalRepositorySaveDraftCreatesMacronutrientsInItsTransaction(t *testing.T) {
	database := openSQLiteForMigrationBootstrapTest(t, filepath.Join(t.TempDir(), "goal-macros.db"))
	fixture := seedGoalFixture(t, database)
	repo := NewGoalRepository(database)

	if err := database.Exec("DELETE FROM nutrients WHERE name = ?", models.NutrientCarbohydrate).Error; err != nil {
		t.Fatalf("delete carbohydrate: %v", err)
	}
	macros := map[string]float64{
		models.NutrientFat:          54.08,
		models.NutrientCarbohydrate: 283.89,
		models.NutrientProtein:      135.19,
	}

	_, err := repo.SaveDraft(models.GoalDraft{
		UserID:     fixture.userID,
		TemplateID: fixture.templateID,
		Name:       "Female 19-50",
		Calories:   2163,
		Targets:    []models.NutrientTarget{{NutrientID: 9999, Value: 25}},
		MacroGrams: macros,
	})
	if err == nil {
		t.Fatal("expected SaveDraft() to fail on an unknown nutrient target")
	}
	var carbs int64
	if err := database.Model(&models.Nutrient{}).Where("name = ?", models.NutrientCarbohydrate).Count(&carbs).Error; err != nil {
		t.Fatalf("count carbohydrate: %v", err)
	}
	if carbs != 0 {
		t.Fatal("expected the failed draft to roll back the created nutrient")
	}
	if goals := countRows(t, database, "user_goals"); goals != 0 {
		t.Fatalf("expected no goals after rollback, got %d", goals)
	}

	goal, err := repo.SaveDraft(models.GoalDraft{
		UserID:     fixture.userID,
		TemplateID: fixture.templateID,
		Name:       "Female 19-50",
		Calories:   2163,
		Targets:    []models.NutrientTarget{{NutrientID: fixture.fatID, Value: 1}},
		MacroGrams: macros,
	})
	if err != nil {
		t.Fatalf("SaveDraft() unexpected error: %v", err)
	}

	byName := make(map[string]models.UserGoalNutrient, len(goal.Nutrients))
	for _, target := range goal.Nutrients {
		byName[target.Nutrient.Name] = target
	}
	carb, ok := byName[models.NutrientCarbohydrate]
	if !ok {
		t.Fatal("expected carbohydrate target on the saved goal")
	}
	if carb.TargetValue != 283.89 || carb.Nutrient.UnitID != fixture.gramUnitID {
		t.Fatalf("carbohydrate target = %v in unit %d, want 283.89 in grams", carb.TargetValue, carb.Nutrient.UnitID)
	}
	if fat := byName[models.NutrientFat].TargetValue; fat != 54.08 {
		t.Fatalf("fat target = %v, want the macro value 54.08 over the explicit target", fat)
	}
}

func TestGoalRepositoryApplyChangesUpsertsMacroGrams(t *testing.T) {
	database := openSQLiteForMigrationBootstrapTest(t, filepath.Join(t.TempDir(), "goal-macro-update.db"))
	fixture := seedGoalFixture(t, database)
	repo := NewGoalRepository(database)

	goal, err := repo.SaveDraft(models.GoalDraft{
		UserID:     fixture.userID,
		TemplateID: fixture.templateID,
		Name:       "A",
		Calories:   2000,
		MacroGrams: map[string]float64{models.NutrientProtein: 125},
	})
	if err != nil {
		t.Fatalf("SaveDraft() unexpected error: %v", err)
	}

	calories := 1600
	updated, err := repo.ApplyChanges(fixture.userID, goal.ID, models.GoalChanges{
		Calories:   &calories,
		MacroGrams: map[string]float64{models.NutrientProtein: 100},
	})
	if err != nil {
		t.Fatalf("ApplyChanges() unexpected error: %v", err)
	}
	if len(updated.Nutrients) != 1 {
		t.Fatalf("expected one target, got %d", len(updated.Nutrients))
	}
	if target := updated.Nutrients[0]; target.NutrientID != fixture.proteinID || target.TargetValue != 100 {
		t.Fatalf("protein target = %+v, want 100 on nutrient %d", target, fixture.proteinID)
	}
}
