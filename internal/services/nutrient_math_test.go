package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/nutrigoal/internal/models"
)

func intPtr(value int) *int {
	return &value
}

func floatPtr(value float64) *float64 {
	return &value
}

func stringPtr(value string) *string {
	return &value
}

func referenceFemaleProfile() BiometricProfile {
	return BiometricProfile{
		Age:           intPtr(25),
		WeightKg:      floatPtr(65),
		HeightCm:      floatPtr(165),
		Sex:           stringPtr(models.SexFemale),
		ActivityLevel: stringPtr(models.ActivityModeratelyActive),
		DietGoal:      stringPtr(models.DietGoalMaintainWeight),
	}
}

func TestCalculateBMR(t *testing.T) {
	assert.InDelta(t, 1395.25, CalculateBMR(models.SexFemale, 65, 165, 25), 1e-9)
	assert.InDelta(t, 1561.25, CalculateBMR(models.SexMale, 65, 165, 25), 1e-9)
	assert.InDelta(t, 1395.25, CalculateBMR("", 65, 165, 25), 1e-9, "unknown sex uses the female constant")
}

func TestCalculateCaloriesReferenceScenario(t *testing.T) {
	assert.InDelta(t, 2162.6375, CalculateCalories(referenceFemaleProfile()), 1e-6)
}

func TestCalculateCaloriesAdjustments(t *testing.T) {
	base := CalculateCalories(referenceFemaleProfile())

	tests := []struct {
		name   string
		mutate func(profile *BiometricProfile)
		delta  float64
	}{
		{name: "pregnant", mutate: func(p *BiometricProfile) { p.IsPregnant = true }, delta: 300},
		{name: "lactating", mutate: func(p *BiometricProfile) { p.IsLactating = true }, delta: 500},
		{name: "lose weight", mutate: func(p *BiometricProfile) { p.DietGoal = stringPtr(models.DietGoalLoseWeight) }, delta: -500},
		{name: "gain weight", mutate: func(p *BiometricProfile) { p.DietGoal = stringPtr(models.DietGoalGainWeight) }, delta: 500},
		{name: "no diet goal", mutate: func(p *BiometricProfile) { p.DietGoal = nil }, delta: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := referenceFemaleProfile()
			tt.mutate(&profile)
			assert.InDelta(t, base+tt.delta, CalculateCalories(profile), 1e-6)
		})
	}
}

func TestCalculateCaloriesDefaultsWhenProfileIncomplete(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(profile *BiometricProfile)
	}{
		{name: "age", mutate: func(p *BiometricProfile) { p.Age = nil }},
		{name: "weight", mutate: func(p *BiometricProfile) { p.WeightKg = nil }},
		{name: "height", mutate: func(p *BiometricProfile) { p.HeightCm = nil }},
		{name: "sex", mutate: func(p *BiometricProfile) { p.Sex = nil }},
		{name: "activity", mutate: func(p *BiometricProfile) { p.ActivityLevel = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := referenceFemaleProfile()
			tt.mutate(&profile)
			assert.Equal(t, float64(models.DefaultCalories), CalculateCalories(profile))
		})
	}
}

func TestCalculateCaloriesUnknownActivityUsesSedentaryMultiplier(t *testing.T) {
	profile := referenceFemaleProfile()
	profile.ActivityLevel = stringPtr("Couch")
	assert.InDelta(t, 1395.25*1.2, CalculateCalories(profile), 1e-6)
}

func TestCalculateCaloriesNeverNegative(t *testing.T) {
	profile := BiometricProfile{
		Age:           intPtr(120),
		WeightKg:      floatPtr(1),
		HeightCm:      floatPtr(1),
		Sex:           stringPtr(models.SexFemale),
		ActivityLevel: stringPtr(models.ActivitySedentary),
		DietGoal:      stringPtr(models.DietGoalLoseWeight),
	}
	assert.Equal(t, 0.0, CalculateCalories(profile))
}

func TestCalculateMacronutrientsByAgeBracket(t *testing.T) {
	tests := []struct {
		age  int
		want Macronutrients
	}{
		{age: 2, want: Macronutrients{Fat: 0.35 * 1800 / 9, Carbohydrate: 0.525 * 1800 / 4, Protein: 0.125 * 1800 / 4}},
		{age: 10, want: Macronutrients{Fat: 0.275 * 1800 / 9, Carbohydrate: 0.525 * 1800 / 4, Protein: 0.2 * 1800 / 4}},
		{age: 0, want: Macronutrients{Fat: 0.225 * 1800 / 9, Carbohydrate: 0.525 * 1800 / 4, Protein: 0.25 * 1800 / 4}},
		{age: 40, want: Macronutrients{Fat: 0.225 * 1800 / 9, Carbohydrate: 0.525 * 1800 / 4, Protein: 0.25 * 1800 / 4}},
	}

	for _, tt := range tests {
		got := CalculateMacronutrients(1800, tt.age)
		assert.InDelta(t, tt.want.Fat, got.Fat, 1e-9, "fat at age %d", tt.age)
		assert.InDelta(t, tt.want.Carbohydrate, got.Carbohydrate, 1e-9, "carbohydrate at age %d", tt.age)
		assert.InDelta(t, tt.want.Protein, got.Protein, 1e-9, "protein at age %d", tt.age)
	}
}

func TestCalculateMacronutrientsRoundTripsCalories(t *testing.T) {
	for _, age := range []int{2, 12, 35, 80} {
		for _, calories := range []float64{0, 1200, 2163, 3500} {
			macros := CalculateMacronutrients(calories, age)
			rounded := Macronutrients{
				Fat:          roundTo(macros.Fat, 2),
				Carbohydrate: roundTo(macros.Carbohydrate, 2),
				Protein:      roundTo(macros.Protein, 2),
			}
			require.InDelta(t, calories, rounded.Calories(), 1, "age %d calories %v", age, calories)
		}
	}
}
