package services

import (
	"math"

	"github.com/terraincognita07/nutrigoal/internal/models"
)

const (
	kcalPerGramFat          = 9.0
	kcalPerGramCarbohydrate = 4.0
	kcalPerGramProtein      = 4.0

	pregnancyCalorieBonus = 300
	lactationCalorieBonus = 500
	dietGoalCalorieDelta  = 500

	defaultActivityMultiplier = 1.2
)

// activityMultipliers scale BMR to total daily energy expenditure.
var activityMultipliers = map[string]float64{
	models.ActivitySedentary:        1.2,
	models.ActivityLightlyActive:    1.375,
	models.ActivityModeratelyActive: 1.55,
	models.ActivityVeryActive:       1.725,
	models.ActivityExtremelyActive:  1.9,
}

// BiometricProfile is the subset of a user's profile the energy model needs.
// Nil pointers mean unknown.
type BiometricProfile struct {
	Age           *int
	WeightKg      *float64
	HeightCm      *float64
	Sex           *string
	IsPregnant    bool
	IsLactating   bool
	ActivityLevel *string
	DietGoal      *string
}

func ProfileFromUser(user models.User) BiometricProfile {
	return BiometricProfile{
		Age:           user.Age,
		WeightKg:      user.WeightKg,
		HeightCm:      user.HeightCm,
		Sex:           user.Sex,
		IsPregnant:    user.IsPregnant,
		IsLactating:   user.IsLactating,
		ActivityLevel: user.ActivityLevel,
		DietGoal:      user.DietGoal,
	}
}

// Complete reports whether every input of CalculateCalories is known. The
// diet goal is optional and treated as maintain.
func (profile BiometricProfile) Complete() bool {
	return profile.Age != nil &&
		profile.WeightKg != nil &&
		profile.HeightCm != nil &&
		profile.Sex != nil &&
		profile.ActivityLevel != nil
}

// Macronutrients holds daily targets in grams.
type Macronutrients struct {
	Fat          float64
	Carbohydrate float64
	Protein      float64
}

// Calories converts the grams back to kcal.
func (macros Macronutrients) Calories() float64 {
	return macros.Fat*kcalPerGramFat +
		macros.Carbohydrate*kcalPerGramCarbohydrate +
		macros.Protein*kcalPerGramProtein
}

// CalculateBMR uses the Mifflin-St Jeor equation in metric units. Any sex
// other than male takes the female constant.
func CalculateBMR(sex string, weightKg float64, heightCm float64, ageYears int) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(ageYears)
	if sex == models.SexMale {
		return bmr + 5
	}
	return bmr - 161
}

func ActivityMultiplier(activityLevel string) float64 {
	if multiplier, ok := activityMultipliers[activityLevel]; ok {
		return multiplier
	}
	return defaultActivityMultiplier
}

// CalculateCalories returns the daily calorie target for the profile, or
// models.DefaultCalories when a required input is missing.
func CalculateCalories(profile BiometricProfile) float64 {
	if !profile.Complete() {
		return models.DefaultCalories
	}

	calories := CalculateBMR(*profile.Sex, *profile.WeightKg, *profile.HeightCm, *profile.Age) *
		ActivityMultiplier(*profile.ActivityLevel)

	if profile.IsPregnant {
		calories += pregnancyCalorieBonus
	}
	if profile.IsLactating {
		calories += lactationCalorieBonus
	}

	if profile.DietGoal != nil {
		switch *profile.DietGoal {
		case models.DietGoalLoseWeight:
			calories -= dietGoalCalorieDelta
		case models.DietGoalGainWeight:
			calories += dietGoalCalorieDelta
		}
	}

	return math.Max(calories, 0)
}

// macroSplit is the share of calories from fat, carbohydrate and protein.
type macroSplit struct {
	fat, carbohydrate, protein float64
}

func macroSplitForAge(age int) macroSplit {
	switch {
	case age >= 1 && age <= 3:
		return macroSplit{fat: 0.35, carbohydrate: 0.525, protein: 0.125}
	case age >= 4 && age <= 18:
		return macroSplit{fat: 0.275, carbohydrate: 0.525, protein: 0.2}
	default:
		return macroSplit{fat: 0.225, carbohydrate: 0.525, protein: 0.25}
	}
}

func CalculateMacronutrients(calories float64, age int) Macronutrients {
	split := macroSplitForAge(age)
	return Macronutrients{
		Fat:          split.fat * calories / kcalPerGramFat,
		Carbohydrate: split.carbohydrate * calories / kcalPerGramCarbohydrate,
		Protein:      split.protein * calories / kcalPerGramProtein,
	}
}

func roundTo(value float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(value*scale) / scale
}
