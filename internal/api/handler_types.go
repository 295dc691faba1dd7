package api

import (
	"time"

	"github.com/terraincognita07/nutrigoal/internal/models"
)

type credentialsInput struct {
	Email      string `json:"email" form:"email"`
	Password   string `json:"password" form:"password"`
	RememberMe bool   `json:"remember_me" form:"remember_me"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type profileInput struct {
	Age           *int     `json:"age"`
	WeightKg      *float64 `json:"weight_kg"`
	HeightCm      *float64 `json:"height_cm"`
	Sex           *string  `json:"sex"`
	IsPregnant    *bool    `json:"is_pregnant"`
	IsLactating   *bool    `json:"is_lactating"`
	ActivityLevel *string  `json:"activity_level"`
	DietGoal      *string  `json:"diet_goal"`
}

type goalPatchInput struct {
	Name     *string `json:"name"`
	Calories *int    `json:"calories"`
	IsActive *bool   `json:"is_active"`
}

type consumedInput struct {
	ItemID         *uint    `json:"item_id"`
	CombinedItemID *uint    `json:"combined_item_id"`
	Portion        *float64 `json:"portion"`
}

type servingSizeInput struct {
	Amount float64 `json:"amount"`
	UnitID uint    `json:"unit_id"`
}

type itemNutrientInput struct {
	NutrientID uint    `json:"nutrient_id"`
	Amount     float64 `json:"amount"`
}

type itemInput struct {
	Name        string              `json:"name"`
	Barcode     string              `json:"barcode"`
	Calories    int                 `json:"calories"`
	ServingSize servingSizeInput    `json:"serving_size"`
	Nutrients   []itemNutrientInput `json:"nutrients"`
}

type bioactiveInput struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	UnitID uint    `json:"unit_id"`
}

type elementInput struct {
	ItemID  uint    `json:"item_id"`
	Portion float64 `json:"portion"`
}

type combinedItemInput struct {
	Name     string         `json:"name"`
	Elements []elementInput `json:"elements"`
}

type unitInput struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

type nutrientInput struct {
	Name       string `json:"name"`
	UnitID     uint   `json:"unit_id"`
	IsCategory bool   `json:"is_category"`
	ParentID   *uint  `json:"parent_nutrient_id"`
}

type nutrientParentInput struct {
	ParentID *uint `json:"parent_nutrient_id"`
}

type templateNutrientInput struct {
	NutrientID       uint    `json:"nutrient_id"`
	RecommendedValue float64 `json:"recommended_value"`
}

type goalTemplateInput struct {
	Name            string                  `json:"name"`
	Sex             *string                 `json:"sex"`
	IsPregnant      bool                    `json:"is_pregnant"`
	IsLactating     bool                    `json:"is_lactating"`
	AgeMin          int                     `json:"age_min"`
	AgeMax          int                     `json:"age_max"`
	DefaultCalories int                     `json:"default_calories"`
	Nutrients       []templateNutrientInput `json:"nutrients"`
}

type userView struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type profileView struct {
	Age           *int     `json:"age"`
	WeightKg      *float64 `json:"weight_kg"`
	HeightCm      *float64 `json:"height_cm"`
	Sex           *string  `json:"sex"`
	IsPregnant    bool     `json:"is_pregnant"`
	IsLactating   bool     `json:"is_lactating"`
	ActivityLevel *string  `json:"activity_level"`
	DietGoal      *string  `json:"diet_goal"`
}

type goalNutrientView struct {
	NutrientID  uint    `json:"nutrient_id"`
	Name        string  `json:"name"`
	Unit        string  `json:"unit"`
	TargetValue float64 `json:"target_value"`
}

type goalView struct {
	ID         uint               `json:"id"`
	Name       string             `json:"name"`
	TemplateID uint               `json:"template_id"`
	Calories   int                `json:"calories"`
	IsActive   bool               `json:"is_active"`
	Nutrients  []goalNutrientView `json:"nutrients"`
}

type consumedView struct {
	ID         uint      `json:"id"`
	Type       string    `json:"type"`
	ItemID     uint      `json:"item_id"`
	Name       string    `json:"name,omitempty"`
	Portion    float64   `json:"portion"`
	ConsumedAt time.Time `json:"consumed_at"`
}

func newUserView(user models.User) userView {
	return userView{ID: user.ID, Email: user.Email, Role: user.Role}
}

func newProfileView(user models.User) profileView {
	return profileView{
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

func newGoalView(goal models.UserGoal) goalView {
	view := goalView{
		ID:         goal.ID,
		Name:       goal.Name,
		TemplateID: goal.TemplateID,
		Calories:   goal.Calories,
		IsActive:   goal.IsActive,
		Nutrients:  make([]goalNutrientView, 0, len(goal.Nutrients)),
	}
	for _, nutrient := range goal.Nutrients {
		view.Nutrients = append(view.Nutrients, goalNutrientView{
			NutrientID:  nutrient.NutrientID,
			Name:        nutrient.Nutrient.Name,
			Unit:        nutrient.Nutrient.Unit.Label(),
			TargetValue: nutrient.TargetValue,
		})
	}
	return view
}

// consumedKindLabels are the type names clients see for each target kind.
var consumedKindLabels = map[models.ConsumptionKind]string{
	models.ConsumptionKindItem:         "Item",
	models.ConsumptionKindCombinedItem: "CombinedItem",
}

// newRecordedConsumedView shapes a freshly stored row, which carries no item
// name yet.
func newRecordedConsumedView(entry models.Consumed) (consumedView, error) {
	target, err := entry.Target()
	if err != nil {
		return consumedView{}, err
	}
	return consumedView{
		ID:         entry.ID,
		Type:       consumedKindLabels[target.Kind],
		ItemID:     target.ID,
		Portion:    entry.Portion,
		ConsumedAt: entry.ConsumedAt,
	}, nil
}

func newConsumedView(entry models.ConsumedEntry) consumedView {
	view := consumedView{
		ID:         entry.ID,
		Type:       consumedKindLabels[entry.Kind()],
		Name:       entry.Name,
		Portion:    entry.Portion,
		ConsumedAt: entry.ConsumedAt,
	}
	if entry.ItemID != nil {
		view.ItemID = *entry.ItemID
	}
	if entry.CombinedItemID != nil {
		view.ItemID = *entry.CombinedItemID
	}
	return view
}
