package models

const (
	DefaultCalories    = 2000
	MaxGoalCalories    = 100000
	FallbackGoalName   = "Nutritional Goal"
	CaloriesNutrientID = -1
)

// GoalTemplate is a recommended-intake profile for one demographic bucket.
type GoalTemplate struct {
	ID              uint                   `gorm:"primaryKey" json:"id"`
	Name            string                 `gorm:"uniqueIndex;not null" json:"name"`
	Sex             *string                `json:"sex"`
	IsPregnant      bool                   `gorm:"not null;default:false" json:"is_pregnant"`
	IsLactating     bool                   `gorm:"not null;default:false" json:"is_lactating"`
	AgeMin          int                    `gorm:"not null;default:0" json:"age_min"`
	AgeMax          int                    `gorm:"not null;default:120" json:"age_max"`
	DefaultCalories int                    `gorm:"not null;default:2000" json:"default_calories"`
	Nutrients       []GoalTemplateNutrient `gorm:"foreignKey:TemplateID" json:"nutrients,omitempty"`
}

type GoalTemplateNutrient struct {
	ID               uint     `gorm:"primaryKey" json:"id"`
	TemplateID       uint     `gorm:"not null;uniqueIndex:uidx_template_nutrient" json:"template_id"`
	NutrientID       uint     `gorm:"not null;uniqueIndex:uidx_template_nutrient" json:"nutrient_id"`
	Nutrient         Nutrient `gorm:"foreignKey:NutrientID" json:"nutrient"`
	RecommendedValue float64  `gorm:"not null;default:0" json:"recommended_value"`
}

// UserGoal is a user's personalized instance of a template. A user with any
// goals has exactly one active goal.
type UserGoal struct {
	ID         uint               `gorm:"primaryKey"`
	UserID     uint               `gorm:"not null;uniqueIndex:uidx_user_goal_name"`
	Name       string             `gorm:"not null;uniqueIndex:uidx_user_goal_name"`
	TemplateID uint               `gorm:"not null"`
	Calories   int                `gorm:"not null"`
	IsActive   bool               `gorm:"not null;default:false"`
	Nutrients  []UserGoalNutrient `gorm:"foreignKey:GoalID"`
}

type UserGoalNutrient struct {
	ID          uint     `gorm:"primaryKey"`
	GoalID      uint     `gorm:"not null;uniqueIndex:uidx_goal_nutrient"`
	NutrientID  uint     `gorm:"not null;uniqueIndex:uidx_goal_nutrient"`
	Nutrient    Nutrient `gorm:"foreignKey:NutrientID"`
	TargetValue float64  `gorm:"not null"`
}

// NutrientTarget is one goal target to upsert, keyed by nutrient.
type NutrientTarget struct {
	NutrientID uint
	Value      float64
}

// GoalDraft is the output of goal synthesis, persisted as a get-or-create on
// (UserID, Name). Targets later in the slice win over earlier ones for the
// same nutrient, and MacroGrams win over Targets.
type GoalDraft struct {
	UserID     uint
	TemplateID uint
	Name       string
	Calories   int
	Targets    []NutrientTarget
	// MacroGrams holds gram targets keyed by nutrient name.
	MacroGrams map[string]float64
}

// GoalChanges is an already validated partial update of one goal.
type GoalChanges struct {
	Name       *string
	Calories   *int
	Activate   bool
	Targets    []NutrientTarget
	MacroGrams map[string]float64
}
