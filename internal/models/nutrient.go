package models

// Unit identifies a measurement unit. At least one of name and abbreviation
// is set; both are unique when present.
type Unit struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         *string `gorm:"uniqueIndex" json:"name"`
	Abbreviation *string `gorm:"uniqueIndex" json:"abbreviation"`
}

// Label prefers the abbreviation, which is what nutrient status reports show.
func (unit Unit) Label() string {
	if unit.Abbreviation != nil && *unit.Abbreviation != "" {
		return *unit.Abbreviation
	}
	if unit.Name != nil {
		return *unit.Name
	}
	return ""
}

const (
	NutrientFat          = "Fat"
	NutrientCarbohydrate = "Carbohydrate"
	NutrientProtein      = "Protein"
)

// MacronutrientNames lists the nutrients whose targets are derived from the
// calorie goal rather than copied from a template.
func MacronutrientNames() []string {
	return []string{NutrientFat, NutrientCarbohydrate, NutrientProtein}
}

// Nutrient rows form a tree through ParentNutrientID. Category nutrients group
// others and never have a parent themselves.
type Nutrient struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	Name             string `gorm:"uniqueIndex;not null" json:"name"`
	UnitID           uint   `gorm:"not null" json:"unit_id"`
	Unit             Unit   `gorm:"foreignKey:UnitID" json:"unit"`
	IsCategory       bool   `gorm:"not null;default:false" json:"is_category"`
	ParentNutrientID *uint  `gorm:"index" json:"parent_nutrient_id"`
}
