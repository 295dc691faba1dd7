package db

import "gorm.io/gorm"

type Repositories struct {
	Users         *UserRepository
	Units         *UnitRepository
	Nutrients     *NutrientRepository
	Items         *ItemRepository
	CombinedItems *CombinedItemRepository
	GoalTemplates *GoalTemplateRepository
	Goals         *GoalRepository
	Consumption   *ConsumptionRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(database),
		Units:         NewUnitRepository(database),
		Nutrients:     NewNutrientRepository(database),
		Items:         NewItemRepository(database),
		CombinedItems: NewCombinedItemRepository(database),
		GoalTemplates: NewGoalTemplateRepository(database),
		Goals:         NewGoalRepository(database),
		Consumption:   NewConsumptionRepository(database),
	}
}
