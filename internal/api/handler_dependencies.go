package api

import (
	"github.com/terraincognita07/nutrigoal/internal/db"
	"github.com/terraincognita07/nutrigoal/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	repositories := db.NewRepositories(database)
	handler.repositories = repositories

	matcher := services.NewGoalTemplateMatcher(repositories.GoalTemplates)
	handler.authService = services.NewAuthService(repositories.Users)
	handler.profileService = services.NewProfileService(repositories.Users)
	handler.goalService = services.NewGoalService(repositories.Users, repositories.Goals, matcher)
	handler.consumption = services.NewConsumptionService(repositories.Consumption, repositories.Items, repositories.CombinedItems, handler.location)
	handler.statusService = services.NewGoalStatusService(handler.goalService, handler.consumption)
	handler.itemService = services.NewItemService(repositories.Items, repositories.CombinedItems, repositories.Units, repositories.Nutrients)
	handler.catalogService = services.NewCatalogService(repositories.Units, repositories.Nutrients, repositories.GoalTemplates)
	return handler
}
