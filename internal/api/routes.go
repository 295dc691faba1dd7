package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/metrics", handler.metrics.Handler())
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.CurrentAccount)
	auth.Post("/change-password", handler.AuthRequired, handler.ChangePassword)

	profile := api.Group("/profile", handler.AuthRequired)
	profile.Get("", handler.GetProfile)
	profile.Patch("", handler.UpdateProfile)

	goals := api.Group("/goals", handler.AuthRequired)
	goals.Get("", handler.ListGoals)
	goals.Post("/generate", handler.GenerateGoal)
	goals.Get("/active", handler.ActiveGoal)
	goals.Get("/status", handler.GoalStatus)
	goals.Get("/:id", handler.GetGoal)
	goals.Patch("/:id", handler.UpdateGoal)

	consumed := api.Group("/consumed", handler.AuthRequired)
	consumed.Post("", handler.RecordConsumption)
	consumed.Get("/today", handler.ListConsumedToday)
	consumed.Delete("/:id", handler.DeleteConsumed)

	items := api.Group("/items", handler.AuthRequired)
	items.Get("", handler.SearchItems)
	items.Post("", handler.CreateCustomItem)
	items.Post("/catalog", handler.AdminOnly, handler.CreateCatalogItem)
	items.Get("/:id", handler.GetItem)
	items.Post("/:id/favorite", handler.ToggleFavorite)
	items.Get("/:id/bioactives", handler.ListItemBioactives)
	items.Post("/:id/bioactives", handler.AddItemBioactive)

	api.Get("/favorites", handler.AuthRequired, handler.ListFavorites)

	combined := api.Group("/combined-items", handler.AuthRequired)
	combined.Get("", handler.ListCombinedItems)
	combined.Post("", handler.CreateCombinedItem)
	combined.Get("/:id", handler.GetCombinedItem)
	combined.Post("/:id/elements", handler.AddCombinedItemElement)

	units := api.Group("/units", handler.AuthRequired)
	units.Get("", handler.ListUnits)
	units.Post("", handler.AdminOnly, handler.CreateUnit)

	nutrients := api.Group("/nutrients", handler.AuthRequired)
	nutrients.Get("", handler.ListNutrients)
	nutrients.Post("", handler.AdminOnly, handler.CreateNutrient)
	nutrients.Put("/:id/parent", handler.AdminOnly, handler.SetNutrientParent)

	templates := api.Group("/goal-templates", handler.AuthRequired)
	templates.Get("", handler.ListGoalTemplates)
	templates.Post("", handler.AdminOnly, handler.SaveGoalTemplate)
	templates.Get("/:id", handler.GetGoalTemplate)
}
