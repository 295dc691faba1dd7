package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nutrigoal/internal/services"
)

type goalIDView struct {
	ID uint `json:"id"`
}

func (handler *Handler) GenerateGoal(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	goal, err := handler.goalService.Generate(user.ID)
	handler.metrics.GoalGenerated(err)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newGoalView(goal))
}

// ListGoals answers 404 for a user without goals.
func (handler *Handler) ListGoals(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	goals, err := handler.goalService.List(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if len(goals) == 0 {
		return apiError(c, fiber.StatusNotFound, "no goals found")
	}

	ids := make([]goalIDView, 0, len(goals))
	for _, goal := range goals {
		ids = append(ids, goalIDView{ID: goal.ID})
	}
	return c.JSON(ids)
}

func (handler *Handler) ActiveGoal(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	goal, err := handler.goalService.Active(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(goalIDView{ID: goal.ID})
}

func (handler *Handler) GetGoal(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	goalID, valid := parseIDParam(c, "id")
	if !valid {
		return apiError(c, fiber.StatusBadRequest, "invalid goal id")
	}

	goal, err := handler.goalService.Get(user.ID, goalID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(newGoalView(goal))
}

func (handler *Handler) UpdateGoal(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	goalID, valid := parseIDParam(c, "id")
	if !valid {
		return apiError(c, fiber.StatusBadRequest, "invalid goal id")
	}

	input := goalPatchInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	goal, err := handler.goalService.Update(user.ID, goalID, services.GoalPatch{
		Name:     input.Name,
		Calories: input.Calories,
		IsActive: input.IsActive,
	})
	handler.metrics.GoalUpdated(err)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(newGoalView(goal))
}

func (handler *Handler) GoalStatus(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	report, err := handler.statusService.Report(user.ID, handler.now())
	handler.metrics.StatusReported(err)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(report)
}
