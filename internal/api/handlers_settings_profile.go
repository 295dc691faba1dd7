package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nutrigoal/internal/services"
)

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	profile, err := handler.profileService.Get(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(newProfileView(profile))
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := profileInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	updated, err := handler.profileService.Update(user.ID, services.ProfileUpdate{
		Age:           input.Age,
		WeightKg:      input.WeightKg,
		HeightCm:      input.HeightCm,
		Sex:           input.Sex,
		IsPregnant:    input.IsPregnant,
		IsLactating:   input.IsLactating,
		ActivityLevel: input.ActivityLevel,
		DietGoal:      input.DietGoal,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(newProfileView(updated))
}
