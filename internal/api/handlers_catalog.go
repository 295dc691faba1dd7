package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nutrigoal/internal/models"
	"github.com/terraincognita07/nutrigoal/internal/services"
)

func (handler *Handler) ListUnits(c *fiber.Ctx) error {
	units, err := handler.catalogService.ListUnits()
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(units)
}

func (handler *Handler) CreateUnit(c *fiber.Ctx) error {
	input := unitInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	unit, err := handler.catalogService.CreateUnit(input.Name, input.Abbreviation)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(unit)
}

func (handler *Handler) ListNutrients(c *fiber.Ctx) error {
	nutrients, err := handler.catalogService.ListNutrients()
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(nutrients)
}

func (handler *Handler) CreateNutrient(c *fiber.Ctx) error {
	input := nutrientInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	nutrient, err := handler.catalogService.CreateNutrient(services.NutrientInput{
		Name:       input.Name,
		UnitID:     input.UnitID,
		IsCategory: input.IsCategory,
		ParentID:   input.ParentID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(nutrient)
}

func (handler *Handler) SetNutrientParent(c *fiber.Ctx) error {
	nutrientID, valid := parseIDParam(c, "id")
	if !valid {
		return apiError(c, fiber.StatusBadRequest, "invalid nutrient id")
	}
	input := nutrientParentInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := handler.catalogService.SetNutrientParent(nutrientID, input.ParentID); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) ListGoalTemplates(c *fiber.Ctx) error {
	templates, err := handler.catalogService.ListGoalTemplates()
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(templates)
}

func (handler *Handler) GetGoalTemplate(c *fiber.Ctx) error {
	templateID, valid := parseIDParam(c, "id")
	if !valid {
		return apiError(c, fiber.StatusBadRequest, "invalid goal template id")
	}
	template, err := handler.catalogService.GetGoalTemplate(templateID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(template)
}

func (handler *Handler) SaveGoalTemplate(c *fiber.Ctx) error {
	input := goalTemplateInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	template := models.GoalTemplate{
		Name:            input.Name,
		Sex:             input.Sex,
		IsPregnant:      input.IsPregnant,
		IsLactating:     input.IsLactating,
		AgeMin:          input.AgeMin,
		AgeMax:          input.AgeMax,
		DefaultCalories: input.DefaultCalories,
	}
	for _, nutrient := range input.Nutrients {
		template.Nutrients = append(template.Nutrients, models.GoalTemplateNutrient{
			NutrientID:       nutrient.NutrientID,
			RecommendedValue: nutrient.RecommendedValue,
		})
	}

	saved, err := handler.catalogService.SaveGoalTemplate(template)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(saved)
}
