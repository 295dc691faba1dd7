package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nutrigoal/internal/models"
)

const defaultConsumedPortion = 1.0

func (handler *Handler) RecordConsumption(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := consumedInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	target, valid := consumptionTarget(input)
	if !valid {
		return apiError(c, fiber.StatusBadRequest, "exactly one of item_id and combined_item_id is required")
	}
	portion := defaultConsumedPortion
	if input.Portion != nil {
		portion = *input.Portion
	}

	entry, err := handler.consumption.Record(user.ID, target, portion, handler.now())
	if err != nil {
		return respondServiceError(c, err)
	}
	handler.metrics.ConsumptionRecorded(string(target.Kind))

	view, err := newRecordedConsumedView(entry)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

func consumptionTarget(input consumedInput) (models.ConsumptionTarget, bool) {
	switch {
	case input.ItemID != nil && input.CombinedItemID == nil:
		return models.ItemTarget(*input.ItemID), true
	case input.CombinedItemID != nil && input.ItemID == nil:
		return models.CombinedItemTarget(*input.CombinedItemID), true
	default:
		return models.ConsumptionTarget{}, false
	}
}

func (handler *Handler) ListConsumedToday(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entries, err := handler.consumption.ListToday(user.ID, handler.now())
	if err != nil {
		return respondServiceError(c, err)
	}

	views := make([]consumedView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, newConsumedView(entry))
	}
	return c.JSON(views)
}

func (handler *Handler) DeleteConsumed(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	consumedID, valid := parseIDParam(c, "id")
	if !valid {
		return apiError(c, fiber.StatusBadRequest, "invalid consumption id")
	}

	if err := handler.consumption.Delete(user.ID, consumedID); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
