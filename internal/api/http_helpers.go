package api

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nutrigoal/internal/models"
	"github.com/terraincognita07/nutrigoal/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func apiMessage(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"message": message})
}

var serviceErrorStatuses = []struct {
	target error
	status int
}{
	{services.ErrOwnershipViolation, fiber.StatusForbidden},
	{services.ErrAuthCredentialsInvalid, fiber.StatusUnauthorized},
	{services.ErrEmailTaken, fiber.StatusConflict},
	{services.ErrGoalNameTaken, fiber.StatusConflict},

	{services.ErrUserNotFound, fiber.StatusNotFound},
	{services.ErrNoActiveGoal, fiber.StatusNotFound},
	{services.ErrGoalNotFound, fiber.StatusNotFound},
	{services.ErrItemNotFound, fiber.StatusNotFound},
	{services.ErrNoItemsMatch, fiber.StatusNotFound},
	{services.ErrCombinedItemNotFound, fiber.StatusNotFound},
	{services.ErrConsumedNotFound, fiber.StatusNotFound},
	{services.ErrUnitNotFound, fiber.StatusNotFound},
	{services.ErrNutrientNotFound, fiber.StatusNotFound},
	{services.ErrGoalTemplateMissing, fiber.StatusNotFound},

	{services.ErrNoTemplateMatch, fiber.StatusBadRequest},
	{services.ErrInvalidDeactivation, fiber.StatusBadRequest},
	{services.ErrInvalidConsumption, fiber.StatusBadRequest},
	{services.ErrValidationRange, fiber.StatusBadRequest},
	{services.ErrInvalidGoalName, fiber.StatusBadRequest},
	{services.ErrInvalidNutrientTree, fiber.StatusBadRequest},
	{services.ErrInvalidNutrient, fiber.StatusBadRequest},
	{services.ErrInvalidUnit, fiber.StatusBadRequest},
	{services.ErrInvalidGoalTemplate, fiber.StatusBadRequest},
	{services.ErrInvalidItem, fiber.StatusBadRequest},
	{services.ErrInvalidBioactive, fiber.StatusBadRequest},
	{services.ErrInvalidCombinedItem, fiber.StatusBadRequest},
	{services.ErrInvalidProfileValue, fiber.StatusBadRequest},
	{services.ErrInvalidProfileCombination, fiber.StatusBadRequest},
	{services.ErrWeakPassword, fiber.StatusBadRequest},
	{services.ErrInvalidPassword, fiber.StatusBadRequest},
	{services.ErrPasswordReused, fiber.StatusBadRequest},
	{models.ErrInvalidConsumptionTarget, fiber.StatusBadRequest},
}

func serviceErrorStatus(err error) int {
	for _, mapping := range serviceErrorStatuses {
		if errors.Is(err, mapping.target) {
			return mapping.status
		}
	}
	return fiber.StatusInternalServerError
}

// respondServiceError maps a service error onto its status. Server errors are
// logged and never echo internals to the client.
func respondServiceError(c *fiber.Ctx, err error) error {
	status := serviceErrorStatus(err)
	if status >= fiber.StatusInternalServerError {
		slog.Error("request failed",
			"request_id", requestID(c),
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)
		return apiError(c, status, "internal error")
	}
	return apiError(c, status, err.Error())
}

func requestID(c *fiber.Ctx) string {
	if value, ok := c.Locals("requestid").(string); ok {
		return value
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}

func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Params(name))
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}
