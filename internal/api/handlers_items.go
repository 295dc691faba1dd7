package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nutrigoal/internal/services"
)

func (handler *Handler) SearchItems(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	results, err := handler.itemService.Search(user.ID, c.Query("barcode"), c.Query("name"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(results)
}

func (handler *Handler) GetItem(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	itemID, valid := parseIDParam(c, "id")
	if !valid {
		return apiError(c, fiber.StatusBadRequest, "invalid item id")
	}

	item, err := handler.itemService.Get(user.ID, itemID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(item)
}

func (handler *Handler) ListItemBioactives(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	itemID, valid := parseIDParam(c, "id")
	if !valid {
		return apiError(c, fiber.StatusBadRequest, "invalid item id")
	}

	bioactives, err := handler.itemService.Bioactives(user.ID, itemID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(bioactives)
}

func (handler *Handler) AddItemBioactive(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	itemID, valid := parseIDParam(c, "id")
	if !valid {
		return apiError(c, fiber.StatusBadRequest, "invalid item id")
	}

	input := bioactiveInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	bioactive, err := handler.itemService.AddBioactive(user.ID, user.IsAdmin(), itemID, services.BioactiveInput{
		Name:   input.Name,
		Amount: input.Amount,
		UnitID: input.UnitID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(bioactive)
}

func (handler *Handler) CreateCustomItem(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input, err := parseItemInput(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	item, err := handler.itemService.CreateCustom(user.ID, input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (handler *Handler) CreateCatalogItem(c *fiber.Ctx) error {
	input, err := parseItemInput(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	item, err := handler.itemService.CreateCatalog(input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func parseItemInput(c *fiber.Ctx) (services.ItemInput, error) {
	payload := itemInput{}
	if err := c.BodyParser(&payload); err != nil {
		return services.ItemInput{}, err
	}

	input := services.ItemInput{
		Name:          payload.Name,
		Barcode:       payload.Barcode,
		Calories:      payload.Calories,
		ServingAmount: payload.ServingSize.Amount,
		ServingUnitID: payload.ServingSize.UnitID,
		Nutrients:     make(map[uint]float64, len(payload.Nutrients)),
	}
	for _, nutrient := range payload.Nutrients {
		input.Nutrients[nutrient.NutrientID] = nutrient.Amount
	}
	return input, nil
}

func (handler *Handler) ToggleFavorite(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	itemID, valid := parseIDParam(c, "id")
	if !valid {
		return apiError(c, fiber.StatusBadRequest, "invalid item id")
	}

	favorited, err := handler.itemService.ToggleFavorite(user.ID, itemID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if favorited {
		return apiMessage(c, fiber.StatusCreated, "item favorited")
	}
	return apiMessage(c, fiber.StatusOK, "item unfavorited")
}

// ListFavorites answers 404 when the user has no favorites.
func (handler *Handler) ListFavorites(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	ids, err := handler.itemService.FavoriteIDs(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if len(ids) == 0 {
		return apiError(c, fiber.StatusNotFound, "no favorites found")
	}
	return c.JSON(fiber.Map{"item_ids": ids})
}

func (handler *Handler) ListCombinedItems(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	combined, err := handler.itemService.ListCombined(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(combined)
}

func (handler *Handler) GetCombinedItem(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	combinedID, valid := parseIDParam(c, "id")
	if !valid {
		return apiError(c, fiber.StatusBadRequest, "invalid combined item id")
	}

	combined, err := handler.itemService.GetCombined(user.ID, combinedID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(combined)
}

func (handler *Handler) CreateCombinedItem(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := combinedItemInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	elements := make([]services.ElementInput, 0, len(input.Elements))
	for _, element := range input.Elements {
		elements = append(elements, services.ElementInput{ItemID: element.ItemID, Portion: element.Portion})
	}

	combined, err := handler.itemService.CreateCombined(user.ID, input.Name, elements)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(combined)
}

func (handler *Handler) AddCombinedItemElement(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	combinedID, valid := parseIDParam(c, "id")
	if !valid {
		return apiError(c, fiber.StatusBadRequest, "invalid combined item id")
	}

	input := elementInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	combined, err := handler.itemService.AddElement(user.ID, combinedID, services.ElementInput{ItemID: input.ItemID, Portion: input.Portion})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(combined)
}
