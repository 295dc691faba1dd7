package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/terraincognita07/nutrigoal/internal/models"
)

var (
	ErrInvalidItem          = errors.New("invalid item")
	ErrItemNotFound         = errors.New("item not found")
	ErrNoItemsMatch         = errors.New("no items match the search")
	ErrInvalidCombinedItem  = errors.New("invalid combined item")
	ErrCombinedItemNotFound = errors.New("combined item not found")
	ErrInvalidBioactive     = errors.New("invalid bioactive")
)

const (
	itemSearchLimit      = 10
	minServingSizeAmount = 0.01
)

type ItemRepository interface {
	FindByID(itemID uint) (models.Item, error)
	Search(userID uint, barcode string, query string, limit int) ([]models.Item, error)
	CreateWithNutrients(item *models.Item) error
	ToggleFavorite(userID uint, itemID uint) (bool, error)
	ListFavoriteIDs(userID uint) ([]uint, error)
	AddBioactive(bioactive *models.ItemBioactive) error
	ListBioactives(itemID uint) ([]models.ItemBioactive, error)
}

type CombinedItemRepository interface {
	FindByID(combinedItemID uint) (models.CombinedItem, error)
	ListByUser(userID uint) ([]models.CombinedItem, error)
	Create(combined *models.CombinedItem) error
	AddElement(element *models.CombinedItemElement) error
}

type ItemUnitLookup interface {
	FindByID(unitID uint) (models.Unit, error)
}

type ItemNutrientLookup interface {
	FindByID(nutrientID uint) (models.Nutrient, error)
}

type ItemService struct {
	items         ItemRepository
	combinedItems CombinedItemRepository
	units         ItemUnitLookup
	nutrients     ItemNutrientLookup
}

func NewItemService(items ItemRepository, combinedItems CombinedItemRepository, units ItemUnitLookup, nutrients ItemNutrientLookup) *ItemService {
	return &ItemService{
		items:         items,
		combinedItems: combinedItems,
		units:         units,
		nutrients:     nutrients,
	}
}

// ItemSearchResult flags which results the caller has favorited.
type ItemSearchResult struct {
	models.Item
	IsFavorite bool `json:"is_favorite"`
}

// Search looks an item up by barcode, or by the words of query when barcode
// is empty.
func (service *ItemService) Search(userID uint, barcode string, query string) ([]ItemSearchResult, error) {
	barcode = strings.TrimSpace(barcode)
	query = strings.TrimSpace(query)
	if barcode == "" && query == "" {
		return nil, fmt.Errorf("%w: barcode or name is required", ErrInvalidItem)
	}

	items, err := service.items.Search(userID, barcode, query, itemSearchLimit)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoItemsMatch
	}

	favoriteIDs, err := service.items.ListFavoriteIDs(userID)
	if err != nil {
		return nil, err
	}
	favorites := make(map[uint]struct{}, len(favoriteIDs))
	for _, id := range favoriteIDs {
		favorites[id] = struct{}{}
	}

	results := make([]ItemSearchResult, 0, len(items))
	for _, item := range items {
		_, favorite := favorites[item.ID]
		results = append(results, ItemSearchResult{Item: item, IsFavorite: favorite})
	}
	return results, nil
}

func (service *ItemService) Get(userID uint, itemID uint) (models.Item, error) {
	item, err := service.items.FindByID(itemID)
	if isNotFound(err) {
		return models.Item{}, ErrItemNotFound
	}
	if err != nil {
		return models.Item{}, err
	}
	if !item.VisibleTo(userID) {
		return models.Item{}, ErrOwnershipViolation
	}
	return item, nil
}

// ItemInput describes a custom item. Nutrient amounts are per serving.
type ItemInput struct {
	Name          string
	Barcode       string
	Calories      int
	ServingAmount float64
	ServingUnitID uint
	Nutrients     map[uint]float64
}

// CreateCustom stores an item owned by userID.
func (service *ItemService) CreateCustom(userID uint, input ItemInput) (models.Item, error) {
	item, err := service.buildItem(input)
	if err != nil {
		return models.Item{}, err
	}
	owner := userID
	item.UserID = &owner
	if err := service.items.CreateWithNutrients(&item); err != nil {
		return models.Item{}, err
	}
	return service.items.FindByID(item.ID)
}

// CreateCatalog stores a shared item with no owner.
func (service *ItemService) CreateCatalog(input ItemInput) (models.Item, error) {
	item, err := service.buildItem(input)
	if err != nil {
		return models.Item{}, err
	}
	if err := service.items.CreateWithNutrients(&item); err != nil {
		return models.Item{}, err
	}
	return service.items.FindByID(item.ID)
}

func (service *ItemService) buildItem(input ItemInput) (models.Item, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Item{}, fmt.Errorf("%w: name is required", ErrInvalidItem)
	}
	if input.Calories < 0 || input.Calories > models.MaxItemCalories {
		return models.Item{}, fmt.Errorf("%w: calories must be between 0 and %d", ErrValidationRange, models.MaxItemCalories)
	}
	if math.IsNaN(input.ServingAmount) || input.ServingAmount < minServingSizeAmount {
		return models.Item{}, fmt.Errorf("%w: serving size must be at least %.2f", ErrValidationRange, minServingSizeAmount)
	}
	if _, err := service.units.FindByID(input.ServingUnitID); err != nil {
		if isNotFound(err) {
			return models.Item{}, ErrUnitNotFound
		}
		return models.Item{}, err
	}

	item := models.Item{
		Name:        name,
		Barcode:     optionalText(input.Barcode),
		Calories:    input.Calories,
		ServingSize: models.ServingSize{Amount: input.ServingAmount, UnitID: input.ServingUnitID},
	}
	for nutrientID, amount := range input.Nutrients {
		if math.IsNaN(amount) || amount < 0 {
			return models.Item{}, fmt.Errorf("%w: nutrient amounts must be non-negative", ErrValidationRange)
		}
		if _, err := service.nutrients.FindByID(nutrientID); err != nil {
			if isNotFound(err) {
				return models.Item{}, fmt.Errorf("%w: %d", ErrNutrientNotFound, nutrientID)
			}
			return models.Item{}, err
		}
		item.Nutrients = append(item.Nutrients, models.ItemNutrient{NutrientID: nutrientID, Amount: amount})
	}
	return item, nil
}

type BioactiveInput struct {
	Name   string
	Amount float64
	UnitID uint
}

// AddBioactive attaches a compound to an item the user can see. Custom items
// are edited by their owner; catalog items need an admin.
func (service *ItemService) AddBioactive(userID uint, isAdmin bool, itemID uint, input BioactiveInput) (models.ItemBioactive, error) {
	item, err := service.Get(userID, itemID)
	if err != nil {
		return models.ItemBioactive{}, err
	}
	if item.UserID == nil && !isAdmin {
		return models.ItemBioactive{}, ErrOwnershipViolation
	}

	name := strings.TrimSpace(input.Name)
	if name == "" || utf8.RuneCountInString(name) > models.MaxBioactiveNameLength {
		return models.ItemBioactive{}, fmt.Errorf("%w: name must be 1 to %d characters", ErrInvalidBioactive, models.MaxBioactiveNameLength)
	}
	if math.IsNaN(input.Amount) || math.IsInf(input.Amount, 0) || input.Amount < 0 {
		return models.ItemBioactive{}, fmt.Errorf("%w: amount must be a non-negative number", ErrValidationRange)
	}
	unit, err := service.units.FindByID(input.UnitID)
	if isNotFound(err) {
		return models.ItemBioactive{}, ErrUnitNotFound
	}
	if err != nil {
		return models.ItemBioactive{}, err
	}

	bioactive := models.ItemBioactive{ItemID: item.ID, Name: name, Amount: input.Amount, UnitID: unit.ID}
	if err := service.items.AddBioactive(&bioactive); err != nil {
		return models.ItemBioactive{}, err
	}
	bioactive.Unit = unit
	return bioactive, nil
}

func (service *ItemService) Bioactives(userID uint, itemID uint) ([]models.ItemBioactive, error) {
	if _, err := service.Get(userID, itemID); err != nil {
		return nil, err
	}
	return service.items.ListBioactives(itemID)
}

// ToggleFavorite flips the favorite state of an item the user can see and
// reports the new state.
func (service *ItemService) ToggleFavorite(userID uint, itemID uint) (bool, error) {
	if _, err := service.Get(userID, itemID); err != nil {
		return false, err
	}
	return service.items.ToggleFavorite(userID, itemID)
}

func (service *ItemService) FavoriteIDs(userID uint) ([]uint, error) {
	return service.items.ListFavoriteIDs(userID)
}

func (service *ItemService) ListCombined(userID uint) ([]models.CombinedItem, error) {
	return service.combinedItems.ListByUser(userID)
}

func (service *ItemService) GetCombined(userID uint, combinedItemID uint) (models.CombinedItem, error) {
	combined, err := service.combinedItems.FindByID(combinedItemID)
	if isNotFound(err) {
		return models.CombinedItem{}, ErrCombinedItemNotFound
	}
	if err != nil {
		return models.CombinedItem{}, err
	}
	if combined.UserID != userID {
		return models.CombinedItem{}, ErrOwnershipViolation
	}
	return combined, nil
}

// ElementInput is one item of a combined item with its portion in the recipe.
type ElementInput struct {
	ItemID  uint
	Portion float64
}

func (service *ItemService) CreateCombined(userID uint, name string, elements []ElementInput) (models.CombinedItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.CombinedItem{}, fmt.Errorf("%w: name is required", ErrInvalidCombinedItem)
	}

	combined := models.CombinedItem{UserID: userID, Name: name}
	for _, input := range elements {
		element, err := service.buildElement(userID, input)
		if err != nil {
			return models.CombinedItem{}, err
		}
		combined.Elements = append(combined.Elements, element)
	}
	if err := service.combinedItems.Create(&combined); err != nil {
		return models.CombinedItem{}, err
	}
	return service.combinedItems.FindByID(combined.ID)
}

func (service *ItemService) AddElement(userID uint, combinedItemID uint, input ElementInput) (models.CombinedItem, error) {
	if _, err := service.GetCombined(userID, combinedItemID); err != nil {
		return models.CombinedItem{}, err
	}
	element, err := service.buildElement(userID, input)
	if err != nil {
		return models.CombinedItem{}, err
	}
	element.CombinedItemID = combinedItemID
	if err := service.combinedItems.AddElement(&element); err != nil {
		return models.CombinedItem{}, err
	}
	return service.combinedItems.FindByID(combinedItemID)
}

func (service *ItemService) buildElement(userID uint, input ElementInput) (models.CombinedItemElement, error) {
	if math.IsNaN(input.Portion) || math.IsInf(input.Portion, 0) || input.Portion < 0 {
		return models.CombinedItemElement{}, fmt.Errorf("%w: portion must be a non-negative number", ErrValidationRange)
	}
	if _, err := service.Get(userID, input.ItemID); err != nil {
		return models.CombinedItemElement{}, err
	}
	return models.CombinedItemElement{ItemID: input.ItemID, Portion: input.Portion}, nil
}
