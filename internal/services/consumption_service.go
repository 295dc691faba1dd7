package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/terraincognita07/nutrigoal/internal/models"
)

var (
	ErrInvalidConsumption = errors.New("invalid consumption")
	ErrConsumedNotFound   = errors.New("consumption entry not found")
)

type ConsumptionRepository interface {
	Create(entry *models.Consumed) error
	FindByID(consumedID uint) (models.Consumed, error)
	Delete(consumedID uint) error
	ListByUserRange(userID uint, from time.Time, to time.Time) ([]models.ConsumedEntry, error)
	SumCalories(userID uint, from time.Time, to time.Time) (float64, error)
	SumNutrient(userID uint, nutrientID uint, from time.Time, to time.Time) (float64, error)
	SumNutrients(userID uint, from time.Time, to time.Time) (map[uint]float64, error)
}

type ConsumableItemLookup interface {
	ExistsVisible(itemID uint, userID uint) (exists bool, visible bool, err error)
}

type CombinedItemOwnerLookup interface {
	FindOwner(combinedItemID uint) (ownerID uint, exists bool, err error)
}

type ConsumptionService struct {
	entries       ConsumptionRepository
	items         ConsumableItemLookup
	combinedItems CombinedItemOwnerLookup
	location      *time.Location
}

func NewConsumptionService(entries ConsumptionRepository, items ConsumableItemLookup, combinedItems CombinedItemOwnerLookup, location *time.Location) *ConsumptionService {
	if location == nil {
		location = time.UTC
	}
	return &ConsumptionService{
		entries:       entries,
		items:         items,
		combinedItems: combinedItems,
		location:      location,
	}
}

func (service *ConsumptionService) Location() *time.Location {
	return service.location
}

// Record logs portion servings of target for userID at now.
func (service *ConsumptionService) Record(userID uint, target models.ConsumptionTarget, portion float64, now time.Time) (models.Consumed, error) {
	if math.IsNaN(portion) || math.IsInf(portion, 0) || portion < 0 {
		return models.Consumed{}, fmt.Errorf("%w: portion must be a non-negative number", ErrInvalidConsumption)
	}
	if !target.Valid() {
		return models.Consumed{}, fmt.Errorf("%w: exactly one of item or combined item is required", ErrInvalidConsumption)
	}
	if err := service.checkTarget(userID, target); err != nil {
		return models.Consumed{}, err
	}

	entry := models.Consumed{
		UserID:     userID,
		Portion:    portion,
		ConsumedAt: now.UTC(),
	}
	if err := entry.SetTarget(target); err != nil {
		return models.Consumed{}, fmt.Errorf("%w: %v", ErrInvalidConsumption, err)
	}
	if err := service.entries.Create(&entry); err != nil {
		return models.Consumed{}, err
	}
	return entry, nil
}

func (service *ConsumptionService) checkTarget(userID uint, target models.ConsumptionTarget) error {
	switch target.Kind {
	case models.ConsumptionKindItem:
		exists, visible, err := service.items.ExistsVisible(target.ID, userID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: item %d does not exist", ErrInvalidConsumption, target.ID)
		}
		if !visible {
			return ErrOwnershipViolation
		}
	case models.ConsumptionKindCombinedItem:
		ownerID, exists, err := service.combinedItems.FindOwner(target.ID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: combined item %d does not exist", ErrInvalidConsumption, target.ID)
		}
		if ownerID != userID {
			return ErrOwnershipViolation
		}
	}
	return nil
}

// Today returns the calendar day containing now in the service's location.
func (service *ConsumptionService) Today(now time.Time) CalendarDay {
	return CalendarDayOf(now, service.location)
}

func (service *ConsumptionService) TotalCaloriesToday(userID uint, now time.Time) (float64, error) {
	today := service.Today(now)
	return service.entries.SumCalories(userID, today.Start, today.End)
}

func (service *ConsumptionService) TotalNutrientToday(userID uint, nutrientID uint, now time.Time) (float64, error) {
	today := service.Today(now)
	return service.entries.SumNutrient(userID, nutrientID, today.Start, today.End)
}

// NutrientTotalsToday returns today's consumed amount per nutrient. Nutrients
// with nothing consumed are absent.
func (service *ConsumptionService) NutrientTotalsToday(userID uint, now time.Time) (map[uint]float64, error) {
	today := service.Today(now)
	return service.entries.SumNutrients(userID, today.Start, today.End)
}

func (service *ConsumptionService) ListToday(userID uint, now time.Time) ([]models.ConsumedEntry, error) {
	today := service.Today(now)
	return service.entries.ListByUserRange(userID, today.Start, today.End)
}

func (service *ConsumptionService) Delete(userID uint, consumedID uint) error {
	entry, err := service.entries.FindByID(consumedID)
	if isNotFound(err) {
		return ErrConsumedNotFound
	}
	if err != nil {
		return err
	}
	if entry.UserID != userID {
		return ErrOwnershipViolation
	}
	return service.entries.Delete(consumedID)
}
