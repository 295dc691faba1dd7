package models

import (
	"errors"
	"time"
)

type ConsumptionKind string

const (
	ConsumptionKindItem         ConsumptionKind = "item"
	ConsumptionKindCombinedItem ConsumptionKind = "combined_item"
)

var ErrInvalidConsumptionTarget = errors.New("invalid consumption target")

// ConsumptionTarget is what a Consumed row refers to: exactly one item or
// exactly one combined item.
type ConsumptionTarget struct {
	Kind ConsumptionKind
	ID   uint
}

func ItemTarget(itemID uint) ConsumptionTarget {
	return ConsumptionTarget{Kind: ConsumptionKindItem, ID: itemID}
}

func CombinedItemTarget(combinedItemID uint) ConsumptionTarget {
	return ConsumptionTarget{Kind: ConsumptionKindCombinedItem, ID: combinedItemID}
}

func (target ConsumptionTarget) Valid() bool {
	if target.ID == 0 {
		return false
	}
	return target.Kind == ConsumptionKindItem || target.Kind == ConsumptionKindCombinedItem
}

// Consumed is one logged intake event. ItemID and CombinedItemID are the
// storage form of the target; use Target and SetTarget instead of touching
// them directly.
type Consumed struct {
	ID             uint      `gorm:"primaryKey"`
	UserID         uint      `gorm:"not null;index:idx_consumed_user_time"`
	ItemID         *uint     `gorm:"column:item_id"`
	CombinedItemID *uint     `gorm:"column:combined_item_id"`
	Portion        float64   `gorm:"not null"`
	ConsumedAt     time.Time `gorm:"not null;index:idx_consumed_user_time"`
}

func (Consumed) TableName() string {
	return "consumed"
}

func (entry Consumed) Target() (ConsumptionTarget, error) {
	switch {
	case entry.ItemID != nil && entry.CombinedItemID == nil:
		return ItemTarget(*entry.ItemID), nil
	case entry.CombinedItemID != nil && entry.ItemID == nil:
		return CombinedItemTarget(*entry.CombinedItemID), nil
	default:
		return ConsumptionTarget{}, ErrInvalidConsumptionTarget
	}
}

func (entry *Consumed) SetTarget(target ConsumptionTarget) error {
	if !target.Valid() {
		return ErrInvalidConsumptionTarget
	}
	id := target.ID
	entry.ItemID = nil
	entry.CombinedItemID = nil
	if target.Kind == ConsumptionKindItem {
		entry.ItemID = &id
	} else {
		entry.CombinedItemID = &id
	}
	return nil
}

// ConsumedEntry is a consumption row joined with the name of what was eaten.
type ConsumedEntry struct {
	ID             uint      `json:"id"`
	ItemID         *uint     `json:"item_id"`
	CombinedItemID *uint     `json:"combined_item_id"`
	Name           string    `json:"name"`
	Portion        float64   `json:"portion"`
	ConsumedAt     time.Time `json:"consumed_at"`
}

func (entry ConsumedEntry) Kind() ConsumptionKind {
	if entry.CombinedItemID != nil {
		return ConsumptionKindCombinedItem
	}
	return ConsumptionKindItem
}
