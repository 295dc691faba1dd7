package models

import "gorm.io/gorm"

const MaxItemCalories = 100000

type ServingSize struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	Amount float64 `gorm:"not null" json:"amount"`
	UnitID uint    `gorm:"not null" json:"unit_id"`
	Unit   Unit    `gorm:"foreignKey:UnitID" json:"unit"`
}

// Item is a food entry. A nil UserID marks a catalog item; custom items
// belong to the user who created them.
type Item struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"not null;index" json:"name"`
	Barcode       *string         `gorm:"index" json:"barcode"`
	Calories      int             `gorm:"not null" json:"calories"`
	ServingSizeID uint            `gorm:"not null" json:"serving_size_id"`
	ServingSize   ServingSize     `gorm:"foreignKey:ServingSizeID" json:"serving_size"`
	UserID        *uint           `gorm:"index" json:"user_id"`
	IsCustom      bool            `gorm:"not null;default:false" json:"is_custom"`
	Nutrients     []ItemNutrient  `gorm:"foreignKey:ItemID" json:"nutrients,omitempty"`
	Bioactives    []ItemBioactive `gorm:"foreignKey:ItemID" json:"bioactives,omitempty"`
}

func (item *Item) BeforeSave(_ *gorm.DB) error {
	item.IsCustom = item.UserID != nil
	return nil
}

// VisibleTo reports whether userID may read or log the item.
func (item Item) VisibleTo(userID uint) bool {
	return item.UserID == nil || *item.UserID == userID
}

type ItemNutrient struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	ItemID     uint     `gorm:"not null;uniqueIndex:uidx_item_nutrient" json:"item_id"`
	NutrientID uint     `gorm:"not null;uniqueIndex:uidx_item_nutrient" json:"nutrient_id"`
	Nutrient   Nutrient `gorm:"foreignKey:NutrientID" json:"nutrient"`
	Amount     float64  `gorm:"not null" json:"amount"`
}

const MaxBioactiveNameLength = 50

// ItemBioactive is a non-nutrient compound such as caffeine, measured per
// serving of its item.
type ItemBioactive struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	ItemID uint    `gorm:"not null;index" json:"item_id"`
	Name   string  `gorm:"not null" json:"name"`
	Amount float64 `gorm:"not null" json:"amount"`
	UnitID uint    `gorm:"not null" json:"unit_id"`
	Unit   Unit    `gorm:"foreignKey:UnitID" json:"unit"`
}

type FavoriteItem struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"not null;uniqueIndex:uidx_favorite_user_item"`
	ItemID uint `gorm:"not null;uniqueIndex:uidx_favorite_user_item"`
}

// CombinedItem is a user-composed meal. Element portions describe the
// recipe composition, not how much of it was eaten.
type CombinedItem struct {
	ID       uint                  `gorm:"primaryKey" json:"id"`
	UserID   uint                  `gorm:"not null;index" json:"user_id"`
	Name     string                `gorm:"not null;index" json:"name"`
	Elements []CombinedItemElement `gorm:"foreignKey:CombinedItemID" json:"elements,omitempty"`
}

type CombinedItemElement struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	CombinedItemID uint    `gorm:"not null;index" json:"combined_item_id"`
	ItemID         uint    `gorm:"not null" json:"item_id"`
	Item           Item    `gorm:"foreignKey:ItemID" json:"item"`
	Portion        float64 `gorm:"not null" json:"portion"`
}
