package models

import (
	"time"

	"gorm.io/gorm"
)

// Inventory item categories
const (
	CategoryVaccine       = "Vaccine"
	CategoryMedicalSupply = "Medical Supply"
)

// ValidCategory reports whether category is one of the allowed values
func ValidCategory(category string) bool {
	return category == CategoryVaccine || category == CategoryMedicalSupply
}

// InventoryItem represents one stocked clinic item (vaccine or medical supply)
type InventoryItem struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	ItemName        string    `json:"itemName" gorm:"not null;size:100;index"`
	Category        string    `json:"category" gorm:"not null;size:50;index"`
	Price           float64   `json:"price" gorm:"not null"`
	QuantityInStock int       `json:"quantityInStock" gorm:"not null;default:0"`
	QuantityUsed    int       `json:"quantityUsed" gorm:"not null;default:0"`
	ExpiryDate      time.Time `json:"expiryDate" gorm:"not null;index"`
	IsArchived      bool      `json:"isArchived" gorm:"default:false"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	// Derived, never stored
	QuantityRemaining int `json:"quantityRemaining" gorm:"-"`
}

// BeforeCreate hook sets the creation timestamps
func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	i.CreatedAt = time.Now()
	i.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate hook refreshes the update timestamp
func (i *InventoryItem) BeforeUpdate(tx *gorm.DB) error {
	i.UpdatedAt = time.Now()
	return nil
}

// AfterFind hook computes the remaining quantity on every read
func (i *InventoryItem) AfterFind(tx *gorm.DB) error {
	i.QuantityRemaining = i.QuantityInStock - i.QuantityUsed
	return nil
}

// AfterSave hook keeps the remaining quantity current on writes
func (i *InventoryItem) AfterSave(tx *gorm.DB) error {
	i.QuantityRemaining = i.QuantityInStock - i.QuantityUsed
	return nil
}
