package model

import "time"

// InventoryItem represents one registered piece of equipment
type InventoryItem struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	ProductType     string     `json:"product_type" gorm:"type:varchar(100);not null"`
	ProductName     string     `json:"product_name" gorm:"type:varchar(255);not null"`
	Brand           *string    `json:"brand,omitempty" gorm:"type:varchar(100)"`
	Model           *string    `json:"model,omitempty" gorm:"type:varchar(100)"`
	Condition       string     `json:"condition" gorm:"type:varchar(50);not null"`
	Location        string     `json:"location" gorm:"type:varchar(255);not null"`
	IntakeDate      time.Time  `json:"intake_date" gorm:"not null"`
	LastMaintenance *time.Time `json:"last_maintenance,omitempty"`
	Notes           *string    `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt       time.Time  `json:"created_at"`
}
