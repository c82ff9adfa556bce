package model

import "time"

// Service and request states. Assignment is the only transition in scope;
// completion is tracked in data but never triggered here.
const (
	StatusPending    = "Pending"
	StatusInProgress = "InProgress"
)

// ServiceRequest is the original report of a fault: who reported it, from
// which department and what went wrong. Immutable after registration.
type ServiceRequest struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Department string    `json:"department" gorm:"type:varchar(100);not null"`
	FaultType  string    `json:"faultType" gorm:"type:varchar(100);not null"`
	Message    string    `json:"message" gorm:"type:text;not null"`
	ReportedBy string    `json:"reportedBy" gorm:"type:varchar(100);not null"`
	Status     string    `json:"status" gorm:"type:varchar(20);not null;default:Pending"`
	CreatedAt  time.Time `json:"created_at"`
}

// Service tracks the handling of one request. Created in the same
// transaction as its ServiceRequest, so a service always has exactly one
// request behind it.
type Service struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	RequestID       uint            `json:"request_id" gorm:"uniqueIndex;not null"`
	Request         *ServiceRequest `json:"-" gorm:"foreignKey:RequestID"`
	Status          string          `json:"status" gorm:"type:varchar(20);not null;default:Pending"`
	Technician      *string         `json:"technician,omitempty" gorm:"type:varchar(100)"`
	MaterialsUsed   *string         `json:"materials_used,omitempty" gorm:"type:text"`
	AttendedAt      *time.Time      `json:"attended_at,omitempty"`
	DurationMinutes *int            `json:"duration_minutes,omitempty"`
	InventoryItemID *uint           `json:"inventory_item_id,omitempty" gorm:"index"`
	EmailLogID      *uint           `json:"email_log_id,omitempty" gorm:"index"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
