package model

import (
	"time"

	"gorm.io/gorm"
)

// User roles. Role is assigned at registration; elevated roles require an
// authenticated admin caller.
const (
	RoleClient     = "client"
	RoleTechnician = "technician"
	RoleAdmin      = "admin"
)

// ValidRole reports whether role is one of the enumerated user roles.
func ValidRole(role string) bool {
	switch role {
	case RoleClient, RoleTechnician, RoleAdmin:
		return true
	}
	return false
}

// User represents the user model stored in the database
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"type:varchar(100);not null"`
	Email     string         `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Password  string         `json:"-" gorm:"type:varchar(255)"`
	Role      string         `json:"role" gorm:"type:varchar(20);not null;default:client"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
