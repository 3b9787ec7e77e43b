package models

import (
	"crs/src/types"
	"time"
)

// User is a back-office staff account. Role gates the manual payment
// actions: "admin" and "staff" may confirm bank transfers, "viewer" may not.
type User struct {
	ID         uint       `gorm:"primarykey" json:"id"`
	Name       string     `json:"name,omitempty"`
	Email      string     `gorm:"uniqueIndex" json:"email,omitempty"`
	Role       string     `gorm:"default:staff" json:"role,omitempty"`
	LastActive *time.Time `json:"last_active,omitempty"`

	types.Timestamps
}
