package models

import (
	"crs/src/types"

	"github.com/google/uuid"
)

// Setting is a mutable back-office setting (email templates, default link
// expiry, deposit defaults). Grouped key/value rows rather than columns so
// the admin UI can add settings without migrations.
type Setting struct {
	ID           uuid.UUID      `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	SettingKey   string         `gorm:"uniqueIndex:name" json:"setting_key"`
	SettingValue types.JSONBAny `gorm:"type:jsonb" json:"setting_value"`
	Group        string         `gorm:"uniqueIndex:name" json:"group,omitempty"`

	types.Timestamps
}
