package models

import (
	"crs/src/types"
	"time"

	"github.com/google/uuid"
)

// AuditLog records every state-changing action for traceability. It is never
// read back for replay or recovery.
type AuditLog struct {
	ID         uuid.UUID   `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	EntityType string      `gorm:"index" json:"entity_type"`
	EntityID   string      `gorm:"index" json:"entity_id"`
	Action     string      `json:"action"`
	Payload    types.JSONB `gorm:"type:jsonb" json:"payload,omitempty"`
	CreatedAt  time.Time   `gorm:"autoCreateTime:nano" json:"created_at"`
}
