package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Credential integration types.
const (
	CredentialTwilioVideo = "twilio_video"
	CredentialZoomVideo   = "zoom_video"
)

// Credential is a per-user, per-integration secret blob. Adapters read it,
// the workflow core never mutates it.
type Credential struct {
	ID     uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID       `gorm:"type:uuid;index" json:"user_id"`
	Type   string          `gorm:"index" json:"type"`
	Key    json.RawMessage `gorm:"type:jsonb" json:"key"`
}
