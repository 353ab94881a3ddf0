package models

import (
	"github.com/google/uuid"
)

type SchedulingType string

const (
	// SchedulingCollective event types are fulfilled by any of a fixed set
	// of assigned users, not just the creator.
	SchedulingCollective SchedulingType = "COLLECTIVE"
	SchedulingRoundRobin SchedulingType = "ROUND_ROBIN"
)

type EventType struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID               uuid.UUID      `gorm:"type:uuid;index" json:"user_id"`
	Title                string         `json:"title"`
	Slug                 string         `json:"slug"`
	Length               int            `json:"length"`
	SchedulingType       SchedulingType `json:"scheduling_type"`
	DisableGuests        bool           `json:"disable_guests"`
	RequiresConfirmation bool           `json:"requires_confirmation"`

	Users []User `gorm:"many2many:event_type_users" json:"users"`
}

func (et *EventType) HasUser(id uuid.UUID) bool {
	for _, u := range et.Users {
		if u.ID == id {
			return true
		}
	}
	return false
}
