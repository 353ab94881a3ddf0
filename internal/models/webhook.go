package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Webhook trigger events subscribers can register interest in.
const (
	TriggerBookingCreated     = "BOOKING_CREATED"
	TriggerBookingConfirmed   = "BOOKING_CONFIRMED"
	TriggerBookingRejected    = "BOOKING_REJECTED"
	TriggerBookingCancelled   = "BOOKING_CANCELLED"
	TriggerBookingRescheduled = "BOOKING_RESCHEDULED"

	TriggerRescheduledCustomerConfirmed = "RESCHEDULED_BOOKING_CUSTOMER_CONFIRMED"
	TriggerRescheduledCoachConfirmed    = "RESCHEDULED_BOOKING_COACH_CONFIRMED"
)

type Webhook struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	SubscriberURL   string    `json:"subscriber_url"`
	EventTriggers   string    `json:"event_triggers"`
	PayloadTemplate string    `json:"payload_template"`
	Active          bool      `gorm:"default:true" json:"active"`
	CreatedAt       time.Time `json:"created_at"`
}

// Subscribed reports whether the webhook listens for the given trigger.
// EventTriggers is stored as a comma-separated list.
func (w *Webhook) Subscribed(trigger string) bool {
	for _, t := range strings.Split(w.EventTriggers, ",") {
		if strings.TrimSpace(t) == trigger {
			return true
		}
	}
	return false
}
