package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Username            string     `gorm:"uniqueIndex" json:"username"`
	Name                string     `json:"name"`
	Email               string     `gorm:"uniqueIndex" json:"email" validate:"required,email"`
	Password            string     `json:"-"`
	Bio                 string     `json:"bio"`
	Avatar              string     `json:"avatar"`
	TimeZone            string     `gorm:"default:Europe/London" json:"time_zone"`
	WeekStart           string     `gorm:"default:Sunday" json:"week_start"`
	Locale              string     `json:"locale"`
	HideBranding        bool       `json:"hide_branding"`
	Theme               string     `json:"theme"`
	CompletedOnboarding bool       `json:"completed_onboarding"`
	DestinationCalendar string     `json:"destination_calendar"`
	EmailVerified       *time.Time `json:"email_verified"`
	Plan                string     `gorm:"default:FREE" json:"plan"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}
