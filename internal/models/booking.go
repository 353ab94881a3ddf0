package models

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UID         string    `gorm:"uniqueIndex" json:"uid"`
	UserID      uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	EventTypeID uuid.UUID `gorm:"type:uuid;index" json:"event_type_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	AgreedFee   float64   `json:"agreed_fee"`
	Location    string    `json:"location"`
	// status tracks booking state alongside the legacy confirmed/rejected
	// flags which the webhook payload still carries
	Status              BookingStatus `gorm:"index;default:pending" json:"status"`
	Confirmed           bool          `json:"confirmed"`
	Rejected            bool          `json:"rejected"`
	RejectionReason     string        `json:"rejection_reason"`
	CustomerConfirmed   bool          `json:"customer_confirmed"`
	PaymentReference    string        `json:"payment_reference"`
	DestinationCalendar string        `json:"destination_calendar"`

	Attendees  []Attendee         `gorm:"constraint:OnDelete:CASCADE" json:"attendees"`
	References []BookingReference `gorm:"constraint:OnDelete:CASCADE" json:"references"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Attendee struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;index" json:"booking_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	TimeZone  string    `json:"time_zone"`
	Locale    string    `json:"locale"`
}

// BookingReference links a booking to one event created in an external
// calendar or video service.
type BookingReference struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID       uuid.UUID `gorm:"type:uuid;index" json:"booking_id"`
	Type            string    `json:"type"`
	UID             string    `json:"uid"`
	MeetingID       string    `json:"meeting_id"`
	MeetingPassword string    `json:"meeting_password"`
	MeetingURL      string    `json:"meeting_url"`
}

func (b *Booking) HasAttendee(email string) bool {
	for _, attendee := range b.Attendees {
		if attendee.Email == email {
			return true
		}
	}
	return false
}
