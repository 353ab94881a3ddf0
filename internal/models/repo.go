package models

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var Validate = validator.New()

// ErrFinalized is returned by conditional state transitions when the booking
// already left the state the transition requires. The guard lives in the
// UPDATE itself so two concurrent requests cannot both win.
var ErrFinalized = errors.New("booking already finalized")

type BookingRepo interface {
	GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetBookingByUID(ctx context.Context, uid string) (*Booking, error)
	// ConfirmBooking marks the booking confirmed and inserts the event
	// references in one transaction. Fails with ErrFinalized unless the
	// booking is still pending.
	ConfirmBooking(ctx context.Context, id uuid.UUID, refs []BookingReference) (*Booking, error)
	// RejectBooking marks the booking rejected with the given reason.
	// Fails with ErrFinalized if the booking is already confirmed.
	RejectBooking(ctx context.Context, id uuid.UUID, reason string) (*Booking, error)
	SetCustomerConfirmed(ctx context.Context, uid string) error
}

type UserRepo interface {
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	CreateUser(ctx context.Context, user *User) error
	UpdateUser(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type EventTypeRepo interface {
	GetEventType(ctx context.Context, id uuid.UUID) (*EventType, error)
	CreateEventType(ctx context.Context, et *EventType) error
}

type WebhookRepo interface {
	// Subscribers returns the active webhooks of the user that listen for
	// the given trigger.
	Subscribers(ctx context.Context, userID uuid.UUID, trigger string) ([]Webhook, error)
	CreateWebhooks(ctx context.Context, hooks []Webhook) error
}

type CredentialRepo interface {
	CredentialsForUser(ctx context.Context, userID uuid.UUID) ([]Credential, error)
}

// GormRepo implements the repo interfaces on a single Postgres connection.
type GormRepo struct {
	db *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{db: db}
}

func (r *GormRepo) Migrate() error {
	return r.db.AutoMigrate(
		&User{},
		&EventType{},
		&Booking{},
		&Attendee{},
		&BookingReference{},
		&Webhook{},
		&Credential{},
	)
}
