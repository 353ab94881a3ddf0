package models

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r *GormRepo) GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Attendees").
		Preload("References").
		First(&booking, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *GormRepo) GetBookingByUID(ctx context.Context, uid string) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Attendees").
		First(&booking, "uid = ?", uid).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ConfirmBooking flips the booking to confirmed and bulk-inserts the event
// references in the same transaction. The status guard in the WHERE clause
// closes the read-then-write race: of two concurrent confirmations only one
// update matches a pending row.
func (r *GormRepo) ConfirmBooking(ctx context.Context, id uuid.UUID, refs []BookingReference) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Booking{}).
			Where("id = ? AND status = ?", id, BookingStatusPending).
			Updates(map[string]interface{}{
				"confirmed": true,
				"status":    BookingStatusConfirmed,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrFinalized
		}

		for i := range refs {
			if refs[i].ID == uuid.Nil {
				refs[i].ID = uuid.New()
			}
			refs[i].BookingID = id
		}
		if len(refs) > 0 {
			if err := tx.Create(&refs).Error; err != nil {
				return fmt.Errorf("create booking references: %w", err)
			}
		}

		return tx.Preload("Attendees").Preload("References").First(&booking, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// RejectBooking stores the rejection. The guard only excludes confirmed
// bookings; rejecting an already-rejected booking succeeds again, matching
// the historic behavior callers rely on.
func (r *GormRepo) RejectBooking(ctx context.Context, id uuid.UUID, reason string) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Booking{}).
			Where("id = ? AND confirmed = ?", id, false).
			Updates(map[string]interface{}{
				"rejected":         true,
				"status":           BookingStatusRejected,
				"rejection_reason": reason,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrFinalized
		}
		return tx.Preload("Attendees").First(&booking, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *GormRepo) SetCustomerConfirmed(ctx context.Context, uid string) error {
	res := r.db.WithContext(ctx).Model(&Booking{}).
		Where("uid = ?", uid).
		Update("customer_confirmed", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsNotFound reports whether err is the store's missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
