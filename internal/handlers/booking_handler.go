package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/joshua-takyi/coachbook/internal/middleware"
	"github.com/joshua-takyi/coachbook/internal/services"
)

type confirmBookingBody struct {
	ID        string                 `json:"id"`
	Confirmed *bool                  `json:"confirmed" binding:"required"`
	Reason    string                 `json:"reason"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// ConfirmBooking handles PATCH /bookings/confirm: the organizer (or an
// assigned collective user) confirms or rejects a pending booking.
func ConfirmBooking(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.SessionClaims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
			return
		}

		var body confirmBookingBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		if body.ID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "bookingId missing"})
			return
		}
		bookingID, err := uuid.Parse(body.ID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid booking id"})
			return
		}

		err = b.Confirm(c.Request.Context(), services.ConfirmInput{
			RequestorID: claims.UserID(),
			BookingID:   bookingID,
			Confirmed:   *body.Confirmed,
			Reason:      body.Reason,
			Metadata:    body.Metadata,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			case errors.Is(err, services.ErrBookingNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "booking not found"})
			case errors.Is(err, services.ErrNotAuthorized):
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			case errors.Is(err, services.ErrBookingFinalized):
				c.JSON(http.StatusBadRequest, gin.H{"message": "booking already confirmed"})
			case errors.Is(err, services.ErrRefundFailed):
				c.JSON(http.StatusBadGateway, gin.H{"message": "refund failed, booking left pending"})
			default:
				_ = c.Error(err)
			}
			return
		}

		c.Status(http.StatusNoContent)
	}
}

type customerConfirmBody struct {
	Email         string `json:"email" binding:"required,email"`
	AppointmentID string `json:"appointmentId" binding:"required"`
}

// CustomerConfirm handles POST /bookings/customer-confirm: an attendee
// acknowledges a booking by its uid.
func CustomerConfirm(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body customerConfirmBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		err := b.CustomerConfirm(c.Request.Context(), body.AppointmentID, body.Email)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrBookingNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "Requested booking not found"})
			case errors.Is(err, services.ErrAttendeeNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "Attendee with email " + body.Email + " does not exist"})
			default:
				_ = c.Error(err)
			}
			return
		}

		c.Status(http.StatusNoContent)
	}
}
