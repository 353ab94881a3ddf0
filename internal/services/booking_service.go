package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/joshua-takyi/coachbook/internal/events"
	"github.com/joshua-takyi/coachbook/internal/models"
	"github.com/joshua-takyi/coachbook/internal/mq"
	"github.com/joshua-takyi/coachbook/internal/payments"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrAttendeeNotFound = errors.New("attendee not found")
	ErrNotAuthorized    = errors.New("not authorized")
	ErrBookingFinalized = errors.New("booking already confirmed")
	ErrRefundFailed     = errors.New("refund failed")
)

// EventCreator is the slice of the event manager the workflow needs.
type EventCreator interface {
	Create(ctx context.Context, userID uuid.UUID, evt *models.CalendarEvent) (*events.CreateResult, error)
}

// EmailSender sends the booking notification emails.
type EmailSender interface {
	SendScheduledEmails(ctx context.Context, evt *models.CalendarEvent) error
	SendDeclinedEmails(ctx context.Context, evt *models.CalendarEvent) error
}

// PayloadDispatcher fans a webhook payload out to subscribers.
type PayloadDispatcher interface {
	FanOut(ctx context.Context, trigger string, hooks []models.Webhook, payload map[string]interface{})
}

// BookingService orchestrates the confirmation workflow: authorization,
// external event creation, persistence, notification emails and webhook
// fan-out.
type BookingService struct {
	bookings   models.BookingRepo
	users      models.UserRepo
	eventTypes models.EventTypeRepo
	webhooks   models.WebhookRepo
	manager    EventCreator
	emails     EmailSender
	refunder   payments.Refunder
	dispatcher PayloadDispatcher
	publisher  *mq.Publisher
	logger     *slog.Logger
}

func NewBookingService(
	bookings models.BookingRepo,
	users models.UserRepo,
	eventTypes models.EventTypeRepo,
	webhookRepo models.WebhookRepo,
	manager EventCreator,
	emails EmailSender,
	refunder payments.Refunder,
	dispatcher PayloadDispatcher,
	publisher *mq.Publisher,
	logger *slog.Logger,
) *BookingService {
	return &BookingService{
		bookings:   bookings,
		users:      users,
		eventTypes: eventTypes,
		webhooks:   webhookRepo,
		manager:    manager,
		emails:     emails,
		refunder:   refunder,
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     logger,
	}
}

type ConfirmInput struct {
	RequestorID uuid.UUID
	BookingID   uuid.UUID
	Confirmed   bool
	Reason      string
	Metadata    map[string]interface{}
}

// Confirm drives the PENDING -> CONFIRMED or PENDING -> REJECTED transition.
func (s *BookingService) Confirm(ctx context.Context, in ConfirmInput) error {
	requestor, err := s.users.GetUser(ctx, in.RequestorID)
	if err != nil {
		if models.IsNotFound(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("load requestor: %w", err)
	}

	booking, err := s.bookings.GetBooking(ctx, in.BookingID)
	if err != nil {
		if models.IsNotFound(err) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("load booking: %w", err)
	}

	authorized, err := s.authorized(ctx, requestor, booking)
	if err != nil {
		return err
	}
	if !authorized {
		return ErrNotAuthorized
	}

	if booking.Confirmed {
		return ErrBookingFinalized
	}

	evt := models.BuildCalendarEvent(booking, requestor)

	if in.Confirmed {
		return s.confirm(ctx, booking, evt, in)
	}
	return s.reject(ctx, booking, evt, in)
}

// authorized succeeds for the organizer, or for any assigned user of a
// COLLECTIVE event type.
func (s *BookingService) authorized(ctx context.Context, requestor *models.User, booking *models.Booking) (bool, error) {
	if booking.UserID == requestor.ID {
		return true, nil
	}
	if booking.EventTypeID == uuid.Nil {
		return false, nil
	}

	eventType, err := s.eventTypes.GetEventType(ctx, booking.EventTypeID)
	if err != nil {
		if models.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("load event type: %w", err)
	}
	return eventType.SchedulingType == models.SchedulingCollective && eventType.HasUser(requestor.ID), nil
}

func (s *BookingService) confirm(ctx context.Context, booking *models.Booking, evt *models.CalendarEvent, in ConfirmInput) error {
	result, err := s.manager.Create(ctx, booking.UserID, evt)
	if err != nil {
		return fmt.Errorf("create downstream events: %w", err)
	}

	// The conditional update is the idempotency point: of two concurrent
	// confirmations only one row update matches a pending booking.
	confirmed, err := s.bookings.ConfirmBooking(ctx, booking.ID, result.ReferencesToCreate)
	if err != nil {
		if errors.Is(err, models.ErrFinalized) {
			return ErrBookingFinalized
		}
		return fmt.Errorf("persist confirmation: %w", err)
	}

	if result.AllFailed() {
		// Best-effort calendar sync: the booking stays confirmed even when
		// every downstream creation failed.
		s.logger.Error("All downstream event creations failed",
			"booking_uid", booking.UID,
			"organizer_id", booking.UserID,
			"results", len(result.Results),
		)
	} else {
		evt.AdditionInformation = additionInformation(result)
		if err := s.emails.SendScheduledEmails(ctx, evt); err != nil {
			s.logger.Error("Scheduled emails failed", "booking_uid", booking.UID, "error", err)
		}
	}

	evt.Status = confirmed.Status
	evt.Confirmed = confirmed.Confirmed
	s.triggerWebhooks(ctx, booking.UserID, models.TriggerBookingConfirmed, evt, booking.UID, in.Metadata)

	if err := s.publisher.PublishJSON(ctx, mq.RKBookingConfirmed, map[string]any{"booking_uid": booking.UID}); err != nil {
		s.logger.Error("Publishing booking.confirmed failed", "booking_uid", booking.UID, "error", err)
	}
	return nil
}

func (s *BookingService) reject(ctx context.Context, booking *models.Booking, evt *models.CalendarEvent, in ConfirmInput) error {
	// The booking must stay pending when the refund fails.
	if err := s.refunder.Refund(ctx, booking); err != nil {
		return fmt.Errorf("%w: %v", ErrRefundFailed, err)
	}

	rejected, err := s.bookings.RejectBooking(ctx, booking.ID, in.Reason)
	if err != nil {
		if errors.Is(err, models.ErrFinalized) {
			return ErrBookingFinalized
		}
		return fmt.Errorf("persist rejection: %w", err)
	}

	evt.RejectionReason = in.Reason
	evt.Status = rejected.Status
	evt.Rejected = rejected.Rejected
	s.triggerWebhooks(ctx, booking.UserID, models.TriggerBookingRejected, evt, booking.UID, in.Metadata)

	if err := s.emails.SendDeclinedEmails(ctx, evt); err != nil {
		s.logger.Error("Declined emails failed", "booking_uid", booking.UID, "error", err)
	}

	if err := s.publisher.PublishJSON(ctx, mq.RKBookingRejected, map[string]any{"booking_uid": booking.UID}); err != nil {
		s.logger.Error("Publishing booking.rejected failed", "booking_uid", booking.UID, "error", err)
	}
	return nil
}

// CustomerConfirm sets the per-booking customer-confirmation flag.
func (s *BookingService) CustomerConfirm(ctx context.Context, bookingUID, attendeeEmail string) error {
	booking, err := s.bookings.GetBookingByUID(ctx, bookingUID)
	if err != nil {
		if models.IsNotFound(err) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("load booking: %w", err)
	}

	if !booking.HasAttendee(attendeeEmail) {
		return ErrAttendeeNotFound
	}

	if err := s.bookings.SetCustomerConfirmed(ctx, bookingUID); err != nil {
		return fmt.Errorf("persist customer confirmation: %w", err)
	}
	return nil
}

// triggerWebhooks resolves the organizer's subscribers for the trigger and
// fans the payload out. Failures never surface to the caller.
func (s *BookingService) triggerWebhooks(ctx context.Context, userID uuid.UUID, trigger string, evt *models.CalendarEvent, bookingUID string, metadata map[string]interface{}) {
	subscribers, err := s.webhooks.Subscribers(ctx, userID, trigger)
	if err != nil {
		s.logger.Error("Resolving webhook subscribers failed",
			"trigger", trigger, "user_id", userID, "error", err)
		return
	}
	if len(subscribers) == 0 {
		return
	}

	payload := eventPayload(evt)
	payload["bookingId"] = bookingUID
	if metadata != nil {
		payload["metadata"] = metadata
	}

	s.dispatcher.FanOut(ctx, trigger, subscribers, payload)
}

// eventPayload flattens the calendar event into the webhook payload map.
func eventPayload(evt *models.CalendarEvent) map[string]interface{} {
	payload := make(map[string]interface{})
	raw, err := json.Marshal(evt)
	if err != nil {
		return payload
	}
	_ = json.Unmarshal(raw, &payload)
	return payload
}

// additionInformation collects join metadata from the first successful
// downstream result.
func additionInformation(result *events.CreateResult) *models.AdditionInformation {
	for _, res := range result.Results {
		if !res.Success || res.CreatedEvent == nil {
			continue
		}
		info := &models.AdditionInformation{HangoutLink: res.CreatedEvent.URL}
		if res.CreatedEvent.URL != "" {
			info.EntryPoints = []string{res.CreatedEvent.URL}
		}
		return info
	}
	return nil
}
