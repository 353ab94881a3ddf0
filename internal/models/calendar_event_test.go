package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestBuildCalendarEventLocaleDefaults(t *testing.T) {
	booking := &Booking{
		UID:       "bk-1",
		Title:     "Coaching session",
		StartTime: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC),
		Attendees: []Attendee{
			{Email: "a@example.com", Name: "Ana", Locale: "es"},
			{Email: "b@example.com", Name: "Ben", Locale: ""},
		},
	}
	organizer := &User{ID: uuid.New(), Email: "coach@example.com", Name: "Coach"}

	evt := BuildCalendarEvent(booking, organizer)

	if got := evt.Attendees[0].Language.Locale; got != "es" {
		t.Errorf("first attendee locale = %q, want es", got)
	}
	if got := evt.Attendees[0].Language.Translate("booking_scheduled"); got != "Tu reserva ha sido programada" {
		t.Errorf("spanish phrase = %q", got)
	}
	if got := evt.Attendees[1].Language.Locale; got != "en" {
		t.Errorf("empty attendee locale = %q, want en", got)
	}
	if got := evt.Attendees[1].Language.Translate("booking_scheduled"); got != "Your booking has been scheduled" {
		t.Errorf("english fallback phrase = %q", got)
	}
	if evt.StartTime != "2026-03-01T10:00:00Z" {
		t.Errorf("startTime = %q", evt.StartTime)
	}
}

func TestBuildCalendarEventOrganizerDefaults(t *testing.T) {
	booking := &Booking{UID: "bk-2", Title: "Session"}
	organizer := &User{
		ID:                  uuid.New(),
		Email:               "coach@example.com",
		DestinationCalendar: "primary",
	}

	evt := BuildCalendarEvent(booking, organizer)

	if evt.Organizer.Name != "Unnamed" {
		t.Errorf("organizer name = %q, want Unnamed", evt.Organizer.Name)
	}
	if evt.Organizer.Language.Locale != "en" {
		t.Errorf("organizer locale = %q, want en", evt.Organizer.Language.Locale)
	}
	if evt.DestinationCalendar != "primary" {
		t.Errorf("destination calendar = %q, want organizer fallback", evt.DestinationCalendar)
	}

	booking.DestinationCalendar = "team-cal"
	if evt := BuildCalendarEvent(booking, organizer); evt.DestinationCalendar != "team-cal" {
		t.Errorf("booking destination not preferred, got %q", evt.DestinationCalendar)
	}
}

func TestGetTranslationUnknownLocaleAndKey(t *testing.T) {
	translate := GetTranslation("de")
	if got := translate("booking_declined"); got != "Your booking request has been declined" {
		t.Errorf("unknown locale should fall back to english, got %q", got)
	}
	if got := translate("no_such_key"); got != "no_such_key" {
		t.Errorf("unknown key should echo the key, got %q", got)
	}
}

func TestWebhookSubscribed(t *testing.T) {
	hook := Webhook{EventTriggers: "BOOKING_CONFIRMED, BOOKING_REJECTED"}

	if !hook.Subscribed(TriggerBookingConfirmed) {
		t.Error("expected subscription to BOOKING_CONFIRMED")
	}
	if !hook.Subscribed(TriggerBookingRejected) {
		t.Error("expected subscription to BOOKING_REJECTED despite surrounding space")
	}
	if hook.Subscribed(TriggerBookingCancelled) {
		t.Error("unexpected subscription to BOOKING_CANCELLED")
	}
}

func TestBookingHasAttendee(t *testing.T) {
	booking := Booking{Attendees: []Attendee{{Email: "x@y.com"}}}

	if !booking.HasAttendee("x@y.com") {
		t.Error("expected attendee match")
	}
	if booking.HasAttendee("other@y.com") {
		t.Error("unexpected attendee match")
	}
}
