package models

import (
	"time"
)

// TranslateFunc resolves an email phrase key for one locale.
type TranslateFunc func(key string) string

type UserLanguage struct {
	Locale    string        `json:"locale"`
	Translate TranslateFunc `json:"-"`
}

type Person struct {
	Email    string       `json:"email"`
	Name     string       `json:"name"`
	TimeZone string       `json:"timeZone"`
	Language UserLanguage `json:"language"`
}

// AdditionInformation carries join metadata produced by a successful
// downstream event creation.
type AdditionInformation struct {
	HangoutLink    string   `json:"hangoutLink,omitempty"`
	ConferenceData string   `json:"conferenceData,omitempty"`
	EntryPoints    []string `json:"entryPoints,omitempty"`
}

// CalendarEvent is the adapter-agnostic event passed to the event manager.
// It is built fresh per confirmation or rejection and never persisted; its
// outcome is projected onto Booking fields and BookingReference rows.
type CalendarEvent struct {
	Type                string               `json:"type"`
	Title               string               `json:"title"`
	Description         string               `json:"description"`
	StartTime           string               `json:"startTime"`
	EndTime             string               `json:"endTime"`
	AgreedFee           float64              `json:"agreedFee"`
	Organizer           Person               `json:"organizer"`
	Attendees           []Person             `json:"attendees"`
	Location            string               `json:"location"`
	UID                 string               `json:"uid"`
	DestinationCalendar string               `json:"destinationCalendar,omitempty"`
	Status              BookingStatus        `json:"status"`
	Confirmed           bool                 `json:"confirmed"`
	Rejected            bool                 `json:"rejected"`
	RejectionReason     string               `json:"rejectionReason,omitempty"`
	AdditionInformation *AdditionInformation `json:"additionInformation,omitempty"`
}

// BuildCalendarEvent normalizes a booking and its organizer into the value
// object the event manager and the notification emails consume. Attendee
// locales default to "en"; an organizer without a display name becomes
// "Unnamed".
func BuildCalendarEvent(booking *Booking, organizer *User) *CalendarEvent {
	attendees := make([]Person, 0, len(booking.Attendees))
	for _, a := range booking.Attendees {
		locale := a.Locale
		if locale == "" {
			locale = "en"
		}
		attendees = append(attendees, Person{
			Email:    a.Email,
			Name:     a.Name,
			TimeZone: a.TimeZone,
			Language: UserLanguage{Locale: locale, Translate: GetTranslation(locale)},
		})
	}

	organizerName := organizer.Name
	if organizerName == "" {
		organizerName = "Unnamed"
	}
	organizerLocale := organizer.Locale
	if organizerLocale == "" {
		organizerLocale = "en"
	}

	destination := booking.DestinationCalendar
	if destination == "" {
		destination = organizer.DestinationCalendar
	}

	return &CalendarEvent{
		Type:        booking.Title,
		Title:       booking.Title,
		Description: booking.Description,
		StartTime:   booking.StartTime.Format(time.RFC3339),
		EndTime:     booking.EndTime.Format(time.RFC3339),
		AgreedFee:   booking.AgreedFee,
		Organizer: Person{
			Email:    organizer.Email,
			Name:     organizerName,
			TimeZone: organizer.TimeZone,
			Language: UserLanguage{Locale: organizerLocale, Translate: GetTranslation(organizerLocale)},
		},
		Attendees:           attendees,
		Location:            booking.Location,
		UID:                 booking.UID,
		DestinationCalendar: destination,
		Status:              booking.Status,
		Confirmed:           booking.Confirmed,
		Rejected:            booking.Rejected,
	}
}
