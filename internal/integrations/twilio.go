package integrations

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twilio/twilio-go"
	videov1 "github.com/twilio/twilio-go/rest/video/v1"

	"github.com/joshua-takyi/coachbook/internal/models"
)

const (
	twilioMaxParticipants = 2
	// 4 hours, in seconds
	twilioMaxParticipantDuration = 14400
	twilioRoomTimeoutMinutes     = 5
)

// TwilioConfig is the required-keys contract of a twilio_video credential:
//
//	{"account_sid": "...", "auth_token": "..."}
type TwilioConfig struct {
	AccountSID string `json:"account_sid"`
	AuthToken  string `json:"auth_token"`
}

type TwilioAdapter struct {
	cfg    TwilioConfig
	client *twilio.RestClient
}

// NewTwilioAdapter builds the adapter from an explicit config. Credentials
// are resolved once here and not refreshed mid-operation.
func NewTwilioAdapter(cfg TwilioConfig) (*TwilioAdapter, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" {
		return nil, fmt.Errorf("twilio: account_sid and auth_token are required")
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &TwilioAdapter{cfg: cfg, client: client}, nil
}

// TwilioBuilder adapts NewTwilioAdapter to the registry, parsing the config
// out of the credential key blob.
func TwilioBuilder(cred *models.Credential) (VideoAdapter, error) {
	var cfg TwilioConfig
	if err := json.Unmarshal(cred.Key, &cfg); err != nil {
		return nil, fmt.Errorf("twilio: decode credential key: %w", err)
	}
	return NewTwilioAdapter(cfg)
}

// Availability always reports no busy intervals; the Twilio video API has no
// availability query.
func (a *TwilioAdapter) Availability(ctx context.Context) ([]BusyInterval, error) {
	return []BusyInterval{}, nil
}

func (a *TwilioAdapter) CreateMeeting(ctx context.Context, event *models.CalendarEvent) (MeetingHandle, error) {
	params := &videov1.CreateRoomParams{}
	params.SetUniqueName(event.UID)
	params.SetMaxParticipants(twilioMaxParticipants)
	params.SetMaxParticipantDuration(twilioMaxParticipantDuration)
	params.SetEmptyRoomTimeout(twilioRoomTimeoutMinutes)
	params.SetUnusedRoomTimeout(twilioRoomTimeoutMinutes)

	room, err := a.client.VideoV1.CreateRoom(params)
	if err != nil {
		return MeetingHandle{}, fmt.Errorf("twilio: create room: %w", err)
	}

	handle := MeetingHandle{Type: models.CredentialTwilioVideo}
	if room.Sid != nil {
		handle.ID = *room.Sid
	}
	if room.Url != nil {
		handle.URL = *room.Url
	}
	return handle, nil
}

func (a *TwilioAdapter) UpdateMeeting(ctx context.Context, ref *models.BookingReference) (MeetingHandle, error) {
	return MeetingHandle{
		Type:     ref.Type,
		ID:       ref.MeetingID,
		Password: ref.MeetingPassword,
		URL:      ref.MeetingURL,
	}, nil
}

// DeleteMeeting completes the room, which ends it for all participants.
func (a *TwilioAdapter) DeleteMeeting(ctx context.Context, handle MeetingHandle) error {
	if handle.ID == "" {
		return nil
	}
	params := &videov1.UpdateRoomParams{}
	params.SetStatus("completed")
	if _, err := a.client.VideoV1.UpdateRoom(handle.ID, params); err != nil {
		return fmt.Errorf("twilio: complete room %s: %w", handle.ID, err)
	}
	return nil
}
