package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joshua-takyi/coachbook/internal/integrations"
	"github.com/joshua-takyi/coachbook/internal/models"
)

// Outbound calls to video services get a bounded timeout so a hung vendor
// API cannot hang the whole request.
const adapterCallTimeout = 15 * time.Second

// EventResult is the outcome of one downstream service. Failure is carried
// as data instead of an error so one vendor's outage never aborts the rest
// of the fan-out.
type EventResult struct {
	Type         string                      `json:"type"`
	Success      bool                        `json:"success"`
	Error        string                      `json:"error,omitempty"`
	CreatedEvent *integrations.MeetingHandle `json:"createdEvent,omitempty"`
}

type CreateResult struct {
	Results            []EventResult
	ReferencesToCreate []models.BookingReference
}

// AllFailed reports whether every downstream creation failed. An empty
// result list is not a failure: the organizer simply has no integrations.
func (r *CreateResult) AllFailed() bool {
	if len(r.Results) == 0 {
		return false
	}
	for _, res := range r.Results {
		if res.Success {
			return false
		}
	}
	return true
}

// EventManager materializes a calendar event in every linked third-party
// service of the organizer, returning per-service results.
type EventManager struct {
	registry    *integrations.Registry
	credentials models.CredentialRepo
	// fallback is used when the organizer has no credential row of a
	// supported type; nil disables the fallback.
	fallback *models.Credential
	logger   *slog.Logger
}

func NewEventManager(registry *integrations.Registry, credentials models.CredentialRepo, fallback *models.Credential, logger *slog.Logger) *EventManager {
	return &EventManager{
		registry:    registry,
		credentials: credentials,
		fallback:    fallback,
		logger:      logger,
	}
}

func (m *EventManager) adaptersFor(ctx context.Context, userID uuid.UUID) ([]adapterEntry, error) {
	creds, err := m.credentials.CredentialsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var entries []adapterEntry
	for i := range creds {
		cred := &creds[i]
		if !m.registry.Supported(cred.Type) {
			continue
		}
		adapter, err := m.registry.Get(cred)
		if err != nil {
			m.logger.Error("Building integration adapter failed",
				"type", cred.Type, "user_id", userID, "error", err)
			entries = append(entries, adapterEntry{credType: cred.Type, buildErr: err})
			continue
		}
		entries = append(entries, adapterEntry{credType: cred.Type, adapter: adapter})
	}

	if len(entries) == 0 && m.fallback != nil {
		adapter, err := m.registry.Get(m.fallback)
		if err != nil {
			return nil, err
		}
		entries = append(entries, adapterEntry{credType: m.fallback.Type, adapter: adapter})
	}
	return entries, nil
}

type adapterEntry struct {
	credType string
	adapter  integrations.VideoAdapter
	buildErr error
}

// Create materializes the event in every linked service. The returned error
// only covers resolving the organizer's credentials; per-service failures
// are reported inside the results.
func (m *EventManager) Create(ctx context.Context, userID uuid.UUID, event *models.CalendarEvent) (*CreateResult, error) {
	entries, err := m.adaptersFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &CreateResult{}
	for _, entry := range entries {
		if entry.buildErr != nil {
			result.Results = append(result.Results, EventResult{
				Type:    entry.credType,
				Success: false,
				Error:   entry.buildErr.Error(),
			})
			continue
		}

		callCtx, cancel := context.WithTimeout(ctx, adapterCallTimeout)
		handle, err := entry.adapter.CreateMeeting(callCtx, event)
		cancel()
		if err != nil {
			m.logger.Error("Creating meeting failed",
				"type", entry.credType, "uid", event.UID, "error", err)
			result.Results = append(result.Results, EventResult{
				Type:    entry.credType,
				Success: false,
				Error:   err.Error(),
			})
			continue
		}

		result.Results = append(result.Results, EventResult{
			Type:         entry.credType,
			Success:      true,
			CreatedEvent: &handle,
		})
		result.ReferencesToCreate = append(result.ReferencesToCreate, models.BookingReference{
			Type:            handle.Type,
			UID:             event.UID,
			MeetingID:       handle.ID,
			MeetingPassword: handle.Password,
			MeetingURL:      handle.URL,
		})
	}
	return result, nil
}

// Update remaps the stored references through each adapter, e.g. after a
// reschedule.
func (m *EventManager) Update(ctx context.Context, userID uuid.UUID, refs []models.BookingReference) ([]EventResult, error) {
	entries, err := m.adaptersFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	byType := make(map[string]integrations.VideoAdapter, len(entries))
	for _, entry := range entries {
		if entry.adapter != nil {
			byType[entry.credType] = entry.adapter
		}
	}

	var results []EventResult
	for i := range refs {
		ref := &refs[i]
		adapter, ok := byType[ref.Type]
		if !ok {
			continue
		}
		callCtx, cancel := context.WithTimeout(ctx, adapterCallTimeout)
		handle, err := adapter.UpdateMeeting(callCtx, ref)
		cancel()
		if err != nil {
			results = append(results, EventResult{Type: ref.Type, Success: false, Error: err.Error()})
			continue
		}
		results = append(results, EventResult{Type: ref.Type, Success: true, CreatedEvent: &handle})
	}
	return results, nil
}

// Delete tears down the externally created meetings. Failures are logged and
// skipped; the booking itself is already in a terminal state by the time
// this runs.
func (m *EventManager) Delete(ctx context.Context, userID uuid.UUID, refs []models.BookingReference) {
	entries, err := m.adaptersFor(ctx, userID)
	if err != nil {
		m.logger.Error("Resolving credentials for delete failed", "user_id", userID, "error", err)
		return
	}

	byType := make(map[string]integrations.VideoAdapter, len(entries))
	for _, entry := range entries {
		if entry.adapter != nil {
			byType[entry.credType] = entry.adapter
		}
	}

	for _, ref := range refs {
		adapter, ok := byType[ref.Type]
		if !ok {
			continue
		}
		callCtx, cancel := context.WithTimeout(ctx, adapterCallTimeout)
		err := adapter.DeleteMeeting(callCtx, integrations.MeetingHandle{
			Type: ref.Type,
			ID:   ref.MeetingID,
			URL:  ref.MeetingURL,
		})
		cancel()
		if err != nil {
			m.logger.Error("Deleting meeting failed", "type", ref.Type, "meeting_id", ref.MeetingID, "error", err)
		}
	}
}
