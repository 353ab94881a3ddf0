package integrations

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/joshua-takyi/coachbook/internal/models"
)

// MeetingHandle identifies one meeting created in a video service.
type MeetingHandle struct {
	Type     string `json:"type"`
	ID       string `json:"id"`
	Password string `json:"password"`
	URL      string `json:"url"`
}

// BusyInterval is one occupied slot reported by an availability query.
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// VideoAdapter is the capability every video-conferencing integration
// implements. Failures are explicit error returns; callers decide whether a
// failed creation degrades or aborts the surrounding operation.
type VideoAdapter interface {
	// Availability may return an empty list when the integration does not
	// support availability queries.
	Availability(ctx context.Context) ([]BusyInterval, error)
	CreateMeeting(ctx context.Context, event *models.CalendarEvent) (MeetingHandle, error)
	// UpdateMeeting remaps an existing booking reference into a handle. It
	// does not necessarily contact the remote service.
	UpdateMeeting(ctx context.Context, ref *models.BookingReference) (MeetingHandle, error)
	// DeleteMeeting is best-effort from the workflow's point of view, but
	// the error is still reported so callers can log it.
	DeleteMeeting(ctx context.Context, handle MeetingHandle) error
}

// BuilderFunc constructs an adapter from one credential row.
type BuilderFunc func(cred *models.Credential) (VideoAdapter, error)

// Registry maps credential types to adapter constructors. Adding a vendor
// means registering a new builder, not changing callers.
type Registry struct {
	mu       sync.Mutex
	builders map[string]BuilderFunc
}

func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]BuilderFunc)}
}

func (r *Registry) Register(credentialType string, builder BuilderFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.builders[credentialType] = builder
}

func (r *Registry) Get(cred *models.Credential) (VideoAdapter, error) {
	r.mu.Lock()
	builder, ok := r.builders[cred.Type]
	r.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("integration %q is not implemented", cred.Type)
	}
	return builder(cred)
}

// Supported reports whether a builder exists for the credential type.
func (r *Registry) Supported(credentialType string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.builders[credentialType]
	return ok
}
