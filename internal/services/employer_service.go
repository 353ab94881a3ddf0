package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/joshua-takyi/coachbook/internal/helpers"
	"github.com/joshua-takyi/coachbook/internal/models"
)

var ErrDuplicateEmployer = errors.New("employer_reg_duplicate")

const (
	defaultEventTypeTitle  = "Coaching"
	defaultEventTypeSlug   = "default-book"
	defaultEventTypeLength = 60
)

// EmployerService provisions employer accounts: a pre-verified user, a
// default event type and the subscriber webhooks of the partner system.
type EmployerService struct {
	users      models.UserRepo
	eventTypes models.EventTypeRepo
	webhooks   models.WebhookRepo
	// webhookAPIURL is the partner base URL that receives booking events;
	// empty disables webhook provisioning.
	webhookAPIURL    string
	employerPassword string
}

func NewEmployerService(users models.UserRepo, eventTypes models.EventTypeRepo, webhookRepo models.WebhookRepo, webhookAPIURL, employerPassword string) *EmployerService {
	return &EmployerService{
		users:            users,
		eventTypes:       eventTypes,
		webhooks:         webhookRepo,
		webhookAPIURL:    webhookAPIURL,
		employerPassword: employerPassword,
	}
}

type CreateEmployerInput struct {
	Email        string
	EmployerName string
}

// CreateEmployer provisions the account. Fails with ErrDuplicateEmployer if
// a user with the email already exists.
func (es *EmployerService) CreateEmployer(ctx context.Context, in CreateEmployerInput) (*models.User, error) {
	if _, err := es.users.GetUserByEmail(ctx, in.Email); err == nil {
		return nil, ErrDuplicateEmployer
	} else if !models.IsNotFound(err) {
		return nil, fmt.Errorf("lookup employer email: %w", err)
	}

	hashed, err := helpers.HashPassword(es.employerPassword)
	if err != nil {
		return nil, fmt.Errorf("hash employer password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		ID:                  uuid.New(),
		Username:            helpers.Slugify(in.EmployerName),
		Name:                in.EmployerName,
		Email:               in.Email,
		Password:            hashed,
		EmailVerified:       &now,
		Locale:              "en",
		Plan:                "PRO",
		CompletedOnboarding: true,
	}
	if err := es.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create employer user: %w", err)
	}

	eventType := &models.EventType{
		ID:                   uuid.New(),
		UserID:               user.ID,
		Title:                defaultEventTypeTitle,
		Slug:                 defaultEventTypeSlug,
		Length:               defaultEventTypeLength,
		DisableGuests:        true,
		RequiresConfirmation: true,
		Users:                []models.User{*user},
	}
	if err := es.eventTypes.CreateEventType(ctx, eventType); err != nil {
		return nil, fmt.Errorf("create default event type: %w", err)
	}

	if es.webhookAPIURL != "" {
		if err := es.webhooks.CreateWebhooks(ctx, es.subscriberWebhooks(user.ID)); err != nil {
			return nil, fmt.Errorf("provision webhooks: %w", err)
		}
	}

	return user, nil
}

// Credentials backs the partner auto-login flow: it hands out the email and
// the shared employer password for the given user.
func (es *EmployerService) Credentials(ctx context.Context, userID uuid.UUID) (email, password string, err error) {
	user, err := es.users.GetUser(ctx, userID)
	if err != nil {
		if models.IsNotFound(err) {
			return "", "", ErrUserNotFound
		}
		return "", "", fmt.Errorf("get employer: %w", err)
	}
	return user.Email, es.employerPassword, nil
}

func (es *EmployerService) subscriberWebhooks(userID uuid.UUID) []models.Webhook {
	endpoints := []struct {
		path    string
		trigger string
	}{
		{"/api/appointments/created", models.TriggerBookingCreated},
		{"/api/appointments/cancelled", models.TriggerBookingCancelled},
		{"/api/appointments/rescheduled", models.TriggerBookingRescheduled},
		{"/api/appointments/confirmed", models.TriggerBookingConfirmed},
		{"/api/appointments/rejected", models.TriggerBookingRejected},
		{"/api/appointments/rescheduled/customerConfirmed", models.TriggerRescheduledCustomerConfirmed},
		{"/api/appointments/rescheduled/coachConfirmed", models.TriggerRescheduledCoachConfirmed},
	}

	hooks := make([]models.Webhook, 0, len(endpoints))
	for _, e := range endpoints {
		hooks = append(hooks, models.Webhook{
			ID:            uuid.NewString(),
			UserID:        userID,
			SubscriberURL: es.webhookAPIURL + e.path,
			EventTriggers: e.trigger,
			Active:        true,
		})
	}
	return hooks
}
