package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/joshua-takyi/coachbook/internal/helpers"
	"github.com/joshua-takyi/coachbook/internal/models"
)

func newEmployerService(webhookAPIURL string) (*EmployerService, *fakeUserRepo, *fakeEventTypeRepo, *fakeWebhookRepo) {
	users := &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
	eventTypes := &fakeEventTypeRepo{eventTypes: make(map[uuid.UUID]*models.EventType)}
	hooks := &fakeWebhookRepo{}
	svc := NewEmployerService(users, eventTypes, hooks, webhookAPIURL, "shared-secret")
	return svc, users, eventTypes, hooks
}

func TestCreateEmployerProvisionsAccount(t *testing.T) {
	svc, users, eventTypes, hooks := newEmployerService("https://partner.example")

	user, err := svc.CreateEmployer(context.Background(), CreateEmployerInput{
		Email:        "owner@example.com",
		EmployerName: "Acme Sports GmbH",
	})
	if err != nil {
		t.Fatalf("CreateEmployer returned error: %v", err)
	}

	if user.Username != "acme-sports-gmbh" {
		t.Errorf("username = %q, want slugified name", user.Username)
	}
	if user.EmailVerified == nil {
		t.Error("employer must be created pre-verified")
	}
	if user.Plan != "PRO" || !user.CompletedOnboarding {
		t.Errorf("plan = %q, onboarding = %v", user.Plan, user.CompletedOnboarding)
	}
	if !helpers.CheckPassword(user.Password, "shared-secret") {
		t.Error("stored password does not verify against the shared employer password")
	}
	if _, ok := users.users[user.ID]; !ok {
		t.Error("user not persisted")
	}

	if len(eventTypes.eventTypes) != 1 {
		t.Fatalf("event types created = %d, want 1", len(eventTypes.eventTypes))
	}
	for _, et := range eventTypes.eventTypes {
		if et.Title != "Coaching" || et.Slug != "default-book" || et.Length != 60 {
			t.Errorf("default event type = %+v", et)
		}
		if !et.RequiresConfirmation {
			t.Error("default event type must require confirmation")
		}
		if len(et.Users) != 1 || et.Users[0].ID != user.ID {
			t.Errorf("event type not assigned to employer: %+v", et.Users)
		}
	}

	if len(hooks.hooks) != 7 {
		t.Fatalf("webhooks provisioned = %d, want 7", len(hooks.hooks))
	}
	for _, h := range hooks.hooks {
		if h.UserID != user.ID || !h.Active {
			t.Errorf("webhook misprovisioned: %+v", h)
		}
	}
	if hooks.hooks[0].SubscriberURL != "https://partner.example/api/appointments/created" {
		t.Errorf("subscriber url = %q", hooks.hooks[0].SubscriberURL)
	}
}

func TestCreateEmployerWithoutWebhookURL(t *testing.T) {
	svc, _, _, hooks := newEmployerService("")

	if _, err := svc.CreateEmployer(context.Background(), CreateEmployerInput{
		Email:        "owner@example.com",
		EmployerName: "Acme",
	}); err != nil {
		t.Fatalf("CreateEmployer returned error: %v", err)
	}
	if len(hooks.hooks) != 0 {
		t.Errorf("webhooks provisioned without a partner URL: %d", len(hooks.hooks))
	}
}

func TestCreateEmployerDuplicate(t *testing.T) {
	svc, users, _, _ := newEmployerService("")
	existing := &models.User{ID: uuid.New(), Email: "owner@example.com"}
	users.users[existing.ID] = existing

	_, err := svc.CreateEmployer(context.Background(), CreateEmployerInput{
		Email:        "owner@example.com",
		EmployerName: "Acme",
	})
	if !errors.Is(err, ErrDuplicateEmployer) {
		t.Fatalf("error = %v, want ErrDuplicateEmployer", err)
	}
}

func TestEmployerCredentials(t *testing.T) {
	svc, users, _, _ := newEmployerService("")
	employer := &models.User{ID: uuid.New(), Email: "owner@example.com"}
	users.users[employer.ID] = employer

	email, password, err := svc.Credentials(context.Background(), employer.ID)
	if err != nil {
		t.Fatalf("Credentials returned error: %v", err)
	}
	if email != "owner@example.com" || password != "shared-secret" {
		t.Errorf("credentials = %q/%q", email, password)
	}

	if _, _, err := svc.Credentials(context.Background(), uuid.New()); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown user error = %v, want ErrUserNotFound", err)
	}
}
