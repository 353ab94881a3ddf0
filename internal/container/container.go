package container

import (
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/joshua-takyi/coachbook/internal/config"
	"github.com/joshua-takyi/coachbook/internal/emails"
	"github.com/joshua-takyi/coachbook/internal/events"
	"github.com/joshua-takyi/coachbook/internal/helpers"
	"github.com/joshua-takyi/coachbook/internal/integrations"
	"github.com/joshua-takyi/coachbook/internal/models"
	"github.com/joshua-takyi/coachbook/internal/mq"
	"github.com/joshua-takyi/coachbook/internal/payments"
	"github.com/joshua-takyi/coachbook/internal/services"
	"github.com/joshua-takyi/coachbook/internal/webhooks"
)

// Container holds all application dependencies
type Container struct {
	Logger         *slog.Logger
	DB             *gorm.DB
	TokenValidator *helpers.TokenValidator
	Publisher      *mq.Publisher

	BookingService  *services.BookingService
	UserService     *services.UserService
	EmployerService *services.EmployerService
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, logger *slog.Logger, db *gorm.DB, publisher *mq.Publisher) (*Container, error) {
	repo := models.NewGormRepo(db)
	if err := repo.Migrate(); err != nil {
		return nil, err
	}

	registry := integrations.NewRegistry()
	registry.Register(models.CredentialTwilioVideo, integrations.TwilioBuilder)

	fallback := fallbackCredential(cfg)
	manager := events.NewEventManager(registry, repo, fallback, logger)

	mailer := emails.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.EmailFrom)
	emailManager := emails.NewManager(mailer, logger)

	var refunder payments.Refunder = payments.NoopRefunder{}
	if cfg.OmiseSecretKey != "" {
		omiseRefunder, err := payments.NewOmiseRefunder(cfg.OmisePublicKey, cfg.OmiseSecretKey)
		if err != nil {
			return nil, err
		}
		refunder = omiseRefunder
	}

	dispatcher := webhooks.NewDispatcher(logger)

	bookingService := services.NewBookingService(
		repo, repo, repo, repo,
		manager, emailManager, refunder, dispatcher, publisher, logger,
	)
	userService := services.NewUserService(repo)
	employerService := services.NewEmployerService(repo, repo, repo, cfg.WebhookAPIURL, cfg.EmployerPassword)

	return &Container{
		Logger:          logger,
		DB:              db,
		TokenValidator:  helpers.NewTokenValidator(cfg.AuthJWKSURL, cfg.JWTSecret),
		Publisher:       publisher,
		BookingService:  bookingService,
		UserService:     userService,
		EmployerService: employerService,
	}, nil
}

// fallbackCredential wraps the process-level Twilio keys into a credential
// the registry can build an adapter from. Nil when not configured.
func fallbackCredential(cfg *config.Config) *models.Credential {
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" {
		return nil
	}
	key, _ := json.Marshal(integrations.TwilioConfig{
		AccountSID: cfg.TwilioAccountSID,
		AuthToken:  cfg.TwilioAuthToken,
	})
	return &models.Credential{
		ID:   uuid.New(),
		Type: models.CredentialTwilioVideo,
		Key:  key,
	}
}
