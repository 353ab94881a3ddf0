package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	DatabaseURL string `envconfig:"DATABASE_URL"`

	// Session tokens are verified against the remote JWKS when AuthJWKSURL
	// is set, otherwise with the HMAC secret.
	AuthJWKSURL string `envconfig:"AUTH_JWKS_URL"`
	JWTSecret   string `envconfig:"JWT_SECRET"`

	// Fallback Twilio credential used when a user has no twilio_video
	// credential row of their own.
	TwilioAccountSID string `envconfig:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `envconfig:"TWILIO_AUTH_TOKEN"`

	OmiseSecretKey string `envconfig:"OMISE_SECRET_KEY"`
	OmisePublicKey string `envconfig:"OMISE_PUBLIC_KEY"`

	SMTPHost  string `envconfig:"SMTP_HOST"`
	SMTPPort  int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser  string `envconfig:"SMTP_USER"`
	SMTPPass  string `envconfig:"SMTP_PASS"`
	EmailFrom string `envconfig:"EMAIL_FROM" default:"no-reply@coachbook.app"`

	// Subscriber endpoints provisioned for new employers.
	WebhookAPIURL    string `envconfig:"WEBHOOK_API_URL"`
	EmployerPassword string `envconfig:"EMPLOYER_PASSWORD" default:"123456"`

	// Optional AMQP broker for booking lifecycle events.
	RabbitURL       string `envconfig:"RABBIT_URL"`
	BookingExchange string `envconfig:"BOOKING_EXCHANGE" default:"booking.exchange"`

	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	// Validate required fields
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.AuthJWKSURL == "" && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("one of AUTH_JWKS_URL or JWT_SECRET is required")
	}

	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
