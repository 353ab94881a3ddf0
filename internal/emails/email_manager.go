package emails

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/joshua-takyi/coachbook/internal/models"
)

// Mailer sends one message. Kept as an interface so the workflow is testable
// without an SMTP server.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// Manager composes and sends the booking notification emails, localized per
// recipient.
type Manager struct {
	mailer Mailer
	logger *slog.Logger
}

func NewManager(mailer Mailer, logger *slog.Logger) *Manager {
	return &Manager{mailer: mailer, logger: logger}
}

// SendScheduledEmails notifies every attendee and the organizer that the
// booking is confirmed. Per-recipient failures are logged and do not stop
// the remaining sends.
func (em *Manager) SendScheduledEmails(ctx context.Context, evt *models.CalendarEvent) error {
	var firstErr error
	for _, attendee := range evt.Attendees {
		subject := attendee.Language.Translate("booking_scheduled")
		if err := em.mailer.Send(ctx, attendee.Email, subject, scheduledBody(evt, attendee.Language.Translate)); err != nil {
			em.logger.Error("Scheduled email failed", "to", attendee.Email, "uid", evt.UID, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	organizer := evt.Organizer
	subject := organizer.Language.Translate("booking_scheduled")
	if err := em.mailer.Send(ctx, organizer.Email, subject, scheduledBody(evt, organizer.Language.Translate)); err != nil {
		em.logger.Error("Scheduled email failed", "to", organizer.Email, "uid", evt.UID, "error", err)
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// SendDeclinedEmails notifies attendees that the booking was rejected.
func (em *Manager) SendDeclinedEmails(ctx context.Context, evt *models.CalendarEvent) error {
	var firstErr error
	for _, attendee := range evt.Attendees {
		subject := attendee.Language.Translate("booking_declined")
		if err := em.mailer.Send(ctx, attendee.Email, subject, declinedBody(evt, attendee.Language.Translate)); err != nil {
			em.logger.Error("Declined email failed", "to", attendee.Email, "uid", evt.UID, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func scheduledBody(evt *models.CalendarEvent, t models.TranslateFunc) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", t("booking_scheduled"), evt.Title)
	fmt.Fprintf(&b, "%s: %s - %s\n", t("when"), evt.StartTime, evt.EndTime)
	if evt.Location != "" {
		fmt.Fprintf(&b, "%s: %s\n", t("where"), evt.Location)
	}
	fmt.Fprintf(&b, "%s: %s <%s>\n", t("organizer"), evt.Organizer.Name, evt.Organizer.Email)
	if info := evt.AdditionInformation; info != nil && info.HangoutLink != "" {
		fmt.Fprintf(&b, "%s: %s\n", t("join_meeting"), info.HangoutLink)
	}
	return b.String()
}

func declinedBody(evt *models.CalendarEvent, t models.TranslateFunc) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", t("booking_declined"), evt.Title)
	fmt.Fprintf(&b, "%s: %s - %s\n", t("when"), evt.StartTime, evt.EndTime)
	if evt.RejectionReason != "" {
		fmt.Fprintf(&b, "%s: %s\n", t("reason"), evt.RejectionReason)
	}
	return b.String()
}
