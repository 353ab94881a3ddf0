package payments

import (
	"context"
	"fmt"

	"github.com/omise/omise-go"
	"github.com/omise/omise-go/operations"

	"github.com/joshua-takyi/coachbook/internal/models"
)

// Refunder returns a booking's payment. A rejection must not proceed when
// the refund fails.
type Refunder interface {
	Refund(ctx context.Context, booking *models.Booking) error
}

// NoopRefunder is used when no payment gateway is configured; bookings then
// carry no charges to return.
type NoopRefunder struct{}

func (NoopRefunder) Refund(ctx context.Context, booking *models.Booking) error {
	return nil
}

// OmiseRefunder refunds the charge referenced by the booking's payment
// reference.
type OmiseRefunder struct {
	client *omise.Client
}

func NewOmiseRefunder(publicKey, secretKey string) (*OmiseRefunder, error) {
	client, err := omise.NewClient(publicKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("omise client: %w", err)
	}
	return &OmiseRefunder{client: client}, nil
}

func (r *OmiseRefunder) Refund(ctx context.Context, booking *models.Booking) error {
	if booking.PaymentReference == "" {
		// Nothing was charged, nothing to return.
		return nil
	}

	refund := &omise.Refund{}
	err := r.client.Do(refund, &operations.CreateRefund{
		ChargeID: booking.PaymentReference,
	})
	if err != nil {
		return fmt.Errorf("refund charge %s: %w", booking.PaymentReference, err)
	}
	return nil
}
