package payment

import (
	"context"
	"errors"

	"belizevibes-booking/internal/domain/money"

	"github.com/google/uuid"
)

var ErrInvalidSignature = errors.New("invalid provider signature")

// Intent is the handle returned to the client to complete payment.
type Intent struct {
	BookingID                uuid.UUID
	SessionID                string
	ClientSecretOrSessionURL string
	Amount                   money.Money
	AmountMinor              int64
	Currency                 string
}

type SessionRequest struct {
	BookingID      uuid.UUID
	Reference      string
	Description    string
	AmountMinor    int64
	Currency       string
	CustomerEmail  string
	IdempotencyKey string
}

type Session struct {
	ID                string
	URL               string
	ClientSecret      string
	AmountMinor       int64
	Currency          string
	ClientReferenceID string
	PaymentStatus     string
}

func (s *Session) IsPaid() bool {
	return isPaid(s.PaymentStatus)
}

// Handle prefers the hosted page URL; embedded sessions only carry a client secret.
func (s *Session) Handle() string {
	if s.URL != "" {
		return s.URL
	}
	return s.ClientSecret
}

type EventType string

const (
	EventCheckoutCompleted          EventType = "checkout.session.completed"
	EventCheckoutAsyncSucceeded     EventType = "checkout.session.async_payment_succeeded"
	EventCheckoutExpired            EventType = "checkout.session.expired"
	EventCheckoutAsyncPaymentFailed EventType = "checkout.session.async_payment_failed"
)

// Event is a verified provider notification about a checkout session.
type Event struct {
	ID                string
	Type              EventType
	SessionID         string
	ClientReferenceID string
	PaymentStatus     string
}

func (e *Event) IsPaid() bool {
	return isPaid(e.PaymentStatus)
}

func isPaid(status string) bool {
	return status == "paid" || status == "no_payment_required"
}

type Provider interface {
	CreateSession(ctx context.Context, req SessionRequest) (*Session, error)
	// RetrieveSession reads the provider's current view of a session.
	RetrieveSession(ctx context.Context, sessionID string) (*Session, error)
	ParseEvent(payload []byte, signature string) (*Event, error)
}
