package shared

import (
	"time"

	"github.com/google/uuid"
)

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key             uuid.UUID
	UserID          *uuid.UUID
	Endpoint        string
	Status          string
	RequestHash     string
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time
}

const (
	JobStatusQueued = "queued"
	JobStatusSent   = "sent"
	JobStatusFailed = "failed"
)

// Notification topics published by the outbox relay.
const (
	TopicBookingCreated       = "booking_created"
	TopicBookingConfirmed     = "booking_confirmed"
	TopicBookingPaymentFailed = "booking_payment_failed"
)

type NotificationJob struct {
	ID        uuid.UUID
	Kind      string
	Topic     string
	Payload   []byte
	RunAt     time.Time
	Attempts  int32
	Status    string
	LastError *string
}

// BookingEvent is the payload of every booking notification job.
type BookingEvent struct {
	BookingID     uuid.UUID `json:"booking_id"`
	Reference     string    `json:"reference"`
	AdventureID   string    `json:"adventure_id"`
	Email         string    `json:"email"`
	BookingDate   string    `json:"booking_date"`
	TotalCents    int64     `json:"total_cents"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	OccurredAt    time.Time `json:"occurred_at"`
}
