package shared

import (
	"context"
	"time"

	"belizevibes-booking/internal/domain/booking"
	sqlc "belizevibes-booking/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() sqlc.DBTX
}

type CommandReads interface {
	BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	BookingByPaymentSession(ctx context.Context, sessionID string) (*booking.Booking, error)
	IdempotencyByKey(ctx context.Context, key uuid.UUID) (*IdempotencyRecord, error)
}

// BookingRepository is the booking store gateway. Every method is a single statement.
type BookingRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, b *booking.Booking) (*booking.Booking, error)
	// MarkConfirmed only touches rows still pending; otherwise it reports KindNotFound.
	MarkConfirmed(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*booking.Booking, error)
	MarkPaymentFailed(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*booking.Booking, error)
	AttachPaymentSession(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, sessionID string) error
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, tx sqlc.DBTX, key uuid.UUID, userID *uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	UpdateStatusCompleted(ctx context.Context, tx sqlc.DBTX, key uuid.UUID, resultHash string, bookingID uuid.UUID) error
	ClaimExpired(ctx context.Context, tx sqlc.DBTX, key uuid.UUID, userID *uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	DeleteExpired(ctx context.Context, tx sqlc.DBTX) (int64, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx sqlc.DBTX, kind, topic string, payload []byte, runAt time.Time) error
	ClaimDue(ctx context.Context, tx sqlc.DBTX, now time.Time, limit int32) ([]NotificationJob, error)
	UpdateJobStatus(ctx context.Context, tx sqlc.DBTX, jobID uuid.UUID, status string, lastError *string, runAt time.Time) error
}
