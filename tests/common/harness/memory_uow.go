//go:build unit || e2e

package harness

import (
	"context"
	"sort"
	"sync"
	"time"

	"belizevibes-booking/internal/domain/booking"
	"belizevibes-booking/internal/infra"
	sqlc "belizevibes-booking/internal/infra/sqlc/generated"
	"belizevibes-booking/internal/pkg/clock"
	"belizevibes-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// Operation names accepted by FailOn.
const (
	OpCreateBooking         = "Bookings.Create"
	OpMarkConfirmed         = "Bookings.MarkConfirmed"
	OpMarkPaymentFailed     = "Bookings.MarkPaymentFailed"
	OpAttachPaymentSession  = "Bookings.AttachPaymentSession"
	OpTryInsertKey          = "Idempotency.TryInsert"
	OpUpdateKeyCompleted    = "Idempotency.UpdateStatusCompleted"
	OpCreateJob             = "Notifications.CreateJob"
	OpClaimDueJobs          = "Notifications.ClaimDue"
	OpBookingByID           = "Reads.BookingByID"
	OpBookingByPaymentSessn = "Reads.BookingByPaymentSession"
)

// MemoryUoW is an in-memory shared.UnitOfWork. Each Within call works on a
// copy of the state that replaces the original only when fn succeeds, and
// calls are serialized, so conditional updates behave as in Postgres.
type MemoryUoW struct {
	mu       sync.Mutex
	state    *memState
	clock    clock.Clock
	failures map[string]error
	calls    map[string]int
}

type memState struct {
	bookings map[uuid.UUID]booking.Snapshot
	keys     map[uuid.UUID]shared.IdempotencyRecord
	jobs     []shared.NotificationJob
}

func (s *memState) clone() *memState {
	c := &memState{
		bookings: make(map[uuid.UUID]booking.Snapshot, len(s.bookings)),
		keys:     make(map[uuid.UUID]shared.IdempotencyRecord, len(s.keys)),
		jobs:     make([]shared.NotificationJob, len(s.jobs)),
	}
	for k, v := range s.bookings {
		c.bookings[k] = v
	}
	for k, v := range s.keys {
		c.keys[k] = v
	}
	copy(c.jobs, s.jobs)
	return c
}

func NewMemoryUoW(clk clock.Clock) *MemoryUoW {
	return &MemoryUoW{
		state: &memState{
			bookings: map[uuid.UUID]booking.Snapshot{},
			keys:     map[uuid.UUID]shared.IdempotencyRecord{},
		},
		clock:    clk,
		failures: map[string]error{},
		calls:    map[string]int{},
	}
}

// FailOn makes every later call of op return err until cleared with a nil err.
func (u *MemoryUoW) FailOn(op string, err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if err == nil {
		delete(u.failures, op)
		return
	}
	u.failures[op] = err
}

// Calls reports how often op ran, including failed calls.
func (u *MemoryUoW) Calls(op string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.calls[op]
}

// Seed stores b as if it had been committed earlier.
func (u *MemoryUoW) Seed(b *booking.Booking) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.state.bookings[b.ID()] = b.Snapshot()
}

func (u *MemoryUoW) SeedKey(rec shared.IdempotencyRecord) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.state.keys[rec.Key] = rec
}

func (u *MemoryUoW) Booking(id uuid.UUID) (booking.Snapshot, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	s, ok := u.state.bookings[id]
	return s, ok
}

func (u *MemoryUoW) BookingCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.state.bookings)
}

func (u *MemoryUoW) Key(key uuid.UUID) (shared.IdempotencyRecord, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	rec, ok := u.state.keys[key]
	return rec, ok
}

// Jobs returns committed notification jobs in insertion order.
func (u *MemoryUoW) Jobs() []shared.NotificationJob {
	u.mu.Lock()
	defer u.mu.Unlock()
	jobs := make([]shared.NotificationJob, len(u.state.jobs))
	copy(jobs, u.state.jobs)
	return jobs
}

func (u *MemoryUoW) JobTopics() []string {
	jobs := u.Jobs()
	topics := make([]string, len(jobs))
	for i, j := range jobs {
		topics[i] = j.Topic
	}
	return topics
}

func (u *MemoryUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &memTx{uow: u, state: u.state.clone()}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	u.state = tx.state
	return nil
}

func (u *MemoryUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *MemoryUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	return fn(ctx, nil)
}

// CommandReads reads committed state.
func (u *MemoryUoW) CommandReads() shared.CommandReads {
	return &memReads{uow: u, locking: true}
}

// hit records a call of op and returns its injected failure. Callers hold mu.
func (u *MemoryUoW) hit(op string) error {
	u.calls[op]++
	return u.failures[op]
}

type memTx struct {
	uow   *MemoryUoW
	state *memState
}

func (t *memTx) Bookings() shared.BookingRepository           { return &memBookings{tx: t} }
func (t *memTx) Idempotency() shared.IdempotencyRepository    { return &memKeys{tx: t} }
func (t *memTx) Notifications() shared.NotificationRepository { return &memJobs{tx: t} }
func (t *memTx) Reads() shared.CommandReads                   { return &memReads{uow: t.uow, state: t.state} }
func (t *memTx) DB() sqlc.DBTX                                { return nil }

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

type memBookings struct {
	tx *memTx
}

func (r *memBookings) Create(_ context.Context, _ sqlc.DBTX, b *booking.Booking) (*booking.Booking, error) {
	if err := r.tx.uow.hit(OpCreateBooking); err != nil {
		return nil, err
	}
	if _, ok := r.tx.state.bookings[b.ID()]; ok {
		return nil, infra.WrapRepoErr("failed to create booking", nil, infra.KindDuplicateKey)
	}
	s := b.Snapshot()
	now := r.tx.uow.clock.Now()
	s.CreatedAt, s.UpdatedAt = now, now
	r.tx.state.bookings[s.ID] = s
	return booking.Reconstruct(s), nil
}

func (r *memBookings) MarkConfirmed(_ context.Context, _ sqlc.DBTX, id uuid.UUID) (*booking.Booking, error) {
	if err := r.tx.uow.hit(OpMarkConfirmed); err != nil {
		return nil, err
	}
	s, ok := r.tx.state.bookings[id]
	if !ok || s.Status != booking.StatusPending {
		return nil, notFound("failed to mark booking confirmed")
	}
	s.Status = booking.StatusConfirmed
	s.PaymentStatus = booking.PaymentPaid
	s.UpdatedAt = r.tx.uow.clock.Now()
	r.tx.state.bookings[id] = s
	return booking.Reconstruct(s), nil
}

func (r *memBookings) MarkPaymentFailed(_ context.Context, _ sqlc.DBTX, id uuid.UUID) (*booking.Booking, error) {
	if err := r.tx.uow.hit(OpMarkPaymentFailed); err != nil {
		return nil, err
	}
	s, ok := r.tx.state.bookings[id]
	if !ok || s.Status != booking.StatusPending || s.PaymentStatus == booking.PaymentPaid {
		return nil, notFound("failed to mark booking payment failed")
	}
	s.PaymentStatus = booking.PaymentFailed
	s.UpdatedAt = r.tx.uow.clock.Now()
	r.tx.state.bookings[id] = s
	return booking.Reconstruct(s), nil
}

func (r *memBookings) AttachPaymentSession(_ context.Context, _ sqlc.DBTX, id uuid.UUID, sessionID string) error {
	if err := r.tx.uow.hit(OpAttachPaymentSession); err != nil {
		return err
	}
	s, ok := r.tx.state.bookings[id]
	if !ok || s.Status != booking.StatusPending {
		return notFound("booking is not pending")
	}
	s.PaymentSessionID = sessionID
	s.UpdatedAt = r.tx.uow.clock.Now()
	r.tx.state.bookings[id] = s
	return nil
}

type memKeys struct {
	tx *memTx
}

func (r *memKeys) TryInsert(_ context.Context, _ sqlc.DBTX, key uuid.UUID, userID *uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	if err := r.tx.uow.hit(OpTryInsertKey); err != nil {
		return false, err
	}
	if _, ok := r.tx.state.keys[key]; ok {
		return false, nil
	}
	r.tx.state.keys[key] = shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Endpoint:    endpoint,
		Status:      shared.IdempotencyStatusProcessing,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (r *memKeys) UpdateStatusCompleted(_ context.Context, _ sqlc.DBTX, key uuid.UUID, _ string, bookingID uuid.UUID) error {
	if err := r.tx.uow.hit(OpUpdateKeyCompleted); err != nil {
		return err
	}
	rec, ok := r.tx.state.keys[key]
	if !ok {
		return nil
	}
	rec.Status = shared.IdempotencyStatusCompleted
	rec.ResultBookingID = &bookingID
	r.tx.state.keys[key] = rec
	return nil
}

func (r *memKeys) ClaimExpired(_ context.Context, _ sqlc.DBTX, key uuid.UUID, userID *uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	rec, ok := r.tx.state.keys[key]
	if !ok || !rec.ExpiresAt.Before(r.tx.uow.clock.Now()) {
		return false, nil
	}
	r.tx.state.keys[key] = shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Endpoint:    endpoint,
		Status:      shared.IdempotencyStatusProcessing,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (r *memKeys) DeleteExpired(_ context.Context, _ sqlc.DBTX) (int64, error) {
	now := r.tx.uow.clock.Now()
	var n int64
	for k, rec := range r.tx.state.keys {
		if rec.ExpiresAt.Before(now) {
			delete(r.tx.state.keys, k)
			n++
		}
	}
	return n, nil
}

type memJobs struct {
	tx *memTx
}

func (r *memJobs) CreateJob(_ context.Context, _ sqlc.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	if err := r.tx.uow.hit(OpCreateJob); err != nil {
		return err
	}
	r.tx.state.jobs = append(r.tx.state.jobs, shared.NotificationJob{
		ID:      uuid.New(),
		Kind:    kind,
		Topic:   topic,
		Payload: payload,
		RunAt:   runAt,
		Status:  shared.JobStatusQueued,
	})
	return nil
}

func (r *memJobs) ClaimDue(_ context.Context, _ sqlc.DBTX, now time.Time, limit int32) ([]shared.NotificationJob, error) {
	if err := r.tx.uow.hit(OpClaimDueJobs); err != nil {
		return nil, err
	}
	var due []shared.NotificationJob
	for _, j := range r.tx.state.jobs {
		if j.Status == shared.JobStatusQueued && !j.RunAt.After(now) {
			due = append(due, j)
		}
	}
	sort.SliceStable(due, func(a, b int) bool { return due[a].RunAt.Before(due[b].RunAt) })
	if int32(len(due)) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (r *memJobs) UpdateJobStatus(_ context.Context, _ sqlc.DBTX, jobID uuid.UUID, status string, lastError *string, runAt time.Time) error {
	for i, j := range r.tx.state.jobs {
		if j.ID != jobID {
			continue
		}
		j.Status = status
		j.LastError = lastError
		j.RunAt = runAt
		j.Attempts++
		r.tx.state.jobs[i] = j
		return nil
	}
	return nil
}

// memReads reads either a transaction's working copy or, with locking set,
// the committed state.
type memReads struct {
	uow     *MemoryUoW
	state   *memState
	locking bool
}

func (r *memReads) view(fn func(s *memState)) {
	if r.locking {
		r.uow.mu.Lock()
		defer r.uow.mu.Unlock()
		fn(r.uow.state)
		return
	}
	fn(r.state)
}

func (r *memReads) BookingByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	var (
		out *booking.Booking
		err error
	)
	r.view(func(s *memState) {
		if err = r.uow.hit(OpBookingByID); err != nil {
			return
		}
		snap, ok := s.bookings[id]
		if !ok {
			err = notFound("failed to get booking by id")
			return
		}
		out = booking.Reconstruct(snap)
	})
	return out, err
}

func (r *memReads) BookingByPaymentSession(_ context.Context, sessionID string) (*booking.Booking, error) {
	var (
		out *booking.Booking
		err error
	)
	r.view(func(s *memState) {
		if err = r.uow.hit(OpBookingByPaymentSessn); err != nil {
			return
		}
		for _, snap := range s.bookings {
			if sessionID != "" && snap.PaymentSessionID == sessionID {
				out = booking.Reconstruct(snap)
				return
			}
		}
		err = notFound("failed to get booking by payment session")
	})
	return out, err
}

func (r *memReads) IdempotencyByKey(_ context.Context, key uuid.UUID) (*shared.IdempotencyRecord, error) {
	var (
		out *shared.IdempotencyRecord
		err error
	)
	r.view(func(s *memState) {
		rec, ok := s.keys[key]
		if !ok {
			err = notFound("failed to get idempotency key")
			return
		}
		out = &rec
	})
	return out, err
}
