//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"belizevibes-booking/internal/domain/adventure"
	"belizevibes-booking/internal/infra/repository"
	sqlc "belizevibes-booking/internal/infra/sqlc/generated"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// BookingState is what the e2e tests read back straight from the table.
type BookingState struct {
	Status           string
	PaymentStatus    string
	TotalCents       int64
	PaymentSessionID *string
}

func LoadBookingState(t *testing.T, db DBLike, id uuid.UUID) BookingState {
	t.Helper()

	var s BookingState
	err := db.QueryRow(context.Background(),
		"SELECT status, payment_status, total_amount_cents, payment_session_id FROM bookings WHERE id = $1", id).
		Scan(&s.Status, &s.PaymentStatus, &s.TotalCents, &s.PaymentSessionID)
	require.NoError(t, err)
	return s
}

func CountRows(t *testing.T, db DBLike, table string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM "+table).Scan(&n)
	require.NoError(t, err)
	return n
}

// SetAdventurePrice upserts a live catalog row so a test can make the live
// price disagree with the built-in catalog.
func SetAdventurePrice(t *testing.T, db DBLike, id string, cents int64, active bool) {
	t.Helper()

	_, err := db.Exec(context.Background(), `
		INSERT INTO adventures (id, title, price_cents, currency, active)
		VALUES ($1, $1, $2, 'USD', $3)
		ON CONFLICT (id) DO UPDATE SET price_cents = EXCLUDED.price_cents, active = EXCLUDED.active`,
		id, cents, active)
	require.NoError(t, err)
}

// SeedReferenceData loads the built-in adventure catalog into the live table.
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	repo := repository.NewAdventureRepository(sqlc.New(), pool)
	if _, err := repo.SeedFromCatalog(ctx, adventure.StaticCatalog, "USD"); err != nil {
		return err
	}
	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
