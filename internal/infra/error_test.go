//go:build unit

package infra_test

import (
	"errors"
	"testing"

	"belizevibes-booking/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		kind []infra.RepositoryErrorKind
		want infra.RepositoryErrorKind
	}{
		{name: "plain error", err: errors.New("connection reset"), want: infra.KindDBFailure},
		{name: "no rows", err: pgx.ErrNoRows, want: infra.KindNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: infra.KindDuplicateKey},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, want: infra.KindForeignKeyViolated},
		{name: "check violation", err: &pgconn.PgError{Code: "23514", ConstraintName: "bookings_confirmed_requires_paid"}, want: infra.KindCheckViolated},
		{name: "explicit kind wins", err: errors.New("boom"), kind: []infra.RepositoryErrorKind{infra.KindNotFound}, want: infra.KindNotFound},
		{name: "nil error with kind", err: nil, kind: []infra.RepositoryErrorKind{infra.KindNotFound}, want: infra.KindNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := infra.WrapRepoErr("operation failed", tc.err, tc.kind...)

			assert.True(t, infra.IsKind(err, tc.want), "expected kind [%v] but got [%v]", tc.want, err)
			assert.Contains(t, err.Error(), "operation failed")
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
			}
		})
	}
}
