//go:build unit

package clock_test

import (
	"testing"
	"time"

	"belizevibes-booking/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
)

func TestToday(t *testing.T) {
	belize := time.FixedZone("America/Belize", -6*60*60)
	c := clock.NewMockClock(time.Date(2026, 3, 14, 23, 59, 30, 0, belize))

	today := clock.Today(c)

	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, belize), today)
}

func TestMockClock_Add(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := clock.NewMockClock(start)

	c.Add(36 * time.Hour)

	assert.Equal(t, start.Add(36*time.Hour), c.Now())
}

func TestRealClock_UsesLocation(t *testing.T) {
	belize := time.FixedZone("America/Belize", -6*60*60)
	c := clock.NewRealClock(belize)

	assert.Equal(t, belize, c.Now().Location())
	assert.Equal(t, time.UTC, clock.NewRealClock(nil).Now().Location())
}
