package cmd

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/localtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClock(t *testing.T) {
	tr := localtime.NewTranslator(localtime.DefaultOffsetHours)

	t.Run("empty uses the wall clock", func(t *testing.T) {
		clock, err := newClock(tr, "")
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now(), clock.Now(), time.Minute)
	})

	t.Run("local wall time is pinned", func(t *testing.T) {
		clock, err := newClock(tr, "2026-01-16T10:00:00")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 1, 16, 3, 0, 0, 0, time.UTC), clock.Now())
		assert.Equal(t, "2026-01-16", tr.LocalDate(clock.Now()))
	})

	t.Run("explicit offset is honored", func(t *testing.T) {
		clock, err := newClock(tr, "2026-01-15T17:30:00Z")
		require.NoError(t, err)
		assert.Equal(t, "2026-01-16", tr.LocalDate(clock.Now()))
		assert.Equal(t, 30, tr.MinutesSinceMidnight(clock.Now()))
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := newClock(tr, "tomorrow")
		assert.ErrorContains(t, err, "invalid --at")
	})
}
