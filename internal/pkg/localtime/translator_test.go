package localtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslator_ToLocal_ShiftsWallClock(t *testing.T) {
	tr := NewTranslator(DefaultOffsetHours)

	abs := time.Date(2026, 1, 15, 2, 30, 0, 0, time.UTC)
	local := tr.ToLocal(abs)

	assert.Equal(t, 9, local.Hour())
	assert.Equal(t, 30, local.Minute())
	assert.True(t, abs.Equal(local))
	assert.Equal(t, abs, tr.ToAbsolute(local))
}

func TestTranslator_LocalDate_CrossesMidnight(t *testing.T) {
	tr := NewTranslator(DefaultOffsetHours)

	// 18:30 UTC is 01:30 the next local day
	abs := time.Date(2026, 1, 15, 18, 30, 0, 0, time.UTC)

	assert.Equal(t, "2026-01-16", tr.LocalDate(abs))
	assert.Equal(t, 90, tr.MinutesSinceMidnight(abs))
}

func TestTranslator_ParseInstant(t *testing.T) {
	tr := NewTranslator(DefaultOffsetHours)

	withOffset, err := tr.ParseInstant("2026-01-15T02:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 9, withOffset.Hour())

	withoutOffset, err := tr.ParseInstant("2026-01-15T09:00:00")
	require.NoError(t, err)
	assert.True(t, withOffset.Equal(withoutOffset))

	_, err = tr.ParseInstant("yesterday")
	assert.Error(t, err)
}

func TestTranslator_At(t *testing.T) {
	tr := NewTranslator(DefaultOffsetHours)

	at, err := tr.At("2026-01-15", 21, 0)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 15, 14, 0, 0, 0, time.UTC), tr.ToAbsolute(at))

	_, err = tr.At("2026-13-01", 0, 0)
	assert.Error(t, err)
}

func TestTranslator_MonthRange(t *testing.T) {
	tr := NewTranslator(DefaultOffsetHours)

	// 2026-01-31 20:00 UTC is already February locally
	start, end := tr.MonthRange(time.Date(2026, 1, 31, 20, 0, 0, 0, time.UTC))

	assert.Equal(t, "2026-02-01", start)
	assert.Equal(t, "2026-02-28", end)
}
