package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/localtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		hour    int
		minute  int
		want    attendance.SessionType
		wantErr bool
	}{
		{name: "before window", hour: 7, minute: 59, wantErr: true},
		{name: "window opens", hour: 8, minute: 0, want: attendance.SessionTypeNormal},
		{name: "early", hour: 8, minute: 50, want: attendance.SessionTypeNormal},
		{name: "late but inside window", hour: 9, minute: 15, want: attendance.SessionTypeNormal},
		{name: "window closes inclusive", hour: 11, minute: 0, want: attendance.SessionTypeNormal},
		{name: "just after window", hour: 11, minute: 1, wantErr: true},
		{name: "afternoon", hour: 13, minute: 0, wantErr: true},
		{name: "before overtime", hour: 20, minute: 59, wantErr: true},
		{name: "overtime opens", hour: 21, minute: 0, want: attendance.SessionTypeOvertime},
		{name: "last overtime minute", hour: 23, minute: 59, want: attendance.SessionTypeOvertime},
		{name: "after midnight", hour: 0, minute: 30, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt // per-iteration copy (Go 1.22 loopvar semantics)
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.hour*60 + tt.minute)
			if tt.wantErr {
				require.ErrorIs(t, err, attendance.ErrClockInNotAvailable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_ErrorNamesLocalTime(t *testing.T) {
	_, err := Classify(13 * 60)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "13:00")
}

func TestAssessLateness(t *testing.T) {
	tr := localtime.NewTranslator(localtime.DefaultOffsetHours)
	at := func(h, m int) time.Time {
		local, err := tr.At("2026-01-15", h, m)
		require.NoError(t, err)
		return local
	}

	t.Run("before nine is on time", func(t *testing.T) {
		l := AssessLateness(at(8, 50), attendance.SessionTypeNormal)
		assert.False(t, l.IsLate)
		assert.Zero(t, l.LateMinutes)
		assert.Equal(t, "Clock-in on time", l.StatusMessage)
		assert.Equal(t, "08:50", l.WorkStartsAt)
	})

	t.Run("exactly nine is on time", func(t *testing.T) {
		l := AssessLateness(at(9, 0), attendance.SessionTypeNormal)
		assert.False(t, l.IsLate)
	})

	t.Run("late clock-in reports minutes", func(t *testing.T) {
		l := AssessLateness(at(9, 15), attendance.SessionTypeNormal)
		assert.True(t, l.IsLate)
		assert.Equal(t, 15, l.LateMinutes)
		assert.Equal(t, "Late 15 minutes. Salary counted from 09:15", l.StatusMessage)
		assert.Equal(t, "09:15", l.WorkStartsAt)
	})

	t.Run("overtime is never late", func(t *testing.T) {
		l := AssessLateness(at(22, 0), attendance.SessionTypeOvertime)
		assert.False(t, l.IsLate)
		assert.Equal(t, "Overtime session started", l.StatusMessage)
		assert.Equal(t, "22:00", l.WorkStartsAt)
	})
}

func TestForcedCloseAt(t *testing.T) {
	tr := localtime.NewTranslator(localtime.DefaultOffsetHours)
	at := func(date string, h, m int) time.Time {
		local, err := tr.At(date, h, m)
		require.NoError(t, err)
		return tr.ToAbsolute(local)
	}

	normal := attendance.Session{Type: attendance.SessionTypeNormal, Date: "2026-01-15"}
	overtime := attendance.Session{Type: attendance.SessionTypeOvertime, Date: "2026-01-15"}

	tests := []struct {
		name    string
		session attendance.Session
		now     time.Time
		wantDue bool
		wantAt  time.Time
	}{
		{name: "normal before cutoff", session: normal, now: at("2026-01-15", 20, 59)},
		{name: "normal at cutoff", session: normal, now: at("2026-01-15", 21, 0), wantDue: true, wantAt: at("2026-01-15", 21, 0)},
		{name: "normal days later", session: normal, now: at("2026-01-18", 10, 0), wantDue: true, wantAt: at("2026-01-15", 21, 0)},
		{name: "overtime before midnight", session: overtime, now: at("2026-01-15", 23, 59)},
		{name: "overtime at midnight", session: overtime, now: at("2026-01-16", 0, 0), wantDue: true, wantAt: at("2026-01-16", 0, 0)},
		{name: "overtime inside grace", session: overtime, now: at("2026-01-16", 2, 59), wantDue: true, wantAt: at("2026-01-16", 0, 0)},
		{name: "overtime after grace", session: overtime, now: at("2026-01-16", 3, 0), wantDue: true, wantAt: at("2026-01-16", 3, 0)},
	}

	for _, tt := range tests {
		tt := tt // per-iteration copy (Go 1.22 loopvar semantics)
		t.Run(tt.name, func(t *testing.T) {
			got, due, err := forcedCloseAt(tr, tt.session, tt.now)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDue, due)
			if tt.wantDue {
				assert.True(t, tt.wantAt.Equal(got), "want %s, got %s", tt.wantAt, got)
			}
		})
	}
}
