package attendance

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/localtime"
)

// Clock-in windows, in local minutes since midnight.
const (
	normalWindowStart   = 8 * 60
	normalWindowEnd     = 11 * 60 // inclusive
	workStartMinute     = 9 * 60
	overtimeWindowStart = 21 * 60
	minutesPerDay       = 24 * 60
)

// Forced closure cutoffs.
const (
	normalCutoffHour = 21
	overtimeGrace    = 3 * time.Hour
)

// Classify maps a local time of day onto the session type a clock-in would open.
func Classify(minuteOfDay int) (attendance.SessionType, error) {
	switch {
	case minuteOfDay >= normalWindowStart && minuteOfDay <= normalWindowEnd:
		return attendance.SessionTypeNormal, nil
	case minuteOfDay >= overtimeWindowStart && minuteOfDay < minutesPerDay:
		return attendance.SessionTypeOvertime, nil
	default:
		return "", fmt.Errorf("%w: %02d:%02d", attendance.ErrClockInNotAvailable, minuteOfDay/60, minuteOfDay%60)
	}
}

// Lateness is informational only. Pay always starts at the actual clock-in.
type Lateness struct {
	IsLate        bool
	LateMinutes   int
	StatusMessage string
	WorkStartsAt  string
}

// AssessLateness measures a clock-in against the 09:00 work start.
func AssessLateness(localClockIn time.Time, sessionType attendance.SessionType) Lateness {
	startsAt := localClockIn.Format(localtime.ClockLayout)

	if sessionType == attendance.SessionTypeOvertime {
		return Lateness{StatusMessage: "Overtime session started", WorkStartsAt: startsAt}
	}

	minuteOfDay := localClockIn.Hour()*60 + localClockIn.Minute()
	if minuteOfDay <= workStartMinute {
		return Lateness{StatusMessage: "Clock-in on time", WorkStartsAt: startsAt}
	}

	late := minuteOfDay - workStartMinute
	return Lateness{
		IsLate:        true,
		LateMinutes:   late,
		StatusMessage: fmt.Sprintf("Late %d minutes. Salary counted from %s", late, startsAt),
		WorkStartsAt:  startsAt,
	}
}

// forcedCloseAt returns the instant an open session must be closed at, and
// whether now has reached it.
//
// Normal sessions close at 21:00 on their date. Overtime sessions close at the
// following midnight once it has passed, or at 03:00 once that has passed.
func forcedCloseAt(tr *localtime.Translator, session attendance.Session, now time.Time) (time.Time, bool, error) {
	switch session.Type {
	case attendance.SessionTypeNormal:
		cutoff, err := tr.At(session.Date, normalCutoffHour, 0)
		if err != nil {
			return time.Time{}, false, err
		}
		if !now.Before(cutoff) {
			return cutoff, true, nil
		}
	case attendance.SessionTypeOvertime:
		midnight, err := tr.Midnight(session.Date)
		if err != nil {
			return time.Time{}, false, err
		}
		salaryCap := midnight.Add(24 * time.Hour)
		forced := salaryCap.Add(overtimeGrace)
		if !now.Before(forced) {
			return forced, true, nil
		}
		if !now.Before(salaryCap) {
			return salaryCap, true, nil
		}
	}
	return time.Time{}, false, nil
}
