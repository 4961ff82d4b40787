package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/localtime"
)

type AttendanceServiceImpl struct {
	sessions   attendance.SessionRepository
	employees  employee.EmployeeRepository
	periods    payroll.PeriodRepository
	finalizer  attendance.Finalizer
	sweeper    attendance.Sweeper
	translator *localtime.Translator
	clock      localtime.Clock
}

func NewAttendanceService(
	sessions attendance.SessionRepository,
	employees employee.EmployeeRepository,
	periods payroll.PeriodRepository,
	finalizer attendance.Finalizer,
	sweeper attendance.Sweeper,
	translator *localtime.Translator,
	clock localtime.Clock,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		sessions:   sessions,
		employees:  employees,
		periods:    periods,
		finalizer:  finalizer,
		sweeper:    sweeper,
		translator: translator,
		clock:      clock,
	}
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.ClockInResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ClockInResponse{}, err
	}

	now := req.Now
	if now.IsZero() {
		now = a.clock.Now()
	}

	if _, err := a.sweeper.CloseExpired(ctx, req.EmployeeID, now); err != nil {
		return attendance.ClockInResponse{}, fmt.Errorf("failed to close expired sessions: %w", err)
	}

	if _, err := a.employees.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.ClockInResponse{}, err
		}
		return attendance.ClockInResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	nowLocal := a.translator.ToLocal(now)
	sessionType, err := Classify(a.translator.MinutesSinceMidnight(now))
	if err != nil {
		return attendance.ClockInResponse{}, err
	}
	dateLocal := nowLocal.Format(localtime.DateLayout)

	period, err := a.periods.FindOpenForDate(ctx, dateLocal)
	if err != nil {
		if errors.Is(err, payroll.ErrNoOpenPeriod) {
			return attendance.ClockInResponse{}, err
		}
		return attendance.ClockInResponse{}, fmt.Errorf("failed to find open payroll period: %w", err)
	}

	exists, err := a.sessions.ExistsForDate(ctx, req.EmployeeID, dateLocal, sessionType)
	if err != nil {
		return attendance.ClockInResponse{}, fmt.Errorf("failed to check existing attendance: %w", err)
	}

	switch sessionType {
	case attendance.SessionTypeNormal:
		if exists {
			return attendance.ClockInResponse{}, attendance.ErrNormalSessionExists
		}
	case attendance.SessionTypeOvertime:
		if exists {
			return attendance.ClockInResponse{}, attendance.ErrOvertimeSessionExists
		}
		normal := attendance.SessionTypeNormal
		// a normal session frozen by a period lock can never close, so it does not block
		open, err := a.sessions.GetOpenSession(ctx, req.EmployeeID, &normal)
		if err == nil && !open.Locked {
			return attendance.ClockInResponse{}, attendance.ErrNormalSessionStillOpen
		}
		if err != nil && !errors.Is(err, attendance.ErrNoOpenSession) {
			return attendance.ClockInResponse{}, fmt.Errorf("failed to check open normal session: %w", err)
		}
	}

	lateness := AssessLateness(nowLocal, sessionType)
	clockIn := a.translator.ToAbsolute(nowLocal)

	created, err := a.sessions.Create(ctx, attendance.Session{
		EmployeeID:         req.EmployeeID,
		Type:               sessionType,
		Date:               dateLocal,
		ClockIn:            clockIn,
		EffectiveWorkStart: &clockIn,
		IsLate:             lateness.IsLate,
		LateMinutes:        lateness.LateMinutes,
		PayrollPeriodID:    &period.ID,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrSessionAlreadyRecorded) {
			return attendance.ClockInResponse{}, err
		}
		return attendance.ClockInResponse{}, fmt.Errorf("failed to create attendance session: %w", err)
	}

	slog.Info("Attendance: clock-in accepted",
		slog.String("employee_id", created.EmployeeID),
		slog.String("session_type", string(created.Type)),
		slog.String("date", created.Date),
		slog.Int("late_minutes", created.LateMinutes),
	)

	return attendance.ClockInResponse{
		ID:            created.ID,
		EmployeeID:    created.EmployeeID,
		Date:          created.Date,
		SessionType:   created.Type,
		ClockIn:       created.ClockIn,
		IsLate:        lateness.IsLate,
		LateMinutes:   lateness.LateMinutes,
		StatusMessage: lateness.StatusMessage,
		WorkStartsAt:  lateness.WorkStartsAt,
	}, nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.ClockOutResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ClockOutResponse{}, err
	}

	now := req.Now
	if now.IsZero() {
		now = a.clock.Now()
	}

	if _, err := a.sweeper.CloseExpired(ctx, req.EmployeeID, now); err != nil {
		return attendance.ClockOutResponse{}, fmt.Errorf("failed to close expired sessions: %w", err)
	}

	open, err := a.sessions.GetOpenSession(ctx, req.EmployeeID, nil)
	if err != nil {
		if errors.Is(err, attendance.ErrNoOpenSession) {
			return attendance.ClockOutResponse{}, err
		}
		return attendance.ClockOutResponse{}, fmt.Errorf("failed to get open session: %w", err)
	}

	result, err := a.finalizer.Finalize(ctx, open, now)
	if err != nil {
		if errors.Is(err, attendance.ErrSessionAlreadyClosed) {
			return attendance.ClockOutResponse{}, fmt.Errorf("%w: session %s", attendance.ErrFinalizeFailed, open.ID)
		}
		return attendance.ClockOutResponse{}, err
	}

	closed := result.Session
	slog.Info("Attendance: clock-out recorded",
		slog.String("employee_id", closed.EmployeeID),
		slog.String("session_type", string(closed.Type)),
		slog.String("duration_minutes", closed.WorkDurationMinutes.String()),
	)

	return attendance.ClockOutResponse{
		ID:               closed.ID,
		EmployeeID:       closed.EmployeeID,
		Date:             closed.Date,
		SessionType:      closed.Type,
		ClockIn:          closed.ClockIn,
		ClockOut:         *closed.ClockOut,
		DurationMinutes:  *closed.WorkDurationMinutes,
		Salary:           *closed.SalaryEarned,
		Deduction:        *closed.DeductionAmount,
		MinuteRate:       result.MinuteRate,
		ToleranceApplied: result.ToleranceMsg,
	}, nil
}

// GetStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetStatus(ctx context.Context, employeeID string) (attendance.StatusResponse, error) {
	now := a.clock.Now()
	if _, err := a.sweeper.CloseExpired(ctx, employeeID, now); err != nil {
		return attendance.StatusResponse{}, fmt.Errorf("failed to close expired sessions: %w", err)
	}

	if _, err := a.employees.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.StatusResponse{}, err
		}
		return attendance.StatusResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	status := attendance.StatusResponse{
		EmployeeID: employeeID,
		Date:       a.translator.LocalDate(now),
	}

	open, err := a.sessions.GetOpenSession(ctx, employeeID, nil)
	if err != nil {
		if errors.Is(err, attendance.ErrNoOpenSession) {
			return status, nil
		}
		return attendance.StatusResponse{}, fmt.Errorf("failed to get open session: %w", err)
	}

	status.ClockedIn = true
	status.SessionID = &open.ID
	status.SessionType = &open.Type
	status.ClockIn = &open.ClockIn
	return status, nil
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.SessionResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	if _, err := a.sweeper.CloseExpired(ctx, filter.EmployeeID, a.clock.Now()); err != nil {
		return nil, fmt.Errorf("failed to close expired sessions: %w", err)
	}

	if filter.EmployeeID != "" {
		if _, err := a.employees.GetByID(ctx, filter.EmployeeID); err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to get employee: %w", err)
		}
	}

	sessions, err := a.sessions.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		responses = append(responses, attendance.NewSessionResponse(s))
	}
	return responses, nil
}
