package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/localtime"
)

// exportableLimit caps how many recent locked periods are offered for export.
const exportableLimit = 3

type PeriodServiceImpl struct {
	transactor database.Transactor
	periods    payroll.PeriodRepository
	sessions   attendance.SessionRepository
	sweeper    attendance.Sweeper
	translator *localtime.Translator
	clock      localtime.Clock
}

func NewPeriodService(
	transactor database.Transactor,
	periods payroll.PeriodRepository,
	sessions attendance.SessionRepository,
	sweeper attendance.Sweeper,
	translator *localtime.Translator,
	clock localtime.Clock,
) payroll.PeriodService {
	return &PeriodServiceImpl{
		transactor: transactor,
		periods:    periods,
		sessions:   sessions,
		sweeper:    sweeper,
		translator: translator,
		clock:      clock,
	}
}

// Create implements payroll.PeriodService.
func (s *PeriodServiceImpl) Create(ctx context.Context, req payroll.CreatePeriodRequest) (payroll.PeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PeriodResponse{}, err
	}

	start, end := req.StartDate, req.EndDate
	if !req.HasRange() {
		start, end = s.translator.MonthRange(s.clock.Now())
	}

	var created payroll.Period
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		overlap, err := s.periods.HasOpenOverlap(ctx, start, end)
		if err != nil {
			return fmt.Errorf("failed to check overlapping periods: %w", err)
		}
		if overlap {
			return payroll.ErrPeriodOverlap
		}

		created, err = s.periods.Create(ctx, payroll.Period{
			StartDate: start,
			EndDate:   end,
			Status:    payroll.PeriodStatusOpen,
			CreatedAt: s.clock.Now(),
		})
		return err
	})
	if err != nil {
		if errors.Is(err, payroll.ErrPeriodOverlap) {
			return payroll.PeriodResponse{}, err
		}
		return payroll.PeriodResponse{}, fmt.Errorf("failed to create payroll period: %w", err)
	}

	slog.Info("Payroll: period created",
		slog.String("period_id", created.ID),
		slog.String("start_date", created.StartDate),
		slog.String("end_date", created.EndDate),
	)

	return payroll.NewPeriodResponse(created), nil
}

// List implements payroll.PeriodService.
func (s *PeriodServiceImpl) List(ctx context.Context) ([]payroll.PeriodResponse, error) {
	periods, err := s.periods.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll periods: %w", err)
	}

	responses := make([]payroll.PeriodResponse, 0, len(periods))
	for _, p := range periods {
		responses = append(responses, payroll.NewPeriodResponse(p))
	}
	return responses, nil
}

// GetByID implements payroll.PeriodService.
func (s *PeriodServiceImpl) GetByID(ctx context.Context, id string) (payroll.PeriodResponse, error) {
	period, err := s.periods.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, payroll.ErrPeriodNotFound) {
			return payroll.PeriodResponse{}, err
		}
		return payroll.PeriodResponse{}, fmt.Errorf("failed to get payroll period: %w", err)
	}
	return payroll.NewPeriodResponse(period), nil
}

// Lock implements payroll.PeriodService.
//
// Expired sessions are swept first so that a session past its cutoff is paid
// before the period freezes. Sessions still open after the sweep are locked
// as they are.
func (s *PeriodServiceImpl) Lock(ctx context.Context, id string) (payroll.PeriodResponse, error) {
	period, err := s.periods.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, payroll.ErrPeriodNotFound) {
			return payroll.PeriodResponse{}, err
		}
		return payroll.PeriodResponse{}, fmt.Errorf("failed to get payroll period: %w", err)
	}
	if period.IsLocked() {
		return payroll.PeriodResponse{}, payroll.ErrPeriodAlreadyLocked
	}

	lockedAt := s.clock.Now()
	if _, err := s.sweeper.CloseExpired(ctx, "", lockedAt); err != nil {
		return payroll.PeriodResponse{}, fmt.Errorf("failed to close expired sessions: %w", err)
	}
	var lockedSessions int64

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		changed, err := s.periods.MarkLocked(ctx, id, lockedAt)
		if err != nil {
			return err
		}
		if !changed {
			return payroll.ErrPeriodAlreadyLocked
		}

		lockedSessions, err = s.sessions.LockRange(ctx, id, period.StartDate, period.EndDate)
		return err
	})
	if err != nil {
		if errors.Is(err, payroll.ErrPeriodAlreadyLocked) {
			return payroll.PeriodResponse{}, err
		}
		return payroll.PeriodResponse{}, fmt.Errorf("failed to lock payroll period: %w", err)
	}

	slog.Info("Payroll: period locked",
		slog.String("period_id", id),
		slog.Int64("sessions_locked", lockedSessions),
	)

	period.Status = payroll.PeriodStatusLocked
	period.LockedAt = &lockedAt
	return payroll.NewPeriodResponse(period), nil
}

// ListExportable implements payroll.PeriodService.
func (s *PeriodServiceImpl) ListExportable(ctx context.Context) ([]payroll.ExportablePeriodResponse, error) {
	periods, err := s.periods.ListLocked(ctx, exportableLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list locked periods: %w", err)
	}

	responses := make([]payroll.ExportablePeriodResponse, 0, len(periods))
	for _, p := range periods {
		responses = append(responses, payroll.ExportablePeriodResponse{
			ID:    p.ID,
			Label: p.Label(),
			Start: p.StartDate,
			End:   p.EndDate,
		})
	}
	return responses, nil
}

// Relock implements payroll.PeriodService.
func (s *PeriodServiceImpl) Relock(ctx context.Context) (int64, error) {
	periods, err := s.periods.ListLocked(ctx, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to list locked periods: %w", err)
	}

	var total int64
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, p := range periods {
			n, err := s.sessions.LockRange(ctx, p.ID, p.StartDate, p.EndDate)
			if err != nil {
				return fmt.Errorf("period %s: %w", p.ID, err)
			}
			total += n
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to relock attendance: %w", err)
	}

	slog.Info("Payroll: relocked attendance",
		slog.Int("periods", len(periods)),
		slog.Int64("sessions", total),
	)
	return total, nil
}
