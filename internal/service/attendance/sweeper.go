package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/localtime"
	"golang.org/x/sync/errgroup"
)

const sweepConcurrency = 4

type SweeperImpl struct {
	sessions   attendance.SessionRepository
	finalizer  attendance.Finalizer
	translator *localtime.Translator
}

func NewSweeper(
	sessions attendance.SessionRepository,
	finalizer attendance.Finalizer,
	translator *localtime.Translator,
) attendance.Sweeper {
	return &SweeperImpl{
		sessions:   sessions,
		finalizer:  finalizer,
		translator: translator,
	}
}

type expiredSession struct {
	session attendance.Session
	cutoff  time.Time
}

// CloseExpired implements attendance.Sweeper.
func (s *SweeperImpl) CloseExpired(ctx context.Context, employeeID string, now time.Time) (int, error) {
	open, err := s.sessions.ListOpen(ctx, employeeID)
	if err != nil {
		return 0, fmt.Errorf("failed to list open sessions: %w", err)
	}

	expired := make([]expiredSession, 0, len(open))
	for _, session := range open {
		cutoff, due, err := forcedCloseAt(s.translator, session, now)
		if err != nil {
			return 0, fmt.Errorf("failed to compute cutoff for session %s: %w", session.ID, err)
		}
		if due {
			expired = append(expired, expiredSession{session: session, cutoff: cutoff})
		}
	}
	if len(expired) == 0 {
		return 0, nil
	}

	var closed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sweepConcurrency)

	for _, e := range expired {
		e := e // per-iteration copy (Go 1.22 loopvar semantics)
		g.Go(func() error {
			_, err := s.finalizer.Finalize(gctx, e.session, e.cutoff)
			switch {
			case err == nil:
				closed.Add(1)
				slog.Info("Sweeper: closed expired session",
					slog.String("session_id", e.session.ID),
					slog.String("employee_id", e.session.EmployeeID),
					slog.String("session_type", string(e.session.Type)),
					slog.String("closed_at", s.translator.ToLocal(e.cutoff).Format("2006-01-02 15:04")),
				)
			case errors.Is(err, attendance.ErrSessionAlreadyClosed):
				// closed concurrently
			case errors.Is(err, attendance.ErrSessionLocked),
				errors.Is(err, payroll.ErrNoOpenPeriod),
				errors.Is(err, employee.ErrEmployeeNotFound):
				slog.Warn("Sweeper: expired session left open",
					slog.String("session_id", e.session.ID),
					slog.String("reason", err.Error()),
				)
			default:
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(closed.Load()), err
	}
	return int(closed.Load()), nil
}
