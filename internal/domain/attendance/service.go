package attendance

import (
	"context"
	"time"
)

type AttendanceService interface {
	ClockIn(ctx context.Context, req ClockInRequest) (ClockInResponse, error)
	ClockOut(ctx context.Context, req ClockOutRequest) (ClockOutResponse, error)
	GetStatus(ctx context.Context, employeeID string) (StatusResponse, error)
	List(ctx context.Context, filter ListFilter) ([]SessionResponse, error)
}

// Finalizer closes one open session at the given absolute instant. It returns
// ErrSessionAlreadyClosed when there is nothing to do.
type Finalizer interface {
	Finalize(ctx context.Context, session Session, closeAt time.Time) (FinalizeResult, error)
}

// Sweeper force-closes sessions whose cutoff is at or before now and returns
// how many it closed. An empty employeeID sweeps every employee.
type Sweeper interface {
	CloseExpired(ctx context.Context, employeeID string, now time.Time) (int, error)
}
