package payroll

import "context"

type PeriodService interface {
	Create(ctx context.Context, req CreatePeriodRequest) (PeriodResponse, error)
	List(ctx context.Context) ([]PeriodResponse, error)
	GetByID(ctx context.Context, id string) (PeriodResponse, error)
	Lock(ctx context.Context, id string) (PeriodResponse, error)
	ListExportable(ctx context.Context) ([]ExportablePeriodResponse, error)
	// Relock re-applies lock flags to attendance inside every locked period and
	// returns how many records were touched.
	Relock(ctx context.Context) (int64, error)
}

type AdvanceService interface {
	Create(ctx context.Context, req CreateAdvanceRequest) (AdvanceResponse, error)
	List(ctx context.Context, employeeID string) ([]AdvanceResponse, error)
}
