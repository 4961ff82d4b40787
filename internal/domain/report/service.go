package report

import "context"

type ReportService interface {
	GetDailySummary(ctx context.Context, employeeID string) (DailySummaryResponse, error)
	GetSlip(ctx context.Context, req SlipRequest) (SlipResponse, error)
	GetEmployeeReport(ctx context.Context, employeeID string) (EmployeeReportResponse, error)
	GetDashboardStats(ctx context.Context) (DashboardStatsResponse, error)
}
