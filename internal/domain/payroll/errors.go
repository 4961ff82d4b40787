package payroll

import "errors"

var (
	// Period errors
	ErrPeriodNotFound      = errors.New("payroll period not found")
	ErrPeriodOverlap       = errors.New("an open payroll period already overlaps this date range")
	ErrPeriodAlreadyLocked = errors.New("payroll period is already locked")
	ErrPeriodNotLocked     = errors.New("payroll period must be locked for this operation")
	ErrNoOpenPeriod        = errors.New("no open payroll period covers this date")
)
