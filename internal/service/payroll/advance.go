package payroll

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/localtime"
)

type AdvanceServiceImpl struct {
	advances   payroll.AdvanceRepository
	periods    payroll.PeriodRepository
	employees  employee.EmployeeRepository
	translator *localtime.Translator
	clock      localtime.Clock
}

func NewAdvanceService(
	advances payroll.AdvanceRepository,
	periods payroll.PeriodRepository,
	employees employee.EmployeeRepository,
	translator *localtime.Translator,
	clock localtime.Clock,
) payroll.AdvanceService {
	return &AdvanceServiceImpl{
		advances:   advances,
		periods:    periods,
		employees:  employees,
		translator: translator,
		clock:      clock,
	}
}

// Create implements payroll.AdvanceService.
func (s *AdvanceServiceImpl) Create(ctx context.Context, req payroll.CreateAdvanceRequest) (payroll.AdvanceResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.AdvanceResponse{}, err
	}

	if _, err := s.employees.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return payroll.AdvanceResponse{}, err
		}
		return payroll.AdvanceResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	today := s.translator.LocalDate(s.clock.Now())
	period, err := s.periods.FindOpenForDate(ctx, today)
	if err != nil {
		if errors.Is(err, payroll.ErrNoOpenPeriod) {
			return payroll.AdvanceResponse{}, err
		}
		return payroll.AdvanceResponse{}, fmt.Errorf("failed to find open payroll period: %w", err)
	}

	created, err := s.advances.Create(ctx, payroll.Advance{
		EmployeeID:      req.EmployeeID,
		Amount:          req.Amount,
		Note:            req.Note,
		Date:            today,
		PayrollPeriodID: &period.ID,
	})
	if err != nil {
		return payroll.AdvanceResponse{}, fmt.Errorf("failed to create advance: %w", err)
	}

	return payroll.NewAdvanceResponse(created), nil
}

// List implements payroll.AdvanceService.
func (s *AdvanceServiceImpl) List(ctx context.Context, employeeID string) ([]payroll.AdvanceResponse, error) {
	if employeeID != "" {
		if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to get employee: %w", err)
		}
	}

	advances, err := s.advances.List(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list advances: %w", err)
	}

	responses := make([]payroll.AdvanceResponse, 0, len(advances))
	for _, a := range advances {
		responses = append(responses, payroll.NewAdvanceResponse(a))
	}
	return responses, nil
}
