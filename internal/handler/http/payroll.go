package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	CreatePeriod(w http.ResponseWriter, r *http.Request)
	ListPeriods(w http.ResponseWriter, r *http.Request)
	ListExportablePeriods(w http.ResponseWriter, r *http.Request)
	GetPeriod(w http.ResponseWriter, r *http.Request)
	LockPeriod(w http.ResponseWriter, r *http.Request)
	Relock(w http.ResponseWriter, r *http.Request)
	GetSlip(w http.ResponseWriter, r *http.Request)
	ExportSlip(w http.ResponseWriter, r *http.Request)
	GetMySlip(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	periodService payroll.PeriodService
	reportService report.ReportService
}

func NewPayrollHandler(periodService payroll.PeriodService, reportService report.ReportService) PayrollHandler {
	return &payrollHandlerImpl{
		periodService: periodService,
		reportService: reportService,
	}
}

func periodIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	periodID := chi.URLParam(r, "periodID")
	if !validator.IsValidUUID(periodID) {
		response.BadRequest(w, "Invalid payroll period ID format", nil)
		return "", false
	}
	return periodID, true
}

// CreatePeriod implements PayrollHandler.
func (h *payrollHandlerImpl) CreatePeriod(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreatePeriodRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.periodService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll period created", result)
}

// ListPeriods implements PayrollHandler.
func (h *payrollHandlerImpl) ListPeriods(w http.ResponseWriter, r *http.Request) {
	results, err := h.periodService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ListExportablePeriods implements PayrollHandler.
func (h *payrollHandlerImpl) ListExportablePeriods(w http.ResponseWriter, r *http.Request) {
	results, err := h.periodService.ListExportable(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// GetPeriod implements PayrollHandler.
func (h *payrollHandlerImpl) GetPeriod(w http.ResponseWriter, r *http.Request) {
	periodID, ok := periodIDParam(w, r)
	if !ok {
		return
	}

	result, err := h.periodService.GetByID(r.Context(), periodID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// LockPeriod implements PayrollHandler.
func (h *payrollHandlerImpl) LockPeriod(w http.ResponseWriter, r *http.Request) {
	periodID, ok := periodIDParam(w, r)
	if !ok {
		return
	}

	result, err := h.periodService.Lock(r.Context(), periodID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll period locked", result)
}

// Relock implements PayrollHandler.
func (h *payrollHandlerImpl) Relock(w http.ResponseWriter, r *http.Request) {
	touched, err := h.periodService.Relock(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]int64{"sessions_locked": touched})
}

// GetSlip implements PayrollHandler.
func (h *payrollHandlerImpl) GetSlip(w http.ResponseWriter, r *http.Request) {
	periodID, ok := periodIDParam(w, r)
	if !ok {
		return
	}
	employeeID := chi.URLParam(r, "employeeID")
	if !validator.IsValidUUID(employeeID) {
		response.BadRequest(w, "Invalid employee ID format", nil)
		return
	}

	result, err := h.reportService.GetSlip(r.Context(), report.SlipRequest{
		PeriodID:   periodID,
		EmployeeID: employeeID,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportSlip implements PayrollHandler. The slip is served as a JSON
// attachment and only for locked periods.
func (h *payrollHandlerImpl) ExportSlip(w http.ResponseWriter, r *http.Request) {
	periodID, ok := periodIDParam(w, r)
	if !ok {
		return
	}
	employeeID := chi.URLParam(r, "employeeID")
	if !validator.IsValidUUID(employeeID) {
		response.BadRequest(w, "Invalid employee ID format", nil)
		return
	}

	slip, err := h.reportService.GetSlip(r.Context(), report.SlipRequest{
		PeriodID:      periodID,
		EmployeeID:    employeeID,
		RequireLocked: true,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("slip-%s-%s.json",
		strings.ReplaceAll(strings.ToLower(slip.Period.Label), " ", "-"),
		slip.Employee.ID,
	)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(slip)
}

// GetMySlip implements PayrollHandler.
func (h *payrollHandlerImpl) GetMySlip(w http.ResponseWriter, r *http.Request) {
	periodID, ok := periodIDParam(w, r)
	if !ok {
		return
	}
	employeeID, err := employeeIDFromToken(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.GetSlip(r.Context(), report.SlipRequest{
		PeriodID:   periodID,
		EmployeeID: employeeID,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
