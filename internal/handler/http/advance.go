package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type AdvanceHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
}

type advanceHandlerImpl struct {
	advanceService payroll.AdvanceService
}

func NewAdvanceHandler(advanceService payroll.AdvanceService) AdvanceHandler {
	return &advanceHandlerImpl{
		advanceService: advanceService,
	}
}

// Create implements AdvanceHandler.
func (h *advanceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateAdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if req.EmployeeID != "" && !validator.IsValidUUID(req.EmployeeID) {
		response.BadRequest(w, "Invalid employee ID format", nil)
		return
	}

	result, err := h.advanceService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Advance recorded", result)
}

// List implements AdvanceHandler.
func (h *advanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID != "" && !validator.IsValidUUID(employeeID) {
		response.BadRequest(w, "Invalid employee ID format", nil)
		return
	}

	h.list(w, r, employeeID)
}

// ListByEmployee implements AdvanceHandler.
func (h *advanceHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if !validator.IsValidUUID(employeeID) {
		response.BadRequest(w, "Invalid employee ID format", nil)
		return
	}

	h.list(w, r, employeeID)
}

// ListMine implements AdvanceHandler.
func (h *advanceHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromToken(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.list(w, r, employeeID)
}

func (h *advanceHandlerImpl) list(w http.ResponseWriter, r *http.Request, employeeID string) {
	results, err := h.advanceService.List(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results, &response.Meta{TotalItems: int64(len(results))})
}
