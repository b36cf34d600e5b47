/*
handlers.go - HTTP API handlers for the overtime system

PURPOSE:
  Exposes the overtime engine via REST API. Handles HTTP request and
  response, JSON serialization, and delegates all pricing decisions to
  the engine package.

ENDPOINTS:
  Overtime:
    POST /api/overtime/submit              Price and record one duty
    POST /api/overtime/validate            Check a submission's shape
    GET  /api/overtime/submissions/{empID} Submission history
    GET  /api/overtime/summary/{empID}     Monthly summary (?month=YYYY-MM)

  Employees:
    GET  /api/employees                    List employees (?role=Driver)
    POST /api/employees                    Create/update employee
    GET  /api/employees/{id}               Get employee

  Configuration:
    GET  /api/config                       Active rate configuration
    PUT  /api/config                       Replace rate configuration

REQUEST FLOW (submit):
  1. Parse request, check required fields and role
  2. Look up the employee master row
  3. Run the validator; reject with the full error list on failure
  4. Load the active configuration
  5. Calculate, persist the priced submission, respond

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input, bad configuration values
  - 404: Employee not found
  - 500: Storage failures

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - engine: The calculation engine invoked here
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/warp/overtime-engine/engine"
	"github.com/warp/overtime-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{Store: store}
}

// =============================================================================
// OVERTIME
// =============================================================================

// SubmitOT prices one duty and records it.
// POST /api/overtime/submit
func (h *Handler) SubmitOT(w http.ResponseWriter, r *http.Request) {
	var req SubmitOTRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.EmpID == "" || req.Role == "" || req.Date == "" || req.Shift == "" ||
		req.StartTime == "" || req.EndTime == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields", nil)
		return
	}

	role, err := engine.ParseRole(req.Role)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid role. Must be Driver or Conductor", nil)
		return
	}

	record, err := h.Store.GetEmployee(r.Context(), req.EmpID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load employee", err)
		return
	}
	if record == nil || record.Role != role {
		writeError(w, http.StatusNotFound, fmt.Sprintf("%s not found", role), nil)
		return
	}

	submission := req.Submission()
	if v := engine.ValidateSubmission(submission); !v.Valid {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Details: v.Errors})
		return
	}

	cfg, err := h.Store.Config(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load configuration", err)
		return
	}

	result, err := engine.Calculate(record.Engine(), submission, cfg)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, engine.ErrBadDate) || errors.Is(err, engine.ErrBadClock) {
			status = http.StatusBadRequest
		}
		writeError(w, status, "Overtime calculation failed", err)
		return
	}

	submissionID, err := h.Store.SaveSubmission(r.Context(), sqlite.SubmissionRecord{
		EmpID:          record.ID,
		Name:           record.Name,
		Role:           record.Role,
		Date:           submission.Date,
		Shift:          submission.Shift,
		StartTime:      submission.StartTime,
		EndTime:        submission.EndTime,
		Hours:          result.Hours,
		Category:       result.Category,
		RateMultiplier: result.RateMultiplier,
		BasedOn:        result.BasedOn,
		Amount:         result.Amount,
		Remarks:        submission.Remarks,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save submission", err)
		return
	}

	writeJSON(w, http.StatusCreated, OTResultDTO{
		SubmissionID:   submissionID,
		EmpID:          record.ID,
		Name:           record.Name,
		Role:           string(record.Role),
		Date:           submission.Date,
		Shift:          string(submission.Shift),
		Hours:          result.Hours.InexactFloat64(),
		Category:       string(result.Category),
		RateMultiplier: result.RateMultiplier.InexactFloat64(),
		BasedOn:        string(result.BasedOn),
		Amount:         result.Amount.InexactFloat64(),
		Description:    result.Description,
	})
}

// ValidateOT runs the validator only, without pricing or recording.
// POST /api/overtime/validate
func (h *Handler) ValidateOT(w http.ResponseWriter, r *http.Request) {
	var req ValidateOTRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	v := engine.ValidateSubmission(engine.Submission{
		Date:      req.Date,
		Shift:     engine.Shift(req.Shift),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Remarks:   req.Remarks,
	})

	errs := v.Errors
	if errs == nil {
		errs = []string{}
	}
	writeJSON(w, http.StatusOK, ValidationDTO{Valid: v.Valid, Errors: errs})
}

// ListSubmissions returns an employee's submission history.
// GET /api/overtime/submissions/{empID}?month=YYYY-MM
func (h *Handler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	empID := chi.URLParam(r, "empID")
	month := r.URL.Query().Get("month")
	if month != "" {
		if _, err := time.Parse("2006-01", month); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid month. Use YYYY-MM", nil)
			return
		}
	}

	records, err := h.Store.ListSubmissions(r.Context(), empID, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load submissions", err)
		return
	}

	dtos := make([]SubmissionDTO, 0, len(records))
	for _, rec := range records {
		dtos = append(dtos, toSubmissionDTO(rec))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// MonthlySummary re-prices an employee's month and returns the fold.
// GET /api/overtime/summary/{empID}?month=YYYY-MM
func (h *Handler) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	empID := chi.URLParam(r, "empID")
	month := r.URL.Query().Get("month")
	if month == "" {
		writeError(w, http.StatusBadRequest, "month query parameter is required (YYYY-MM)", nil)
		return
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month. Use YYYY-MM", nil)
		return
	}

	record, err := h.Store.GetEmployee(r.Context(), empID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load employee", err)
		return
	}
	if record == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	stored, err := h.Store.ListSubmissions(r.Context(), empID, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load submissions", err)
		return
	}

	submissions := make([]engine.Submission, 0, len(stored))
	for _, rec := range stored {
		submissions = append(submissions, rec.Submission())
	}

	cfg, err := h.Store.Config(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load configuration", err)
		return
	}

	summary, err := engine.CalculateMonthly(record.Engine(), submissions, cfg)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Monthly calculation failed", err)
		return
	}
	summary.Month = month

	writeJSON(w, http.StatusOK, toSummaryDTO(summary))
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// ListEmployees returns the employee master, optionally filtered by role.
// GET /api/employees?role=Driver
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	var role engine.Role
	if raw := r.URL.Query().Get("role"); raw != "" {
		parsed, err := engine.ParseRole(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid role. Must be Driver or Conductor", nil)
			return
		}
		role = parsed
	}

	records, err := h.Store.ListEmployees(r.Context(), role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, 0, len(records))
	for _, rec := range records {
		dtos = append(dtos, toEmployeeDTO(rec))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateEmployee inserts or replaces an employee master row.
// POST /api/employees
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.ID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "id and name are required", nil)
		return
	}
	role, err := engine.ParseRole(req.Role)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid role. Must be Driver or Conductor", nil)
		return
	}
	if req.BasicSalary < 0 || req.GrossSalary < 0 {
		writeError(w, http.StatusBadRequest, "Salaries must be non-negative", nil)
		return
	}

	rec := sqlite.EmployeeRecord{
		ID:          req.ID,
		Name:        req.Name,
		Role:        role,
		BasicSalary: decimal.NewFromFloat(req.BasicSalary),
		GrossSalary: decimal.NewFromFloat(req.GrossSalary),
	}
	if err := h.Store.SaveEmployee(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save employee", err)
		return
	}

	saved, err := h.Store.GetEmployee(r.Context(), req.ID)
	if err != nil || saved == nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(*saved))
}

// GetEmployee returns one employee master row.
// GET /api/employees/{id}
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	record, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load employee", err)
		return
	}
	if record == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*record))
}

// DeleteEmployee removes an employee master row. Past submissions keep
// their denormalized copy and remain queryable.
// DELETE /api/employees/{id}
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	record, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load employee", err)
		return
	}
	if record == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	if err := h.Store.DeleteEmployee(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete employee", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// CONFIGURATION
// =============================================================================

// GetConfig returns the active rate configuration (stored settings over
// engine defaults).
// GET /api/config
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Store.Config(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load configuration", err)
		return
	}
	writeJSON(w, http.StatusOK, toConfigDTO(cfg))
}

// UpdateConfig replaces the rate configuration. Divisors must be positive
// and clock fields valid HH:mm; a configuration the engine would refuse
// is rejected here instead of surfacing at the next submission.
// PUT /api/config
func (h *Handler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var dto ConfigDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	cfg, errs := dto.Config()
	if len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid configuration", Details: errs})
		return
	}

	if err := h.Store.SaveConfig(r.Context(), cfg); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save configuration", err)
		return
	}
	writeJSON(w, http.StatusOK, toConfigDTO(cfg))
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = []string{err.Error()}
	}
	writeJSON(w, status, resp)
}
