/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's decimal-precise domain model from the external API
  contract; monetary fields cross the wire as plain JSON numbers.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - engine: The domain types these mirror
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/overtime-engine/engine"
	"github.com/warp/overtime-engine/store/sqlite"
)

// =============================================================================
// EMPLOYEES
// =============================================================================

// EmployeeDTO represents an employee master row in API responses.
type EmployeeDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Role        string  `json:"role"`
	BasicSalary float64 `json:"basic_salary"`
	GrossSalary float64 `json:"gross_salary"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

// CreateEmployeeRequest is the request to create or update an employee.
type CreateEmployeeRequest struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Role        string  `json:"role"`
	BasicSalary float64 `json:"basic_salary"`
	GrossSalary float64 `json:"gross_salary"`
}

// =============================================================================
// OVERTIME SUBMISSION
// =============================================================================

// SubmitOTRequest carries one duty to be priced and recorded.
type SubmitOTRequest struct {
	EmpID     string `json:"emp_id"`
	Role      string `json:"role"`
	Date      string `json:"date"`
	Shift     string `json:"shift"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Remarks   string `json:"remarks,omitempty"`
}

// Submission converts the request into an engine submission.
func (r SubmitOTRequest) Submission() engine.Submission {
	return engine.Submission{
		Date:      r.Date,
		Shift:     engine.Shift(r.Shift),
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Remarks:   r.Remarks,
	}
}

// OTResultDTO is the engine's pricing result for one duty.
type OTResultDTO struct {
	SubmissionID   string  `json:"submission_id,omitempty"`
	EmpID          string  `json:"emp_id"`
	Name           string  `json:"name"`
	Role           string  `json:"role"`
	Date           string  `json:"date"`
	Shift          string  `json:"shift"`
	Hours          float64 `json:"hours"`
	Category       string  `json:"category"`
	RateMultiplier float64 `json:"rate_multiplier"`
	BasedOn        string  `json:"based_on"`
	Amount         float64 `json:"amount"`
	Description    string  `json:"description"`
}

// ValidateOTRequest asks the validator to check a submission's shape.
type ValidateOTRequest struct {
	Date      string `json:"date"`
	Shift     string `json:"shift"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Remarks   string `json:"remarks,omitempty"`
}

// ValidationDTO mirrors engine.Validation.
type ValidationDTO struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// SubmissionDTO is one stored submission in history responses.
type SubmissionDTO struct {
	ID             string  `json:"id"`
	EmpID          string  `json:"emp_id"`
	Name           string  `json:"name"`
	Role           string  `json:"role"`
	Date           string  `json:"date"`
	Shift          string  `json:"shift"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	Hours          float64 `json:"hours"`
	Category       string  `json:"category"`
	RateMultiplier float64 `json:"rate_multiplier"`
	BasedOn        string  `json:"based_on"`
	Amount         float64 `json:"amount"`
	Remarks        string  `json:"remarks,omitempty"`
	CreatedAt      string  `json:"created_at,omitempty"`
}

// =============================================================================
// MONTHLY SUMMARY
// =============================================================================

// CategoryTotalDTO is one category row in a monthly summary.
type CategoryTotalDTO struct {
	Hours  float64 `json:"hours"`
	Amount float64 `json:"amount"`
	Count  int     `json:"count"`
}

// MonthlySummaryDTO mirrors engine.MonthlySummary.
type MonthlySummaryDTO struct {
	EmpID       string                      `json:"emp_id"`
	Name        string                      `json:"name"`
	Role        string                      `json:"role"`
	Month       string                      `json:"month"`
	Categories  map[string]CategoryTotalDTO `json:"categories"`
	TotalHours  float64                     `json:"total_hours"`
	TotalAmount float64                     `json:"total_amount"`
}

// =============================================================================
// CONFIGURATION
// =============================================================================

// ConfigDTO is the overtime rate configuration on the wire. Clock fields
// are 24-hour "HH:mm" strings.
type ConfigDTO struct {
	DriverDailyHourValue    float64 `json:"driver_daily_hour_value"`
	ConductorDailyHourValue float64 `json:"conductor_daily_hour_value"`
	WorkingDaysPerMonth     int     `json:"working_days_per_month"`
	EarlyMorningStart       string  `json:"early_morning_start"`
	EarlyMorningEnd         string  `json:"early_morning_end"`
	OffShiftStart           string  `json:"off_shift_start"`
	OffShiftEnd             string  `json:"off_shift_end"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toEmployeeDTO(rec sqlite.EmployeeRecord) EmployeeDTO {
	return EmployeeDTO{
		ID:          rec.ID,
		Name:        rec.Name,
		Role:        string(rec.Role),
		BasicSalary: rec.BasicSalary.InexactFloat64(),
		GrossSalary: rec.GrossSalary.InexactFloat64(),
		CreatedAt:   rec.CreatedAt.Format(time.RFC3339),
	}
}

func toSubmissionDTO(rec sqlite.SubmissionRecord) SubmissionDTO {
	return SubmissionDTO{
		ID:             rec.ID,
		EmpID:          rec.EmpID,
		Name:           rec.Name,
		Role:           string(rec.Role),
		Date:           rec.Date,
		Shift:          string(rec.Shift),
		StartTime:      rec.StartTime,
		EndTime:        rec.EndTime,
		Hours:          rec.Hours.InexactFloat64(),
		Category:       string(rec.Category),
		RateMultiplier: rec.RateMultiplier.InexactFloat64(),
		BasedOn:        string(rec.BasedOn),
		Amount:         rec.Amount.InexactFloat64(),
		Remarks:        rec.Remarks,
		CreatedAt:      rec.CreatedAt.Format(time.RFC3339),
	}
}

func toSummaryDTO(s engine.MonthlySummary) MonthlySummaryDTO {
	categories := make(map[string]CategoryTotalDTO, len(s.Categories))
	for category, total := range s.Categories {
		categories[string(category)] = CategoryTotalDTO{
			Hours:  total.Hours.InexactFloat64(),
			Amount: total.Amount.InexactFloat64(),
			Count:  total.Count,
		}
	}
	return MonthlySummaryDTO{
		EmpID:       s.EmpID,
		Name:        s.Name,
		Role:        string(s.Role),
		Month:       s.Month,
		Categories:  categories,
		TotalHours:  s.TotalHours.InexactFloat64(),
		TotalAmount: s.TotalAmount.InexactFloat64(),
	}
}

func toConfigDTO(cfg engine.Config) ConfigDTO {
	return ConfigDTO{
		DriverDailyHourValue:    cfg.DriverDailyHourValue.InexactFloat64(),
		ConductorDailyHourValue: cfg.ConductorDailyHourValue.InexactFloat64(),
		WorkingDaysPerMonth:     cfg.WorkingDaysPerMonth,
		EarlyMorningStart:       cfg.EarlyMorning.Start.String(),
		EarlyMorningEnd:         cfg.EarlyMorning.End.String(),
		OffShiftStart:           cfg.OffShift.Start.String(),
		OffShiftEnd:             cfg.OffShift.End.String(),
	}
}

// Config validates and converts the DTO into an engine configuration.
func (d ConfigDTO) Config() (engine.Config, []string) {
	var errs []string
	cfg := engine.Config{
		DriverDailyHourValue:    decimal.NewFromFloat(d.DriverDailyHourValue),
		ConductorDailyHourValue: decimal.NewFromFloat(d.ConductorDailyHourValue),
		WorkingDaysPerMonth:     d.WorkingDaysPerMonth,
	}

	if !cfg.DriverDailyHourValue.IsPositive() {
		errs = append(errs, "driver_daily_hour_value must be positive")
	}
	if !cfg.ConductorDailyHourValue.IsPositive() {
		errs = append(errs, "conductor_daily_hour_value must be positive")
	}
	if cfg.WorkingDaysPerMonth <= 0 {
		errs = append(errs, "working_days_per_month must be positive")
	}

	clocks := []struct {
		field string
		value string
		dst   *engine.Clock
	}{
		{"early_morning_start", d.EarlyMorningStart, &cfg.EarlyMorning.Start},
		{"early_morning_end", d.EarlyMorningEnd, &cfg.EarlyMorning.End},
		{"off_shift_start", d.OffShiftStart, &cfg.OffShift.Start},
		{"off_shift_end", d.OffShiftEnd, &cfg.OffShift.End},
	}
	for _, c := range clocks {
		clock, err := engine.ParseClock(c.value)
		if err != nil {
			errs = append(errs, c.field+" must be a 24-hour HH:mm time")
			continue
		}
		*c.dst = clock
	}

	return cfg, errs
}
