/*
handlers_test.go - Unit tests for API handlers

Tests for:
- Overtime submission (pricing, persistence, validation rejection)
- Validator endpoint
- Monthly summary endpoint
- Configuration read/update
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/overtime-engine/engine"
	"github.com/warp/overtime-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) (*httptest.Server, *sqlite.Store) {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	server := httptest.NewServer(NewRouter(NewHandler(store)))
	t.Cleanup(server.Close)
	return server, store
}

func seedDriver(t *testing.T, store *sqlite.Store) {
	// 22000/(1*22) = 1000/h basic, 26400/(1*22) = 1200/h gross.
	err := store.SaveEmployee(context.Background(), sqlite.EmployeeRecord{
		ID:          "DRV-001",
		Name:        "Anwar",
		Role:        engine.RoleDriver,
		BasicSalary: decimal.RequireFromString("22000"),
		GrossSalary: decimal.RequireFromString("26400"),
	})
	require.NoError(t, err)
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// =============================================================================
// SUBMIT
// =============================================================================

func TestSubmitOT_PricesAndPersists(t *testing.T) {
	// GIVEN: A seeded driver and the default configuration
	// WHEN: Submitting a Monday 13:00-15:00 duty
	// THEN: Priced as Additional Duty Allowance and recorded

	server, store := newTestServer(t)
	seedDriver(t, store)

	resp := postJSON(t, server.URL+"/api/overtime/submit", SubmitOTRequest{
		EmpID:     "DRV-001",
		Role:      "Driver",
		Date:      "2025-01-06",
		Shift:     "AN",
		StartTime: "13:00",
		EndTime:   "15:00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	result := decode[OTResultDTO](t, resp)
	assert.NotEmpty(t, result.SubmissionID)
	assert.Equal(t, "Additional Duty Allowance", result.Category)
	assert.Equal(t, 2.0, result.Hours)
	assert.Equal(t, 1.25, result.RateMultiplier)
	assert.Equal(t, "Basic", result.BasedOn)
	assert.Equal(t, 2500.0, result.Amount)

	stored, err := store.ListSubmissions(context.Background(), "DRV-001", "2025-01")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, result.SubmissionID, stored[0].ID)
}

func TestSubmitOT_ValidationFailure(t *testing.T) {
	server, store := newTestServer(t)
	seedDriver(t, store)

	resp := postJSON(t, server.URL+"/api/overtime/submit", SubmitOTRequest{
		EmpID:     "DRV-001",
		Role:      "Driver",
		Date:      "2025-01-06",
		Shift:     "Night",
		StartTime: "13:00",
		EndTime:   "13:00",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decode[ErrorResponse](t, resp)
	assert.Equal(t, "Validation failed", body.Error)
	assert.Contains(t, body.Details, "Invalid shift. Must be FN, AN, Both, or Special Task")
	assert.Contains(t, body.Details, "End time must be after start time")
}

func TestSubmitOT_MissingFields(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/overtime/submit", SubmitOTRequest{EmpID: "DRV-001"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSubmitOT_UnknownEmployee(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/overtime/submit", SubmitOTRequest{
		EmpID:     "DRV-404",
		Role:      "Driver",
		Date:      "2025-01-06",
		Shift:     "FN",
		StartTime: "09:00",
		EndTime:   "12:00",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSubmitOT_RoleMismatch(t *testing.T) {
	// The employee exists but as a Driver; submitting them as a
	// Conductor must not price under the wrong rate table.
	server, store := newTestServer(t)
	seedDriver(t, store)

	resp := postJSON(t, server.URL+"/api/overtime/submit", SubmitOTRequest{
		EmpID:     "DRV-001",
		Role:      "Conductor",
		Date:      "2025-01-06",
		Shift:     "FN",
		StartTime: "09:00",
		EndTime:   "12:00",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// =============================================================================
// VALIDATE
// =============================================================================

func TestValidateOT_ReportsAllErrors(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/overtime/validate", ValidateOTRequest{
		Date:      "bad",
		Shift:     "FN",
		StartTime: "09:00",
		EndTime:   "08:00",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	v := decode[ValidationDTO](t, resp)
	assert.False(t, v.Valid)
	assert.Contains(t, v.Errors, "Invalid date format. Use YYYY-MM-DD")
	// 09:00-08:00 wraps to 23h, which is a legal overnight duty.
	assert.NotContains(t, v.Errors, "End time must be after start time")
}

func TestValidateOT_Valid(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/overtime/validate", ValidateOTRequest{
		Date:      "2025-01-06",
		Shift:     "FN",
		StartTime: "23:00",
		EndTime:   "01:00",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	v := decode[ValidationDTO](t, resp)
	assert.True(t, v.Valid)
	assert.Empty(t, v.Errors)
}

// =============================================================================
// SUMMARY
// =============================================================================

func TestMonthlySummary_FoldsStoredMonth(t *testing.T) {
	server, store := newTestServer(t)
	seedDriver(t, store)

	for _, duty := range []SubmitOTRequest{
		{EmpID: "DRV-001", Role: "Driver", Date: "2025-01-06", Shift: "AN", StartTime: "13:00", EndTime: "15:00"},
		{EmpID: "DRV-001", Role: "Driver", Date: "2025-01-03", Shift: "FN", StartTime: "09:00", EndTime: "11:00"}, // Friday
		{EmpID: "DRV-001", Role: "Driver", Date: "2025-02-04", Shift: "AN", StartTime: "13:00", EndTime: "15:00"}, // other month
	} {
		resp := postJSON(t, server.URL+"/api/overtime/submit", duty)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, err := http.Get(server.URL + "/api/overtime/summary/DRV-001?month=2025-01")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	summary := decode[MonthlySummaryDTO](t, resp)
	assert.Equal(t, "2025-01", summary.Month)
	assert.Equal(t, "DRV-001", summary.EmpID)
	require.Len(t, summary.Categories, 2)
	assert.Equal(t, 1, summary.Categories["Additional Duty Allowance"].Count)
	assert.Equal(t, 1, summary.Categories["Friday/Holiday"].Count)
	// 2h*1000*1.25 + 2h*1000*1.5
	assert.Equal(t, 5500.0, summary.TotalAmount)
	assert.Equal(t, 4.0, summary.TotalHours)
}

func TestMonthlySummary_RequiresMonth(t *testing.T) {
	server, store := newTestServer(t)
	seedDriver(t, store)

	resp, err := http.Get(server.URL + "/api/overtime/summary/DRV-001")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func TestDeleteEmployee(t *testing.T) {
	server, store := newTestServer(t)
	seedDriver(t, store)

	req, err := http.NewRequest(http.MethodDelete, server.URL+"/api/employees/DRV-001", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	got, err := store.GetEmployee(context.Background(), "DRV-001")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteEmployee_NotFound(t *testing.T) {
	server, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodDelete, server.URL+"/api/employees/missing", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// =============================================================================
// CONFIGURATION
// =============================================================================

func TestConfig_DefaultsThenUpdate(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/config")
	require.NoError(t, err)
	cfg := decode[ConfigDTO](t, resp)
	resp.Body.Close()

	assert.Equal(t, 1.0, cfg.DriverDailyHourValue)
	assert.Equal(t, 4.0, cfg.ConductorDailyHourValue)
	assert.Equal(t, 22, cfg.WorkingDaysPerMonth)
	assert.Equal(t, "07:30", cfg.EarlyMorningStart)
	assert.Equal(t, "04:30", cfg.OffShiftEnd)

	cfg.DriverDailyHourValue = 4.5
	cfg.WorkingDaysPerMonth = 26

	payload, err := json.Marshal(cfg)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPut, server.URL+"/api/config", bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	putResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer putResp.Body.Close()
	require.Equal(t, http.StatusOK, putResp.StatusCode)

	updated := decode[ConfigDTO](t, putResp)
	assert.Equal(t, 4.5, updated.DriverDailyHourValue)
	assert.Equal(t, 26, updated.WorkingDaysPerMonth)
}

func TestUpdateConfig_RejectsBadValues(t *testing.T) {
	server, _ := newTestServer(t)

	bad := ConfigDTO{
		DriverDailyHourValue:    0,
		ConductorDailyHourValue: 4,
		WorkingDaysPerMonth:     22,
		EarlyMorningStart:       "07:30",
		EarlyMorningEnd:         "10:30",
		OffShiftStart:           "25:00",
		OffShiftEnd:             "04:30",
	}

	payload, err := json.Marshal(bad)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPut, server.URL+"/api/config", bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decode[ErrorResponse](t, resp)
	assert.Contains(t, body.Details, "driver_daily_hour_value must be positive")
	assert.Contains(t, body.Details, "off_shift_start must be a 24-hour HH:mm time")
}
