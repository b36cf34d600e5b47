/*
Package sqlite provides SQLite-backed persistence for the overtime system.

PURPOSE:
  Stores the employee master (drivers and conductors), the priced overtime
  submissions, and the overtime rate configuration. The engine itself is
  pure; everything durable lives here.

KEY TABLES:
  employees:       Driver/conductor master rows with salary figures
  ot_submissions:  One row per priced duty, including the engine's result
  ot_config:       Named rate settings, one row per setting

CONFIG DEFAULTING:
  Config() never fails on missing or malformed settings - each setting
  falls back to the engine default individually, the way the payroll
  office's configuration sheet was read. SaveConfig writes all settings.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of a WAL-mode database.

USAGE:
  store, err := sqlite.New("./data/overtime.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - engine: The pure calculation engine whose results are stored here
  - api/handlers.go: The HTTP layer reading and writing through this store
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/overtime-engine/engine"
)

// Store implements persistence for employees, submissions, and config.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Employee master (drivers and conductors)
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		basic_salary TEXT NOT NULL,
		gross_salary TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_employees_role
		ON employees(role);

	-- Priced overtime submissions
	CREATE TABLE IF NOT EXISTS ot_submissions (
		id TEXT PRIMARY KEY,
		emp_id TEXT NOT NULL,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		date TEXT NOT NULL,
		shift TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		hours TEXT NOT NULL,
		category TEXT NOT NULL,
		rate_multiplier TEXT NOT NULL,
		based_on TEXT NOT NULL,
		amount TEXT NOT NULL,
		remarks TEXT,
		created_at TEXT NOT NULL
	);

	-- Monthly summaries and history filter on (employee, date)
	CREATE INDEX IF NOT EXISTS idx_ot_submissions_emp_date
		ON ot_submissions(emp_id, date);

	-- Overtime rate configuration, one row per named setting
	CREATE TABLE IF NOT EXISTS ot_config (
		name TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEE MASTER
// =============================================================================

// EmployeeRecord is an employee master row.
type EmployeeRecord struct {
	ID          string
	Name        string
	Role        engine.Role
	BasicSalary decimal.Decimal
	GrossSalary decimal.Decimal
	CreatedAt   time.Time
}

// Engine converts the record into the engine's employee value.
func (r EmployeeRecord) Engine() engine.Employee {
	return engine.Employee{
		ID:          r.ID,
		Name:        r.Name,
		Role:        r.Role,
		BasicSalary: r.BasicSalary,
		GrossSalary: r.GrossSalary,
	}
}

// SaveEmployee inserts or replaces an employee master row.
func (s *Store) SaveEmployee(ctx context.Context, emp EmployeeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := emp.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (id, name, role, basic_salary, gross_salary, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			role = excluded.role,
			basic_salary = excluded.basic_salary,
			gross_salary = excluded.gross_salary
	`,
		emp.ID,
		emp.Name,
		string(emp.Role),
		emp.BasicSalary.String(),
		emp.GrossSalary.String(),
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}
	return nil
}

// GetEmployee returns an employee by id, or nil if not found.
func (s *Store) GetEmployee(ctx context.Context, id string) (*EmployeeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var emp EmployeeRecord
	var role, basic, gross, createdAt string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, role, basic_salary, gross_salary, created_at FROM employees WHERE id = ?",
		id,
	).Scan(&emp.ID, &emp.Name, &role, &basic, &gross, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	emp.Role = engine.Role(role)
	emp.BasicSalary = mustDecimal(basic)
	emp.GrossSalary = mustDecimal(gross)
	emp.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &emp, nil
}

// ListEmployees returns employees, optionally filtered by role.
func (s *Store) ListEmployees(ctx context.Context, role engine.Role) ([]EmployeeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT id, name, role, basic_salary, gross_salary, created_at FROM employees ORDER BY id"
	args := []any{}
	if role != "" {
		query = "SELECT id, name, role, basic_salary, gross_salary, created_at FROM employees WHERE role = ? ORDER BY id"
		args = append(args, string(role))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []EmployeeRecord
	for rows.Next() {
		var emp EmployeeRecord
		var r, basic, gross, createdAt string
		if err := rows.Scan(&emp.ID, &emp.Name, &r, &basic, &gross, &createdAt); err != nil {
			return nil, err
		}
		emp.Role = engine.Role(r)
		emp.BasicSalary = mustDecimal(basic)
		emp.GrossSalary = mustDecimal(gross)
		emp.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// DeleteEmployee removes an employee master row.
func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM employees WHERE id = ?", id)
	return err
}

// =============================================================================
// OT SUBMISSIONS
// =============================================================================

// SubmissionRecord is one priced duty as persisted: the raw submission
// fields plus the engine's pricing result, denormalized the way the
// payroll log keeps them.
type SubmissionRecord struct {
	ID             string
	EmpID          string
	Name           string
	Role           engine.Role
	Date           string
	Shift          engine.Shift
	StartTime      string
	EndTime        string
	Hours          decimal.Decimal
	Category       engine.Category
	RateMultiplier decimal.Decimal
	BasedOn        engine.SalaryBasis
	Amount         decimal.Decimal
	Remarks        string
	CreatedAt      time.Time
}

// Submission converts the record back into an engine submission, e.g.
// for re-pricing a month under a changed configuration.
func (r SubmissionRecord) Submission() engine.Submission {
	return engine.Submission{
		Date:      r.Date,
		Shift:     r.Shift,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Remarks:   r.Remarks,
	}
}

// SaveSubmission persists one priced submission and returns its id.
// A fresh id is generated when the record carries none.
func (s *Store) SaveSubmission(ctx context.Context, rec SubmissionRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ot_submissions
		(id, emp_id, name, role, date, shift, start_time, end_time,
		 hours, category, rate_multiplier, based_on, amount, remarks, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		rec.EmpID,
		rec.Name,
		string(rec.Role),
		rec.Date,
		string(rec.Shift),
		rec.StartTime,
		rec.EndTime,
		rec.Hours.String(),
		string(rec.Category),
		rec.RateMultiplier.String(),
		string(rec.BasedOn),
		rec.Amount.String(),
		rec.Remarks,
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save submission: %w", err)
	}
	return rec.ID, nil
}

// ListSubmissions returns an employee's submissions, newest date last.
// month filters to a "YYYY-MM" calendar month when non-empty.
func (s *Store) ListSubmissions(ctx context.Context, empID, month string) ([]SubmissionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, emp_id, name, role, date, shift, start_time, end_time,
		       hours, category, rate_multiplier, based_on, amount, remarks, created_at
		FROM ot_submissions WHERE emp_id = ?`
	args := []any{empID}
	if month != "" {
		query += " AND date LIKE ?"
		args = append(args, month+"-%")
	}
	query += " ORDER BY date, start_time"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []SubmissionRecord
	for rows.Next() {
		var rec SubmissionRecord
		var role, shift, hours, category, multiplier, basedOn, amount, createdAt string
		var remarks sql.NullString
		if err := rows.Scan(&rec.ID, &rec.EmpID, &rec.Name, &role, &rec.Date, &shift,
			&rec.StartTime, &rec.EndTime, &hours, &category, &multiplier, &basedOn,
			&amount, &remarks, &createdAt); err != nil {
			return nil, err
		}
		rec.Role = engine.Role(role)
		rec.Shift = engine.Shift(shift)
		rec.Hours = mustDecimal(hours)
		rec.Category = engine.Category(category)
		rec.RateMultiplier = mustDecimal(multiplier)
		rec.BasedOn = engine.SalaryBasis(basedOn)
		rec.Amount = mustDecimal(amount)
		rec.Remarks = remarks.String
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// =============================================================================
// OT CONFIGURATION
// =============================================================================

// Setting names mirror the payroll office's configuration sheet.
const (
	SettingDriverDailyHourValue    = "Driver Daily Hour Value"
	SettingConductorDailyHourValue = "Conductor Daily Hour Value"
	SettingWorkingDaysPerMonth     = "Working Days Per Month"
	SettingEarlyMorningStart       = "Early Morning Start"
	SettingEarlyMorningEnd         = "Early Morning End"
	SettingOffShiftStart           = "Off Shift Start"
	SettingOffShiftEnd             = "Off Shift End"
)

// Config assembles the engine configuration from stored settings. Each
// missing or malformed setting falls back to the engine default on its
// own, so a half-filled configuration still prices duties the stock way.
func (s *Store) Config(ctx context.Context) (engine.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT name, value FROM ot_config")
	if err != nil {
		return engine.Config{}, err
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return engine.Config{}, err
		}
		settings[name] = value
	}
	if err := rows.Err(); err != nil {
		return engine.Config{}, err
	}

	cfg := engine.DefaultConfig()
	if d, ok := parseDecimalSetting(settings[SettingDriverDailyHourValue]); ok {
		cfg.DriverDailyHourValue = d
	}
	if d, ok := parseDecimalSetting(settings[SettingConductorDailyHourValue]); ok {
		cfg.ConductorDailyHourValue = d
	}
	if n, err := strconv.Atoi(strings.TrimSpace(settings[SettingWorkingDaysPerMonth])); err == nil {
		cfg.WorkingDaysPerMonth = n
	}
	if c, err := engine.ParseClock(settings[SettingEarlyMorningStart]); err == nil {
		cfg.EarlyMorning.Start = c
	}
	if c, err := engine.ParseClock(settings[SettingEarlyMorningEnd]); err == nil {
		cfg.EarlyMorning.End = c
	}
	if c, err := engine.ParseClock(settings[SettingOffShiftStart]); err == nil {
		cfg.OffShift.Start = c
	}
	if c, err := engine.ParseClock(settings[SettingOffShiftEnd]); err == nil {
		cfg.OffShift.End = c
	}
	return cfg, nil
}

// SaveConfig upserts every setting from the given configuration.
func (s *Store) SaveConfig(ctx context.Context, cfg engine.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := map[string]string{
		SettingDriverDailyHourValue:    cfg.DriverDailyHourValue.String(),
		SettingConductorDailyHourValue: cfg.ConductorDailyHourValue.String(),
		SettingWorkingDaysPerMonth:     strconv.Itoa(cfg.WorkingDaysPerMonth),
		SettingEarlyMorningStart:       cfg.EarlyMorning.Start.String(),
		SettingEarlyMorningEnd:         cfg.EarlyMorning.End.String(),
		SettingOffShiftStart:           cfg.OffShift.Start.String(),
		SettingOffShiftEnd:             cfg.OffShift.End.String(),
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for name, value := range settings {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO ot_config (name, value, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET
				value = excluded.value,
				updated_at = excluded.updated_at
		`, name, value, now)
		if err != nil {
			return fmt.Errorf("failed to save setting %q: %w", name, err)
		}
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseDecimalSetting(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
