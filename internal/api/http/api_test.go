package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apihttp "github.com/spec-kit/employee-management/internal/api/http"
	"github.com/spec-kit/employee-management/internal/api/http/handlers"
	"github.com/spec-kit/employee-management/internal/config"
	"github.com/spec-kit/employee-management/internal/domain"
	"github.com/spec-kit/employee-management/internal/observability"
	"github.com/spec-kit/employee-management/internal/repository"
	"github.com/spec-kit/employee-management/internal/service"
)

// memStore backs the fake repositories with one shared in-memory dataset so
// cross-resource rules (department FK, delete guard) behave like the real
// schema.
type memStore struct {
	employees        map[int64]*domain.Employee
	nextEmployeeID   int64
	departments      map[int64]*domain.Department
	nextDepartmentID int64
	attendance       map[string]*domain.Attendance
	nextAttendanceID int64
}

func newMemStore() *memStore {
	return &memStore{
		employees:        make(map[int64]*domain.Employee),
		nextEmployeeID:   1,
		departments:      make(map[int64]*domain.Department),
		nextDepartmentID: 1,
		attendance:       make(map[string]*domain.Attendance),
		nextAttendanceID: 1,
	}
}

func (s *memStore) departmentName(id *int64) *string {
	if id == nil {
		return nil
	}
	dept, ok := s.departments[*id]
	if !ok {
		return nil
	}
	name := dept.Name
	return &name
}

type memEmployeeRepo struct{ store *memStore }

func (r *memEmployeeRepo) List(_ context.Context) ([]domain.Employee, error) {
	var result []domain.Employee
	for id := r.store.nextEmployeeID - 1; id >= 1; id-- {
		if emp, ok := r.store.employees[id]; ok {
			clone := *emp
			clone.DepartmentName = r.store.departmentName(emp.DepartmentID)
			result = append(result, clone)
		}
	}
	return result, nil
}

func (r *memEmployeeRepo) GetByID(_ context.Context, id int64) (*domain.Employee, error) {
	emp, ok := r.store.employees[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *emp
	clone.DepartmentName = r.store.departmentName(emp.DepartmentID)
	return &clone, nil
}

func (r *memEmployeeRepo) Create(_ context.Context, emp *domain.Employee) error {
	for _, existing := range r.store.employees {
		if existing.Email == emp.Email {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	if emp.DepartmentID != nil {
		if _, ok := r.store.departments[*emp.DepartmentID]; !ok {
			return &pgconn.PgError{Code: "23503"}
		}
	}
	emp.ID = r.store.nextEmployeeID
	r.store.nextEmployeeID++
	now := time.Now().UTC()
	emp.CreatedAt = now
	emp.UpdatedAt = now
	clone := *emp
	r.store.employees[emp.ID] = &clone
	return nil
}

func (r *memEmployeeRepo) Replace(_ context.Context, emp *domain.Employee) error {
	existing, ok := r.store.employees[emp.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	emp.CreatedAt = existing.CreatedAt
	emp.UpdatedAt = time.Now().UTC()
	clone := *emp
	r.store.employees[emp.ID] = &clone
	return nil
}

func (r *memEmployeeRepo) UpdatePartial(_ context.Context, id int64, update repository.EmployeeUpdate) (*domain.Employee, error) {
	emp, ok := r.store.employees[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if update.FirstName != nil {
		emp.FirstName = *update.FirstName
	}
	if update.Email != nil {
		emp.Email = *update.Email
	}
	if update.Salary != nil {
		emp.Salary = *update.Salary
	}
	if update.Status != nil {
		emp.Status = *update.Status
	}
	emp.UpdatedAt = time.Now().UTC()
	clone := *emp
	clone.DepartmentName = r.store.departmentName(emp.DepartmentID)
	return &clone, nil
}

func (r *memEmployeeRepo) Delete(_ context.Context, id int64) (*domain.Employee, error) {
	emp, ok := r.store.employees[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	delete(r.store.employees, id)
	return emp, nil
}

func (r *memEmployeeRepo) Stats(_ context.Context) (*domain.EmployeeStats, error) {
	stats := &domain.EmployeeStats{}
	for _, emp := range r.store.employees {
		stats.TotalEmployees++
		switch emp.Status {
		case domain.EmployeeStatusActive:
			stats.ActiveCount++
		case domain.EmployeeStatusInactive:
			stats.InactiveCount++
		case domain.EmployeeStatusOnLeave:
			stats.OnLeaveCount++
		}
	}
	return stats, nil
}

type memDepartmentRepo struct{ store *memStore }

func (r *memDepartmentRepo) List(_ context.Context) ([]domain.Department, error) {
	var result []domain.Department
	for _, dept := range r.store.departments {
		clone := *dept
		clone.EmployeeCount, _ = r.EmployeeCount(nil, dept.ID)
		result = append(result, clone)
	}
	return result, nil
}

func (r *memDepartmentRepo) GetByID(_ context.Context, id int64) (*domain.Department, error) {
	dept, ok := r.store.departments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *dept
	clone.EmployeeCount, _ = r.EmployeeCount(nil, id)
	return &clone, nil
}

func (r *memDepartmentRepo) Create(_ context.Context, dept *domain.Department) error {
	for _, existing := range r.store.departments {
		if existing.Name == dept.Name {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	dept.ID = r.store.nextDepartmentID
	r.store.nextDepartmentID++
	now := time.Now().UTC()
	dept.CreatedAt = now
	dept.UpdatedAt = now
	clone := *dept
	r.store.departments[dept.ID] = &clone
	return nil
}

func (r *memDepartmentRepo) Update(_ context.Context, dept *domain.Department) error {
	existing, ok := r.store.departments[dept.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	dept.CreatedAt = existing.CreatedAt
	dept.UpdatedAt = time.Now().UTC()
	clone := *dept
	r.store.departments[dept.ID] = &clone
	return nil
}

func (r *memDepartmentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.store.departments[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.store.departments, id)
	return nil
}

func (r *memDepartmentRepo) EmployeeCount(_ context.Context, id int64) (int64, error) {
	var count int64
	for _, emp := range r.store.employees {
		if emp.DepartmentID != nil && *emp.DepartmentID == id {
			count++
		}
	}
	return count, nil
}

type memAttendanceRepo struct{ store *memStore }

func attendanceKey(employeeID int64, date time.Time) string {
	return fmt.Sprintf("%d|%s", employeeID, date.Format("2006-01-02"))
}

func (r *memAttendanceRepo) ListWithFilter(_ context.Context, filter repository.AttendanceFilter) ([]domain.Attendance, error) {
	var result []domain.Attendance
	for _, rec := range r.store.attendance {
		if filter.EmployeeID != nil && rec.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Date != nil && rec.Date.Format("2006-01-02") != *filter.Date {
			continue
		}
		clone := *rec
		if emp, ok := r.store.employees[rec.EmployeeID]; ok {
			clone.FirstName = emp.FirstName
			clone.LastName = emp.LastName
			clone.Email = emp.Email
			clone.DepartmentName = r.store.departmentName(emp.DepartmentID)
		}
		result = append(result, clone)
	}
	return result, nil
}

func (r *memAttendanceRepo) Upsert(_ context.Context, record *domain.Attendance) error {
	if _, ok := r.store.employees[record.EmployeeID]; !ok {
		return &pgconn.PgError{Code: "23503"}
	}
	key := attendanceKey(record.EmployeeID, record.Date)
	if existing, ok := r.store.attendance[key]; ok {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
	} else {
		record.ID = r.store.nextAttendanceID
		r.store.nextAttendanceID++
		record.CreatedAt = time.Now().UTC()
	}
	clone := *record
	r.store.attendance[key] = &clone
	return nil
}

func (r *memAttendanceRepo) Summary(_ context.Context, _ repository.SummaryFilter) ([]domain.AttendanceSummaryRow, error) {
	var rows []domain.AttendanceSummaryRow
	for _, emp := range r.store.employees {
		if emp.Status != domain.EmployeeStatusActive {
			continue
		}
		row := domain.AttendanceSummaryRow{
			EmployeeID:     emp.ID,
			FirstName:      emp.FirstName,
			LastName:       emp.LastName,
			DepartmentName: r.store.departmentName(emp.DepartmentID),
		}
		for _, rec := range r.store.attendance {
			if rec.EmployeeID != emp.ID {
				continue
			}
			row.TotalDays++
			switch rec.Status {
			case domain.AttendanceStatusPresent:
				row.PresentDays++
			case domain.AttendanceStatusAbsent:
				row.AbsentDays++
			case domain.AttendanceStatusLate:
				row.LateDays++
			case domain.AttendanceStatusHalfDay:
				row.HalfDays++
			case domain.AttendanceStatusLeave:
				row.LeaveDays++
			}
			if rec.HoursWorked != nil {
				row.TotalHours += *rec.HoursWorked
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (r *memAttendanceRepo) ListByEmployee(_ context.Context, employeeID int64, _, _ *string) ([]domain.Attendance, error) {
	filter := repository.AttendanceFilter{EmployeeID: &employeeID}
	return r.ListWithFilter(nil, filter)
}

func newTestApp(t *testing.T) (*fiber.App, *memStore, *observability.Metrics) {
	t.Helper()

	store := newMemStore()
	employeeSvc := service.NewEmployeeService(service.EmployeeDependencies{
		EmployeeRepo: &memEmployeeRepo{store: store},
	})
	departmentSvc := service.NewDepartmentService(service.DepartmentDependencies{
		DepartmentRepo: &memDepartmentRepo{store: store},
	})
	attendanceSvc := service.NewAttendanceService(service.AttendanceDependencies{
		AttendanceRepo: &memAttendanceRepo{store: store},
	})

	app := fiber.New()
	metrics := observability.NewMetrics()
	apihttp.RegisterMiddlewares(app, zap.NewNop(), metrics, apihttp.MiddlewareConfig{
		CORS: config.CORSConfig{AllowOrigins: "*"},
	})
	apihttp.RegisterRoutes(app, apihttp.RouteConfig{
		Health:      handlers.NewHealthHandler("employee-management", "test", nil, nil),
		Employees:   handlers.NewEmployeesHandler(employeeSvc),
		Departments: handlers.NewDepartmentsHandler(departmentSvc),
		Attendance:  handlers.NewAttendanceHandler(attendanceSvc),
	})
	return app, store, metrics
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var envelope map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

func TestHealthEndpoint(t *testing.T) {
	app, _, metrics := newTestApp(t)

	resp, envelope := doJSON(t, app, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, envelope["success"])
	assert.Equal(t, "Employee Management API is running!", envelope["message"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.Equal(t, int64(1), metrics.RequestTotal("/api/health", http.MethodGet, http.StatusOK))
}

func TestUnknownRouteReturnsEnvelope(t *testing.T) {
	app, _, metrics := newTestApp(t)

	resp, envelope := doJSON(t, app, http.MethodGet, "/api/unknown", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, envelope["success"])
	assert.Equal(t, "Route /api/unknown not found", envelope["error"])

	// failed requests are counted under their real status, not 200
	assert.Equal(t, int64(1), metrics.RequestTotal("/api/unknown", http.MethodGet, http.StatusNotFound))
	assert.Equal(t, int64(0), metrics.RequestTotal("/api/unknown", http.MethodGet, http.StatusOK))
}

func TestEmployeeLifecycle(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, envelope := doJSON(t, app, http.MethodPost, "/api/departments", map[string]any{
		"name": "Engineering",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	deptID := envelope["data"].(map[string]any)["id"].(float64)

	// status omitted on purpose: the row must come back active
	resp, envelope = doJSON(t, app, http.MethodPost, "/api/employees", map[string]any{
		"first_name":    "Ada",
		"last_name":     "Lovelace",
		"email":         "ada@example.com",
		"hire_date":     "2024-06-01",
		"job_title":     "Engineer",
		"department_id": deptID,
		"salary":        95000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Employee created successfully", envelope["message"])
	created := envelope["data"].(map[string]any)
	assert.Equal(t, "active", created["status"])
	employeeID := created["id"].(float64)

	resp, envelope = doJSON(t, app, http.MethodGet, "/api/employees", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), envelope["count"])
	listed := envelope["data"].([]any)[0].(map[string]any)
	assert.Equal(t, "Engineering", listed["department_name"])

	resp, envelope = doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/employees/%.0f", employeeID), map[string]any{
		"salary": 105000,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	patched := envelope["data"].(map[string]any)
	assert.Equal(t, float64(105000), patched["salary"])
	assert.Equal(t, "Ada", patched["first_name"])

	resp, envelope = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/employees/%.0f", employeeID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Employee deleted successfully", envelope["message"])

	resp, envelope = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/employees/%.0f", employeeID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Employee not found", envelope["error"])
}

func TestCreateEmployeeDuplicateEmail(t *testing.T) {
	app, _, metrics := newTestApp(t)

	payload := map[string]any{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "ada@example.com",
		"hire_date":  "2024-06-01",
		"job_title":  "Engineer",
		"salary":     95000,
	}
	resp, _ := doJSON(t, app, http.MethodPost, "/api/employees", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, envelope := doJSON(t, app, http.MethodPost, "/api/employees", payload)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email already exists", envelope["error"])

	// the error envelope's status is what gets counted
	assert.Equal(t, int64(1), metrics.RequestTotal("/api/employees", http.MethodPost, http.StatusBadRequest))
	assert.Equal(t, int64(1), metrics.RequestTotal("/api/employees", http.MethodPost, http.StatusCreated))
}

func TestReplaceEmployeeRequiresStatus(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, envelope := doJSON(t, app, http.MethodPost, "/api/employees", map[string]any{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "ada@example.com",
		"hire_date":  "2024-06-01",
		"job_title":  "Engineer",
		"salary":     95000,
		"status":     "on_leave",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	employeeID := envelope["data"].(map[string]any)["id"].(float64)

	// status omitted: the full replace must refuse rather than default
	resp, envelope = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/employees/%.0f", employeeID), map[string]any{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "ada@example.com",
		"hire_date":  "2024-06-01",
		"job_title":  "Engineer",
		"salary":     99000,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Required fields are missing", envelope["error"])
	assert.Contains(t, envelope["details"].(map[string]any), "status")

	resp, envelope = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/employees/%.0f", employeeID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "on_leave", envelope["data"].(map[string]any)["status"])

	// the same payload with status spelled out goes through
	resp, envelope = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/employees/%.0f", employeeID), map[string]any{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "ada@example.com",
		"hire_date":  "2024-06-01",
		"job_title":  "Engineer",
		"salary":     99000,
		"status":     "on_leave",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "on_leave", envelope["data"].(map[string]any)["status"])
	assert.Equal(t, float64(99000), envelope["data"].(map[string]any)["salary"])
}

func TestCreateEmployeeMissingFields(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, envelope := doJSON(t, app, http.MethodPost, "/api/employees", map[string]any{
		"email": "ada@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Required fields are missing", envelope["error"])

	details := envelope["details"].(map[string]any)
	assert.Contains(t, details, "first_name")
	assert.Contains(t, details, "salary")
}

func TestCreateEmployeeUnknownDepartment(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, envelope := doJSON(t, app, http.MethodPost, "/api/employees", map[string]any{
		"first_name":    "Ada",
		"last_name":     "Lovelace",
		"email":         "ada@example.com",
		"hire_date":     "2024-06-01",
		"job_title":     "Engineer",
		"department_id": 99,
		"salary":        95000,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid department selected", envelope["error"])
}

func TestInvalidIDParameter(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, envelope := doJSON(t, app, http.MethodGet, "/api/employees/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid id parameter", envelope["error"])
}

func TestDeleteDepartmentWithEmployeesBlocked(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, envelope := doJSON(t, app, http.MethodPost, "/api/departments", map[string]any{"name": "Engineering"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	deptID := envelope["data"].(map[string]any)["id"].(float64)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/employees", map[string]any{
		"first_name":    "Ada",
		"last_name":     "Lovelace",
		"email":         "ada@example.com",
		"hire_date":     "2024-06-01",
		"job_title":     "Engineer",
		"department_id": deptID,
		"salary":        95000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, envelope = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/departments/%.0f", deptID), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Cannot delete department with assigned employees", envelope["error"])

	// still listed
	resp, envelope = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/departments/%.0f", deptID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Engineering", envelope["data"].(map[string]any)["name"])
}

func TestMarkAttendanceTwiceKeepsOneRow(t *testing.T) {
	app, store, _ := newTestApp(t)

	resp, envelope := doJSON(t, app, http.MethodPost, "/api/employees", map[string]any{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "ada@example.com",
		"hire_date":  "2024-06-01",
		"job_title":  "Engineer",
		"salary":     95000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	employeeID := envelope["data"].(map[string]any)["id"].(float64)

	resp, envelope = doJSON(t, app, http.MethodPost, "/api/attendance/mark", map[string]any{
		"employee_id": employeeID,
		"date":        "2025-03-10",
		"check_in":    "09:00",
		"check_out":   "17:00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	first := envelope["data"].(map[string]any)
	assert.Equal(t, "present", first["status"])

	resp, envelope = doJSON(t, app, http.MethodPost, "/api/attendance/mark", map[string]any{
		"employee_id": employeeID,
		"date":        "2025-03-10",
		"check_in":    "10:00",
		"check_out":   "18:30",
		"status":      "late",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	second := envelope["data"].(map[string]any)

	assert.Equal(t, first["id"], second["id"])
	assert.Equal(t, "late", second["status"])
	assert.Equal(t, 8.5, second["hours_worked"])
	assert.Len(t, store.attendance, 1)
}

func TestAttendanceSummaryRequiresRange(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, envelope := doJSON(t, app, http.MethodGet, "/api/attendance/summary?start_date=2025-03-01", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Start date and end date are required", envelope["error"])
}

func TestAttendanceSummaryExport(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/employees", map[string]any{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "ada@example.com",
		"hire_date":  "2024-06-01",
		"job_title":  "Engineer",
		"salary":     95000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/attendance/summary/export?start_date=2025-03-01&end_date=2025-03-31", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "attendance-summary-2025-03-01-2025-03-31.xlsx")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotEmpty(t, body)
}
