package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/employee-management/internal/domain"
)

// AttendanceFilter narrows the attendance listing; present filters are
// AND-combined.
type AttendanceFilter struct {
	Date         *string
	EmployeeID   *int64
	DepartmentID *int64
}

// SummaryFilter bounds the attendance summary aggregation.
type SummaryFilter struct {
	StartDate    string
	EndDate      string
	DepartmentID *int64
}

// AttendanceRepository encapsulates attendance persistence.
type AttendanceRepository interface {
	ListWithFilter(ctx context.Context, filter AttendanceFilter) ([]domain.Attendance, error)
	Upsert(ctx context.Context, record *domain.Attendance) error
	Summary(ctx context.Context, filter SummaryFilter) ([]domain.AttendanceSummaryRow, error)
	ListByEmployee(ctx context.Context, employeeID int64, startDate, endDate *string) ([]domain.Attendance, error)
}

type attendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository instantiates repository.
func NewAttendanceRepository(pool *pgxpool.Pool) AttendanceRepository {
	return &attendanceRepository{pool: pool}
}

func (r *attendanceRepository) ListWithFilter(ctx context.Context, filter AttendanceFilter) ([]domain.Attendance, error) {
	where, args := attendanceFilterClauses(filter)
	query := fmt.Sprintf(`
        SELECT a.id, a.employee_id, a.date, a.check_in::text, a.check_out::text,
               a.hours_worked, a.status, a.notes, a.created_at,
               e.first_name, e.last_name, e.email, d.name AS department_name
        FROM attendance a
        JOIN employees e ON a.employee_id = e.id
        LEFT JOIN departments d ON e.department_id = d.id
        WHERE %s
        ORDER BY a.date DESC, e.first_name, e.last_name`, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Attendance
	for rows.Next() {
		var rec domain.Attendance
		if err := rows.Scan(
			&rec.ID,
			&rec.EmployeeID,
			&rec.Date,
			&rec.CheckIn,
			&rec.CheckOut,
			&rec.HoursWorked,
			&rec.Status,
			&rec.Notes,
			&rec.CreatedAt,
			&rec.FirstName,
			&rec.LastName,
			&rec.Email,
			&rec.DepartmentName,
		); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// Upsert inserts or overwrites the row keyed on (employee_id, date). The
// conflict branch never produces a duplicate; either way the resulting row
// is returned.
func (r *attendanceRepository) Upsert(ctx context.Context, record *domain.Attendance) error {
	const query = `
        INSERT INTO attendance (employee_id, date, check_in, check_out, hours_worked, status, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        ON CONFLICT (employee_id, date)
        DO UPDATE SET
            check_in = EXCLUDED.check_in,
            check_out = EXCLUDED.check_out,
            hours_worked = EXCLUDED.hours_worked,
            status = EXCLUDED.status,
            notes = EXCLUDED.notes
        RETURNING id, employee_id, date, check_in::text, check_out::text,
                  hours_worked, status, notes, created_at`
	return r.pool.QueryRow(ctx, query,
		record.EmployeeID,
		record.Date,
		record.CheckIn,
		record.CheckOut,
		record.HoursWorked,
		record.Status,
		record.Notes,
	).Scan(
		&record.ID,
		&record.EmployeeID,
		&record.Date,
		&record.CheckIn,
		&record.CheckOut,
		&record.HoursWorked,
		&record.Status,
		&record.Notes,
		&record.CreatedAt,
	)
}

// Summary aggregates per active employee over the range. The left join keeps
// employees with zero rows in range, reporting zero counts and zero hours.
func (r *attendanceRepository) Summary(ctx context.Context, filter SummaryFilter) ([]domain.AttendanceSummaryRow, error) {
	query := `
        SELECT e.id AS employee_id,
               e.first_name,
               e.last_name,
               d.name AS department_name,
               COUNT(a.id) AS total_days,
               COUNT(CASE WHEN a.status = 'present' THEN 1 END) AS present_days,
               COUNT(CASE WHEN a.status = 'absent' THEN 1 END) AS absent_days,
               COUNT(CASE WHEN a.status = 'late' THEN 1 END) AS late_days,
               COUNT(CASE WHEN a.status = 'half_day' THEN 1 END) AS half_days,
               COUNT(CASE WHEN a.status = 'leave' THEN 1 END) AS leave_days,
               COALESCE(SUM(a.hours_worked), 0) AS total_hours
        FROM employees e
        LEFT JOIN departments d ON e.department_id = d.id
        LEFT JOIN attendance a ON e.id = a.employee_id AND a.date BETWEEN $1 AND $2
        WHERE e.status = 'active'`
	args := []any{filter.StartDate, filter.EndDate}

	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		query += fmt.Sprintf(" AND e.department_id = $%d", len(args))
	}

	query += `
        GROUP BY e.id, e.first_name, e.last_name, d.name
        ORDER BY d.name, e.first_name, e.last_name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AttendanceSummaryRow
	for rows.Next() {
		var row domain.AttendanceSummaryRow
		if err := rows.Scan(
			&row.EmployeeID,
			&row.FirstName,
			&row.LastName,
			&row.DepartmentName,
			&row.TotalDays,
			&row.PresentDays,
			&row.AbsentDays,
			&row.LateDays,
			&row.HalfDays,
			&row.LeaveDays,
			&row.TotalHours,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID int64, startDate, endDate *string) ([]domain.Attendance, error) {
	query := `
        SELECT a.id, a.employee_id, a.date, a.check_in::text, a.check_out::text,
               a.hours_worked, a.status, a.notes, a.created_at,
               e.first_name, e.last_name
        FROM attendance a
        JOIN employees e ON a.employee_id = e.id
        WHERE a.employee_id = $1`
	args := []any{employeeID}

	if startDate != nil && endDate != nil {
		args = append(args, *startDate, *endDate)
		query += fmt.Sprintf(" AND a.date BETWEEN $%d AND $%d", len(args)-1, len(args))
	}

	query += " ORDER BY a.date DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Attendance
	for rows.Next() {
		var rec domain.Attendance
		if err := rows.Scan(
			&rec.ID,
			&rec.EmployeeID,
			&rec.Date,
			&rec.CheckIn,
			&rec.CheckOut,
			&rec.HoursWorked,
			&rec.Status,
			&rec.Notes,
			&rec.CreatedAt,
			&rec.FirstName,
			&rec.LastName,
		); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// attendanceFilterClauses builds the AND-combined predicates for the
// listing filters.
func attendanceFilterClauses(filter AttendanceFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Date != nil {
		args = append(args, *filter.Date)
		clauses = append(clauses, fmt.Sprintf("a.date = $%d", len(args)))
	}
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		clauses = append(clauses, fmt.Sprintf("a.employee_id = $%d", len(args)))
	}
	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		clauses = append(clauses, fmt.Sprintf("e.department_id = $%d", len(args)))
	}
	return strings.Join(clauses, " AND "), args
}
