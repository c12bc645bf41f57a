package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/employee-management/internal/domain"
)

// EmployeeUpdate carries the allow-listed fields of a partial update. Only
// non-nil fields are written; everything else keeps its prior value.
type EmployeeUpdate struct {
	FirstName    *string
	LastName     *string
	Email        *string
	Phone        *string
	HireDate     *time.Time
	JobTitle     *string
	DepartmentID *int64
	Salary       *float64
	Address      *string
	City         *string
	State        *string
	PostalCode   *string
	Country      *string
	Status       *domain.EmployeeStatus
}

// IsEmpty reports whether no field is set.
func (u EmployeeUpdate) IsEmpty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Email == nil &&
		u.Phone == nil && u.HireDate == nil && u.JobTitle == nil &&
		u.DepartmentID == nil && u.Salary == nil && u.Address == nil &&
		u.City == nil && u.State == nil && u.PostalCode == nil &&
		u.Country == nil && u.Status == nil
}

// EmployeeRepository encapsulates employee persistence.
type EmployeeRepository interface {
	List(ctx context.Context) ([]domain.Employee, error)
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	Create(ctx context.Context, emp *domain.Employee) error
	Replace(ctx context.Context, emp *domain.Employee) error
	UpdatePartial(ctx context.Context, id int64, update EmployeeUpdate) (*domain.Employee, error)
	Delete(ctx context.Context, id int64) (*domain.Employee, error)
	Stats(ctx context.Context) (*domain.EmployeeStats, error)
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository instantiates repository.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

const employeeColumns = `id, first_name, last_name, email, phone, hire_date, job_title,
               department_id, salary, status, address, city, state, postal_code, country,
               created_at, updated_at`

func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	const query = `
        SELECT e.id, e.first_name, e.last_name, e.email, e.phone, e.hire_date, e.job_title,
               e.department_id, e.salary, e.status, e.address, e.city, e.state, e.postal_code,
               e.country, e.created_at, e.updated_at, d.name AS department_name
        FROM employees e
        LEFT JOIN departments d ON e.department_id = d.id
        ORDER BY e.id DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Employee
	for rows.Next() {
		var emp domain.Employee
		if err := scanEmployeeJoined(rows, &emp); err != nil {
			return nil, err
		}
		result = append(result, emp)
	}
	return result, rows.Err()
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	const query = `
        SELECT e.id, e.first_name, e.last_name, e.email, e.phone, e.hire_date, e.job_title,
               e.department_id, e.salary, e.status, e.address, e.city, e.state, e.postal_code,
               e.country, e.created_at, e.updated_at, d.name AS department_name
        FROM employees e
        LEFT JOIN departments d ON e.department_id = d.id
        WHERE e.id = $1`
	var emp domain.Employee
	if err := scanEmployeeJoined(r.pool.QueryRow(ctx, query, id), &emp); err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	const query = `
        INSERT INTO employees
            (first_name, last_name, email, phone, hire_date, job_title,
             department_id, salary, status, address, city, state, postal_code, country)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING ` + employeeColumns
	return scanEmployee(r.pool.QueryRow(ctx, query,
		emp.FirstName,
		emp.LastName,
		emp.Email,
		emp.Phone,
		emp.HireDate,
		emp.JobTitle,
		emp.DepartmentID,
		emp.Salary,
		emp.Status,
		emp.Address,
		emp.City,
		emp.State,
		emp.PostalCode,
		emp.Country,
	), emp)
}

// Replace writes every column from emp, refreshing updated_at. Full-replace
// semantics: the caller must supply the complete record.
func (r *employeeRepository) Replace(ctx context.Context, emp *domain.Employee) error {
	const query = `
        UPDATE employees
        SET first_name=$1, last_name=$2, email=$3, phone=$4, hire_date=$5, job_title=$6,
            department_id=$7, salary=$8, status=$9, address=$10, city=$11, state=$12,
            postal_code=$13, country=$14, updated_at=CURRENT_TIMESTAMP
        WHERE id=$15
        RETURNING ` + employeeColumns
	return scanEmployee(r.pool.QueryRow(ctx, query,
		emp.FirstName,
		emp.LastName,
		emp.Email,
		emp.Phone,
		emp.HireDate,
		emp.JobTitle,
		emp.DepartmentID,
		emp.Salary,
		emp.Status,
		emp.Address,
		emp.City,
		emp.State,
		emp.PostalCode,
		emp.Country,
		emp.ID,
	), emp)
}

// UpdatePartial writes only the fields set on update, refreshing updated_at.
func (r *employeeRepository) UpdatePartial(ctx context.Context, id int64, update EmployeeUpdate) (*domain.Employee, error) {
	clauses, args := employeeUpdateClauses(update)
	if len(clauses) == 0 {
		return nil, pgx.ErrNoRows
	}
	clauses = append(clauses, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE employees SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(clauses, ", "), len(args), employeeColumns)

	var emp domain.Employee
	if err := scanEmployee(r.pool.QueryRow(ctx, query, args...), &emp); err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) (*domain.Employee, error) {
	query := `DELETE FROM employees WHERE id = $1 RETURNING ` + employeeColumns
	var emp domain.Employee
	if err := scanEmployee(r.pool.QueryRow(ctx, query, id), &emp); err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepository) Stats(ctx context.Context) (*domain.EmployeeStats, error) {
	const totalsQuery = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status = 'active'),
               COUNT(*) FILTER (WHERE status = 'inactive'),
               COUNT(*) FILTER (WHERE status = 'on_leave'),
               COALESCE(MIN(salary), 0),
               COALESCE(MAX(salary), 0),
               COALESCE(AVG(salary), 0)
        FROM employees`
	var stats domain.EmployeeStats
	if err := r.pool.QueryRow(ctx, totalsQuery).Scan(
		&stats.TotalEmployees,
		&stats.ActiveCount,
		&stats.InactiveCount,
		&stats.OnLeaveCount,
		&stats.SalaryMin,
		&stats.SalaryMax,
		&stats.SalaryAvg,
	); err != nil {
		return nil, err
	}

	const byDeptQuery = `
        SELECT e.department_id, d.name, COUNT(*)
        FROM employees e
        LEFT JOIN departments d ON e.department_id = d.id
        GROUP BY e.department_id, d.name
        ORDER BY COUNT(*) DESC, d.name`
	rows, err := r.pool.Query(ctx, byDeptQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var slice domain.DepartmentHeadcount
		if err := rows.Scan(&slice.DepartmentID, &slice.DepartmentName, &slice.Count); err != nil {
			return nil, err
		}
		stats.ByDepartment = append(stats.ByDepartment, slice)
	}
	return &stats, rows.Err()
}

// employeeUpdateClauses builds the SET clauses for the allow-listed fields
// actually present on the update.
func employeeUpdateClauses(update EmployeeUpdate) ([]string, []any) {
	var clauses []string
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.FirstName != nil {
		add("first_name", *update.FirstName)
	}
	if update.LastName != nil {
		add("last_name", *update.LastName)
	}
	if update.Email != nil {
		add("email", *update.Email)
	}
	if update.Phone != nil {
		add("phone", *update.Phone)
	}
	if update.HireDate != nil {
		add("hire_date", *update.HireDate)
	}
	if update.JobTitle != nil {
		add("job_title", *update.JobTitle)
	}
	if update.DepartmentID != nil {
		add("department_id", *update.DepartmentID)
	}
	if update.Salary != nil {
		add("salary", *update.Salary)
	}
	if update.Address != nil {
		add("address", *update.Address)
	}
	if update.City != nil {
		add("city", *update.City)
	}
	if update.State != nil {
		add("state", *update.State)
	}
	if update.PostalCode != nil {
		add("postal_code", *update.PostalCode)
	}
	if update.Country != nil {
		add("country", *update.Country)
	}
	if update.Status != nil {
		add("status", *update.Status)
	}
	return clauses, args
}

func scanEmployee(row pgx.Row, emp *domain.Employee) error {
	return row.Scan(
		&emp.ID,
		&emp.FirstName,
		&emp.LastName,
		&emp.Email,
		&emp.Phone,
		&emp.HireDate,
		&emp.JobTitle,
		&emp.DepartmentID,
		&emp.Salary,
		&emp.Status,
		&emp.Address,
		&emp.City,
		&emp.State,
		&emp.PostalCode,
		&emp.Country,
		&emp.CreatedAt,
		&emp.UpdatedAt,
	)
}

func scanEmployeeJoined(row pgx.Row, emp *domain.Employee) error {
	return row.Scan(
		&emp.ID,
		&emp.FirstName,
		&emp.LastName,
		&emp.Email,
		&emp.Phone,
		&emp.HireDate,
		&emp.JobTitle,
		&emp.DepartmentID,
		&emp.Salary,
		&emp.Status,
		&emp.Address,
		&emp.City,
		&emp.State,
		&emp.PostalCode,
		&emp.Country,
		&emp.CreatedAt,
		&emp.UpdatedAt,
		&emp.DepartmentName,
	)
}
