package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/employee-management/internal/domain"
)

// DepartmentRepository manages department persistence.
type DepartmentRepository interface {
	List(ctx context.Context) ([]domain.Department, error)
	GetByID(ctx context.Context, id int64) (*domain.Department, error)
	Create(ctx context.Context, dept *domain.Department) error
	Update(ctx context.Context, dept *domain.Department) error
	Delete(ctx context.Context, id int64) error
	EmployeeCount(ctx context.Context, id int64) (int64, error)
}

type departmentRepository struct {
	pool *pgxpool.Pool
}

// NewDepartmentRepository builds the repository.
func NewDepartmentRepository(pool *pgxpool.Pool) DepartmentRepository {
	return &departmentRepository{pool: pool}
}

const departmentJoinedQuery = `
        SELECT d.id, d.name, d.description, d.location, d.manager_id,
               d.created_at, d.updated_at,
               COUNT(e.id) AS employee_count,
               m.first_name AS manager_first_name,
               m.last_name AS manager_last_name
        FROM departments d
        LEFT JOIN employees e ON d.id = e.department_id
        LEFT JOIN employees m ON d.manager_id = m.id`

func (r *departmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	query := departmentJoinedQuery + `
        GROUP BY d.id, m.first_name, m.last_name
        ORDER BY d.name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Department
	for rows.Next() {
		var dept domain.Department
		if err := scanDepartmentJoined(rows, &dept); err != nil {
			return nil, err
		}
		result = append(result, dept)
	}
	return result, rows.Err()
}

func (r *departmentRepository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	query := departmentJoinedQuery + `
        WHERE d.id = $1
        GROUP BY d.id, m.first_name, m.last_name`
	var dept domain.Department
	if err := scanDepartmentJoined(r.pool.QueryRow(ctx, query, id), &dept); err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	const query = `
        INSERT INTO departments (name, description, location, manager_id)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		dept.Name,
		dept.Description,
		dept.Location,
		dept.ManagerID,
	).Scan(&dept.ID, &dept.CreatedAt, &dept.UpdatedAt)
}

// Update is a full replace of name/description/location/manager_id.
func (r *departmentRepository) Update(ctx context.Context, dept *domain.Department) error {
	const query = `
        UPDATE departments
        SET name=$1, description=$2, location=$3, manager_id=$4, updated_at=CURRENT_TIMESTAMP
        WHERE id=$5
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		dept.Name,
		dept.Description,
		dept.Location,
		dept.ManagerID,
		dept.ID,
	).Scan(&dept.CreatedAt, &dept.UpdatedAt)
}

func (r *departmentRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *departmentRepository) EmployeeCount(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM employees WHERE department_id = $1`, id,
	).Scan(&count)
	return count, err
}

func scanDepartmentJoined(row pgx.Row, dept *domain.Department) error {
	return row.Scan(
		&dept.ID,
		&dept.Name,
		&dept.Description,
		&dept.Location,
		&dept.ManagerID,
		&dept.CreatedAt,
		&dept.UpdatedAt,
		&dept.EmployeeCount,
		&dept.ManagerFirstName,
		&dept.ManagerLastName,
	)
}
