package service

import (
	"context"
	"strings"

	"github.com/spec-kit/employee-management/internal/domain"
	"github.com/spec-kit/employee-management/internal/events"
	"github.com/spec-kit/employee-management/internal/repository"
	apperrors "github.com/spec-kit/employee-management/pkg/util"
)

var departmentPgMessages = apperrors.PgMessages{
	Unique:     "Department name already exists",
	ForeignKey: "Invalid manager selected",
}

// DepartmentService coordinates department workflows.
type DepartmentService struct {
	departments repository.DepartmentRepository
	dispatcher  events.Dispatcher
}

// DepartmentDependencies bundles collaborators for the department service.
type DepartmentDependencies struct {
	DepartmentRepo repository.DepartmentRepository
	Dispatcher     events.Dispatcher
}

// DepartmentInput describes create/update payloads.
type DepartmentInput struct {
	Name        string
	Description *string
	Location    *string
	ManagerID   *int64
}

// NewDepartmentService constructs the service.
func NewDepartmentService(deps DepartmentDependencies) *DepartmentService {
	return &DepartmentService{
		departments: deps.DepartmentRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// List returns all departments with employee counts and manager names,
// ordered by name.
func (s *DepartmentService) List(ctx context.Context) ([]domain.Department, error) {
	list, err := s.departments.List(ctx)
	if err != nil {
		return nil, apperrors.FromPostgres(err, "Department", departmentPgMessages)
	}
	return list, nil
}

// Get returns one department in the same shape as List.
func (s *DepartmentService) Get(ctx context.Context, id int64) (*domain.Department, error) {
	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.FromPostgres(err, "Department", departmentPgMessages)
	}
	return dept, nil
}

// Create persists a new department; name must be non-empty.
func (s *DepartmentService) Create(ctx context.Context, input DepartmentInput) (*domain.Department, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("Department name is required", nil)
	}

	dept := &domain.Department{
		Name:        input.Name,
		Description: input.Description,
		Location:    input.Location,
		ManagerID:   input.ManagerID,
	}
	if err := s.departments.Create(ctx, dept); err != nil {
		return nil, apperrors.FromPostgres(err, "Department", departmentPgMessages)
	}
	return dept, nil
}

// Update is a full replace of name/description/location/manager_id.
func (s *DepartmentService) Update(ctx context.Context, id int64, input DepartmentInput) (*domain.Department, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("Department name is required", nil)
	}

	dept := &domain.Department{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		Location:    input.Location,
		ManagerID:   input.ManagerID,
	}
	if err := s.departments.Update(ctx, dept); err != nil {
		return nil, apperrors.FromPostgres(err, "Department", departmentPgMessages)
	}
	return dept, nil
}

// Delete removes a department. Deletion is blocked while any employee still
// references it; that is a validation failure, not a server error.
func (s *DepartmentService) Delete(ctx context.Context, id int64) error {
	count, err := s.departments.EmployeeCount(ctx, id)
	if err != nil {
		return apperrors.FromPostgres(err, "Department", departmentPgMessages)
	}
	if count > 0 {
		return apperrors.NewValidationError("Cannot delete department with assigned employees", nil)
	}

	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return apperrors.FromPostgres(err, "Department", departmentPgMessages)
	}
	if err := s.departments.Delete(ctx, id); err != nil {
		return apperrors.FromPostgres(err, "Department", departmentPgMessages)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, newEvent(events.EventDepartmentDeleted, events.DepartmentDeletedPayload{
			DepartmentID: dept.ID,
			Name:         dept.Name,
		}))
	}
	return nil
}
