package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/employee-management/internal/domain"
	"github.com/spec-kit/employee-management/internal/events"
	"github.com/spec-kit/employee-management/internal/repository"
	apperrors "github.com/spec-kit/employee-management/pkg/util"
)

var employeePgMessages = apperrors.PgMessages{
	Unique:     "Email already exists",
	ForeignKey: "Invalid department selected",
	NotNull:    "Required fields are missing",
	Check:      "Invalid status value. Must be: active, inactive, or on_leave",
}

// EmployeeService coordinates employee workflows.
type EmployeeService struct {
	employees  repository.EmployeeRepository
	dispatcher events.Dispatcher
}

// EmployeeDependencies bundles collaborators for the employee service.
type EmployeeDependencies struct {
	EmployeeRepo repository.EmployeeRepository
	Dispatcher   events.Dispatcher
}

// EmployeeCreateInput describes employee creation payload. Status is
// optional and defaults to active.
type EmployeeCreateInput struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        *string
	HireDate     time.Time
	JobTitle     string
	DepartmentID *int64
	Salary       float64
	Status       *domain.EmployeeStatus
	Address      *string
	City         *string
	State        *string
	PostalCode   *string
	Country      *string
}

// NewEmployeeService constructs the service.
func NewEmployeeService(deps EmployeeDependencies) *EmployeeService {
	return &EmployeeService{
		employees:  deps.EmployeeRepo,
		dispatcher: deps.Dispatcher,
	}
}

// List returns every employee, newest id first.
func (s *EmployeeService) List(ctx context.Context) ([]domain.Employee, error) {
	list, err := s.employees.List(ctx)
	if err != nil {
		return nil, apperrors.FromPostgres(err, "Employee", employeePgMessages)
	}
	return list, nil
}

// Get returns one employee with its department name.
func (s *EmployeeService) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	emp, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.FromPostgres(err, "Employee", employeePgMessages)
	}
	return emp, nil
}

// Create persists a new employee and emits an employee_created event.
func (s *EmployeeService) Create(ctx context.Context, input EmployeeCreateInput) (*domain.Employee, error) {
	status := domain.EmployeeStatusActive
	if input.Status != nil {
		status = *input.Status
	}
	if !status.Valid() {
		return nil, apperrors.NewValidationError(employeePgMessages.Check, nil)
	}

	emp := &domain.Employee{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Phone:        input.Phone,
		HireDate:     input.HireDate,
		JobTitle:     input.JobTitle,
		DepartmentID: input.DepartmentID,
		Salary:       input.Salary,
		Status:       status,
		Address:      input.Address,
		City:         input.City,
		State:        input.State,
		PostalCode:   input.PostalCode,
		Country:      input.Country,
	}
	if err := s.employees.Create(ctx, emp); err != nil {
		return nil, apperrors.FromPostgres(err, "Employee", employeePgMessages)
	}

	s.publish(ctx, events.EventEmployeeCreated, events.EmployeeCreatedPayload{
		EmployeeID:   emp.ID,
		Email:        emp.Email,
		DepartmentID: emp.DepartmentID,
		Status:       emp.Status,
	})
	return emp, nil
}

// Replace writes the complete record; every column comes from input.
// Full-replace semantics: omitted optional fields are nulled, and status
// must be supplied explicitly. The create-time active default does not
// apply here, otherwise a PUT without status would silently reactivate an
// inactive or on-leave employee.
func (s *EmployeeService) Replace(ctx context.Context, id int64, input EmployeeCreateInput) (*domain.Employee, error) {
	if input.Status == nil {
		return nil, apperrors.NewValidationError("Status is required", nil)
	}
	status := *input.Status
	if !status.Valid() {
		return nil, apperrors.NewValidationError(employeePgMessages.Check, nil)
	}

	emp := &domain.Employee{
		ID:           id,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Phone:        input.Phone,
		HireDate:     input.HireDate,
		JobTitle:     input.JobTitle,
		DepartmentID: input.DepartmentID,
		Salary:       input.Salary,
		Status:       status,
		Address:      input.Address,
		City:         input.City,
		State:        input.State,
		PostalCode:   input.PostalCode,
		Country:      input.Country,
	}
	if err := s.employees.Replace(ctx, emp); err != nil {
		return nil, apperrors.FromPostgres(err, "Employee", employeePgMessages)
	}
	return emp, nil
}

// UpdatePartial applies the allow-list update: only fields present and
// non-null in the request are written, everything else keeps prior values.
func (s *EmployeeService) UpdatePartial(ctx context.Context, id int64, update repository.EmployeeUpdate) (*domain.Employee, error) {
	if update.IsEmpty() {
		return nil, apperrors.NewValidationError("No valid fields to update", nil)
	}
	if update.Status != nil && !update.Status.Valid() {
		return nil, apperrors.NewValidationError(employeePgMessages.Check, nil)
	}
	emp, err := s.employees.UpdatePartial(ctx, id, update)
	if err != nil {
		return nil, apperrors.FromPostgres(err, "Employee", employeePgMessages)
	}
	return emp, nil
}

// Delete removes the employee and returns the deleted row. Attendance rows
// referencing it are removed by the schema's cascade.
func (s *EmployeeService) Delete(ctx context.Context, id int64) (*domain.Employee, error) {
	emp, err := s.employees.Delete(ctx, id)
	if err != nil {
		return nil, apperrors.FromPostgres(err, "Employee", employeePgMessages)
	}

	s.publish(ctx, events.EventEmployeeDeleted, events.EmployeeDeletedPayload{
		EmployeeID: emp.ID,
		Email:      emp.Email,
	})
	return emp, nil
}

// Stats returns the server-computed dashboard aggregates.
func (s *EmployeeService) Stats(ctx context.Context) (*domain.EmployeeStats, error) {
	stats, err := s.employees.Stats(ctx)
	if err != nil {
		return nil, apperrors.FromPostgres(err, "Employee", employeePgMessages)
	}
	return stats, nil
}

func (s *EmployeeService) publish(ctx context.Context, eventType events.EventType, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, newEvent(eventType, payload))
}

func newEvent(eventType events.EventType, payload any) events.Event {
	return events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}
