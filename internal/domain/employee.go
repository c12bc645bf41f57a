package domain

import "time"

// EmployeeStatus enumerates employment states.
type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "active"
	EmployeeStatusInactive EmployeeStatus = "inactive"
	EmployeeStatusOnLeave  EmployeeStatus = "on_leave"
)

// Valid reports whether the status is one of the enumerated values.
func (s EmployeeStatus) Valid() bool {
	switch s {
	case EmployeeStatusActive, EmployeeStatusInactive, EmployeeStatusOnLeave:
		return true
	}
	return false
}

// Employee is the aggregate for a staff record.
type Employee struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	Phone        *string
	HireDate     time.Time
	JobTitle     string
	DepartmentID *int64
	Salary       float64
	Status       EmployeeStatus
	Address      *string
	City         *string
	State        *string
	PostalCode   *string
	Country      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DepartmentName is populated by the list/get joins, never stored.
	DepartmentName *string
}

// EmployeeStats aggregates headcount and salary figures for the dashboard.
type EmployeeStats struct {
	TotalEmployees int64
	ActiveCount    int64
	InactiveCount  int64
	OnLeaveCount   int64
	SalaryMin      float64
	SalaryMax      float64
	SalaryAvg      float64
	ByDepartment   []DepartmentHeadcount
}

// DepartmentHeadcount is one slice of the per-department breakdown.
type DepartmentHeadcount struct {
	DepartmentID   *int64
	DepartmentName *string
	Count          int64
}
