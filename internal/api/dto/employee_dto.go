package dto

import (
	"time"

	"github.com/spec-kit/employee-management/internal/domain"
)

// CreateEmployeeRequest payload. Status may be omitted; new rows default
// to active.
type CreateEmployeeRequest struct {
	FirstName    string   `json:"first_name" validate:"required"`
	LastName     string   `json:"last_name" validate:"required"`
	Email        string   `json:"email" validate:"required,email"`
	Phone        *string  `json:"phone"`
	HireDate     string   `json:"hire_date" validate:"required"`
	JobTitle     string   `json:"job_title" validate:"required"`
	DepartmentID *int64   `json:"department_id"`
	Salary       *float64 `json:"salary" validate:"required"`
	Status       *string  `json:"status" validate:"omitempty,oneof=active inactive on_leave"`
	Address      *string  `json:"address"`
	City         *string  `json:"city"`
	State        *string  `json:"state"`
	PostalCode   *string  `json:"postal_code"`
	Country      *string  `json:"country"`
}

// ReplaceEmployeeRequest is the full-replace payload. Every column is
// written from it, so status is required here: omitting it must not quietly
// flip an inactive or on-leave employee back to active.
type ReplaceEmployeeRequest struct {
	FirstName    string   `json:"first_name" validate:"required"`
	LastName     string   `json:"last_name" validate:"required"`
	Email        string   `json:"email" validate:"required,email"`
	Phone        *string  `json:"phone"`
	HireDate     string   `json:"hire_date" validate:"required"`
	JobTitle     string   `json:"job_title" validate:"required"`
	DepartmentID *int64   `json:"department_id"`
	Salary       *float64 `json:"salary" validate:"required"`
	Status       string   `json:"status" validate:"required,oneof=active inactive on_leave"`
	Address      *string  `json:"address"`
	City         *string  `json:"city"`
	State        *string  `json:"state"`
	PostalCode   *string  `json:"postal_code"`
	Country      *string  `json:"country"`
}

// UpdateEmployeeRequest is the partial-update payload: only fields present
// and non-null are written.
type UpdateEmployeeRequest struct {
	FirstName    *string  `json:"first_name"`
	LastName     *string  `json:"last_name"`
	Email        *string  `json:"email" validate:"omitempty,email"`
	Phone        *string  `json:"phone"`
	HireDate     *string  `json:"hire_date"`
	JobTitle     *string  `json:"job_title"`
	DepartmentID *int64   `json:"department_id"`
	Salary       *float64 `json:"salary"`
	Status       *string  `json:"status" validate:"omitempty,oneof=active inactive on_leave"`
	Address      *string  `json:"address"`
	City         *string  `json:"city"`
	State        *string  `json:"state"`
	PostalCode   *string  `json:"postal_code"`
	Country      *string  `json:"country"`
}

// EmployeeResponse is the employee row as the API exposes it.
type EmployeeResponse struct {
	ID             int64     `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Phone          *string   `json:"phone"`
	HireDate       string    `json:"hire_date"`
	JobTitle       string    `json:"job_title"`
	DepartmentID   *int64    `json:"department_id"`
	DepartmentName *string   `json:"department_name,omitempty"`
	Salary         float64   `json:"salary"`
	Status         string    `json:"status"`
	Address        *string   `json:"address"`
	City           *string   `json:"city"`
	State          *string   `json:"state"`
	PostalCode     *string   `json:"postal_code"`
	Country        *string   `json:"country"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewEmployeeResponse maps the domain entity to its API shape.
func NewEmployeeResponse(emp *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             emp.ID,
		FirstName:      emp.FirstName,
		LastName:       emp.LastName,
		Email:          emp.Email,
		Phone:          emp.Phone,
		HireDate:       emp.HireDate.Format("2006-01-02"),
		JobTitle:       emp.JobTitle,
		DepartmentID:   emp.DepartmentID,
		DepartmentName: emp.DepartmentName,
		Salary:         emp.Salary,
		Status:         string(emp.Status),
		Address:        emp.Address,
		City:           emp.City,
		State:          emp.State,
		PostalCode:     emp.PostalCode,
		Country:        emp.Country,
		CreatedAt:      emp.CreatedAt,
		UpdatedAt:      emp.UpdatedAt,
	}
}

// EmployeeStatsResponse is the server-computed dashboard aggregate.
type EmployeeStatsResponse struct {
	TotalEmployees int64                         `json:"total_employees"`
	ActiveCount    int64                         `json:"active_count"`
	InactiveCount  int64                         `json:"inactive_count"`
	OnLeaveCount   int64                         `json:"on_leave_count"`
	SalaryMin      float64                       `json:"salary_min"`
	SalaryMax      float64                       `json:"salary_max"`
	SalaryAvg      float64                       `json:"salary_avg"`
	ByDepartment   []DepartmentHeadcountResponse `json:"by_department"`
}

// DepartmentHeadcountResponse is one per-department slice of the stats.
type DepartmentHeadcountResponse struct {
	DepartmentID   *int64  `json:"department_id"`
	DepartmentName *string `json:"department_name"`
	Count          int64   `json:"count"`
}

// NewEmployeeStatsResponse maps the aggregate to its API shape.
func NewEmployeeStatsResponse(stats *domain.EmployeeStats) EmployeeStatsResponse {
	byDept := make([]DepartmentHeadcountResponse, 0, len(stats.ByDepartment))
	for _, slice := range stats.ByDepartment {
		byDept = append(byDept, DepartmentHeadcountResponse{
			DepartmentID:   slice.DepartmentID,
			DepartmentName: slice.DepartmentName,
			Count:          slice.Count,
		})
	}
	return EmployeeStatsResponse{
		TotalEmployees: stats.TotalEmployees,
		ActiveCount:    stats.ActiveCount,
		InactiveCount:  stats.InactiveCount,
		OnLeaveCount:   stats.OnLeaveCount,
		SalaryMin:      stats.SalaryMin,
		SalaryMax:      stats.SalaryMax,
		SalaryAvg:      stats.SalaryAvg,
		ByDepartment:   byDept,
	}
}
