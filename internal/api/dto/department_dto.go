package dto

import (
	"time"

	"github.com/spec-kit/employee-management/internal/domain"
)

// DepartmentRequest payload for create and full-replace update.
type DepartmentRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	ManagerID   *int64  `json:"manager_id"`
}

// DepartmentResponse includes the derived employee count and manager name.
type DepartmentResponse struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Description      *string   `json:"description"`
	Location         *string   `json:"location"`
	ManagerID        *int64    `json:"manager_id"`
	EmployeeCount    int64     `json:"employee_count"`
	ManagerFirstName *string   `json:"manager_first_name"`
	ManagerLastName  *string   `json:"manager_last_name"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewDepartmentResponse maps the domain entity to its API shape.
func NewDepartmentResponse(dept *domain.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:               dept.ID,
		Name:             dept.Name,
		Description:      dept.Description,
		Location:         dept.Location,
		ManagerID:        dept.ManagerID,
		EmployeeCount:    dept.EmployeeCount,
		ManagerFirstName: dept.ManagerFirstName,
		ManagerLastName:  dept.ManagerLastName,
		CreatedAt:        dept.CreatedAt,
		UpdatedAt:        dept.UpdatedAt,
	}
}
