package domain

import "time"

// Department represents an organizational unit.
type Department struct {
	ID          int64
	Name        string
	Description *string
	Location    *string
	ManagerID   *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Derived at read time via join/aggregation.
	EmployeeCount    int64
	ManagerFirstName *string
	ManagerLastName  *string
}
