package events

import (
	"time"

	"github.com/spec-kit/employee-management/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEmployeeCreated   EventType = "employee_created"
	EventEmployeeDeleted   EventType = "employee_deleted"
	EventDepartmentDeleted EventType = "department_deleted"
	EventAttendanceMarked  EventType = "attendance_marked"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// EmployeeCreatedPayload payload.
type EmployeeCreatedPayload struct {
	EmployeeID   int64                 `json:"employee_id"`
	Email        string                `json:"email"`
	DepartmentID *int64                `json:"department_id,omitempty"`
	Status       domain.EmployeeStatus `json:"status"`
}

// EmployeeDeletedPayload payload.
type EmployeeDeletedPayload struct {
	EmployeeID int64  `json:"employee_id"`
	Email      string `json:"email"`
}

// DepartmentDeletedPayload payload.
type DepartmentDeletedPayload struct {
	DepartmentID int64  `json:"department_id"`
	Name         string `json:"name"`
}

// AttendanceMarkedPayload payload.
type AttendanceMarkedPayload struct {
	EmployeeID  int64                   `json:"employee_id"`
	Date        string                  `json:"date"`
	Status      domain.AttendanceStatus `json:"status"`
	HoursWorked *float64                `json:"hours_worked,omitempty"`
}
