package dto

import (
	"time"

	"github.com/spec-kit/employee-management/internal/domain"
)

// MarkAttendanceRequest payload for the (employee_id, date) upsert.
type MarkAttendanceRequest struct {
	EmployeeID *int64  `json:"employee_id" validate:"required"`
	Date       string  `json:"date" validate:"required"`
	CheckIn    *string `json:"check_in"`
	CheckOut   *string `json:"check_out"`
	Status     *string `json:"status" validate:"omitempty,oneof=present absent late half_day leave"`
	Notes      *string `json:"notes"`
}

// AttendanceResponse is one employee-day row with joined names.
type AttendanceResponse struct {
	ID             int64     `json:"id"`
	EmployeeID     int64     `json:"employee_id"`
	Date           string    `json:"date"`
	CheckIn        *string   `json:"check_in"`
	CheckOut       *string   `json:"check_out"`
	HoursWorked    *float64  `json:"hours_worked"`
	Status         string    `json:"status"`
	Notes          *string   `json:"notes"`
	FirstName      string    `json:"first_name,omitempty"`
	LastName       string    `json:"last_name,omitempty"`
	Email          string    `json:"email,omitempty"`
	DepartmentName *string   `json:"department_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewAttendanceResponse maps the domain entity to its API shape.
func NewAttendanceResponse(rec *domain.Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:             rec.ID,
		EmployeeID:     rec.EmployeeID,
		Date:           rec.Date.Format("2006-01-02"),
		CheckIn:        rec.CheckIn,
		CheckOut:       rec.CheckOut,
		HoursWorked:    rec.HoursWorked,
		Status:         string(rec.Status),
		Notes:          rec.Notes,
		FirstName:      rec.FirstName,
		LastName:       rec.LastName,
		Email:          rec.Email,
		DepartmentName: rec.DepartmentName,
		CreatedAt:      rec.CreatedAt,
	}
}

// AttendanceSummaryRowResponse is one employee's aggregate over the range.
type AttendanceSummaryRowResponse struct {
	EmployeeID     int64   `json:"employee_id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	DepartmentName *string `json:"department_name"`
	TotalDays      int64   `json:"total_days"`
	PresentDays    int64   `json:"present_days"`
	AbsentDays     int64   `json:"absent_days"`
	LateDays       int64   `json:"late_days"`
	HalfDays       int64   `json:"half_days"`
	LeaveDays      int64   `json:"leave_days"`
	TotalHours     float64 `json:"total_hours"`
}

// AttendanceSummaryRollupResponse is the cross-employee total.
type AttendanceSummaryRollupResponse struct {
	TotalEmployees   int64   `json:"total_employees"`
	TotalPresentDays int64   `json:"total_present_days"`
	TotalAbsentDays  int64   `json:"total_absent_days"`
	TotalHours       float64 `json:"total_hours"`
}

// NewAttendanceSummaryRowResponse maps one aggregate row.
func NewAttendanceSummaryRowResponse(row domain.AttendanceSummaryRow) AttendanceSummaryRowResponse {
	return AttendanceSummaryRowResponse{
		EmployeeID:     row.EmployeeID,
		FirstName:      row.FirstName,
		LastName:       row.LastName,
		DepartmentName: row.DepartmentName,
		TotalDays:      row.TotalDays,
		PresentDays:    row.PresentDays,
		AbsentDays:     row.AbsentDays,
		LateDays:       row.LateDays,
		HalfDays:       row.HalfDays,
		LeaveDays:      row.LeaveDays,
		TotalHours:     row.TotalHours,
	}
}

// NewAttendanceSummaryRollupResponse maps the rollup.
func NewAttendanceSummaryRollupResponse(rollup domain.AttendanceSummaryRollup) AttendanceSummaryRollupResponse {
	return AttendanceSummaryRollupResponse{
		TotalEmployees:   rollup.TotalEmployees,
		TotalPresentDays: rollup.TotalPresentDays,
		TotalAbsentDays:  rollup.TotalAbsentDays,
		TotalHours:       rollup.TotalHours,
	}
}
