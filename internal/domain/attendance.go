package domain

import "time"

// AttendanceStatus enumerates daily attendance outcomes.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusLate    AttendanceStatus = "late"
	AttendanceStatusHalfDay AttendanceStatus = "half_day"
	AttendanceStatusLeave   AttendanceStatus = "leave"
)

// Valid reports whether the status is one of the enumerated values.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusLate,
		AttendanceStatusHalfDay, AttendanceStatusLeave:
		return true
	}
	return false
}

// Attendance is one employee-day record. At most one row exists per
// (EmployeeID, Date); marking the same pair again overwrites it.
type Attendance struct {
	ID          int64
	EmployeeID  int64
	Date        time.Time
	CheckIn     *string // "HH:MM:SS" time of day
	CheckOut    *string
	HoursWorked *float64
	Status      AttendanceStatus
	Notes       *string
	CreatedAt   time.Time

	// Joined employee/department fields for list responses.
	FirstName      string
	LastName       string
	Email          string
	DepartmentName *string
}

// AttendanceSummaryRow is one employee's aggregate over a date range.
// Employees with zero rows in range still appear with zero counts.
type AttendanceSummaryRow struct {
	EmployeeID     int64
	FirstName      string
	LastName       string
	DepartmentName *string
	TotalDays      int64
	PresentDays    int64
	AbsentDays     int64
	LateDays       int64
	HalfDays       int64
	LeaveDays      int64
	TotalHours     float64
}

// AttendanceSummaryRollup is the cross-employee total, computed by summing
// the per-row aggregates rather than by a separate query.
type AttendanceSummaryRollup struct {
	TotalEmployees   int64
	TotalPresentDays int64
	TotalAbsentDays  int64
	TotalHours       float64
}
