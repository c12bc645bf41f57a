package service

import (
	"context"
	"math"
	"time"

	"github.com/spec-kit/employee-management/internal/domain"
	"github.com/spec-kit/employee-management/internal/events"
	"github.com/spec-kit/employee-management/internal/repository"
	apperrors "github.com/spec-kit/employee-management/pkg/util"
)

const dateLayout = "2006-01-02"

var attendancePgMessages = apperrors.PgMessages{
	ForeignKey: "Invalid employee selected",
	Check:      "Invalid status value. Must be: present, absent, late, half_day, or leave",
}

// AttendanceService coordinates attendance marking and reporting.
type AttendanceService struct {
	attendance repository.AttendanceRepository
	dispatcher events.Dispatcher
}

// AttendanceDependencies bundles collaborators for the attendance service.
type AttendanceDependencies struct {
	AttendanceRepo repository.AttendanceRepository
	Dispatcher     events.Dispatcher
}

// AttendanceMarkInput describes the upsert payload. EmployeeID and Date are
// required; everything else is optional.
type AttendanceMarkInput struct {
	EmployeeID int64
	Date       string
	CheckIn    *string
	CheckOut   *string
	Status     *domain.AttendanceStatus
	Notes      *string
}

// AttendanceSummaryResult carries the per-employee rows plus the rollup
// computed from them.
type AttendanceSummaryResult struct {
	Rows   []domain.AttendanceSummaryRow
	Rollup domain.AttendanceSummaryRollup
}

// NewAttendanceService constructs the service.
func NewAttendanceService(deps AttendanceDependencies) *AttendanceService {
	return &AttendanceService{
		attendance: deps.AttendanceRepo,
		dispatcher: deps.Dispatcher,
	}
}

// List returns attendance rows matching the AND-combined filters, joined
// with employee name/email and department name.
func (s *AttendanceService) List(ctx context.Context, filter repository.AttendanceFilter) ([]domain.Attendance, error) {
	list, err := s.attendance.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.FromPostgres(err, "Attendance", attendancePgMessages)
	}
	return list, nil
}

// Mark upserts the record keyed on (employee_id, date). Hours worked are
// computed server-side when both clock times are present. The row is
// returned whether the insert or the update branch ran.
func (s *AttendanceService) Mark(ctx context.Context, input AttendanceMarkInput) (*domain.Attendance, error) {
	date, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid date. Expected format YYYY-MM-DD", nil)
	}

	status := domain.AttendanceStatusPresent
	if input.Status != nil {
		status = *input.Status
	}
	if !status.Valid() {
		return nil, apperrors.NewValidationError(attendancePgMessages.Check, nil)
	}

	var hoursWorked *float64
	if input.CheckIn != nil && input.CheckOut != nil {
		hours, err := ComputeHoursWorked(*input.CheckIn, *input.CheckOut)
		if err != nil {
			return nil, apperrors.NewValidationError("Invalid check_in/check_out time. Expected format HH:MM", nil)
		}
		hoursWorked = &hours
	}

	record := &domain.Attendance{
		EmployeeID:  input.EmployeeID,
		Date:        date,
		CheckIn:     input.CheckIn,
		CheckOut:    input.CheckOut,
		HoursWorked: hoursWorked,
		Status:      status,
		Notes:       input.Notes,
	}
	if err := s.attendance.Upsert(ctx, record); err != nil {
		return nil, apperrors.FromPostgres(err, "Attendance", attendancePgMessages)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, newEvent(events.EventAttendanceMarked, events.AttendanceMarkedPayload{
			EmployeeID:  record.EmployeeID,
			Date:        record.Date.Format(dateLayout),
			Status:      record.Status,
			HoursWorked: record.HoursWorked,
		}))
	}
	return record, nil
}

// Summary aggregates attendance per active employee over the range and
// rolls the rows up into cross-employee totals. Employees with zero rows in
// range are included with zero counts.
func (s *AttendanceService) Summary(ctx context.Context, filter repository.SummaryFilter) (*AttendanceSummaryResult, error) {
	if filter.StartDate == "" || filter.EndDate == "" {
		return nil, apperrors.NewValidationError("Start date and end date are required", nil)
	}
	for _, d := range []string{filter.StartDate, filter.EndDate} {
		if _, err := time.Parse(dateLayout, d); err != nil {
			return nil, apperrors.NewValidationError("Invalid date. Expected format YYYY-MM-DD", nil)
		}
	}

	rows, err := s.attendance.Summary(ctx, filter)
	if err != nil {
		return nil, apperrors.FromPostgres(err, "Attendance", attendancePgMessages)
	}
	return &AttendanceSummaryResult{
		Rows:   rows,
		Rollup: rollupSummary(rows),
	}, nil
}

// EmployeeHistory returns one employee's rows, newest date first. The range
// only applies when both bounds are supplied.
func (s *AttendanceService) EmployeeHistory(ctx context.Context, employeeID int64, startDate, endDate *string) ([]domain.Attendance, error) {
	list, err := s.attendance.ListByEmployee(ctx, employeeID, startDate, endDate)
	if err != nil {
		return nil, apperrors.FromPostgres(err, "Attendance", attendancePgMessages)
	}
	return list, nil
}

// ComputeHoursWorked treats both clock times as the same calendar day,
// subtracts them and rounds to 2 decimals. Accepts HH:MM or HH:MM:SS.
func ComputeHoursWorked(checkIn, checkOut string) (float64, error) {
	in, err := parseClock(checkIn)
	if err != nil {
		return 0, err
	}
	out, err := parseClock(checkOut)
	if err != nil {
		return 0, err
	}
	hours := out.Sub(in).Hours()
	return math.Round(hours*100) / 100, nil
}

func parseClock(value string) (time.Time, error) {
	t, err := time.Parse("15:04:05", value)
	if err == nil {
		return t, nil
	}
	return time.Parse("15:04", value)
}

// rollupSummary sums the per-row aggregates; no separate query is issued.
func rollupSummary(rows []domain.AttendanceSummaryRow) domain.AttendanceSummaryRollup {
	rollup := domain.AttendanceSummaryRollup{
		TotalEmployees: int64(len(rows)),
	}
	for _, row := range rows {
		rollup.TotalPresentDays += row.PresentDays
		rollup.TotalAbsentDays += row.AbsentDays
		rollup.TotalHours += row.TotalHours
	}
	rollup.TotalHours = math.Round(rollup.TotalHours*100) / 100
	return rollup
}
