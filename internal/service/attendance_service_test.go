package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-management/internal/domain"
	"github.com/spec-kit/employee-management/internal/repository"
	apperrors "github.com/spec-kit/employee-management/pkg/util"
)

// fakeAttendanceRepo keeps rows in memory keyed on (employee_id, date) to
// mirror the table's uniqueness constraint.
type fakeAttendanceRepo struct {
	rows        map[string]*domain.Attendance
	nextID      int64
	summaryRows []domain.AttendanceSummaryRow
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{rows: make(map[string]*domain.Attendance), nextID: 1}
}

func (f *fakeAttendanceRepo) ListWithFilter(_ context.Context, _ repository.AttendanceFilter) ([]domain.Attendance, error) {
	var result []domain.Attendance
	for _, rec := range f.rows {
		result = append(result, *rec)
	}
	return result, nil
}

func (f *fakeAttendanceRepo) Upsert(_ context.Context, record *domain.Attendance) error {
	key := fmt.Sprintf("%d|%s", record.EmployeeID, record.Date.Format("2006-01-02"))
	if existing, ok := f.rows[key]; ok {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
	} else {
		record.ID = f.nextID
		f.nextID++
	}
	clone := *record
	f.rows[key] = &clone
	return nil
}

func (f *fakeAttendanceRepo) Summary(_ context.Context, _ repository.SummaryFilter) ([]domain.AttendanceSummaryRow, error) {
	return f.summaryRows, nil
}

func (f *fakeAttendanceRepo) ListByEmployee(_ context.Context, employeeID int64, _, _ *string) ([]domain.Attendance, error) {
	var result []domain.Attendance
	for _, rec := range f.rows {
		if rec.EmployeeID == employeeID {
			result = append(result, *rec)
		}
	}
	return result, nil
}

func strPtr(s string) *string { return &s }

func TestComputeHoursWorked(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		expected float64
	}{
		{name: "standard day with half hour", checkIn: "09:00", checkOut: "17:30", expected: 8.5},
		{name: "full seconds layout", checkIn: "09:00:00", checkOut: "17:00:00", expected: 8},
		{name: "quarter precision", checkIn: "08:15", checkOut: "12:00", expected: 3.75},
		{name: "rounded to two decimals", checkIn: "09:00", checkOut: "09:20", expected: 0.33},
		{name: "same times", checkIn: "09:00", checkOut: "09:00", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours, err := ComputeHoursWorked(tt.checkIn, tt.checkOut)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, hours)
		})
	}
}

func TestComputeHoursWorkedRejectsBadClock(t *testing.T) {
	_, err := ComputeHoursWorked("9am", "5pm")
	assert.Error(t, err)
}

func TestMarkComputesHoursAndDefaultsStatus(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(AttendanceDependencies{AttendanceRepo: repo})

	record, err := svc.Mark(context.Background(), AttendanceMarkInput{
		EmployeeID: 7,
		Date:       "2025-03-10",
		CheckIn:    strPtr("09:00"),
		CheckOut:   strPtr("17:30"),
	})
	require.NoError(t, err)

	require.NotNil(t, record.HoursWorked)
	assert.Equal(t, 8.5, *record.HoursWorked)
	assert.Equal(t, domain.AttendanceStatusPresent, record.Status)
}

func TestMarkTwiceOverwritesSameRow(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(AttendanceDependencies{AttendanceRepo: repo})

	first, err := svc.Mark(context.Background(), AttendanceMarkInput{
		EmployeeID: 7,
		Date:       "2025-03-10",
		CheckIn:    strPtr("09:00"),
		CheckOut:   strPtr("17:00"),
	})
	require.NoError(t, err)

	late := domain.AttendanceStatusLate
	second, err := svc.Mark(context.Background(), AttendanceMarkInput{
		EmployeeID: 7,
		Date:       "2025-03-10",
		CheckIn:    strPtr("10:00"),
		CheckOut:   strPtr("18:30"),
		Status:     &late,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.rows, 1)
	assert.Equal(t, domain.AttendanceStatusLate, second.Status)
	require.NotNil(t, second.HoursWorked)
	assert.Equal(t, 8.5, *second.HoursWorked)
}

func TestMarkRejectsBadDate(t *testing.T) {
	svc := NewAttendanceService(AttendanceDependencies{AttendanceRepo: newFakeAttendanceRepo()})

	_, err := svc.Mark(context.Background(), AttendanceMarkInput{EmployeeID: 1, Date: "10-03-2025"})
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, 400, domainErr.HTTPStatus)
}

func TestMarkSkipsHoursWhenTimeMissing(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(AttendanceDependencies{AttendanceRepo: repo})

	record, err := svc.Mark(context.Background(), AttendanceMarkInput{
		EmployeeID: 2,
		Date:       "2025-03-11",
		CheckIn:    strPtr("09:00"),
	})
	require.NoError(t, err)
	assert.Nil(t, record.HoursWorked)
}

func TestSummaryRequiresRange(t *testing.T) {
	svc := NewAttendanceService(AttendanceDependencies{AttendanceRepo: newFakeAttendanceRepo()})

	_, err := svc.Summary(context.Background(), repository.SummaryFilter{StartDate: "2025-03-01"})
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, 400, domainErr.HTTPStatus)
	assert.Equal(t, "Start date and end date are required", domainErr.Message)
}

func TestSummaryRollupSumsRows(t *testing.T) {
	repo := newFakeAttendanceRepo()
	repo.summaryRows = []domain.AttendanceSummaryRow{
		{EmployeeID: 1, PresentDays: 18, AbsentDays: 2, TotalDays: 20, TotalHours: 152.5},
		{EmployeeID: 2, PresentDays: 20, AbsentDays: 0, TotalDays: 20, TotalHours: 160},
		// active employee with no rows in range still appears, zeroed
		{EmployeeID: 3},
	}
	svc := NewAttendanceService(AttendanceDependencies{AttendanceRepo: repo})

	result, err := svc.Summary(context.Background(), repository.SummaryFilter{
		StartDate: "2025-03-01",
		EndDate:   "2025-03-31",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), result.Rollup.TotalEmployees)
	assert.Equal(t, int64(38), result.Rollup.TotalPresentDays)
	assert.Equal(t, int64(2), result.Rollup.TotalAbsentDays)
	assert.Equal(t, 312.5, result.Rollup.TotalHours)

	zeroed := result.Rows[2]
	assert.Equal(t, int64(0), zeroed.TotalDays)
	assert.Equal(t, float64(0), zeroed.TotalHours)
}
