package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-management/internal/domain"
)

func TestBuildAttendanceSummaryWorkbook(t *testing.T) {
	engineering := "Engineering"
	rows := []domain.AttendanceSummaryRow{
		{
			EmployeeID:     1,
			FirstName:      "Ada",
			LastName:       "Lovelace",
			DepartmentName: &engineering,
			TotalDays:      20,
			PresentDays:    18,
			AbsentDays:     2,
			TotalHours:     152.5,
		},
		{
			EmployeeID: 2,
			FirstName:  "Grace",
			LastName:   "Hopper",
			LateDays:   1,
		},
	}
	rollup := domain.AttendanceSummaryRollup{
		TotalEmployees:   2,
		TotalPresentDays: 18,
		TotalAbsentDays:  2,
		TotalHours:       152.5,
	}

	f, err := BuildAttendanceSummaryWorkbook(rows, rollup, "2025-03-01", "2025-03-31")
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Equal(t, []string{"Attendance Summary"}, sheets)

	title, err := f.GetCellValue(summarySheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Attendance summary 2025-03-01 to 2025-03-31", title)

	header, err := f.GetCellValue(summarySheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Employee ID", header)

	firstName, err := f.GetCellValue(summarySheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "Ada", firstName)

	department, err := f.GetCellValue(summarySheet, "D3")
	require.NoError(t, err)
	assert.Equal(t, "Engineering", department)

	// employees without a department render an empty cell
	noDept, err := f.GetCellValue(summarySheet, "D4")
	require.NoError(t, err)
	assert.Equal(t, "", noDept)

	hours, err := f.GetCellValue(summarySheet, "K3")
	require.NoError(t, err)
	assert.Equal(t, "152.5", hours)

	// rollup footer sits two rows below the last data row
	label, err := f.GetCellValue(summarySheet, "A6")
	require.NoError(t, err)
	assert.Equal(t, "Total employees", label)

	total, err := f.GetCellValue(summarySheet, "B6")
	require.NoError(t, err)
	assert.Equal(t, "2", total)
}

func TestBuildAttendanceSummaryWorkbookEmptyRange(t *testing.T) {
	f, err := BuildAttendanceSummaryWorkbook(nil, domain.AttendanceSummaryRollup{}, "2025-01-01", "2025-01-31")
	require.NoError(t, err)
	defer f.Close()

	label, err := f.GetCellValue(summarySheet, "A4")
	require.NoError(t, err)
	assert.Equal(t, "Total employees", label)
}
