package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/employee-management/internal/domain"
)

const summarySheet = "Attendance Summary"

// BuildAttendanceSummaryWorkbook renders the summary rows and their rollup
// into an xlsx workbook, one row per active employee.
func BuildAttendanceSummaryWorkbook(rows []domain.AttendanceSummaryRow, rollup domain.AttendanceSummaryRollup, startDate, endDate string) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(summarySheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}

	title := fmt.Sprintf("Attendance summary %s to %s", startDate, endDate)
	if err := f.SetCellValue(summarySheet, "A1", title); err != nil {
		return nil, err
	}

	headers := []string{
		"Employee ID", "First Name", "Last Name", "Department",
		"Total Days", "Present", "Absent", "Late", "Half Day", "Leave", "Total Hours",
	}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(summarySheet, cell, header); err != nil {
			return nil, err
		}
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetCellStyle(summarySheet, "A1", "K2", boldStyle)
	}

	for i, row := range rows {
		department := ""
		if row.DepartmentName != nil {
			department = *row.DepartmentName
		}
		values := []any{
			row.EmployeeID, row.FirstName, row.LastName, department,
			row.TotalDays, row.PresentDays, row.AbsentDays,
			row.LateDays, row.HalfDays, row.LeaveDays, row.TotalHours,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+3)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(summarySheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	footerRow := len(rows) + 4
	footer := []struct {
		label string
		value any
	}{
		{"Total employees", rollup.TotalEmployees},
		{"Total present days", rollup.TotalPresentDays},
		{"Total absent days", rollup.TotalAbsentDays},
		{"Total hours", rollup.TotalHours},
	}
	for i, entry := range footer {
		labelCell, err := excelize.CoordinatesToCellName(1, footerRow+i)
		if err != nil {
			return nil, err
		}
		valueCell, err := excelize.CoordinatesToCellName(2, footerRow+i)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(summarySheet, labelCell, entry.label); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(summarySheet, valueCell, entry.value); err != nil {
			return nil, err
		}
	}

	return f, nil
}
