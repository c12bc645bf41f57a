package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/employee-management/internal/domain"
)

func TestAttendanceFilterClauses(t *testing.T) {
	date := "2025-03-10"
	employeeID := int64(7)
	departmentID := int64(2)

	tests := []struct {
		name     string
		filter   AttendanceFilter
		expected string
		args     []any
	}{
		{
			name:     "no filters",
			filter:   AttendanceFilter{},
			expected: "1=1",
			args:     []any{},
		},
		{
			name:     "date only",
			filter:   AttendanceFilter{Date: &date},
			expected: "1=1 AND a.date = $1",
			args:     []any{date},
		},
		{
			name:     "employee only",
			filter:   AttendanceFilter{EmployeeID: &employeeID},
			expected: "1=1 AND a.employee_id = $1",
			args:     []any{employeeID},
		},
		{
			name:     "all filters AND-combined",
			filter:   AttendanceFilter{Date: &date, EmployeeID: &employeeID, DepartmentID: &departmentID},
			expected: "1=1 AND a.date = $1 AND a.employee_id = $2 AND e.department_id = $3",
			args:     []any{date, employeeID, departmentID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := attendanceFilterClauses(tt.filter)
			assert.Equal(t, tt.expected, where)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestEmployeeUpdateClausesOnlyIncludesSetFields(t *testing.T) {
	salary := 105000.0
	clauses, args := employeeUpdateClauses(EmployeeUpdate{Salary: &salary})

	assert.Equal(t, []string{"salary = $1"}, clauses)
	assert.Equal(t, []any{salary}, args)
}

func TestEmployeeUpdateClausesNumbersPlaceholdersInOrder(t *testing.T) {
	first := "Grace"
	status := domain.EmployeeStatusOnLeave
	hireDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	clauses, args := employeeUpdateClauses(EmployeeUpdate{
		FirstName: &first,
		HireDate:  &hireDate,
		Status:    &status,
	})

	assert.Equal(t, []string{"first_name = $1", "hire_date = $2", "status = $3"}, clauses)
	assert.Equal(t, []any{first, hireDate, status}, args)
}

func TestEmployeeUpdateIsEmpty(t *testing.T) {
	assert.True(t, EmployeeUpdate{}.IsEmpty())

	email := "new@example.com"
	assert.False(t, EmployeeUpdate{Email: &email}.IsEmpty())
}
