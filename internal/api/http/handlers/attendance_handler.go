package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-management/internal/api/dto"
	"github.com/spec-kit/employee-management/internal/domain"
	"github.com/spec-kit/employee-management/internal/reports"
	"github.com/spec-kit/employee-management/internal/repository"
	"github.com/spec-kit/employee-management/internal/service"
	apperrors "github.com/spec-kit/employee-management/pkg/util"
)

// AttendanceHandler manages attendance endpoints.
type AttendanceHandler struct {
	service *service.AttendanceService
}

// NewAttendanceHandler constructs handler.
func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: attendanceService}
}

// List GET /api/attendance with optional date/employee_id/department_id
// filters, AND-combined.
func (h *AttendanceHandler) List(c *fiber.Ctx) error {
	filter, err := parseAttendanceFilter(c)
	if err != nil {
		return err
	}
	records, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.AttendanceResponse, 0, len(records))
	for i := range records {
		items = append(items, dto.NewAttendanceResponse(&records[i]))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    items,
	})
}

// Mark POST /api/attendance/mark. Upserts on (employee_id, date); responds
// 201 whether the insert or the update branch ran.
func (h *AttendanceHandler) Mark(c *fiber.Ctx) error {
	var req dto.MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request body", nil)
	}
	if details := dto.Validate(req); details != nil {
		return apperrors.NewValidationError("Employee ID and date are required", details)
	}

	var status *domain.AttendanceStatus
	if req.Status != nil {
		s := domain.AttendanceStatus(*req.Status)
		status = &s
	}

	record, err := h.service.Mark(c.UserContext(), service.AttendanceMarkInput{
		EmployeeID: *req.EmployeeID,
		Date:       req.Date,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Status:     status,
		Notes:      req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    dto.NewAttendanceResponse(record),
		"message": "Attendance marked successfully",
	})
}

// Summary GET /api/attendance/summary. Requires start_date and end_date;
// optional department_id. The top-level summary field carries the rollup.
func (h *AttendanceHandler) Summary(c *fiber.Ctx) error {
	filter, err := parseSummaryFilter(c)
	if err != nil {
		return err
	}
	result, err := h.service.Summary(c.UserContext(), filter)
	if err != nil {
		return err
	}
	rows := make([]dto.AttendanceSummaryRowResponse, 0, len(result.Rows))
	for _, row := range result.Rows {
		rows = append(rows, dto.NewAttendanceSummaryRowResponse(row))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    rows,
		"summary": dto.NewAttendanceSummaryRollupResponse(result.Rollup),
	})
}

// ExportSummary GET /api/attendance/summary/export. Same query as Summary,
// streamed as an xlsx workbook.
func (h *AttendanceHandler) ExportSummary(c *fiber.Ctx) error {
	filter, err := parseSummaryFilter(c)
	if err != nil {
		return err
	}
	result, err := h.service.Summary(c.UserContext(), filter)
	if err != nil {
		return err
	}

	workbook, err := reports.BuildAttendanceSummaryWorkbook(result.Rows, result.Rollup, filter.StartDate, filter.EndDate)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	buf, err := workbook.WriteToBuffer()
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	filename := fmt.Sprintf("attendance-summary-%s-%s.xlsx", filter.StartDate, filter.EndDate)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

// EmployeeHistory GET /api/attendance/employee/:employee_id with an
// optional start_date/end_date pair.
func (h *AttendanceHandler) EmployeeHistory(c *fiber.Ctx) error {
	employeeID, err := parseID(c, "employee_id")
	if err != nil {
		return err
	}

	var startDate, endDate *string
	if v := c.Query("start_date"); v != "" {
		startDate = &v
	}
	if v := c.Query("end_date"); v != "" {
		endDate = &v
	}

	records, err := h.service.EmployeeHistory(c.UserContext(), employeeID, startDate, endDate)
	if err != nil {
		return err
	}
	items := make([]dto.AttendanceResponse, 0, len(records))
	for i := range records {
		items = append(items, dto.NewAttendanceResponse(&records[i]))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    items,
	})
}

func parseAttendanceFilter(c *fiber.Ctx) (repository.AttendanceFilter, error) {
	var filter repository.AttendanceFilter
	if v := c.Query("date"); v != "" {
		if _, err := time.Parse(dateLayout, v); err != nil {
			return filter, apperrors.NewValidationError("Invalid date. Expected format YYYY-MM-DD", nil)
		}
		filter.Date = &v
	}
	if v := c.Query("employee_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, apperrors.NewValidationError("Invalid employee_id parameter", nil)
		}
		filter.EmployeeID = &id
	}
	if v := c.Query("department_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, apperrors.NewValidationError("Invalid department_id parameter", nil)
		}
		filter.DepartmentID = &id
	}
	return filter, nil
}

func parseSummaryFilter(c *fiber.Ctx) (repository.SummaryFilter, error) {
	filter := repository.SummaryFilter{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}
	if filter.StartDate == "" || filter.EndDate == "" {
		return filter, apperrors.NewValidationError("Start date and end date are required", nil)
	}
	if v := c.Query("department_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, apperrors.NewValidationError("Invalid department_id parameter", nil)
		}
		filter.DepartmentID = &id
	}
	return filter, nil
}
