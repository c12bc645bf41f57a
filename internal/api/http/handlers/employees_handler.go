package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-management/internal/api/dto"
	"github.com/spec-kit/employee-management/internal/domain"
	"github.com/spec-kit/employee-management/internal/repository"
	"github.com/spec-kit/employee-management/internal/service"
	apperrors "github.com/spec-kit/employee-management/pkg/util"
)

const dateLayout = "2006-01-02"

// EmployeesHandler manages employee endpoints.
type EmployeesHandler struct {
	service *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employeeService *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{service: employeeService}
}

// List GET /api/employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	employees, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		items = append(items, dto.NewEmployeeResponse(&employees[i]))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    items,
		"count":   len(items),
	})
}

// Stats GET /api/employees/stats.
func (h *EmployeesHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewEmployeeStatsResponse(stats),
	})
}

// Get GET /api/employees/:id.
func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	emp, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewEmployeeResponse(emp),
	})
}

// Create POST /api/employees.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request body", nil)
	}
	if details := dto.Validate(req); details != nil {
		return apperrors.NewValidationError("Required fields are missing", details)
	}
	input, err := employeeInput(req)
	if err != nil {
		return err
	}

	emp, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    dto.NewEmployeeResponse(emp),
		"message": "Employee created successfully",
	})
}

// Replace PUT /api/employees/:id. Full-replace semantics: every column is
// written from the payload, so the caller must supply the complete record,
// status included.
func (h *EmployeesHandler) Replace(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.ReplaceEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request body", nil)
	}
	if details := dto.Validate(req); details != nil {
		return apperrors.NewValidationError("Required fields are missing", details)
	}
	input, err := employeeReplaceInput(req)
	if err != nil {
		return err
	}

	emp, err := h.service.Replace(c.UserContext(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewEmployeeResponse(emp),
		"message": "Employee updated successfully",
	})
}

// Update PATCH /api/employees/:id. Partial allow-list semantics: only
// fields present and non-null in the body are written; everything else
// keeps its prior value.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request body", nil)
	}
	if details := dto.Validate(req); details != nil {
		return apperrors.NewValidationError("Invalid fields in request", details)
	}
	update, err := employeeUpdate(req)
	if err != nil {
		return err
	}

	emp, err := h.service.UpdatePartial(c.UserContext(), id, update)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewEmployeeResponse(emp),
		"message": "Employee updated successfully",
	})
}

// Delete DELETE /api/employees/:id.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	emp, err := h.service.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewEmployeeResponse(emp),
		"message": "Employee deleted successfully",
	})
}

func employeeInput(req dto.CreateEmployeeRequest) (service.EmployeeCreateInput, error) {
	hireDate, err := time.Parse(dateLayout, req.HireDate)
	if err != nil {
		return service.EmployeeCreateInput{}, apperrors.NewValidationError("Invalid hire_date. Expected format YYYY-MM-DD", nil)
	}

	var status *domain.EmployeeStatus
	if req.Status != nil {
		s := domain.EmployeeStatus(*req.Status)
		status = &s
	}

	return service.EmployeeCreateInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		HireDate:     hireDate,
		JobTitle:     req.JobTitle,
		DepartmentID: req.DepartmentID,
		Salary:       *req.Salary,
		Status:       status,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
	}, nil
}

func employeeReplaceInput(req dto.ReplaceEmployeeRequest) (service.EmployeeCreateInput, error) {
	hireDate, err := time.Parse(dateLayout, req.HireDate)
	if err != nil {
		return service.EmployeeCreateInput{}, apperrors.NewValidationError("Invalid hire_date. Expected format YYYY-MM-DD", nil)
	}

	status := domain.EmployeeStatus(req.Status)
	return service.EmployeeCreateInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		HireDate:     hireDate,
		JobTitle:     req.JobTitle,
		DepartmentID: req.DepartmentID,
		Salary:       *req.Salary,
		Status:       &status,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
	}, nil
}

func employeeUpdate(req dto.UpdateEmployeeRequest) (repository.EmployeeUpdate, error) {
	var hireDate *time.Time
	if req.HireDate != nil {
		parsed, err := time.Parse(dateLayout, *req.HireDate)
		if err != nil {
			return repository.EmployeeUpdate{}, apperrors.NewValidationError("Invalid hire_date. Expected format YYYY-MM-DD", nil)
		}
		hireDate = &parsed
	}

	var status *domain.EmployeeStatus
	if req.Status != nil {
		s := domain.EmployeeStatus(*req.Status)
		status = &s
	}

	return repository.EmployeeUpdate{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		HireDate:     hireDate,
		JobTitle:     req.JobTitle,
		DepartmentID: req.DepartmentID,
		Salary:       req.Salary,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
		Status:       status,
	}, nil
}

func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("Invalid "+name+" parameter", nil)
	}
	return id, nil
}
