package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-management/internal/api/dto"
	"github.com/spec-kit/employee-management/internal/service"
	apperrors "github.com/spec-kit/employee-management/pkg/util"
)

// DepartmentsHandler manages department endpoints.
type DepartmentsHandler struct {
	service *service.DepartmentService
}

// NewDepartmentsHandler constructs handler.
func NewDepartmentsHandler(departmentService *service.DepartmentService) *DepartmentsHandler {
	return &DepartmentsHandler{service: departmentService}
}

// List GET /api/departments.
func (h *DepartmentsHandler) List(c *fiber.Ctx) error {
	departments, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.DepartmentResponse, 0, len(departments))
	for i := range departments {
		items = append(items, dto.NewDepartmentResponse(&departments[i]))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    items,
	})
}

// Get GET /api/departments/:id.
func (h *DepartmentsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	dept, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewDepartmentResponse(dept),
	})
}

// Create POST /api/departments.
func (h *DepartmentsHandler) Create(c *fiber.Ctx) error {
	var req dto.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request body", nil)
	}
	if details := dto.Validate(req); details != nil {
		return apperrors.NewValidationError("Department name is required", details)
	}

	dept, err := h.service.Create(c.UserContext(), departmentInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    dto.NewDepartmentResponse(dept),
		"message": "Department created successfully",
	})
}

// Update PUT /api/departments/:id. Full replace of
// name/description/location/manager_id.
func (h *DepartmentsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request body", nil)
	}
	if details := dto.Validate(req); details != nil {
		return apperrors.NewValidationError("Department name is required", details)
	}

	dept, err := h.service.Update(c.UserContext(), id, departmentInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewDepartmentResponse(dept),
		"message": "Department updated successfully",
	})
}

// Delete DELETE /api/departments/:id. Blocked while employees remain
// assigned; that surfaces as a 400, not a server error.
func (h *DepartmentsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Department deleted successfully",
	})
}

func departmentInput(req dto.DepartmentRequest) service.DepartmentInput {
	return service.DepartmentInput{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		ManagerID:   req.ManagerID,
	}
}
