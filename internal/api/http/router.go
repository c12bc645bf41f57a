package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-management/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Employees   *handlers.EmployeesHandler
	Departments *handlers.DepartmentsHandler
	Attendance  *handlers.AttendanceHandler
}

// RegisterRoutes wires HTTP routes under /api.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	api := app.Group("/api")

	api.Get("/health", cfg.Health.Live)
	api.Get("/health/ready", cfg.Health.Ready)

	employees := api.Group("/employees")
	employees.Get("/", cfg.Employees.List)
	employees.Get("/stats", cfg.Employees.Stats)
	employees.Get("/:id", cfg.Employees.Get)
	employees.Post("/", cfg.Employees.Create)
	employees.Put("/:id", cfg.Employees.Replace)
	employees.Patch("/:id", cfg.Employees.Update)
	employees.Delete("/:id", cfg.Employees.Delete)

	departments := api.Group("/departments")
	departments.Get("/", cfg.Departments.List)
	departments.Get("/:id", cfg.Departments.Get)
	departments.Post("/", cfg.Departments.Create)
	departments.Put("/:id", cfg.Departments.Update)
	departments.Delete("/:id", cfg.Departments.Delete)

	attendance := api.Group("/attendance")
	attendance.Get("/", cfg.Attendance.List)
	attendance.Post("/mark", cfg.Attendance.Mark)
	attendance.Get("/summary", cfg.Attendance.Summary)
	attendance.Get("/summary/export", cfg.Attendance.ExportSummary)
	attendance.Get("/employee/:employee_id", cfg.Attendance.EmployeeHistory)

	// catch-all after every registered route
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   fmt.Sprintf("Route %s not found", c.OriginalURL()),
		})
	})
}
