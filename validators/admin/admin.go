package adminValidator

import (
	"cyberacademy/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RoleChangeRequest is the admin role-change body
type RoleChangeRequest struct {
	Role string `json:"role"`
}

// ActivateRequest is the admin activation body
type ActivateRequest struct {
	Active *bool `json:"active"`
}

// RejectRequest is the course rejection body
type RejectRequest struct {
	Reason string `json:"reason"`
}

func parseIDParam(c *fiber.Ctx, param string) (int, bool) {
	idStr := strings.TrimSpace(c.Params(param))
	if idStr == "" {
		return 0, false
	}
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// UserID validates the :id route parameter
func UserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
		}
		c.Locals("targetUserID", id)
		return c.Next()
	}
}

// CourseID validates the :id route parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}
		c.Locals("courseID", id)
		return c.Next()
	}
}

// ChangeRole validates the :id parameter and the role body
func ChangeRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
		}
		reqData := new(RoleChangeRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		switch reqData.Role {
		case "STUDENT", "INSTRUCTOR", "ADMIN":
		default:
			return middleware.ValidationErrorResponse(c, map[string]string{"role": "Role must be STUDENT, INSTRUCTOR or ADMIN!"})
		}
		c.Locals("targetUserID", id)
		c.Locals("validatedRole", reqData)
		return c.Next()
	}
}

// Activate validates the :id parameter and the activation body
func Activate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
		}
		reqData := new(ActivateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if reqData.Active == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"active": "Active flag is required!"})
		}
		c.Locals("targetUserID", id)
		c.Locals("validatedActivate", reqData)
		return c.Next()
	}
}

// RejectCourse validates the :id parameter and the rejection body
func RejectCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}
		reqData := new(RejectRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if len(strings.TrimSpace(reqData.Reason)) < 3 {
			return middleware.ValidationErrorResponse(c, map[string]string{"reason": "Rejection reason is required!"})
		}
		c.Locals("courseID", id)
		c.Locals("validatedReject", reqData)
		return c.Next()
	}
}
