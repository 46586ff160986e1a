package notificationValidator

import (
	"cyberacademy/middleware"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

var allowedRoles = map[string]bool{"STUDENT": true, "INSTRUCTOR": true, "ADMIN": true}

// NotificationRequest is the popup notification create/update body
type NotificationRequest struct {
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	TargetRoles []string  `json:"target_roles"`
	IsActive    *bool     `json:"is_active"` // omitted on update keeps the stored flag
}

func validateBody(c *fiber.Ctx) (*NotificationRequest, map[string]string, error) {
	reqData := new(NotificationRequest)
	if err := c.BodyParser(reqData); err != nil {
		return nil, nil, err
	}

	errors := make(map[string]string)
	if len(strings.TrimSpace(reqData.Title)) < 3 {
		errors["title"] = "Title must be at least 3 characters long!"
	}
	if strings.TrimSpace(reqData.Message) == "" {
		errors["message"] = "Message is required!"
	}
	if reqData.StartsAt.IsZero() || reqData.EndsAt.IsZero() {
		errors["schedule"] = "Both starts_at and ends_at are required!"
	} else if !reqData.EndsAt.After(reqData.StartsAt) {
		errors["schedule"] = "ends_at must be after starts_at!"
	}
	for _, role := range reqData.TargetRoles {
		if !allowedRoles[role] {
			errors["target_roles"] = "Unknown role: " + role + "!"
			break
		}
	}
	return reqData, errors, nil
}

// Create validates the notification create body
func Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, errors, err := validateBody(c)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}
		c.Locals("validatedNotification", reqData)
		return c.Next()
	}
}

// Update validates the :id parameter and the notification body
func Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(strings.TrimSpace(c.Params("id")))
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Notification ID!", nil)
		}
		reqData, errors, bodyErr := validateBody(c)
		if bodyErr != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}
		c.Locals("notificationID", id)
		c.Locals("validatedNotification", reqData)
		return c.Next()
	}
}

// NotificationID validates the :id route parameter
func NotificationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(strings.TrimSpace(c.Params("id")))
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Notification ID!", nil)
		}
		c.Locals("notificationID", id)
		return c.Next()
	}
}
