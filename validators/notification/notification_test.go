package notificationValidator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

const validWindow = `"starts_at":"2026-09-01T09:00:00Z","ends_at":"2026-09-08T09:00:00Z"`

func putJSON(app *fiber.App, path, body string) int {
	req := httptest.NewRequest("PUT", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	return resp.StatusCode
}

func TestUpdateKeepsStoredActiveFlagWhenOmitted(t *testing.T) {
	app := fiber.New()
	app.Put("/notification/:id", Update(), func(c *fiber.Ctx) error {
		reqData := c.Locals("validatedNotification").(*NotificationRequest)
		assert.Nil(t, reqData.IsActive)
		return c.SendStatus(fiber.StatusOK)
	})

	status := putJSON(app, "/notification/5", `{"title":"Maintenance","message":"Heads up",`+validWindow+`}`)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestUpdatePassesExplicitActiveFlag(t *testing.T) {
	app := fiber.New()
	app.Put("/notification/:id", Update(), func(c *fiber.Ctx) error {
		reqData := c.Locals("validatedNotification").(*NotificationRequest)
		if assert.NotNil(t, reqData.IsActive) {
			assert.False(t, *reqData.IsActive)
		}
		return c.SendStatus(fiber.StatusOK)
	})

	status := putJSON(app, "/notification/5", `{"title":"Maintenance","message":"Heads up","is_active":false,`+validWindow+`}`)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestUpdateRejectsInvertedWindow(t *testing.T) {
	app := fiber.New()
	app.Put("/notification/:id", Update(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	status := putJSON(app, "/notification/5", `{"title":"Maintenance","message":"Heads up","starts_at":"2026-09-08T09:00:00Z","ends_at":"2026-09-01T09:00:00Z"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestUpdateRejectsUnknownRole(t *testing.T) {
	app := fiber.New()
	app.Put("/notification/:id", Update(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	status := putJSON(app, "/notification/5", `{"title":"Maintenance","message":"Heads up","target_roles":["SUPERUSER"],`+validWindow+`}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}
