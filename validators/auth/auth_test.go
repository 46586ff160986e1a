package authValidator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func signupApp() *fiber.App {
	app := fiber.New()
	app.Post("/signup", Signup(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func postJSON(app *fiber.App, path, body string) int {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	return resp.StatusCode
}

func TestSignupValidBody(t *testing.T) {
	status := postJSON(signupApp(), "/signup", `{"name":"Ana Reyes","email":"ana@example.com","password":"supersecret"}`)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestSignupShortPassword(t *testing.T) {
	status := postJSON(signupApp(), "/signup", `{"name":"Ana Reyes","email":"ana@example.com","password":"short"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestSignupBadEmail(t *testing.T) {
	status := postJSON(signupApp(), "/signup", `{"name":"Ana Reyes","email":"not-an-email","password":"supersecret"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestSignupMissingName(t *testing.T) {
	status := postJSON(signupApp(), "/signup", `{"email":"ana@example.com","password":"supersecret"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestLoginValidBody(t *testing.T) {
	app := fiber.New()
	app.Post("/login", Login(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	status := postJSON(app, "/login", `{"email":"ana@example.com","password":"supersecret"}`)
	assert.Equal(t, fiber.StatusOK, status)
}
