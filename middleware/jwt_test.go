package middleware

import (
	"cyberacademy/config"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func init() {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}
}

func testApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", JWTMiddleware, func(c *fiber.Ctx) error {
		userId, _ := c.Locals("userId").(uint)
		role, _ := c.Locals("role").(string)
		return c.JSON(fiber.Map{"userId": userId, "role": role})
	})
	return app
}

func TestJWTRoundTrip(t *testing.T) {
	config.AppConfig.JWTKey = "test-secret"

	token, err := GenerateJWT(42, "Ana", "STUDENT", "ana@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	app := testApp()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJWTMissingHeader(t *testing.T) {
	config.AppConfig.JWTKey = "test-secret"

	app := testApp()
	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTBadToken(t *testing.T) {
	config.AppConfig.JWTKey = "test-secret"

	app := testApp()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func optionalApp() *fiber.App {
	app := fiber.New()
	app.Get("/catalog", OptionalJWT, func(c *fiber.Ctx) error {
		_, authed := c.Locals("userId").(uint)
		return c.JSON(fiber.Map{"authed": authed})
	})
	return app
}

func TestOptionalJWTAllowsAnonymous(t *testing.T) {
	config.AppConfig.JWTKey = "test-secret"

	app := optionalApp()
	resp, err := app.Test(httptest.NewRequest("GET", "/catalog", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestOptionalJWTSetsUserWithValidToken(t *testing.T) {
	config.AppConfig.JWTKey = "test-secret"

	token, err := GenerateJWT(9, "Ana", "STUDENT", "ana@example.com")
	assert.NoError(t, err)

	app := fiber.New()
	app.Get("/catalog", OptionalJWT, func(c *fiber.Ctx) error {
		userId, _ := c.Locals("userId").(uint)
		assert.Equal(t, uint(9), userId)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/catalog", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestOptionalJWTRejectsBadToken(t *testing.T) {
	config.AppConfig.JWTKey = "test-secret"

	app := optionalApp()
	req := httptest.NewRequest("GET", "/catalog", nil)
	req.Header.Set("Authorization", "Bearer garbage")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTWrongKeyRejected(t *testing.T) {
	config.AppConfig.JWTKey = "key-one"
	token, err := GenerateJWT(7, "Bo", "ADMIN", "bo@example.com")
	assert.NoError(t, err)

	config.AppConfig.JWTKey = "key-two"
	app := testApp()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
