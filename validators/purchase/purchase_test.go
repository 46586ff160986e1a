package purchaseValidator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func post(app *fiber.App, path, body string) int {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	return resp.StatusCode
}

func okHandler(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }

func TestCheckoutCourseRequiresCourseID(t *testing.T) {
	app := fiber.New()
	app.Post("/checkout", Checkout(), okHandler)

	assert.Equal(t, fiber.StatusUnprocessableEntity, post(app, "/checkout", `{"type":"course"}`))
	assert.Equal(t, fiber.StatusOK, post(app, "/checkout", `{"type":"course","courseId":3}`))
}

func TestCheckoutPlanRequiresPlanID(t *testing.T) {
	app := fiber.New()
	app.Post("/checkout", Checkout(), okHandler)

	assert.Equal(t, fiber.StatusUnprocessableEntity, post(app, "/checkout", `{"type":"plan"}`))
	assert.Equal(t, fiber.StatusOK, post(app, "/checkout", `{"type":"plan","planId":2}`))
}

func TestCheckoutUnknownType(t *testing.T) {
	app := fiber.New()
	app.Post("/checkout", Checkout(), okHandler)

	assert.Equal(t, fiber.StatusUnprocessableEntity, post(app, "/checkout", `{"type":"gift","courseId":3}`))
}

func TestEscudosPurchaseRejectsForeignCurrency(t *testing.T) {
	app := fiber.New()
	app.Post("/escudos", EscudosPurchase(), okHandler)

	assert.Equal(t, fiber.StatusUnprocessableEntity, post(app, "/escudos", `{"courseId":3,"currency":"EUR"}`))
	assert.Equal(t, fiber.StatusOK, post(app, "/escudos", `{"courseId":3,"currency":"ESCUDOS"}`))
	assert.Equal(t, fiber.StatusOK, post(app, "/escudos", `{"courseId":3}`))
}

func TestConfirmRequiresOrderID(t *testing.T) {
	app := fiber.New()
	app.Post("/confirm", Confirm(), okHandler)

	assert.Equal(t, fiber.StatusUnprocessableEntity, post(app, "/confirm", `{"orderId":"  "}`))
	assert.Equal(t, fiber.StatusOK, post(app, "/confirm", `{"orderId":"abc-123"}`))
}
