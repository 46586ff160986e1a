package purchaseValidator

import (
	"cyberacademy/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// OptionsRequest is the purchase-options body
type OptionsRequest struct {
	CourseID uint `json:"courseId"`
}

// EscudosPurchaseRequest is the virtual-currency purchase body
type EscudosPurchaseRequest struct {
	CourseID      uint   `json:"courseId"`
	PaymentMethod string `json:"paymentMethod"`
	Amount        uint   `json:"amount"`
	Currency      string `json:"currency"`
}

// CheckoutRequest is the hosted-checkout body (card path)
type CheckoutRequest struct {
	Type     string  `json:"type"` // course, plan
	CourseID uint    `json:"courseId"`
	PlanID   uint    `json:"planId"`
	Amount   float64 `json:"amount"`
}

// ConfirmRequest settles a pending checkout
type ConfirmRequest struct {
	OrderID string `json:"orderId"`
}

// Options validates the purchase-options body
func Options() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(OptionsRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if reqData.CourseID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"courseId": "Course ID is required!"})
		}
		c.Locals("validatedOptions", reqData)
		return c.Next()
	}
}

// EscudosPurchase validates the escudos purchase body
func EscudosPurchase() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(EscudosPurchaseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.CourseID == 0 {
			errors["courseId"] = "Course ID is required!"
		}
		if reqData.PaymentMethod != "" && reqData.PaymentMethod != "escudos" {
			errors["paymentMethod"] = "Payment method must be escudos!"
		}
		if reqData.Currency != "" && strings.ToUpper(reqData.Currency) != "ESCUDOS" {
			errors["currency"] = "Currency must be ESCUDOS!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEscudosPurchase", reqData)
		return c.Next()
	}
}

// Checkout validates the card-checkout body
func Checkout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CheckoutRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		switch reqData.Type {
		case "course":
			if reqData.CourseID == 0 {
				errors["courseId"] = "Course ID is required for a course checkout!"
			}
		case "plan":
			if reqData.PlanID == 0 {
				errors["planId"] = "Plan ID is required for a plan checkout!"
			}
		default:
			errors["type"] = "Type must be course or plan!"
		}
		if reqData.Amount < 0 {
			errors["amount"] = "Amount cannot be negative!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCheckout", reqData)
		return c.Next()
	}
}

// Confirm validates the checkout confirmation body
func Confirm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ConfirmRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if strings.TrimSpace(reqData.OrderID) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"orderId": "Order ID is required!"})
		}
		c.Locals("validatedConfirm", reqData)
		return c.Next()
	}
}
