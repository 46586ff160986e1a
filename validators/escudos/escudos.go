package escudosValidator

import (
	"cyberacademy/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AdjustBalanceRequest is the admin credit/debit body
type AdjustBalanceRequest struct {
	UserID uint   `json:"userId"`
	Amount uint   `json:"amount"`
	Reason string `json:"reason"`
}

// AdjustBalance validates the admin credit/debit body
func AdjustBalance() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AdjustBalanceRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.UserID == 0 {
			errors["userId"] = "User ID is required!"
		}
		if reqData.Amount == 0 {
			errors["amount"] = "Amount must be greater than 0!"
		}
		if len(strings.TrimSpace(reqData.Reason)) < 3 {
			errors["reason"] = "Reason is required!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAdjustBalance", reqData)
		return c.Next()
	}
}
