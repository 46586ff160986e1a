package purchaseRoutes

import (
	controllers "cyberacademy/controllers/purchase"
	"cyberacademy/middleware"
	validators "cyberacademy/validators/purchase"

	"github.com/gofiber/fiber/v2"
)

// SetupPurchaseRoutes sets up purchase eligibility, payment and settlement routes
func SetupPurchaseRoutes(app *fiber.App) {
	purchaseGroup := app.Group("/purchase", middleware.JWTMiddleware)

	purchaseGroup.Post("/options", validators.Options(), controllers.GetPurchaseOptions)
	purchaseGroup.Post("/escudos", validators.EscudosPurchase(), controllers.PurchaseWithEscudos)
	purchaseGroup.Post("/checkout", validators.Checkout(), controllers.Checkout)
	purchaseGroup.Post("/plan", controllers.PurchasePlan)
	purchaseGroup.Post("/confirm", validators.Confirm(), controllers.ConfirmCheckout)

	app.Get("/plans", middleware.JWTMiddleware, controllers.GetPlans)
}
