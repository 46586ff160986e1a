package escudosRoutes

import (
	controllers "cyberacademy/controllers/escudos"
	"cyberacademy/middleware"
	validators "cyberacademy/validators/escudos"

	"github.com/gofiber/fiber/v2"
)

// SetupEscudosRoutes sets up wallet and admin balance routes
func SetupEscudosRoutes(app *fiber.App) {
	escudosGroup := app.Group("/escudos", middleware.JWTMiddleware)

	escudosGroup.Get("/balance", controllers.GetBalance)
	escudosGroup.Get("/history", controllers.GetHistory)

	adminGroup := escudosGroup.Group("/admin", middleware.RequireRole("ADMIN"))
	adminGroup.Post("/credit", validators.AdjustBalance(), controllers.AdminCredit)
	adminGroup.Post("/debit", validators.AdjustBalance(), controllers.AdminDebit)
	adminGroup.Get("/balance", controllers.AdminGetBalance)
	adminGroup.Get("/history", controllers.AdminGetHistory)
}
