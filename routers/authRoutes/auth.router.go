package authRoutes

import (
	controllers "cyberacademy/controllers/auth"
	"cyberacademy/middleware"
	validators "cyberacademy/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up signup, login and the self endpoint
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", validators.Signup(), controllers.Signup)
	authGroup.Post("/login", validators.Login(), controllers.Login)
	authGroup.Get("/me", middleware.JWTMiddleware, controllers.Me)
}
