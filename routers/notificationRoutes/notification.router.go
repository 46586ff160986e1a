package notificationRoutes

import (
	controllers "cyberacademy/controllers/notification"
	"cyberacademy/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupNotificationRoutes sets up the user-facing popup feed
func SetupNotificationRoutes(app *fiber.App) {
	app.Get("/notifications/active", middleware.JWTMiddleware, controllers.GetActiveNotifications)
}
