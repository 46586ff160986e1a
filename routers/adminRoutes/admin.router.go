package adminRoutes

import (
	adminControllers "cyberacademy/controllers/admin"
	notificationControllers "cyberacademy/controllers/notification"
	"cyberacademy/middleware"
	adminValidators "cyberacademy/validators/admin"
	notificationValidators "cyberacademy/validators/notification"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up course approval, user administration, dashboard and
// popup notification management
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))

	// Course approval workflow
	adminGroup.Get("/courses/pending", adminControllers.GetPendingCourses)
	adminGroup.Post("/course/:id/approve", adminValidators.CourseID(), adminControllers.ApproveCourse)
	adminGroup.Post("/course/:id/reject", adminValidators.RejectCourse(), adminControllers.RejectCourse)

	// User administration
	adminGroup.Get("/users", adminControllers.GetUsers)
	adminGroup.Put("/user/:id/role", adminValidators.ChangeRole(), adminControllers.ChangeUserRole)
	adminGroup.Put("/user/:id/activate", adminValidators.Activate(), adminControllers.SetUserActive)

	// Dashboard
	adminGroup.Get("/dashboard", adminControllers.GetDashboard)

	// Popup notifications
	adminGroup.Post("/notification", notificationValidators.Create(), notificationControllers.CreateNotification)
	adminGroup.Put("/notification/:id", notificationValidators.Update(), notificationControllers.UpdateNotification)
	adminGroup.Delete("/notification/:id", notificationValidators.NotificationID(), notificationControllers.DeleteNotification)
	adminGroup.Get("/notifications", notificationControllers.GetNotifications)
}
