package instructorRoutes

import (
	controllers "cyberacademy/controllers/instructor"
	"cyberacademy/middleware"
	validators "cyberacademy/validators/instructor"

	"github.com/gofiber/fiber/v2"
)

// SetupInstructorRoutes sets up course authoring, profile and stats routes
func SetupInstructorRoutes(app *fiber.App) {
	instructorGroup := app.Group("/instructor", middleware.JWTMiddleware, middleware.RequireRole("INSTRUCTOR", "ADMIN"))

	// Courses
	instructorGroup.Post("/course", validators.CreateCourse(), controllers.CreateCourse)
	instructorGroup.Get("/courses", controllers.GetMyCourses)
	instructorGroup.Put("/course/:id", validators.UpdateCourse(), controllers.UpdateCourse)
	instructorGroup.Delete("/course/:id", validators.CourseID(), controllers.DeleteCourse)
	instructorGroup.Post("/course/:id/publish", validators.CourseID(), controllers.PublishCourse)
	instructorGroup.Post("/course/:id/thumbnail", validators.CourseID(), controllers.UploadThumbnail)

	// Modules
	instructorGroup.Post("/course/:id/module", validators.CreateModule(), controllers.CreateModule)
	instructorGroup.Put("/module/:module_id", validators.ModuleRoute(true), controllers.UpdateModule)
	instructorGroup.Delete("/module/:module_id", validators.ModuleRoute(false), controllers.DeleteModule)

	// Lessons
	instructorGroup.Post("/module/:module_id/lesson", validators.CreateLesson(), controllers.CreateLesson)
	instructorGroup.Put("/lesson/:lesson_id", validators.LessonRoute(true), controllers.UpdateLesson)
	instructorGroup.Delete("/lesson/:lesson_id", validators.LessonRoute(false), controllers.DeleteLesson)

	// Profile and stats
	instructorGroup.Get("/profile", controllers.GetProfile)
	instructorGroup.Put("/profile", validators.UpdateProfile(), controllers.UpdateProfile)
	instructorGroup.Get("/stats", controllers.GetStats)
}
