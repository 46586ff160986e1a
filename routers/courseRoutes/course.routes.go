package courseRoutes

import (
	controllers "cyberacademy/controllers/course"
	"cyberacademy/middleware"
	validators "cyberacademy/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all user-facing catalog and learning routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Catalog is browsable without a token; a valid token adds enrollment state
	courseGroup.Get("/list", middleware.OptionalJWT, validators.CourseList(), controllers.GetCourses)
	courseGroup.Get("/:id", middleware.OptionalJWT, validators.CourseID(), controllers.GetCourseDetail)

	// Enrollment (free courses only; paid courses go through /purchase)
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.CourseID(), controllers.EnrollFreeCourse)

	// Lessons and progress
	courseGroup.Get("/:course_id/lesson/:lesson_id", middleware.JWTMiddleware, validators.LessonRoute(), controllers.GetLesson)
	courseGroup.Post("/:course_id/lesson/:lesson_id/complete", middleware.JWTMiddleware, validators.MarkLessonComplete(), controllers.MarkLessonComplete)
	courseGroup.Get("/:id/progress", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseProgress)

	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetMyEnrollments)
}
