package courseValidator

import (
	"cyberacademy/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CompletionRequest is the mark-lesson-complete body
type CompletionRequest struct {
	Completed     *bool `json:"completed"`
	WatchedTime   int   `json:"watchedTime"`
	VideoDuration int   `json:"videoDuration"`
}

// ListQuery holds catalog filters and pagination
type ListQuery struct {
	Page       *int   `json:"page"`
	Limit      *int   `json:"limit"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
	CourseType string `json:"course_type"`
	Search     string `json:"search"`
}

func parseIDParam(c *fiber.Ctx, param string) (int, bool) {
	idStr := strings.TrimSpace(c.Params(param))
	if idStr == "" {
		return 0, false
	}
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// CourseID validates the :id route parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}
		c.Locals("courseID", id)
		return c.Next()
	}
}

// CourseList validates catalog list filters
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ListQuery)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)
		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit != nil && *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseList", reqData)
		return c.Next()
	}
}

// LessonRoute validates the :course_id/:lesson_id route parameters
func LessonRoute() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseIDParam(c, "course_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}
		lessonID, ok := parseIDParam(c, "lesson_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
		}
		c.Locals("courseID", courseID)
		c.Locals("lessonID", lessonID)
		return c.Next()
	}
}

// MarkLessonComplete validates route parameters and the completion body
func MarkLessonComplete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseIDParam(c, "course_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}
		lessonID, ok := parseIDParam(c, "lesson_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
		}

		reqData := new(CompletionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.Completed == nil {
			errors["completed"] = "Completed flag is required!"
		}
		if reqData.WatchedTime < 0 {
			errors["watchedTime"] = "Watched time cannot be negative!"
		}
		if reqData.VideoDuration < 0 {
			errors["videoDuration"] = "Video duration cannot be negative!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("lessonID", lessonID)
		c.Locals("validatedCompletion", reqData)
		return c.Next()
	}
}
