package instructorValidator

import (
	"cyberacademy/middleware"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CourseRequest is the instructor course create/update body. EscudosPrice is
// advisory: when nil the server fills in floor(price / 0.50).
type CourseRequest struct {
	Title            string  `json:"title" validate:"required,min=3"`
	ShortDescription string  `json:"short_description"`
	Description      string  `json:"description"`
	Price            float64 `json:"price" validate:"gte=0"`
	EscudosPrice     *uint   `json:"escudos_price"`
	Difficulty       string  `json:"difficulty" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	Duration         int64   `json:"duration" validate:"gte=0"`
	CourseType       string  `json:"course_type" validate:"omitempty,oneof=RECORDED ONLINE HYBRID"`
	Category         string  `json:"category"`
}

// ModuleRequest is the module create/update body
type ModuleRequest struct {
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index" validate:"gte=0"`
}

// LessonRequest is the lesson create/update body
type LessonRequest struct {
	Title         string `json:"title" validate:"required,min=3"`
	Description   string `json:"description"`
	LessonType    string `json:"lesson_type" validate:"omitempty,oneof=VIDEO TEXT QUIZ PRACTICAL CTF"`
	TextContent   string `json:"text_content"`
	VideoURL      string `json:"video_url" validate:"omitempty,url"`
	AttachmentURL string `json:"attachment_url" validate:"omitempty,url"`
	Duration      int    `json:"duration" validate:"gte=0"`
	OrderIndex    int    `json:"order_index" validate:"gte=0"`
	IsPublished   *bool  `json:"is_published"`
}

// ProfileRequest is the instructor profile update body
type ProfileRequest struct {
	Title       string            `json:"title"`
	Bio         string            `json:"bio"`
	Expertise   []string          `json:"expertise"`
	SocialLinks map[string]string `json:"social_links"`
}

func validationErrors(err error) map[string]string {
	errors := make(map[string]string)
	for _, fieldErr := range err.(validator.ValidationErrors) {
		field := strings.ToLower(fieldErr.Field())
		switch fieldErr.Tag() {
		case "required":
			errors[field] = "This field is required!"
		case "min":
			errors[field] = "Too short (minimum " + fieldErr.Param() + " characters)!"
		case "gte":
			errors[field] = "Value cannot be negative!"
		case "oneof":
			errors[field] = "Must be one of: " + fieldErr.Param() + "!"
		case "url":
			errors[field] = "Invalid URL!"
		default:
			errors[field] = "Invalid value!"
		}
	}
	return errors
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

// CreateCourse validates the course create body
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}
		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validates the :id parameter and the course body
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}
		reqData := new(CourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}
		c.Locals("courseID", id)
		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
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

// CreateModule validates the :id (course) parameter and the module body
func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}
		reqData := new(ModuleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}
		c.Locals("courseID", id)
		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// ModuleRoute validates the :module_id parameter, optionally with a module body
func ModuleRoute(withBody bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "module_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Module ID!", nil)
		}
		c.Locals("moduleID", id)

		if withBody {
			reqData := new(ModuleRequest)
			if err := c.BodyParser(reqData); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}
			if err := validate.Struct(reqData); err != nil {
				return middleware.ValidationErrorResponse(c, validationErrors(err))
			}
			c.Locals("validatedModule", reqData)
		}
		return c.Next()
	}
}

// CreateLesson validates the :module_id parameter and the lesson body
func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "module_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Module ID!", nil)
		}
		reqData := new(LessonRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}
		c.Locals("moduleID", id)
		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// LessonRoute validates the :lesson_id parameter, optionally with a lesson body
func LessonRoute(withBody bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "lesson_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
		}
		c.Locals("lessonID", id)

		if withBody {
			reqData := new(LessonRequest)
			if err := c.BodyParser(reqData); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}
			if err := validate.Struct(reqData); err != nil {
				return middleware.ValidationErrorResponse(c, validationErrors(err))
			}
			c.Locals("validatedLesson", reqData)
		}
		return c.Next()
	}
}

// UpdateProfile validates the instructor profile body
func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ProfileRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		c.Locals("validatedProfile", reqData)
		return c.Next()
	}
}
