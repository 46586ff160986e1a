package courseController

import (
	"cyberacademy/database"
	"cyberacademy/middleware"
	"cyberacademy/models"
	courseModels "cyberacademy/models/course"
	"cyberacademy/progress"
	"cyberacademy/utils"
	courseValidator "cyberacademy/validators/course"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CourseListItem is a catalog row with the caller's enrollment state
type CourseListItem struct {
	courseModels.Course
	IsEnrolled bool `json:"is_enrolled"`
	IsFree     bool `json:"is_free"`
}

// ModuleWithLessons nests published lessons under their module
type ModuleWithLessons struct {
	courseModels.Module
	Lessons []courseModels.Lesson `json:"lessons"`
}

func fetchUser(c *fiber.Ctx) (*models.User, error) {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// optionalUser resolves the caller on routes that admit anonymous requests.
func optionalUser(c *fiber.Ctx) *models.User {
	user, err := fetchUser(c)
	if err != nil {
		return nil
	}
	return user
}

// GetCourses lists the approved, published catalog with filters and pagination.
// Anonymous callers browse without enrollment state.
func GetCourses(c *fiber.Ctx) error {
	user := optionalUser(c)

	reqData, _ := c.Locals("validatedCourseList").(*courseValidator.ListQuery)

	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).
		Where("is_deleted = ? AND is_approved = ? AND is_published = ?", false, true, true)

	if reqData != nil {
		if reqData.Category != "" {
			db = db.Where("category = ?", reqData.Category)
		}
		if reqData.Difficulty != "" {
			db = db.Where("difficulty = ?", reqData.Difficulty)
		}
		if reqData.CourseType != "" {
			db = db.Where("course_type = ?", reqData.CourseType)
		}
		if reqData.Search != "" {
			db = db.Where("title ILIKE ?", "%"+reqData.Search+"%")
		}
	}

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	result := make([]CourseListItem, len(courses))
	for i, course := range courses {
		result[i] = CourseListItem{Course: course, IsFree: course.IsFree()}

		if user != nil {
			var enrollment courseModels.Enrollment
			if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, course.ID, false).First(&enrollment).Error; err == nil {
				result[i].IsEnrolled = true
			}
		}
	}

	response := map[string]interface{}{
		"courses": result,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// GetCourseDetail returns one catalog course with its module and lesson
// outline. Anonymous callers see published courses only.
func GetCourseDetail(c *fiber.Ctx) error {
	user := optionalUser(c)

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_approved = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	viewerID, viewerRole := uint(0), ""
	if user != nil {
		viewerID, viewerRole = user.ID, user.Role
	}
	if !course.VisibleTo(viewerID, viewerRole) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	isEnrolled := false
	var enrollment courseModels.Enrollment
	if user != nil {
		isEnrolled = database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, course.ID, false).First(&enrollment).Error == nil
	}

	var modules []courseModels.Module
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", course.ID, false).Order("order_index asc, id asc").Find(&modules)

	outline := make([]ModuleWithLessons, len(modules))
	for i, module := range modules {
		outline[i] = ModuleWithLessons{Module: module, Lessons: []courseModels.Lesson{}}

		var lessons []courseModels.Lesson
		database.Database.Db.Where("module_id = ? AND is_deleted = ? AND is_published = ?", module.ID, false, true).
			Order("order_index asc, id asc").Find(&lessons)

		// Content bodies are gated behind enrollment; the outline is public
		if !isEnrolled {
			for j := range lessons {
				lessons[j].TextContent = ""
				lessons[j].VideoURL = ""
				lessons[j].AttachmentURL = ""
			}
		}
		outline[i].Lessons = lessons
	}

	response := map[string]interface{}{
		"course":     course,
		"modules":    outline,
		"isEnrolled": isEnrolled,
		"isFree":     course.IsFree(),
	}
	if isEnrolled {
		response["enrollment"] = enrollment
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", response)
}

// EnrollFreeCourse enrolls the user in a course with no money and no escudos price.
func EnrollFreeCourse(c *fiber.Ctx) error {
	user, err := fetchUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_approved = ? AND is_published = ?", courseID, false, true, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !course.IsFree() {
		return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "This course requires payment!", nil)
	}

	var existing courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, course.ID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
	}

	var totalLessons int64
	database.Database.Db.Model(&courseModels.Lesson{}).
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", course.ID, false, true).Count(&totalLessons)

	enrollment := courseModels.Enrollment{
		UserID:       user.ID,
		CourseID:     course.ID,
		Status:       "ENROLLED",
		TotalLessons: int(totalLessons),
	}
	if err := database.Database.Db.Create(&enrollment).Error; err != nil {
		log.Printf("Error creating enrollment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll!", nil)
	}

	database.Database.Db.Model(&course).Update("enrolled_count", gorm.Expr("enrolled_count + 1"))

	utils.SendEnrollmentEmail(user.Email, user.Name, course.Title)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled successfully!", enrollment)
}

// GetMyEnrollments lists the user's enrollments with the course attached.
func GetMyEnrollments(c *fiber.Ctx) error {
	user, err := fetchUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", user.ID, false).
		Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type EnrollmentWithCourse struct {
		courseModels.Enrollment
		Course courseModels.Course `json:"course"`
	}

	result := make([]EnrollmentWithCourse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		var course courseModels.Course
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", enrollment.CourseID, false).First(&course).Error; err != nil {
			continue
		}
		result = append(result, EnrollmentWithCourse{Enrollment: enrollment, Course: course})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", result)
}

// GetLesson returns one lesson's content for an enrolled user. Opening a
// non-video lesson with no video URL marks it complete.
func GetLesson(c *fiber.Ctx) error {
	user, err := fetchUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?", lessonID, courseID, false, true).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var record courseModels.LessonProgress
	recordErr := database.Database.Db.Where("user_id = ? AND lesson_id = ? AND is_deleted = ?", user.ID, lesson.ID, false).First(&record).Error

	autoCompleted := false
	if progress.AutoCompleteOnOpen(progress.Lesson{ID: lesson.ID, Type: lesson.LessonType, VideoURL: lesson.VideoURL}) {
		if recordErr != nil {
			record = courseModels.LessonProgress{
				UserID:    user.ID,
				CourseID:  uint(courseID),
				LessonID:  lesson.ID,
				Completed: true,
			}
			if err := database.Database.Db.Create(&record).Error; err == nil {
				autoCompleted = true
			}
		} else if !record.Completed {
			if err := database.Database.Db.Model(&record).Update("completed", true).Error; err == nil {
				record.Completed = true
				autoCompleted = true
			}
		}
		if autoCompleted {
			updateEnrollmentProgress(user.ID, uint(courseID))
		}
	}

	response := map[string]interface{}{
		"lesson":        lesson,
		"completed":     record.Completed,
		"autoCompleted": autoCompleted,
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", response)
}

// GetCourseProgress returns the completion summary for the user's enrollment.
func GetCourseProgress(c *fiber.Ctx) error {
	user, err := fetchUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, courseID, false).First(&courseModels.Enrollment{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", nil)
	}

	summary, err := computeCourseProgress(user.ID, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute progress!", nil)
	}

	response := map[string]interface{}{
		"course":   course,
		"progress": summary,
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", response)
}

// MarkLessonComplete upserts the user's completion record for a lesson. Marking
// an already-complete lesson is a no-op success.
func MarkLessonComplete(c *fiber.Ctx) error {
	user, err := fetchUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)
	reqData, ok := c.Locals("validatedCompletion").(*courseValidator.CompletionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, courseID, false).First(&courseModels.Enrollment{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?", lessonID, courseID, false, true).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var record courseModels.LessonProgress
	if err := database.Database.Db.Where("user_id = ? AND lesson_id = ? AND is_deleted = ?", user.ID, lesson.ID, false).First(&record).Error; err != nil {
		record = courseModels.LessonProgress{
			UserID:        user.ID,
			CourseID:      uint(courseID),
			LessonID:      lesson.ID,
			Completed:     *reqData.Completed,
			WatchedTime:   reqData.WatchedTime,
			VideoDuration: reqData.VideoDuration,
		}
		if err := database.Database.Db.Create(&record).Error; err != nil {
			log.Printf("Error creating lesson progress: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
		}
	} else {
		updates := map[string]interface{}{
			"completed":    *reqData.Completed || record.Completed, // never un-complete
			"watched_time": reqData.WatchedTime,
		}
		if reqData.VideoDuration > 0 {
			updates["video_duration"] = reqData.VideoDuration
		}
		if err := database.Database.Db.Model(&record).Updates(updates).Error; err != nil {
			log.Printf("Error updating lesson progress: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
		}
	}

	summary := updateEnrollmentProgress(user.ID, uint(courseID))

	response := map[string]interface{}{
		"lessonId":  lesson.ID,
		"completed": *reqData.Completed || record.Completed,
	}
	if summary != nil {
		response["progress"] = summary
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson progress saved!", response)
}

// computeCourseProgress loads the published lessons and the user's completion
// records and hands both to the tracker.
func computeCourseProgress(userID, courseID uint) (*progress.Summary, error) {
	var lessons []courseModels.Lesson
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).Find(&lessons).Error; err != nil {
		return nil, err
	}

	var records []courseModels.LessonProgress
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).Find(&records).Error; err != nil {
		return nil, err
	}

	trackerLessons := make([]progress.Lesson, len(lessons))
	for i, l := range lessons {
		trackerLessons[i] = progress.Lesson{ID: l.ID, Type: l.LessonType, VideoURL: l.VideoURL}
	}
	trackerRecords := make([]progress.Record, len(records))
	for i, r := range records {
		trackerRecords[i] = progress.Record{LessonID: r.LessonID, Completed: r.Completed}
	}

	summary := progress.Compute(trackerLessons, trackerRecords)
	return &summary, nil
}

// updateEnrollmentProgress refreshes the enrollment's cached aggregate from the
// per-lesson records.
func updateEnrollmentProgress(userID, courseID uint) *progress.Summary {
	summary, err := computeCourseProgress(userID, courseID)
	if err != nil {
		log.Printf("Error computing course progress: %v", err)
		return nil
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return summary
	}

	updates := map[string]interface{}{
		"progress":          summary.Percentage,
		"completed_lessons": summary.CompletedLessons,
		"total_lessons":     summary.TotalLessons,
	}

	switch {
	case summary.TotalLessons > 0 && summary.CompletedLessons == summary.TotalLessons:
		updates["status"] = "COMPLETED"
		if enrollment.CompletedAt == nil {
			now := time.Now()
			updates["completed_at"] = &now
		}
	case summary.CompletedLessons > 0:
		updates["status"] = "IN_PROGRESS"
	}

	if err := database.Database.Db.Model(&enrollment).Updates(updates).Error; err != nil {
		log.Printf("Error updating enrollment progress: %v", err)
	}

	return summary
}
