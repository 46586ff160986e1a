package instructorController

import (
	"cyberacademy/database"
	"cyberacademy/middleware"
	"cyberacademy/models"
	courseModels "cyberacademy/models/course"
	"cyberacademy/purchase"
	"cyberacademy/utils"
	instructorValidator "cyberacademy/validators/instructor"
	"log"

	"github.com/gofiber/fiber/v2"
)

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

// ownCourse loads a course owned by the caller. Admins may touch any course.
func ownCourse(user *models.User, courseID int) (*courseModels.Course, error) {
	var course courseModels.Course
	db := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false)
	if user.Role != "ADMIN" {
		db = db.Where("instructor_id = ?", user.ID)
	}
	if err := db.First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// CreateCourse creates a course in PENDING, unpublished state. An omitted
// escudos price defaults to the advisory conversion from the money price.
func CreateCourse(c *fiber.Ctx) error {
	user, err := fetchUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*instructorValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	escudosPrice := purchase.SuggestedEscudosPrice(reqData.Price)
	if reqData.EscudosPrice != nil {
		escudosPrice = *reqData.EscudosPrice
	}

	course := courseModels.Course{
		Title:            reqData.Title,
		ShortDescription: reqData.ShortDescription,
		Description:      reqData.Description,
		Price:            reqData.Price,
		EscudosPrice:     escudosPrice,
		Category:         reqData.Category,
		InstructorID:     user.ID,
		Status:           "PENDING",
	}
	if reqData.Difficulty != "" {
		course.Difficulty = reqData.Difficulty
	}
	if reqData.CourseType != "" {
		course.CourseType = reqData.CourseType
	}
	if reqData.Duration > 0 {
		course.Duration = reqData.Duration
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	utils.SendCourseSubmittedEmail(user.Email, user.Name, course.Title)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created, pending approval!", course)
}

// GetMyCourses lists the caller's courses in every approval state.
func GetMyCourses(c *fiber.Ctx) error {
	user, err := fetchUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var courses []courseModels.Course
	if err := database.Database.Db.Where("instructor_id = ? AND is_deleted = ?", user.ID, false).
		Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

// UpdateCourse edits an own course. Editing an approved course sends it back
// through review.
func UpdateCourse(c *fiber.Ctx) error {
	user, err := fetchUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	reqData, ok := c.Locals("validatedCourse").(*instructorValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, err := ownCourse(user, courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	escudosPrice := purchase.SuggestedEscudosPrice(reqData.Price)
	if reqData.EscudosPrice != nil {
		escudosPrice = *reqData.EscudosPrice
	}

	updates := map[string]interface{}{
		"title":             reqData.Title,
		"short_description": reqData.ShortDescription,
		"description":       reqData.Description,
		"price":             reqData.Price,
		"escudos_price":     escudosPrice,
		"category":          reqData.Category,
		"duration":          reqData.Duration,
		// Content changed, review again
		"status":           "PENDING",
		"is_approved":      false,
		"rejection_reason": "",
	}
	if reqData.Difficulty != "" {
		updates["difficulty"] = reqData.Difficulty
	}
	if reqData.CourseType != "" {
		updates["course_type"] = reqData.CourseType
	}

	if err := database.Database.Db.Model(course).Updates(updates).Error; err != nil {
		log.Printf("Error updating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	utils.SendCourseSubmittedEmail(user.Email, user.Name, reqData.Title)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated, pending approval!", course)
}

// DeleteCourse soft-deletes an own course.
func DeleteCourse(c *fiber.Ctx) error {
	user, err := fetchUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	course, err := ownCourse(user, courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if err := database.Database.Db.Model(course).Updates(map[string]interface{}{
		"is_deleted":   true,
		"is_published": false,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// PublishCourse toggles visibility of an approved course.
func PublishCourse(c *fiber.Ctx) error {
	user, err := fetchUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	course, err := ownCourse(user, courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !course.IsApproved {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course is not approved yet!", nil)
	}

	newState := !course.IsPublished
	if err := database.Database.Db.Model(course).Update("is_published", newState).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	message := "Course unpublished!"
	if newState {
		message = "Course published!"
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{"is_published": newState})
}

// UploadThumbnail stores a multipart thumbnail and sets the course URL.
func UploadThumbnail(c *fiber.Ctx) error {
	user, err := fetchUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	course, err := ownCourse(user, courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	file, err := c.FormFile("thumbnail")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Thumbnail file is required!", nil)
	}

	savedPath, err := utils.SaveUploadedFile(file, "./public/uploads")
	if err != nil {
		log.Printf("Error saving thumbnail: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save thumbnail!", nil)
	}

	thumbnailURL := utils.GetFileURL(savedPath)
	if err := database.Database.Db.Model(course).Update("thumbnail_url", thumbnailURL).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Thumbnail uploaded successfully!", fiber.Map{
		"thumbnail_url": thumbnailURL,
	})
}

// --- Modules ---

// CreateModule adds a module to an own course.
func CreateModule(c *fiber.Ctx) error {
	user, err := fetchUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	reqData, ok := c.Locals("validatedModule").(*instructorValidator.ModuleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, err := ownCourse(user, courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	module := courseModels.Module{
		CourseID:    course.ID,
		Title:       reqData.Title,
		Description: reqData.Description,
		OrderIndex:  reqData.OrderIndex,
	}
	if err := database.Database.Db.Create(&module).Error; err != nil {
		log.Printf("Error creating module: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

// ownModule loads a module whose course the caller owns.
func ownModule(user *models.User, moduleID int) (*courseModels.Module, error) {
	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return nil, err
	}
	if _, err := ownCourse(user, int(module.CourseID)); err != nil {
		return nil, err
	}
	return &module, nil
}

// UpdateModule edits a module on an own course.
func UpdateModule(c *fiber.Ctx) error {
	user, err := fetchUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	moduleID := c.Locals("moduleID").(int)
	reqData, ok := c.Locals("validatedModule").(*instructorValidator.ModuleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	module, err := ownModule(user, moduleID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	if err := database.Database.Db.Model(module).Updates(map[string]interface{}{
		"title":       reqData.Title,
		"description": reqData.Description,
		"order_index": reqData.OrderIndex,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", module)
}

// DeleteModule soft-deletes a module and its lessons.
func DeleteModule(c *fiber.Ctx) error {
	user, err := fetchUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	moduleID := c.Locals("moduleID").(int)

	module, err := ownModule(user, moduleID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	tx := database.Database.Db.Begin()
	if tx.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start transaction!", nil)
	}

	if err := tx.Model(module).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}
	if err := tx.Model(&courseModels.Lesson{}).Where("module_id = ?", module.ID).
		Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lessons!", nil)
	}
	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully!", nil)
}

// --- Lessons ---

// CreateLesson adds a lesson to a module on an own course.
func CreateLesson(c *fiber.Ctx) error {
	user, err := fetchUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	moduleID := c.Locals("moduleID").(int)
	reqData, ok := c.Locals("validatedLesson").(*instructorValidator.LessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	module, err := ownModule(user, moduleID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	lesson := courseModels.Lesson{
		CourseID:      module.CourseID,
		ModuleID:      module.ID,
		Title:         reqData.Title,
		Description:   reqData.Description,
		TextContent:   reqData.TextContent,
		VideoURL:      reqData.VideoURL,
		AttachmentURL: reqData.AttachmentURL,
		Duration:      reqData.Duration,
		OrderIndex:    reqData.OrderIndex,
	}
	if reqData.LessonType != "" {
		lesson.LessonType = reqData.LessonType
	}
	if reqData.IsPublished != nil {
		lesson.IsPublished = *reqData.IsPublished
	}

	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		log.Printf("Error creating lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	syncEnrollmentTotals(lesson.CourseID)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// ownLesson loads a lesson whose course the caller owns.
func ownLesson(user *models.User, lessonID int) (*courseModels.Lesson, error) {
	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return nil, err
	}
	if _, err := ownCourse(user, int(lesson.CourseID)); err != nil {
		return nil, err
	}
	return &lesson, nil
}

// UpdateLesson edits a lesson on an own course.
func UpdateLesson(c *fiber.Ctx) error {
	user, err := fetchUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	lessonID := c.Locals("lessonID").(int)
	reqData, ok := c.Locals("validatedLesson").(*instructorValidator.LessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lesson, err := ownLesson(user, lessonID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	updates := map[string]interface{}{
		"title":          reqData.Title,
		"description":    reqData.Description,
		"text_content":   reqData.TextContent,
		"video_url":      reqData.VideoURL,
		"attachment_url": reqData.AttachmentURL,
		"duration":       reqData.Duration,
		"order_index":    reqData.OrderIndex,
	}
	if reqData.LessonType != "" {
		updates["lesson_type"] = reqData.LessonType
	}
	if reqData.IsPublished != nil {
		updates["is_published"] = *reqData.IsPublished
	}

	if err := database.Database.Db.Model(lesson).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	syncEnrollmentTotals(lesson.CourseID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// DeleteLesson soft-deletes a lesson.
func DeleteLesson(c *fiber.Ctx) error {
	user, err := fetchUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	lessonID := c.Locals("lessonID").(int)

	lesson, err := ownLesson(user, lessonID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if err := database.Database.Db.Model(lesson).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	syncEnrollmentTotals(lesson.CourseID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}

// syncEnrollmentTotals refreshes the cached lesson total on every enrollment of
// a course after its lesson list changes.
func syncEnrollmentTotals(courseID uint) {
	var total int64
	database.Database.Db.Model(&courseModels.Lesson{}).
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).Count(&total)

	if err := database.Database.Db.Model(&courseModels.Enrollment{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Update("total_lessons", total).Error; err != nil {
		log.Printf("Error syncing enrollment totals: %v", err)
	}
}

// --- Profile and stats ---

// GetProfile returns the caller's instructor profile with decoded JSON fields.
func GetProfile(c *fiber.Ctx) error {
	user, err := fetchUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var profile models.InstructorProfile
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", user.Email, false).First(&profile).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Profile not found!", nil)
	}

	expertise, err := profile.ExpertiseList()
	if err != nil {
		log.Printf("Error decoding expertise for profile %d: %v", profile.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Corrupt profile data!", nil)
	}
	links, err := profile.Links()
	if err != nil {
		log.Printf("Error decoding social links for profile %d: %v", profile.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Corrupt profile data!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", fiber.Map{
		"id":           profile.ID,
		"email":        profile.Email,
		"title":        profile.Title,
		"bio":          profile.Bio,
		"expertise":    expertise,
		"social_links": links,
	})
}

// UpdateProfile upserts the caller's instructor profile.
func UpdateProfile(c *fiber.Ctx) error {
	user, err := fetchUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedProfile").(*instructorValidator.ProfileRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var profile models.InstructorProfile
	isNew := database.Database.Db.Where("email = ? AND is_deleted = ?", user.Email, false).First(&profile).Error != nil

	profile.UserID = user.ID
	profile.Email = user.Email
	profile.Title = reqData.Title
	profile.Bio = reqData.Bio
	if err := profile.SetExpertise(reqData.Expertise); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid expertise list!", nil)
	}
	if err := profile.SetLinks(reqData.SocialLinks); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid social links!", nil)
	}

	var dbErr error
	if isNew {
		dbErr = database.Database.Db.Create(&profile).Error
	} else {
		dbErr = database.Database.Db.Save(&profile).Error
	}
	if dbErr != nil {
		log.Printf("Error saving instructor profile: %v", dbErr)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save profile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile saved successfully!", profile)
}

// GetStats computes the caller's teaching stats on read.
func GetStats(c *fiber.Ctx) error {
	user, err := fetchUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	db := database.Database.Db

	var totalCourses, approvedCourses, pendingCourses, rejectedCourses int64
	db.Model(&courseModels.Course{}).Where("instructor_id = ? AND is_deleted = ?", user.ID, false).Count(&totalCourses)
	db.Model(&courseModels.Course{}).Where("instructor_id = ? AND is_deleted = ? AND status = ?", user.ID, false, "APPROVED").Count(&approvedCourses)
	db.Model(&courseModels.Course{}).Where("instructor_id = ? AND is_deleted = ? AND status = ?", user.ID, false, "PENDING").Count(&pendingCourses)
	db.Model(&courseModels.Course{}).Where("instructor_id = ? AND is_deleted = ? AND status = ?", user.ID, false, "REJECTED").Count(&rejectedCourses)

	var courseIDs []uint
	db.Model(&courseModels.Course{}).Where("instructor_id = ? AND is_deleted = ?", user.ID, false).Pluck("id", &courseIDs)

	var totalEnrollments int64
	var escudosRevenue int64
	var moneyRevenue float64
	if len(courseIDs) > 0 {
		db.Model(&courseModels.Enrollment{}).Where("course_id IN ? AND is_deleted = ?", courseIDs, false).Count(&totalEnrollments)

		db.Model(&models.EscudoTransaction{}).
			Where("reference_type = ? AND reference_id IN ? AND status = ? AND is_deleted = ?", "course", courseIDs, models.TransactionStatusCompleted, false).
			Select("COALESCE(SUM(escudos), 0)").Scan(&escudosRevenue)
		db.Model(&models.EscudoTransaction{}).
			Where("reference_type = ? AND reference_id IN ? AND status = ? AND is_deleted = ?", "course", courseIDs, models.TransactionStatusCompleted, false).
			Select("COALESCE(SUM(money), 0)").Scan(&moneyRevenue)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully!", fiber.Map{
		"courses": fiber.Map{
			"total":    totalCourses,
			"approved": approvedCourses,
			"pending":  pendingCourses,
			"rejected": rejectedCourses,
		},
		"enrollments": totalEnrollments,
		"revenue": fiber.Map{
			"escudos": escudosRevenue,
			"money":   moneyRevenue,
		},
	})
}
