package adminController

import (
	"cyberacademy/database"
	"cyberacademy/middleware"
	"cyberacademy/models"
	courseModels "cyberacademy/models/course"
	"cyberacademy/utils"
	adminValidator "cyberacademy/validators/admin"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// GetPendingCourses lists courses awaiting review, oldest first.
func GetPendingCourses(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).
		Where("is_deleted = ? AND status = ?", false, "PENDING")

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at asc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	type PendingCourse struct {
		courseModels.Course
		InstructorName  string `json:"instructor_name"`
		InstructorEmail string `json:"instructor_email"`
	}

	result := make([]PendingCourse, len(courses))
	for i, course := range courses {
		result[i] = PendingCourse{Course: course}

		var instructor models.User
		if err := database.Database.Db.Where("id = ?", course.InstructorID).First(&instructor).Error; err == nil {
			result[i].InstructorName = instructor.Name
			result[i].InstructorEmail = instructor.Email
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

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending courses fetched successfully!", response)
}

// ApproveCourse approves a pending course and mails the instructor.
func ApproveCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.Status == "APPROVED" {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course is already approved!", nil)
	}

	if err := database.Database.Db.Model(&course).Updates(map[string]interface{}{
		"status":           "APPROVED",
		"is_approved":      true,
		"rejection_reason": "",
	}).Error; err != nil {
		log.Printf("Error approving course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve course!", nil)
	}

	var instructor models.User
	if err := database.Database.Db.Where("id = ?", course.InstructorID).First(&instructor).Error; err == nil {
		utils.SendCourseApprovedEmail(instructor.Email, instructor.Name, course.Title)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course approved!", course)
}

// RejectCourse rejects a pending course with a reason and mails the instructor.
func RejectCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	reqData, ok := c.Locals("validatedReject").(*adminValidator.RejectRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if err := database.Database.Db.Model(&course).Updates(map[string]interface{}{
		"status":           "REJECTED",
		"is_approved":      false,
		"is_published":     false,
		"rejection_reason": reqData.Reason,
	}).Error; err != nil {
		log.Printf("Error rejecting course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reject course!", nil)
	}

	var instructor models.User
	if err := database.Database.Db.Where("id = ?", course.InstructorID).First(&instructor).Error; err == nil {
		utils.SendCourseRejectedEmail(instructor.Email, instructor.Name, course.Title, reqData.Reason)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course rejected!", course)
}

// GetUsers lists users with pagination, filterable by role and search.
func GetUsers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.User{}).Where("is_deleted = ?", false)

	if role := c.Query("role"); role != "" {
		db = db.Where("role = ?", role)
	}
	if search := c.Query("search"); search != "" {
		db = db.Where("name ILIKE ? OR email ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	db.Count(&total)

	var users []models.User
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	for i := range users {
		users[i].Password = ""
	}

	response := map[string]interface{}{
		"users": users,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", response)
}

// ChangeUserRole sets a user's role.
func ChangeUserRole(c *fiber.Ctx) error {
	adminID, _ := c.Locals("userId").(uint)
	targetID := c.Locals("targetUserID").(int)
	reqData, ok := c.Locals("validatedRole").(*adminValidator.RoleChangeRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if uint(targetID) == adminID {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Cannot change your own role!", nil)
	}

	var target models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetID, false).First(&target).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := database.Database.Db.Model(&target).Update("role", reqData.Role).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update role!", nil)
	}

	target.Password = ""
	target.Role = reqData.Role

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role updated successfully!", target)
}

// SetUserActive activates or deactivates a user account.
func SetUserActive(c *fiber.Ctx) error {
	adminID, _ := c.Locals("userId").(uint)
	targetID := c.Locals("targetUserID").(int)
	reqData, ok := c.Locals("validatedActivate").(*adminValidator.ActivateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if uint(targetID) == adminID {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Cannot deactivate your own account!", nil)
	}

	var target models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetID, false).First(&target).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := database.Database.Db.Model(&target).Update("is_active", *reqData.Active).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	message := "User deactivated!"
	if *reqData.Active {
		message = "User activated!"
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
		"userId":   target.ID,
		"isActive": *reqData.Active,
	})
}

// GetDashboard aggregates platform counts, revenue and recent activity.
func GetDashboard(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalUsers, totalStudents, totalInstructors int64
	db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&totalUsers)
	db.Model(&models.User{}).Where("is_deleted = ? AND role = ?", false, "STUDENT").Count(&totalStudents)
	db.Model(&models.User{}).Where("is_deleted = ? AND role = ?", false, "INSTRUCTOR").Count(&totalInstructors)

	var totalCourses, pendingCourses, approvedCourses, publishedCourses int64
	db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	db.Model(&courseModels.Course{}).Where("is_deleted = ? AND status = ?", false, "PENDING").Count(&pendingCourses)
	db.Model(&courseModels.Course{}).Where("is_deleted = ? AND status = ?", false, "APPROVED").Count(&approvedCourses)
	db.Model(&courseModels.Course{}).Where("is_deleted = ? AND is_published = ?", false, true).Count(&publishedCourses)

	var totalEnrollments, completedEnrollments int64
	db.Model(&courseModels.Enrollment{}).Where("is_deleted = ?", false).Count(&totalEnrollments)
	db.Model(&courseModels.Enrollment{}).Where("is_deleted = ? AND status = ?", false, "COMPLETED").Count(&completedEnrollments)

	var activeSubscriptions int64
	db.Model(&models.User{}).Where("is_deleted = ? AND subscription_status = ?", false, "ACTIVE").Count(&activeSubscriptions)

	var escudosSpent int64
	db.Model(&models.EscudoTransaction{}).
		Where("transaction_type = ? AND status = ? AND is_deleted = ?", models.TransactionTypeCoursePurchase, models.TransactionStatusCompleted, false).
		Select("COALESCE(SUM(escudos), 0)").Scan(&escudosSpent)

	var moneyRevenue float64
	db.Model(&models.EscudoTransaction{}).
		Where("money > 0 AND status = ? AND is_deleted = ?", models.TransactionStatusCompleted, false).
		Select("COALESCE(SUM(money), 0)").Scan(&moneyRevenue)

	var recentLogins []models.LoginTracking
	db.Where("is_deleted = ?", false).Order("timestamp desc").Limit(10).Find(&recentLogins)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"users": fiber.Map{
			"total":       totalUsers,
			"students":    totalStudents,
			"instructors": totalInstructors,
		},
		"courses": fiber.Map{
			"total":     totalCourses,
			"pending":   pendingCourses,
			"approved":  approvedCourses,
			"published": publishedCourses,
		},
		"enrollments": fiber.Map{
			"total":     totalEnrollments,
			"completed": completedEnrollments,
		},
		"subscriptions": fiber.Map{
			"active": activeSubscriptions,
		},
		"revenue": fiber.Map{
			"escudosSpent": escudosSpent,
			"money":        moneyRevenue,
		},
		"recentLogins": recentLogins,
	})
}
