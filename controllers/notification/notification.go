package notificationController

import (
	"cyberacademy/database"
	"cyberacademy/middleware"
	"cyberacademy/models"
	notificationValidator "cyberacademy/validators/notification"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// CreateNotification creates a popup notification with a scheduling window.
func CreateNotification(c *fiber.Ctx) error {
	adminID, _ := c.Locals("userId").(uint)
	reqData, ok := c.Locals("validatedNotification").(*notificationValidator.NotificationRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	notification := models.PopupNotification{
		Title:     reqData.Title,
		Message:   reqData.Message,
		StartsAt:  reqData.StartsAt,
		EndsAt:    reqData.EndsAt,
		IsActive:  true,
		CreatedBy: adminID,
	}
	if reqData.IsActive != nil {
		notification.IsActive = *reqData.IsActive
	}
	if err := notification.SetRoles(reqData.TargetRoles); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid target roles!", nil)
	}

	if err := database.Database.Db.Create(&notification).Error; err != nil {
		log.Printf("Error creating notification: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create notification!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Notification created successfully!", notification)
}

// UpdateNotification edits a popup notification.
func UpdateNotification(c *fiber.Ctx) error {
	notificationID := c.Locals("notificationID").(int)
	reqData, ok := c.Locals("validatedNotification").(*notificationValidator.NotificationRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var notification models.PopupNotification
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", notificationID, false).First(&notification).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Notification not found!", nil)
	}

	notification.Title = reqData.Title
	notification.Message = reqData.Message
	notification.StartsAt = reqData.StartsAt
	notification.EndsAt = reqData.EndsAt
	// The scheduler may have deactivated this popup; only an explicit flag
	// changes that
	if reqData.IsActive != nil {
		notification.IsActive = *reqData.IsActive
	}
	if err := notification.SetRoles(reqData.TargetRoles); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid target roles!", nil)
	}

	if err := database.Database.Db.Save(&notification).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update notification!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification updated successfully!", notification)
}

// DeleteNotification soft-deletes a popup notification.
func DeleteNotification(c *fiber.Ctx) error {
	notificationID := c.Locals("notificationID").(int)

	var notification models.PopupNotification
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", notificationID, false).First(&notification).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Notification not found!", nil)
	}

	if err := database.Database.Db.Model(&notification).Updates(map[string]interface{}{
		"is_deleted": true,
		"is_active":  false,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete notification!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification deleted successfully!", nil)
}

// GetNotifications lists all popups for the admin view.
func GetNotifications(c *fiber.Ctx) error {
	var notifications []models.PopupNotification
	if err := database.Database.Db.Where("is_deleted = ?", false).
		Order("starts_at desc").Find(&notifications).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications fetched successfully!", notifications)
}

// GetActiveNotifications returns the popups whose window covers now and whose
// target roles include the caller's role. An empty target list means everyone.
func GetActiveNotifications(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	now := time.Now()
	var notifications []models.PopupNotification
	if err := database.Database.Db.
		Where("is_deleted = ? AND is_active = ? AND starts_at <= ? AND ends_at >= ?", false, true, now, now).
		Order("starts_at desc").Find(&notifications).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	visible := make([]models.PopupNotification, 0, len(notifications))
	for _, n := range notifications {
		targets, err := n.Targets(user.Role)
		if err != nil {
			log.Printf("Corrupt target roles on notification %d: %v", n.ID, err)
			continue
		}
		if targets {
			visible = append(visible, n)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Active notifications fetched successfully!", visible)
}
