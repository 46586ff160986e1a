package escudosController

import (
	"cyberacademy/database"
	"cyberacademy/middleware"
	"cyberacademy/models"
	"cyberacademy/utils"
	escudosValidator "cyberacademy/validators/escudos"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
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

// GetBalance returns the caller's escudo balance.
func GetBalance(c *fiber.Ctx) error {
	user, err := fetchUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Balance fetched successfully!", fiber.Map{
		"escudos":            user.Escudos,
		"subscriptionStatus": user.SubscriptionStatus,
	})
}

func transactionHistory(c *fiber.Ctx, userID uint) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.EscudoTransaction{}).
		Where("user_id = ? AND is_deleted = ?", userID, false)

	if txType := c.Query("type"); txType != "" {
		db = db.Where("transaction_type = ?", txType)
	}
	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	db.Count(&total)

	var transactions []models.EscudoTransaction
	if err := db.Offset(offset).Limit(limit).Order("transaction_date desc").Find(&transactions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch transactions!", nil)
	}

	response := map[string]interface{}{
		"transactions": transactions,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transactions fetched successfully!", response)
}

// GetHistory returns the caller's paginated ledger, filterable by type.
func GetHistory(c *fiber.Ctx) error {
	user, err := fetchUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	return transactionHistory(c, user.ID)
}

// adjustBalance applies an admin credit or debit with a ledger row.
func adjustBalance(c *fiber.Ctx, credit bool) error {
	admin, err := fetchUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedAdjustBalance").(*escudosValidator.AdjustBalanceRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var target models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.UserID, false).First(&target).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Target user not found!", nil)
	}

	tx := database.Database.Db.Begin()
	if tx.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start transaction!", nil)
	}

	var newBalance uint
	transactionType := models.TransactionTypeAdminCredit

	if credit {
		if err := tx.Model(&models.User{}).Where("id = ?", target.ID).
			Update("escudos", gorm.Expr("escudos + ?", reqData.Amount)).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to adjust balance!", nil)
		}
		newBalance = target.Escudos + reqData.Amount
	} else {
		transactionType = models.TransactionTypeAdminDebit
		// Conditional, same as a purchase: never drive the balance negative
		result := tx.Model(&models.User{}).
			Where("id = ? AND escudos >= ?", target.ID, reqData.Amount).
			Update("escudos", gorm.Expr("escudos - ?", reqData.Amount))
		if result.Error != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to adjust balance!", nil)
		}
		if result.RowsAffected == 0 {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Insufficient balance for debit!", nil)
		}
		newBalance = target.Escudos - reqData.Amount
	}

	transaction := models.EscudoTransaction{
		UserID:          target.ID,
		TransactionType: transactionType,
		Escudos:         reqData.Amount,
		Currency:        "ESCUDOS",
		BalanceBefore:   target.Escudos,
		BalanceAfter:    newBalance,
		Status:          models.TransactionStatusCompleted,
		Description:     reqData.Reason,
		AdminID:         admin.ID,
		Reason:          reqData.Reason,
		TransactionDate: time.Now(),
	}
	if err := tx.Create(&transaction).Error; err != nil {
		tx.Rollback()
		log.Printf("Error creating admin adjustment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record transaction!", nil)
	}

	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to adjust balance!", nil)
	}

	utils.SendEscudosAdjustedEmail(target.Email, target.Name, reqData.Amount, credit, newBalance)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Balance adjusted successfully!", fiber.Map{
		"userId":      target.ID,
		"newBalance":  newBalance,
		"transaction": transaction,
	})
}

// AdminCredit credits escudos to a user's balance.
func AdminCredit(c *fiber.Ctx) error {
	return adjustBalance(c, true)
}

// AdminDebit debits escudos from a user's balance.
func AdminDebit(c *fiber.Ctx) error {
	return adjustBalance(c, false)
}

// AdminGetBalance returns any user's balance (admin view), ?userId=.
func AdminGetBalance(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Query("userId"))
	if err != nil || userID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
	}

	var target models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&target).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Balance fetched successfully!", fiber.Map{
		"userId":             target.ID,
		"name":               target.Name,
		"email":              target.Email,
		"escudos":            target.Escudos,
		"subscriptionStatus": target.SubscriptionStatus,
	})
}

// AdminGetHistory returns any user's ledger (admin view), ?userId=.
func AdminGetHistory(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Query("userId"))
	if err != nil || userID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
	}

	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&models.User{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	return transactionHistory(c, uint(userID))
}
