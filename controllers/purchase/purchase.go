package purchaseController

import (
	"cyberacademy/database"
	"cyberacademy/middleware"
	"cyberacademy/models"
	courseModels "cyberacademy/models/course"
	"cyberacademy/purchase"
	"cyberacademy/utils"
	purchaseValidator "cyberacademy/validators/purchase"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const subscriptionDays = 30

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

func loadPlanTiers() ([]purchase.Plan, error) {
	var plans []models.SubscriptionPlan
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("sort_order asc").Find(&plans).Error; err != nil {
		return nil, err
	}

	tiers := make([]purchase.Plan, len(plans))
	for i, p := range plans {
		tiers[i] = purchase.Plan{ID: p.ID, Name: p.Name, Price: p.Price, Escudos: p.Escudos}
	}
	return tiers, nil
}

func currentPlanOf(user *models.User) *purchase.Plan {
	if user.SubscriptionPlanID == nil || user.SubscriptionStatus != "ACTIVE" {
		return nil
	}
	var plan models.SubscriptionPlan
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", *user.SubscriptionPlanID, false).First(&plan).Error; err != nil {
		return nil
	}
	return &purchase.Plan{ID: plan.ID, Name: plan.Name, Price: plan.Price, Escudos: plan.Escudos}
}

// GetPurchaseOptions resolves how the caller may pay for a course. Enrollment
// is checked before any arithmetic.
func GetPurchaseOptions(c *fiber.Ctx) error {
	user, err := fetchUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedOptions").(*purchaseValidator.OptionsRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_approved = ? AND is_published = ?", reqData.CourseID, false, true, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, course.ID, false).First(&courseModels.Enrollment{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", fiber.Map{
			"alreadyEnrolled": true,
		})
	}

	tiers, err := loadPlanTiers()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load subscription plans!", nil)
	}

	options := purchase.Resolve(user.Escudos, currentPlanOf(user), purchase.CoursePricing{
		Price:        course.Price,
		EscudosPrice: course.EscudosPrice,
	}, tiers)

	response := map[string]interface{}{
		"course": course,
		"user": map[string]interface{}{
			"escudos":            user.Escudos,
			"subscriptionPlan":   options.CurrentPlan,
			"subscriptionStatus": user.SubscriptionStatus,
		},
		"purchaseOptions": options,
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Purchase options resolved!", response)
}

// PurchaseWithEscudos buys a course with the caller's escudo balance. The
// decrement is conditional so a losing concurrent purchase fails instead of
// driving the balance negative.
func PurchaseWithEscudos(c *fiber.Ctx) error {
	user, err := fetchUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedEscudosPurchase").(*purchaseValidator.EscudosPurchaseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_approved = ? AND is_published = ?", reqData.CourseID, false, true, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, course.ID, false).First(&courseModels.Enrollment{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
	}

	if course.IsFree() {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course is free, use the enroll endpoint!", nil)
	}

	price := course.EscudosPrice
	if user.Escudos < price {
		return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "Insufficient escudos balance!", fiber.Map{
			"escudosNeeded": price - user.Escudos,
		})
	}

	tx := database.Database.Db.Begin()
	if tx.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start transaction!", nil)
	}

	// Conditional decrement: only succeeds while the balance still covers the price
	result := tx.Model(&models.User{}).
		Where("id = ? AND escudos >= ?", user.ID, price).
		Update("escudos", gorm.Expr("escudos - ?", price))
	if result.Error != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process payment!", nil)
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "Insufficient escudos balance!", nil)
	}

	var totalLessons int64
	tx.Model(&courseModels.Lesson{}).
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", course.ID, false, true).Count(&totalLessons)

	enrollment := courseModels.Enrollment{
		UserID:       user.ID,
		CourseID:     course.ID,
		Status:       "ENROLLED",
		TotalLessons: int(totalLessons),
	}
	if err := tx.Create(&enrollment).Error; err != nil {
		tx.Rollback()
		log.Printf("Error creating enrollment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll!", nil)
	}

	transaction := models.EscudoTransaction{
		UserID:          user.ID,
		TransactionType: models.TransactionTypeCoursePurchase,
		Escudos:         price,
		Currency:        "ESCUDOS",
		BalanceBefore:   user.Escudos,
		BalanceAfter:    user.Escudos - price,
		Status:          models.TransactionStatusCompleted,
		Description:     fmt.Sprintf("Course purchase: %s", course.Title),
		ReferenceType:   "course",
		ReferenceID:     course.ID,
		ReferenceName:   course.Title,
		TransactionDate: time.Now(),
	}
	if err := tx.Create(&transaction).Error; err != nil {
		tx.Rollback()
		log.Printf("Error creating transaction: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record transaction!", nil)
	}

	if err := tx.Model(&course).Update("enrolled_count", gorm.Expr("enrolled_count + 1")).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to complete purchase!", nil)
	}

	utils.SendPurchaseReceiptEmail(user.Email, user.Name, course.Title, price, user.Escudos-price)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course purchased successfully!", fiber.Map{
		"enrollment":  enrollment,
		"transaction": transaction,
		"newBalance":  user.Escudos - price,
	})
}

// Checkout creates a hosted-checkout transaction for a course or plan and
// returns the gateway redirect URL. The ledger row stays PENDING until the
// confirm endpoint settles it.
func Checkout(c *fiber.Ctx) error {
	user, err := fetchUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedCheckout").(*purchaseValidator.CheckoutRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var amount float64
	var itemName, referenceType, referenceName string
	var referenceID uint
	transactionType := models.TransactionTypeCardCheckout

	switch reqData.Type {
	case "course":
		var course courseModels.Course
		if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_approved = ? AND is_published = ?", reqData.CourseID, false, true, true).First(&course).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, course.ID, false).First(&courseModels.Enrollment{}).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
		}
		if course.IsFree() {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course is free, use the enroll endpoint!", nil)
		}
		amount = course.Price
		itemName = course.Title
		referenceType = "course"
		referenceID = course.ID
		referenceName = course.Title
	case "plan":
		var plan models.SubscriptionPlan
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.PlanID, false).First(&plan).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subscription plan not found!", nil)
		}
		amount = plan.Price
		itemName = plan.Name + " plan"
		referenceType = "plan"
		referenceID = plan.ID
		referenceName = plan.Name
		transactionType = models.TransactionTypePlanPurchase
	}

	orderID := uuid.New().String()

	redirectURL, err := utils.CreateCheckoutTransaction(orderID, amount, user.Name, user.Email, itemName)
	if err != nil {
		log.Printf("Error creating checkout transaction: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Payment gateway unavailable!", nil)
	}

	transaction := models.EscudoTransaction{
		UserID:          user.ID,
		TransactionType: transactionType,
		Money:           amount,
		Currency:        "EUR",
		BalanceBefore:   user.Escudos,
		BalanceAfter:    user.Escudos,
		Status:          models.TransactionStatusPending,
		Description:     fmt.Sprintf("Card checkout: %s", itemName),
		PaymentGateway:  "midtrans",
		PaymentOrderID:  orderID,
		PaymentMethod:   "card",
		PaymentStatus:   "pending",
		ReferenceType:   referenceType,
		ReferenceID:     referenceID,
		ReferenceName:   referenceName,
		TransactionDate: time.Now(),
	}
	if err := database.Database.Db.Create(&transaction).Error; err != nil {
		log.Printf("Error creating pending transaction: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record transaction!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkout created!", fiber.Map{
		"orderId":     orderID,
		"redirectUrl": redirectURL,
		"amount":      amount,
	})
}

// PurchasePlan is the plan-specific checkout entry: body {planId}.
func PurchasePlan(c *fiber.Ctx) error {
	reqData := new(struct {
		PlanID uint `json:"planId"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.PlanID == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Plan ID is required!", nil)
	}

	c.Locals("validatedCheckout", &purchaseValidator.CheckoutRequest{
		Type:   "plan",
		PlanID: reqData.PlanID,
	})
	return Checkout(c)
}

// ConfirmCheckout polls the gateway for an order and settles the pending
// ledger row: a settled course checkout enrolls, a settled plan checkout
// activates the plan and credits its escudos.
func ConfirmCheckout(c *fiber.Ctx) error {
	user, err := fetchUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedConfirm").(*purchaseValidator.ConfirmRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var transaction models.EscudoTransaction
	if err := database.Database.Db.Where("payment_order_id = ? AND user_id = ? AND is_deleted = ?", reqData.OrderID, user.ID, false).First(&transaction).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Order not found!", nil)
	}

	if transaction.Status == models.TransactionStatusCompleted {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Order already settled!", transaction)
	}
	if transaction.Status == models.TransactionStatusFailed {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Order already failed!", transaction)
	}

	gatewayStatus, err := utils.CheckTransactionStatus(reqData.OrderID)
	if err != nil {
		log.Printf("Error checking transaction status: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Payment gateway unavailable!", nil)
	}

	switch gatewayStatus {
	case "settlement", "capture":
		return settleTransaction(c, user, &transaction, gatewayStatus)
	case "expire", "deny", "cancel":
		database.Database.Db.Model(&transaction).Updates(map[string]interface{}{
			"status":         models.TransactionStatusFailed,
			"payment_status": gatewayStatus,
		})
		return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "Payment failed: "+gatewayStatus, nil)
	default:
		return middleware.JsonResponse(c, fiber.StatusAccepted, true, "Payment still pending.", fiber.Map{
			"paymentStatus": gatewayStatus,
		})
	}
}

// markRefundRequired closes out a captured payment that cannot be honored.
// The gateway took the money but the purchase cannot be granted, so the row
// moves to FAILED with the refund reason instead of sitting PENDING.
func markRefundRequired(t *models.EscudoTransaction, gatewayStatus, reason string) {
	t.Status = models.TransactionStatusFailed
	t.PaymentStatus = gatewayStatus
	t.Reason = "refund required: " + reason
}

func settleTransaction(c *fiber.Ctx, user *models.User, transaction *models.EscudoTransaction, gatewayStatus string) error {
	tx := database.Database.Db.Begin()
	if tx.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start transaction!", nil)
	}

	updates := map[string]interface{}{
		"status":         models.TransactionStatusCompleted,
		"payment_status": gatewayStatus,
	}

	switch transaction.ReferenceType {
	case "course":
		// Duplicate-enrollment guard survives gateway retries. The money was
		// captured, so the row must not stay PENDING: flag it for a refund.
		if err := tx.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, transaction.ReferenceID, false).First(&courseModels.Enrollment{}).Error; err == nil {
			markRefundRequired(transaction, gatewayStatus, "captured payment for a course the user already owns")
			if err := tx.Save(transaction).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to settle transaction!", nil)
			}
			if err := tx.Commit().Error; err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to settle transaction!", nil)
			}
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled; payment flagged for refund!", fiber.Map{
				"alreadyEnrolled": true,
				"refundRequired":  true,
			})
		}

		var course courseModels.Course
		if err := tx.Where("id = ? AND is_deleted = ?", transaction.ReferenceID, false).First(&course).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}

		var totalLessons int64
		tx.Model(&courseModels.Lesson{}).
			Where("course_id = ? AND is_deleted = ? AND is_published = ?", course.ID, false, true).Count(&totalLessons)

		enrollment := courseModels.Enrollment{
			UserID:       user.ID,
			CourseID:     course.ID,
			Status:       "ENROLLED",
			TotalLessons: int(totalLessons),
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll!", nil)
		}
		if err := tx.Model(&course).Update("enrolled_count", gorm.Expr("enrolled_count + 1")).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
		}

		if err := tx.Model(transaction).Updates(updates).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to settle transaction!", nil)
		}
		if err := tx.Commit().Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to settle transaction!", nil)
		}

		utils.SendEnrollmentEmail(user.Email, user.Name, course.Title)

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment settled, enrolled successfully!", fiber.Map{
			"enrollment": enrollment,
		})

	case "plan":
		var plan models.SubscriptionPlan
		if err := tx.Where("id = ? AND is_deleted = ?", transaction.ReferenceID, false).First(&plan).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subscription plan not found!", nil)
		}

		expiresAt := time.Now().AddDate(0, 0, subscriptionDays)
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
			"escudos":                 gorm.Expr("escudos + ?", plan.Escudos),
			"subscription_plan_id":    plan.ID,
			"subscription_status":     "ACTIVE",
			"subscription_expires_at": expiresAt,
			"reminder_sent":           false,
		}).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to activate plan!", nil)
		}

		updates["escudos"] = plan.Escudos
		updates["balance_before"] = user.Escudos
		updates["balance_after"] = user.Escudos + plan.Escudos
		if err := tx.Model(transaction).Updates(updates).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to settle transaction!", nil)
		}
		if err := tx.Commit().Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to settle transaction!", nil)
		}

		utils.SendPlanActivatedEmail(user.Email, user.Name, plan.Name, plan.Escudos)

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment settled, plan activated!", fiber.Map{
			"plan":       plan,
			"newBalance": user.Escudos + plan.Escudos,
			"expiresAt":  expiresAt,
		})
	}

	tx.Rollback()
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Unknown order reference!", nil)
}

// GetPlans lists the purchasable subscription tiers.
func GetPlans(c *fiber.Ctx) error {
	var plans []models.SubscriptionPlan
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("sort_order asc").Find(&plans).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch plans!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Plans fetched successfully!", plans)
}
