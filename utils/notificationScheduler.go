package utils

import (
	"cyberacademy/database"
	"cyberacademy/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializeScheduler sets up the daily maintenance jobs: popup notification
// windows and subscription expiry.
func InitializeScheduler() {
	log.Println("[SCHEDULER] Initializing scheduler...")

	c := cron.New()

	// Run daily at 9 AM
	c.AddFunc("0 9 * * *", func() {
		log.Println("[SCHEDULER] Running daily maintenance...")
		DeactivateEndedNotifications()
		ProcessExpiringSubscriptions()
		ExpireSubscriptions()
	})

	c.Start()
	log.Println("[SCHEDULER] Scheduler started - runs daily at 9 AM")
}

// DeactivateEndedNotifications turns off popup notifications whose scheduling
// window has closed.
func DeactivateEndedNotifications() {
	db := database.Database.Db

	result := db.Model(&models.PopupNotification{}).
		Where("is_active = true AND is_deleted = false AND ends_at < ?", time.Now()).
		Update("is_active", false)

	if result.Error != nil {
		log.Printf("[SCHEDULER] Error deactivating notifications: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("[SCHEDULER] Deactivated %d ended notifications", result.RowsAffected)
	}
}

// ProcessExpiringSubscriptions sends reminder emails for plans expiring in 2 days
func ProcessExpiringSubscriptions() {
	db := database.Database.Db
	now := time.Now()
	twoDaysFromNow := now.AddDate(0, 0, 2)

	var expiring []models.User
	if err := db.
		Where("subscription_status = ? AND reminder_sent = false AND subscription_expires_at IS NOT NULL", "ACTIVE").
		Where("subscription_expires_at BETWEEN ? AND ?", now, twoDaysFromNow).
		Find(&expiring).Error; err != nil {
		log.Printf("[SCHEDULER] Error fetching expiring subscriptions: %v", err)
		return
	}

	log.Printf("[SCHEDULER] Found %d subscriptions expiring soon", len(expiring))

	for _, user := range expiring {
		var plan models.SubscriptionPlan
		if user.SubscriptionPlanID == nil {
			continue
		}
		if err := db.Where("id = ?", *user.SubscriptionPlanID).First(&plan).Error; err != nil {
			log.Printf("[SCHEDULER] Error fetching plan %d: %v", *user.SubscriptionPlanID, err)
			continue
		}

		expiryStr := "soon"
		if user.SubscriptionExpiresAt != nil {
			expiryStr = user.SubscriptionExpiresAt.Format("January 2, 2006")
		}
		SendSubscriptionExpiryReminder(user.Email, user.Name, plan.Name, expiryStr)

		db.Model(&user).Update("reminder_sent", true)
		log.Printf("[SCHEDULER] Sent expiry reminder to %s", user.Email)
	}
}

// ExpireSubscriptions marks lapsed subscriptions as EXPIRED
func ExpireSubscriptions() {
	db := database.Database.Db
	now := time.Now()

	var lapsed []models.User
	if err := db.
		Where("subscription_status = ? AND subscription_expires_at IS NOT NULL AND subscription_expires_at < ?", "ACTIVE", now).
		Find(&lapsed).Error; err != nil {
		log.Printf("[SCHEDULER] Error fetching lapsed subscriptions: %v", err)
		return
	}

	for _, user := range lapsed {
		if err := db.Model(&user).Updates(map[string]interface{}{
			"subscription_status": "EXPIRED",
			"reminder_sent":       false,
		}).Error; err != nil {
			log.Printf("[SCHEDULER] Error expiring subscription for user %d: %v", user.ID, err)
			continue
		}

		if user.SubscriptionPlanID != nil {
			var plan models.SubscriptionPlan
			if err := db.Where("id = ?", *user.SubscriptionPlanID).First(&plan).Error; err == nil {
				SendSubscriptionExpiredEmail(user.Email, user.Name, plan.Name)
			}
		}
	}

	if len(lapsed) > 0 {
		log.Printf("[SCHEDULER] Expired %d subscriptions", len(lapsed))
	}
}
