package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ProfileImage          string     `gorm:"default:''"`
	Name                  string     `gorm:"default:''"`
	Email                 string     `gorm:"unique;not null"`
	Role                  string     `gorm:"default:'STUDENT'"` // STUDENT, INSTRUCTOR, ADMIN
	Password              string     `gorm:"not null"`
	Escudos               uint       `gorm:"default:0"` // virtual currency balance
	SubscriptionPlanID    *uint      `json:"subscription_plan_id"`
	SubscriptionStatus    string     `gorm:"default:'NONE'"` // NONE, ACTIVE, EXPIRED
	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at"`
	ReminderSent          bool       `gorm:"default:false"`
	IsActive              bool       `gorm:"default:true"`
	LastLogin             time.Time  `gorm:"default:NULL"`
	IsDeleted             bool       `gorm:"default:false"`
}
