package models

import "gorm.io/gorm"

// SubscriptionPlan is an upgrade tier: a monthly plan that grants escudos on purchase.
type SubscriptionPlan struct {
	gorm.Model
	Name      string  `json:"name" gorm:"unique;not null"`
	Price     float64 `json:"price" gorm:"not null"` // money price, two decimals
	Escudos   uint    `json:"escudos" gorm:"not null"`
	SortOrder int     `json:"sort_order" gorm:"default:0"`
	IsDeleted bool    `gorm:"default:false"`
}
