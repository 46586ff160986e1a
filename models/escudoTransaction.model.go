package models

import (
	"time"

	"gorm.io/gorm"
)

// TransactionType defines the type of escudo ledger entry
type TransactionType string

const (
	TransactionTypeCoursePurchase TransactionType = "COURSE_PURCHASE" // escudos debit
	TransactionTypeCardCheckout   TransactionType = "CARD_CHECKOUT"   // money via gateway
	TransactionTypePlanPurchase   TransactionType = "PLAN_PURCHASE"   // money via gateway, credits escudos
	TransactionTypeAdminCredit    TransactionType = "ADMIN_CREDIT"
	TransactionTypeAdminDebit     TransactionType = "ADMIN_DEBIT"
)

// TransactionStatus defines the status of a transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// EscudoTransaction tracks every balance mutation and card payment for a user
type EscudoTransaction struct {
	gorm.Model
	UserID          uint              `gorm:"not null;index" json:"userId"`
	TransactionType TransactionType   `gorm:"type:varchar(50);not null" json:"transactionType"`
	Escudos         uint              `gorm:"default:0" json:"escudos"`
	Money           float64           `gorm:"default:0" json:"money"`
	Currency        string            `gorm:"type:varchar(10);default:'EUR'" json:"currency"`
	BalanceBefore   uint              `gorm:"not null" json:"balanceBefore"`
	BalanceAfter    uint              `gorm:"not null" json:"balanceAfter"`
	Status          TransactionStatus `gorm:"type:varchar(20);default:'COMPLETED'" json:"status"`
	Description     string            `gorm:"type:text" json:"description"`

	// Payment gateway details (card path)
	PaymentGateway string `gorm:"type:varchar(50)" json:"paymentGateway"`
	PaymentOrderID string `gorm:"type:varchar(100);index" json:"paymentOrderId"`
	PaymentMethod  string `gorm:"type:varchar(50)" json:"paymentMethod"`
	PaymentStatus  string `gorm:"type:varchar(50)" json:"paymentStatus"`

	// Reference details (course or plan the payment was for)
	ReferenceType string `gorm:"type:varchar(50)" json:"referenceType"` // course, plan
	ReferenceID   uint   `gorm:"default:0" json:"referenceId"`
	ReferenceName string `gorm:"type:varchar(255)" json:"referenceName"`

	// Admin details (manual credits/debits)
	AdminID uint   `gorm:"default:0" json:"adminId"`
	Reason  string `gorm:"type:text" json:"reason"`

	TransactionDate time.Time `gorm:"not null" json:"transactionDate"`
	IsDeleted       bool      `gorm:"default:false" json:"isDeleted"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (EscudoTransaction) TableName() string {
	return "escudo_transactions"
}
