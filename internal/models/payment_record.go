package models

import (
	"time"
)

// Payment record statuses. "success" is accepted alongside "completed" when
// checking settlement; older rows carry it.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentRejected  = "rejected"
	PaymentFailed    = "failed"
	PaymentSuccess   = "success"
)

// Payment record sources.
const (
	PaymentSourceManual  = "manual"
	PaymentSourceGateway = "gateway"
)

// PaymentRecord is one row per external payment notification: a manual UTR
// submission or a gateway verification callback. Several records may share
// the same ExternalRef (duplicate submissions); at most one of them ever has
// IsCredited set, which is what the credit engine enforces.
type PaymentRecord struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       string    `gorm:"column:user_id;size:36;not null;index" json:"user_id"`
	Amount       float64   `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	ExternalRef  string    `gorm:"column:utr_number;size:64;not null;index" json:"utr_number"`
	MobileNumber string    `gorm:"column:mobile_number;size:20" json:"mobile_number"`
	Source       string    `gorm:"column:source;size:20;default:manual" json:"source"`
	Status       string    `gorm:"column:status;size:20;default:pending;index" json:"status"`
	IsCredited   bool      `gorm:"column:is_credited;default:false" json:"is_credited"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PaymentRecord) TableName() string {
	return "manual_payments"
}
