package models

import (
	"time"
)

// CallbackLog keeps the raw request/response of every gateway verification
// attempt for dispute handling.
type CallbackLog struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Request       string    `gorm:"column:request;type:longtext" json:"request"`
	Response      string    `gorm:"column:response;type:longtext" json:"response"`
	Status        int       `gorm:"column:status;default:0" json:"status"`
	TransactionID string    `gorm:"column:transaction_id;size:64;index" json:"transaction_id"`
	PaymentMethod string    `gorm:"column:payment_method;size:50" json:"payment_method"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (CallbackLog) TableName() string {
	return "callback_logs"
}
