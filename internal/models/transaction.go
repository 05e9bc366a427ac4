package models

import (
	"time"
)

// Transaction types.
const (
	TrxRecharge    = "recharge"
	TrxWithdrawal  = "withdrawal"
	TrxSignupBonus = "bonus_referral_signup"
)

// Transaction statuses. Withdrawals start pending and move to exactly one
// terminal state; terminal rows are never edited again.
const (
	TrxPending   = "pending"
	TrxCompleted = "completed"
	TrxRejected  = "rejected"
	TrxFailed    = "failed"
)

// Transaction is the audit entry for every attempted balance change.
type Transaction struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID           string    `gorm:"column:user_id;size:36;not null;index:idx_trx_user_type" json:"user_id"`
	Amount           float64   `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	Fee              float64   `gorm:"column:fee;type:decimal(20,2);default:0.00" json:"fee"`
	Type             string    `gorm:"column:type;size:40;not null;index:idx_trx_user_type" json:"type"`
	Status           string    `gorm:"column:status;size:20;default:pending;index" json:"status"`
	Description      string    `gorm:"column:description;type:text" json:"description"`
	PaymentGatewayID string    `gorm:"column:payment_gateway_id;size:64;index" json:"payment_gateway_id"`
	GatewayPaymentID string    `gorm:"column:gateway_payment_id;size:64" json:"gateway_payment_id"`
	ReceiptID        string    `gorm:"column:receipt_id;size:64" json:"receipt_id"`
	BankCardID       *uint     `gorm:"column:bank_card_id" json:"bank_card_id"`
	Metadata         string    `gorm:"column:metadata;type:text" json:"metadata"`
	AdminNotes       string    `gorm:"column:admin_notes;type:text" json:"admin_notes"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
