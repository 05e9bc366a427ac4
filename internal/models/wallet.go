package models

import (
	"time"
)

// Wallet holds the per-user balance aggregate. Balance is spendable,
// OrderIncome is the withdrawable component fed by commissions and bonuses
// and debited by withdrawals. All fields stay >= 0 at rest; mutations go
// through the credit engine, commission service and withdrawal service only.
type Wallet struct {
	ID                    uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID                string    `gorm:"column:user_id;size:36;not null;uniqueIndex" json:"user_id"`
	Balance               float64   `gorm:"column:balance;type:decimal(20,2);default:0.00" json:"balance"`
	OrderIncome           float64   `gorm:"column:order_income;type:decimal(20,2);default:0.00" json:"order_income"`
	TotalIncome           float64   `gorm:"column:total_income;type:decimal(20,2);default:0.00" json:"total_income"`
	TotalReferralEarnings float64   `gorm:"column:total_referral_earnings;type:decimal(20,2);default:0.00" json:"total_referral_earnings"`
	PendingReferralBonus  float64   `gorm:"column:pending_referral_bonus;type:decimal(20,2);default:0.00" json:"pending_referral_bonus"`
	RechargedAmount       float64   `gorm:"column:recharged_amount;type:decimal(20,2);default:0.00" json:"recharged_amount"`
	CreatedAt             time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Wallet) TableName() string {
	return "user_wallets"
}
