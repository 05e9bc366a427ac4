package models

import (
	"time"
)

// CommissionLog is the append-only audit record for a cascaded referral
// commission: one row per settled recharge that paid out upstream.
type CommissionLog struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ReferrerID       string    `gorm:"column:referrer_id;size:36;not null;index" json:"referrer_id"`
	ReferredUserID   string    `gorm:"column:referred_user_id;size:36;not null;index" json:"referred_user_id"`
	CommissionAmount float64   `gorm:"column:commission_amount;type:decimal(20,2);not null" json:"commission_amount"`
	InvestmentAmount float64   `gorm:"column:investment_amount;type:decimal(20,2);not null" json:"investment_amount"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (CommissionLog) TableName() string {
	return "commissions"
}
