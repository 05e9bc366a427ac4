package models

import (
	"time"
)

// Profile is the user record. ReferrerID is the referral edge: set once at
// account creation, never changed afterwards.
type Profile struct {
	ID                string    `gorm:"primaryKey;size:36" json:"id"`
	Nickname          string    `gorm:"column:nickname;size:100;not null" json:"nickname"`
	PhoneNumber       string    `gorm:"column:phone_number;size:20;not null;uniqueIndex" json:"phone_number"`
	ReferralCode      string    `gorm:"column:referral_code;size:20;not null;uniqueIndex" json:"referral_code"`
	ReferrerID        *string   `gorm:"column:referrer_id;size:36;index" json:"referrer_id"`
	TradePasswordHash string    `gorm:"column:trade_password_hash;size:255" json:"-"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
