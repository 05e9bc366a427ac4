package models

import (
	"time"
)

// BankCard holds a user's payout destination for withdrawals.
type BankCard struct {
	ID                uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID            string    `gorm:"column:user_id;size:36;not null;index" json:"user_id"`
	AccountNumber     string    `gorm:"column:account_number;size:50;not null" json:"account_number"`
	AccountHolderName string    `gorm:"column:account_holder_name;size:150;not null" json:"account_holder_name"`
	BankName          string    `gorm:"column:bank_name;size:150;not null" json:"bank_name"`
	IFSCCode          string    `gorm:"column:ifsc_code;size:11;not null" json:"ifsc_code"`
	IsVerified        bool      `gorm:"column:is_verified;default:false" json:"is_verified"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (BankCard) TableName() string {
	return "bank_cards"
}
