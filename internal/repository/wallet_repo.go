package repository

import (
	"earnings-wallet/internal/models"

	"gorm.io/gorm"
)

// WalletRepository performs all wallet row access. Balance mutations are
// single-statement column updates so that concurrent requests for the same
// wallet never lose increments; there is no cross-row transaction anywhere
// in the credit or withdrawal paths.
type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) Create(w *models.Wallet) error {
	return r.db.Create(w).Error
}

func (r *WalletRepository) ByUser(userID string) (*models.Wallet, error) {
	var w models.Wallet
	if err := r.db.Where("user_id = ?", userID).First(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

// IncrementRecharge adds a settled recharge to the wallet's recharge total.
func (r *WalletRepository) IncrementRecharge(userID string, amount float64) error {
	return r.db.Model(&models.Wallet{}).
		Where("user_id = ?", userID).
		UpdateColumn("recharged_amount", gorm.Expr("recharged_amount + ?", amount)).Error
}

// DecrementRecharge undoes a recharge increment on the compensation path.
func (r *WalletRepository) DecrementRecharge(userID string, amount float64) error {
	return r.db.Model(&models.Wallet{}).
		Where("user_id = ?", userID).
		UpdateColumn("recharged_amount", gorm.Expr("recharged_amount - ?", amount)).Error
}

// IncrementReferralCommission credits a cascaded commission to the referrer:
// lifetime earnings and the withdrawable balance move together in one
// statement.
func (r *WalletRepository) IncrementReferralCommission(userID string, amount float64) error {
	return r.db.Model(&models.Wallet{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"total_referral_earnings": gorm.Expr("total_referral_earnings + ?", amount),
			"order_income":            gorm.Expr("order_income + ?", amount),
		}).Error
}

// IncrementOrderIncome restores withdrawable balance, used when reversing a
// withdrawal debit.
func (r *WalletRepository) IncrementOrderIncome(userID string, amount float64) error {
	return r.db.Model(&models.Wallet{}).
		Where("user_id = ?", userID).
		UpdateColumn("order_income", gorm.Expr("order_income + ?", amount)).Error
}

// DebitOrderIncome deducts a withdrawal amount. The balance guard is part of
// the statement, so two concurrent withdrawals can never drive order_income
// negative; false means insufficient funds.
func (r *WalletRepository) DebitOrderIncome(userID string, amount float64) (bool, error) {
	res := r.db.Model(&models.Wallet{}).
		Where("user_id = ? AND order_income >= ?", userID, amount).
		UpdateColumn("order_income", gorm.Expr("order_income - ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// IncrementPendingBonus accrues the sign-up bonus for a referrer.
func (r *WalletRepository) IncrementPendingBonus(userID string, amount float64) error {
	return r.db.Model(&models.Wallet{}).
		Where("user_id = ?", userID).
		UpdateColumn("pending_referral_bonus", gorm.Expr("pending_referral_bonus + ?", amount)).Error
}

// ClaimPendingBonus moves the accrued bonus into the spendable and
// withdrawable balances. The expected value acts as a compare-and-swap
// guard: a concurrent claim or accrual makes the update match zero rows and
// the caller retries or rejects.
func (r *WalletRepository) ClaimPendingBonus(userID string, expected float64) (bool, error) {
	res := r.db.Model(&models.Wallet{}).
		Where("user_id = ? AND pending_referral_bonus = ?", userID, expected).
		Updates(map[string]interface{}{
			"balance":                 gorm.Expr("balance + ?", expected),
			"total_referral_earnings": gorm.Expr("total_referral_earnings + ?", expected),
			"order_income":            gorm.Expr("order_income + ?", expected),
			"pending_referral_bonus":  0,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
