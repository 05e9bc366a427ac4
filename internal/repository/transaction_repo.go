package repository

import (
	"time"

	"earnings-wallet/internal/models"

	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(t *models.Transaction) error {
	return r.db.Create(t).Error
}

func (r *TransactionRepository) ByID(id uint) (*models.Transaction, error) {
	var t models.Transaction
	if err := r.db.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// CountSince counts a user's transactions of one type created at or after
// the cutoff; drives the daily withdrawal limit.
func (r *TransactionRepository) CountSince(userID, trxType string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ? AND created_at >= ?", userID, trxType, since).
		Count(&count).Error
	return count, err
}

// TransitionStatus moves a transaction between states only if it still holds
// the expected current status. Zero rows affected means another actor got
// there first, which is how resolve stays idempotent per transaction.
func (r *TransactionRepository) TransitionStatus(id uint, from, to, notes string) (bool, error) {
	updates := map[string]interface{}{"status": to}
	if notes != "" {
		updates["admin_notes"] = notes
	}
	res := r.db.Model(&models.Transaction{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// SetStatusByGatewayOrder settles or fails the pending recharge transaction
// recorded at order-creation time. The order id column stays untouched; the
// gateway's payment id lands in its own column.
func (r *TransactionRepository) SetStatusByGatewayOrder(orderID, status, paymentID, description string) (bool, error) {
	updates := map[string]interface{}{"status": status}
	if paymentID != "" {
		updates["gateway_payment_id"] = paymentID
	}
	if description != "" {
		updates["description"] = description
	}
	res := r.db.Model(&models.Transaction{}).
		Where("payment_gateway_id = ? AND status = ?", orderID, models.TrxPending).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *TransactionRepository) ListByUserAndType(userID, trxType string) ([]models.Transaction, error) {
	var list []models.Transaction
	err := r.db.Where("user_id = ? AND type = ?", userID, trxType).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// HasSettledRecharge reports whether the user has a completed gateway
// recharge; team listings use it to mark members active.
func (r *TransactionRepository) HasSettledRecharge(userID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ? AND status = ?", userID, models.TrxRecharge, models.TrxCompleted).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

// ExpirePendingBefore fails pending transactions of one type created before
// the cutoff; the scheduler uses it to reap abandoned gateway orders.
func (r *TransactionRepository) ExpirePendingBefore(trxType string, cutoff time.Time) (int64, error) {
	res := r.db.Model(&models.Transaction{}).
		Where("type = ? AND status = ? AND created_at < ?", trxType, models.TrxPending, cutoff).
		Updates(map[string]interface{}{
			"status":      models.TrxFailed,
			"description": "expired: gateway payment never verified",
		})
	return res.RowsAffected, res.Error
}

func (r *TransactionRepository) ListPendingWithdrawals() ([]models.Transaction, error) {
	var list []models.Transaction
	err := r.db.Where("type = ? AND status = ?", models.TrxWithdrawal, models.TrxPending).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}
