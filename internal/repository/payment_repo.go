package repository

import (
	"earnings-wallet/internal/models"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(p *models.PaymentRecord) error {
	return r.db.Create(p).Error
}

// PendingByRef returns the pending records sharing an external reference in
// creation order. The credit engine treats the lowest id as the designated
// first record.
func (r *PaymentRepository) PendingByRef(ref string) ([]models.PaymentRecord, error) {
	var records []models.PaymentRecord
	err := r.db.Where("utr_number = ? AND status = ?", ref, models.PaymentPending).
		Order("id ASC").
		Find(&records).Error
	return records, err
}

// AnyCreditedByRef reports whether any record for the reference, in any
// status, has already triggered a wallet credit.
func (r *PaymentRepository) AnyCreditedByRef(ref string) (bool, error) {
	var count int64
	err := r.db.Model(&models.PaymentRecord{}).
		Where("utr_number = ? AND is_credited = ?", ref, true).
		Count(&count).Error
	return count > 0, err
}

// ClaimCredit marks the record credited only while it is still pending and
// unclaimed. Zero rows affected means another verification claimed the
// reference first; the caller must compensate its wallet increment.
func (r *PaymentRepository) ClaimCredit(id uint) (bool, error) {
	res := r.db.Model(&models.PaymentRecord{}).
		Where("id = ? AND status = ? AND is_credited = ?", id, models.PaymentPending, false).
		Updates(map[string]interface{}{
			"status":      models.PaymentCompleted,
			"is_credited": true,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Settle closes a pending duplicate record without crediting.
func (r *PaymentRepository) Settle(id uint) error {
	return r.db.Model(&models.PaymentRecord{}).
		Where("id = ? AND status = ?", id, models.PaymentPending).
		UpdateColumn("status", models.PaymentCompleted).Error
}

// MarkRejectedByRef rejects every pending record for the reference and
// returns how many were touched.
func (r *PaymentRepository) MarkRejectedByRef(ref string) (int64, error) {
	res := r.db.Model(&models.PaymentRecord{}).
		Where("utr_number = ? AND status = ?", ref, models.PaymentPending).
		UpdateColumn("status", models.PaymentRejected)
	return res.RowsAffected, res.Error
}

// HasSettled reports whether the user has at least one settled payment; this
// is the withdrawal eligibility gate.
func (r *PaymentRepository) HasSettled(userID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.PaymentRecord{}).
		Where("user_id = ? AND status IN ?", userID, []string{models.PaymentSuccess, models.PaymentCompleted}).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

func (r *PaymentRepository) ListByUser(userID string) ([]models.PaymentRecord, error) {
	var records []models.PaymentRecord
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

func (r *PaymentRepository) ListPending() ([]models.PaymentRecord, error) {
	var records []models.PaymentRecord
	err := r.db.Where("status = ?", models.PaymentPending).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}
