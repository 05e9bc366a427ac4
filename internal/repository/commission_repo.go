package repository

import (
	"earnings-wallet/internal/models"

	"gorm.io/gorm"
)

type CommissionRepository struct {
	db *gorm.DB
}

func NewCommissionRepository(db *gorm.DB) *CommissionRepository {
	return &CommissionRepository{db: db}
}

func (r *CommissionRepository) Create(c *models.CommissionLog) error {
	return r.db.Create(c).Error
}

func (r *CommissionRepository) ListByReferrer(referrerID string) ([]models.CommissionLog, error) {
	var list []models.CommissionLog
	err := r.db.Where("referrer_id = ?", referrerID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}
