package repository

import (
	"earnings-wallet/internal/models"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(p *models.Profile) error {
	return r.db.Create(p).Error
}

func (r *ProfileRepository) ByID(id string) (*models.Profile, error) {
	var p models.Profile
	if err := r.db.Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) ByReferralCode(code string) (*models.Profile, error) {
	var p models.Profile
	if err := r.db.Where("referral_code = ?", code).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) ListByReferrer(referrerID string) ([]models.Profile, error) {
	var list []models.Profile
	err := r.db.Where("referrer_id = ?", referrerID).Find(&list).Error
	return list, err
}

func (r *ProfileRepository) SetTradePasswordHash(id, hash string) error {
	return r.db.Model(&models.Profile{}).
		Where("id = ?", id).
		UpdateColumn("trade_password_hash", hash).Error
}

// Delete removes a profile; only used to unwind a partially provisioned
// account when wallet creation fails.
func (r *ProfileRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Profile{}).Error
}
