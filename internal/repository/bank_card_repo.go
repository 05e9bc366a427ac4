package repository

import (
	"earnings-wallet/internal/models"

	"gorm.io/gorm"
)

type BankCardRepository struct {
	db *gorm.DB
}

func NewBankCardRepository(db *gorm.DB) *BankCardRepository {
	return &BankCardRepository{db: db}
}

func (r *BankCardRepository) Create(c *models.BankCard) error {
	return r.db.Create(c).Error
}

func (r *BankCardRepository) ByID(id uint) (*models.BankCard, error) {
	var c models.BankCard
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *BankCardRepository) ListByUser(userID string) ([]models.BankCard, error) {
	var list []models.BankCard
	err := r.db.Where("user_id = ?", userID).Find(&list).Error
	return list, err
}
