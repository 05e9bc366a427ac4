package repository

import (
	"earnings-wallet/internal/models"

	"gorm.io/gorm"
)

type CallbackRepository struct {
	db *gorm.DB
}

func NewCallbackRepository(db *gorm.DB) *CallbackRepository {
	return &CallbackRepository{db: db}
}

func (r *CallbackRepository) Create(l *models.CallbackLog) error {
	return r.db.Create(l).Error
}
