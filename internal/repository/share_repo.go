package repository

import (
	"github.com/shopims/shopims-backend/internal/model"

	"gorm.io/gorm"
)

type ShareRepository interface {
	Create(share *model.Share) error
	// FindAll returns shares in insertion order; allocation output follows it.
	FindAll() ([]model.Share, error)
}

type shareRepo struct {
	db *gorm.DB
}

func NewShareRepo(db *gorm.DB) ShareRepository {
	return &shareRepo{db}
}

func (r *shareRepo) Create(share *model.Share) error {
	return r.db.Create(share).Error
}

func (r *shareRepo) FindAll() ([]model.Share, error) {
	var shares []model.Share
	err := r.db.Order("created_at ASC").Find(&shares).Error
	return shares, err
}
