package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dealer-backend/internal/errs"
	"dealer-backend/internal/models"
)

type InquiryRepository struct {
	db *gorm.DB
}

func NewInquiryRepository(db *gorm.DB) *InquiryRepository {
	return &InquiryRepository{db: db}
}

func (r *InquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) (*models.Inquiry, error) {
	if inquiry.ID == "" {
		inquiry.ID = uuid.NewString()
	}
	if inquiry.Status == "" {
		inquiry.Status = "new"
	}
	if err := r.db.WithContext(ctx).Create(inquiry).Error; err != nil {
		return nil, errs.NewPersistence("create inquiry", err)
	}
	return inquiry, nil
}

func (r *InquiryRepository) FindAll(ctx context.Context) ([]models.Inquiry, error) {
	var inquiries []models.Inquiry
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&inquiries).Error
	if err != nil {
		return nil, errs.NewPersistence("list inquiries", err)
	}
	return inquiries, nil
}
