package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"dealer-backend/internal/errs"
	"dealer-backend/internal/models"
	"dealer-backend/internal/repository"
)

// InquiryService records customer messages about listings. Intake is plain
// persistence; follow-up happens outside this system.
type InquiryService struct {
	inquiryRepo *repository.InquiryRepository
	log         *zap.Logger
}

func NewInquiryService(inquiryRepo *repository.InquiryRepository, log *zap.Logger) *InquiryService {
	return &InquiryService{inquiryRepo: inquiryRepo, log: log}
}

type CreateInquiryRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email" validate:"omitempty,email"`
	CustomerPhone string `json:"customer_phone,omitempty"`
	Message       string `json:"message,omitempty"`
	VehicleID     string `json:"vehicle_id,omitempty"`
}

func (s *InquiryService) CreateInquiry(ctx context.Context, req *CreateInquiryRequest) (*models.Inquiry, error) {
	name := strings.TrimSpace(req.CustomerName)
	email := strings.TrimSpace(req.CustomerEmail)
	if name == "" {
		return nil, errs.NewValidation("customer_name", "must not be empty")
	}
	if email == "" {
		return nil, errs.NewValidation("customer_email", "must not be empty")
	}

	inquiry := &models.Inquiry{
		CustomerName:  name,
		CustomerEmail: email,
		CustomerPhone: optionalString(req.CustomerPhone),
		Message:       optionalString(req.Message),
		VehicleID:     optionalString(req.VehicleID),
	}

	created, err := s.inquiryRepo.Create(ctx, inquiry)
	if err != nil {
		return nil, err
	}

	s.log.Info("inquiry received", zap.String("id", created.ID))
	return created, nil
}

func (s *InquiryService) GetAllInquiries(ctx context.Context) ([]models.Inquiry, error) {
	return s.inquiryRepo.FindAll(ctx)
}
