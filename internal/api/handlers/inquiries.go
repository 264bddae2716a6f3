package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"dealer-backend/internal/services"
	"dealer-backend/pkg/utils"
)

type InquiryHandler struct {
	inquiryService *services.InquiryService
	validator      *validator.Validate
}

func NewInquiryHandler(inquiryService *services.InquiryService) *InquiryHandler {
	return &InquiryHandler{
		inquiryService: inquiryService,
		validator:      validator.New(),
	}
}

// CreateInquiry records a customer message from the public site.
func (h *InquiryHandler) CreateInquiry(c *gin.Context) {
	var req services.CreateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	inquiry, err := h.inquiryService.CreateInquiry(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, "Failed to record inquiry", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Inquiry received", inquiry)
}

// GetInquiries lists received inquiries for the admin screen.
func (h *InquiryHandler) GetInquiries(c *gin.Context) {
	inquiries, err := h.inquiryService.GetAllInquiries(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadGateway, "Failed to retrieve inquiries", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Inquiries retrieved successfully", inquiries)
}
