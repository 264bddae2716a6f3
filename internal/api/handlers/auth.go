package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dealer-backend/internal/services"
	"dealer-backend/pkg/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login checks the dealership admin password and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	token, err := h.authService.Login(req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPassword) {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid password", nil)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Login failed", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", gin.H{"token": token})
}
