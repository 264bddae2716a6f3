package services

import (
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"dealer-backend/pkg/jwt"
)

var ErrInvalidPassword = errors.New("invalid admin password")

// AuthService gates the admin screen behind the dealership password. There
// is a single operator, so there are no user accounts: one bcrypt hash from
// configuration, one admin role token.
type AuthService struct {
	passwordHash string
	jwtUtil      *jwt.JWTUtil
	log          *zap.Logger
}

func NewAuthService(passwordHash string, jwtUtil *jwt.JWTUtil, log *zap.Logger) *AuthService {
	return &AuthService{
		passwordHash: passwordHash,
		jwtUtil:      jwtUtil,
		log:          log,
	}
}

// Login checks the admin password and issues a token on success.
func (s *AuthService) Login(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		s.log.Warn("admin login rejected")
		return "", ErrInvalidPassword
	}

	token, err := s.jwtUtil.GenerateAdminToken()
	if err != nil {
		return "", err
	}

	s.log.Info("admin logged in")
	return token, nil
}
