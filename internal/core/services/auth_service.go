package services

import (
	"context"
	"errors"
	"log"
	"time"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/config"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/pkg/jwt"
	"libraryhub/internal/pkg/password"

	"gorm.io/gorm"
)

// AuthService handles librarian authentication
type AuthService struct {
	librarianRepo repositories.LibrarianRepository
	cfg           config.JWTConfig
}

// NewAuthService creates a new auth service
func NewAuthService(librarianRepo repositories.LibrarianRepository, cfg config.JWTConfig) *AuthService {
	return &AuthService{
		librarianRepo: librarianRepo,
		cfg:           cfg,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Librarian   *models.Librarian `json:"librarian"`
	AccessToken string            `json:"access_token"`
	TokenType   string            `json:"token_type"`
	ExpiresAt   time.Time         `json:"expires_at"`
}

// Login authenticates a librarian and issues an access token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Find librarian by username
	librarian, err := s.librarianRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Verify password
	if !password.Verify(input.Password, librarian.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	// 3. Check if librarian is active
	if !librarian.IsActive {
		return nil, domain.ErrInactiveAccount
	}

	// 4. Generate token
	token, expiresAt, err := jwt.GenerateAccessToken(
		librarian.ID,
		librarian.Username,
		librarian.Role,
		s.cfg.Secret,
		s.cfg.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Librarian logged in: %s", librarian.Username)

	return &AuthResponse{
		Librarian:   librarian,
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.cfg.Secret)
}

// GetLibrarian gets a librarian by ID
func (s *AuthService) GetLibrarian(ctx context.Context, id uint) (*models.Librarian, error) {
	librarian, err := s.librarianRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, domain.EntityLibrarian, id)
	}
	return librarian, nil
}
