package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amchigale/konkani-dictionary/internal/common"
	"github.com/amchigale/konkani-dictionary/internal/domain"
	"github.com/amchigale/konkani-dictionary/internal/repository"
	"github.com/amchigale/konkani-dictionary/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is enforced when an operator sets an expert password
const MinPasswordLength = 8

// AuthService expert authentication business logic
type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.LoginResponse, error)
	ValidateToken(ctx context.Context, token string) (*domain.Contributor, error)
}

type authService struct {
	contributorRepo repository.ContributorRepository
	jwtManager      *jwt.Manager
	now             func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(contributorRepo repository.ContributorRepository, jwtManager *jwt.Manager) AuthService {
	return &authService{
		contributorRepo: contributorRepo,
		jwtManager:      jwtManager,
		now:             time.Now,
	}
}

// Login exchanges expert credentials for a session token
func (s *authService) Login(ctx context.Context, email, password string) (*domain.LoginResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, common.NewValidationError("Email and password are required")
	}

	// 1. Find an active expert
	expert, err := s.contributorRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find expert: %w", err)
	}
	if !expert.IsActiveExpert() || expert.PasswordHash == nil {
		return nil, common.ErrInvalidCredentials
	}

	// 2. Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(*expert.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	// 3. Record login
	if err := s.contributorRepo.UpdateLastLogin(ctx, expert.ID, s.now().UTC()); err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}

	// 4. Issue token
	token, err := s.jwtManager.GenerateToken(expert.ID, expert.Email)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &domain.LoginResponse{
		Token: token,
		User: domain.ExpertInfo{
			ID:    expert.ID,
			Email: expert.Email,
			Name:  expert.Name,
		},
	}, nil
}

// ValidateToken verifies the token and re-checks that its expert is still active
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.Contributor, error) {
	claims, err := s.jwtManager.VerifyToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, common.ErrExpiredToken
		}
		return nil, common.ErrInvalidToken
	}

	expert, err := s.contributorRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("find expert: %w", err)
	}
	if !expert.IsActiveExpert() {
		return nil, common.ErrUnauthorized
	}
	return expert, nil
}

// HashPassword bcrypt-hashes an expert password
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", common.NewValidationError(fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
