package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/medlaunch/onboard-api/internal/config"
	"github.com/medlaunch/onboard-api/internal/model"
	"github.com/medlaunch/onboard-api/internal/repository"
	"github.com/medlaunch/onboard-api/pkg/auth"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const bcryptCost = 12

type AuthServicer interface {
	Login(ctx context.Context, email, password string) (*model.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*model.TokenResponse, error)
	Logout(ctx context.Context, token string) error
	ValidateToken(ctx context.Context, token string) (*model.TokenClaims, error)
}

type Service struct {
	adminRepo repository.AdminRepository
	tokenRepo repository.TokenRepository
	jwtSvc    *auth.JWTService
}

func NewService(adminRepo repository.AdminRepository, tokenRepo repository.TokenRepository, jwtSvc *auth.JWTService) *Service {
	return &Service{
		adminRepo: adminRepo,
		tokenRepo: tokenRepo,
		jwtSvc:    jwtSvc,
	}
}

func (s *Service) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.adminRepo.UpdateLastLogin(ctx, admin.ID, time.Now()); err != nil {
		log.Warn().Err(err).Str("admin_id", admin.ID.String()).Msg("failed to record login time")
	}

	return s.issueTokens(admin.ID, admin.Email)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	claims, err := s.jwtSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	admin, err := s.adminRepo.Get(ctx, claims.AdminID)
	if err != nil {
		return nil, fmt.Errorf("admin not found: %w", err)
	}

	return s.issueTokens(admin.ID, admin.Email)
}

// Logout revokes the presented access token for its remaining lifetime.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtSvc.ValidateAccessToken(token)
	if err != nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	return s.tokenRepo.Revoke(ctx, token, ttl)
}

func (s *Service) ValidateToken(ctx context.Context, token string) (*model.TokenClaims, error) {
	claims, err := s.jwtSvc.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.tokenRepo.IsRevoked(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, auth.ErrInvalidToken
	}

	return &model.TokenClaims{AdminID: claims.AdminID, Email: claims.Email}, nil
}

func (s *Service) issueTokens(adminID uuid.UUID, email string) (*model.TokenResponse, error) {
	accessToken, err := s.jwtSvc.GenerateAccessToken(adminID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtSvc.GenerateRefreshToken(adminID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &model.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.jwtSvc.AccessExpiry()),
	}, nil
}

// SeedAdmin creates the configured operator account when the table is empty,
// so a fresh deployment has a way into the dashboard.
func SeedAdmin(ctx context.Context, repo repository.AdminRepository, seed config.AdminSeed) error {
	if seed.Email == "" || seed.Password == "" {
		return nil
	}

	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	now := time.Now()
	admin := &model.Admin{
		ID:           uuid.New(),
		Email:        seed.Email,
		PasswordHash: string(hash),
		Name:         seed.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	log.Info().Str("email", seed.Email).Msg("seeded initial admin account")
	return nil
}
