package service

import (
	"context"
	"errors"
	"fmt"

	"catalog_service/internal/common"
	"catalog_service/internal/common/security"
	"catalog_service/internal/domain/model"
	"catalog_service/internal/domain/repository"
)

type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// Signup registers a new user. It deliberately applies no email-format or
// password-length rules; the only rejection is a duplicate email. No token is
// issued here, the client logs in afterwards.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) error {
	_, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err == nil {
		return common.ErrDuplicateEmail
	}
	if !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("failed to look up email: %w", err)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: hashedPassword,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo returns common.ErrDuplicateEmail on a unique violation, which
		// covers the race between the lookup above and the insert.
		return err
	}
	return nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := security.GenerateToken(user.ID, user.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &LoginResponse{Token: token}, nil
}
