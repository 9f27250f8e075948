package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/utils"
)

// userService implements the UserSvcFacade interface. User accounts live in
// the shared store only; local mode never needs one.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByUsername retrieves a user by username.
func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser creates a new user with a bcrypt-hashed password credential.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	username := strings.TrimSpace(req.Username)

	existing, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check username uniqueness", slog.String("username", username))
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("username already taken")
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	newUserID := uuid.NewString()
	user := domain.User{
		UserID:       newUserID,
		Username:     username,
		PasswordHash: passwordHash,
		Name:         req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     newUserID, // self registration
			LastUpdatedAt: now,
			LastUpdatedBy: newUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("username already taken")
		}
		s.LogError(ctx, err, "Failed to save user", slog.String("user_id", user.UserID))
		return nil, err
	}

	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID))
	return &user, nil
}

// UpsertProviderUser finds or creates the user for an external provider
// identity. The provider's opaque id is the permanent key: an email or display
// name change on the provider side updates the profile but never forks the
// account.
func (s *userService) UpsertProviderUser(ctx context.Context, authProvider string, info *domain.GoogleUserInfo) (*domain.User, error) {
	user, err := s.userRepo.FindUserByProviderDetails(ctx, authProvider, info.ID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up provider user", slog.String("provider", authProvider))
		return nil, err
	}

	if user != nil {
		changed := false
		if info.Name != "" && user.Name != info.Name {
			user.Name = info.Name
			changed = true
		}
		if info.Email != "" && (user.Email == nil || *user.Email != info.Email) {
			email := info.Email
			user.Email = &email
			changed = true
		}
		if changed {
			user.LastUpdatedAt = time.Now()
			user.LastUpdatedBy = user.UserID
			if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
				s.LogError(ctx, err, "Failed to refresh provider user profile", slog.String("user_id", user.UserID))
				return nil, err
			}
		}
		return user, nil
	}

	now := time.Now()
	newUserID := uuid.NewString()
	provider := authProvider
	providerUserID := info.ID
	email := info.Email
	newUser := domain.User{
		UserID:         newUserID,
		Username:       info.Email, // provider accounts use the email as username
		Name:           info.Name,
		Email:          &email,
		AuthProvider:   &provider,
		ProviderUserID: &providerUserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     newUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: newUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		s.LogError(ctx, err, "Failed to save provider user", slog.String("provider", authProvider))
		return nil, err
	}

	s.LogInfo(ctx, "Provider user created", slog.String("user_id", newUser.UserID), slog.String("provider", authProvider))
	return &newUser, nil
}

// UpdateRefreshToken stores the hash and expiry of a user's refresh token.
func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
}

// ClearRefreshToken removes a user's stored refresh token.
func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.userRepo.ClearRefreshToken(ctx, userID)
}

// AuthenticateUser verifies a username/password pair. Lookup failure and
// password mismatch are indistinguishable to the caller.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if user.PasswordHash == "" || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}
