package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
)

// businessService implements the BusinessSvcFacade interface.
type businessService struct {
	BaseService
	storeMode     portssvc.StoreModeSvcFacade
	accessControl portssvc.AccessControlSvcFacade
}

// NewBusinessService creates a new business service.
func NewBusinessService(storeMode portssvc.StoreModeSvcFacade, accessControl portssvc.AccessControlSvcFacade) portssvc.BusinessSvcFacade {
	return &businessService{storeMode: storeMode, accessControl: accessControl}
}

var _ portssvc.BusinessSvcFacade = (*businessService)(nil)

// requireWriteAccess mirrors the record mutation gate: local mode is ungated,
// shared mode requires at least editor.
func (s *businessService) requireWriteAccess(ctx context.Context, actorUserID string) error {
	if s.storeMode.Mode() == domain.ModeLocal {
		return nil
	}
	if actorUserID == "" {
		return apperrors.ErrUnauthorized
	}
	role, ok, err := s.accessControl.GetRole(ctx, actorUserID)
	if err != nil {
		return err
	}
	if !ok || !role.Meets(domain.RoleEditor) {
		return apperrors.ErrForbidden
	}
	return nil
}

// CreateBusiness creates a new business. Names are unique case-insensitively;
// a duplicate (after trimming) is rejected with a conflict.
func (s *businessService) CreateBusiness(ctx context.Context, req dto.CreateBusinessRequest, actorUserID string) (*domain.Business, error) {
	if err := s.requireWriteAccess(ctx, actorUserID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationFailedError("business name must not be empty")
	}
	if !req.Type.IsValid() {
		return nil, apperrors.NewValidationFailedError("unknown business type " + string(req.Type))
	}

	repo := s.storeMode.ActiveRepos().BusinessRepo
	existing, err := repo.FindBusinessByName(ctx, name)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check business name uniqueness", slog.String("name", name))
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("business name already in use")
	}

	now := time.Now()
	business := domain.Business{
		BusinessID: uuid.NewString(),
		Name:       name,
		Type:       req.Type,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}

	if err := repo.SaveBusiness(ctx, business); err != nil {
		// A concurrent create can slip past the pre-check; the storage
		// uniqueness constraint is the backstop.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("business name already in use")
		}
		s.LogError(ctx, err, "Failed to save business", slog.String("business_id", business.BusinessID))
		return nil, err
	}

	s.LogInfo(ctx, "Business created", slog.String("business_id", business.BusinessID), slog.String("name", name))
	return &business, nil
}

// GetBusinessByID retrieves a business by ID from the active backend.
func (s *businessService) GetBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	business, err := s.storeMode.ActiveRepos().BusinessRepo.FindBusinessByID(ctx, businessID)
	if err != nil {
		s.LogError(ctx, err, "Failed to get business by ID", slog.String("business_id", businessID))
		return nil, err
	}
	return business, nil
}

// ListBusinesses retrieves all businesses on the active backend.
func (s *businessService) ListBusinesses(ctx context.Context, includeInactive bool) ([]domain.Business, error) {
	businesses, err := s.storeMode.ActiveRepos().BusinessRepo.ListBusinesses(ctx, includeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list businesses")
		return nil, err
	}
	return businesses, nil
}

// DeactivateBusiness marks a business inactive. Its records remain readable.
func (s *businessService) DeactivateBusiness(ctx context.Context, businessID string, actorUserID string) error {
	if err := s.requireWriteAccess(ctx, actorUserID); err != nil {
		return err
	}

	repo := s.storeMode.ActiveRepos().BusinessRepo
	if _, err := repo.FindBusinessByID(ctx, businessID); err != nil {
		return err
	}
	if err := repo.UpdateBusinessStatus(ctx, businessID, false, actorUserID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate business", slog.String("business_id", businessID))
		return err
	}

	s.LogInfo(ctx, "Business deactivated", slog.String("business_id", businessID))
	return nil
}
