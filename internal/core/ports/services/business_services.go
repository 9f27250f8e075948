package services

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/dto"
)

// BusinessSvcFacade defines operations for managing businesses on the active
// backend. Business names are unique case-insensitively.
type BusinessSvcFacade interface {
	// CreateBusiness creates a new business owned by the acting user.
	CreateBusiness(ctx context.Context, req dto.CreateBusinessRequest, actorUserID string) (*domain.Business, error)

	// GetBusinessByID retrieves a business by ID.
	GetBusinessByID(ctx context.Context, businessID string) (*domain.Business, error)

	// ListBusinesses retrieves all businesses on the active backend.
	ListBusinesses(ctx context.Context, includeInactive bool) ([]domain.Business, error)

	// DeactivateBusiness marks a business inactive.
	DeactivateBusiness(ctx context.Context, businessID string, actorUserID string) error
}
