package repositories

import (
	"context"
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// BusinessReader defines read operations for businesses.
type BusinessReader interface {
	// FindBusinessByID retrieves a specific business by its ID.
	FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error)

	// FindBusinessByName retrieves a business by name, case-insensitively.
	FindBusinessByName(ctx context.Context, name string) (*domain.Business, error)

	// ListBusinesses retrieves all businesses, optionally including inactive ones.
	ListBusinesses(ctx context.Context, includeInactive bool) ([]domain.Business, error)
}

// BusinessWriter defines write operations for businesses.
type BusinessWriter interface {
	// SaveBusiness persists a new business.
	SaveBusiness(ctx context.Context, business domain.Business) error

	// UpdateBusinessStatus flips the active flag on a business.
	UpdateBusinessStatus(ctx context.Context, businessID string, isActive bool, updatedBy string, now time.Time) error
}

// BusinessRepositoryFacade combines all business-related repository interfaces.
type BusinessRepositoryFacade interface {
	BusinessReader
	BusinessWriter
}
