package dto

import (
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// --- Business DTOs ---

// CreateBusinessRequest defines data for creating a new business.
type CreateBusinessRequest struct {
	Name string              `json:"name" binding:"required"`
	Type domain.BusinessType `json:"type" binding:"required"`
}

// BusinessResponse defines data returned for a business.
type BusinessResponse struct {
	BusinessID    string              `json:"businessID"`
	Name          string              `json:"name"`
	Type          domain.BusinessType `json:"type"`
	IsActive      bool                `json:"isActive"`
	CreatedAt     time.Time           `json:"createdAt"`
	CreatedBy     string              `json:"createdBy"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy string              `json:"lastUpdatedBy"`
}

// ToBusinessResponse converts domain.Business to DTO.
func ToBusinessResponse(b *domain.Business) BusinessResponse {
	return BusinessResponse{
		BusinessID:    b.BusinessID,
		Name:          b.Name,
		Type:          b.Type,
		IsActive:      b.IsActive,
		CreatedAt:     b.CreatedAt,
		CreatedBy:     b.CreatedBy,
		LastUpdatedAt: b.LastUpdatedAt,
		LastUpdatedBy: b.LastUpdatedBy,
	}
}

// ListBusinessesResponse wraps a list of businesses.
type ListBusinessesResponse struct {
	Businesses []BusinessResponse `json:"businesses"`
}

// ToListBusinessesResponse converts a slice of domain.Business to DTO.
func ToListBusinessesResponse(bs []domain.Business) ListBusinessesResponse {
	list := make([]BusinessResponse, len(bs))
	for i, b := range bs {
		list[i] = ToBusinessResponse(&b)
	}
	return ListBusinessesResponse{Businesses: list}
}
