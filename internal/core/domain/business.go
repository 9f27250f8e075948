package domain

// BusinessType is the closed list of business classifications.
type BusinessType string

const (
	BusinessSoleProprietorship BusinessType = "SOLE_PROPRIETORSHIP"
	BusinessPartnership        BusinessType = "PARTNERSHIP"
	BusinessLLC                BusinessType = "LLC"
	BusinessCorporation        BusinessType = "CORPORATION"
	BusinessNonProfit          BusinessType = "NON_PROFIT"
	BusinessOther              BusinessType = "OTHER"
)

// IsValid reports whether t is one of the closed set of business types.
func (t BusinessType) IsValid() bool {
	switch t {
	case BusinessSoleProprietorship, BusinessPartnership, BusinessLLC,
		BusinessCorporation, BusinessNonProfit, BusinessOther:
		return true
	}
	return false
}

// Business groups records under one venture. Name is unique per account,
// case-insensitively.
type Business struct {
	BusinessID string       `json:"businessID"`
	Name       string       `json:"name"`
	Type       BusinessType `json:"type"`
	IsActive   bool         `json:"isActive"`
	AuditFields
}
