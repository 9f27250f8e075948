package dto

import (
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// --- Invitation DTOs ---

// CreateInvitationRequest defines data for issuing an invitation code.
type CreateInvitationRequest struct {
	InviteeEmail string      `json:"inviteeEmail" binding:"required,email"`
	Role         domain.Role `json:"role" binding:"required,oneof=VIEWER EDITOR ADMIN"`
}

// AcceptInvitationRequest carries a code being redeemed. Codes are
// case-insensitive on input.
type AcceptInvitationRequest struct {
	Code string `json:"code" binding:"required,len=6"`
}

// BootstrapAdminRequest carries the out-of-band setup secret.
type BootstrapAdminRequest struct {
	Secret string `json:"secret" binding:"required"`
}

// InvitationResponse defines data returned for an invitation.
type InvitationResponse struct {
	InvitationID string                  `json:"invitationID"`
	Code         string                  `json:"code"`
	InviteeEmail string                  `json:"inviteeEmail"`
	Role         domain.Role             `json:"role"`
	Status       domain.InvitationStatus `json:"status"`
	CreatedAt    time.Time               `json:"createdAt"`
	AcceptedBy   *string                 `json:"acceptedBy,omitempty"`
	AcceptedAt   *time.Time              `json:"acceptedAt,omitempty"`
}

// ToInvitationResponse converts domain.Invitation to DTO.
func ToInvitationResponse(inv *domain.Invitation) InvitationResponse {
	return InvitationResponse{
		InvitationID: inv.InvitationID,
		Code:         inv.Code,
		InviteeEmail: inv.InviteeEmail,
		Role:         inv.Role,
		Status:       inv.Status,
		CreatedAt:    inv.CreatedAt,
		AcceptedBy:   inv.AcceptedBy,
		AcceptedAt:   inv.AcceptedAt,
	}
}

// ListInvitationsResponse wraps a list of invitations.
type ListInvitationsResponse struct {
	Invitations []InvitationResponse `json:"invitations"`
}

// ToListInvitationsResponse converts a slice of domain.Invitation to DTO.
func ToListInvitationsResponse(invs []domain.Invitation) ListInvitationsResponse {
	list := make([]InvitationResponse, len(invs))
	for i, inv := range invs {
		list[i] = ToInvitationResponse(&inv)
	}
	return ListInvitationsResponse{Invitations: list}
}

// AcceptInvitationResponse reports the role granted by a redeemed code.
type AcceptInvitationResponse struct {
	Role domain.Role `json:"role"`
}
