package services

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/dto"
)

// AccessControlSvcFacade issues, validates and revokes invitation codes and
// tracks per-user roles for the shared store.
type AccessControlSvcFacade interface {
	// CreateInvitation issues a pending single-use code bound to a role.
	// Only admins may issue invitations, and only admins may grant admin.
	CreateInvitation(ctx context.Context, req dto.CreateInvitationRequest, issuerUserID string) (*domain.Invitation, error)

	// ValidateAndAccept redeems a code (case-insensitive on input) for the
	// acting user, transitioning the invitation to accepted and upserting the
	// user's permission at the invitation's role. Only the first of two
	// near-simultaneous accept attempts commits; the loser observes
	// ErrCodeAlreadyAccepted.
	ValidateAndAccept(ctx context.Context, code string, actorUserID string) (domain.Role, error)

	// GetRole returns the acting user's role in the shared scope, and whether
	// one exists at all.
	GetRole(ctx context.Context, userID string) (domain.Role, bool, error)

	// Revoke marks a pending invitation revoked, making the code inert.
	Revoke(ctx context.Context, invitationID string, actorUserID string) error

	// ListInvitations returns all invitations; admin only.
	ListInvitations(ctx context.Context, actorUserID string) ([]domain.Invitation, error)

	// BootstrapAdmin elevates the acting user to admin, bypassing the
	// invitation system, guarded by the out-of-band setup secret. The
	// elevation is logged as a ChangeSet on the synthetic account record.
	BootstrapAdmin(ctx context.Context, secret string, actorUserID string) error
}
