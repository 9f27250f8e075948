package repositories

import (
	"context"
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// InvitationReader defines read operations for invitations.
type InvitationReader interface {
	// FindInvitationByID retrieves an invitation by its ID.
	FindInvitationByID(ctx context.Context, invitationID string) (*domain.Invitation, error)

	// FindInvitationByCode retrieves the most recent invitation carrying the
	// given (already uppercased) code, regardless of status.
	FindInvitationByCode(ctx context.Context, code string) (*domain.Invitation, error)

	// PendingCodeExists reports whether a pending invitation carries the code.
	// Inert (accepted/revoked) codes do not count.
	PendingCodeExists(ctx context.Context, code string) (bool, error)

	// ListInvitations retrieves all invitations, newest first.
	ListInvitations(ctx context.Context) ([]domain.Invitation, error)
}

// InvitationWriter defines write operations for invitations.
type InvitationWriter interface {
	// SaveInvitation persists a new invitation in pending status.
	SaveInvitation(ctx context.Context, invitation domain.Invitation) error

	// AcceptInvitationAndGrant transitions the invitation from pending to
	// accepted, stamping acceptedBy/acceptedAt, and upserts the granted
	// permission row in the same transaction. The status transition is a
	// compare-and-swap on the status field: it returns false without modifying
	// anything when the invitation is no longer pending. On error nothing is
	// committed, so the code stays redeemable.
	AcceptInvitationAndGrant(ctx context.Context, invitationID, acceptedBy string, acceptedAt time.Time, grant domain.Permission) (bool, error)

	// RevokeInvitation transitions the invitation from pending to revoked.
	// Returns false when the invitation is no longer pending.
	RevokeInvitation(ctx context.Context, invitationID string) (bool, error)
}

// InvitationRepositoryFacade combines all invitation-related repository interfaces.
type InvitationRepositoryFacade interface {
	InvitationReader
	InvitationWriter
}
