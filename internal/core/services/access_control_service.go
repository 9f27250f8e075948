package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/platform/analytics"
	"github.com/bizledger/bizledger_app/internal/utils"
	"github.com/google/uuid"
)

// codeGenerationAttempts bounds the collision-retry loop for invitation codes.
// With a 31-character alphabet and 6 positions a collision among pending codes
// is vanishingly rare.
const codeGenerationAttempts = 5

// accessControlService implements the AccessControlSvcFacade interface.
// Invitations and permissions live only in the shared backend, so this service
// holds shared repositories directly and is unaffected by mode switches.
type accessControlService struct {
	BaseService
	invitationRepo portsrepo.InvitationRepositoryFacade
	permissionRepo portsrepo.PermissionRepositoryFacade
	auditSvc       portssvc.AuditSvcFacade // pinned to the shared backend
	setupSecret    string
	analytics      *analytics.Client
}

// NewAccessControlService creates a new access control service. auditSvc must
// audit into the shared backend regardless of the active mode; setupSecret is
// the out-of-band bootstrap secret (empty disables the bootstrap path).
func NewAccessControlService(
	invitationRepo portsrepo.InvitationRepositoryFacade,
	permissionRepo portsrepo.PermissionRepositoryFacade,
	auditSvc portssvc.AuditSvcFacade,
	setupSecret string,
	analyticsClient *analytics.Client,
) portssvc.AccessControlSvcFacade {
	return &accessControlService{
		invitationRepo: invitationRepo,
		permissionRepo: permissionRepo,
		auditSvc:       auditSvc,
		setupSecret:    setupSecret,
		analytics:      analyticsClient,
	}
}

var _ portssvc.AccessControlSvcFacade = (*accessControlService)(nil)

// CreateInvitation issues a pending single-use code bound to a role.
func (s *accessControlService) CreateInvitation(ctx context.Context, req dto.CreateInvitationRequest, issuerUserID string) (*domain.Invitation, error) {
	if issuerUserID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if !req.Role.IsValid() {
		return nil, apperrors.NewValidationFailedError("unknown role " + string(req.Role))
	}

	// Issuing invitations is an administrative act; granting admin doubly so.
	if err := s.requireRole(ctx, issuerUserID, domain.RoleAdmin); err != nil {
		s.LogDebug(ctx, "Invitation issuance denied",
			slog.String("issuer_id", issuerUserID),
			slog.String("role", string(req.Role)))
		return nil, err
	}

	code, err := s.generatePendingCode(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate invitation code")
		return nil, err
	}

	invitation := domain.Invitation{
		InvitationID: uuid.NewString(),
		Code:         code,
		IssuerID:     issuerUserID,
		InviteeEmail: strings.ToLower(strings.TrimSpace(req.InviteeEmail)),
		Role:         req.Role,
		Status:       domain.InvitationPending,
		CreatedAt:    time.Now(),
	}

	if err := s.invitationRepo.SaveInvitation(ctx, invitation); err != nil {
		s.LogError(ctx, err, "Failed to save invitation",
			slog.String("invitation_id", invitation.InvitationID))
		return nil, err
	}

	s.LogInfo(ctx, "Invitation created",
		slog.String("invitation_id", invitation.InvitationID),
		slog.String("role", string(invitation.Role)),
		slog.String("issuer_id", issuerUserID))
	return &invitation, nil
}

// generatePendingCode draws codes until one does not collide with a currently
// pending invitation. Inert codes are ignored: once accepted or revoked a code
// may be reissued.
func (s *accessControlService) generatePendingCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < codeGenerationAttempts; attempt++ {
		code, err := utils.GenerateCodeFromAlphabet(domain.InviteCodeAlphabet, domain.InviteCodeLength)
		if err != nil {
			return "", err
		}
		exists, err := s.invitationRepo.PendingCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", apperrors.NewAppError(500, "could not generate a unique invitation code", nil)
}

// ValidateAndAccept redeems a code for the acting user.
func (s *accessControlService) ValidateAndAccept(ctx context.Context, code string, actorUserID string) (domain.Role, error) {
	if actorUserID == "" {
		return "", apperrors.ErrUnauthorized
	}

	normalized := strings.ToUpper(strings.TrimSpace(code))
	if len(normalized) != domain.InviteCodeLength {
		return "", apperrors.ErrInvalidCode
	}

	invitation, err := s.invitationRepo.FindInvitationByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.ErrInvalidCode
		}
		s.LogError(ctx, err, "Failed to look up invitation code")
		return "", err
	}

	switch invitation.Status {
	case domain.InvitationAccepted:
		return "", apperrors.ErrCodeAlreadyAccepted
	case domain.InvitationRevoked:
		return "", apperrors.ErrCodeRevoked
	}

	oldRole := ""
	if existing, pErr := s.permissionRepo.FindPermissionByUserID(ctx, actorUserID); pErr == nil {
		oldRole = string(existing.Role)
	}

	// Compare-and-swap on the status field: of two near-simultaneous accept
	// attempts only the first commits, the second observes AlreadyAccepted.
	// The status transition and the permission grant commit together, so an
	// error here leaves the code pending and redeemable.
	now := time.Now()
	invitationID := invitation.InvitationID
	permission := domain.Permission{
		UserID:     actorUserID,
		Role:       invitation.Role,
		GrantedVia: &invitationID,
		AddedAt:    now,
	}
	committed, err := s.invitationRepo.AcceptInvitationAndGrant(ctx, invitation.InvitationID, actorUserID, now, permission)
	if err != nil {
		s.LogError(ctx, err, "Failed to accept invitation",
			slog.String("invitation_id", invitation.InvitationID),
			slog.String("user_id", actorUserID))
		return "", err
	}
	if !committed {
		current, reErr := s.invitationRepo.FindInvitationByID(ctx, invitation.InvitationID)
		if reErr == nil && current.Status == domain.InvitationRevoked {
			return "", apperrors.ErrCodeRevoked
		}
		return "", apperrors.ErrCodeAlreadyAccepted
	}

	s.auditSvc.RecordChange(ctx, domain.AccountSettingsRecordID, "role", oldRole, string(invitation.Role), actorUserID)
	if s.analytics != nil {
		s.analytics.Enqueue(actorUserID, "invitation_accepted", map[string]any{
			"role": string(invitation.Role),
		})
	}

	s.LogInfo(ctx, "Invitation accepted",
		slog.String("invitation_id", invitation.InvitationID),
		slog.String("user_id", actorUserID),
		slog.String("role", string(invitation.Role)))
	return invitation.Role, nil
}

// GetRole returns the user's role in the shared scope.
func (s *accessControlService) GetRole(ctx context.Context, userID string) (domain.Role, bool, error) {
	if userID == "" {
		return "", false, nil
	}
	permission, err := s.permissionRepo.FindPermissionByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", false, nil
		}
		s.LogError(ctx, err, "Failed to find permission", slog.String("user_id", userID))
		return "", false, err
	}
	return permission.Role, true, nil
}

// Revoke marks a pending invitation revoked. Revoking an already-revoked
// invitation is a no-op; an accepted one cannot be revoked.
func (s *accessControlService) Revoke(ctx context.Context, invitationID string, actorUserID string) error {
	if actorUserID == "" {
		return apperrors.ErrUnauthorized
	}
	if err := s.requireRole(ctx, actorUserID, domain.RoleAdmin); err != nil {
		return err
	}

	committed, err := s.invitationRepo.RevokeInvitation(ctx, invitationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to revoke invitation",
			slog.String("invitation_id", invitationID))
		return err
	}
	if !committed {
		current, reErr := s.invitationRepo.FindInvitationByID(ctx, invitationID)
		if reErr != nil {
			return reErr
		}
		if current.Status == domain.InvitationAccepted {
			return apperrors.ErrCodeAlreadyAccepted
		}
		// Already revoked; nothing left to do.
		return nil
	}

	s.LogInfo(ctx, "Invitation revoked",
		slog.String("invitation_id", invitationID),
		slog.String("actor_id", actorUserID))
	return nil
}

// ListInvitations returns every invitation; admin only.
func (s *accessControlService) ListInvitations(ctx context.Context, actorUserID string) ([]domain.Invitation, error) {
	if actorUserID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if err := s.requireRole(ctx, actorUserID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.invitationRepo.ListInvitations(ctx)
}

// BootstrapAdmin elevates the acting user to admin against the out-of-band
// setup secret. The secret comparison is verbatim and case-sensitive. This is
// the one deliberate bypass of the invitation system; the elevation is logged
// against the synthetic account record so it stays auditable.
func (s *accessControlService) BootstrapAdmin(ctx context.Context, secret string, actorUserID string) error {
	if actorUserID == "" {
		return apperrors.ErrUnauthorized
	}
	if s.setupSecret == "" || secret != s.setupSecret {
		s.LogDebug(ctx, "Bootstrap admin rejected", slog.String("user_id", actorUserID))
		return apperrors.ErrInvalidCode
	}

	oldRole := ""
	if existing, err := s.permissionRepo.FindPermissionByUserID(ctx, actorUserID); err == nil {
		oldRole = string(existing.Role)
	}

	permission := domain.Permission{
		UserID:     actorUserID,
		Role:       domain.RoleAdmin,
		GrantedVia: nil, // bootstrap admin has no originating invitation
		AddedAt:    time.Now(),
	}
	if err := s.permissionRepo.UpsertPermission(ctx, permission); err != nil {
		s.LogError(ctx, err, "Failed to upsert bootstrap admin permission",
			slog.String("user_id", actorUserID))
		return err
	}

	s.auditSvc.RecordChange(ctx, domain.AccountSettingsRecordID, "role", oldRole, string(domain.RoleAdmin), actorUserID)

	s.LogInfo(ctx, "Bootstrap admin elevation", slog.String("user_id", actorUserID))
	return nil
}

// requireRole checks that the user holds at least the required role.
func (s *accessControlService) requireRole(ctx context.Context, userID string, required domain.Role) error {
	role, ok, err := s.GetRole(ctx, userID)
	if err != nil {
		return err
	}
	if !ok || !role.Meets(required) {
		return apperrors.ErrForbidden
	}
	return nil
}
