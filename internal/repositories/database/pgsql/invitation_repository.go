package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
)

type PgxInvitationRepository struct {
	db *pgxpool.Pool
}

func newPgxInvitationRepository(db *pgxpool.Pool) portsrepo.InvitationRepositoryFacade {
	return &PgxInvitationRepository{db: db}
}

var _ portsrepo.InvitationRepositoryFacade = (*PgxInvitationRepository)(nil)

const invitationColumns = `invitation_id, code, issuer_id, invitee_email, role, status, created_at, accepted_by, accepted_at`

func (r *PgxInvitationRepository) SaveInvitation(ctx context.Context, invitation domain.Invitation) error {
	query := `
		INSERT INTO invitations (` + invitationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db.Exec(ctx, query,
		invitation.InvitationID,
		invitation.Code,
		invitation.IssuerID,
		invitation.InviteeEmail,
		invitation.Role,
		invitation.Status,
		invitation.CreatedAt,
		invitation.AcceptedBy,
		invitation.AcceptedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// Partial unique index over pending codes only.
			if pgErr.Code == "23505" {
				return apperrors.ErrDuplicate
			}
		}
		return fmt.Errorf("failed to save invitation: %w", err)
	}
	return nil
}

func (r *PgxInvitationRepository) FindInvitationByID(ctx context.Context, invitationID string) (*domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE invitation_id = $1;`

	rows, err := r.db.Query(ctx, query, invitationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invitation %s: %w", invitationID, err)
	}
	invitation, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.Invitation])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invitation by ID %s: %w", invitationID, err)
	}
	return &invitation, nil
}

// FindInvitationByCode returns the most recent invitation carrying the code.
// Inert codes may be reissued, so the newest row decides what the caller sees.
func (r *PgxInvitationRepository) FindInvitationByCode(ctx context.Context, code string) (*domain.Invitation, error) {
	query := `
		SELECT ` + invitationColumns + `
		FROM invitations
		WHERE code = $1
		ORDER BY created_at DESC
		LIMIT 1;
	`
	rows, err := r.db.Query(ctx, query, code)
	if err != nil {
		return nil, fmt.Errorf("failed to query invitation by code: %w", err)
	}
	invitation, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.Invitation])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invitation by code: %w", err)
	}
	return &invitation, nil
}

func (r *PgxInvitationRepository) PendingCodeExists(ctx context.Context, code string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM invitations WHERE code = $1 AND status = $2);`

	var exists bool
	if err := r.db.QueryRow(ctx, query, code, domain.InvitationPending).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check pending code: %w", err)
	}
	return exists, nil
}

func (r *PgxInvitationRepository) ListInvitations(ctx context.Context) ([]domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations ORDER BY created_at DESC;`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query invitations: %w", err)
	}
	invitations, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Invitation])
	if err != nil {
		return nil, fmt.Errorf("failed to collect invitations: %w", err)
	}
	return invitations, nil
}

// AcceptInvitationAndGrant runs the status compare-and-swap and the
// permission upsert in one transaction. Under two near-simultaneous accepts
// the row predicate admits exactly one writer; the loser sees zero rows
// affected. A failed upsert rolls the status transition back, so a transient
// error never strands an accepted code without its grant.
func (r *PgxInvitationRepository) AcceptInvitationAndGrant(ctx context.Context, invitationID, acceptedBy string, acceptedAt time.Time, grant domain.Permission) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin accept transaction for invitation %s: %w", invitationID, err)
	}
	defer tx.Rollback(ctx)

	acceptQuery := `
		UPDATE invitations
		SET status = $2, accepted_by = $3, accepted_at = $4
		WHERE invitation_id = $1 AND status = $5;
	`
	tag, err := tx.Exec(ctx, acceptQuery, invitationID, domain.InvitationAccepted, acceptedBy, acceptedAt, domain.InvitationPending)
	if err != nil {
		return false, fmt.Errorf("failed to accept invitation %s: %w", invitationID, err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	grantQuery := `
		INSERT INTO permissions (` + permissionColumns + `)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			role = EXCLUDED.role,
			granted_via = EXCLUDED.granted_via,
			added_at = EXCLUDED.added_at;
	`
	if _, err := tx.Exec(ctx, grantQuery, grant.UserID, grant.Role, grant.GrantedVia, grant.AddedAt); err != nil {
		return false, fmt.Errorf("failed to grant permission for invitation %s: %w", invitationID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit accept of invitation %s: %w", invitationID, err)
	}
	return true, nil
}

func (r *PgxInvitationRepository) RevokeInvitation(ctx context.Context, invitationID string) (bool, error) {
	query := `
		UPDATE invitations
		SET status = $2
		WHERE invitation_id = $1 AND status = $3;
	`
	tag, err := r.db.Exec(ctx, query, invitationID, domain.InvitationRevoked, domain.InvitationPending)
	if err != nil {
		return false, fmt.Errorf("failed to revoke invitation %s: %w", invitationID, err)
	}
	return tag.RowsAffected() > 0, nil
}
