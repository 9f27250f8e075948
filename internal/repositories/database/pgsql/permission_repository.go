package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
)

type PgxPermissionRepository struct {
	db *pgxpool.Pool
}

func newPgxPermissionRepository(db *pgxpool.Pool) portsrepo.PermissionRepositoryFacade {
	return &PgxPermissionRepository{db: db}
}

var _ portsrepo.PermissionRepositoryFacade = (*PgxPermissionRepository)(nil)

const permissionColumns = `user_id, role, granted_via, added_at`

func (r *PgxPermissionRepository) FindPermissionByUserID(ctx context.Context, userID string) (*domain.Permission, error) {
	query := `SELECT ` + permissionColumns + ` FROM permissions WHERE user_id = $1;`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query permission for user %s: %w", userID, err)
	}
	permission, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.Permission])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find permission for user %s: %w", userID, err)
	}
	return &permission, nil
}

func (r *PgxPermissionRepository) ListPermissions(ctx context.Context) ([]domain.Permission, error) {
	query := `SELECT ` + permissionColumns + ` FROM permissions ORDER BY added_at ASC;`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query permissions: %w", err)
	}
	permissions, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Permission])
	if err != nil {
		return nil, fmt.Errorf("failed to collect permissions: %w", err)
	}
	return permissions, nil
}

// UpsertPermission keeps exactly one row per user; the latest grant replaces
// any earlier one.
func (r *PgxPermissionRepository) UpsertPermission(ctx context.Context, permission domain.Permission) error {
	query := `
		INSERT INTO permissions (` + permissionColumns + `)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			role = EXCLUDED.role,
			granted_via = EXCLUDED.granted_via,
			added_at = EXCLUDED.added_at;
	`
	_, err := r.db.Exec(ctx, query,
		permission.UserID,
		permission.Role,
		permission.GrantedVia,
		permission.AddedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert permission for user %s: %w", permission.UserID, err)
	}
	return nil
}
