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

type PgxBusinessRepository struct {
	db *pgxpool.Pool
}

func newPgxBusinessRepository(db *pgxpool.Pool) portsrepo.BusinessRepositoryFacade {
	return &PgxBusinessRepository{db: db}
}

var _ portsrepo.BusinessRepositoryFacade = (*PgxBusinessRepository)(nil)

const businessColumns = `business_id, name, type, is_active, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxBusinessRepository) SaveBusiness(ctx context.Context, business domain.Business) error {
	query := `
		INSERT INTO businesses (` + businessColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db.Exec(ctx, query,
		business.BusinessID,
		business.Name,
		business.Type,
		business.IsActive,
		business.CreatedAt,
		business.CreatedBy,
		business.LastUpdatedAt,
		business.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.ErrDuplicate
			}
		}
		return fmt.Errorf("failed to save business: %w", err)
	}
	return nil
}

func (r *PgxBusinessRepository) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE business_id = $1;`

	rows, err := r.db.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to query business %s: %w", businessID, err)
	}
	business, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.Business])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find business by ID %s: %w", businessID, err)
	}
	return &business, nil
}

func (r *PgxBusinessRepository) FindBusinessByName(ctx context.Context, name string) (*domain.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE LOWER(name) = LOWER($1);`

	rows, err := r.db.Query(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query business by name: %w", err)
	}
	business, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.Business])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find business by name: %w", err)
	}
	return &business, nil
}

func (r *PgxBusinessRepository) ListBusinesses(ctx context.Context, includeInactive bool) ([]domain.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses`
	if !includeInactive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name ASC;`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query businesses: %w", err)
	}
	businesses, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Business])
	if err != nil {
		return nil, fmt.Errorf("failed to collect businesses: %w", err)
	}
	return businesses, nil
}

func (r *PgxBusinessRepository) UpdateBusinessStatus(ctx context.Context, businessID string, isActive bool, updatedBy string, now time.Time) error {
	query := `
		UPDATE businesses SET is_active = $2, last_updated_at = $3, last_updated_by = $4
		WHERE business_id = $1;
	`
	tag, err := r.db.Exec(ctx, query, businessID, isActive, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update business status %s: %w", businessID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
