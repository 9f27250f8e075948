package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
)

// SQLiteBusinessRepository implements the business repository over the local store.
type SQLiteBusinessRepository struct {
	db *sql.DB
}

func newSQLiteBusinessRepository(db *sql.DB) portsrepo.BusinessRepositoryFacade {
	return &SQLiteBusinessRepository{db: db}
}

var _ portsrepo.BusinessRepositoryFacade = (*SQLiteBusinessRepository)(nil)

const businessColumns = `business_id, name, type, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanBusiness(row interface{ Scan(...any) error }) (*domain.Business, error) {
	var (
		b             domain.Business
		createdAt     int64
		lastUpdatedAt int64
	)
	err := row.Scan(
		&b.BusinessID,
		&b.Name,
		&b.Type,
		&b.IsActive,
		&createdAt,
		&b.CreatedBy,
		&lastUpdatedAt,
		&b.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	b.CreatedAt = decodeTime(createdAt)
	b.LastUpdatedAt = decodeTime(lastUpdatedAt)
	return &b, nil
}

func (s *SQLiteBusinessRepository) SaveBusiness(ctx context.Context, business domain.Business) error {
	query := `
		INSERT INTO businesses (` + businessColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		business.BusinessID,
		business.Name,
		business.Type,
		business.IsActive,
		encodeTime(business.CreatedAt),
		business.CreatedBy,
		encodeTime(business.LastUpdatedAt),
		business.LastUpdatedBy,
	)
	if err != nil {
		// The NOCASE unique index enforces case-insensitive name uniqueness.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save business: %w", err)
	}
	return nil
}

func (s *SQLiteBusinessRepository) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE business_id = ?`

	business, err := scanBusiness(s.db.QueryRowContext(ctx, query, businessID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find business by ID %s: %w", businessID, err)
	}
	return business, nil
}

func (s *SQLiteBusinessRepository) FindBusinessByName(ctx context.Context, name string) (*domain.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE name = ? COLLATE NOCASE`

	business, err := scanBusiness(s.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find business by name: %w", err)
	}
	return business, nil
}

func (s *SQLiteBusinessRepository) ListBusinesses(ctx context.Context, includeInactive bool) ([]domain.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses`
	if !includeInactive {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY name COLLATE NOCASE ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query businesses: %w", err)
	}
	defer rows.Close()

	var businesses []domain.Business
	for rows.Next() {
		business, err := scanBusiness(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan business row: %w", err)
		}
		businesses = append(businesses, *business)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate business rows: %w", err)
	}
	return businesses, nil
}

func (s *SQLiteBusinessRepository) UpdateBusinessStatus(ctx context.Context, businessID string, isActive bool, updatedBy string, now time.Time) error {
	query := `
		UPDATE businesses SET is_active = ?, last_updated_at = ?, last_updated_by = ?
		WHERE business_id = ?
	`
	res, err := s.db.ExecContext(ctx, query, isActive, encodeTime(now), updatedBy, businessID)
	if err != nil {
		return fmt.Errorf("failed to update business status %s: %w", businessID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
