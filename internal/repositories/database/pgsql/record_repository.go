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
	"github.com/bizledger/bizledger_app/internal/utils/pagination"
)

type PgxRecordRepository struct {
	db *pgxpool.Pool
}

func newPgxRecordRepository(db *pgxpool.Pool) portsrepo.RecordRepositoryFacade {
	return &PgxRecordRepository{db: db}
}

var _ portsrepo.RecordRepositoryFacade = (*PgxRecordRepository)(nil)

const recordColumns = `record_id, business_id, occurred_at, amount, payee, category, transaction_type, notes, receipt_ref, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxRecordRepository) SaveRecord(ctx context.Context, record domain.Record) error {
	query := `
		INSERT INTO records (` + recordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.db.Exec(ctx, query,
		record.RecordID,
		record.BusinessID,
		record.OccurredAt,
		record.Amount,
		record.Payee,
		record.Category,
		record.TransactionType,
		record.Notes,
		record.ReceiptRef,
		record.CreatedAt,
		record.CreatedBy,
		record.LastUpdatedAt,
		record.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

func (r *PgxRecordRepository) UpdateRecord(ctx context.Context, record domain.Record) error {
	query := `
		UPDATE records SET
			occurred_at = $2,
			amount = $3,
			payee = $4,
			category = $5,
			transaction_type = $6,
			notes = $7,
			receipt_ref = $8,
			last_updated_at = $9,
			last_updated_by = $10
		WHERE record_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		record.RecordID,
		record.OccurredAt,
		record.Amount,
		record.Payee,
		record.Category,
		record.TransactionType,
		record.Notes,
		record.ReceiptRef,
		record.LastUpdatedAt,
		record.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update record %s: %w", record.RecordID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxRecordRepository) DeleteRecord(ctx context.Context, recordID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM records WHERE record_id = $1;`, recordID)
	if err != nil {
		return fmt.Errorf("failed to delete record %s: %w", recordID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxRecordRepository) FindRecordByID(ctx context.Context, recordID string) (*domain.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records WHERE record_id = $1;`

	rows, err := r.db.Query(ctx, query, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to query record %s: %w", recordID, err)
	}
	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.Record])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find record by ID %s: %w", recordID, err)
	}
	return &record, nil
}

// ListRecordsByBusiness pages through a business's records newest first.
// Keyset pagination over (occurred_at, created_at): the token pins the last
// row of the previous page, so concurrent inserts never shift the window.
func (r *PgxRecordRepository) ListRecordsByBusiness(ctx context.Context, businessID string, limit int, nextToken string) ([]domain.Record, string, error) {
	if limit <= 0 {
		limit = 50
	}

	args := []interface{}{businessID, limit + 1}
	query := `
		SELECT ` + recordColumns + `
		FROM records
		WHERE business_id = $1
	`
	if nextToken != "" {
		occurredAt, createdAt, err := pagination.DecodeToken(nextToken)
		if err != nil {
			return nil, "", apperrors.NewValidationFailedError("invalid pagination token")
		}
		query += ` AND (occurred_at, created_at) < ($3, $4)`
		args = append(args, occurredAt, createdAt)
	}
	query += ` ORDER BY occurred_at DESC, created_at DESC LIMIT $2;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query records for business %s: %w", businessID, err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Record])
	if err != nil {
		return nil, "", fmt.Errorf("failed to collect records for business %s: %w", businessID, err)
	}

	var next string
	if len(records) > limit {
		records = records[:limit]
		last := records[len(records)-1]
		next = pagination.EncodeToken(last.OccurredAt, last.CreatedAt)
	}
	return records, next, nil
}
