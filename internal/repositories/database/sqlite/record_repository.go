package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	"github.com/bizledger/bizledger_app/internal/utils/pagination"
)

// SQLiteRecordRepository implements the record repository over the local store.
type SQLiteRecordRepository struct {
	db *sql.DB
}

func newSQLiteRecordRepository(db *sql.DB) portsrepo.RecordRepositoryFacade {
	return &SQLiteRecordRepository{db: db}
}

var _ portsrepo.RecordRepositoryFacade = (*SQLiteRecordRepository)(nil)

const recordColumns = `record_id, business_id, occurred_at, amount, payee, category, transaction_type, notes, receipt_ref, created_at, created_by, last_updated_at, last_updated_by`

func scanRecord(row interface{ Scan(...any) error }) (*domain.Record, error) {
	var (
		r             domain.Record
		occurredAt    int64
		amount        string
		createdAt     int64
		lastUpdatedAt int64
	)
	err := row.Scan(
		&r.RecordID,
		&r.BusinessID,
		&occurredAt,
		&amount,
		&r.Payee,
		&r.Category,
		&r.TransactionType,
		&r.Notes,
		&r.ReceiptRef,
		&createdAt,
		&r.CreatedBy,
		&lastUpdatedAt,
		&r.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	r.OccurredAt = decodeTime(occurredAt)
	r.CreatedAt = decodeTime(createdAt)
	r.LastUpdatedAt = decodeTime(lastUpdatedAt)
	r.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("corrupt amount for record %s: %w", r.RecordID, err)
	}
	return &r, nil
}

func (s *SQLiteRecordRepository) SaveRecord(ctx context.Context, record domain.Record) error {
	query := `
		INSERT INTO records (` + recordColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		record.RecordID,
		record.BusinessID,
		encodeTime(record.OccurredAt),
		record.Amount.String(),
		record.Payee,
		record.Category,
		record.TransactionType,
		record.Notes,
		record.ReceiptRef,
		encodeTime(record.CreatedAt),
		record.CreatedBy,
		encodeTime(record.LastUpdatedAt),
		record.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

func (s *SQLiteRecordRepository) UpdateRecord(ctx context.Context, record domain.Record) error {
	query := `
		UPDATE records SET
			occurred_at = ?,
			amount = ?,
			payee = ?,
			category = ?,
			transaction_type = ?,
			notes = ?,
			receipt_ref = ?,
			last_updated_at = ?,
			last_updated_by = ?
		WHERE record_id = ?
	`
	res, err := s.db.ExecContext(ctx, query,
		encodeTime(record.OccurredAt),
		record.Amount.String(),
		record.Payee,
		record.Category,
		record.TransactionType,
		record.Notes,
		record.ReceiptRef,
		encodeTime(record.LastUpdatedAt),
		record.LastUpdatedBy,
		record.RecordID,
	)
	if err != nil {
		return fmt.Errorf("failed to update record %s: %w", record.RecordID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *SQLiteRecordRepository) DeleteRecord(ctx context.Context, recordID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE record_id = ?`, recordID)
	if err != nil {
		return fmt.Errorf("failed to delete record %s: %w", recordID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *SQLiteRecordRepository) FindRecordByID(ctx context.Context, recordID string) (*domain.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records WHERE record_id = ?`

	record, err := scanRecord(s.db.QueryRowContext(ctx, query, recordID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find record by ID %s: %w", recordID, err)
	}
	return record, nil
}

func (s *SQLiteRecordRepository) ListRecordsByBusiness(ctx context.Context, businessID string, limit int, nextToken string) ([]domain.Record, string, error) {
	if limit <= 0 {
		limit = 50
	}

	args := []any{businessID}
	query := `
		SELECT ` + recordColumns + `
		FROM records
		WHERE business_id = ?
	`
	if nextToken != "" {
		occurredAt, createdAt, err := pagination.DecodeToken(nextToken)
		if err != nil {
			return nil, "", apperrors.NewValidationFailedError("invalid pagination token")
		}
		query += ` AND (occurred_at < ? OR (occurred_at = ? AND created_at < ?))`
		occNS := encodeTime(occurredAt)
		args = append(args, occNS, occNS, encodeTime(createdAt))
	}
	query += ` ORDER BY occurred_at DESC, created_at DESC LIMIT ?`
	args = append(args, limit+1)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query records for business %s: %w", businessID, err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, "", fmt.Errorf("failed to scan record row: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("failed to iterate record rows: %w", err)
	}

	var next string
	if len(records) > limit {
		records = records[:limit]
		last := records[len(records)-1]
		next = pagination.EncodeToken(last.OccurredAt, last.CreatedAt)
	}
	return records, next, nil
}
