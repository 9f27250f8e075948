package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
)

// SQLiteAuditRepository stores the local append-only audit trail.
type SQLiteAuditRepository struct {
	db *sql.DB
}

func newSQLiteAuditRepository(db *sql.DB) portsrepo.AuditRepositoryFacade {
	return &SQLiteAuditRepository{db: db}
}

var _ portsrepo.AuditRepositoryFacade = (*SQLiteAuditRepository)(nil)

func (s *SQLiteAuditRepository) SaveFieldChange(ctx context.Context, change domain.FieldChange) error {
	query := `
		INSERT INTO record_changes (change_id, record_id, field, old_value, new_value, actor_id, changed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		change.ChangeID,
		change.RecordID,
		change.Field,
		change.OldValue,
		change.NewValue,
		change.ActorID,
		encodeTime(change.ChangedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save field change: %w", err)
	}
	return nil
}

func (s *SQLiteAuditRepository) ListFieldChangesByRecordID(ctx context.Context, recordID string) ([]domain.FieldChange, error) {
	query := `
		SELECT change_id, record_id, field, old_value, new_value, actor_id, changed_at
		FROM record_changes
		WHERE record_id = ?
		ORDER BY changed_at DESC, change_id DESC
	`
	rows, err := s.db.QueryContext(ctx, query, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to query field changes for record %s: %w", recordID, err)
	}
	defer rows.Close()

	var changes []domain.FieldChange
	for rows.Next() {
		var (
			c         domain.FieldChange
			changedAt int64
		)
		err := rows.Scan(&c.ChangeID, &c.RecordID, &c.Field, &c.OldValue, &c.NewValue, &c.ActorID, &changedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan field change row: %w", err)
		}
		c.ChangedAt = decodeTime(changedAt)
		changes = append(changes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate field change rows: %w", err)
	}
	return changes, nil
}
