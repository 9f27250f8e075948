package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
)

// PgxAuditRepository is append-only: field-change rows are never updated or
// deleted, and the table carries no update path at the SQL level either.
type PgxAuditRepository struct {
	db *pgxpool.Pool
}

func newPgxAuditRepository(db *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{db: db}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

const fieldChangeColumns = `change_id, record_id, field, old_value, new_value, actor_id, changed_at`

func (r *PgxAuditRepository) SaveFieldChange(ctx context.Context, change domain.FieldChange) error {
	query := `
		INSERT INTO record_changes (` + fieldChangeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db.Exec(ctx, query,
		change.ChangeID,
		change.RecordID,
		change.Field,
		change.OldValue,
		change.NewValue,
		change.ActorID,
		change.ChangedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save field change: %w", err)
	}
	return nil
}

// ListFieldChangesByRecordID returns raw changes newest first. change_id
// breaks ties for rows logged within the same nanosecond.
func (r *PgxAuditRepository) ListFieldChangesByRecordID(ctx context.Context, recordID string) ([]domain.FieldChange, error) {
	query := `
		SELECT ` + fieldChangeColumns + `
		FROM record_changes
		WHERE record_id = $1
		ORDER BY changed_at DESC, change_id DESC;
	`
	rows, err := r.db.Query(ctx, query, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to query field changes for record %s: %w", recordID, err)
	}
	changes, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.FieldChange])
	if err != nil {
		return nil, fmt.Errorf("failed to collect field changes for record %s: %w", recordID, err)
	}
	return changes, nil
}
