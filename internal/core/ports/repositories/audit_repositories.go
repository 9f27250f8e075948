package repositories

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// AuditRepositoryFacade stores the append-only field-change rows backing the
// audit trail. There is deliberately no update or delete operation.
type AuditRepositoryFacade interface {
	// SaveFieldChange appends one raw field change row.
	SaveFieldChange(ctx context.Context, change domain.FieldChange) error

	// ListFieldChangesByRecordID retrieves all raw changes for a record,
	// newest first.
	ListFieldChangesByRecordID(ctx context.Context, recordID string) ([]domain.FieldChange, error)
}
