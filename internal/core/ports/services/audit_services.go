package services

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// AuditSvcFacade records and retrieves the field-level audit trail.
type AuditSvcFacade interface {
	// RecordChange appends one field change attributed to the acting user.
	// It never fails the surrounding mutation: persistence errors are logged
	// and swallowed, because losing history is recoverable but rolling back a
	// financial write for an audit failure is not acceptable.
	RecordChange(ctx context.Context, recordID, field, oldValue, newValue, actorUserID string)

	// FetchHistory returns the record's ChangeSets, newest first. Raw field
	// rows written by the same actor within one grouping window are merged
	// back into a single logical edit.
	FetchHistory(ctx context.Context, recordID string) ([]domain.ChangeSet, error)
}
