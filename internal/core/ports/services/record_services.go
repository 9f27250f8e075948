package services

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/dto"
)

// RecordReaderSvc defines read operations for records against the active backend.
type RecordReaderSvc interface {
	// GetRecordByID retrieves a record by ID from the active backend.
	GetRecordByID(ctx context.Context, recordID string) (*domain.Record, error)

	// ListRecords retrieves a page of records for a business, newest first.
	ListRecords(ctx context.Context, businessID string, limit int, nextToken string) ([]domain.Record, string, error)
}

// RecordWriterSvc is the single choke point for record mutations. In shared
// mode every write requires the acting user to hold at least the editor role;
// in local mode writes are unconditional.
type RecordWriterSvc interface {
	// CreateRecord persists a new record stamped with the acting user.
	CreateRecord(ctx context.Context, req dto.CreateRecordRequest, actorUserID string) (*domain.Record, error)

	// UpdateRecord diffs the stored pre-image against the requested changes,
	// persists the result, and logs one audit entry per actually-changed field.
	UpdateRecord(ctx context.Context, recordID string, req dto.UpdateRecordRequest, actorUserID string) (*domain.Record, error)

	// DeleteRecord removes a record from the active backend.
	DeleteRecord(ctx context.Context, recordID string, actorUserID string) error
}

// RecordSvcFacade combines all record-related service interfaces.
type RecordSvcFacade interface {
	RecordReaderSvc
	RecordWriterSvc
}
