package repositories

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// RecordReader defines read operations for financial records.
type RecordReader interface {
	// FindRecordByID retrieves a specific record by its ID.
	FindRecordByID(ctx context.Context, recordID string) (*domain.Record, error)

	// ListRecordsByBusiness retrieves records for a business, newest first,
	// returning at most limit records and a token for the next page
	// (empty when exhausted).
	ListRecordsByBusiness(ctx context.Context, businessID string, limit int, nextToken string) ([]domain.Record, string, error)
}

// RecordWriter defines write operations for financial records.
type RecordWriter interface {
	// SaveRecord persists a new record.
	SaveRecord(ctx context.Context, record domain.Record) error

	// UpdateRecord overwrites an existing record.
	UpdateRecord(ctx context.Context, record domain.Record) error

	// DeleteRecord removes a record permanently.
	DeleteRecord(ctx context.Context, recordID string) error
}

// RecordRepositoryFacade combines all record-related repository interfaces.
type RecordRepositoryFacade interface {
	RecordReader
	RecordWriter
}
