package dto

import (
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// --- Audit DTOs ---

// FieldChangeResponse is one field diff inside a ChangeSet.
type FieldChangeResponse struct {
	Field    string `json:"field"`
	OldValue string `json:"oldValue"`
	NewValue string `json:"newValue"`
}

// ChangeSetResponse is one logical multi-field edit.
type ChangeSetResponse struct {
	ChangeSetID string                `json:"changeSetID"`
	ActorID     string                `json:"actorID"`
	Timestamp   time.Time             `json:"timestamp"`
	Changes     []FieldChangeResponse `json:"changes"`
}

// ToChangeSetResponse converts domain.ChangeSet to DTO.
func ToChangeSetResponse(cs *domain.ChangeSet) ChangeSetResponse {
	changes := make([]FieldChangeResponse, len(cs.Changes))
	for i, c := range cs.Changes {
		changes[i] = FieldChangeResponse{
			Field:    c.Field,
			OldValue: c.OldValue,
			NewValue: c.NewValue,
		}
	}
	return ChangeSetResponse{
		ChangeSetID: cs.ChangeSetID,
		ActorID:     cs.ActorID,
		Timestamp:   cs.Timestamp,
		Changes:     changes,
	}
}

// RecordHistoryResponse wraps a record's audit history, newest first.
type RecordHistoryResponse struct {
	RecordID   string              `json:"recordID"`
	ChangeSets []ChangeSetResponse `json:"changeSets"`
}

// ToRecordHistoryResponse converts a slice of domain.ChangeSet to DTO.
func ToRecordHistoryResponse(recordID string, css []domain.ChangeSet) RecordHistoryResponse {
	list := make([]ChangeSetResponse, len(css))
	for i, cs := range css {
		list[i] = ToChangeSetResponse(&cs)
	}
	return RecordHistoryResponse{RecordID: recordID, ChangeSets: list}
}
