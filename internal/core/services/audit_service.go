package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/google/uuid"
)

// auditService implements the AuditSvcFacade interface.
//
// The repository is resolved through a function so the same implementation can
// serve the active (mode-switched) backend or a pinned one: record mutations
// audit into whichever backend owns the record, while account-level entries
// always land in the shared store.
type auditService struct {
	BaseService
	repoFn      func() portsrepo.AuditRepositoryFacade
	groupWindow time.Duration
}

// NewAuditService creates a new audit service. groupWindow is the ChangeSet
// reconciliation window; changes by one actor within one window merge into a
// single ChangeSet. Values <= 0 fall back to one second.
func NewAuditService(repoFn func() portsrepo.AuditRepositoryFacade, groupWindow time.Duration) portssvc.AuditSvcFacade {
	if groupWindow <= 0 {
		groupWindow = time.Second
	}
	return &auditService{
		repoFn:      repoFn,
		groupWindow: groupWindow,
	}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// RecordChange appends one raw field change row. Failures are logged and
// swallowed: the business mutation that triggered the change must not be
// rolled back for an audit-trail failure.
func (s *auditService) RecordChange(ctx context.Context, recordID, field, oldValue, newValue, actorUserID string) {
	change := domain.FieldChange{
		ChangeID:  uuid.NewString(),
		RecordID:  recordID,
		Field:     field,
		OldValue:  oldValue,
		NewValue:  newValue,
		ActorID:   actorUserID,
		ChangedAt: time.Now(),
	}

	if err := s.repoFn().SaveFieldChange(ctx, change); err != nil {
		s.LogError(ctx, err, "Failed to persist audit field change",
			slog.String("record_id", recordID),
			slog.String("field", field),
			slog.String("actor_id", actorUserID))
	}
}

// FetchHistory returns the record's ChangeSets, newest first.
//
// Raw rows arrive sorted by changed_at descending and are walked once: a row
// belongs to the same ChangeSet as its predecessor iff both were recorded in
// the same grouping window by the same actor; any difference starts a new
// ChangeSet. Within a group the original call order is restored. The window
// is a reconciliation heuristic, not a guaranteed law.
func (s *auditService) FetchHistory(ctx context.Context, recordID string) ([]domain.ChangeSet, error) {
	rows, err := s.repoFn().ListFieldChangesByRecordID(ctx, recordID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list field changes",
			slog.String("record_id", recordID))
		return nil, err
	}

	changeSets := make([]domain.ChangeSet, 0, len(rows))
	var current *domain.ChangeSet

	for _, row := range rows {
		key := row.ChangedAt.Truncate(s.groupWindow)
		if current == nil || current.ActorID != row.ActorID || !current.Timestamp.Equal(key) {
			changeSets = append(changeSets, domain.ChangeSet{
				ChangeSetID: row.ChangeID,
				RecordID:    row.RecordID,
				ActorID:     row.ActorID,
				Timestamp:   key,
			})
			current = &changeSets[len(changeSets)-1]
		}
		// Rows are newest-first; prepend to restore call order inside the group.
		current.Changes = append([]domain.FieldChange{row}, current.Changes...)
	}

	return changeSets, nil
}
