package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/utils"
)

// recordService is the single choke point for record mutations: every write
// goes through the role gate, the active backend, and the audit trail, in
// that order. Handlers never touch the repositories directly.
type recordService struct {
	BaseService
	storeMode     portssvc.StoreModeSvcFacade
	accessControl portssvc.AccessControlSvcFacade
	auditSvc      portssvc.AuditSvcFacade
}

// NewRecordService creates a new record service.
func NewRecordService(
	storeMode portssvc.StoreModeSvcFacade,
	accessControl portssvc.AccessControlSvcFacade,
	auditSvc portssvc.AuditSvcFacade,
) portssvc.RecordSvcFacade {
	return &recordService{
		storeMode:     storeMode,
		accessControl: accessControl,
		auditSvc:      auditSvc,
	}
}

var _ portssvc.RecordSvcFacade = (*recordService)(nil)

// normalizeOptional maps an explicit empty string onto null so stored
// optional fields are either absent or non-empty, never "".
func normalizeOptional(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// requireWriteAccess enforces the mutation gate. Local mode is single-user
// and ungated; shared mode requires at least the editor role.
func (s *recordService) requireWriteAccess(ctx context.Context, actorUserID string) error {
	if s.storeMode.Mode() == domain.ModeLocal {
		return nil
	}
	if actorUserID == "" {
		return apperrors.ErrUnauthorized
	}
	role, ok, err := s.accessControl.GetRole(ctx, actorUserID)
	if err != nil {
		return err
	}
	if !ok || !role.Meets(domain.RoleEditor) {
		return apperrors.ErrForbidden
	}
	return nil
}

// GetRecordByID retrieves a record by ID from the active backend.
func (s *recordService) GetRecordByID(ctx context.Context, recordID string) (*domain.Record, error) {
	record, err := s.storeMode.ActiveRepos().RecordRepo.FindRecordByID(ctx, recordID)
	if err != nil {
		s.LogError(ctx, err, "Failed to get record by ID", slog.String("record_id", recordID))
		return nil, err
	}
	return record, nil
}

// ListRecords retrieves a page of records for a business, newest first.
func (s *recordService) ListRecords(ctx context.Context, businessID string, limit int, nextToken string) ([]domain.Record, string, error) {
	records, next, err := s.storeMode.ActiveRepos().RecordRepo.ListRecordsByBusiness(ctx, businessID, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list records", slog.String("business_id", businessID))
		return nil, "", err
	}
	return records, next, nil
}

// CreateRecord persists a new record stamped with the acting user and logs
// the creation in the audit trail.
func (s *recordService) CreateRecord(ctx context.Context, req dto.CreateRecordRequest, actorUserID string) (*domain.Record, error) {
	if err := s.requireWriteAccess(ctx, actorUserID); err != nil {
		return nil, err
	}
	if !req.TransactionType.IsValid() {
		return nil, apperrors.NewValidationFailedError("unknown transaction type " + string(req.TransactionType))
	}
	if !domain.IsValidCategory(req.Category) {
		return nil, apperrors.NewValidationFailedError("unknown category " + req.Category)
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationFailedError("amount must be positive")
	}

	now := time.Now()
	record := domain.Record{
		RecordID:        uuid.NewString(),
		BusinessID:      req.BusinessID,
		OccurredAt:      req.OccurredAt,
		Amount:          req.Amount,
		Payee:           req.Payee,
		Category:        req.Category,
		TransactionType: req.TransactionType,
		Notes:           normalizeOptional(req.Notes),
		ReceiptRef:      normalizeOptional(req.ReceiptRef),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}

	if err := s.storeMode.ActiveRepos().RecordRepo.SaveRecord(ctx, record); err != nil {
		s.LogError(ctx, err, "Failed to save record", slog.String("record_id", record.RecordID))
		return nil, err
	}

	s.auditSvc.RecordChange(ctx, record.RecordID, "record", "", "created", actorUserID)
	s.LogInfo(ctx, "Record created", slog.String("record_id", record.RecordID), slog.String("business_id", record.BusinessID))
	return &record, nil
}

// UpdateRecord diffs the stored pre-image against the requested post-image,
// persists it, and logs one audit entry per actually-changed field. The trail
// is written only after the storage write succeeded, so a failed persist
// leaves no phantom history.
func (s *recordService) UpdateRecord(ctx context.Context, recordID string, req dto.UpdateRecordRequest, actorUserID string) (*domain.Record, error) {
	if err := s.requireWriteAccess(ctx, actorUserID); err != nil {
		return nil, err
	}
	if req.Amount != nil && !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationFailedError("amount must be positive")
	}

	repos := s.storeMode.ActiveRepos()
	record, err := repos.RecordRepo.FindRecordByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	type fieldChange struct {
		field, oldValue, newValue string
	}
	var changes []fieldChange

	if req.OccurredAt != nil && !req.OccurredAt.Equal(record.OccurredAt) {
		changes = append(changes, fieldChange{"occurredAt", utils.FormatTimestamp(record.OccurredAt), utils.FormatTimestamp(*req.OccurredAt)})
		record.OccurredAt = *req.OccurredAt
	}
	if req.Amount != nil && !req.Amount.Equal(record.Amount) {
		changes = append(changes, fieldChange{"amount", utils.FormatAmount(record.Amount), utils.FormatAmount(*req.Amount)})
		record.Amount = *req.Amount
	}
	if req.Payee != nil && *req.Payee != record.Payee {
		changes = append(changes, fieldChange{"payee", record.Payee, *req.Payee})
		record.Payee = *req.Payee
	}
	if req.Category != nil && *req.Category != record.Category {
		if !domain.IsValidCategory(*req.Category) {
			return nil, apperrors.NewValidationFailedError("unknown category " + *req.Category)
		}
		changes = append(changes, fieldChange{"category", record.Category, *req.Category})
		record.Category = *req.Category
	}
	if req.TransactionType != nil && *req.TransactionType != record.TransactionType {
		if !req.TransactionType.IsValid() {
			return nil, apperrors.NewValidationFailedError("unknown transaction type " + string(*req.TransactionType))
		}
		changes = append(changes, fieldChange{"transactionType", string(record.TransactionType), string(*req.TransactionType)})
		record.TransactionType = *req.TransactionType
	}
	// An explicit empty string clears an optional field back to null; the
	// audit trail and responses render null and empty identically, so the two
	// never diverge observably.
	if req.Notes != nil && utils.FormatOptional(req.Notes) != utils.FormatOptional(record.Notes) {
		changes = append(changes, fieldChange{"notes", utils.FormatOptional(record.Notes), *req.Notes})
		record.Notes = normalizeOptional(req.Notes)
	}
	if req.ReceiptRef != nil && utils.FormatOptional(req.ReceiptRef) != utils.FormatOptional(record.ReceiptRef) {
		changes = append(changes, fieldChange{"receiptRef", utils.FormatOptional(record.ReceiptRef), *req.ReceiptRef})
		record.ReceiptRef = normalizeOptional(req.ReceiptRef)
	}

	// A post-image identical to the pre-image writes nothing and leaves the
	// audit trail untouched.
	if len(changes) == 0 {
		return record, nil
	}

	record.LastUpdatedAt = time.Now()
	record.LastUpdatedBy = actorUserID

	if err := repos.RecordRepo.UpdateRecord(ctx, *record); err != nil {
		s.LogError(ctx, err, "Failed to update record", slog.String("record_id", recordID))
		return nil, err
	}

	for _, c := range changes {
		s.auditSvc.RecordChange(ctx, recordID, c.field, c.oldValue, c.newValue, actorUserID)
	}
	s.LogInfo(ctx, "Record updated", slog.String("record_id", recordID), slog.Int("changed_fields", len(changes)))
	return record, nil
}

// DeleteRecord removes a record from the active backend and logs the deletion.
func (s *recordService) DeleteRecord(ctx context.Context, recordID string, actorUserID string) error {
	if err := s.requireWriteAccess(ctx, actorUserID); err != nil {
		return err
	}

	repos := s.storeMode.ActiveRepos()
	if _, err := repos.RecordRepo.FindRecordByID(ctx, recordID); err != nil {
		return err
	}
	if err := repos.RecordRepo.DeleteRecord(ctx, recordID); err != nil {
		s.LogError(ctx, err, "Failed to delete record", slog.String("record_id", recordID))
		return err
	}

	s.auditSvc.RecordChange(ctx, recordID, "record", "", "deleted", actorUserID)
	s.LogInfo(ctx, "Record deleted", slog.String("record_id", recordID))
	return nil
}
