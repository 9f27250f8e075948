package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/core/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockRecordRepository is a mock type for the RecordRepositoryFacade interface
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) FindRecordByID(ctx context.Context, recordID string) (*domain.Record, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Record), args.Error(1)
}

func (m *MockRecordRepository) ListRecordsByBusiness(ctx context.Context, businessID string, limit int, nextToken string) ([]domain.Record, string, error) {
	args := m.Called(ctx, businessID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.Record), args.String(1), args.Error(2)
}

func (m *MockRecordRepository) SaveRecord(ctx context.Context, record domain.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRecordRepository) UpdateRecord(ctx context.Context, record domain.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRecordRepository) DeleteRecord(ctx context.Context, recordID string) error {
	args := m.Called(ctx, recordID)
	return args.Error(0)
}

// MockStoreModeService is a mock type for the StoreModeSvcFacade interface
type MockStoreModeService struct {
	mock.Mock
}

func (m *MockStoreModeService) Mode() domain.StoreMode {
	args := m.Called()
	return args.Get(0).(domain.StoreMode)
}

func (m *MockStoreModeService) ModeState() domain.ModeState {
	args := m.Called()
	return args.Get(0).(domain.ModeState)
}

func (m *MockStoreModeService) State(actorUserID string) domain.SyncState {
	args := m.Called(actorUserID)
	return args.Get(0).(domain.SyncState)
}

func (m *MockStoreModeService) SwitchMode(ctx context.Context, target domain.StoreMode, actorUserID string) error {
	args := m.Called(ctx, target, actorUserID)
	return args.Error(0)
}

func (m *MockStoreModeService) ActiveRepos() portsrepo.BackendRepositories {
	args := m.Called()
	return args.Get(0).(portsrepo.BackendRepositories)
}

// MockAccessControlService is a mock type for the AccessControlSvcFacade interface
type MockAccessControlService struct {
	mock.Mock
}

func (m *MockAccessControlService) CreateInvitation(ctx context.Context, req dto.CreateInvitationRequest, issuerUserID string) (*domain.Invitation, error) {
	args := m.Called(ctx, req, issuerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invitation), args.Error(1)
}

func (m *MockAccessControlService) ValidateAndAccept(ctx context.Context, code string, actorUserID string) (domain.Role, error) {
	args := m.Called(ctx, code, actorUserID)
	return args.Get(0).(domain.Role), args.Error(1)
}

func (m *MockAccessControlService) GetRole(ctx context.Context, userID string) (domain.Role, bool, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Role), args.Bool(1), args.Error(2)
}

func (m *MockAccessControlService) Revoke(ctx context.Context, invitationID string, actorUserID string) error {
	args := m.Called(ctx, invitationID, actorUserID)
	return args.Error(0)
}

func (m *MockAccessControlService) ListInvitations(ctx context.Context, actorUserID string) ([]domain.Invitation, error) {
	args := m.Called(ctx, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invitation), args.Error(1)
}

func (m *MockAccessControlService) BootstrapAdmin(ctx context.Context, secret string, actorUserID string) error {
	args := m.Called(ctx, secret, actorUserID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type RecordServiceTestSuite struct {
	suite.Suite
	mockRepo      *MockRecordRepository
	mockStoreMode *MockStoreModeService
	mockAccess    *MockAccessControlService
	mockAudit     *MockAuditService
	service       portssvc.RecordSvcFacade
}

func (suite *RecordServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockRecordRepository)
	suite.mockStoreMode = new(MockStoreModeService)
	suite.mockAccess = new(MockAccessControlService)
	suite.mockAudit = new(MockAuditService)
	suite.mockStoreMode.On("ActiveRepos").Return(portsrepo.BackendRepositories{RecordRepo: suite.mockRepo})
	suite.service = services.NewRecordService(suite.mockStoreMode, suite.mockAccess, suite.mockAudit)
}

func (suite *RecordServiceTestSuite) useMode(mode domain.StoreMode) {
	suite.mockStoreMode.On("Mode").Return(mode)
}

func validCreateRequest(businessID string) dto.CreateRecordRequest {
	return dto.CreateRecordRequest{
		BusinessID:      businessID,
		OccurredAt:      time.Now().Add(-time.Hour),
		Amount:          decimal.RequireFromString("42.50"),
		Payee:           "Office Depot",
		Category:        "Supplies",
		TransactionType: domain.TransactionExpense,
	}
}

// --- CreateRecord ---

func (suite *RecordServiceTestSuite) TestCreateRecord_LocalModeUngated() {
	ctx := context.Background()
	suite.useMode(domain.ModeLocal)
	req := validCreateRequest(uuid.NewString())

	suite.mockRepo.On("SaveRecord", ctx, mock.MatchedBy(func(r domain.Record) bool {
		return r.RecordID != "" &&
			r.BusinessID == req.BusinessID &&
			r.Payee == req.Payee &&
			r.Amount.Equal(req.Amount) &&
			r.CreatedBy == "" && r.LastUpdatedBy == ""
	})).Return(nil).Once()
	suite.mockAudit.On("RecordChange", ctx, mock.AnythingOfType("string"), "record", "", "created", "").Once()

	// Local mode has no authentication; an empty actor is acceptable.
	record, err := suite.service.CreateRecord(ctx, req, "")

	suite.Require().NoError(err)
	suite.Require().NotNil(record)
	suite.mockAccess.AssertNotCalled(suite.T(), "GetRole", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *RecordServiceTestSuite) TestCreateRecord_SharedModeViewerForbidden() {
	ctx := context.Background()
	actorID := uuid.NewString()
	suite.useMode(domain.ModeShared)
	suite.mockAccess.On("GetRole", ctx, actorID).Return(domain.RoleViewer, true, nil).Once()

	record, err := suite.service.CreateRecord(ctx, validCreateRequest(uuid.NewString()), actorID)

	suite.Require().Error(err)
	suite.Nil(record)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveRecord", mock.Anything, mock.Anything)
}

func (suite *RecordServiceTestSuite) TestCreateRecord_SharedModeNoActor() {
	ctx := context.Background()
	suite.useMode(domain.ModeShared)

	record, err := suite.service.CreateRecord(ctx, validCreateRequest(uuid.NewString()), "")

	suite.Require().Error(err)
	suite.Nil(record)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *RecordServiceTestSuite) TestCreateRecord_SharedModeEditorAllowed() {
	ctx := context.Background()
	actorID := uuid.NewString()
	suite.useMode(domain.ModeShared)
	suite.mockAccess.On("GetRole", ctx, actorID).Return(domain.RoleEditor, true, nil).Once()
	suite.mockRepo.On("SaveRecord", ctx, mock.MatchedBy(func(r domain.Record) bool {
		return r.CreatedBy == actorID && r.LastUpdatedBy == actorID
	})).Return(nil).Once()
	suite.mockAudit.On("RecordChange", ctx, mock.AnythingOfType("string"), "record", "", "created", actorID).Once()

	record, err := suite.service.CreateRecord(ctx, validCreateRequest(uuid.NewString()), actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(record)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RecordServiceTestSuite) TestCreateRecord_UnknownCategory() {
	ctx := context.Background()
	suite.useMode(domain.ModeLocal)
	req := validCreateRequest(uuid.NewString())
	req.Category = "Bribes"

	record, err := suite.service.CreateRecord(ctx, req, "")

	suite.Require().Error(err)
	suite.Nil(record)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveRecord", mock.Anything, mock.Anything)
}

func (suite *RecordServiceTestSuite) TestCreateRecord_NonPositiveAmount() {
	ctx := context.Background()
	suite.useMode(domain.ModeLocal)
	req := validCreateRequest(uuid.NewString())
	req.Amount = decimal.Zero

	record, err := suite.service.CreateRecord(ctx, req, "")

	suite.Require().Error(err)
	suite.Nil(record)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- UpdateRecord ---

func storedRecord(recordID string) *domain.Record {
	return &domain.Record{
		RecordID:        recordID,
		BusinessID:      uuid.NewString(),
		OccurredAt:      time.Now().Add(-24 * time.Hour),
		Amount:          decimal.RequireFromString("100.00"),
		Payee:           "Acme Corp",
		Category:        "Supplies",
		TransactionType: domain.TransactionExpense,
		AuditFields: domain.AuditFields{
			CreatedAt:     time.Now().Add(-24 * time.Hour),
			CreatedBy:     "creator",
			LastUpdatedAt: time.Now().Add(-24 * time.Hour),
			LastUpdatedBy: "creator",
		},
	}
}

func (suite *RecordServiceTestSuite) TestUpdateRecord_SingleFieldChange() {
	ctx := context.Background()
	recordID := uuid.NewString()
	actorID := uuid.NewString()
	suite.useMode(domain.ModeLocal)
	original := storedRecord(recordID)

	newPayee := "Apex Corp"
	req := dto.UpdateRecordRequest{Payee: &newPayee}

	suite.mockRepo.On("FindRecordByID", ctx, recordID).Return(original, nil).Once()
	suite.mockRepo.On("UpdateRecord", ctx, mock.MatchedBy(func(r domain.Record) bool {
		return r.RecordID == recordID && r.Payee == newPayee && r.LastUpdatedBy == actorID
	})).Return(nil).Once()
	suite.mockAudit.On("RecordChange", ctx, recordID, "payee", "Acme Corp", "Apex Corp", actorID).Once()

	updated, err := suite.service.UpdateRecord(ctx, recordID, req, actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.Equal(newPayee, updated.Payee)

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *RecordServiceTestSuite) TestUpdateRecord_EmptyStringClearsOptionalField() {
	ctx := context.Background()
	recordID := uuid.NewString()
	actorID := uuid.NewString()
	suite.useMode(domain.ModeLocal)
	original := storedRecord(recordID)
	notes := "paid in cash"
	original.Notes = &notes

	empty := ""
	req := dto.UpdateRecordRequest{Notes: &empty}

	suite.mockRepo.On("FindRecordByID", ctx, recordID).Return(original, nil).Once()
	suite.mockRepo.On("UpdateRecord", ctx, mock.MatchedBy(func(r domain.Record) bool {
		return r.RecordID == recordID && r.Notes == nil
	})).Return(nil).Once()
	suite.mockAudit.On("RecordChange", ctx, recordID, "notes", "paid in cash", "", actorID).Once()

	updated, err := suite.service.UpdateRecord(ctx, recordID, req, actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.Nil(updated.Notes)

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *RecordServiceTestSuite) TestUpdateRecord_NoOpWritesNothing() {
	ctx := context.Background()
	recordID := uuid.NewString()
	suite.useMode(domain.ModeLocal)
	original := storedRecord(recordID)

	// The requested post-image equals the pre-image.
	samePayee := original.Payee
	sameAmount := original.Amount
	req := dto.UpdateRecordRequest{Payee: &samePayee, Amount: &sameAmount}

	suite.mockRepo.On("FindRecordByID", ctx, recordID).Return(original, nil).Once()

	updated, err := suite.service.UpdateRecord(ctx, recordID, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateRecord", mock.Anything, mock.Anything)
	suite.mockAudit.AssertNotCalled(suite.T(), "RecordChange", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RecordServiceTestSuite) TestUpdateRecord_MultipleFieldsAuditPerField() {
	ctx := context.Background()
	recordID := uuid.NewString()
	actorID := uuid.NewString()
	suite.useMode(domain.ModeLocal)
	original := storedRecord(recordID)

	newAmount := decimal.RequireFromString("125.00")
	newCategory := "Travel"
	req := dto.UpdateRecordRequest{Amount: &newAmount, Category: &newCategory}

	suite.mockRepo.On("FindRecordByID", ctx, recordID).Return(original, nil).Once()
	suite.mockRepo.On("UpdateRecord", ctx, mock.AnythingOfType("domain.Record")).Return(nil).Once()
	suite.mockAudit.On("RecordChange", ctx, recordID, "amount", "100.00", "125.00", actorID).Once()
	suite.mockAudit.On("RecordChange", ctx, recordID, "category", "Supplies", "Travel", actorID).Once()

	_, err := suite.service.UpdateRecord(ctx, recordID, req, actorID)

	suite.Require().NoError(err)
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *RecordServiceTestSuite) TestUpdateRecord_PersistFailureWritesNoAudit() {
	ctx := context.Background()
	recordID := uuid.NewString()
	suite.useMode(domain.ModeLocal)
	original := storedRecord(recordID)

	newPayee := "Apex Corp"
	req := dto.UpdateRecordRequest{Payee: &newPayee}

	suite.mockRepo.On("FindRecordByID", ctx, recordID).Return(original, nil).Once()
	suite.mockRepo.On("UpdateRecord", ctx, mock.AnythingOfType("domain.Record")).Return(assert.AnError).Once()

	_, err := suite.service.UpdateRecord(ctx, recordID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.mockAudit.AssertNotCalled(suite.T(), "RecordChange", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RecordServiceTestSuite) TestUpdateRecord_NotFound() {
	ctx := context.Background()
	recordID := uuid.NewString()
	suite.useMode(domain.ModeLocal)

	newPayee := "Anyone"
	req := dto.UpdateRecordRequest{Payee: &newPayee}

	suite.mockRepo.On("FindRecordByID", ctx, recordID).Return(nil, apperrors.ErrNotFound).Once()

	updated, err := suite.service.UpdateRecord(ctx, recordID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *RecordServiceTestSuite) TestUpdateRecord_NonPositiveAmountRejectedBeforeRead() {
	ctx := context.Background()
	suite.useMode(domain.ModeLocal)

	zero := decimal.Zero
	req := dto.UpdateRecordRequest{Amount: &zero}

	updated, err := suite.service.UpdateRecord(ctx, uuid.NewString(), req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindRecordByID", mock.Anything, mock.Anything)
}

// --- DeleteRecord ---

func (suite *RecordServiceTestSuite) TestDeleteRecord_AuditsDeletion() {
	ctx := context.Background()
	recordID := uuid.NewString()
	actorID := uuid.NewString()
	suite.useMode(domain.ModeLocal)

	suite.mockRepo.On("FindRecordByID", ctx, recordID).Return(storedRecord(recordID), nil).Once()
	suite.mockRepo.On("DeleteRecord", ctx, recordID).Return(nil).Once()
	suite.mockAudit.On("RecordChange", ctx, recordID, "record", "", "deleted", actorID).Once()

	err := suite.service.DeleteRecord(ctx, recordID, actorID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

// --- ListRecords ---

func (suite *RecordServiceTestSuite) TestListRecords_PassesTokenThrough() {
	ctx := context.Background()
	businessID := uuid.NewString()
	page := []domain.Record{*storedRecord(uuid.NewString())}

	suite.mockRepo.On("ListRecordsByBusiness", ctx, businessID, 50, "tok-in").Return(page, "tok-out", nil).Once()

	records, next, err := suite.service.ListRecords(ctx, businessID, 50, "tok-in")

	suite.Require().NoError(err)
	suite.Equal(page, records)
	suite.Equal("tok-out", next)
}

// --- Run Test Suite ---

func TestRecordService(t *testing.T) {
	suite.Run(t, new(RecordServiceTestSuite))
}
