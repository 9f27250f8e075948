package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAuditRepository is a mock type for the AuditRepositoryFacade interface
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) SaveFieldChange(ctx context.Context, change domain.FieldChange) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}

func (m *MockAuditRepository) ListFieldChangesByRecordID(ctx context.Context, recordID string) ([]domain.FieldChange, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FieldChange), args.Error(1)
}

// --- Test Suite Setup ---

type AuditServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAuditRepository
	service  portssvc.AuditSvcFacade
}

const testGroupWindow = 2 * time.Second

func (suite *AuditServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAuditRepository)
	repo := suite.mockRepo
	suite.service = services.NewAuditService(func() portsrepo.AuditRepositoryFacade { return repo }, testGroupWindow)
}

// --- Test Cases ---

func (suite *AuditServiceTestSuite) TestRecordChange_PersistsStampedRow() {
	ctx := context.Background()
	recordID := uuid.NewString()
	actorID := uuid.NewString()

	suite.mockRepo.On("SaveFieldChange", ctx, mock.MatchedBy(func(c domain.FieldChange) bool {
		return c.RecordID == recordID &&
			c.Field == "amount" &&
			c.OldValue == "10.00" &&
			c.NewValue == "12.50" &&
			c.ActorID == actorID &&
			c.ChangeID != "" &&
			time.Since(c.ChangedAt) < time.Second
	})).Return(nil).Once()

	suite.service.RecordChange(ctx, recordID, "amount", "10.00", "12.50", actorID)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AuditServiceTestSuite) TestRecordChange_SwallowsRepoError() {
	ctx := context.Background()

	// A storage failure must not panic or propagate; the caller's mutation
	// already committed.
	suite.mockRepo.On("SaveFieldChange", ctx, mock.AnythingOfType("domain.FieldChange")).Return(assert.AnError).Once()

	suite.service.RecordChange(ctx, uuid.NewString(), "payee", "a", "b", uuid.NewString())

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AuditServiceTestSuite) TestFetchHistory_GroupsSameActorWithinWindow() {
	ctx := context.Background()
	recordID := uuid.NewString()
	actorID := uuid.NewString()

	// One logical edit of two fields lands as two rows microseconds apart.
	// Align inside a single truncation bucket so the rows cannot straddle it.
	base := time.Now().Truncate(testGroupWindow).Add(100 * time.Millisecond)
	rows := []domain.FieldChange{
		{ChangeID: "c2", RecordID: recordID, Field: "payee", OldValue: "Acme", NewValue: "Apex", ActorID: actorID, ChangedAt: base.Add(5 * time.Millisecond)},
		{ChangeID: "c1", RecordID: recordID, Field: "amount", OldValue: "10.00", NewValue: "12.50", ActorID: actorID, ChangedAt: base},
	}
	suite.mockRepo.On("ListFieldChangesByRecordID", ctx, recordID).Return(rows, nil).Once()

	sets, err := suite.service.FetchHistory(ctx, recordID)

	suite.Require().NoError(err)
	suite.Require().Len(sets, 1)
	suite.Equal(actorID, sets[0].ActorID)
	suite.Require().Len(sets[0].Changes, 2)
	// Call order inside the group is restored (oldest first).
	suite.Equal("amount", sets[0].Changes[0].Field)
	suite.Equal("payee", sets[0].Changes[1].Field)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AuditServiceTestSuite) TestFetchHistory_SplitsOnActor() {
	ctx := context.Background()
	recordID := uuid.NewString()
	base := time.Now().Truncate(testGroupWindow).Add(100 * time.Millisecond)

	rows := []domain.FieldChange{
		{ChangeID: "c2", RecordID: recordID, Field: "payee", ActorID: "user-b", ChangedAt: base.Add(time.Millisecond)},
		{ChangeID: "c1", RecordID: recordID, Field: "amount", ActorID: "user-a", ChangedAt: base},
	}
	suite.mockRepo.On("ListFieldChangesByRecordID", ctx, recordID).Return(rows, nil).Once()

	sets, err := suite.service.FetchHistory(ctx, recordID)

	suite.Require().NoError(err)
	suite.Require().Len(sets, 2)
	suite.Equal("user-b", sets[0].ActorID)
	suite.Equal("user-a", sets[1].ActorID)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AuditServiceTestSuite) TestFetchHistory_SplitsOnWindowBoundary() {
	ctx := context.Background()
	recordID := uuid.NewString()
	actorID := uuid.NewString()
	bucket := time.Now().Truncate(testGroupWindow)

	// Same actor, but the rows fall into different truncation buckets.
	rows := []domain.FieldChange{
		{ChangeID: "c2", RecordID: recordID, Field: "payee", ActorID: actorID, ChangedAt: bucket.Add(testGroupWindow + 10*time.Millisecond)},
		{ChangeID: "c1", RecordID: recordID, Field: "amount", ActorID: actorID, ChangedAt: bucket.Add(10 * time.Millisecond)},
	}
	suite.mockRepo.On("ListFieldChangesByRecordID", ctx, recordID).Return(rows, nil).Once()

	sets, err := suite.service.FetchHistory(ctx, recordID)

	suite.Require().NoError(err)
	suite.Require().Len(sets, 2)
	suite.Len(sets[0].Changes, 1)
	suite.Len(sets[1].Changes, 1)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AuditServiceTestSuite) TestFetchHistory_Empty() {
	ctx := context.Background()
	recordID := uuid.NewString()

	suite.mockRepo.On("ListFieldChangesByRecordID", ctx, recordID).Return([]domain.FieldChange{}, nil).Once()

	sets, err := suite.service.FetchHistory(ctx, recordID)

	suite.Require().NoError(err)
	suite.NotNil(sets)
	suite.Empty(sets)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AuditServiceTestSuite) TestFetchHistory_RepoError() {
	ctx := context.Background()
	recordID := uuid.NewString()

	suite.mockRepo.On("ListFieldChangesByRecordID", ctx, recordID).Return(nil, assert.AnError).Once()

	sets, err := suite.service.FetchHistory(ctx, recordID)

	suite.Require().Error(err)
	suite.Nil(sets)
	suite.ErrorIs(err, assert.AnError)

	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestAuditService(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}
