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
	"github.com/bizledger/bizledger_app/internal/platform/events"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockSettingsRepository is a mock type for the SettingsRepositoryFacade interface
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) LoadSharedModePreference(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockSettingsRepository) SaveSharedModePreference(ctx context.Context, shared bool) error {
	args := m.Called(ctx, shared)
	return args.Error(0)
}

// --- Test Suite Setup ---

type StoreModeServiceTestSuite struct {
	suite.Suite
	mockSettings *MockSettingsRepository
	bus          *events.Bus
	localRepos   portsrepo.BackendRepositories
	sharedRepos  portsrepo.BackendRepositories
	published    []events.Event
}

func (suite *StoreModeServiceTestSuite) SetupTest() {
	suite.mockSettings = new(MockSettingsRepository)
	suite.bus = events.NewBus()
	suite.published = nil
	suite.bus.Subscribe(func(evt events.Event) {
		suite.published = append(suite.published, evt)
	})
	// Distinct repo pointers so the two backends are distinguishable.
	suite.localRepos = portsrepo.BackendRepositories{RecordRepo: new(MockRecordRepository)}
	suite.sharedRepos = portsrepo.BackendRepositories{RecordRepo: new(MockRecordRepository)}
}

func (suite *StoreModeServiceTestSuite) newService(sharedOK bool) portssvc.StoreModeSvcFacade {
	svc, err := services.NewStoreModeService(
		context.Background(), suite.localRepos, suite.sharedRepos, sharedOK, suite.mockSettings, suite.bus, nil)
	suite.Require().NoError(err)
	return svc
}

// --- Startup ---

func (suite *StoreModeServiceTestSuite) TestStartsLocalByDefault() {
	suite.mockSettings.On("LoadSharedModePreference", mock.Anything).Return(false, nil).Once()

	svc := suite.newService(true)

	suite.Equal(domain.ModeLocal, svc.Mode())
	suite.Equal(suite.localRepos, svc.ActiveRepos())
}

func (suite *StoreModeServiceTestSuite) TestHonorsPersistedSharedPreference() {
	suite.mockSettings.On("LoadSharedModePreference", mock.Anything).Return(true, nil).Once()

	svc := suite.newService(true)

	suite.Equal(domain.ModeShared, svc.Mode())
	suite.Equal(suite.sharedRepos, svc.ActiveRepos())
}

func (suite *StoreModeServiceTestSuite) TestSharedPreferenceIgnoredWithoutBackend() {
	suite.mockSettings.On("LoadSharedModePreference", mock.Anything).Return(true, nil).Once()

	svc := suite.newService(false)

	suite.Equal(domain.ModeLocal, svc.Mode())
}

func (suite *StoreModeServiceTestSuite) TestConstructorPropagatesSettingsError() {
	suite.mockSettings.On("LoadSharedModePreference", mock.Anything).Return(false, assert.AnError).Once()

	svc, err := services.NewStoreModeService(
		context.Background(), suite.localRepos, suite.sharedRepos, true, suite.mockSettings, suite.bus, nil)

	suite.Require().Error(err)
	suite.Nil(svc)
}

// --- SwitchMode ---

func (suite *StoreModeServiceTestSuite) TestSwitchToShared_Success() {
	ctx := context.Background()
	actorID := uuid.NewString()
	suite.mockSettings.On("LoadSharedModePreference", mock.Anything).Return(false, nil).Once()
	suite.mockSettings.On("SaveSharedModePreference", ctx, true).Return(nil).Once()

	svc := suite.newService(true)
	err := svc.SwitchMode(ctx, domain.ModeShared, actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.ModeShared, svc.Mode())
	suite.Equal(suite.sharedRepos, svc.ActiveRepos())
	suite.False(svc.ModeState().LastSwitchAt.IsZero())

	suite.Require().Len(suite.published, 1)
	evt, ok := suite.published[0].(events.ModeChanged)
	suite.Require().True(ok)
	suite.Equal(domain.ModeLocal, evt.From)
	suite.Equal(domain.ModeShared, evt.To)

	suite.mockSettings.AssertExpectations(suite.T())
}

func (suite *StoreModeServiceTestSuite) TestSwitchToShared_RequiresActor() {
	ctx := context.Background()
	suite.mockSettings.On("LoadSharedModePreference", mock.Anything).Return(false, nil).Once()

	svc := suite.newService(true)
	err := svc.SwitchMode(ctx, domain.ModeShared, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Equal(domain.ModeLocal, svc.Mode())
	suite.mockSettings.AssertNotCalled(suite.T(), "SaveSharedModePreference", mock.Anything, mock.Anything)
}

func (suite *StoreModeServiceTestSuite) TestSwitchToShared_BackendNotConfigured() {
	ctx := context.Background()
	suite.mockSettings.On("LoadSharedModePreference", mock.Anything).Return(false, nil).Once()

	svc := suite.newService(false)
	err := svc.SwitchMode(ctx, domain.ModeShared, uuid.NewString())

	suite.Require().Error(err)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(503, appErr.Code)
	suite.Equal(domain.ModeLocal, svc.Mode())
}

func (suite *StoreModeServiceTestSuite) TestSwitchMode_UnknownTarget() {
	ctx := context.Background()
	suite.mockSettings.On("LoadSharedModePreference", mock.Anything).Return(false, nil).Once()

	svc := suite.newService(true)
	err := svc.SwitchMode(ctx, domain.StoreMode("HYBRID"), uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *StoreModeServiceTestSuite) TestSwitchMode_PersistFailureLeavesModeUnchanged() {
	ctx := context.Background()
	suite.mockSettings.On("LoadSharedModePreference", mock.Anything).Return(false, nil).Once()
	suite.mockSettings.On("SaveSharedModePreference", ctx, true).Return(assert.AnError).Once()

	svc := suite.newService(true)
	err := svc.SwitchMode(ctx, domain.ModeShared, uuid.NewString())

	suite.Require().Error(err)
	suite.Equal(domain.ModeLocal, svc.Mode())
	suite.Equal(suite.localRepos, svc.ActiveRepos())
	suite.Empty(suite.published)
}

func (suite *StoreModeServiceTestSuite) TestSwitchMode_SameTargetReEmits() {
	ctx := context.Background()
	suite.mockSettings.On("LoadSharedModePreference", mock.Anything).Return(false, nil).Once()
	suite.mockSettings.On("SaveSharedModePreference", ctx, false).Return(nil).Once()

	svc := suite.newService(true)
	err := svc.SwitchMode(ctx, domain.ModeLocal, "")

	suite.Require().NoError(err)
	suite.Require().Len(suite.published, 1)
	evt := suite.published[0].(events.ModeChanged)
	suite.Equal(domain.ModeLocal, evt.From)
	suite.Equal(domain.ModeLocal, evt.To)
}

func (suite *StoreModeServiceTestSuite) TestRoleSurvivesModeChurn() {
	ctx := context.Background()
	actorID := uuid.NewString()
	suite.mockSettings.On("LoadSharedModePreference", mock.Anything).Return(false, nil).Once()
	suite.mockSettings.On("SaveSharedModePreference", ctx, true).Return(nil).Twice()
	suite.mockSettings.On("SaveSharedModePreference", ctx, false).Return(nil).Once()

	// Permissions live in the shared scope only; the access control service
	// is bound to the shared repositories and never follows the active mode.
	mockPermissions := new(MockPermissionRepository)
	mockPermissions.On("FindPermissionByUserID", mock.Anything, actorID).
		Return(&domain.Permission{UserID: actorID, Role: domain.RoleEditor, AddedAt: time.Now()}, nil)
	accessControl := services.NewAccessControlService(
		new(MockInvitationRepository), mockPermissions, new(MockAuditService), "", nil)

	svc := suite.newService(true)
	suite.Require().NoError(svc.SwitchMode(ctx, domain.ModeShared, actorID))

	role, ok, err := accessControl.GetRole(ctx, actorID)
	suite.Require().NoError(err)
	suite.Require().True(ok)
	suite.Equal(domain.RoleEditor, role)

	suite.Require().NoError(svc.SwitchMode(ctx, domain.ModeLocal, actorID))
	suite.Require().NoError(svc.SwitchMode(ctx, domain.ModeShared, actorID))

	role, ok, err = accessControl.GetRole(ctx, actorID)
	suite.Require().NoError(err)
	suite.Require().True(ok)
	suite.Equal(domain.RoleEditor, role)
}

// --- State ---

func (suite *StoreModeServiceTestSuite) TestState_Mapping() {
	ctx := context.Background()
	actorID := uuid.NewString()
	suite.mockSettings.On("LoadSharedModePreference", mock.Anything).Return(false, nil).Once()
	suite.mockSettings.On("SaveSharedModePreference", ctx, true).Return(nil).Once()

	svc := suite.newService(true)

	// Local mode never cares about identity.
	suite.Equal(domain.StateLocal, svc.State(""))
	suite.Equal(domain.StateLocal, svc.State(actorID))

	suite.Require().NoError(svc.SwitchMode(ctx, domain.ModeShared, actorID))

	suite.Equal(domain.StateSharedUnauthenticated, svc.State(""))
	suite.Equal(domain.StateSharedAuthenticated, svc.State(actorID))
}

// --- Run Test Suite ---

func TestStoreModeService(t *testing.T) {
	suite.Run(t, new(StoreModeServiceTestSuite))
}
