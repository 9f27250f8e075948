package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/bizledger/bizledger_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock BusinessService ---

type MockBusinessService struct {
	mock.Mock
}

func (m *MockBusinessService) CreateBusiness(ctx context.Context, req dto.CreateBusinessRequest, actorUserID string) (*domain.Business, error) {
	args := m.Called(ctx, req, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

func (m *MockBusinessService) GetBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

func (m *MockBusinessService) ListBusinesses(ctx context.Context, includeInactive bool) ([]domain.Business, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Business), args.Error(1)
}

func (m *MockBusinessService) DeactivateBusiness(ctx context.Context, businessID string, actorUserID string) error {
	args := m.Called(ctx, businessID, actorUserID)
	return args.Error(0)
}

var _ portssvc.BusinessSvcFacade = (*MockBusinessService)(nil)

// --- Mock StoreModeService ---

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

var _ portssvc.StoreModeSvcFacade = (*MockStoreModeService)(nil)

// --- Test Suite ---

type BusinessHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockBusinessService *MockBusinessService
	mockStoreMode       *MockStoreModeService
	jwtSecret           string
}

func (suite *BusinessHandlerTestSuite) generateTestToken(userID string) string {
	token, err := utils.GenerateJWT(userID, suite.jwtSecret, time.Hour, "bizledger-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *BusinessHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockBusinessService = new(MockBusinessService)
	suite.mockStoreMode = new(MockStoreModeService)

	v1 := suite.router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(suite.jwtSecret))
	registerBusinessRoutes(v1, suite.mockBusinessService)
	registerModeRoutes(v1, suite.mockStoreMode)
}

func (suite *BusinessHandlerTestSuite) doJSON(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *BusinessHandlerTestSuite) TestCreateBusiness_Success() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)
	created := &domain.Business{
		BusinessID: uuid.NewString(),
		Name:       "Corner Bakery",
		Type:       domain.BusinessLLC,
		IsActive:   true,
	}

	suite.mockBusinessService.On("CreateBusiness", mock.Anything, mock.MatchedBy(func(req dto.CreateBusinessRequest) bool {
		return req.Name == "Corner Bakery" && req.Type == domain.BusinessLLC
	}), userID).Return(created, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/businesses", token,
		dto.CreateBusinessRequest{Name: "Corner Bakery", Type: domain.BusinessLLC})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.BusinessResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.BusinessID, resp.BusinessID)
	suite.Equal("Corner Bakery", resp.Name)

	suite.mockBusinessService.AssertExpectations(suite.T())
}

func (suite *BusinessHandlerTestSuite) TestCreateBusiness_DuplicateName() {
	token := suite.generateTestToken(uuid.NewString())

	suite.mockBusinessService.On("CreateBusiness", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.NewConflictError("business name already in use")).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/businesses", token,
		dto.CreateBusinessRequest{Name: "Corner Bakery", Type: domain.BusinessLLC})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *BusinessHandlerTestSuite) TestCreateBusiness_MissingToken() {
	w := suite.doJSON(http.MethodPost, "/api/v1/businesses", "",
		dto.CreateBusinessRequest{Name: "Corner Bakery", Type: domain.BusinessLLC})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockBusinessService.AssertNotCalled(suite.T(), "CreateBusiness", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BusinessHandlerTestSuite) TestListBusinesses_IncludeInactiveFlag() {
	token := suite.generateTestToken(uuid.NewString())
	businesses := []domain.Business{
		{BusinessID: uuid.NewString(), Name: "Alpha", IsActive: true},
		{BusinessID: uuid.NewString(), Name: "Beta", IsActive: false},
	}
	suite.mockBusinessService.On("ListBusinesses", mock.Anything, true).Return(businesses, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/businesses?includeInactive=true", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListBusinessesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Businesses, 2)

	suite.mockBusinessService.AssertExpectations(suite.T())
}

func (suite *BusinessHandlerTestSuite) TestGetBusiness_NotFound() {
	token := suite.generateTestToken(uuid.NewString())
	businessID := uuid.NewString()
	suite.mockBusinessService.On("GetBusinessByID", mock.Anything, businessID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/businesses/"+businessID, token, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *BusinessHandlerTestSuite) TestDeactivateBusiness_NoContent() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)
	businessID := uuid.NewString()
	suite.mockBusinessService.On("DeactivateBusiness", mock.Anything, businessID, userID).Return(nil).Once()

	w := suite.doJSON(http.MethodDelete, "/api/v1/businesses/"+businessID, token, nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockBusinessService.AssertExpectations(suite.T())
}

func (suite *BusinessHandlerTestSuite) TestGetMode() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)
	switchedAt := time.Now().Add(-time.Minute)

	suite.mockStoreMode.On("ModeState").Return(domain.ModeState{Active: domain.ModeShared, LastSwitchAt: switchedAt}).Once()
	suite.mockStoreMode.On("State", userID).Return(domain.StateSharedAuthenticated).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/mode", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ModeStateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.ModeShared, resp.Active)
	suite.Equal(domain.StateSharedAuthenticated, resp.State)
}

func (suite *BusinessHandlerTestSuite) TestSwitchMode_Success() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)

	suite.mockStoreMode.On("SwitchMode", mock.Anything, domain.ModeShared, userID).Return(nil).Once()
	suite.mockStoreMode.On("ModeState").Return(domain.ModeState{Active: domain.ModeShared, LastSwitchAt: time.Now()}).Once()
	suite.mockStoreMode.On("State", userID).Return(domain.StateSharedAuthenticated).Once()

	w := suite.doJSON(http.MethodPut, "/api/v1/mode", token, dto.SwitchModeRequest{Target: domain.ModeShared})

	suite.Equal(http.StatusOK, w.Code)
	suite.mockStoreMode.AssertExpectations(suite.T())
}

func (suite *BusinessHandlerTestSuite) TestSwitchMode_SwitchInProgress() {
	token := suite.generateTestToken(uuid.NewString())

	suite.mockStoreMode.On("SwitchMode", mock.Anything, domain.ModeLocal, mock.Anything).
		Return(apperrors.ErrModeSwitchInProgress).Once()

	w := suite.doJSON(http.MethodPut, "/api/v1/mode", token, dto.SwitchModeRequest{Target: domain.ModeLocal})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *BusinessHandlerTestSuite) TestSwitchMode_UnknownTargetRejectedAtBinding() {
	token := suite.generateTestToken(uuid.NewString())

	w := suite.doJSON(http.MethodPut, "/api/v1/mode", token, map[string]string{"target": "HYBRID"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockStoreMode.AssertNotCalled(suite.T(), "SwitchMode", mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---

func TestBusinessHandler(t *testing.T) {
	suite.Run(t, new(BusinessHandlerTestSuite))
}
