package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LeeDev428/smile-republic-dcms-sub001/internal/models"
	"github.com/LeeDev428/smile-republic-dcms-sub001/internal/repositories"
	"github.com/LeeDev428/smile-republic-dcms-sub001/internal/session"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *models.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByIdentifier(ctx context.Context, identifier string) (*models.Account, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.AccountStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*models.Account, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Account), args.Error(1)
}

type AuthServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	sessions *session.MemoryStore
	service  AuthService
	account  *models.Account
}

const testPassword = "password"

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockRepo = &MockAccountRepository{}
	suite.mockRepo.Test(suite.T())
	suite.sessions = session.NewMemoryStore(time.Hour)
	suite.service = NewAuthService(suite.mockRepo, suite.sessions, 5*time.Second)

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	assert.NoError(suite.T(), err)

	suite.account = &models.Account{
		ID:           uuid.New(),
		Username:     "admin",
		Email:        "admin@smilerepublic.ph",
		PasswordHash: string(hash),
		FirstName:    "Maria",
		LastName:     "Santos",
		Role:         models.RoleAdmin,
		Status:       models.StatusActive,
	}
}

func (suite *AuthServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (suite *AuthServiceTestSuite) TestAuthenticate_SuccessByUsername() {
	ctx := context.Background()
	suite.mockRepo.On("FindByIdentifier", mock.Anything, "admin").Return(suite.account, nil)

	account, err := suite.service.Authenticate(ctx, "admin", testPassword)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.account.ID, account.ID)
}

func (suite *AuthServiceTestSuite) TestAuthenticate_SuccessByEmail() {
	ctx := context.Background()
	suite.mockRepo.On("FindByIdentifier", mock.Anything, "admin@smilerepublic.ph").Return(suite.account, nil)

	account, err := suite.service.Authenticate(ctx, "admin@smilerepublic.ph", testPassword)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.account.ID, account.ID)
}

func (suite *AuthServiceTestSuite) TestAuthenticate_TrimsIdentifier() {
	ctx := context.Background()
	suite.mockRepo.On("FindByIdentifier", mock.Anything, "admin").Return(suite.account, nil)

	_, err := suite.service.Authenticate(ctx, "  admin  ", testPassword)
	assert.NoError(suite.T(), err)
}

func (suite *AuthServiceTestSuite) TestAuthenticate_MissingFieldsSkipStore() {
	ctx := context.Background()

	_, err := suite.service.Authenticate(ctx, "", testPassword)
	assert.ErrorIs(suite.T(), err, ErrMissingFields)

	_, err = suite.service.Authenticate(ctx, "admin", "")
	assert.ErrorIs(suite.T(), err, ErrMissingFields)

	_, err = suite.service.Authenticate(ctx, "   ", "   ")
	assert.ErrorIs(suite.T(), err, ErrMissingFields)

	// No FindByIdentifier expectations were set, TearDownTest enforces
	// the store was never consulted.
}

func (suite *AuthServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	suite.mockRepo.On("FindByIdentifier", mock.Anything, "admin").Return(suite.account, nil)

	account, err := suite.service.Authenticate(ctx, "admin", "wrong")
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
	assert.Nil(suite.T(), account)
}

func (suite *AuthServiceTestSuite) TestAuthenticate_UnknownIdentifierSameError() {
	ctx := context.Background()
	suite.mockRepo.On("FindByIdentifier", mock.Anything, "ghost").Return(nil, repositories.ErrAccountNotFound)

	account, err := suite.service.Authenticate(ctx, "ghost", "anything")
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
	assert.Nil(suite.T(), account)
}

func (suite *AuthServiceTestSuite) TestAuthenticate_DeactivatedWithCorrectPassword() {
	ctx := context.Background()
	suite.account.Status = models.StatusInactive
	suite.mockRepo.On("FindByIdentifier", mock.Anything, "admin").Return(suite.account, nil)

	account, err := suite.service.Authenticate(ctx, "admin", testPassword)
	assert.ErrorIs(suite.T(), err, ErrAccountDeactivated)
	assert.Nil(suite.T(), account)
}

func (suite *AuthServiceTestSuite) TestAuthenticate_DeactivatedWithWrongPasswordStaysGeneric() {
	ctx := context.Background()
	suite.account.Status = models.StatusInactive
	suite.mockRepo.On("FindByIdentifier", mock.Anything, "admin").Return(suite.account, nil)

	_, err := suite.service.Authenticate(ctx, "admin", "wrong")
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestAuthenticate_StoreFailure() {
	ctx := context.Background()
	suite.mockRepo.On("FindByIdentifier", mock.Anything, "admin").Return(nil, errors.New("connection refused"))

	account, err := suite.service.Authenticate(ctx, "admin", testPassword)
	assert.ErrorIs(suite.T(), err, ErrStoreUnavailable)
	assert.Nil(suite.T(), account)
}

func (suite *AuthServiceTestSuite) TestLogin_EstablishesSessionAndRedirects() {
	ctx := context.Background()
	suite.mockRepo.On("FindByIdentifier", mock.Anything, "admin").Return(suite.account, nil)

	result, err := suite.service.Login(ctx, "admin", testPassword, "")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "/admin/dashboard", result.RedirectPath)
	assert.NotEmpty(suite.T(), result.SessionID)

	data, err := suite.sessions.Get(ctx, result.SessionID)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), data)
	assert.Equal(suite.T(), suite.account.ID, data.AccountID)
	assert.Equal(suite.T(), models.RoleAdmin, data.Role)
	assert.Equal(suite.T(), "Maria", data.FirstName)
}

func (suite *AuthServiceTestSuite) TestLogin_RegeneratesSessionID() {
	ctx := context.Background()
	suite.mockRepo.On("FindByIdentifier", mock.Anything, "admin").Return(suite.account, nil)

	prior, err := suite.sessions.Create(ctx, session.Data{AccountID: suite.account.ID})
	assert.NoError(suite.T(), err)

	result, err := suite.service.Login(ctx, "admin", testPassword, prior)
	assert.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), prior, result.SessionID)

	stale, err := suite.sessions.Get(ctx, prior)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), stale)
}

func (suite *AuthServiceTestSuite) TestLogin_UnroutableRoleFailsClosedWithoutSession() {
	ctx := context.Background()
	suite.account.Role = "superadmin"
	suite.mockRepo.On("FindByIdentifier", mock.Anything, "admin").Return(suite.account, nil)

	result, err := suite.service.Login(ctx, "admin", testPassword, "")
	assert.ErrorIs(suite.T(), err, models.ErrUnknownRole)
	assert.Nil(suite.T(), result)
	assert.Equal(suite.T(), 0, suite.sessions.Len())
}

func (suite *AuthServiceTestSuite) TestLogin_FailureLeavesNoSession() {
	ctx := context.Background()
	suite.mockRepo.On("FindByIdentifier", mock.Anything, "admin").Return(suite.account, nil)

	_, err := suite.service.Login(ctx, "admin", "wrong", "")
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
	assert.Equal(suite.T(), 0, suite.sessions.Len())
}

func (suite *AuthServiceTestSuite) TestLogout_DeletesSession() {
	ctx := context.Background()
	id, err := suite.sessions.Create(ctx, session.Data{AccountID: suite.account.ID})
	assert.NoError(suite.T(), err)

	assert.NoError(suite.T(), suite.service.Logout(ctx, id))

	data, err := suite.sessions.Get(ctx, id)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), data)
}

func (suite *AuthServiceTestSuite) TestLogout_EmptyIDIsNoop() {
	assert.NoError(suite.T(), suite.service.Logout(context.Background(), ""))
}
