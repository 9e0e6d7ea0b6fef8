package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bolibana/backend/internal/domain/identity"
	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/bolibana/backend/internal/infrastructure/auth"
	"github.com/bolibana/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.Repository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAllForSite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) (shared.Paginated[*identity.User], error) {
	args := m.Called(ctx, siteID, filter)
	return args.Get(0).(shared.Paginated[*identity.User]), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) CountSiteAdmins(ctx context.Context, siteID uuid.UUID) (int64, error) {
	args := m.Called(ctx, siteID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) HasDependentRecords(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Helper function to create a test user
func createTestUser(siteID uuid.UUID) *identity.User {
	user, _ := identity.NewUser(siteID, "testuser", "Password123")
	user.ClearDomainEvents()
	return user
}

// Helper function to create auth service backed by an in-memory blacklist
func createAuthService(userRepo *MockUserRepository) *AuthService {
	jwtCfg := config.JWTConfig{
		Secret:                 "test-secret-key-32-characters-long",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        10,
	}
	jwtService := auth.NewJWTService(jwtCfg)
	blacklist := auth.NewInMemoryTokenBlacklist()
	logger := zap.NewNop()

	return NewAuthService(userRepo, jwtService, blacklist, logger)
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	siteID := uuid.New()
	userRepo := new(MockUserRepository)

	user := createTestUser(siteID)

	userRepo.On("FindByUsername", ctx, "testuser").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	authService := createAuthService(userRepo)

	result, err := authService.Login(ctx, LoginInput{
		Username: "testuser",
		Password: "Password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "testuser", result.User.Username)
	require.NotNil(t, result.User.SiteID)
	assert.Equal(t, siteID, *result.User.SiteID)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.NotNil(t, user.LastLoginAt)

	userRepo.AssertExpectations(t)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	siteID := uuid.New()
	userRepo := new(MockUserRepository)

	user := createTestUser(siteID)

	userRepo.On("FindByUsername", ctx, "testuser").Return(user, nil)

	authService := createAuthService(userRepo)

	result, err := authService.Login(ctx, LoginInput{
		Username: "testuser",
		Password: "wrongpassword",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)

	userRepo.On("FindByUsername", ctx, "nonexistent").Return(nil, shared.ErrNotFound)

	authService := createAuthService(userRepo)

	result, err := authService.Login(ctx, LoginInput{
		Username: "nonexistent",
		Password: "Password123",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthService_Login_DeactivatedAccount(t *testing.T) {
	ctx := context.Background()
	siteID := uuid.New()
	userRepo := new(MockUserRepository)

	user := createTestUser(siteID)
	require.NoError(t, user.Deactivate())

	userRepo.On("FindByUsername", ctx, "testuser").Return(user, nil)

	authService := createAuthService(userRepo)

	result, err := authService.Login(ctx, LoginInput{
		Username: "testuser",
		Password: "Password123",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
}

func TestAuthService_Login_Superuser(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)

	user, err := identity.NewSuperuser("platform.admin", "Password123")
	require.NoError(t, err)
	user.ClearDomainEvents()

	userRepo.On("FindByUsername", ctx, "platform.admin").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	authService := createAuthService(userRepo)

	result, err := authService.Login(ctx, LoginInput{
		Username: "platform.admin",
		Password: "Password123",
	})

	require.NoError(t, err)
	assert.True(t, result.User.IsSuperuser)
	assert.Nil(t, result.User.SiteID)
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	ctx := context.Background()
	siteID := uuid.New()
	userRepo := new(MockUserRepository)

	user := createTestUser(siteID)

	userRepo.On("FindByUsername", ctx, "testuser").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	authService := createAuthService(userRepo)

	loginResult, err := authService.Login(ctx, LoginInput{
		Username: "testuser",
		Password: "Password123",
	})
	require.NoError(t, err)

	refreshResult, err := authService.RefreshToken(ctx, RefreshTokenInput{
		RefreshToken: loginResult.RefreshToken,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, refreshResult.AccessToken)
	assert.NotEmpty(t, refreshResult.RefreshToken)
	assert.Equal(t, "Bearer", refreshResult.TokenType)
	assert.NotEqual(t, loginResult.AccessToken, refreshResult.AccessToken)
}

func TestAuthService_RefreshToken_InvalidToken(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)

	authService := createAuthService(userRepo)

	result, err := authService.RefreshToken(ctx, RefreshTokenInput{
		RefreshToken: "invalid-token",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
}

func TestAuthService_RefreshToken_UserDeleted(t *testing.T) {
	ctx := context.Background()
	siteID := uuid.New()
	userRepo := new(MockUserRepository)

	user := createTestUser(siteID)

	userRepo.On("FindByUsername", ctx, "testuser").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	authService := createAuthService(userRepo)

	loginResult, err := authService.Login(ctx, LoginInput{
		Username: "testuser",
		Password: "Password123",
	})
	require.NoError(t, err)

	userRepo.On("FindByID", ctx, user.ID).Return(nil, shared.ErrNotFound)

	result, err := authService.RefreshToken(ctx, RefreshTokenInput{
		RefreshToken: loginResult.RefreshToken,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "USER_NOT_FOUND", domainErr.Code)
}

func TestAuthService_Logout_RevokesRefreshToken(t *testing.T) {
	ctx := context.Background()
	siteID := uuid.New()
	userRepo := new(MockUserRepository)

	user := createTestUser(siteID)

	userRepo.On("FindByUsername", ctx, "testuser").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	authService := createAuthService(userRepo)

	loginResult, err := authService.Login(ctx, LoginInput{
		Username: "testuser",
		Password: "Password123",
	})
	require.NoError(t, err)

	err = authService.Logout(ctx, LogoutInput{
		AccessToken:  loginResult.AccessToken,
		RefreshToken: loginResult.RefreshToken,
	})
	require.NoError(t, err)

	// The revoked refresh token must no longer be usable
	result, err := authService.RefreshToken(ctx, RefreshTokenInput{
		RefreshToken: loginResult.RefreshToken,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "TOKEN_REVOKED", domainErr.Code)
}

func TestAuthService_GetCurrentUser_Success(t *testing.T) {
	ctx := context.Background()
	siteID := uuid.New()
	userRepo := new(MockUserRepository)

	user := createTestUser(siteID)
	require.NoError(t, user.SetEmail("test@example.com"))

	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	authService := createAuthService(userRepo)

	result, err := authService.GetCurrentUser(ctx, GetCurrentUserInput{UserID: user.ID})

	require.NoError(t, err)
	assert.Equal(t, user.ID, result.ID)
	assert.Equal(t, "testuser", result.Username)
	assert.Equal(t, "test@example.com", result.Email)

	userRepo.AssertExpectations(t)
}

func TestAuthService_ChangePassword_Success(t *testing.T) {
	ctx := context.Background()
	siteID := uuid.New()
	userRepo := new(MockUserRepository)

	user := createTestUser(siteID)

	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	userRepo.On("Save", ctx, mock.Anything).Return(nil)

	authService := createAuthService(userRepo)

	err := authService.ChangePassword(ctx, ChangePasswordInput{
		UserID:      user.ID,
		OldPassword: "Password123",
		NewPassword: "NewPassword456",
	})

	require.NoError(t, err)
	assert.True(t, user.CheckPassword("NewPassword456"))
	userRepo.AssertExpectations(t)
}

func TestAuthService_ChangePassword_WrongOldPassword(t *testing.T) {
	ctx := context.Background()
	siteID := uuid.New()
	userRepo := new(MockUserRepository)

	user := createTestUser(siteID)

	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	authService := createAuthService(userRepo)

	err := authService.ChangePassword(ctx, ChangePasswordInput{
		UserID:      user.ID,
		OldPassword: "wrongpassword",
		NewPassword: "NewPassword456",
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_PASSWORD", domainErr.Code)
}
