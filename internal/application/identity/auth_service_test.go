package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/catalogsync/backend/internal/domain/identity"
	"github.com/catalogsync/backend/internal/domain/shared"
	"github.com/catalogsync/backend/internal/infrastructure/auth"
	"github.com/catalogsync/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func newTestAuthService(repo *MockUserRepository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-that-is-long-enough",
		TokenExpiration: time.Hour,
		Issuer:          "catalogsync-test",
	})
	return NewAuthService(repo, jwtService, auth.NewMemoryTokenBlacklist(), zap.NewNop())
}

func newStoredUser(t *testing.T, username, password string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(username, password)
	require.NoError(t, err)
	return user
}

func TestAuthService_Login(t *testing.T) {
	t.Run("issues a token for valid credentials", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := newTestAuthService(repo)

		user := newStoredUser(t, "admin", "correct-password")
		repo.On("FindByUsername", mock.Anything, "admin").Return(user, nil)

		resp, err := service.Login(context.Background(), LoginRequest{
			Username: "admin",
			Password: "correct-password",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, "admin", resp.Username)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := newTestAuthService(repo)

		user := newStoredUser(t, "admin", "correct-password")
		repo.On("FindByUsername", mock.Anything, "admin").Return(user, nil)

		_, err := service.Login(context.Background(), LoginRequest{
			Username: "admin",
			Password: "wrong-password",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	})

	t.Run("rejects an unknown user with the same error", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := newTestAuthService(repo)

		repo.On("FindByUsername", mock.Anything, "ghost").Return(nil, shared.ErrNotFound)

		_, err := service.Login(context.Background(), LoginRequest{
			Username: "ghost",
			Password: "whatever",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	})

	t.Run("rejects an inactive user", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := newTestAuthService(repo)

		user := newStoredUser(t, "admin", "correct-password")
		user.Active = false
		repo.On("FindByUsername", mock.Anything, "admin").Return(user, nil)

		_, err := service.Login(context.Background(), LoginRequest{
			Username: "admin",
			Password: "correct-password",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	})

	t.Run("propagates repository failures", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := newTestAuthService(repo)

		dbErr := errors.New("db down")
		repo.On("FindByUsername", mock.Anything, "admin").Return(nil, dbErr)

		_, err := service.Login(context.Background(), LoginRequest{
			Username: "admin",
			Password: "correct-password",
		})

		assert.ErrorIs(t, err, dbErr)
	})
}

func TestAuthService_Logout(t *testing.T) {
	repo := new(MockUserRepository)
	service := newTestAuthService(repo)

	claims := &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-logout",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Username: "admin",
	}

	require.NoError(t, service.Logout(context.Background(), claims))

	blocked, err := service.blacklist.IsBlacklisted(context.Background(), "jti-logout")
	require.NoError(t, err)
	assert.True(t, blocked)
}

func TestAuthService_EnsureBootstrapUser(t *testing.T) {
	t.Run("creates the user when missing", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := newTestAuthService(repo)

		repo.On("FindByUsername", mock.Anything, "admin").Return(nil, shared.ErrNotFound)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

		require.NoError(t, service.EnsureBootstrapUser(context.Background(), "admin", "bootstrap-pass"))
		repo.AssertExpectations(t)
	})

	t.Run("keeps an existing user", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := newTestAuthService(repo)

		user := newStoredUser(t, "admin", "old-pass")
		repo.On("FindByUsername", mock.Anything, "admin").Return(user, nil)

		require.NoError(t, service.EnsureBootstrapUser(context.Background(), "admin", "new-pass"))
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("does nothing without credentials", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := newTestAuthService(repo)

		require.NoError(t, service.EnsureBootstrapUser(context.Background(), "", ""))
		repo.AssertNotCalled(t, "FindByUsername")
	})
}
