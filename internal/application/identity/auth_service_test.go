package identity

import (
	"context"
	"testing"
	"time"

	"github.com/easygo-schools/backend/internal/domain/identity"
	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/easygo-schools/backend/internal/infrastructure/auth"
	"github.com/easygo-schools/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a testify mock of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
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

func (m *MockUserRepository) FindByRole(ctx context.Context, role identity.Role) ([]*identity.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

var _ identity.UserRepository = (*MockUserRepository)(nil)

func newAuthService(repo identity.UserRepository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars!!",
		AccessTokenExpiration: time.Hour,
		Issuer:                "easygo-schools",
	})
	return NewAuthService(repo, jwtService, zap.NewNop())
}

func activeUser(t *testing.T) *identity.User {
	user, err := identity.NewUser("amina.berrada", "amina@example.com", "s3cret-pass", identity.RoleTeacher)
	require.NoError(t, err)
	return user
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("returns token on valid credentials", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newAuthService(repo)
		user := activeUser(t)

		repo.On("FindByUsername", ctx, "amina.berrada").Return(user, nil)
		repo.On("Update", ctx, user).Return(nil)

		resp, err := svc.Login(ctx, LoginRequest{Username: "amina.berrada", Password: "s3cret-pass"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token.AccessToken)
		assert.Equal(t, "Bearer", resp.Token.TokenType)
		require.NotNil(t, resp.User.LastLoginAt)
		repo.AssertExpectations(t)
	})

	t.Run("same error for unknown user and bad password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newAuthService(repo)
		user := activeUser(t)

		repo.On("FindByUsername", ctx, "ghost").Return(nil, shared.ErrNotFound)
		_, unknownErr := svc.Login(ctx, LoginRequest{Username: "ghost", Password: "whatever"})
		require.Error(t, unknownErr)

		repo.On("FindByUsername", ctx, "amina.berrada").Return(user, nil)
		_, badPassErr := svc.Login(ctx, LoginRequest{Username: "amina.berrada", Password: "wrong"})
		require.Error(t, badPassErr)

		assert.Equal(t, unknownErr.Error(), badPassErr.Error())
	})

	t.Run("rejects deactivated account", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newAuthService(repo)
		user := activeUser(t)
		user.Deactivate()

		repo.On("FindByUsername", ctx, "amina.berrada").Return(user, nil)

		_, err := svc.Login(ctx, LoginRequest{Username: "amina.berrada", Password: "s3cret-pass"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "deactivated")
	})

	t.Run("login survives a failed last-login update", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newAuthService(repo)
		user := activeUser(t)

		repo.On("FindByUsername", ctx, "amina.berrada").Return(user, nil)
		repo.On("Update", ctx, user).Return(assert.AnError)

		resp, err := svc.Login(ctx, LoginRequest{Username: "amina.berrada", Password: "s3cret-pass"})
		require.NoError(t, err)
		assert.NotNil(t, resp.Token)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("changes and persists", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newAuthService(repo)
		user := activeUser(t)

		repo.On("FindByID", ctx, user.ID).Return(user, nil)
		repo.On("Update", ctx, user).Return(nil)

		err := svc.ChangePassword(ctx, user.ID.String(), ChangePasswordRequest{
			CurrentPassword: "s3cret-pass",
			NewPassword:     "brand-new-pass",
		})
		require.NoError(t, err)
		assert.True(t, user.CheckPassword("brand-new-pass"))
		repo.AssertExpectations(t)
	})

	t.Run("rejects wrong current password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newAuthService(repo)
		user := activeUser(t)

		repo.On("FindByID", ctx, user.ID).Return(user, nil)

		err := svc.ChangePassword(ctx, user.ID.String(), ChangePasswordRequest{
			CurrentPassword: "wrong",
			NewPassword:     "brand-new-pass",
		})
		require.Error(t, err)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("rejects malformed user id", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newAuthService(repo)

		err := svc.ChangePassword(ctx, "not-a-uuid", ChangePasswordRequest{
			CurrentPassword: "s3cret-pass",
			NewPassword:     "brand-new-pass",
		})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}
