package authservice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nbataa/agentmart/internal/domain"
	"github.com/nbataa/agentmart/pkg/auth"
)

type mocks struct {
	repo   *MockRepo
	ledger *MockLedger
	hash   *auth.MockHashServiceInterface
	jwt    *auth.MockJWTServiceInterface
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		repo:   NewMockRepo(ctrl),
		ledger: NewMockLedger(ctrl),
		hash:   auth.NewMockHashServiceInterface(ctrl),
		jwt:    auth.NewMockJWTServiceInterface(ctrl),
	}
	return New(m.repo, m.ledger, m.hash, m.jwt), m
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the account and grants the signup card", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().FindByPhone(ctx, "88112233").Return(nil, nil)
		m.hash.EXPECT().HashPassword("secret").Return("hashed", nil)
		m.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, user *domain.User) (*domain.User, error) {
				assert.Equal(t, "88112233", user.Phone)
				assert.Equal(t, "hashed", user.PasswordHash)
				assert.Equal(t, domain.RoleUser, user.Role)
				user.ID = 7
				return user, nil
			})
		m.ledger.EXPECT().GrantInitial(ctx, 7, int64(1)).Return(nil)

		user, err := service.Register(ctx, "88112233", "Bat", "secret", "")

		require.NoError(t, err)
		assert.Equal(t, 7, user.ID)
	})

	t.Run("agents register with the agent role", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().FindByPhone(ctx, "88112233").Return(nil, nil)
		m.hash.EXPECT().HashPassword("secret").Return("hashed", nil)
		m.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, user *domain.User) (*domain.User, error) {
				assert.Equal(t, domain.RoleAgent, user.Role)
				user.ID = 8
				return user, nil
			})
		m.ledger.EXPECT().GrantInitial(ctx, 8, int64(1)).Return(nil)

		_, err := service.Register(ctx, "88112233", "Saruul", "secret", domain.RoleAgent)

		require.NoError(t, err)
	})

	t.Run("duplicate phone", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().FindByPhone(ctx, "88112233").Return(&domain.User{ID: 1}, nil)

		_, err := service.Register(ctx, "88112233", "Bat", "secret", "")

		require.ErrorIs(t, err, ErrPhoneTaken)
	})

	t.Run("unknown role", func(t *testing.T) {
		service, _ := NewMock(t)

		_, err := service.Register(ctx, "88112233", "Bat", "secret", "superadmin")

		require.ErrorIs(t, err, ErrUnknownRole)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().FindByPhone(ctx, "88112233").Return(&domain.User{
			ID: 7, Phone: "88112233", PasswordHash: "hashed", Role: domain.RoleUser,
		}, nil)
		m.hash.EXPECT().ComparePassword("hashed", "secret").Return(true)

		user, err := service.Authenticate(ctx, "88112233", "secret")

		require.NoError(t, err)
		assert.Equal(t, 7, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().FindByPhone(ctx, "88112233").Return(&domain.User{PasswordHash: "hashed"}, nil)
		m.hash.EXPECT().ComparePassword("hashed", "nope").Return(false)

		_, err := service.Authenticate(ctx, "88112233", "nope")

		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown phone", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().FindByPhone(ctx, "88112233").Return(nil, nil)

		_, err := service.Authenticate(ctx, "88112233", "secret")

		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestGenerateToken(t *testing.T) {
	t.Run("issues a token for the user and role", func(t *testing.T) {
		service, m := NewMock(t)
		m.jwt.EXPECT().GenerateJWT(7, domain.RoleAgent, gomock.Any()).Return("token", nil)

		token, err := service.GenerateToken(7, domain.RoleAgent)

		require.NoError(t, err)
		assert.Equal(t, "token", token)
	})

	t.Run("propagates signing failures", func(t *testing.T) {
		service, m := NewMock(t)
		m.jwt.EXPECT().GenerateJWT(7, domain.RoleUser, gomock.Any()).Return("", errors.New("no key"))

		_, err := service.GenerateToken(7, domain.RoleUser)

		require.Error(t, err)
	})
}
