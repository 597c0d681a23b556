package session_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/purescan-ai/purescan-backend/internal/cache"
	"github.com/purescan-ai/purescan-backend/internal/lib/jwt"
	"github.com/purescan-ai/purescan-backend/internal/models"
	"github.com/purescan-ai/purescan-backend/internal/services/session"
	"github.com/purescan-ai/purescan-backend/internal/view"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *RepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) UpdateUser(ctx context.Context, user models.User) (int, error) {
	args := m.Called(ctx, user)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) DeleteUser(ctx context.Context, userUID string) error {
	return m.Called(ctx, userUID).Error(0)
}

func (m *RepoMock) UpdatePlan(ctx context.Context, userUID string, plan models.Plan) error {
	return m.Called(ctx, userUID, plan).Error(0)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func (m *CacheMock) Invalidate(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type makerStub struct{}

func (makerStub) GenerateToken(userUID, _, _ string) (string, error) {
	return "token-" + userUID, nil
}

func (makerStub) ParseToken(string) (*jwt.CustomClaims, error) {
	return nil, errors.New("not implemented")
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestService_Login_FillsDefaults(t *testing.T) {
	repo := new(RepoMock)
	cacheMock := new(CacheMock)
	maker := new(makerStub)

	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Email == "user@purescan.ai" &&
			u.Name == "Пользователь" &&
			u.Plan == models.PlanFree &&
			u.ScansLeft == models.DefaultFreeScans &&
			u.Settings.Notifications && u.Settings.DarkMode
	})).Return("uid-1", nil).Once()
	cacheMock.On("Set", mock.Anything, cache.ViewKey("uid-1"), view.Dashboard, mock.Anything).
		Return(nil).Once()

	svc := session.New(repo, cacheMock, maker, newNoopLogger(), time.Millisecond)

	user, token, err := svc.Login(context.Background(), models.LoginProfile{})
	require.NoError(t, err)
	assert.Equal(t, "uid-1", user.UID)
	assert.Equal(t, "token-uid-1", token)

	repo.AssertExpectations(t)
	cacheMock.AssertExpectations(t)
}

func TestService_Login_KeepsProvidedIdentity(t *testing.T) {
	repo := new(RepoMock)
	cacheMock := new(CacheMock)

	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Email == "anna@example.com" && u.Name == "Анна" && u.Username == "anna"
	})).Return("uid-2", nil).Once()
	cacheMock.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := session.New(repo, cacheMock, new(makerStub), newNoopLogger(), time.Millisecond)

	user, _, err := svc.Login(context.Background(), models.LoginProfile{
		Email:    "anna@example.com",
		Name:     "Анна",
		Username: "anna",
	})
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", user.Email)
}

func TestService_Logout(t *testing.T) {
	repo := new(RepoMock)
	cacheMock := new(CacheMock)

	repo.On("DeleteUser", mock.Anything, "uid-1").Return(nil).Once()
	cacheMock.On("Invalidate", mock.Anything, cache.ViewKey("uid-1")).Return(nil).Once()
	cacheMock.On("Invalidate", mock.Anything, cache.CurrentResultKey("uid-1")).Return(nil).Once()
	cacheMock.On("Invalidate", mock.Anything, cache.ProgressKey("uid-1")).Return(nil).Once()

	svc := session.New(repo, cacheMock, new(makerStub), newNoopLogger(), time.Millisecond)

	require.NoError(t, svc.Logout(context.Background(), "uid-1"))
	repo.AssertExpectations(t)
	cacheMock.AssertExpectations(t)
}

func TestService_Upgrade(t *testing.T) {
	t.Run("without session redirects to auth", func(t *testing.T) {
		repo := new(RepoMock)
		svc := session.New(repo, new(CacheMock), new(makerStub), newNoopLogger(), time.Millisecond)

		next, err := svc.Upgrade(context.Background(), "", models.PlanPro)
		require.NoError(t, err)
		assert.Equal(t, view.Auth, next)

		// Анонимный запрос тариф не меняет.
		repo.AssertNotCalled(t, "UpdatePlan", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("success", func(t *testing.T) {
		repo := new(RepoMock)
		cacheMock := new(CacheMock)
		repo.On("UpdatePlan", mock.Anything, "uid-1", models.PlanPro).Return(nil).Once()
		cacheMock.On("Set", mock.Anything, cache.ViewKey("uid-1"), view.Dashboard, mock.Anything).
			Return(nil).Once()

		svc := session.New(repo, cacheMock, new(makerStub), newNoopLogger(), time.Millisecond)

		next, err := svc.Upgrade(context.Background(), "uid-1", models.PlanPro)
		require.NoError(t, err)
		assert.Equal(t, view.Dashboard, next)
		repo.AssertExpectations(t)
	})

	t.Run("unknown plan", func(t *testing.T) {
		svc := session.New(new(RepoMock), new(CacheMock), new(makerStub), newNoopLogger(), time.Millisecond)

		_, err := svc.Upgrade(context.Background(), "uid-1", models.Plan("PLATINUM"))
		require.Error(t, err)
	})

	t.Run("cancelled context aborts billing wait", func(t *testing.T) {
		repo := new(RepoMock)
		svc := session.New(repo, new(CacheMock), new(makerStub), newNoopLogger(), time.Minute)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := svc.Upgrade(ctx, "uid-1", models.PlanUltra)
		require.Error(t, err)
		repo.AssertNotCalled(t, "UpdatePlan", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_View(t *testing.T) {
	t.Run("anonymous gets landing", func(t *testing.T) {
		svc := session.New(new(RepoMock), new(CacheMock), new(makerStub), newNoopLogger(), time.Millisecond)
		assert.Equal(t, view.Landing, svc.View(context.Background(), ""))
	})

	t.Run("cached state wins", func(t *testing.T) {
		cacheMock := new(CacheMock)
		cacheMock.On("Get", mock.Anything, cache.ViewKey("uid-1"), mock.Anything).
			Run(func(args mock.Arguments) {
				s := args.Get(2).(*view.State)
				*s = view.Scan
			}).Return(true, nil).Once()

		svc := session.New(new(RepoMock), cacheMock, new(makerStub), newNoopLogger(), time.Millisecond)
		assert.Equal(t, view.Scan, svc.View(context.Background(), "uid-1"))
	})

	t.Run("missing cache falls back to profile existence", func(t *testing.T) {
		repo := new(RepoMock)
		cacheMock := new(CacheMock)
		cacheMock.On("Get", mock.Anything, cache.ViewKey("uid-1"), mock.Anything).
			Return(false, nil).Once()
		repo.On("GetUser", mock.Anything, "uid-1").
			Return(&models.User{UID: "uid-1"}, nil).Once()

		svc := session.New(repo, cacheMock, new(makerStub), newNoopLogger(), time.Millisecond)
		assert.Equal(t, view.Dashboard, svc.View(context.Background(), "uid-1"))
	})

	t.Run("unknown user degrades to landing", func(t *testing.T) {
		repo := new(RepoMock)
		cacheMock := new(CacheMock)
		cacheMock.On("Get", mock.Anything, cache.ViewKey("uid-9"), mock.Anything).
			Return(false, nil).Once()
		repo.On("GetUser", mock.Anything, "uid-9").
			Return(nil, errors.New("not found")).Once()

		svc := session.New(repo, cacheMock, new(makerStub), newNoopLogger(), time.Millisecond)
		assert.Equal(t, view.Landing, svc.View(context.Background(), "uid-9"))
	})
}

func TestService_Apply(t *testing.T) {
	cacheMock := new(CacheMock)
	cacheMock.On("Get", mock.Anything, cache.ViewKey("uid-1"), mock.Anything).
		Run(func(args mock.Arguments) {
			s := args.Get(2).(*view.State)
			*s = view.Dashboard
		}).Return(true, nil).Once()
	cacheMock.On("Set", mock.Anything, cache.ViewKey("uid-1"), view.Scan, mock.Anything).
		Return(nil).Once()

	svc := session.New(new(RepoMock), cacheMock, new(makerStub), newNoopLogger(), time.Millisecond)

	next := svc.Apply(context.Background(), "uid-1", view.EventScan)
	assert.Equal(t, view.Scan, next)
	cacheMock.AssertExpectations(t)
}
