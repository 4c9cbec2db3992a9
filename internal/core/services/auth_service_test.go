// internal/core/services/auth_service_test.go
package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	redis_a "github.com/fruimex/fruimex-be/internal/adapters/redis_adapter"
	"github.com/fruimex/fruimex-be/internal/core/domain"
	"github.com/fruimex/fruimex-be/internal/core/services"
	"github.com/fruimex/fruimex-be/test/helpers"
	"github.com/fruimex/fruimex-be/test/mocks"
)

func newAuthService(t *testing.T, ctrl *gomock.Controller, sessionTTL time.Duration) (*services.AuthService, *mocks.MockOperatorRepository, *helpers.TestRedis) {
	t.Helper()
	operators := mocks.NewMockOperatorRepository(ctrl)
	testRedis := helpers.SetupTestRedis(t)
	cache := redis_a.NewCache(testRedis.Client, time.Minute, helpers.TestLogger())
	svc := services.NewAuthService(operators, cache, sessionTTL, helpers.TestLogger())
	return svc, operators, testRedis
}

func seedOperator(t *testing.T, password string) *domain.Operator {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.Operator{
		ID:           uuid.New(),
		Email:        "ops@fruimex.test",
		DisplayName:  "Back Office",
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("opens_session_for_valid_credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, operators, testRedis := newAuthService(t, ctrl, time.Hour)
		operator := seedOperator(t, "harvest-moon")

		operators.EXPECT().
			FindByEmail(gomock.Any(), operator.Email).
			Return(operator, nil)

		token, got, err := svc.Login(ctx, operator.Email, "harvest-moon")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		require.NotNil(t, got)
		assert.Equal(t, operator.ID, got.ID)

		key := redis_a.BuildKey(redis_a.PrefixSession, token)
		assert.True(t, testRedis.Server.Exists(key))
	})

	t.Run("rejects_unknown_email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, operators, _ := newAuthService(t, ctrl, time.Hour)

		operators.EXPECT().
			FindByEmail(gomock.Any(), "nobody@fruimex.test").
			Return(nil, nil)

		token, got, err := svc.Login(ctx, "nobody@fruimex.test", "whatever")
		assert.ErrorIs(t, err, services.ErrInvalidLogin)
		assert.Empty(t, token)
		assert.Nil(t, got)
	})

	t.Run("rejects_wrong_password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, operators, _ := newAuthService(t, ctrl, time.Hour)
		operator := seedOperator(t, "harvest-moon")

		operators.EXPECT().
			FindByEmail(gomock.Any(), operator.Email).
			Return(operator, nil)

		token, got, err := svc.Login(ctx, operator.Email, "wrong-password")
		assert.ErrorIs(t, err, services.ErrInvalidLogin)
		assert.Empty(t, token)
		assert.Nil(t, got)
	})

	t.Run("propagates_repository_errors", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, operators, _ := newAuthService(t, ctrl, time.Hour)

		operators.EXPECT().
			FindByEmail(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("connection refused"))

		_, _, err := svc.Login(ctx, "ops@fruimex.test", "harvest-moon")
		require.Error(t, err)
		assert.NotErrorIs(t, err, services.ErrInvalidLogin)
	})
}

func TestAuthService_CurrentUser(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves_token_to_operator", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, operators, _ := newAuthService(t, ctrl, time.Hour)
		operator := seedOperator(t, "harvest-moon")

		operators.EXPECT().
			FindByEmail(gomock.Any(), operator.Email).
			Return(operator, nil)

		token, _, err := svc.Login(ctx, operator.Email, "harvest-moon")
		require.NoError(t, err)

		got, err := svc.CurrentUser(ctx, token)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, operator.ID, got.ID)
		assert.Equal(t, operator.Email, got.Email)
	})

	t.Run("returns_nil_for_unknown_token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, _, _ := newAuthService(t, ctrl, time.Hour)

		got, err := svc.CurrentUser(ctx, "deadbeef")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("returns_nil_for_empty_token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, _, _ := newAuthService(t, ctrl, time.Hour)

		got, err := svc.CurrentUser(ctx, "")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("slides_session_expiry_on_hit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, operators, testRedis := newAuthService(t, ctrl, time.Hour)
		operator := seedOperator(t, "harvest-moon")

		operators.EXPECT().
			FindByEmail(gomock.Any(), operator.Email).
			Return(operator, nil)

		token, _, err := svc.Login(ctx, operator.Email, "harvest-moon")
		require.NoError(t, err)

		testRedis.Server.FastForward(40 * time.Minute)

		got, err := svc.CurrentUser(ctx, token)
		require.NoError(t, err)
		require.NotNil(t, got)

		// Another 40 minutes would have crossed the original expiry.
		testRedis.Server.FastForward(40 * time.Minute)

		got, err = svc.CurrentUser(ctx, token)
		require.NoError(t, err)
		assert.NotNil(t, got)
	})

	t.Run("returns_nil_after_expiry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, operators, testRedis := newAuthService(t, ctrl, time.Hour)
		operator := seedOperator(t, "harvest-moon")

		operators.EXPECT().
			FindByEmail(gomock.Any(), operator.Email).
			Return(operator, nil)

		token, _, err := svc.Login(ctx, operator.Email, "harvest-moon")
		require.NoError(t, err)

		testRedis.Server.FastForward(2 * time.Hour)

		got, err := svc.CurrentUser(ctx, token)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("tears_down_the_session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, operators, testRedis := newAuthService(t, ctrl, time.Hour)
		operator := seedOperator(t, "harvest-moon")

		operators.EXPECT().
			FindByEmail(gomock.Any(), operator.Email).
			Return(operator, nil)

		token, _, err := svc.Login(ctx, operator.Email, "harvest-moon")
		require.NoError(t, err)

		require.NoError(t, svc.Logout(ctx, token))

		key := redis_a.BuildKey(redis_a.PrefixSession, token)
		assert.False(t, testRedis.Server.Exists(key))

		got, err := svc.CurrentUser(ctx, token)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ignores_empty_token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, _, _ := newAuthService(t, ctrl, time.Hour)

		assert.NoError(t, svc.Logout(ctx, ""))
	})
}
