package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"approval-system/internal/dto"
	"approval-system/internal/entities"
	"approval-system/pkg/config"
	apperrors "approval-system/pkg/errors"
	"approval-system/pkg/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService(userRepo *fakeUserRepo, cache *fakeCache) AuthServiceInterface {
	jwtSvc := service.NewJWTService("test-secret", time.Hour, time.Hour*24)
	cfg := &config.AuthConfig{MaxLoginAttempts: 3, LockoutDuration: time.Minute}
	return NewAuthService(userRepo, cache, jwtSvc, cfg, zap.NewNop())
}

func activeUser() *entities.User {
	return &entities.User{
		ID:       "id-1",
		UserID:   "USR001",
		Username: "alice.cooper",
		Email:    "alice.cooper@company.com",
		Password: "user123",
		Role:     entities.RoleUser,
		IsActive: true,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("успешный вход выдает пару токенов", func(t *testing.T) {
		svc := newAuthService(newFakeUserRepo(activeUser()), newFakeCache())

		resp, err := svc.Login(ctx, dto.LoginDTO{Email: "alice.cooper@company.com", Password: "user123"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.NotEqual(t, resp.AccessToken, resp.RefreshToken)
	})

	t.Run("неизвестный email и неверный пароль дают одинаковую ошибку", func(t *testing.T) {
		svc := newAuthService(newFakeUserRepo(activeUser()), newFakeCache())

		_, err := svc.Login(ctx, dto.LoginDTO{Email: "ghost@company.com", Password: "x"})
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials))

		_, err = svc.Login(ctx, dto.LoginDTO{Email: "alice.cooper@company.com", Password: "wrong"})
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials))
	})

	t.Run("отключенная учетная запись", func(t *testing.T) {
		disabled := activeUser()
		disabled.IsActive = false
		svc := newAuthService(newFakeUserRepo(disabled), newFakeCache())

		_, err := svc.Login(ctx, dto.LoginDTO{Email: disabled.Email, Password: disabled.Password})
		assert.True(t, apperrors.Is(err, apperrors.ErrAccountDisabled))
	})

	t.Run("после лимита неудачных попыток вход блокируется", func(t *testing.T) {
		cache := newFakeCache()
		svc := newAuthService(newFakeUserRepo(activeUser()), cache)

		for i := 0; i < 3; i++ {
			_, err := svc.Login(ctx, dto.LoginDTO{Email: "alice.cooper@company.com", Password: "wrong"})
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials))
		}

		// Четвертая попытка отбивается еще до проверки пароля.
		_, err := svc.Login(ctx, dto.LoginDTO{Email: "alice.cooper@company.com", Password: "user123"})
		assert.True(t, apperrors.Is(err, apperrors.ErrTooManyAttempts))
	})

	t.Run("успешный вход сбрасывает счетчик попыток", func(t *testing.T) {
		cache := newFakeCache()
		svc := newAuthService(newFakeUserRepo(activeUser()), cache)

		_, err := svc.Login(ctx, dto.LoginDTO{Email: "alice.cooper@company.com", Password: "wrong"})
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials))

		_, err = svc.Login(ctx, dto.LoginDTO{Email: "alice.cooper@company.com", Password: "user123"})
		require.NoError(t, err)

		_, ok := cache.values["login-attempts:alice.cooper@company.com"]
		assert.False(t, ok, "счетчик должен быть удален")
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("заполняются сгенерированные поля и значения по умолчанию", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		svc := newAuthService(userRepo, newFakeCache())

		user, err := svc.Register(ctx, dto.AutoRegisterDTO{
			Email:    "new.manager@company.com",
			Password: "secret",
		})
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(user.UserID, "USR-"))
		assert.True(t, strings.HasPrefix(user.Username, "new.manager_"))
		assert.Equal(t, entities.RoleManager, user.Role)
		assert.Equal(t, "General", user.Department)
		assert.True(t, user.IsActive)
	})

	t.Run("повторный email отдается как конфликт", func(t *testing.T) {
		svc := newAuthService(newFakeUserRepo(activeUser()), newFakeCache())

		_, err := svc.Register(ctx, dto.AutoRegisterDTO{Email: "alice.cooper@company.com", Password: "x"})
		require.Error(t, err)
		assert.Equal(t, 409, apperrors.StatusCode(err))
	})
}
