package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"approval-system/internal/dto"
	"approval-system/internal/entities"
	"approval-system/internal/repositories"
	"approval-system/pkg/config"
	apperrors "approval-system/pkg/errors"
	"approval-system/pkg/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const loginAttemptsCachePrefix = "login-attempts:"

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error)
	Register(ctx context.Context, payload dto.AutoRegisterDTO) (*entities.User, error)
	ListUsers(ctx context.Context, role string) ([]entities.User, error)
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	cacheRepo  repositories.CacheRepositoryInterface
	jwtService service.JWTService
	cfg        *config.AuthConfig
	logger     *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	cfg *config.AuthConfig,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:   userRepo,
		cacheRepo:  cacheRepo,
		jwtService: jwtService,
		cfg:        cfg,
		logger:     logger,
	}
}

// Login сверяет пароль прямым сравнением - унаследованный контракт,
// не элемент безопасности. Неудачные попытки считаются в Redis, после
// лимита вход блокируется на время LockoutDuration.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error) {
	logger := s.logger.With(zap.String("email", payload.Email))

	if s.isLockedOut(ctx, payload.Email) {
		return nil, apperrors.ErrTooManyAttempts
	}

	user, err := s.userRepo.FindByEmail(ctx, payload.Email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			s.registerFailedAttempt(ctx, payload.Email)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Password != payload.Password {
		s.registerFailedAttempt(ctx, payload.Email)
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.cacheRepo.Del(ctx, loginAttemptsCachePrefix+payload.Email); err != nil {
		logger.Warn("не удалось сбросить счетчик попыток входа", zap.Error(err))
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(user.UserID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации токенов: %w", err)
	}

	return &dto.LoginResponseDTO{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthService) isLockedOut(ctx context.Context, email string) bool {
	raw, err := s.cacheRepo.Get(ctx, loginAttemptsCachePrefix+email)
	if err != nil {
		return false
	}
	attempts, err := strconv.Atoi(raw)
	return err == nil && attempts >= s.cfg.MaxLoginAttempts
}

func (s *AuthService) registerFailedAttempt(ctx context.Context, email string) {
	key := loginAttemptsCachePrefix + email
	attempts, err := s.cacheRepo.Incr(ctx, key)
	if err != nil {
		s.logger.Warn("не удалось увеличить счетчик попыток входа",
			zap.String("email", email), zap.Error(err))
		return
	}
	if attempts == 1 {
		if _, err := s.cacheRepo.Expire(ctx, key, s.cfg.LockoutDuration); err != nil {
			s.logger.Warn("не удалось установить TTL счетчика попыток входа",
				zap.String("email", email), zap.Error(err))
		}
	}
}

// Register заводит учетную запись с генерируемыми userId и username.
// Конфликт по email отдается как 409.
func (s *AuthService) Register(ctx context.Context, payload dto.AutoRegisterDTO) (*entities.User, error) {
	if _, err := s.userRepo.FindByEmail(ctx, payload.Email); err == nil {
		return nil, apperrors.NewHttpError(409, "Пользователь с таким email уже существует", apperrors.ErrDuplicateRequest, nil)
	} else if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	millis := time.Now().UnixMilli()
	emailPrefix, _, _ := strings.Cut(payload.Email, "@")

	role := payload.Role
	if role == "" {
		role = entities.RoleManager
	}
	department := payload.Department
	if department == "" {
		department = "General"
	}

	user := &entities.User{
		ID:         uuid.NewString(),
		UserID:     fmt.Sprintf("USR-%d", millis),
		Username:   fmt.Sprintf("%s_%d", emailPrefix, millis),
		Email:      payload.Email,
		Password:   payload.Password,
		FirstName:  payload.FirstName,
		LastName:   payload.LastName,
		Role:       role,
		Department: department,
		IsActive:   true,
	}
	return s.userRepo.Create(ctx, user)
}

func (s *AuthService) ListUsers(ctx context.Context, role string) ([]entities.User, error) {
	return s.userRepo.List(ctx, role)
}
