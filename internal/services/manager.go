package services

import (
	"context"
	"time"

	"approval-system/internal/entities"
	"approval-system/internal/repositories"
	apperrors "approval-system/pkg/errors"

	"go.uber.org/zap"
)

const (
	managerResolveCachePrefix = "manager-resolve:"
	managerResolveCacheTTL    = 10 * time.Minute
)

type ManagerServiceInterface interface {
	Resolve(ctx context.Context, inputID string) string
	List(ctx context.Context, emailFilter string) ([]entities.Manager, error)
	Ensure(ctx context.Context, managerID, managerName string) (*entities.Manager, error)
}

// ManagerService совмещает справочник менеджеров и резолвер ссылок.
// Резолвер приводит "ссылку на менеджера" (id менеджера, id пользователя
// или уже корректное значение) к каноничному managerId. Любая ошибка
// резолвинга проглатывается: возвращается исходное значение, а ссылочную
// целостность дальше проверит внешний ключ.
type ManagerService struct {
	managerRepo repositories.ManagerRepositoryInterface
	userRepo    repositories.UserRepositoryInterface
	cacheRepo   repositories.CacheRepositoryInterface
	logger      *zap.Logger
}

func NewManagerService(
	managerRepo repositories.ManagerRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) ManagerServiceInterface {
	return &ManagerService{
		managerRepo: managerRepo,
		userRepo:    userRepo,
		cacheRepo:   cacheRepo,
		logger:      logger,
	}
}

func (s *ManagerService) Resolve(ctx context.Context, inputID string) string {
	if inputID == "" {
		return inputID
	}

	if s.cacheRepo != nil {
		if cached, err := s.cacheRepo.Get(ctx, managerResolveCachePrefix+inputID); err == nil && cached != "" {
			return cached
		}
	}

	resolved := s.resolve(ctx, inputID)

	if s.cacheRepo != nil {
		if err := s.cacheRepo.Set(ctx, managerResolveCachePrefix+inputID, resolved, managerResolveCacheTTL); err != nil {
			s.logger.Warn("не удалось закешировать результат резолвинга менеджера",
				zap.String("inputId", inputID), zap.Error(err))
		}
	}
	return resolved
}

func (s *ManagerService) resolve(ctx context.Context, inputID string) string {
	// Быстрый путь: ссылка уже указывает на менеджера.
	if _, err := s.managerRepo.FindByID(ctx, inputID); err == nil {
		return inputID
	} else if !apperrors.Is(err, apperrors.ErrNotFound) {
		s.logger.Warn("резолвинг менеджера: ошибка поиска менеджера",
			zap.String("inputId", inputID), zap.Error(err))
		return inputID
	}

	user, err := s.userRepo.FindByUserID(ctx, inputID)
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn("резолвинг менеджера: ошибка поиска пользователя",
				zap.String("inputId", inputID), zap.Error(err))
		}
		// Пользователя нет - отдаем вход как есть, FK скажет свое слово.
		return inputID
	}

	// Менеджер мог быть заведен под другим id, но с тем же email.
	if user.Email != "" {
		if byEmail, err := s.managerRepo.FindByEmail(ctx, user.Email); err == nil {
			return byEmail.ManagerID
		} else if !apperrors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn("резолвинг менеджера: ошибка поиска по email",
				zap.String("email", user.Email), zap.Error(err))
			return inputID
		}
	}

	name := firstNonEmpty(user.FirstName, user.Username, user.Email, user.UserID)
	if _, err := s.managerRepo.Ensure(ctx, user.UserID, name); err != nil {
		s.logger.Warn("резолвинг менеджера: не удалось создать менеджера из пользователя",
			zap.String("userId", user.UserID), zap.Error(err))
		return inputID
	}
	return user.UserID
}

func (s *ManagerService) List(ctx context.Context, emailFilter string) ([]entities.Manager, error) {
	return s.managerRepo.List(ctx, emailFilter)
}

func (s *ManagerService) Ensure(ctx context.Context, managerID, managerName string) (*entities.Manager, error) {
	return s.managerRepo.Ensure(ctx, managerID, managerName)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
