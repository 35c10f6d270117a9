package services

import (
	"context"
	"strconv"
	"testing"
	"time"

	"approval-system/internal/entities"
	apperrors "approval-system/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- In-memory подмены репозиториев для резолвера ---

type fakeManagerRepo struct {
	managers    map[string]*entities.Manager
	ensureCalls int
}

func newFakeManagerRepo(managers ...*entities.Manager) *fakeManagerRepo {
	repo := &fakeManagerRepo{managers: make(map[string]*entities.Manager)}
	for _, m := range managers {
		repo.managers[m.ManagerID] = m
	}
	return repo
}

func (r *fakeManagerRepo) FindByID(_ context.Context, managerID string) (*entities.Manager, error) {
	if m, ok := r.managers[managerID]; ok {
		return m, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeManagerRepo) FindByEmail(_ context.Context, email string) (*entities.Manager, error) {
	for _, m := range r.managers {
		if m.Email != nil && *m.Email == email {
			return m, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeManagerRepo) Create(_ context.Context, manager *entities.Manager) error {
	r.managers[manager.ManagerID] = manager
	return nil
}

func (r *fakeManagerRepo) Ensure(_ context.Context, managerID, managerName string) (*entities.Manager, error) {
	r.ensureCalls++
	if m, ok := r.managers[managerID]; ok {
		return m, nil
	}
	m := &entities.Manager{ManagerID: managerID, ManagerName: managerName}
	r.managers[managerID] = m
	return m, nil
}

func (r *fakeManagerRepo) List(_ context.Context, _ string) ([]entities.Manager, error) {
	out := make([]entities.Manager, 0, len(r.managers))
	for _, m := range r.managers {
		out = append(out, *m)
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[string]*entities.User
}

func newFakeUserRepo(users ...*entities.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*entities.User)}
	for _, u := range users {
		repo.users[u.UserID] = u
	}
	return repo
}

func (r *fakeUserRepo) FindByUserID(_ context.Context, userID string) (*entities.User, error) {
	if u, ok := r.users[userID]; ok {
		return u, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *entities.User) (*entities.User, error) {
	r.users[user.UserID] = user
	return user, nil
}

func (r *fakeUserRepo) List(_ context.Context, _ string) ([]entities.User, error) {
	out := make([]entities.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

type fakeCache struct {
	values map[string]string
}

func newFakeCache() *fakeCache { return &fakeCache{values: make(map[string]string)} }

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if s, ok := value.(string); ok {
		c.values[key] = s
	}
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	if v, ok := c.values[key]; ok {
		return v, nil
	}
	return "", apperrors.ErrNotFound
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.values, k)
	}
	return nil
}

func (c *fakeCache) Incr(_ context.Context, key string) (int64, error) {
	n, _ := strconv.Atoi(c.values[key])
	n++
	c.values[key] = strconv.Itoa(n)
	return int64(n), nil
}

func (c *fakeCache) Expire(_ context.Context, _ string, _ time.Duration) (bool, error) {
	return true, nil
}

// --- Тесты резолвера ---

func TestManagerService_Resolve(t *testing.T) {
	ctx := context.Background()
	email := "john.smith@company.com"

	t.Run("пустая ссылка возвращается как есть", func(t *testing.T) {
		svc := NewManagerService(newFakeManagerRepo(), newFakeUserRepo(), newFakeCache(), zap.NewNop())
		assert.Equal(t, "", svc.Resolve(ctx, ""))
	})

	t.Run("существующий менеджер не трогается", func(t *testing.T) {
		managerRepo := newFakeManagerRepo(&entities.Manager{ManagerID: "MGR001", ManagerName: "John Smith"})
		svc := NewManagerService(managerRepo, newFakeUserRepo(), newFakeCache(), zap.NewNop())

		assert.Equal(t, "MGR001", svc.Resolve(ctx, "MGR001"))
		assert.Zero(t, managerRepo.ensureCalls)
	})

	t.Run("пользователь с совпадающим email маппится на менеджера", func(t *testing.T) {
		managerRepo := newFakeManagerRepo(&entities.Manager{ManagerID: "MGR001", ManagerName: "John Smith", Email: &email})
		userRepo := newFakeUserRepo(&entities.User{UserID: "USR042", Username: "john.smith", Email: email})
		svc := NewManagerService(managerRepo, userRepo, newFakeCache(), zap.NewNop())

		assert.Equal(t, "MGR001", svc.Resolve(ctx, "USR042"))
	})

	t.Run("пользователь без менеджера дорегистрируется", func(t *testing.T) {
		managerRepo := newFakeManagerRepo()
		userRepo := newFakeUserRepo(&entities.User{
			UserID: "USR007", Username: "alice.cooper", Email: "alice.cooper@company.com", FirstName: "Alice",
		})
		svc := NewManagerService(managerRepo, userRepo, newFakeCache(), zap.NewNop())

		resolved := svc.Resolve(ctx, "USR007")
		assert.Equal(t, "USR007", resolved)
		assert.Equal(t, 1, managerRepo.ensureCalls)

		created, err := managerRepo.FindByID(ctx, "USR007")
		require.NoError(t, err)
		assert.Equal(t, "Alice", created.ManagerName, "имя берется из firstName")
	})

	t.Run("неизвестная ссылка возвращается как есть", func(t *testing.T) {
		svc := NewManagerService(newFakeManagerRepo(), newFakeUserRepo(), newFakeCache(), zap.NewNop())
		assert.Equal(t, "GHOST-1", svc.Resolve(ctx, "GHOST-1"))
	})

	t.Run("повторный резолвинг идет из кеша", func(t *testing.T) {
		managerRepo := newFakeManagerRepo(&entities.Manager{ManagerID: "MGR002", ManagerName: "Sarah Johnson"})
		cache := newFakeCache()
		svc := NewManagerService(managerRepo, newFakeUserRepo(), cache, zap.NewNop())

		assert.Equal(t, "MGR002", svc.Resolve(ctx, "MGR002"))
		assert.Equal(t, "MGR002", cache.values["manager-resolve:MGR002"])

		// Подменяем кеш и убеждаемся, что ответ берется оттуда.
		cache.values["manager-resolve:MGR002"] = "MGR999"
		assert.Equal(t, "MGR999", svc.Resolve(ctx, "MGR002"))
	})
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "a", firstNonEmpty("a", "b"))
	assert.Equal(t, "b", firstNonEmpty("", "b"))
	assert.Equal(t, "", firstNonEmpty("", ""))
}
