package repositories

import (
	"context"
	"errors"
	"fmt"

	"approval-system/internal/entities"
	apperrors "approval-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ManagerRepositoryInterface interface {
	FindByID(ctx context.Context, managerID string) (*entities.Manager, error)
	FindByEmail(ctx context.Context, email string) (*entities.Manager, error)
	Create(ctx context.Context, manager *entities.Manager) error
	Ensure(ctx context.Context, managerID, managerName string) (*entities.Manager, error)
	List(ctx context.Context, emailFilter string) ([]entities.Manager, error)
}

type ManagerRepository struct {
	storage *pgxpool.Pool
}

func NewManagerRepository(storage *pgxpool.Pool) ManagerRepositoryInterface {
	return &ManagerRepository{storage: storage}
}

const managerColumns = `manager_id, manager_name, email, department, created_at, updated_at`

func scanManager(row pgx.Row) (*entities.Manager, error) {
	var m entities.Manager
	err := row.Scan(&m.ManagerID, &m.ManagerName, &m.Email, &m.Department, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования менеджера: %w", err)
	}
	return &m, nil
}

func (r *ManagerRepository) FindByID(ctx context.Context, managerID string) (*entities.Manager, error) {
	row := r.storage.QueryRow(ctx,
		`SELECT `+managerColumns+` FROM managers WHERE manager_id = $1`, managerID)
	return scanManager(row)
}

func (r *ManagerRepository) FindByEmail(ctx context.Context, email string) (*entities.Manager, error) {
	row := r.storage.QueryRow(ctx,
		`SELECT `+managerColumns+` FROM managers WHERE email = $1 LIMIT 1`, email)
	return scanManager(row)
}

func (r *ManagerRepository) Create(ctx context.Context, manager *entities.Manager) error {
	_, err := r.storage.Exec(ctx, `
		INSERT INTO managers (manager_id, manager_name, email, department)
		VALUES ($1, $2, $3, $4)`,
		manager.ManagerID, manager.ManagerName, manager.Email, manager.Department,
	)
	if err != nil {
		return fmt.Errorf("ошибка создания менеджера: %w", err)
	}
	return nil
}

// Ensure возвращает менеджера, создавая запись при первом обращении.
// Создание идемпотентно по идентификатору: гонка двух вызовов
// разрешается через ON CONFLICT DO NOTHING.
func (r *ManagerRepository) Ensure(ctx context.Context, managerID, managerName string) (*entities.Manager, error) {
	existing, err := r.FindByID(ctx, managerID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if managerName == "" {
		managerName = managerID
	}
	_, err = r.storage.Exec(ctx, `
		INSERT INTO managers (manager_id, manager_name)
		VALUES ($1, $2)
		ON CONFLICT (manager_id) DO NOTHING`,
		managerID, managerName,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания менеджера: %w", err)
	}

	return r.FindByID(ctx, managerID)
}

func (r *ManagerRepository) List(ctx context.Context, emailFilter string) ([]entities.Manager, error) {
	query := `
		SELECT m.manager_id, m.manager_name, m.email, m.department, m.created_at, m.updated_at,
			(SELECT COUNT(*) FROM travel_requests t WHERE t.manager_id = m.manager_id),
			(SELECT COUNT(*) FROM equipment_requests e WHERE e.manager_id = m.manager_id)
		FROM managers m`
	args := []any{}
	if emailFilter != "" {
		query += ` WHERE m.email = $1`
		args = append(args, emailFilter)
	}
	query += ` ORDER BY m.manager_name`

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка менеджеров: %w", err)
	}
	defer rows.Close()

	managers := make([]entities.Manager, 0)
	for rows.Next() {
		var m entities.Manager
		if err := rows.Scan(&m.ManagerID, &m.ManagerName, &m.Email, &m.Department,
			&m.CreatedAt, &m.UpdatedAt, &m.TravelRequestCount, &m.EquipmentRequestCount); err != nil {
			return nil, fmt.Errorf("ошибка сканирования менеджера в списке: %w", err)
		}
		managers = append(managers, m)
	}
	return managers, rows.Err()
}
