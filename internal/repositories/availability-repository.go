package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"approval-system/internal/entities"
	apperrors "approval-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AvailabilityRepositoryInterface interface {
	FindExactPeriod(ctx context.Context, userID string, start, end time.Time) (*entities.Availability, error)
	FindOverlapping(ctx context.Context, userID string, start, end time.Time) ([]entities.Availability, error)
	Create(ctx context.Context, availability *entities.Availability) error
	ListByUser(ctx context.Context, userID string) ([]entities.Availability, error)
}

type AvailabilityRepository struct {
	storage *pgxpool.Pool
}

func NewAvailabilityRepository(storage *pgxpool.Pool) AvailabilityRepositoryInterface {
	return &AvailabilityRepository{storage: storage}
}

const availabilityColumns = `id, user_id, start_date, end_date, availability_type, reason, created_at`

func scanAvailability(row pgx.Row) (*entities.Availability, error) {
	var a entities.Availability
	err := row.Scan(&a.ID, &a.UserID, &a.StartDate, &a.EndDate,
		&a.AvailabilityType, &a.Reason, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования недоступности: %w", err)
	}
	return &a, nil
}

// FindExactPeriod ищет запись с точным совпадением периода. Используется
// для идемпотентного создания при одобрении отпуска.
func (r *AvailabilityRepository) FindExactPeriod(ctx context.Context, userID string, start, end time.Time) (*entities.Availability, error) {
	row := r.storage.QueryRow(ctx, `
		SELECT `+availabilityColumns+` FROM availabilities
		WHERE user_id = $1 AND start_date = $2 AND end_date = $3
		LIMIT 1`,
		userID, start, end)
	return scanAvailability(row)
}

// FindOverlapping возвращает записи, пересекающиеся с периодом.
// Пересечение: start_date <= конец И end_date >= начало.
func (r *AvailabilityRepository) FindOverlapping(ctx context.Context, userID string, start, end time.Time) ([]entities.Availability, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT `+availabilityColumns+` FROM availabilities
		WHERE user_id = $1 AND start_date <= $3 AND end_date >= $2
		ORDER BY start_date`,
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска пересечений недоступности: %w", err)
	}
	defer rows.Close()
	return collectAvailabilities(rows)
}

func (r *AvailabilityRepository) Create(ctx context.Context, availability *entities.Availability) error {
	err := r.storage.QueryRow(ctx, `
		INSERT INTO availabilities (id, user_id, start_date, end_date, availability_type, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		availability.ID, availability.UserID, availability.StartDate, availability.EndDate,
		availability.AvailabilityType, availability.Reason,
	).Scan(&availability.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания недоступности: %w", err)
	}
	return nil
}

func (r *AvailabilityRepository) ListByUser(ctx context.Context, userID string) ([]entities.Availability, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT `+availabilityColumns+` FROM availabilities
		WHERE user_id = $1 ORDER BY start_date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка недоступности: %w", err)
	}
	defer rows.Close()
	return collectAvailabilities(rows)
}

func collectAvailabilities(rows pgx.Rows) ([]entities.Availability, error) {
	result := make([]entities.Availability, 0)
	for rows.Next() {
		var a entities.Availability
		if err := rows.Scan(&a.ID, &a.UserID, &a.StartDate, &a.EndDate,
			&a.AvailabilityType, &a.Reason, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования недоступности в списке: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}
