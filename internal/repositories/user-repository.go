package repositories

import (
	"context"
	"errors"
	"fmt"

	"approval-system/internal/entities"
	apperrors "approval-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepositoryInterface interface {
	FindByUserID(ctx context.Context, userID string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
	List(ctx context.Context, role string) ([]entities.User, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
}

func NewUserRepository(storage *pgxpool.Pool) UserRepositoryInterface {
	return &UserRepository{storage: storage}
}

const userColumns = `id, user_id, username, email, password, first_name, last_name,
	role, department, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(&u.ID, &u.UserID, &u.Username, &u.Email, &u.Password,
		&u.FirstName, &u.LastName, &u.Role, &u.Department, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования пользователя: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) FindByUserID(ctx context.Context, userID string) (*entities.User, error) {
	row := r.storage.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE user_id = $1`, userID)
	return scanUser(row)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	row := r.storage.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	row := r.storage.QueryRow(ctx, `
		INSERT INTO users (id, user_id, username, email, password,
			first_name, last_name, role, department, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+userColumns,
		user.ID, user.UserID, user.Username, user.Email, user.Password,
		user.FirstName, user.LastName, user.Role, user.Department, user.IsActive,
	)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperrors.NewHttpError(409, "Пользователь с таким email уже существует", apperrors.ErrDuplicateRequest, nil)
		}
		return nil, fmt.Errorf("ошибка создания пользователя: %w", err)
	}
	return created, nil
}

func (r *UserRepository) List(ctx context.Context, role string) ([]entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	args := []any{}
	if role != "" {
		query += ` WHERE role = $1`
		args = append(args, role)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка пользователей: %w", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		var u entities.User
		if err := rows.Scan(&u.ID, &u.UserID, &u.Username, &u.Email, &u.Password,
			&u.FirstName, &u.LastName, &u.Role, &u.Department, &u.IsActive,
			&u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования пользователя в списке: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
