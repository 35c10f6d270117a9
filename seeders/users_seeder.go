package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// КЛЮЧИК: true - обновить данные, если пользователь с таким user_id уже существует.
// false - пропустить (ничего не делать).
const updateIfExists_Users = false

func seedUsers(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'users'...")

	var query string
	if updateIfExists_Users {
		query = `INSERT INTO users (id, user_id, username, email, password, first_name, last_name, role, department, is_active)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE)
				 ON CONFLICT (user_id) DO UPDATE SET
					username = EXCLUDED.username, email = EXCLUDED.email,
					first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name,
					role = EXCLUDED.role, department = EXCLUDED.department;`
		log.Println("    - Стратегия: Обновление существующих пользователей (UPSERT)")
	} else {
		query = `INSERT INTO users (id, user_id, username, email, password, first_name, last_name, role, department, is_active)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE)
				 ON CONFLICT (user_id) DO NOTHING;`
		log.Println("    - Стратегия: Пропуск существующих пользователей (IGNORE)")
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, u := range usersData {
		if _, err := tx.Exec(ctx, query,
			uuid.NewString(), u.UserID, u.Username, u.Email, u.Password,
			u.FirstName, u.LastName, u.Role, u.Department,
		); err != nil {
			log.Printf("Ошибка при вставке пользователя '%s': %v", u.Username, err)
			return err
		}
	}

	return tx.Commit(ctx)
}

func seedManagers(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'managers'...")

	query := `INSERT INTO managers (manager_id, manager_name, email, department)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (manager_id) DO NOTHING;`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, u := range usersData {
		if u.Role != "MANAGER" {
			continue
		}
		name := fmt.Sprintf("%s %s", u.FirstName, u.LastName)
		if _, err := tx.Exec(ctx, query, u.UserID, name, u.Email, u.Department); err != nil {
			log.Printf("Ошибка при вставке менеджера '%s': %v", name, err)
			return err
		}
	}

	return tx.Commit(ctx)
}
