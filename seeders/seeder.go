package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedUsersAndManagers создает стартовый набор пользователей и менеджеров.
// Повторный запуск безопасен: существующие записи пропускаются.
func SeedUsersAndManagers(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Запуск наполнения пользователей и менеджеров...")

	if err := seedUsers(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения Пользователей (Users): %v", err)
	}
	if err := seedManagers(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения Менеджеров (Managers): %v", err)
	}
	log.Println("✅ Наполнение пользователей и менеджеров завершено!")
}
