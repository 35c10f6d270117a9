package main

import (
	"flag"
	"log"

	"approval-system/pkg/config"
	"approval-system/pkg/database/postgresql"
	"approval-system/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runUsers := flag.Bool("users", false, "Запустить создание пользователей и менеджеров")
	runAll := flag.Bool("all", false, "Запустить все сидеры (эквивалентно -users)")

	flag.Parse()

	if !*runUsers && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed/main.go -users")
		log.Println("  go run ./seeders/cmd/seed/main.go -all")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	log.Println("📦 Используется DSN:", cfg.Postgres.DSN)
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	log.Println("======================================================")

	if *runAll || *runUsers {
		seeders.SeedUsersAndManagers(dbPool)
		log.Println("======================================================")
	}

	log.Println("✅ Все указанные операции сидирования успешно завершены.")
	log.Println("======================================================")
}
