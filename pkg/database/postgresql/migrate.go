package postgresql

import (
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrate применяет goose-миграции из встроенной файловой системы.
// Используется отдельное database/sql подключение: goose не работает
// напрямую с pgxpool.
func Migrate(dsn string, migrations fs.FS) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("не удалось открыть подключение для миграций: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose: неизвестный диалект: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("ошибка применения миграций: %w", err)
	}
	return nil
}
