// Файл: main.go

package main

import (
	"context"
	"net/http"
	"path/filepath"

	"approval-system/internal/routes"
	"approval-system/migrations"
	"approval-system/pkg/config"
	"approval-system/pkg/database/postgresql"
	apperrors "approval-system/pkg/errors"
	applogger "approval-system/pkg/logger"
	"approval-system/pkg/service"
	"approval-system/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// 1. СНАЧАЛА создаем базовые экземпляры Echo и логгера
	e := echo.New()
	logger := applogger.NewLogger()

	// 2. Инициализируем конфиг (он сам подхватывает .env)
	cfg := config.New()

	// 3. ПОСЛЕ этого настраиваем middleware, так как они используют logger и echo
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Внутренняя ошибка сервера", err, nil)
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{"Content-Disposition"},
	}))

	// 4. Настраиваем статическую раздачу загруженных файлов
	absPath, err := filepath.Abs(cfg.Uploads.Root)
	if err != nil {
		logger.Fatal("не удалось получить абсолютный путь к каталогу загрузок", zap.Error(err))
	}
	e.Static("/uploads", absPath)

	// 5. Инициализируем валидатор
	v := validator.New()
	e.Validator = utils.NewValidator(v)

	// 6. Подключаемся к базам данных и другим сервисам
	if err := postgresql.Migrate(cfg.Postgres.DSN, migrations.FS); err != nil {
		logger.Fatal("не удалось применить миграции", zap.Error(err))
	}

	dbConn := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbConn.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Fatal("не удалось подключиться к Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	// 7. Инициализируем сервисы
	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)

	// 8. Инициализируем роуты
	routes.InitRouter(e, dbConn, redisClient, jwtSvc, logger, cfg)

	// 9. Запускаем сервер
	logger.Info("🚀 Сервер запущен", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Ошибка запуска сервера", zap.Error(err))
	}
}
