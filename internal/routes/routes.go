package routes

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"approval-system/internal/controllers"
	"approval-system/internal/repositories"
	"approval-system/internal/services"
	"approval-system/pkg/config"
	"approval-system/pkg/eventbus"
	"approval-system/pkg/filestorage"
	"approval-system/pkg/service"
)

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) {
	logger.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")

	// --- ОБЩИЕ КОМПОНЕНТЫ ---
	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Uploads.Root)
	if err != nil {
		logger.Fatal("не удалось создать файловое хранилище", zap.Error(err))
	}
	txManager := repositories.NewTxManager(dbConn)
	bus := eventbus.New(logger)
	subscribeAuditLog(bus, logger)

	// --- РЕПОЗИТОРИИ ---
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	managerRepo := repositories.NewManagerRepository(dbConn)
	userRepo := repositories.NewUserRepository(dbConn)
	travelRepo := repositories.NewTravelRequestRepository(dbConn)
	vacationRepo := repositories.NewVacationRequestRepository(dbConn)
	equipmentRepo := repositories.NewEquipmentRequestRepository(dbConn)
	availabilityRepo := repositories.NewAvailabilityRepository(dbConn)
	reportRepo := repositories.NewReportRepository(dbConn)

	// --- СЕРВИСЫ ---
	managerService := services.NewManagerService(managerRepo, userRepo, cacheRepo, logger)
	authService := services.NewAuthService(userRepo, cacheRepo, jwtSvc, &cfg.Auth, logger)
	travelService := services.NewTravelRequestService(txManager, travelRepo, managerService, fileStorage, bus, &cfg.Uploads, logger)
	vacationService := services.NewVacationRequestService(txManager, vacationRepo, availabilityRepo, managerService, fileStorage, bus, logger)
	equipmentService := services.NewEquipmentRequestService(txManager, equipmentRepo, managerService, bus, &cfg.Uploads, logger)
	availabilityService := services.NewAvailabilityService(availabilityRepo)
	uploadService := services.NewUploadService(fileStorage, logger)
	reportService := services.NewReportService(reportRepo)
	feedService := services.NewRequestFeedService(travelRepo, equipmentRepo)

	// --- КОНТРОЛЛЕРЫ И МАРШРУТЫ ---
	runAuthRouter(api, controllers.NewAuthController(authService, logger))
	runManagerRouter(api, controllers.NewManagerController(managerService, logger))
	runUploadRouter(api,
		controllers.NewUploadController(uploadService, logger),
		controllers.NewFileController(uploadService, logger))
	runTravelRouter(api, controllers.NewTravelRequestController(travelService, logger))
	runVacationRouter(api, controllers.NewVacationRequestController(vacationService, logger))
	runEquipmentRouter(api, controllers.NewEquipmentRequestController(equipmentService, logger))
	runAvailabilityRouter(api, controllers.NewAvailabilityController(availabilityService, logger))
	runReportRouter(api, controllers.NewReportController(reportService, logger))
	runFeedRouter(api, controllers.NewRequestFeedController(feedService, logger))

	logger.Info("InitRouter: Создание маршрутов завершено")
}

// subscribeAuditLog пишет события жизненного цикла заявок в лог.
// Это и есть publish-hook: внешней доставки уведомлений нет.
func subscribeAuditLog(bus *eventbus.Bus, logger *zap.Logger) {
	bus.Subscribe(services.EventRequestCreated, func(ctx context.Context, event eventbus.Event) error {
		if e, ok := event.(services.RequestCreatedEvent); ok {
			logger.Info("заявка создана",
				zap.String("requestId", e.RequestID),
				zap.String("type", e.RequestType))
		}
		return nil
	})
	bus.Subscribe(services.EventRequestStatusChanged, func(ctx context.Context, event eventbus.Event) error {
		if e, ok := event.(services.RequestStatusChangedEvent); ok {
			logger.Info("статус заявки изменен",
				zap.String("requestId", e.RequestID),
				zap.String("type", e.RequestType),
				zap.String("status", e.Status))
		}
		return nil
	})
}
