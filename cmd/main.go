package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	assignUnitHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/assign_unit"
	cancelReservationHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/cancel_reservation"
	createAddonHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/create_addon"
	createModelHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/create_model"
	createReservationHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/create_reservation"
	createUnitHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/create_unit"
	deleteAddonHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/delete_addon"
	getBranchReservationsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_branch_reservations"
	getReservationHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_reservation"
	getUserReservationsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_user_reservations"
	listAddonsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/list_addons"
	returnReservationHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/return_reservation"
	searchAvailabilityHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/search_availability"
	updateUnitStateHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/update_unit_state"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/config"
	addonRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/addon"
	branchRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/branch"
	reservationRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/reservation"
	unitRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/unit"
	modelRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/vehiclemodel"
	userServiceClient "github.com/m04kA/SMC-RentalService/internal/integrations/userservice"
	fleetService "github.com/m04kA/SMC-RentalService/internal/service/fleet"
	reservationsService "github.com/m04kA/SMC-RentalService/internal/service/reservations"
	assignUnitUC "github.com/m04kA/SMC-RentalService/internal/usecase/assign_unit"
	cancelReservationUC "github.com/m04kA/SMC-RentalService/internal/usecase/cancel_reservation"
	createReservationUC "github.com/m04kA/SMC-RentalService/internal/usecase/create_reservation"
	returnReservationUC "github.com/m04kA/SMC-RentalService/internal/usecase/return_reservation"
	searchAvailabilityUC "github.com/m04kA/SMC-RentalService/internal/usecase/search_availability"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/metrics"
	"github.com/m04kA/SMC-RentalService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-RentalService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционного клиента
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		unitRepository        *unitRepo.Repository
		modelRepository       *modelRepo.Repository
		branchRepository      *branchRepo.Repository
		addonRepository       *addonRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		unitRepository = unitRepo.NewRepository(wrappedDB)
		modelRepository = modelRepo.NewRepository(wrappedDB)
		branchRepository = branchRepo.NewRepository(wrappedDB)
		addonRepository = addonRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		unitRepository = unitRepo.NewRepository(db)
		modelRepository = modelRepo.NewRepository(db)
		branchRepository = branchRepo.NewRepository(db)
		addonRepository = addonRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		userClient,
		log,
	)
	fleetSvc := fleetService.NewService(
		modelRepository,
		unitRepository,
		branchRepository,
		addonRepository,
		reservationRepository,
		userClient,
		txMgr,
		log,
	)

	// Инициализируем use cases
	searchAvailabilityUseCase := searchAvailabilityUC.NewUseCase(
		unitRepository,
		reservationRepository,
		modelRepository,
		branchRepository,
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		unitRepository,
		modelRepository,
		branchRepository,
		txMgr,
		log,
	)

	assignUnitUseCase := assignUnitUC.NewUseCase(
		reservationRepository,
		unitRepository,
		addonRepository,
		userClient,
		txMgr,
		log,
	)

	cancelReservationUseCase := cancelReservationUC.NewUseCase(
		reservationRepository,
		modelRepository,
		userClient,
		txMgr,
		log,
	)

	returnReservationUseCase := returnReservationUC.NewUseCase(
		reservationRepository,
		userClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	searchAvailability := searchAvailabilityHandler.NewHandler(searchAvailabilityUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	assignUnit := assignUnitHandler.NewHandler(assignUnitUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(cancelReservationUseCase, log)
	returnReservation := returnReservationHandler.NewHandler(returnReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationsSvc, log)
	getBranchReservations := getBranchReservationsHandler.NewHandler(reservationsSvc, log)
	createModel := createModelHandler.NewHandler(fleetSvc, log)
	createUnit := createUnitHandler.NewHandler(fleetSvc, log)
	updateUnitState := updateUnitStateHandler.NewHandler(fleetSvc, log)
	createAddon := createAddonHandler.NewHandler(fleetSvc, log)
	deleteAddon := deleteAddonHandler.NewHandler(fleetSvc, log)
	listAddons := listAddonsHandler.NewHandler(fleetSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Поиск доступных моделей в филиале на период
	api.HandleFunc("/branches/{branchId}/availability",
		searchAvailability.Handle).Methods(http.MethodGet)

	// Каталог дополнительных услуг
	api.HandleFunc("/fleet/addons", listAddons.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Резервации ---
	// Создание резервации
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение резервации по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Выдача автомобиля по резервации (для сотрудников)
	protected.HandleFunc("/reservations/{reservationId}/assign", assignUnit.Handle).Methods(http.MethodPatch)

	// Отмена резервации
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// Возврат автомобиля (для сотрудников)
	protected.HandleFunc("/reservations/{reservationId}/return", returnReservation.Handle).Methods(http.MethodPatch)

	// История резерваций клиента
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Управление филиалом (для сотрудников) ---
	// Список резерваций филиала
	protected.HandleFunc("/branches/{branchId}/reservations", getBranchReservations.Handle).Methods(http.MethodGet)

	// --- Управление автопарком (для сотрудников) ---
	// Создание модели автомобиля
	protected.HandleFunc("/fleet/models", createModel.Handle).Methods(http.MethodPost)

	// Регистрация физического автомобиля
	protected.HandleFunc("/fleet/units", createUnit.Handle).Methods(http.MethodPost)

	// Смена состояния автомобиля
	protected.HandleFunc("/fleet/units/{plate}/state", updateUnitState.Handle).Methods(http.MethodPatch)

	// Создание дополнительной услуги
	protected.HandleFunc("/fleet/addons", createAddon.Handle).Methods(http.MethodPost)

	// Удаление дополнительной услуги
	protected.HandleFunc("/fleet/addons/{addonId}", deleteAddon.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
