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

	blockSlotHandler "github.com/GreenGloo/Calendar-SlotEngine/internal/api/handlers/block_slot"
	bookAppointmentHandler "github.com/GreenGloo/Calendar-SlotEngine/internal/api/handlers/book_appointment"
	generateSlotsHandler "github.com/GreenGloo/Calendar-SlotEngine/internal/api/handlers/generate_slots"
	getAvailableSlotsHandler "github.com/GreenGloo/Calendar-SlotEngine/internal/api/handlers/get_available_slots"
	getHorizonHandler "github.com/GreenGloo/Calendar-SlotEngine/internal/api/handlers/get_horizon"
	maintenanceStatusHandler "github.com/GreenGloo/Calendar-SlotEngine/internal/api/handlers/maintenance_status"
	runMaintenanceHandler "github.com/GreenGloo/Calendar-SlotEngine/internal/api/handlers/run_maintenance"
	"github.com/GreenGloo/Calendar-SlotEngine/internal/api/middleware"
	"github.com/GreenGloo/Calendar-SlotEngine/internal/config"
	appointmentRepo "github.com/GreenGloo/Calendar-SlotEngine/internal/infra/storage/appointment"
	slotRepo "github.com/GreenGloo/Calendar-SlotEngine/internal/infra/storage/slot"
	notifierClient "github.com/GreenGloo/Calendar-SlotEngine/internal/integrations/notifier"
	scheduleStoreClient "github.com/GreenGloo/Calendar-SlotEngine/internal/integrations/schedulestore"
	"github.com/GreenGloo/Calendar-SlotEngine/internal/maintenance"
	slotsService "github.com/GreenGloo/Calendar-SlotEngine/internal/service/slots"
	bookAppointmentUC "github.com/GreenGloo/Calendar-SlotEngine/internal/usecase/book_appointment"
	generateSlotsUC "github.com/GreenGloo/Calendar-SlotEngine/internal/usecase/generate_slots"
	getAvailableSlotsUC "github.com/GreenGloo/Calendar-SlotEngine/internal/usecase/get_available_slots"
	"github.com/GreenGloo/Calendar-SlotEngine/pkg/dbmetrics"
	"github.com/GreenGloo/Calendar-SlotEngine/pkg/logger"
	"github.com/GreenGloo/Calendar-SlotEngine/pkg/metrics"
	"github.com/GreenGloo/Calendar-SlotEngine/pkg/simpletxmanager"
	"github.com/GreenGloo/Calendar-SlotEngine/pkg/txmanager"
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

	log.Info("Starting Calendar-SlotEngine...")
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

	// Инициализируем интеграционных клиентов
	scheduleClient := scheduleStoreClient.NewClient(
		cfg.ScheduleStore.URL,
		time.Duration(cfg.ScheduleStore.Timeout)*time.Second,
		log,
	)
	notifier := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (ScheduleStore=%s timeout=%ds, Notifier=%s timeout=%ds)",
		cfg.ScheduleStore.URL, cfg.ScheduleStore.Timeout, cfg.Notifier.URL, cfg.Notifier.Timeout)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		slotRepository        *slotRepo.Repository
		appointmentRepository *appointmentRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = slotRepo.NewRepository(db)
		appointmentRepository = appointmentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	slotsSvc := slotsService.NewService(
		slotRepository,
		scheduleClient,
		log,
	)

	// Инициализируем use cases
	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		slotRepository,
		scheduleClient,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		slotRepository,
		appointmentRepository,
		scheduleClient,
		log,
	)

	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		slotRepository,
		appointmentRepository,
		scheduleClient,
		notifier,
		txMgr,
		log,
	)

	// Инициализируем фоновое обслуживание горизонта
	maintainer := maintenance.NewMaintainer(
		slotRepository,
		scheduleClient,
		generateSlotsUseCase,
		metricsCollector,
		log,
		maintenance.Config{
			Interval:         time.Duration(cfg.Maintenance.IntervalHours) * time.Hour,
			RetentionDays:    cfg.Maintenance.RetentionDays,
			HorizonDays:      cfg.Maintenance.HorizonDays,
			MinHorizonDays:   cfg.Maintenance.MinHorizonDays,
			FutureSlotFloor:  cfg.Maintenance.FutureSlotFloor,
			PerBusinessDelay: time.Duration(cfg.Maintenance.PerBusinessDelayMs) * time.Millisecond,
		},
	)

	maintenanceCtx, stopMaintenance := context.WithCancel(context.Background())
	if cfg.Maintenance.Enabled {
		go maintainer.Run(maintenanceCtx)
		log.Info("Horizon maintenance started (interval=%dh)", cfg.Maintenance.IntervalHours)
	}

	// Инициализируем handlers
	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, metricsCollector, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	bookAppointment := bookAppointmentHandler.NewHandler(bookAppointmentUseCase, log)
	blockSlot := blockSlotHandler.NewHandler(slotsSvc, log)
	getHorizon := getHorizonHandler.NewHandler(slotsSvc, log)
	maintenanceStatus := maintenanceStatusHandler.NewHandler(maintainer, log)
	runMaintenance := runMaintenanceHandler.NewHandler(maintainer, log)

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

	// Получение доступных слотов на дату
	api.HandleFunc("/businesses/{businessId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание записи
	protected.HandleFunc("/bookings", bookAppointment.Handle).Methods(http.MethodPost)

	// --- Управление слотами (для владельцев бизнеса) ---
	// Регенерация слотов бизнеса
	protected.HandleFunc("/businesses/{businessId}/slots/generate", generateSlots.Handle).Methods(http.MethodPost)

	// Ручная блокировка/разблокировка слота
	protected.HandleFunc("/businesses/{businessId}/slots/block", blockSlot.Handle).Methods(http.MethodPatch)

	// Сводка по горизонту слотов бизнеса
	protected.HandleFunc("/businesses/{businessId}/horizon", getHorizon.Handle).Methods(http.MethodGet)

	// --- Обслуживание ---
	// Статус фонового обслуживания
	protected.HandleFunc("/maintenance/status", maintenanceStatus.Handle).Methods(http.MethodGet)

	// Ручной запуск цикла обслуживания
	protected.HandleFunc("/maintenance/run", runMaintenance.Handle).Methods(http.MethodPost)

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

	// Останавливаем фоновое обслуживание
	stopMaintenance()

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
