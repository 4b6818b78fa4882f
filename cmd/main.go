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

	cancelBookingHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/get_booking"
	getTurfBookingsHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/get_turf_bookings"
	getUserBookingsHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/get_user_bookings"
	patchSlotsHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/patch_slots"
	recordPaymentHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/record_payment"
	saveSlotsHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/save_slots"
	"github.com/m04kA/SMC-TurfService/internal/api/middleware"
	"github.com/m04kA/SMC-TurfService/internal/config"
	bookingRepo "github.com/m04kA/SMC-TurfService/internal/infra/storage/booking"
	maintenanceRepo "github.com/m04kA/SMC-TurfService/internal/infra/storage/maintenance"
	paymentRepo "github.com/m04kA/SMC-TurfService/internal/infra/storage/payment"
	slotRepo "github.com/m04kA/SMC-TurfService/internal/infra/storage/slot"
	turfServiceClient "github.com/m04kA/SMC-TurfService/internal/integrations/turfservice"
	bookingsService "github.com/m04kA/SMC-TurfService/internal/service/bookings"
	createBookingUC "github.com/m04kA/SMC-TurfService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-TurfService/internal/usecase/get_availability"
	manageSlotsUC "github.com/m04kA/SMC-TurfService/internal/usecase/manage_slots"
	recordPaymentUC "github.com/m04kA/SMC-TurfService/internal/usecase/record_payment"
	"github.com/m04kA/SMC-TurfService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurfService/pkg/logger"
	"github.com/m04kA/SMC-TurfService/pkg/metrics"
	"github.com/m04kA/SMC-TurfService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-TurfService/pkg/txmanager"
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

	log.Info("Starting SMC-TurfService...")
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

	// Инициализируем клиента TurfService
	turfClient := turfServiceClient.NewClient(
		cfg.TurfService.URL,
		time.Duration(cfg.TurfService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (TurfService=%s timeout=%ds)",
		cfg.TurfService.URL, cfg.TurfService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository     *bookingRepo.Repository
		slotRepository        *slotRepo.Repository
		paymentRepository     *paymentRepo.Repository
		maintenanceRepository *maintenanceRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		maintenanceRepository = maintenanceRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		bookingRepository = bookingRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		maintenanceRepository = maintenanceRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		slotRepository,
		paymentRepository,
		turfClient,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		paymentRepository,
		maintenanceRepository,
		turfClient,
		txMgr,
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		slotRepository,
		maintenanceRepository,
		turfClient,
		log,
	)

	recordPaymentUseCase := recordPaymentUC.NewUseCase(
		bookingRepository,
		paymentRepository,
		txMgr,
		log,
	)

	manageSlotsUseCase := manageSlotsUC.NewUseCase(
		slotRepository,
		turfClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	recordPayment := recordPaymentHandler.NewHandler(recordPaymentUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getTurfBookings := getTurfBookingsHandler.NewHandler(bookingSvc, log)
	saveSlots := saveSlotsHandler.NewHandler(manageSlotsUseCase, log)
	patchSlots := patchSlotsHandler.NewHandler(manageSlotsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Сквозной request ID для трассировки запросов в логах
	r.Use(middleware.RequestID)

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

	// Сетка доступности площадки на дату
	api.HandleFunc("/turfs/{turfId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Привязка платежа к бронированию
	protected.HandleFunc("/bookings/{bookingId}/payment", recordPayment.Handle).Methods(http.MethodPost)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление площадкой (для владельцев) ---
	// Список бронирований площадки
	protected.HandleFunc("/turfs/{turfId}/bookings", getTurfBookings.Handle).Methods(http.MethodGet)

	// Полная замена ручной разметки дня
	protected.HandleFunc("/turfs/{turfId}/slots", saveSlots.Handle).Methods(http.MethodPut)

	// Точечные изменения разметки дня
	protected.HandleFunc("/turfs/{turfId}/slots", patchSlots.Handle).Methods(http.MethodPatch)

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
