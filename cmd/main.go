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

	cancelBookingHandler "github.com/wildroute/ExcursionBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/wildroute/ExcursionBookingService/internal/api/handlers/create_booking"
	createExcursionHandler "github.com/wildroute/ExcursionBookingService/internal/api/handlers/create_excursion"
	deleteExcursionHandler "github.com/wildroute/ExcursionBookingService/internal/api/handlers/delete_excursion"
	getBookingHandler "github.com/wildroute/ExcursionBookingService/internal/api/handlers/get_booking"
	getBookingStatsHandler "github.com/wildroute/ExcursionBookingService/internal/api/handlers/get_booking_stats"
	getExcursionHandler "github.com/wildroute/ExcursionBookingService/internal/api/handlers/get_excursion"
	getExcursionBookingsHandler "github.com/wildroute/ExcursionBookingService/internal/api/handlers/get_excursion_bookings"
	getUserBookingsHandler "github.com/wildroute/ExcursionBookingService/internal/api/handlers/get_user_bookings"
	listExcursionsHandler "github.com/wildroute/ExcursionBookingService/internal/api/handlers/list_excursions"
	updateBookingHandler "github.com/wildroute/ExcursionBookingService/internal/api/handlers/update_booking"
	updateExcursionHandler "github.com/wildroute/ExcursionBookingService/internal/api/handlers/update_excursion"
	"github.com/wildroute/ExcursionBookingService/internal/api/middleware"
	"github.com/wildroute/ExcursionBookingService/internal/config"
	bookingRepo "github.com/wildroute/ExcursionBookingService/internal/infra/storage/booking"
	excursionRepo "github.com/wildroute/ExcursionBookingService/internal/infra/storage/excursion"
	telegramBotClient "github.com/wildroute/ExcursionBookingService/internal/integrations/telegrambot"
	userServiceClient "github.com/wildroute/ExcursionBookingService/internal/integrations/userservice"
	bookingsService "github.com/wildroute/ExcursionBookingService/internal/service/bookings"
	excursionsService "github.com/wildroute/ExcursionBookingService/internal/service/excursions"
	"github.com/wildroute/ExcursionBookingService/internal/service/notifications"
	cancelBookingUC "github.com/wildroute/ExcursionBookingService/internal/usecase/cancel_booking"
	createBookingUC "github.com/wildroute/ExcursionBookingService/internal/usecase/create_booking"
	promoteReserveUC "github.com/wildroute/ExcursionBookingService/internal/usecase/promote_reserve"
	updateBookingUC "github.com/wildroute/ExcursionBookingService/internal/usecase/update_booking"
	"github.com/wildroute/ExcursionBookingService/pkg/dbmetrics"
	"github.com/wildroute/ExcursionBookingService/pkg/logger"
	"github.com/wildroute/ExcursionBookingService/pkg/metrics"
	"github.com/wildroute/ExcursionBookingService/pkg/simpletxmanager"
	"github.com/wildroute/ExcursionBookingService/pkg/txmanager"
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

	log.Info("Starting ExcursionBookingService...")
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
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	botClient := telegramBotClient.NewClient(
		cfg.TelegramBot.URL,
		time.Duration(cfg.TelegramBot.Timeout)*time.Second,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds, TelegramBot=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout, cfg.TelegramBot.URL, cfg.TelegramBot.Timeout)

	// Диспетчер уведомлений: метрики передаём только если они включены,
	// иначе внутри останется честный nil
	var notifMetrics notifications.MetricsCollector
	if cfg.Metrics.Enabled {
		notifMetrics = metricsCollector
	}
	dispatcher := notifications.NewDispatcher(userClient, botClient, cfg.Notifications.QueueSize, log, notifMetrics)
	dispatcher.Run()
	defer dispatcher.Close()
	log.Info("Notification dispatcher started (queue_size=%d)", cfg.Notifications.QueueSize)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository   *bookingRepo.Repository
		excursionRepository *excursionRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		excursionRepository = excursionRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		bookingRepository = bookingRepo.NewRepository(db)
		excursionRepository = excursionRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		excursionRepository,
		userClient,
		log,
	)
	excursionSvc := excursionsService.NewService(
		excursionRepository,
		userClient,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		excursionRepository,
		userClient,
		txMgr,
		dispatcher,
		log,
	)

	// Проход повышения общий для отмены и редактирования брони
	promoteReserveUseCase := promoteReserveUC.NewUseCase(
		bookingRepository,
		excursionRepository,
		txMgr,
		dispatcher,
		log,
	)

	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		excursionRepository,
		userClient,
		txMgr,
		promoteReserveUseCase,
		dispatcher,
		log,
	)

	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		excursionRepository,
		userClient,
		txMgr,
		promoteReserveUseCase,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getExcursionBookings := getExcursionBookingsHandler.NewHandler(bookingSvc, log)
	getBookingStats := getBookingStatsHandler.NewHandler(bookingSvc, log)
	createExcursion := createExcursionHandler.NewHandler(excursionSvc, log)
	getExcursion := getExcursionHandler.NewHandler(excursionSvc, log)
	listExcursions := listExcursionsHandler.NewHandler(excursionSvc, log)
	updateExcursion := updateExcursionHandler.NewHandler(excursionSvc, log)
	deleteExcursion := deleteExcursionHandler.NewHandler(excursionSvc, log)

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

	// Каталог активных экскурсий
	api.HandleFunc("/excursions", listExcursions.Handle).Methods(http.MethodGet)

	// Карточка экскурсии
	api.HandleFunc("/excursions/{excursionId}", getExcursion.Handle).Methods(http.MethodGet)

	// Сводка по занятости мест экскурсии
	api.HandleFunc("/excursions/{excursionId}/stats", getBookingStats.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования на экскурсию
	protected.HandleFunc("/excursions/{excursionId}/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Список броней экскурсии (для гида и админа)
	protected.HandleFunc("/excursions/{excursionId}/bookings", getExcursionBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Редактирование бронирования
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPatch)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление экскурсиями (для гидов и админов) ---
	// Создание экскурсии
	protected.HandleFunc("/excursions", createExcursion.Handle).Methods(http.MethodPost)

	// Редактирование экскурсии
	protected.HandleFunc("/excursions/{excursionId}", updateExcursion.Handle).Methods(http.MethodPatch)

	// Скрытие экскурсии из каталога
	protected.HandleFunc("/excursions/{excursionId}", deleteExcursion.Handle).Methods(http.MethodDelete)

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
