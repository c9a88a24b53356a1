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
	gocache "github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	createBookingHandler "github.com/m04kA/SMC-TerminalService/internal/api/handlers/create_booking"
	createTerminalHandler "github.com/m04kA/SMC-TerminalService/internal/api/handlers/create_terminal"
	deleteBookingHandler "github.com/m04kA/SMC-TerminalService/internal/api/handlers/delete_booking"
	deleteTerminalHandler "github.com/m04kA/SMC-TerminalService/internal/api/handlers/delete_terminal"
	getBookingHandler "github.com/m04kA/SMC-TerminalService/internal/api/handlers/get_booking"
	getTerminalHandler "github.com/m04kA/SMC-TerminalService/internal/api/handlers/get_terminal"
	getUserBookingsHandler "github.com/m04kA/SMC-TerminalService/internal/api/handlers/get_user_bookings"
	listTerminalsHandler "github.com/m04kA/SMC-TerminalService/internal/api/handlers/list_terminals"
	searchTerminalsHandler "github.com/m04kA/SMC-TerminalService/internal/api/handlers/search_terminals"
	updateBookingHandler "github.com/m04kA/SMC-TerminalService/internal/api/handlers/update_booking"
	updateBookingStatusHandler "github.com/m04kA/SMC-TerminalService/internal/api/handlers/update_booking_status"
	updateTerminalStatusHandler "github.com/m04kA/SMC-TerminalService/internal/api/handlers/update_terminal_status"
	"github.com/m04kA/SMC-TerminalService/internal/api/middleware"
	"github.com/m04kA/SMC-TerminalService/internal/config"
	bookingRepo "github.com/m04kA/SMC-TerminalService/internal/infra/storage/booking"
	terminalRepo "github.com/m04kA/SMC-TerminalService/internal/infra/storage/terminal"
	"github.com/m04kA/SMC-TerminalService/internal/occupancy"
	bookingsService "github.com/m04kA/SMC-TerminalService/internal/service/bookings"
	terminalsService "github.com/m04kA/SMC-TerminalService/internal/service/terminals"
	createBookingUC "github.com/m04kA/SMC-TerminalService/internal/usecase/create_booking"
	searchTerminalsUC "github.com/m04kA/SMC-TerminalService/internal/usecase/search_terminals"
	"github.com/m04kA/SMC-TerminalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TerminalService/pkg/logger"
	"github.com/m04kA/SMC-TerminalService/pkg/metrics"
	"github.com/m04kA/SMC-TerminalService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-TerminalService/pkg/txmanager"
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

	log.Info("Starting SMC-TerminalService...")
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

	// Инициализируем репозитории (с метриками или без)
	var (
		terminalRepository *terminalRepo.Repository
		bookingRepository  *bookingRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		terminalRepository = terminalRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		terminalRepository = terminalRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем планировщик переходов занятости
	var schedulerMetrics occupancy.Metrics
	if cfg.Metrics.Enabled {
		schedulerMetrics = metricsCollector
	}
	scheduler := occupancy.NewScheduler(terminalRepository, occupancy.NewTimerFacility(), log, schedulerMetrics)

	// Восстанавливаем переходы занятости после рестарта: все незавершённые
	// бронирования планируются заново
	upcoming, err := bookingRepository.ListEndingAfter(context.Background(), time.Now())
	if err != nil {
		log.Fatal("Failed to restore occupancy transitions: %v", err)
	}
	for _, b := range upcoming {
		scheduler.Schedule(b.ID, b.TerminalID, b.StartingDate, b.EndingDate)
	}
	log.Info("Occupancy transitions restored for %d bookings", len(upcoming))

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		terminalRepository,
		scheduler,
		txMgr,
		log,
	)
	terminalSvc := terminalsService.NewService(
		terminalRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		terminalRepository,
		bookingRepository,
		scheduler,
		txMgr,
		log,
	)

	searchTerminalsUseCase := searchTerminalsUC.NewUseCase(
		terminalRepository,
		bookingRepository,
		log,
	)

	// Инициализируем handlers
	searchTerminals := searchTerminalsHandler.NewHandler(searchTerminalsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	createTerminal := createTerminalHandler.NewHandler(terminalSvc, log)
	listTerminals := listTerminalsHandler.NewHandler(terminalSvc, log)
	getTerminal := getTerminalHandler.NewHandler(terminalSvc, log)
	updateTerminalStatus := updateTerminalStatusHandler.NewHandler(terminalSvc, log)
	deleteTerminal := deleteTerminalHandler.NewHandler(terminalSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Ограничение частоты запросов по IP (если включено)
	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimit(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst))
		log.Info("IP rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Поиск доступных терминалов (с кэшированием выдачи, если включено)
	searchHandler := http.Handler(http.HandlerFunc(searchTerminals.Handle))
	if cfg.SearchCache.Enabled {
		ttl := time.Duration(cfg.SearchCache.TTLSeconds) * time.Second
		store := gocache.New(ttl, 2*ttl)
		searchHandler = middleware.Cache(store, ttl)(searchHandler)
		log.Info("Search response cache enabled (ttl=%ds)", cfg.SearchCache.TTLSeconds)
	}
	api.Handle("/terminals/search", searchHandler).Methods(http.MethodGet)

	// Список и карточка терминала
	api.HandleFunc("/terminals", listTerminals.Handle).Methods(http.MethodGet)
	api.HandleFunc("/terminals/{terminalId}", getTerminal.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Терминалы (для владельцев) ---
	protected.HandleFunc("/terminals", createTerminal.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/terminals/{terminalId}/status", updateTerminalStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/terminals/{terminalId}", deleteTerminal.Handle).Methods(http.MethodDelete)

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
