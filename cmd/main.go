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

	createAppointmentHandler "github.com/mindigo/appointment-service/internal/api/handlers/create_appointment"
	createWindowHandler "github.com/mindigo/appointment-service/internal/api/handlers/create_availability_window"
	createExceptionHandler "github.com/mindigo/appointment-service/internal/api/handlers/create_date_exception"
	deleteWindowHandler "github.com/mindigo/appointment-service/internal/api/handlers/delete_availability_window"
	deleteExceptionHandler "github.com/mindigo/appointment-service/internal/api/handlers/delete_date_exception"
	getAppointmentHandler "github.com/mindigo/appointment-service/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/mindigo/appointment-service/internal/api/handlers/get_availability"
	getAvailableDatesHandler "github.com/mindigo/appointment-service/internal/api/handlers/get_available_dates"
	getAvailableSlotsHandler "github.com/mindigo/appointment-service/internal/api/handlers/get_available_slots"
	getSettingsHandler "github.com/mindigo/appointment-service/internal/api/handlers/get_counselor_settings"
	getExceptionsHandler "github.com/mindigo/appointment-service/internal/api/handlers/get_date_exceptions"
	getMyAppointmentsHandler "github.com/mindigo/appointment-service/internal/api/handlers/get_my_appointments"
	updateWindowHandler "github.com/mindigo/appointment-service/internal/api/handlers/update_availability_window"
	updateStatusHandler "github.com/mindigo/appointment-service/internal/api/handlers/update_appointment_status"
	updateSettingsHandler "github.com/mindigo/appointment-service/internal/api/handlers/update_counselor_settings"
	updateExceptionHandler "github.com/mindigo/appointment-service/internal/api/handlers/update_date_exception"
	"github.com/mindigo/appointment-service/internal/api/middleware"
	"github.com/mindigo/appointment-service/internal/config"
	appointmentRepo "github.com/mindigo/appointment-service/internal/infra/storage/appointment"
	availabilityRepo "github.com/mindigo/appointment-service/internal/infra/storage/availability"
	exceptionRepo "github.com/mindigo/appointment-service/internal/infra/storage/exception"
	settingsRepo "github.com/mindigo/appointment-service/internal/infra/storage/settings"
	authServiceClient "github.com/mindigo/appointment-service/internal/integrations/authservice"
	mailServiceClient "github.com/mindigo/appointment-service/internal/integrations/mailservice"
	appointmentsService "github.com/mindigo/appointment-service/internal/service/appointments"
	availabilityService "github.com/mindigo/appointment-service/internal/service/availability"
	settingsService "github.com/mindigo/appointment-service/internal/service/settings"
	createAppointmentUC "github.com/mindigo/appointment-service/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/mindigo/appointment-service/internal/usecase/get_available_slots"
	"github.com/mindigo/appointment-service/pkg/dbmetrics"
	"github.com/mindigo/appointment-service/pkg/logger"
	"github.com/mindigo/appointment-service/pkg/metrics"
	"github.com/mindigo/appointment-service/pkg/simpletxmanager"
	"github.com/mindigo/appointment-service/pkg/txmanager"
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

	log.Info("Starting appointment-service...")
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
	authClient := authServiceClient.NewClient(
		cfg.AuthService.URL,
		time.Duration(cfg.AuthService.Timeout)*time.Second,
		log,
	)
	mailClient := mailServiceClient.NewClient(
		cfg.MailService.URL,
		time.Duration(cfg.MailService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (AuthService=%s timeout=%ds, MailService=%s timeout=%ds)",
		cfg.AuthService.URL, cfg.AuthService.Timeout, cfg.MailService.URL, cfg.MailService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		windowRepository      *availabilityRepo.Repository
		exceptionRepository   *exceptionRepo.Repository
		settingsRepository    *settingsRepo.Repository
	)

	// Интерфейс transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		windowRepository = availabilityRepo.NewRepository(wrappedDB)
		exceptionRepository = exceptionRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		windowRepository = availabilityRepo.NewRepository(db)
		exceptionRepository = exceptionRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	settingsSvc := settingsService.NewService(settingsRepository, log)
	availabilitySvc := availabilityService.NewService(
		windowRepository,
		exceptionRepository,
		settingsSvc,
		log,
	)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		authClient,
		mailClient,
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		windowRepository,
		exceptionRepository,
		settingsSvc,
		authClient,
		mailClient,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		windowRepository,
		exceptionRepository,
		settingsSvc,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(availabilitySvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getMyAppointments := getMyAppointmentsHandler.NewHandler(appointmentsSvc, log)
	updateStatus := updateStatusHandler.NewHandler(appointmentsSvc, log)
	createWindow := createWindowHandler.NewHandler(availabilitySvc, log)
	updateWindow := updateWindowHandler.NewHandler(availabilitySvc, log)
	deleteWindow := deleteWindowHandler.NewHandler(availabilitySvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	createException := createExceptionHandler.NewHandler(availabilitySvc, log)
	getExceptions := getExceptionsHandler.NewHandler(availabilitySvc, log)
	updateException := updateExceptionHandler.NewHandler(availabilitySvc, log)
	deleteException := deleteExceptionHandler.NewHandler(availabilitySvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
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
	api := r.PathPrefix("/api/v1/appointments").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты консультанта на дату
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Даты с доступным расписанием в пределах горизонта бронирования
	api.HandleFunc("/available-dates", getAvailableDates.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID и X-User-Role headers)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("", createAppointment.Handle).Methods(http.MethodPost)

	// Записи текущего пользователя
	protected.HandleFunc("/my", getMyAppointments.Handle).Methods(http.MethodGet)

	// Получение записи по ID
	protected.HandleFunc("/{appointmentId:[0-9]+}", getAppointment.Handle).Methods(http.MethodGet)

	// Смена статуса записи
	protected.HandleFunc("/{appointmentId:[0-9]+}/status", updateStatus.Handle).Methods(http.MethodPut)

	// --- Расписание консультанта ---
	// Еженедельные окна доступности
	protected.HandleFunc("/availability", createWindow.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/availability/{windowId:[0-9]+}", updateWindow.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/availability/{windowId:[0-9]+}", deleteWindow.Handle).Methods(http.MethodDelete)

	// Исключения на конкретные даты
	protected.HandleFunc("/availability/date-specific", createException.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/availability/date-specific", getExceptions.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/availability/date-specific/{exceptionId:[0-9]+}", updateException.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/availability/date-specific/{exceptionId:[0-9]+}", deleteException.Handle).Methods(http.MethodDelete)

	// --- Настройки бронирования консультанта ---
	protected.HandleFunc("/counselors/settings", getSettings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/counselors/settings", updateSettings.Handle).Methods(http.MethodPut)

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
