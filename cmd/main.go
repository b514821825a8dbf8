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
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-EventLedger/internal/api/handlers"
	createBookingHandler "github.com/m04kA/SMC-EventLedger/internal/api/handlers/create_booking"
	createExpenseHandler "github.com/m04kA/SMC-EventLedger/internal/api/handlers/create_expense"
	deleteBookingHandler "github.com/m04kA/SMC-EventLedger/internal/api/handlers/delete_booking"
	deleteExpenseHandler "github.com/m04kA/SMC-EventLedger/internal/api/handlers/delete_expense"
	deletePaymentHandler "github.com/m04kA/SMC-EventLedger/internal/api/handlers/delete_payment"
	exportFinancialReportHandler "github.com/m04kA/SMC-EventLedger/internal/api/handlers/export_financial_report"
	exportLedgerHandler "github.com/m04kA/SMC-EventLedger/internal/api/handlers/export_ledger"
	getBookingHandler "github.com/m04kA/SMC-EventLedger/internal/api/handlers/get_booking"
	getExpenseHandler "github.com/m04kA/SMC-EventLedger/internal/api/handlers/get_expense"
	getFinancialReportHandler "github.com/m04kA/SMC-EventLedger/internal/api/handlers/get_financial_report"
	getMeHandler "github.com/m04kA/SMC-EventLedger/internal/api/handlers/get_me"
	getPaymentHandler "github.com/m04kA/SMC-EventLedger/internal/api/handlers/get_payment"
	importLedgerHandler "github.com/m04kA/SMC-EventLedger/internal/api/handlers/import_ledger"
	listBookingPaymentsHandler "github.com/m04kA/SMC-EventLedger/internal/api/handlers/list_booking_payments"
	listBookingsHandler "github.com/m04kA/SMC-EventLedger/internal/api/handlers/list_bookings"
	listExpensesHandler "github.com/m04kA/SMC-EventLedger/internal/api/handlers/list_expenses"
	listPaymentsHandler "github.com/m04kA/SMC-EventLedger/internal/api/handlers/list_payments"
	loginHandler "github.com/m04kA/SMC-EventLedger/internal/api/handlers/login"
	logoutHandler "github.com/m04kA/SMC-EventLedger/internal/api/handlers/logout"
	recordPaymentHandler "github.com/m04kA/SMC-EventLedger/internal/api/handlers/record_payment"
	registerHandler "github.com/m04kA/SMC-EventLedger/internal/api/handlers/register"
	reopenBookingHandler "github.com/m04kA/SMC-EventLedger/internal/api/handlers/reopen_booking"
	updateBookingHandler "github.com/m04kA/SMC-EventLedger/internal/api/handlers/update_booking"
	updateBookingStatusHandler "github.com/m04kA/SMC-EventLedger/internal/api/handlers/update_booking_status"
	updateExpenseHandler "github.com/m04kA/SMC-EventLedger/internal/api/handlers/update_expense"
	"github.com/m04kA/SMC-EventLedger/internal/api/middleware"
	"github.com/m04kA/SMC-EventLedger/internal/config"
	bookingRepo "github.com/m04kA/SMC-EventLedger/internal/infra/storage/booking"
	expenseRepo "github.com/m04kA/SMC-EventLedger/internal/infra/storage/expense"
	paymentRepo "github.com/m04kA/SMC-EventLedger/internal/infra/storage/payment"
	"github.com/m04kA/SMC-EventLedger/internal/infra/storage/schema"
	"github.com/m04kA/SMC-EventLedger/internal/infra/storage/session"
	userRepo "github.com/m04kA/SMC-EventLedger/internal/infra/storage/user"
	"github.com/m04kA/SMC-EventLedger/internal/integrations/eventbus"
	bookingsService "github.com/m04kA/SMC-EventLedger/internal/service/bookings"
	expensesService "github.com/m04kA/SMC-EventLedger/internal/service/expenses"
	paymentsService "github.com/m04kA/SMC-EventLedger/internal/service/payments"
	usersService "github.com/m04kA/SMC-EventLedger/internal/service/users"
	createBookingUC "github.com/m04kA/SMC-EventLedger/internal/usecase/create_booking"
	deleteBookingUC "github.com/m04kA/SMC-EventLedger/internal/usecase/delete_booking"
	financialReportUC "github.com/m04kA/SMC-EventLedger/internal/usecase/financial_report"
	ledgerTransferUC "github.com/m04kA/SMC-EventLedger/internal/usecase/ledger_transfer"
	recordPaymentUC "github.com/m04kA/SMC-EventLedger/internal/usecase/record_payment"
	"github.com/m04kA/SMC-EventLedger/pkg/dbmetrics"
	"github.com/m04kA/SMC-EventLedger/pkg/logger"
	"github.com/m04kA/SMC-EventLedger/pkg/metrics"
	"github.com/m04kA/SMC-EventLedger/pkg/sqlbuilder"
	"github.com/m04kA/SMC-EventLedger/pkg/txmanager"
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

	log.Info("Starting SMC-EventLedger...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	dialect := sqlbuilder.Dialect(cfg.Database.Driver)
	db, err := sql.Open(cfg.Database.SQLDriverName(), cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	// SQLite допускает одного писателя, поэтому пул из одного соединения
	if dialect == sqlbuilder.DialectSQLite {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (driver=%s)", cfg.Database.Driver)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db)
	}

	if err := schema.Apply(context.Background(), wrappedDB, dialect); err != nil {
		log.Fatal("Failed to apply schema: %v", err)
	}

	// Redis для сессий
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		cancelPing()
		log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
	}
	cancelPing()
	log.Info("Successfully connected to redis (addr=%s)", cfg.Redis.Addr)

	// Публикация событий журнала
	var (
		events         eventbus.Publisher = eventbus.NoopPublisher{}
		kafkaPublisher *eventbus.KafkaPublisher
	)
	if cfg.Kafka.Enabled {
		writer := eventbus.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		kafkaPublisher = eventbus.NewKafkaPublisher(writer, cfg.Metrics.ServiceName, cfg.Kafka.BufferSize, log)
		if cfg.Metrics.Enabled {
			kafkaPublisher.WithMetrics(metricsCollector, cfg.Metrics.ServiceName)
		}
		events = kafkaPublisher
		log.Info("Kafka publisher enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	if cfg.Metrics.Enabled {
		events = eventbus.NewInstrumented(events, metricsCollector, cfg.Metrics.ServiceName)
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB, dialect)
	paymentRepository := paymentRepo.NewRepository(wrappedDB, dialect)
	expenseRepository := expenseRepo.NewRepository(wrappedDB, dialect)
	userRepository := userRepo.NewRepository(wrappedDB, dialect)
	sessionStore := session.NewStore(rdb, time.Duration(cfg.Auth.SessionTTLMinutes)*time.Minute)

	// SERIALIZABLE поддерживает только PostgreSQL, SQLite и так сериализует запись
	txMgr := txmanager.NewTransactionManager(wrappedDB, dialect == sqlbuilder.DialectPostgres)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		txMgr,
		events,
		cfg.Bookings.MaxConcurrentEvents,
		log,
	)
	paymentSvc := paymentsService.NewService(
		paymentRepository,
		bookingRepository,
		events,
		log,
	)
	expenseSvc := expensesService.NewService(
		expenseRepository,
		events,
		log,
	)
	userSvc := usersService.NewService(
		userRepository,
		sessionStore,
		cfg.Auth.MinPasswordLength,
		cfg.Auth.BcryptCost,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		txMgr,
		events,
		cfg.Bookings.MaxConcurrentEvents,
		log,
	)
	deleteBookingUseCase := deleteBookingUC.NewUseCase(
		bookingRepository,
		paymentRepository,
		txMgr,
		events,
		log,
	)
	recordPaymentUseCase := recordPaymentUC.NewUseCase(
		bookingRepository,
		paymentRepository,
		txMgr,
		events,
		log,
	)
	financialReportUseCase := financialReportUC.NewUseCase(
		bookingRepository,
		paymentRepository,
		expenseRepository,
		txMgr,
		log,
	)
	ledgerTransferUseCase := ledgerTransferUC.NewUseCase(
		bookingRepository,
		paymentRepository,
		expenseRepository,
		txMgr,
		events,
		log,
	)

	// Инициализируем handlers
	register := registerHandler.NewHandler(userSvc, log)
	login := loginHandler.NewHandler(userSvc, log)
	logout := logoutHandler.NewHandler(userSvc, log)
	getMe := getMeHandler.NewHandler(userSvc, log)

	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	reopenBooking := reopenBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(deleteBookingUseCase, log)
	listBookingPayments := listBookingPaymentsHandler.NewHandler(paymentSvc, log)

	recordPayment := recordPaymentHandler.NewHandler(recordPaymentUseCase, log)
	listPayments := listPaymentsHandler.NewHandler(paymentSvc, log)
	getPayment := getPaymentHandler.NewHandler(paymentSvc, log)
	deletePayment := deletePaymentHandler.NewHandler(paymentSvc, log)

	createExpense := createExpenseHandler.NewHandler(expenseSvc, log)
	listExpenses := listExpensesHandler.NewHandler(expenseSvc, log)
	getExpense := getExpenseHandler.NewHandler(expenseSvc, log)
	updateExpense := updateExpenseHandler.NewHandler(expenseSvc, log)
	deleteExpense := deleteExpenseHandler.NewHandler(expenseSvc, log)

	getFinancialReport := getFinancialReportHandler.NewHandler(financialReportUseCase, log)
	exportFinancialReport := exportFinancialReportHandler.NewHandler(financialReportUseCase, log)
	exportLedger := exportLedgerHandler.NewHandler(ledgerTransferUseCase, log)
	importLedger := importLedgerHandler.NewHandler(ledgerTransferUseCase, log)

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

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			handlers.RespondError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/auth/register", register.Handle).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", login.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Authorization: Bearer <token>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(userSvc, log))

	// --- Сессия ---
	protected.HandleFunc("/auth/logout", logout.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/auth/me", getMe.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reopen", reopenBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/payments", listBookingPayments.Handle).Methods(http.MethodGet)

	// --- Платежи ---
	protected.HandleFunc("/payments", recordPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/payments", listPayments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/payments/{paymentId}", getPayment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/payments/{paymentId}", deletePayment.Handle).Methods(http.MethodDelete)

	// --- Расходы ---
	protected.HandleFunc("/expenses", createExpense.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/expenses", listExpenses.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/expenses/{expenseId}", getExpense.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/expenses/{expenseId}", updateExpense.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/expenses/{expenseId}", deleteExpense.Handle).Methods(http.MethodDelete)

	// --- Отчеты ---
	protected.HandleFunc("/reports/financial", getFinancialReport.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reports/financial/export", exportFinancialReport.Handle).Methods(http.MethodGet)

	// --- Перенос журнала ---
	protected.HandleFunc("/ledger/export", exportLedger.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/ledger/import", importLedger.Handle).Methods(http.MethodPost)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дописываем буфер событий после остановки приема запросов
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(shutdownCtx); err != nil {
			log.Error("Event publisher not flushed: %v", err)
		}
	}

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
