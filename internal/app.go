package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"

	"listing-admin-service/internal/adapters/blobstore"
	"listing-admin-service/internal/adapters/listing_api_client"
	logger_adapter "listing-admin-service/internal/adapters/logger"
	"listing-admin-service/internal/adapters/memstore"
	postgres_adapter "listing-admin-service/internal/adapters/postgres"
	rabbitmq_adapter "listing-admin-service/internal/adapters/rabbitmq"
	"listing-admin-service/internal/adapters/rest"
	"listing-admin-service/internal/configs"
	"listing-admin-service/internal/constants"
	"listing-admin-service/internal/contextkeys"
	"listing-admin-service/internal/core/editsession"
	"listing-admin-service/internal/core/port"
	"listing-admin-service/internal/core/usecase"
	fluentlogger "listing-admin-service/pkg/fluent_logger"
	"listing-admin-service/pkg/postgres"
	"listing-admin-service/pkg/rabbitmq/rabbitmq_common"
	"listing-admin-service/pkg/rabbitmq/rabbitmq_producer"
)

// Сколько записей журнала патчей держится в памяти без PostgreSQL.
const inMemoryAuditCapacity = 1000

type App struct {
	config    *configs.AppConfig
	apiServer *rest.Server
	sessions  *memstore.EditSessionStore
	blobs     *blobstore.FileStore

	dbPool            *pgxpool.Pool
	rabbitMQManager   *rabbitmq_common.ConnectionManager
	rabbitMQPublisher *rabbitmq_producer.Publisher

	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiLoggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ ---
	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	application := &App{
		config:       appConfig,
		fluentClient: fluentClient,
		logger:       appLogger,
	}

	// --- 3. ЖУРНАЛ ПАТЧЕЙ ---
	var auditRepo port.PatchAuditRepositoryPort
	if appConfig.Database.URL != "" {
		dbPool, err := postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Database.URL})
		if err != nil {
			appLogger.Error("Failed to connect to PostgreSQL", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		application.dbPool = dbPool

		pgRepo, err := postgres_adapter.NewPostgresPatchAuditRepository(dbPool)
		if err != nil {
			application.closeResources()
			return nil, fmt.Errorf("failed to create postgres patch audit repository: %w", err)
		}
		if err := pgRepo.EnsureSchema(context.Background()); err != nil {
			appLogger.Error("Failed to prepare patch audit schema", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to prepare patch audit schema: %w", err)
		}
		auditRepo = pgRepo
		appLogger.Info("Patch audit log stored in PostgreSQL", nil)
	} else {
		auditRepo = memstore.NewPatchAuditRepository(inMemoryAuditCapacity)
		appLogger.Warn("DATABASE_URL is not set, patch audit log is kept in memory", nil)
	}

	// --- 4. СОБЫТИЯ ОБ ИЗМЕНЕНИЯХ ---
	var eventPublisher port.ListingEventPublisherPort = rabbitmq_adapter.NoopListingEventPublisher{}
	if appConfig.RabbitMQ.URL != "" {
		rabbitLogger := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq"}))

		manager, err := rabbitmq_common.NewManager(rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL}, rabbitLogger)
		if err != nil {
			appLogger.Error("Failed to connect to RabbitMQ", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		application.rabbitMQManager = manager

		publisher, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
			ExchangeName:             constants.ListingEventsExchange,
			ExchangeType:             constants.ListingEventsExchangeType,
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,
			Logger:                   rabbitLogger,
		}, manager)
		if err != nil {
			appLogger.Error("Failed to create RabbitMQ publisher", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to create RabbitMQ publisher: %w", err)
		}
		application.rabbitMQPublisher = publisher

		eventPublisher, err = rabbitmq_adapter.NewListingEventPublisher(publisher, constants.RoutingKeyListingChanged, appConfig.AppName)
		if err != nil {
			application.closeResources()
			return nil, fmt.Errorf("failed to create listing event publisher: %w", err)
		}
		appLogger.Info("Listing events published to RabbitMQ", port.Fields{"exchange": constants.ListingEventsExchange})
	} else {
		appLogger.Warn("RABBITMQ_URL is not set, listing events are not published", nil)
	}

	// --- 5. ФАЙЛЫ И СЕССИИ ---
	blobs, err := blobstore.NewFileStore(appConfig.Uploads.Dir, appConfig.Uploads.MaxBytes)
	if err != nil {
		appLogger.Error("Failed to create upload store", err, nil)
		application.closeResources()
		return nil, fmt.Errorf("failed to create upload store: %w", err)
	}
	application.blobs = blobs

	evictLogger := baseLogger.WithFields(port.Fields{"component": "edit_session_janitor"})
	sessions := memstore.NewEditSessionStore(appConfig.EditSessions.TTL, func(s *editsession.Session) {
		ids := make([]string, 0)
		for _, up := range s.Media.Uploads() {
			ids = append(ids, up.BlobID)
		}
		ctx := contextkeys.ContextWithLogger(context.Background(), evictLogger)
		if err := blobs.Release(ctx, ids...); err != nil {
			evictLogger.Error("Failed to release uploads of expired session", err, port.Fields{"session_id": s.ID})
		}
		evictLogger.Info("Expired edit session evicted", port.Fields{"session_id": s.ID, "released_uploads": len(ids)})
	})
	application.sessions = sessions

	apiClient := listing_api_client.NewListingAPIClient(
		appConfig.ListingAPI.BaseURL,
		appConfig.ListingAPI.Timeout,
		contextkeys.SessionProvider{},
		blobs,
	)
	appLogger.Info("All persistence and service adapters initialized.", nil)

	// --- 6. USE CASES ---
	listingHandler := rest.NewListingHandler(
		usecase.NewGetListingUseCase(apiClient),
		usecase.NewListListingsUseCase(apiClient),
		usecase.NewGetSimilarListingsUseCase(apiClient),
		usecase.NewCreateListingUseCase(apiClient, auditRepo, eventPublisher),
		usecase.NewDeleteListingUseCase(apiClient, auditRepo, eventPublisher),
		usecase.NewGetListingOptionsUseCase(),
		usecase.NewGetPatchHistoryUseCase(auditRepo),
	)
	sessionHandler := rest.NewEditSessionHandler(
		usecase.NewOpenEditSessionUseCase(sessions, apiClient, blobs),
		usecase.NewReloadEditSessionUseCase(sessions, apiClient, blobs),
		usecase.NewGetEditSessionUseCase(sessions),
		usecase.NewUpdateEditFormUseCase(sessions),
		usecase.NewApplyMediaEventUseCase(sessions, blobs),
		usecase.NewAttachUploadsUseCase(sessions, blobs),
		usecase.NewPreviewEditSessionUseCase(sessions),
		usecase.NewSubmitEditSessionUseCase(sessions, apiClient, blobs, auditRepo, eventPublisher),
		usecase.NewCancelEditSessionUseCase(sessions, blobs),
	)
	interestHandler := rest.NewInterestHandler(
		usecase.NewCreateInterestUseCase(apiClient),
		usecase.NewGetListingInterestsUseCase(apiClient),
	)

	// --- 7. REST API ---
	application.apiServer = rest.NewServer(rest.ServerConfig{
		Port:           appConfig.Rest.PORT,
		AllowedOrigins: appConfig.Rest.AllowedOrigins,
	}, listingHandler, sessionHandler, interestHandler, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	return application, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		if a.apiServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := a.apiServer.Stop(shutdownCtx); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
			cancel()
		}

		a.closeResources()
		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// fluent может быть уже недоступен
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	go a.sessions.RunJanitor(appCtx, a.config.EditSessions.JanitorInterval)

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	var runErr error
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-serverErrors:
		a.logger.Error("Server failed to start, shutting down", err, nil)
		runErr = err
	}

	cancelApp()
	return runErr
}

// closeResources закрывает все, что было открыто в NewApp, кроме fluent-клиента.
func (a *App) closeResources() {
	if a.rabbitMQPublisher != nil {
		if err := a.rabbitMQPublisher.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ publisher", err, nil)
		}
		a.rabbitMQPublisher = nil
	}
	if a.rabbitMQManager != nil {
		if err := a.rabbitMQManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
		a.rabbitMQManager = nil
	}
	if a.dbPool != nil {
		a.dbPool.Close()
		a.dbPool = nil
		a.logger.Info("PostgreSQL pool closed.", nil)
	}
	if a.blobs != nil {
		if err := a.blobs.Close(); err != nil {
			a.logger.Error("Error releasing pending uploads", err, nil)
		}
		a.blobs = nil
	}
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
