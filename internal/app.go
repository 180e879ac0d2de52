package internal

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rental-bff/internal/adapters/backend_api_client"
	"rental-bff/internal/adapters/client_storage"
	"rental-bff/internal/adapters/exchange_rate_client"
	token_adapter "rental-bff/internal/adapters/jwt"
	logger_adapter "rental-bff/internal/adapters/logger"
	rabbitmq_adapter "rental-bff/internal/adapters/rabbitmq"
	"rental-bff/internal/adapters/rest"
	"rental-bff/internal/configs"
	"rental-bff/internal/contextkeys"
	"rental-bff/internal/core/port"
	"rental-bff/internal/core/usecase"
	fluentlogger "rental-bff/pkg/fluent_logger"
	"rental-bff/pkg/postgres"
	"rental-bff/pkg/rabbitmq/rabbitmq_common"
	"rental-bff/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App - основная структура приложения
type App struct {
	server *rest.Server
	logger port.LoggerPort

	fluentClient *fluent.Fluent
	dbPool       *pgxpool.Pool
	memoryStore  *client_storage.MemoryStore
	rabbitConn   *rabbitmq_common.ConnectionManager
	publisher    *rabbitmq_producer.Publisher
}

// NewApp создает и настраивает все компоненты приложения
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	app := &App{}

	// инициализация логеров
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    logger_adapter.ParseLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	if appConfig.FluentBit.Enabled {
		fluentClient, err := fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(
			fluentClient,
			logger_adapter.ParseLevel(appConfig.FluentBit.Level),
			func(postErr error) {
				stdoutLogger.Warn("Failed to post log to fluentbit", port.Fields{"error": postErr.Error()})
			},
		)
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		app.fluentClient = fluentClient
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})
	app.logger = baseLogger.WithFields(port.Fields{"component": "app"})
	app.logger.Debug("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	startupCtx = contextkeys.ContextWithLogger(startupCtx, app.logger)

	// клиентское хранилище
	storage, err := app.initStorage(startupCtx, appConfig.Storage)
	if err != nil {
		app.cleanup()
		return nil, err
	}
	app.logger.Info("Client storage initialized", port.Fields{"driver": appConfig.Storage.Driver})

	// исходящие адаптеры
	backendClient, err := backend_api_client.NewClient(backend_api_client.Config{
		BaseURL: appConfig.Backend.URL,
		Timeout: appConfig.Backend.Timeout,
	}, storage)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}
	app.logger.Debug("Backend client initialized", port.Fields{"target_url": appConfig.Backend.URL})

	ratesClient := exchange_rate_client.NewClient(appConfig.ExchangeRates.URL, appConfig.ExchangeRates.Timeout)

	tokens, err := token_adapter.NewTokenService(appConfig.Auth.JWTSigningKey, appConfig.AppName)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	publisher, err := app.initActivityPublisher(appConfig.Activity, baseLogger)
	if err != nil {
		app.cleanup()
		return nil, err
	}

	// сценарии
	currencyUC := usecase.NewCurrencyUseCase(storage, ratesClient)
	draftsUC := usecase.NewSearchDraftUseCase(storage)
	wishlistsUC := usecase.NewWishlistUseCase(backendClient, storage, publisher)
	authUC := usecase.NewAuthUseCase(usecase.AuthDeps{
		API:       backendClient,
		Backend:   backendClient,
		Tokens:    tokens,
		OTP:       usecase.NewOTPUseCase(backendClient, storage),
		Wishlists: wishlistsUC,
		Publisher: publisher,
		TokenTTL:  appConfig.Auth.TokenTTL,
	})

	rates := currencyUC.LoadRates(startupCtx)
	app.logger.Info("Exchange rates loaded", port.Fields{
		"status": string(rates.Status), "currencies": len(rates.Rates),
	})

	handlers := rest.NewHandlers(rest.HandlersDeps{
		Currency:      currencyUC,
		Theme:         usecase.NewThemeUseCase(storage),
		Drafts:        draftsUC,
		Properties:    usecase.NewPropertiesUseCase(backendClient, currencyUC, draftsUC),
		Auth:          authUC,
		Wishlists:     wishlistsUC,
		Bookings:      usecase.NewBookingUseCase(backendClient, publisher),
		Profile:       usecase.NewProfileUseCase(backendClient),
		SecureCookies: appConfig.Auth.CookieSecure,
	})

	visitors := rest.NewVisitorStore([]byte(appConfig.Auth.SessionKey), appConfig.Auth.CookieSecure)

	serverCfg := rest.ServerConfig{Port: appConfig.Port, AllowedOrigins: appConfig.CORSAllowedOrigins}
	router := rest.NewRouter(serverCfg, handlers, rest.NewAuthMiddleware(authUC), visitors, baseLogger)
	app.server = rest.NewServer(serverCfg, router, baseLogger)

	return app, nil
}

func (a *App) initStorage(ctx context.Context, cfg configs.StorageConfig) (port.ClientStoragePort, error) {
	switch cfg.Driver {
	case configs.StorageDriverPostgres:
		pool, err := postgres.NewClient(ctx, postgres.Config{
			DatabaseURL:     cfg.DatabaseURL,
			MaxConns:        10,
			MaxConnLifetime: time.Hour,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		a.dbPool = pool

		store, err := client_storage.NewPostgresStore(pool)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("failed to prepare client storage schema: %w", err)
		}
		return store, nil

	case configs.StorageDriverMemcache:
		client, err := client_storage.NewMemcacheClient(cfg.MemcacheServers...)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to memcache: %w", err)
		}
		store, err := client_storage.NewMemcacheStore(client, "rental-bff")
		if err != nil {
			return nil, err
		}
		return store, nil

	default:
		a.memoryStore = client_storage.NewMemoryStore(client_storage.MemoryConfig{
			MaxEntries: cfg.MemoryMaxEntries,
			TTL:        cfg.MemoryTTL,
		})
		return a.memoryStore, nil
	}
}

// initActivityPublisher возвращает no-op издателя, если события выключены.
func (a *App) initActivityPublisher(cfg configs.ActivityConfig, baseLogger port.LoggerPort) (port.ActivityPublisherPort, error) {
	if !cfg.Enabled {
		a.logger.Info("Activity events disabled", nil)
		return rabbitmq_adapter.NoopActivityPublisher{}, nil
	}

	rabbitLogger := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq"}))

	connManager, err := rabbitmq_common.NewConnectionManager(rabbitmq_common.Config{URL: cfg.RabbitMQURL}, rabbitLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	a.rabbitConn = connManager

	producer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		ExchangeName:             cfg.Exchange,
		ExchangeType:             "topic",
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		Logger:                   rabbitLogger,
	}, connManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity publisher: %w", err)
	}
	a.publisher = producer

	adapter, err := rabbitmq_adapter.NewActivityPublisherAdapter(producer)
	if err != nil {
		return nil, err
	}
	a.logger.Info("Activity events enabled", port.Fields{"exchange": cfg.Exchange})
	return adapter, nil
}

// Run запускает приложение и управляет его жизненным циклом
func (a *App) Run() error {
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- a.server.Start()
	}()

	// Настройка Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		a.logger.Debug("Rental BFF is shutting down...", port.Fields{"signal": sig.String()})
	case err := <-serverErr:
		if err != nil {
			runErr = fmt.Errorf("http server failed: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Stop(ctx); err != nil {
		a.logger.Error("HTTP server shutdown failed", err, nil)
	}

	a.logger.Info("Application shut down gracefully.", nil)
	a.cleanup()

	return runErr
}

// cleanup закрывает внешние ресурсы в обратном порядке создания.
func (a *App) cleanup() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Error("Error closing rabbitmq publisher", err, nil)
		}
	}
	if a.rabbitConn != nil {
		if err := a.rabbitConn.Close(); err != nil {
			a.logger.Error("Error closing rabbitmq connection", err, nil)
		}
	}
	if a.dbPool != nil {
		a.dbPool.Close()
	}
	if a.memoryStore != nil {
		a.memoryStore.Close()
	}
	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
	}
}
