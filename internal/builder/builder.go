package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/malithjkd/ai-project-manager/internal/api"
	accountapi "github.com/malithjkd/ai-project-manager/internal/api/account"
	ideationapi "github.com/malithjkd/ai-project-manager/internal/api/ideation"
	"github.com/malithjkd/ai-project-manager/internal/config"
	"github.com/malithjkd/ai-project-manager/internal/integration/authgw"
	"github.com/malithjkd/ai-project-manager/internal/integration/genai"
	"github.com/malithjkd/ai-project-manager/internal/repository"
	"github.com/malithjkd/ai-project-manager/internal/telegram"
	"github.com/malithjkd/ai-project-manager/internal/usecase/account"
	"github.com/malithjkd/ai-project-manager/internal/usecase/ideation"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize repositories
	formRepo := repository.NewIdeationFormPostgres(db)
	profileRepo := repository.NewUserProfilePostgres(db)
	logger.Info("Repositories initialized")

	// Initialize external service connectors (with mock support)
	var aiConnector ideation.AIConnector
	var authGateway account.AuthGateway

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		aiConnector = genai.NewMockConnector(logger)
		authGateway = authgw.NewMockConnector(logger)
	} else {
		logger.Info("Using real connectors for external services")
		aiConnector = genai.NewConnector(cfg.GenAIConnectorCfg, logger)
		authGateway = authgw.NewConnector(cfg.AuthConnectorCfg, logger)
	}

	// Initialize use cases
	ideationUC := ideation.NewUsecase(
		aiConnector,
		formRepo,
		cfg.SessionTTL,
		cfg.GenerateTimeout,
		logger,
	)
	accountUC := account.NewUsecase(
		authGateway,
		profileRepo,
		logger,
	)
	logger.Info("Use cases initialized")

	// Setup API handlers
	ideationHandler := ideationapi.NewHandler(ideationUC)
	accountHandler := accountapi.NewHandler(accountUC)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(ideationHandler, accountHandler, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (telegram.Bot, *zap.Logger, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize repositories
	formRepo := repository.NewIdeationFormPostgres(db)
	logger.Info("Repositories initialized")

	// Initialize connectors
	var aiConnector ideation.AIConnector
	if cfg.EnableMocks {
		logger.Info("Using mock connector for the AI service")
		aiConnector = genai.NewMockConnector(logger)
	} else {
		logger.Info("Using real connector for the AI service")
		aiConnector = genai.NewConnector(cfg.GenAIConnectorCfg, logger)
	}

	// Initialize use cases
	ideationUC := ideation.NewUsecase(
		aiConnector,
		formRepo,
		cfg.SessionTTL,
		cfg.GenerateTimeout,
		logger,
	)
	logger.Info("Use cases initialized")

	// Initialize Telegram bot
	bot, err := telegram.NewBot(&cfg.TelegramCfg, ideationUC, logger)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, logger, nil
}
