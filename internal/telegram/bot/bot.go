package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/malithjkd/ai-project-manager/internal/config"
	"github.com/malithjkd/ai-project-manager/internal/entity"
	"github.com/malithjkd/ai-project-manager/internal/telegram/middleware"
)

// IdeationUsecase is the slice of the ideation workflow the bot drives.
type IdeationUsecase interface {
	CreateSession(ctx context.Context) (*entity.SessionDTO, error)
	GetSession(ctx context.Context, sessionID string) (*entity.SessionDTO, error)
	SendMessage(ctx context.Context, sessionID, text string) (*entity.SessionDTO, error)
	GenerateProblemStatement(ctx context.Context, sessionID string) (*entity.SessionDTO, error)
	GenerateSolutionStatement(ctx context.Context, sessionID string) (*entity.SessionDTO, error)
	UpdateForm(ctx context.Context, sessionID string, req entity.UpdateFormRequest) (*entity.SessionDTO, error)
	SaveForm(ctx context.Context, sessionID string) (*entity.SaveFormResponse, error)
	ResetSession(ctx context.Context, sessionID string) (*entity.SessionDTO, error)
	GetStoredForm(ctx context.Context, formID string) (*entity.StoredIdeationForm, error)
}

// binding ties a Telegram chat to an ideation session. Bindings are stored
// by value: handlers mutate a local copy and write it back, so two updates
// for the same chat never share memory.
type binding struct {
	sessionID  string
	lastFormID string
}

// Bot represents the Telegram bot
type Bot struct {
	api         *tgbotapi.BotAPI
	cfg         *config.TelegramConfig
	uc          IdeationUsecase
	bindings    *cache.Cache
	logger      *zap.Logger
	loggingMW   *middleware.LoggingMiddleware
	recoveryMW  *middleware.RecoveryMiddleware
	rateLimitMW *middleware.RateLimiterMiddleware
	updatesChan tgbotapi.UpdatesChannel
	stopChan    chan struct{}
	wg          sync.WaitGroup
}

// New creates a new Telegram bot
func New(
	cfg *config.TelegramConfig,
	uc IdeationUsecase,
	logger *zap.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	api.Debug = false

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	bot := &Bot{
		api:      api,
		cfg:      cfg,
		uc:       uc,
		bindings: cache.New(24*time.Hour, 10*time.Minute),
		logger:   logger,
		stopChan: make(chan struct{}),
	}

	bot.loggingMW = middleware.NewLoggingMiddleware(logger)
	bot.recoveryMW = middleware.NewRecoveryMiddleware(logger, api)
	bot.rateLimitMW = middleware.NewRateLimiterMiddleware(
		cfg.RateLimitPerMinute,
		logger,
		api,
		bot.stopChan,
	)

	return bot, nil
}

// Start starts the bot
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	b.updatesChan = b.api.GetUpdatesChan(u)

	ctx = ctxzap.ToContext(ctx, b.logger)
	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops the bot gracefully with timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	close(b.stopChan)
	b.api.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

// processUpdates processes incoming updates
func (b *Bot) processUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update := <-b.updatesChan:
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.handleUpdateWithMiddleware(u)
			}(update)
		}
	}
}

// handleUpdateWithMiddleware processes update through middleware chain
func (b *Bot) handleUpdateWithMiddleware(update tgbotapi.Update) {
	b.rateLimitMW.Handle(update, func(u tgbotapi.Update) {
		b.loggingMW.Handle(u, func(u2 tgbotapi.Update) {
			b.recoveryMW.Handle(u2, func(u3 tgbotapi.Update) {
				b.handleUpdate(u3)
			})
		})
	})
}

// handleUpdate routes a message update to the command handlers.
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.Message == nil {
		return
	}

	ctx := ctxzap.ToContext(context.Background(), b.logger)
	b.handleMessage(ctx, update.Message)
}

func (b *Bot) getBinding(chatID int64) (binding, bool) {
	v, ok := b.bindings.Get(chatKey(chatID))
	if !ok {
		return binding{}, false
	}
	return v.(binding), true
}

func (b *Bot) setBinding(chatID int64, bd binding) {
	b.bindings.Set(chatKey(chatID), bd, cache.DefaultExpiration)
}

func chatKey(chatID int64) string {
	return fmt.Sprintf("chat:%d", chatID)
}
