package telegram

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/malithjkd/ai-project-manager/internal/config"
	"github.com/malithjkd/ai-project-manager/internal/telegram/bot"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// IdeationUsecase is the slice of the workflow the bot drives.
type IdeationUsecase = bot.IdeationUsecase

// NewBot initializes the telegram bot with all dependencies
func NewBot(
	cfg *config.TelegramConfig,
	ideationUC IdeationUsecase,
	logger *zap.Logger,
) (Bot, error) {
	b, err := bot.New(cfg, ideationUC, logger)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	logger.Info("telegram bot initialized successfully")

	return b, nil
}
