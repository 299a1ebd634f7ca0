package middleware

import (
	"runtime/debug"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// RecoveryMiddleware keeps a panicking handler from taking down the
// polling loop.
type RecoveryMiddleware struct {
	logger *zap.Logger
	api    *tgbotapi.BotAPI
}

func NewRecoveryMiddleware(logger *zap.Logger, api *tgbotapi.BotAPI) *RecoveryMiddleware {
	return &RecoveryMiddleware{logger: logger, api: api}
}

func (m *RecoveryMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("panic recovered in telegram handler",
				zap.Any("panic", r),
				zap.String("stack", string(debug.Stack())),
				zap.Int("update_id", update.UpdateID),
			)

			if update.Message == nil {
				return
			}

			msg := tgbotapi.NewMessage(update.Message.Chat.ID, "Something went wrong. Please try again or send /start.")
			if _, err := m.api.Send(msg); err != nil {
				m.logger.Error("failed to send error message",
					zap.Error(err),
					zap.Int64("chat_id", update.Message.Chat.ID),
				)
			}
		}
	}()

	next(update)
}
