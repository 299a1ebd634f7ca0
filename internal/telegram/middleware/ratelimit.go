package middleware

import (
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// userLimit is the token bucket state for one user.
type userLimit struct {
	tokens        float64
	lastRefill    time.Time
	warningsSent  int
	lastWarningAt time.Time
	mu            sync.Mutex
}

// RateLimiterMiddleware throttles updates per user with a token bucket.
// A user who exceeds the limit gets at most one warning per interval.
type RateLimiterMiddleware struct {
	limits          map[int64]*userLimit
	mu              sync.RWMutex
	maxTokens       float64
	refillRate      float64 // tokens per second
	warningInterval time.Duration
	logger          *zap.Logger
	api             *tgbotapi.BotAPI
	stop            <-chan struct{}
	cleanupDone     chan struct{}
}

func NewRateLimiterMiddleware(
	requestsPerMinute int,
	logger *zap.Logger,
	api *tgbotapi.BotAPI,
	stop <-chan struct{},
) *RateLimiterMiddleware {
	rl := &RateLimiterMiddleware{
		limits:          make(map[int64]*userLimit),
		maxTokens:       float64(requestsPerMinute),
		refillRate:      float64(requestsPerMinute) / 60.0,
		warningInterval: 30 * time.Second,
		logger:          logger,
		api:             api,
		stop:            stop,
		cleanupDone:     make(chan struct{}),
	}

	go rl.cleanupInactiveUsers()

	return rl
}

func (rl *RateLimiterMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	if update.Message == nil {
		next(update)
		return
	}

	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	if !rl.allowRequest(userID, chatID) {
		rl.logger.Warn("rate limit exceeded",
			zap.Int64("user_id", userID),
			zap.Int64("chat_id", chatID),
		)
		return
	}

	next(update)
}

func (rl *RateLimiterMiddleware) allowRequest(userID, chatID int64) bool {
	rl.mu.Lock()
	limit, exists := rl.limits[userID]
	if !exists {
		limit = &userLimit{
			tokens:     rl.maxTokens,
			lastRefill: time.Now(),
		}
		rl.limits[userID] = limit
	}
	rl.mu.Unlock()

	limit.mu.Lock()
	defer limit.mu.Unlock()

	now := time.Now()

	elapsed := now.Sub(limit.lastRefill).Seconds()
	limit.tokens += elapsed * rl.refillRate
	if limit.tokens > rl.maxTokens {
		limit.tokens = rl.maxTokens
	}
	limit.lastRefill = now

	if limit.tokens >= 1.0 {
		limit.tokens -= 1.0
		limit.warningsSent = 0
		return true
	}

	if now.Sub(limit.lastWarningAt) > rl.warningInterval {
		limit.warningsSent++
		limit.lastWarningAt = now
		rl.sendRateLimitWarning(chatID, limit.warningsSent)
	}

	return false
}

func (rl *RateLimiterMiddleware) sendRateLimitWarning(chatID int64, warningCount int) {
	var text string

	switch {
	case warningCount == 1:
		text = "You're sending messages too quickly. Please slow down a little."
	case warningCount == 2:
		text = "Still too many requests. Wait about 30 seconds before trying again."
	default:
		text = "Too many requests. Please wait a minute before your next message."
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := rl.api.Send(msg); err != nil {
		rl.logger.Error("failed to send rate limit warning",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

// cleanupInactiveUsers drops bucket state for users idle over an hour. The
// loop exits when the bot's stop channel closes so shutdown does not leave
// it behind.
func (rl *RateLimiterMiddleware) cleanupInactiveUsers() {
	defer close(rl.cleanupDone)

	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.sweepInactive(time.Now())
		}
	}
}

func (rl *RateLimiterMiddleware) sweepInactive(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for userID, limit := range rl.limits {
		limit.mu.Lock()
		if now.Sub(limit.lastRefill) > time.Hour {
			delete(rl.limits, userID)
			rl.logger.Debug("dropped inactive rate limit bucket",
				zap.Int64("user_id", userID),
			)
		}
		limit.mu.Unlock()
	}
}
