package genai

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/malithjkd/ai-project-manager/internal/entity"
)

// MockConnector serves canned replies for local development without an
// API key.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Chat(ctx context.Context, history []entity.ChatMessage) (string, error) {
	ctxzap.Info(ctx, "[MOCK] dialogue reply", zap.Int("history_len", len(history)))

	if len(history) <= 1 {
		return "That sounds interesting! Who would be the main users of this, and what makes the current way of doing things painful for them?", nil
	}
	return "Got it. Could you tell me a bit more about how you imagine the solution working day to day?", nil
}

func (m *MockConnector) Extract(ctx context.Context, history []entity.ChatMessage, kind entity.ExtractionKind) (string, error) {
	ctxzap.Info(ctx, "[MOCK] extraction", zap.String("kind", string(kind)))

	if kind == entity.ExtractionSolution {
		return "Build a lightweight tool that automates the workflow discussed in the conversation, reducing manual effort for the team.", nil
	}
	return "Teams currently rely on manual, error-prone processes for the workflow discussed, which wastes time and causes inconsistent results.", nil
}
