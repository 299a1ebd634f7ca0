package authgw

import (
	"context"
	"fmt"
	"sync"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/malithjkd/ai-project-manager/internal/entity"
)

// MockConnector keeps accounts in memory for local development without an
// identity-provider project.
type MockConnector struct {
	logger *zap.Logger

	mu       sync.Mutex
	accounts map[string]mockAccount
	nextID   int
}

type mockAccount struct {
	id       string
	password string
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger:   logger,
		accounts: make(map[string]mockAccount),
	}
}

func (m *MockConnector) CreateAccount(ctx context.Context, email, password string) (*entity.AuthAccount, error) {
	ctxzap.Info(ctx, "[MOCK] creating account", zap.String("email", email))

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.accounts[email]; exists {
		return nil, entity.ErrEmailAlreadyInUse
	}
	if len(password) < 6 {
		return nil, entity.ErrWeakPassword
	}

	m.nextID++
	acc := mockAccount{id: fmt.Sprintf("mock-account-%d", m.nextID), password: password}
	m.accounts[email] = acc

	return &entity.AuthAccount{ID: acc.id, Email: email}, nil
}

func (m *MockConnector) SignIn(ctx context.Context, email, password string) (*entity.AuthSession, error) {
	ctxzap.Info(ctx, "[MOCK] signing in", zap.String("email", email))

	m.mu.Lock()
	defer m.mu.Unlock()

	acc, exists := m.accounts[email]
	if !exists {
		return nil, entity.ErrAccountNotFound
	}
	if acc.password != password {
		return nil, entity.ErrInvalidCredentials
	}

	return &entity.AuthSession{
		AccountID: acc.id,
		Email:     email,
		IDToken:   "mock-token-" + acc.id,
		ExpiresIn: "3600",
	}, nil
}
