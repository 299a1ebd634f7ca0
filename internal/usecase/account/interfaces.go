package account

import (
	"context"

	"github.com/malithjkd/ai-project-manager/internal/entity"
)

// AuthGateway is the external identity provider. It owns all credential
// material; this service never stores passwords.
type AuthGateway interface {
	CreateAccount(ctx context.Context, email, password string) (*entity.AuthAccount, error)
	SignIn(ctx context.Context, email, password string) (*entity.AuthSession, error)
}
