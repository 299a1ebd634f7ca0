package account

import (
	"context"

	"github.com/malithjkd/ai-project-manager/internal/entity"
)

type AccountUsecase interface {
	Register(ctx context.Context, req entity.RegisterRequest) (*entity.RegisterResult, error)
	SignIn(ctx context.Context, req entity.SignInRequest) (*entity.SignInResult, error)
}
