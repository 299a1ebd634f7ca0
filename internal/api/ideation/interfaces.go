package ideation

import (
	"context"

	"github.com/malithjkd/ai-project-manager/internal/entity"
)

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
