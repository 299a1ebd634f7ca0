package ideation

import (
	"context"

	"github.com/malithjkd/ai-project-manager/internal/entity"
)

// AIConnector is the completion gateway the workflow drives. Chat returns
// the model reply verbatim, including the empty string when the model
// produced nothing usable. Extract returns a short statement or
// entity.ErrGenerationFailed.
type AIConnector interface {
	Chat(ctx context.Context, history []entity.ChatMessage) (string, error)
	Extract(ctx context.Context, history []entity.ChatMessage, kind entity.ExtractionKind) (string, error)
}
